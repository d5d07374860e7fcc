package apperror

type definition struct {
	message     string
	description string
	severity    Severity
	category    Category
	actions     []Action
	recoverable bool
}

var (
	retryPrimary   = Action{Label: "Try again", Type: ActionRetry, Primary: true}
	goBack         = Action{Label: "Go back", Type: ActionGoBack}
	dismiss        = Action{Label: "Dismiss", Type: ActionDismiss}
	addFunds       = Action{Label: "Add funds", Type: ActionNavigate, Href: "/settings#wallet", Primary: true}
	installWallet  = Action{Label: "Get Freighter", Type: ActionNavigate, Href: "https://freighter.app", Primary: true}
	connectWallet  = Action{Label: "Connect wallet", Type: ActionCustom, Primary: true}
	signIn         = Action{Label: "Sign in", Type: ActionCustom, Primary: true}
	goBackPrimary  = Action{Label: "Go back", Type: ActionGoBack, Primary: true}
	goHome         = Action{Label: "Go home", Type: ActionNavigate, Href: "/", Primary: true}
	checkStatus    = Action{Label: "Check status", Type: ActionCustom, Primary: true}
	fixInput       = Action{Label: "Fix errors", Type: ActionGoBack, Primary: true}
	editAmount     = Action{Label: "Edit amount", Type: ActionGoBack, Primary: true}
	retryReconnect = Action{Label: "Retry", Type: ActionRetry, Primary: true}
)

var allKinds = []Kind{
	KindTransactionFailed,
	KindTransactionRejected,
	KindTransactionTimeout,
	KindInsufficientBalance,
	KindInvalidAmount,
	KindNetworkError,
	KindNetworkTimeout,
	KindOffline,
	KindWalletNotFound,
	KindWalletNotConnected,
	KindWalletConnectionFailed,
	KindWalletSignatureFailed,
	KindValidation,
	KindUnauthorized,
	KindForbidden,
	KindNotFound,
	KindInternal,
	KindServiceUnavailable,
	KindRateLimited,
	KindUnknown,
}

var taxonomy = map[Kind]definition{
	KindTransactionFailed: {
		message:     "Transaction failed",
		description: "Your transaction could not be completed. Please try again.",
		severity:    SeverityError,
		category:    CategoryTransaction,
		recoverable: true,
		actions:     []Action{retryPrimary, goBack},
	},
	KindTransactionRejected: {
		message:     "Transaction rejected",
		description: "The transaction was rejected by your wallet.",
		severity:    SeverityWarning,
		category:    CategoryTransaction,
		recoverable: true,
		actions:     []Action{retryPrimary, goBack},
	},
	KindTransactionTimeout: {
		message:     "Transaction timed out",
		description: "The transaction took too long to process. Please check your wallet for status.",
		severity:    SeverityWarning,
		category:    CategoryTransaction,
		recoverable: true,
		actions:     []Action{checkStatus, goBack},
	},
	KindInsufficientBalance: {
		message:     "Insufficient balance",
		description: "You do not have enough funds to complete this transaction.",
		severity:    SeverityError,
		category:    CategoryTransaction,
		actions:     []Action{addFunds, goBack},
	},
	KindInvalidAmount: {
		message:     "Invalid amount",
		description: "Please enter a valid amount for this transaction.",
		severity:    SeverityError,
		category:    CategoryForm,
		recoverable: true,
		actions:     []Action{editAmount},
	},
	KindNetworkError: {
		message:     "Network error",
		description: "Unable to connect to the network. Please check your internet connection.",
		severity:    SeverityError,
		category:    CategoryNetwork,
		recoverable: true,
		actions:     []Action{retryPrimary, dismiss},
	},
	KindNetworkTimeout: {
		message:     "Request timed out",
		description: "The request took too long. Please try again.",
		severity:    SeverityWarning,
		category:    CategoryNetwork,
		recoverable: true,
		actions:     []Action{retryPrimary, dismiss},
	},
	KindOffline: {
		message:     "You are offline",
		description: "Please check your internet connection and try again.",
		severity:    SeverityWarning,
		category:    CategoryNetwork,
		recoverable: true,
		actions:     []Action{retryReconnect},
	},
	KindWalletNotFound: {
		message:     "Wallet not found",
		description: "Please install a compatible wallet extension to continue.",
		severity:    SeverityError,
		category:    CategoryWallet,
		actions:     []Action{installWallet},
	},
	KindWalletNotConnected: {
		message:     "Wallet not connected",
		description: "Please connect your wallet to continue.",
		severity:    SeverityWarning,
		category:    CategoryWallet,
		recoverable: true,
		actions:     []Action{connectWallet},
	},
	KindWalletConnectionFailed: {
		message:     "Connection failed",
		description: "Could not connect to your wallet. Please try again.",
		severity:    SeverityError,
		category:    CategoryWallet,
		recoverable: true,
		actions:     []Action{retryPrimary, dismiss},
	},
	KindWalletSignatureFailed: {
		message:     "Signature failed",
		description: "The transaction could not be signed. Please try again.",
		severity:    SeverityError,
		category:    CategoryWallet,
		recoverable: true,
		actions:     []Action{retryPrimary, goBack},
	},
	KindValidation: {
		message:     "Validation error",
		description: "Please check your input and try again.",
		severity:    SeverityWarning,
		category:    CategoryForm,
		recoverable: true,
		actions:     []Action{fixInput},
	},
	KindUnauthorized: {
		message:     "Unauthorized",
		description: "Please sign in to access this content.",
		severity:    SeverityWarning,
		category:    CategoryAuth,
		recoverable: true,
		actions:     []Action{signIn},
	},
	KindForbidden: {
		message:     "Access denied",
		description: "You do not have permission to perform this action.",
		severity:    SeverityError,
		category:    CategoryAuth,
		actions:     []Action{goBackPrimary},
	},
	KindNotFound: {
		message:     "Not found",
		description: "The requested resource could not be found.",
		severity:    SeverityError,
		category:    CategoryServer,
		actions:     []Action{goHome, goBack},
	},
	KindInternal: {
		message:     "Server error",
		description: "Something went wrong on our end. Please try again later.",
		severity:    SeverityError,
		category:    CategoryServer,
		recoverable: true,
		actions:     []Action{retryPrimary, goBack},
	},
	KindServiceUnavailable: {
		message:     "Service unavailable",
		description: "The service is temporarily unavailable. Please try again later.",
		severity:    SeverityError,
		category:    CategoryServer,
		recoverable: true,
		actions:     []Action{retryPrimary, dismiss},
	},
	KindRateLimited: {
		message:     "Too many requests",
		description: "Please wait a moment before trying again.",
		severity:    SeverityWarning,
		category:    CategoryServer,
		recoverable: true,
		actions:     []Action{retryPrimary},
	},
	KindUnknown: {
		message:     "Something went wrong",
		description: "An unexpected error occurred. Please try again.",
		severity:    SeverityError,
		category:    CategoryUnknown,
		recoverable: true,
		actions:     []Action{retryPrimary, dismiss},
	},
}
