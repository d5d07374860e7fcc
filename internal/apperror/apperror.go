// Package apperror defines the closed error taxonomy shared by the settlement
// services. Every failure that leaves a service is an *Error whose severity,
// category, recoverability and suggested actions are fixed per Kind.
package apperror

import (
	"errors"
	"fmt"
	"time"
)

// Kind identifies an error condition.
type Kind string

const (
	KindTransactionFailed      Kind = "transaction_failed"
	KindTransactionRejected    Kind = "transaction_rejected"
	KindTransactionTimeout     Kind = "transaction_timeout"
	KindInsufficientBalance    Kind = "insufficient_balance"
	KindInvalidAmount          Kind = "invalid_amount"
	KindNetworkError           Kind = "network_error"
	KindNetworkTimeout         Kind = "network_timeout"
	KindOffline                Kind = "offline"
	KindWalletNotFound         Kind = "wallet_not_found"
	KindWalletNotConnected     Kind = "wallet_not_connected"
	KindWalletConnectionFailed Kind = "wallet_connection_failed"
	KindWalletSignatureFailed  Kind = "wallet_signature_failed"
	KindValidation             Kind = "validation_error"
	KindUnauthorized           Kind = "unauthorized"
	KindForbidden              Kind = "forbidden"
	KindNotFound               Kind = "not_found"
	KindInternal               Kind = "internal_error"
	KindServiceUnavailable     Kind = "service_unavailable"
	KindRateLimited            Kind = "rate_limited"
	KindUnknown                Kind = "unknown"
)

// Severity of an error as presented to a user.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Category groups kinds by the subsystem that produced them.
type Category string

const (
	CategoryTransaction Category = "transaction"
	CategoryNetwork     Category = "network"
	CategoryWallet      Category = "wallet"
	CategoryForm        Category = "form"
	CategoryAuth        Category = "auth"
	CategoryServer      Category = "server"
	CategoryUnknown     Category = "unknown"
)

// ActionType tells a client how to render a suggested action.
type ActionType string

const (
	ActionRetry    ActionType = "retry"
	ActionGoBack   ActionType = "go_back"
	ActionDismiss  ActionType = "dismiss"
	ActionNavigate ActionType = "navigate"
	ActionCustom   ActionType = "custom"
)

// Action is a suggested next step for the user.
type Action struct {
	Label   string     `json:"label"`
	Type    ActionType `json:"type"`
	Href    string     `json:"href,omitempty"`
	Primary bool       `json:"primary,omitempty"`
}

// Error is a classified failure.
type Error struct {
	Timestamp   time.Time      `json:"timestamp"`
	Err         error          `json:"-"`
	Context     map[string]any `json:"context,omitempty"`
	Kind        Kind           `json:"error"`
	Message     string         `json:"message"`
	Description string         `json:"description,omitempty"`
	Severity    Severity       `json:"severity"`
	Category    Category       `json:"category"`
	Actions     []Action       `json:"actions"`
	Recoverable bool           `json:"recoverable"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, apperror.New(KindNotFound)) works without comparing messages.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// HasRetry reports whether the record offers a retry action.
func (e *Error) HasRetry() bool {
	for _, a := range e.Actions {
		if a.Type == ActionRetry {
			return true
		}
	}
	return false
}

// WithContext returns a copy of the record with extra merged over its
// context. The receiver is left untouched, so shared records stay safe to
// reuse.
func (e *Error) WithContext(extra map[string]any) *Error {
	c := *e
	c.Actions = append([]Action(nil), e.Actions...)
	c.Context = make(map[string]any, len(e.Context)+len(extra))
	for k, v := range e.Context {
		c.Context[k] = v
	}
	for k, v := range extra {
		c.Context[k] = v
	}
	return &c
}

// Overrides are the only fields a caller may change on a classified record.
type Overrides struct {
	Message     string
	Description string
	Context     map[string]any
	Cause       error
}

// Classify builds the record for kind. Unknown kinds fall back to KindUnknown.
func Classify(kind Kind, o Overrides) *Error {
	d, ok := taxonomy[kind]
	if !ok {
		kind = KindUnknown
		d = taxonomy[KindUnknown]
	}

	e := &Error{
		Kind:        kind,
		Message:     d.message,
		Description: d.description,
		Severity:    d.severity,
		Category:    d.category,
		Recoverable: d.recoverable,
		Actions:     append([]Action(nil), d.actions...),
		Timestamp:   time.Now().UTC(),
	}
	if o.Message != "" {
		e.Message = o.Message
	}
	if o.Description != "" {
		e.Description = o.Description
	}
	if o.Context != nil {
		e.Context = o.Context
	}
	e.Err = o.Cause
	return e
}

// New classifies kind with an optional message override.
func New(kind Kind, message ...string) *Error {
	var o Overrides
	if len(message) > 0 {
		o.Message = message[0]
	}
	return Classify(kind, o)
}

// Wrap classifies kind with cause attached.
func Wrap(kind Kind, cause error, message string) *Error {
	return Classify(kind, Overrides{Message: message, Cause: cause})
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Kinds returns every kind in the taxonomy.
func Kinds() []Kind {
	return append([]Kind(nil), allKinds...)
}
