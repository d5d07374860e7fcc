package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/myfans/settlement/internal/apperror"
	"github.com/myfans/settlement/internal/config"
	"github.com/myfans/settlement/internal/db"
	"github.com/myfans/settlement/internal/events"
	"github.com/myfans/settlement/internal/ledger"
	"github.com/myfans/settlement/internal/models"
	"github.com/myfans/settlement/internal/pricing"
	"github.com/myfans/settlement/internal/ratelimit"
	"github.com/myfans/settlement/internal/repository"
	"github.com/myfans/settlement/internal/txengine"
	"github.com/shopspring/decimal"
)

// CreateCheckoutRequest is the input to CheckoutService.Create. AssetCode
// and AssetIssuer default to the plan's asset when empty.
type CreateCheckoutRequest struct {
	AssetIssuer    *string `json:"assetIssuer,omitempty"`
	FanAddress     string  `json:"fanAddress"`
	CreatorAddress string  `json:"creatorAddress"`
	AssetCode      string  `json:"assetCode,omitempty"`
	PlanID         int64   `json:"planId"`
}

// PlanSummary describes the plan a checkout pays for.
type PlanSummary struct {
	Description    *string         `json:"description,omitempty"`
	AssetIssuer    *string         `json:"assetIssuer,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	CreatorName    string          `json:"creatorName"`
	CreatorAddress string          `json:"creatorAddress"`
	Name           string          `json:"name"`
	AssetCode      string          `json:"assetCode"`
	Interval       string          `json:"interval"`
	IntervalDays   int             `json:"intervalDays"`
	ID             int64           `json:"id"`
}

// WalletStatus is the fan's account as seen on the ledger.
type WalletStatus struct {
	Address     string                `json:"address"`
	Balances    []models.AssetBalance `json:"balances"`
	IsConnected bool                  `json:"isConnected"`
}

// BalanceValidation compares the fan's balance of the checkout asset with
// the checkout total.
type BalanceValidation struct {
	Balance   decimal.Decimal `json:"balance"`
	Shortfall decimal.Decimal `json:"shortfall"`
	Valid     bool            `json:"valid"`
}

// TransactionPreview is what the fan is asked to sign.
type TransactionPreview struct {
	Asset      models.Asset    `json:"asset"`
	Amount     decimal.Decimal `json:"amount"`
	Fee        decimal.Decimal `json:"fee"`
	Total      decimal.Decimal `json:"total"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Memo       string          `json:"memo"`
	CheckoutID uuid.UUID       `json:"checkoutId"`
}

// CheckoutResult is the outcome of Confirm, Fail or Submit.
type CheckoutResult struct {
	TxHash      *string               `json:"txHash,omitempty"`
	Error       *apperror.Error       `json:"error,omitempty"`
	Status      models.CheckoutStatus `json:"status"`
	ExplorerURL string                `json:"explorerUrl,omitempty"`
	Message     string                `json:"message,omitempty"`
	CheckoutID  uuid.UUID             `json:"checkoutId"`
	Success     bool                  `json:"success"`
}

// CheckoutDeps are the collaborators of a CheckoutService.
type CheckoutDeps struct {
	Balances  ledger.BalanceReader
	Submitter ledger.Submitter
	Network   txengine.Connectivity
	Publisher events.Publisher
	Limiter   ratelimit.Limiter
	Clock     clockwork.Clock
	Logger    *slog.Logger
}

// CheckoutService handles the checkout session lifecycle
type CheckoutService struct {
	db        *db.DB
	checkouts repository.CheckoutRepository
	plans     repository.PlanRepository
	balances  ledger.BalanceReader
	submitter ledger.Submitter
	network   txengine.Connectivity
	publisher events.Publisher
	limiter   ratelimit.Limiter
	clock     clockwork.Clock
	logger    *slog.Logger
	cfg       config.CheckoutConfig
	engine    config.EngineConfig
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	database *db.DB,
	cfg config.CheckoutConfig,
	engine config.EngineConfig,
	deps CheckoutDeps,
) *CheckoutService {
	s := &CheckoutService{
		db:        database,
		checkouts: repository.NewCheckoutRepository(database),
		plans:     repository.NewPlanRepository(database),
		balances:  deps.Balances,
		submitter: deps.Submitter,
		network:   deps.Network,
		publisher: deps.Publisher,
		limiter:   deps.Limiter,
		clock:     deps.Clock,
		logger:    deps.Logger,
		cfg:       cfg,
		engine:    engine,
	}
	if s.limiter == nil {
		s.limiter = ratelimit.Noop{}
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	return s
}

// Create prices a plan for a fan and stores a pending checkout session
func (s *CheckoutService) Create(ctx context.Context, req CreateCheckoutRequest) (*models.CheckoutSession, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	if err := s.limiter.Allow(ctx, "checkout", req.FanAddress); err != nil {
		if apperror.IsKind(err, apperror.KindRateLimited) {
			return nil, err
		}
		s.logger.Warn("rate limiter unavailable, admitting request", "error", err)
	}

	plan, err := s.plans.FindByID(ctx, req.PlanID)
	if err != nil {
		return nil, repositoryError(err, "plan")
	}

	if plan.CreatorAddress != req.CreatorAddress {
		return nil, validationError("plan does not belong to this creator", map[string]any{"planId": plan.ID})
	}

	asset := plan.Asset()
	if req.AssetCode != "" {
		requested := models.Asset{Code: req.AssetCode, Issuer: req.AssetIssuer}
		if requested.Issuer == nil {
			requested.Issuer = plan.AssetIssuer
		}
		if !asset.Matches(requested) || !requested.Matches(asset) {
			return nil, validationError("asset does not match the plan", map[string]any{
				"assetCode": req.AssetCode,
				"planAsset": plan.AssetCode,
			})
		}
	}

	breakdown, err := pricing.CheckoutBreakdown(plan.Amount, s.cfg.PlatformFeeRate, s.cfg.NetworkFee, plan.AssetCode, s.cfg.Precision)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	session := &models.CheckoutSession{
		ID:             uuid.New(),
		FanAddress:     req.FanAddress,
		CreatorAddress: plan.CreatorAddress,
		PlanID:         plan.ID,
		AssetCode:      asset.Code,
		AssetIssuer:    asset.Issuer,
		Amount:         breakdown.Subtotal,
		Fee:            breakdown.Fee(),
		NetworkFee:     breakdown.NetworkFee,
		Total:          breakdown.Total,
		Status:         models.CheckoutStatusPending,
		ExpiresAt:      now.Add(s.cfg.TTL),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.checkouts.Create(ctx, session); err != nil {
		return nil, internalError(err, "create checkout")
	}

	checkoutTransitions.WithLabelValues(string(models.CheckoutStatusPending)).Inc()
	s.logger.Info("checkout created",
		"checkout_id", session.ID,
		"plan_id", plan.ID,
		"total", session.Total.String(),
		"asset", session.AssetCode,
	)

	return session, nil
}

func validateCreateRequest(req CreateCheckoutRequest) error {
	if err := ValidateAddress(req.FanAddress); err != nil {
		return validationError(err.Error(), map[string]any{"field": "fanAddress"})
	}
	if err := ValidateAddress(req.CreatorAddress); err != nil {
		return validationError(err.Error(), map[string]any{"field": "creatorAddress"})
	}
	if req.PlanID <= 0 {
		return validationError("plan ID must be positive", map[string]any{"field": "planId"})
	}
	if req.AssetCode != "" {
		if err := ValidateAssetCode(req.AssetCode); err != nil {
			return validationError(err.Error(), map[string]any{"field": "assetCode"})
		}
	}
	if req.AssetIssuer != nil {
		if err := ValidateAddress(*req.AssetIssuer); err != nil {
			return validationError(err.Error(), map[string]any{"field": "assetIssuer"})
		}
	}
	return nil
}

// Get returns the session with its effective status
func (s *CheckoutService) Get(ctx context.Context, id uuid.UUID) (*models.CheckoutSession, error) {
	session, err := s.checkouts.FindByID(ctx, id)
	if err != nil {
		return nil, repositoryError(err, "checkout")
	}

	session.Status = models.EffectiveStatus(session, s.clock.Now())
	return session, nil
}

// GetBreakdown returns the stored price breakdown of a checkout
func (s *CheckoutService) GetBreakdown(ctx context.Context, id uuid.UUID) (*pricing.PriceBreakdown, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return &pricing.PriceBreakdown{
		Subtotal:    session.Amount,
		PlatformFee: session.Fee.Sub(session.NetworkFee),
		NetworkFee:  session.NetworkFee,
		Total:       session.Total,
		Currency:    session.AssetCode,
	}, nil
}

// GetPlanSummary returns the plan a checkout pays for
func (s *CheckoutService) GetPlanSummary(ctx context.Context, id uuid.UUID) (*PlanSummary, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	plan, err := s.plans.FindByID(ctx, session.PlanID)
	if err != nil {
		return nil, repositoryError(err, "plan")
	}

	return &PlanSummary{
		ID:             plan.ID,
		CreatorName:    plan.CreatorName,
		CreatorAddress: plan.CreatorAddress,
		Name:           plan.Name,
		Description:    plan.Description,
		AssetCode:      plan.AssetCode,
		AssetIssuer:    plan.AssetIssuer,
		Amount:         plan.Amount,
		Interval:       intervalName(plan.IntervalDays),
		IntervalDays:   plan.IntervalDays,
	}, nil
}

func intervalName(days int) string {
	switch days {
	case 1:
		return "day"
	case 7:
		return "week"
	case 30:
		return "month"
	case 365:
		return "year"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// GetWalletStatus lists the fan's balances. An account missing from the
// ledger is reported as not connected rather than as an error.
func (s *CheckoutService) GetWalletStatus(ctx context.Context, id uuid.UUID) (*WalletStatus, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	balances, err := s.fetchBalances(ctx, session)
	if apperror.IsKind(err, apperror.KindWalletNotFound) {
		return &WalletStatus{Address: session.FanAddress, Balances: []models.AssetBalance{}}, nil
	}
	if err != nil {
		return nil, err
	}

	return &WalletStatus{Address: session.FanAddress, Balances: balances, IsConnected: true}, nil
}

// CheckBalance fetches the fan's balances and validates them against the
// checkout total
func (s *CheckoutService) CheckBalance(ctx context.Context, id uuid.UUID) (*BalanceValidation, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	balances, err := s.fetchBalances(ctx, session)
	if err != nil {
		return nil, err
	}

	v := ValidateBalance(session, balances)
	return &v, nil
}

// ValidateBalance reports whether balances hold at least the checkout total
// of the checkout asset. The issuer is compared only when the checkout has one.
func ValidateBalance(session *models.CheckoutSession, balances []models.AssetBalance) BalanceValidation {
	asset := session.Asset()
	held := decimal.Zero
	for _, b := range balances {
		if asset.Matches(b.Asset) {
			held = b.Balance
			break
		}
	}

	shortfall := session.Total.Sub(held)
	if shortfall.IsNegative() {
		shortfall = decimal.Zero
	}

	return BalanceValidation{
		Valid:     !held.LessThan(session.Total),
		Balance:   held,
		Shortfall: shortfall,
	}
}

// GetPreview builds the payment the fan will sign. Only pending checkouts
// can be previewed.
func (s *CheckoutService) GetPreview(ctx context.Context, id uuid.UUID) (*TransactionPreview, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != models.CheckoutStatusPending {
		return nil, notPending(session.Status)
	}

	return &TransactionPreview{
		CheckoutID: session.ID,
		From:       session.FanAddress,
		To:         session.CreatorAddress,
		Asset:      session.Asset(),
		Amount:     session.Amount,
		Fee:        session.Fee,
		Total:      session.Total,
		Memo:       checkoutMemo(session.ID),
	}, nil
}

// checkoutMemo fits the 28-byte text memo limit.
func checkoutMemo(id uuid.UUID) string {
	return "myfans:" + strings.ReplaceAll(id.String(), "-", "")[:20]
}

func notPending(status models.CheckoutStatus) *apperror.Error {
	return apperror.Classify(apperror.KindForbidden, apperror.Overrides{
		Message: fmt.Sprintf("checkout is already %s", status),
		Context: map[string]any{"status": string(status)},
	})
}

// Confirm records the transaction hash of a paid checkout
func (s *CheckoutService) Confirm(ctx context.Context, id uuid.UUID, txHash string) (*CheckoutResult, error) {
	return s.confirm(ctx, id, txHash, s.clock.Now())
}

// confirm resolves the checkout as paid when it was still pending at paidAt.
// Submit passes the moment it started, so a TTL that lapses while the ledger
// is busy does not discard an accepted payment.
func (s *CheckoutService) confirm(ctx context.Context, id uuid.UUID, txHash string, paidAt time.Time) (*CheckoutResult, error) {
	if err := ValidateTxHash(txHash); err != nil {
		return nil, validationError(err.Error(), map[string]any{"field": "txHash"})
	}

	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError(err, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	session, err := s.performConfirm(ctx, repository.NewCheckoutRepository(tx), id, txHash, paidAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError(err, "commit transaction")
	}

	s.afterConfirm(ctx, session)
	return s.result(session), nil
}

// performConfirm contains the core confirmation logic
func (s *CheckoutService) performConfirm(
	ctx context.Context,
	checkoutRepo repository.CheckoutRepository,
	id uuid.UUID,
	txHash string,
	paidAt time.Time,
) (*models.CheckoutSession, error) {
	session, err := checkoutRepo.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, repositoryError(err, "checkout")
	}

	if status := models.EffectiveStatus(session, paidAt); status != models.CheckoutStatusPending {
		return nil, notPending(status)
	}

	now := s.clock.Now().UTC()

	hash := strings.ToLower(txHash)
	session.Status = models.CheckoutStatusConfirmed
	session.TxHash = &hash
	session.UpdatedAt = now

	if err := checkoutRepo.Resolve(ctx, session); err != nil {
		return nil, repositoryError(err, "checkout")
	}

	return session, nil
}

func (s *CheckoutService) afterConfirm(ctx context.Context, session *models.CheckoutSession) {
	checkoutTransitions.WithLabelValues(string(models.CheckoutStatusConfirmed)).Inc()
	s.logger.Info("checkout confirmed", "checkout_id", session.ID, "tx_hash", *session.TxHash)

	event := events.New(events.TypeCheckoutConfirmed, events.CheckoutConfirmed{
		CheckoutID:     session.ID,
		FanAddress:     session.FanAddress,
		CreatorAddress: session.CreatorAddress,
		PlanID:         session.PlanID,
		AssetCode:      session.AssetCode,
		Total:          session.Total.String(),
		TxHash:         *session.TxHash,
	}, session.UpdatedAt)

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish checkout confirmation",
			"checkout_id", session.ID,
			"error", err,
		)
	}
}

// Fail records a failed or user-rejected payment. A pending session past
// its expiry can still be failed.
func (s *CheckoutService) Fail(ctx context.Context, id uuid.UUID, reason string, rejectedByUser bool) (*CheckoutResult, error) {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, internalError(err, "begin transaction")
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	session, err := s.performFail(ctx, repository.NewCheckoutRepository(tx), id, reason, rejectedByUser)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, internalError(err, "commit transaction")
	}

	s.afterFail(ctx, session)
	return s.result(session), nil
}

// performFail contains the core failure-recording logic
func (s *CheckoutService) performFail(
	ctx context.Context,
	checkoutRepo repository.CheckoutRepository,
	id uuid.UUID,
	reason string,
	rejectedByUser bool,
) (*models.CheckoutSession, error) {
	session, err := checkoutRepo.FindByIDForUpdate(ctx, id)
	if err != nil {
		return nil, repositoryError(err, "checkout")
	}

	if session.Status != models.CheckoutStatusPending {
		return nil, notPending(session.Status)
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = "Payment failed"
	}

	session.Status = models.CheckoutStatusFailed
	session.Error = &reason
	session.RejectedByUser = rejectedByUser
	session.UpdatedAt = s.clock.Now().UTC()

	if err := checkoutRepo.Resolve(ctx, session); err != nil {
		return nil, repositoryError(err, "checkout")
	}

	return session, nil
}

// afterFail publishes the renewal failure. Publish errors are logged and
// never surface to the caller.
func (s *CheckoutService) afterFail(ctx context.Context, session *models.CheckoutSession) {
	checkoutTransitions.WithLabelValues(string(models.CheckoutStatusFailed)).Inc()
	s.logger.Info("checkout failed",
		"checkout_id", session.ID,
		"rejected_by_user", session.RejectedByUser,
		"reason", *session.Error,
	)

	event := events.New(events.TypeSubscriptionRenewalFailed, events.RenewalFailed{
		SubscriptionID: session.ID.String(),
		Reason:         *session.Error,
		Timestamp:      session.UpdatedAt,
		UserID:         session.FanAddress,
	}, session.UpdatedAt)

	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish renewal failure",
			"checkout_id", session.ID,
			"error", err,
		)
	}
}

// Submit sends a signed envelope to the ledger and settles the checkout
// with the outcome. A definitive ledger failure is recorded on the checkout
// and reported in the result. When the outcome is unknown (offline, network
// trouble) the checkout stays pending and the error is returned.
func (s *CheckoutService) Submit(ctx context.Context, id uuid.UUID, envelope string) (*CheckoutResult, error) {
	if strings.TrimSpace(envelope) == "" {
		return nil, validationError("signed transaction envelope is required", map[string]any{"field": "envelope"})
	}

	startedAt := s.clock.Now()
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Status != models.CheckoutStatusPending {
		return nil, notPending(session.Status)
	}

	hash, submitErr := s.submitEnvelope(ctx, session, envelope)
	if submitErr == nil {
		result, err := s.confirm(ctx, id, hash, startedAt)
		if err != nil {
			return s.unrecordedPayment(session, hash, err)
		}
		return result, nil
	}
	if !settles(submitErr.Kind) {
		return nil, submitErr
	}

	rejected := submitErr.Kind == apperror.KindTransactionRejected
	result, err := s.Fail(ctx, id, submitErr.Message, rejected)
	if err != nil {
		return nil, err
	}

	result.Error = submitErr
	result.Message = submitErr.Message
	return result, nil
}

// unrecordedPayment reports a payment the ledger accepted but the checkout
// could not record. The hash travels in both the result and the error so the
// caller can reconcile.
func (s *CheckoutService) unrecordedPayment(session *models.CheckoutSession, hash string, cause error) (*CheckoutResult, error) {
	s.logger.Error("ledger accepted payment but checkout was not confirmed",
		"checkout_id", session.ID,
		"tx_hash", hash,
		"error", cause,
	)
	checkoutTransitions.WithLabelValues("unrecorded").Inc()

	classified := apperror.FromUnknown(cause).WithContext(map[string]any{
		"checkoutId": session.ID.String(),
		"txHash":     hash,
	})

	result := s.result(session)
	result.TxHash = &hash
	if s.cfg.ExplorerURL != "" {
		result.ExplorerURL = s.cfg.ExplorerURL + hash
	}
	result.Error = classified
	result.Message = classified.Message
	return result, classified
}

func (s *CheckoutService) submitEnvelope(ctx context.Context, session *models.CheckoutSession, envelope string) (string, *apperror.Error) {
	return runUnit(ctx, s, txengine.Options[string]{
		Type:     "payment_submission",
		Amount:   session.Total,
		Currency: session.AssetCode,
	}, func(ctx context.Context) (string, error) {
		return s.submitter.Submit(ctx, envelope)
	})
}

func (s *CheckoutService) fetchBalances(ctx context.Context, session *models.CheckoutSession) ([]models.AssetBalance, error) {
	balances, err := runUnit(ctx, s, txengine.Options[[]models.AssetBalance]{
		Type:     "balance_query",
		Amount:   session.Total,
		Currency: session.AssetCode,
	}, func(ctx context.Context) ([]models.AssetBalance, error) {
		return s.balances.GetBalances(ctx, session.FanAddress)
	})
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// runUnit executes unit in a transaction engine run and retries recoverable
// failures until the configured budget is spent. The engine config is used
// as is: TX_MAX_RETRIES=0 disables retries.
func runUnit[T any](ctx context.Context, s *CheckoutService, opts txengine.Options[T], unit txengine.Unit[T]) (T, *apperror.Error) {
	opts.MaxRetries = s.engine.MaxRetries
	opts.RetryDelay = s.engine.RetryDelay
	opts.BackoffMultiple = s.engine.BackoffMultiple
	opts.MaxDelay = s.engine.MaxDelay

	options := []txengine.Option{txengine.WithClock(s.clock), txengine.WithLogger(s.logger)}
	if s.network != nil {
		options = append(options, txengine.WithConnectivity(s.network))
	}

	run := txengine.New(opts, options...)
	result, ok := run.Execute(ctx, unit)
	for !ok && run.CanRetry() && retryable(run.Err().Kind) {
		result, ok = run.Retry(ctx)
	}
	if !ok {
		return result, run.Err()
	}
	return result, nil
}

// retryable lists the kinds worth repeating without user involvement.
func retryable(kind apperror.Kind) bool {
	switch kind {
	case apperror.KindNetworkError, apperror.KindNetworkTimeout, apperror.KindServiceUnavailable, apperror.KindRateLimited:
		return true
	default:
		return false
	}
}

// settles reports whether a submission failure is a final ledger answer.
// Anything the ledger may still apply, including unclassified failures,
// leaves the checkout pending.
func settles(kind apperror.Kind) bool {
	switch kind {
	case apperror.KindOffline, apperror.KindNetworkError, apperror.KindNetworkTimeout,
		apperror.KindServiceUnavailable, apperror.KindRateLimited, apperror.KindInternal,
		apperror.KindUnknown:
		return false
	default:
		return true
	}
}

func (s *CheckoutService) result(session *models.CheckoutSession) *CheckoutResult {
	r := &CheckoutResult{
		Success:    session.Status == models.CheckoutStatusConfirmed,
		CheckoutID: session.ID,
		Status:     session.Status,
		TxHash:     session.TxHash,
	}

	if session.TxHash != nil && s.cfg.ExplorerURL != "" {
		r.ExplorerURL = s.cfg.ExplorerURL + *session.TxHash
	}

	switch session.Status {
	case models.CheckoutStatusConfirmed:
		r.Message = "Payment confirmed"
	case models.CheckoutStatusFailed:
		if session.RejectedByUser {
			r.Message = "Payment was cancelled"
		} else if session.Error != nil {
			r.Message = *session.Error
		}
	}

	return r
}
