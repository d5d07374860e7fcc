package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/myfans/settlement/internal/events"
	"github.com/myfans/settlement/internal/models"
	"github.com/myfans/settlement/internal/pricing"
	"github.com/shopspring/decimal"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Checkouts manages checkout sessions from creation to settlement
type Checkouts interface {
	Create(ctx context.Context, req CreateCheckoutRequest) (*models.CheckoutSession, error)
	Get(ctx context.Context, id uuid.UUID) (*models.CheckoutSession, error)
	GetBreakdown(ctx context.Context, id uuid.UUID) (*pricing.PriceBreakdown, error)
	GetPlanSummary(ctx context.Context, id uuid.UUID) (*PlanSummary, error)
	GetWalletStatus(ctx context.Context, id uuid.UUID) (*WalletStatus, error)
	CheckBalance(ctx context.Context, id uuid.UUID) (*BalanceValidation, error)
	GetPreview(ctx context.Context, id uuid.UUID) (*TransactionPreview, error)
	Confirm(ctx context.Context, id uuid.UUID, txHash string) (*CheckoutResult, error)
	Fail(ctx context.Context, id uuid.UUID, reason string, rejectedByUser bool) (*CheckoutResult, error)
	Submit(ctx context.Context, id uuid.UUID, envelope string) (*CheckoutResult, error)
}

// Access manages time-bound content purchases
type Access interface {
	Purchase(ctx context.Context, buyer string, contentID uint64, duration time.Duration) (*models.Purchase, error)
	Unlock(ctx context.Context, purchaseID uuid.UUID, contentID uint64, caller string) (*events.ContentUnlocked, error)
	HasAccess(ctx context.Context, buyer string, contentID uint64) (bool, error)
	HasAccessBatch(ctx context.Context, buyer string, contentIDs []uint64) (map[uint64]bool, error)
}

// Fees exposes the creator-side fee schedule
type Fees interface {
	Transparency() (*pricing.FeeTransparency, error)
	Quote(earnings decimal.Decimal) (*pricing.WithdrawalResult, error)
}

// Ensure concrete types implement interfaces
var (
	_ Checkouts = (*CheckoutService)(nil)
	_ Access    = (*AccessService)(nil)
	_ Fees      = (*FeeService)(nil)
)
