package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase entitles a buyer to unlock one content item until ExpiresAt
type Purchase struct {
	PurchasedAt time.Time `db:"purchased_at" json:"purchasedAt"`
	ExpiresAt   time.Time `db:"expires_at" json:"expiresAt"`
	Buyer       string    `db:"buyer" json:"buyer"`
	ContentID   uint64    `db:"content_id" json:"contentId"`
	ID          uuid.UUID `db:"id" json:"id"`
}

// ActiveAt reports whether the purchase grants access at now.
func (p *Purchase) ActiveAt(now time.Time) bool {
	return now.Before(p.ExpiresAt)
}

// Plan is a creator's subscription offer
type Plan struct {
	Description    *string         `db:"description" json:"description,omitempty"`
	AssetIssuer    *string         `db:"asset_issuer" json:"assetIssuer,omitempty"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	CreatorAddress string          `db:"creator_address" json:"creatorAddress"`
	CreatorName    string          `db:"creator_name" json:"creatorName"`
	Name           string          `db:"name" json:"name"`
	AssetCode      string          `db:"asset_code" json:"assetCode"`
	IntervalDays   int             `db:"interval_days" json:"intervalDays"`
	ID             int64           `db:"id" json:"id"`
}

// Asset returns the asset the plan is priced in.
func (p *Plan) Asset() Asset {
	return Asset{Code: p.AssetCode, Issuer: p.AssetIssuer}
}

// IdempotencyKey tracks processed requests to prevent duplicate side effects
type IdempotencyKey struct {
	CreatedAt      time.Time `db:"created_at"`
	Key            string    `db:"key"`
	RequestPath    string    `db:"request_path"`
	ResponseBody   string    `db:"response_body"`
	ResponseStatus int       `db:"response_status"`
}
