package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutStatus represents the lifecycle state of a checkout session
type CheckoutStatus string

const (
	CheckoutStatusPending   CheckoutStatus = "pending"
	CheckoutStatusConfirmed CheckoutStatus = "confirmed"
	CheckoutStatusFailed    CheckoutStatus = "failed"
	CheckoutStatusExpired   CheckoutStatus = "expired"
)

// IsTerminal reports whether no further transition is allowed.
func (s CheckoutStatus) IsTerminal() bool {
	return s != CheckoutStatusPending
}

// NativeAssetCode is the asset code used for lumens.
const NativeAssetCode = "XLM"

// CheckoutSession is a priced, time-limited intent to pay for a plan
type CheckoutSession struct {
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updatedAt"`
	ExpiresAt      time.Time       `db:"expires_at" json:"expiresAt"`
	TxHash         *string         `db:"tx_hash" json:"txHash,omitempty"`
	Error          *string         `db:"error" json:"error,omitempty"`
	AssetIssuer    *string         `db:"asset_issuer" json:"assetIssuer,omitempty"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	Fee            decimal.Decimal `db:"fee" json:"fee"`
	NetworkFee     decimal.Decimal `db:"network_fee" json:"networkFee"`
	Total          decimal.Decimal `db:"total" json:"total"`
	FanAddress     string          `db:"fan_address" json:"fanAddress"`
	CreatorAddress string          `db:"creator_address" json:"creatorAddress"`
	AssetCode      string          `db:"asset_code" json:"assetCode"`
	Status         CheckoutStatus  `db:"status" json:"status"`
	PlanID         int64           `db:"plan_id" json:"planId"`
	RejectedByUser bool            `db:"rejected_by_user" json:"rejectedByUser"`
	ID             uuid.UUID       `db:"id" json:"id"`
}

// EffectiveStatus is the status readers must act on: a pending session at or
// past its expiry is expired regardless of the stored value.
func EffectiveStatus(s *CheckoutSession, now time.Time) CheckoutStatus {
	if s.Status == CheckoutStatusPending && !now.Before(s.ExpiresAt) {
		return CheckoutStatusExpired
	}
	return s.Status
}

// Asset identifies a Stellar asset.
type Asset struct {
	Code   string  `json:"code"`
	Issuer *string `json:"issuer,omitempty"`
}

// IsNative reports whether the asset is lumens.
func (a Asset) IsNative() bool {
	return a.Code == NativeAssetCode && (a.Issuer == nil || *a.Issuer == "")
}

// Matches reports whether b refers to the same asset. An unset issuer on the
// receiver matches any issuer.
func (a Asset) Matches(b Asset) bool {
	if a.Code != b.Code {
		return false
	}
	if a.Issuer == nil || *a.Issuer == "" {
		return true
	}
	return b.Issuer != nil && *b.Issuer == *a.Issuer
}

// Asset returns the asset the checkout is priced in.
func (s *CheckoutSession) Asset() Asset {
	return Asset{Code: s.AssetCode, Issuer: s.AssetIssuer}
}

// AssetBalance is one trustline (or the native balance) of an account.
type AssetBalance struct {
	Limit   *decimal.Decimal `json:"limit,omitempty"`
	Asset   Asset            `json:"asset"`
	Balance decimal.Decimal  `json:"balance"`
}
