package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	created := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	expires := created.Add(15 * time.Minute)

	tests := []struct {
		name   string
		stored CheckoutStatus
		now    time.Time
		want   CheckoutStatus
	}{
		{"pending before expiry", CheckoutStatusPending, expires.Add(-time.Second), CheckoutStatusPending},
		{"pending at expiry", CheckoutStatusPending, expires, CheckoutStatusExpired},
		{"pending after expiry", CheckoutStatusPending, expires.Add(time.Hour), CheckoutStatusExpired},
		{"confirmed after expiry", CheckoutStatusConfirmed, expires.Add(time.Hour), CheckoutStatusConfirmed},
		{"failed after expiry", CheckoutStatusFailed, expires.Add(time.Hour), CheckoutStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &CheckoutSession{Status: tt.stored, CreatedAt: created, ExpiresAt: expires}
			assert.Equal(t, tt.want, EffectiveStatus(s, tt.now))
			assert.Equal(t, tt.stored, s.Status, "effective status must not mutate the session")
		})
	}
}

func TestAsset_Matches(t *testing.T) {
	issuer := "GA5ZSEJYB37JRC5AVCIA5MOP4RHTM335X2KGX3IHOJAPP5RE34K4KZVN"
	other := "GBBD47IF6LWK7P7MDEVSCWR7DPUWV3NY3DTQEVFL4NAT4AQH3ZLLFLA5"

	assert.True(t, Asset{Code: "USDC"}.Matches(Asset{Code: "USDC", Issuer: &issuer}))
	assert.True(t, Asset{Code: "USDC", Issuer: &issuer}.Matches(Asset{Code: "USDC", Issuer: &issuer}))
	assert.False(t, Asset{Code: "USDC", Issuer: &issuer}.Matches(Asset{Code: "USDC", Issuer: &other}))
	assert.False(t, Asset{Code: "USDC", Issuer: &issuer}.Matches(Asset{Code: "USDC"}))
	assert.False(t, Asset{Code: "XLM"}.Matches(Asset{Code: "USDC"}))
	assert.True(t, Asset{Code: NativeAssetCode}.IsNative())
}

func TestPurchase_ActiveAt(t *testing.T) {
	purchased := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	p := &Purchase{PurchasedAt: purchased, ExpiresAt: purchased.Add(time.Hour)}

	assert.True(t, p.ActiveAt(purchased.Add(59*time.Minute)))
	assert.False(t, p.ActiveAt(purchased.Add(time.Hour)))
}
