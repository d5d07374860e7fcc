package handlers

import (
	"net/http"
	"testing"

	"github.com/myfans/settlement/internal/apperror"
	"github.com/myfans/settlement/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetFees(t *testing.T) {
	d := newTestMux(t)
	d.fees.On("Transparency").Return(&pricing.FeeTransparency{
		ProtocolFeeBps:          500,
		ProtocolFeePercentage:   decimal.NewFromInt(5),
		WithdrawalFeeFixed:      decimal.NewFromInt(1),
		WithdrawalFeePercentage: decimal.NewFromInt(2),
	}, nil)

	rec := d.do(http.MethodGet, "/api/v1/fees", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, float64(500), body["protocolFeeBps"])
	assert.Equal(t, "5", body["protocolFeePercentage"])
}

func TestQuoteWithdrawal(t *testing.T) {
	t.Run("quotes earnings", func(t *testing.T) {
		d := newTestMux(t)
		d.fees.On("Quote", mock.MatchedBy(func(e decimal.Decimal) bool {
			return e.Equal(decimal.NewFromInt(100))
		})).Return(&pricing.WithdrawalResult{
			Earnings:    decimal.NewFromInt(100),
			FinalAmount: decimal.RequireFromString("92.1"),
		}, nil)

		rec := d.do(http.MethodPost, "/api/v1/withdrawals/quote", `{"earnings":"100"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "92.1", decodeResponse(t, rec)["finalAmount"])
	})

	t.Run("negative earnings", func(t *testing.T) {
		d := newTestMux(t)
		d.fees.On("Quote", mock.Anything).Return(nil, apperror.New(apperror.KindValidation))

		rec := d.do(http.MethodPost, "/api/v1/withdrawals/quote", `{"earnings":"-1"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unparseable earnings", func(t *testing.T) {
		d := newTestMux(t)

		rec := d.do(http.MethodPost, "/api/v1/withdrawals/quote", `{"earnings":"lots"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
