// Package pricing computes checkout and withdrawal fee breakdowns using
// fixed-point decimal arithmetic.
package pricing

import (
	"github.com/myfans/settlement/internal/apperror"
	"github.com/shopspring/decimal"
)

// BasisPointsDenominator is the number of basis points in 100%.
const BasisPointsDenominator = 10000

// PriceBreakdown is the amount a fan pays for a checkout.
type PriceBreakdown struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	PlatformFee decimal.Decimal `json:"platformFee"`
	NetworkFee  decimal.Decimal `json:"networkFee"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
}

// Fee returns the fees charged on top of the subtotal.
func (b PriceBreakdown) Fee() decimal.Decimal {
	return b.PlatformFee.Add(b.NetworkFee)
}

// WithdrawalResult is the amount a creator receives for a withdrawal.
type WithdrawalResult struct {
	Earnings      decimal.Decimal `json:"earnings"`
	ProtocolFee   decimal.Decimal `json:"protocolFee"`
	NetEarnings   decimal.Decimal `json:"netEarnings"`
	WithdrawalFee decimal.Decimal `json:"withdrawalFee"`
	FinalAmount   decimal.Decimal `json:"finalAmount"`
}

// CheckoutBreakdown prices a plan. The platform fee is rounded half away from
// zero to precision decimal places; the total is the exact sum of its parts.
func CheckoutBreakdown(unitPrice, platformFeeRate, networkFee decimal.Decimal, currency string, precision int32) (PriceBreakdown, error) {
	if unitPrice.IsNegative() {
		return PriceBreakdown{}, invalidInput("unit price cannot be negative", unitPrice)
	}
	if platformFeeRate.IsNegative() {
		return PriceBreakdown{}, invalidInput("platform fee rate cannot be negative", platformFeeRate)
	}
	if networkFee.IsNegative() {
		return PriceBreakdown{}, invalidInput("network fee cannot be negative", networkFee)
	}

	platformFee := unitPrice.Mul(platformFeeRate).Round(precision)

	return PriceBreakdown{
		Subtotal:    unitPrice,
		PlatformFee: platformFee,
		NetworkFee:  networkFee,
		Total:       unitPrice.Add(platformFee).Add(networkFee),
		Currency:    currency,
	}, nil
}

// WithdrawalBreakdown computes protocol and withdrawal fees for earnings.
// The withdrawal fee is capped at the net earnings so the final amount never
// goes negative.
func WithdrawalBreakdown(earnings decimal.Decimal, protocolFeeBps int, fixedFee, feeRate decimal.Decimal, precision int32) (WithdrawalResult, error) {
	if earnings.IsNegative() {
		return WithdrawalResult{}, invalidInput("earnings cannot be negative", earnings)
	}
	if protocolFeeBps < 0 || protocolFeeBps > BasisPointsDenominator {
		return WithdrawalResult{}, apperror.Classify(apperror.KindValidation, apperror.Overrides{
			Message: "protocol fee must be between 0 and 10000 basis points",
			Context: map[string]any{"protocolFeeBps": protocolFeeBps},
		})
	}
	if fixedFee.IsNegative() {
		return WithdrawalResult{}, invalidInput("withdrawal fixed fee cannot be negative", fixedFee)
	}
	if feeRate.IsNegative() {
		return WithdrawalResult{}, invalidInput("withdrawal fee rate cannot be negative", feeRate)
	}

	protocolFee := earnings.
		Mul(decimal.NewFromInt(int64(protocolFeeBps))).
		Div(decimal.NewFromInt(BasisPointsDenominator)).
		Round(precision)
	net := earnings.Sub(protocolFee)

	withdrawalFee := fixedFee.Add(feeRate.Mul(net)).Round(precision)
	if withdrawalFee.GreaterThan(net) {
		withdrawalFee = net
	}

	return WithdrawalResult{
		Earnings:      earnings,
		ProtocolFee:   protocolFee,
		NetEarnings:   net,
		WithdrawalFee: withdrawalFee,
		FinalAmount:   net.Sub(withdrawalFee),
	}, nil
}

func invalidInput(msg string, v decimal.Decimal) *apperror.Error {
	return apperror.Classify(apperror.KindValidation, apperror.Overrides{
		Message: msg,
		Context: map[string]any{"value": v.String()},
	})
}
