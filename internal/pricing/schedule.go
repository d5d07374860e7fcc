package pricing

import "github.com/shopspring/decimal"

// FeeSchedule holds the creator-side fee parameters.
type FeeSchedule struct {
	WithdrawalFixedFee decimal.Decimal
	WithdrawalFeeRate  decimal.Decimal
	ProtocolFeeBps     int
	Precision          int32
}

// FeeTransparency describes a FeeSchedule together with a worked example.
type FeeTransparency struct {
	ProtocolFeeBps          int              `json:"protocolFeeBps"`
	ProtocolFeePercentage   decimal.Decimal  `json:"protocolFeePercentage"`
	WithdrawalFeeFixed      decimal.Decimal  `json:"withdrawalFeeFixed"`
	WithdrawalFeePercentage decimal.Decimal  `json:"withdrawalFeePercentage"`
	Example                 WithdrawalResult `json:"example"`
}

// Quote computes the withdrawal breakdown for earnings.
func (s FeeSchedule) Quote(earnings decimal.Decimal) (WithdrawalResult, error) {
	return WithdrawalBreakdown(earnings, s.ProtocolFeeBps, s.WithdrawalFixedFee, s.WithdrawalFeeRate, s.Precision)
}

// Transparency describes the schedule using earnings as the worked example.
func (s FeeSchedule) Transparency(earnings decimal.Decimal) (FeeTransparency, error) {
	example, err := s.Quote(earnings)
	if err != nil {
		return FeeTransparency{}, err
	}

	hundred := decimal.NewFromInt(100)
	return FeeTransparency{
		ProtocolFeeBps:          s.ProtocolFeeBps,
		ProtocolFeePercentage:   decimal.NewFromInt(int64(s.ProtocolFeeBps)).Div(decimal.NewFromInt(BasisPointsDenominator)).Mul(hundred),
		WithdrawalFeeFixed:      s.WithdrawalFixedFee,
		WithdrawalFeePercentage: s.WithdrawalFeeRate.Mul(hundred),
		Example:                 example,
	}, nil
}
