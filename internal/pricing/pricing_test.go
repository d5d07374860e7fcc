package pricing

import (
	"math/rand"
	"testing"

	"github.com/myfans/settlement/internal/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCheckoutBreakdown(t *testing.T) {
	tests := []struct {
		name       string
		unitPrice  string
		rate       string
		networkFee string
		wantFee    string
		wantTotal  string
		precision  int32
	}{
		{
			name:       "five percent platform fee",
			unitPrice:  "10",
			rate:       "0.05",
			networkFee: "0.00001",
			precision:  7,
			wantFee:    "0.5",
			wantTotal:  "10.50001",
		},
		{
			name:       "rounds half away from zero",
			unitPrice:  "0.15",
			rate:       "0.05",
			networkFee: "0",
			precision:  3,
			wantFee:    "0.008",
			wantTotal:  "0.158",
		},
		{
			name:       "free plan",
			unitPrice:  "0",
			rate:       "0.05",
			networkFee: "0.00001",
			precision:  7,
			wantFee:    "0",
			wantTotal:  "0.00001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := CheckoutBreakdown(dec(tt.unitPrice), dec(tt.rate), dec(tt.networkFee), "XLM", tt.precision)

			require.NoError(t, err)
			assert.True(t, dec(tt.wantFee).Equal(b.PlatformFee), "platform fee: got %s", b.PlatformFee)
			assert.True(t, dec(tt.wantTotal).Equal(b.Total), "total: got %s", b.Total)
			assert.True(t, dec(tt.unitPrice).Equal(b.Subtotal))
			assert.Equal(t, "XLM", b.Currency)
		})
	}
}

func TestCheckoutBreakdown_RejectsNegativeInputs(t *testing.T) {
	tests := []struct {
		name       string
		unitPrice  string
		rate       string
		networkFee string
	}{
		{"negative price", "-1", "0.05", "0"},
		{"negative rate", "1", "-0.05", "0"},
		{"negative network fee", "1", "0.05", "-0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CheckoutBreakdown(dec(tt.unitPrice), dec(tt.rate), dec(tt.networkFee), "XLM", 7)

			require.Error(t, err)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		})
	}
}

func TestCheckoutBreakdown_TotalIsSumOfParts(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		price := decimal.New(rng.Int63n(1_000_000_000), -int32(rng.Intn(8)))
		rate := decimal.New(rng.Int63n(10_000), -4)
		network := decimal.New(rng.Int63n(100_000), -7)

		first, err := CheckoutBreakdown(price, rate, network, "XLM", 7)
		require.NoError(t, err)
		second, err := CheckoutBreakdown(price, rate, network, "XLM", 7)
		require.NoError(t, err)

		sum := first.Subtotal.Add(first.PlatformFee).Add(first.NetworkFee)
		require.True(t, first.Total.Equal(sum), "total %s != %s for price=%s rate=%s", first.Total, sum, price, rate)
		require.True(t, first.Total.Equal(second.Total), "breakdown must be deterministic")
		require.True(t, first.PlatformFee.Equal(second.PlatformFee))
		require.True(t, first.Fee().Equal(first.Total.Sub(first.Subtotal)))
	}
}

func TestWithdrawalBreakdown_DefaultSchedule(t *testing.T) {
	r, err := WithdrawalBreakdown(dec("100"), 500, dec("1.00"), dec("0.02"), 6)

	require.NoError(t, err)
	assert.True(t, dec("5").Equal(r.ProtocolFee), "protocol fee: %s", r.ProtocolFee)
	assert.True(t, dec("95").Equal(r.NetEarnings))
	assert.True(t, dec("2.9").Equal(r.WithdrawalFee), "withdrawal fee: %s", r.WithdrawalFee)
	assert.True(t, dec("92.1").Equal(r.FinalAmount))
}

func TestWithdrawalBreakdown_FeeCappedAtNet(t *testing.T) {
	r, err := WithdrawalBreakdown(dec("0.5"), 500, dec("1.00"), dec("0.02"), 6)

	require.NoError(t, err)
	assert.True(t, r.WithdrawalFee.Equal(r.NetEarnings))
	assert.True(t, r.FinalAmount.IsZero())
}

func TestWithdrawalBreakdown_Validation(t *testing.T) {
	tests := []struct {
		name     string
		earnings string
		bps      int
		fixed    string
		rate     string
	}{
		{"negative earnings", "-1", 500, "1", "0.02"},
		{"bps below range", "10", -1, "1", "0.02"},
		{"bps above range", "10", 10001, "1", "0.02"},
		{"negative fixed fee", "10", 500, "-1", "0.02"},
		{"negative rate", "10", 500, "1", "-0.02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := WithdrawalBreakdown(dec(tt.earnings), tt.bps, dec(tt.fixed), dec(tt.rate), 6)
			assert.True(t, apperror.IsKind(err, apperror.KindValidation))
		})
	}
}

func TestWithdrawalBreakdown_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		earnings := decimal.New(rng.Int63n(10_000_000), -2)
		bps := rng.Intn(BasisPointsDenominator + 1)
		fixed := decimal.New(rng.Int63n(1000), -2)
		rate := decimal.New(rng.Int63n(1000), -4)

		r, err := WithdrawalBreakdown(earnings, bps, fixed, rate, 6)
		require.NoError(t, err)

		require.True(t, r.FinalAmount.LessThanOrEqual(earnings))
		require.False(t, r.ProtocolFee.IsNegative())
		require.False(t, r.NetEarnings.IsNegative())
		require.False(t, r.WithdrawalFee.IsNegative())
		require.False(t, r.FinalAmount.IsNegative())

		// Earnings have two decimals, so the protocol fee is exact at six.
		single, err := WithdrawalBreakdown(earnings, 1, fixed, rate, 6)
		require.NoError(t, err)
		require.True(t, r.ProtocolFee.Equal(single.ProtocolFee.Mul(decimal.NewFromInt(int64(bps)))),
			"protocol fee must scale linearly with bps")
	}
}

func TestFeeSchedule_Transparency(t *testing.T) {
	schedule := FeeSchedule{
		ProtocolFeeBps:     500,
		WithdrawalFixedFee: dec("1.00"),
		WithdrawalFeeRate:  dec("0.02"),
		Precision:          6,
	}

	ft, err := schedule.Transparency(dec("100"))

	require.NoError(t, err)
	assert.Equal(t, 500, ft.ProtocolFeeBps)
	assert.True(t, dec("5").Equal(ft.ProtocolFeePercentage))
	assert.True(t, dec("2").Equal(ft.WithdrawalFeePercentage))
	assert.True(t, dec("92.1").Equal(ft.Example.FinalAmount))
}
