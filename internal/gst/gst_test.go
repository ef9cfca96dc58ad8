package gst_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amorlias/internal/domain"
	"amorlias/internal/gst"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1.004", "1"},
		{"1.005", "1.01"},
		{"2.675", "2.68"},
		{"-1.005", "-1.01"},
		{"99.999", "100"},
		{"12.3", "12.3"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, gst.Round2(d(tt.in)).Equal(d(tt.want)), "got %s", gst.Round2(d(tt.in)))
		})
	}
}

func TestRound2_Idempotent(t *testing.T) {
	for _, s := range []string{"0.125", "10.555", "1234.5678", "-7.005", "3"} {
		once := gst.Round2(d(s))
		assert.True(t, gst.Round2(once).Equal(once), s)
	}
}

func TestIsIntraState(t *testing.T) {
	assert.True(t, gst.IsIntraState("Tamil Nadu", "Tamil Nadu"))
	assert.False(t, gst.IsIntraState("tamil nadu", "Tamil Nadu"))
	assert.False(t, gst.IsIntraState("Kerala", "Tamil Nadu"))
	assert.True(t, gst.IsIntraState("", ""))
}

func TestBreakup_IntraState(t *testing.T) {
	b, err := gst.Breakup(d("1000"), d("18"), true)
	require.NoError(t, err)

	assert.Equal(t, gst.RegimeIntraState, b.Regime)
	require.True(t, b.CGST.Valid)
	require.True(t, b.SGST.Valid)
	assert.False(t, b.IGST.Valid)
	assert.True(t, b.CGST.Decimal.Equal(d("90")))
	assert.True(t, b.SGST.Decimal.Equal(d("90")))
	assert.True(t, b.TotalTax.Equal(d("180")))
}

func TestBreakup_InterState(t *testing.T) {
	b, err := gst.Breakup(d("1000"), d("18"), false)
	require.NoError(t, err)

	assert.Equal(t, gst.RegimeInterState, b.Regime)
	assert.False(t, b.CGST.Valid)
	assert.False(t, b.SGST.Valid)
	require.True(t, b.IGST.Valid)
	assert.True(t, b.IGST.Decimal.Equal(d("180")))
	assert.True(t, b.TotalTax.Equal(b.IGST.Decimal))
}

func TestBreakup_ZeroRate(t *testing.T) {
	for _, intra := range []bool{true, false} {
		b, err := gst.Breakup(d("499.99"), decimal.Zero, intra)
		require.NoError(t, err)
		assert.True(t, b.TotalTax.IsZero())
	}
}

func TestBreakup_HalvesRoundedBeforeSumming(t *testing.T) {
	// 10.01 * 5 / 200 = 0.25025 -> 0.25 per half
	b, err := gst.Breakup(d("10.01"), d("5"), true)
	require.NoError(t, err)
	assert.True(t, b.CGST.Decimal.Equal(d("0.25")))
	assert.True(t, b.TotalTax.Equal(d("0.5")))
}

func TestBreakup_NegativeInputs(t *testing.T) {
	_, err := gst.Breakup(d("-1"), d("18"), true)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = gst.Breakup(d("100"), d("-5"), false)
	assert.ErrorIs(t, err, gst.ErrInvalidArgument)
}

func TestBreakup_IntraStateHalvesAlwaysEqual(t *testing.T) {
	for paise := int64(0); paise <= 50000; paise += 37 {
		taxable := decimal.New(paise, -2)
		for _, rate := range []string{"0", "3", "5", "12", "18", "28"} {
			b, err := gst.Breakup(taxable, d(rate), true)
			require.NoError(t, err)
			assert.True(t, b.CGST.Decimal.Equal(b.SGST.Decimal))
			assert.True(t, b.CGST.Decimal.Add(b.SGST.Decimal).Equal(b.TotalTax))

			inter, err := gst.Breakup(taxable, d(rate), false)
			require.NoError(t, err)
			assert.True(t, inter.TotalTax.Equal(inter.IGST.Decimal))
		}
	}
}

func TestTaxableValue(t *testing.T) {
	v, err := gst.TaxableValue(d("1180"), d("18"))
	require.NoError(t, err)
	assert.True(t, v.Equal(d("1000")))

	v, err = gst.TaxableValue(d("999"), d("12"))
	require.NoError(t, err)
	assert.True(t, v.Equal(d("891.96")), "got %s", v)

	v, err = gst.TaxableValue(d("250"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, v.Equal(d("250")))
}

func TestTaxableValue_Errors(t *testing.T) {
	_, err := gst.TaxableValue(d("100"), d("-100"))
	assert.ErrorIs(t, err, domain.ErrDivisionByZero)

	_, err = gst.TaxableValue(d("-100"), d("-100"))
	assert.ErrorIs(t, err, gst.ErrDivisionByZero)

	_, err = gst.TaxableValue(d("100"), d("-5"))
	assert.ErrorIs(t, err, gst.ErrInvalidArgument)

	_, err = gst.TaxableValue(d("-0.01"), d("18"))
	assert.ErrorIs(t, err, gst.ErrInvalidArgument)
}

func TestOutOfRangeInputs(t *testing.T) {
	huge := decimal.New(1, 30000000)
	tiny := decimal.New(1, -30000000)

	_, err := gst.Breakup(huge, d("18"), false)
	assert.ErrorIs(t, err, gst.ErrInvalidArgument)

	_, err = gst.Breakup(d("100"), tiny, true)
	assert.ErrorIs(t, err, gst.ErrInvalidArgument)

	_, err = gst.TaxableValue(huge, d("18"))
	assert.ErrorIs(t, err, gst.ErrInvalidArgument)

	_, err = gst.TaxableValue(huge, d("-100"))
	assert.ErrorIs(t, err, gst.ErrDivisionByZero)

	_, _, err = gst.AddOnTop(d("100"), huge)
	assert.ErrorIs(t, err, gst.ErrInvalidArgument)

	_, err = gst.ComputeLine(gst.LineItem{ProductName: "Kurta", Quantity: 1, PriceInclusiveOfTax: huge, TaxRatePercent: d("5")}, true)
	assert.ErrorIs(t, err, gst.ErrInvalidArgument)

	b, err := gst.Breakup(decimal.New(5, 12), d("18"), false)
	require.NoError(t, err)
	assert.True(t, b.TotalTax.Equal(decimal.New(9, 11)))
}

func TestLineTotal_ReconcilesWithinOnePaisa(t *testing.T) {
	onePaisa := d("0.01")
	for paise := int64(0); paise <= 200000; paise += 113 {
		price := decimal.New(paise, -2)
		for _, rate := range []string{"0", "3", "5", "12", "18", "28"} {
			for _, intra := range []bool{true, false} {
				line, err := gst.ComputeLine(gst.LineItem{
					ProductName:         "probe",
					Quantity:            1,
					PriceInclusiveOfTax: price,
					TaxRatePercent:      d(rate),
				}, intra)
				require.NoError(t, err)
				drift := line.LineTotal.Sub(price).Abs()
				assert.True(t, drift.LessThanOrEqual(onePaisa),
					"price=%s rate=%s intra=%v total=%s", price, rate, intra, line.LineTotal)
			}
		}
	}
}

func TestComputeLine(t *testing.T) {
	line, err := gst.ComputeLine(gst.LineItem{
		ProductName:         "Cotton Saree",
		HSNCode:             "52085190",
		Quantity:            2,
		PriceInclusiveOfTax: d("2360"),
		TaxRatePercent:      d("18"),
	}, true)
	require.NoError(t, err)

	assert.True(t, line.TaxableValue.Equal(d("2000")))
	assert.True(t, line.Breakup.CGST.Decimal.Equal(d("180")))
	assert.True(t, line.Breakup.TotalTax.Equal(d("360")))
	assert.True(t, line.LineTotal.Equal(d("2360")))
	assert.Equal(t, "Cotton Saree", line.Item.ProductName)
}

func TestComputeLine_PropagatesError(t *testing.T) {
	_, err := gst.ComputeLine(gst.LineItem{
		ProductName:         "Broken",
		PriceInclusiveOfTax: d("10"),
		TaxRatePercent:      d("-100"),
	}, false)
	assert.ErrorIs(t, err, gst.ErrDivisionByZero)
	assert.Contains(t, err.Error(), "Broken")
}

func TestHalfRate(t *testing.T) {
	assert.True(t, gst.HalfRate(d("18")).Equal(d("9")))
	assert.True(t, gst.HalfRate(d("5")).Equal(d("2.5")))
	assert.True(t, gst.HalfRate(decimal.Zero).IsZero())
}

func TestAddOnTop(t *testing.T) {
	tax, total, err := gst.AddOnTop(d("1000"), d("18"))
	require.NoError(t, err)
	assert.True(t, tax.Equal(d("180")))
	assert.True(t, total.Equal(d("1180")))

	_, _, err = gst.AddOnTop(d("-1"), d("18"))
	assert.ErrorIs(t, err, gst.ErrInvalidArgument)
}
