// Package gst splits GST-inclusive prices into taxable value and tax
// components. CGST and SGST apply when goods stay within a state; IGST applies
// when they cross a state border.
package gst

import (
	"fmt"

	"github.com/shopspring/decimal"

	"amorlias/internal/domain"
)

var (
	// ErrInvalidArgument is returned for negative amounts or rates.
	ErrInvalidArgument = domain.ErrInvalidArgument
	// ErrDivisionByZero is returned when a rate of -100% would divide by zero.
	ErrDivisionByZero = domain.ErrDivisionByZero
)

var (
	hundred    = decimal.NewFromInt(100)
	twoHundred = decimal.NewFromInt(200)
	two        = decimal.NewFromInt(2)
)

// Inputs must keep their exponent and coefficient inside these bounds so
// rescaling to paise stays cheap.
const (
	maxExponent        = 28
	maxCoefficientBits = 256
)

// bounded reports whether v is small enough to compute with.
func bounded(v decimal.Decimal) bool {
	e := v.Exponent()
	return e >= -maxExponent && e <= maxExponent && v.Coefficient().BitLen() <= maxCoefficientBits
}

func checkBounds(values ...decimal.Decimal) error {
	for _, v := range values {
		if !bounded(v) {
			return fmt.Errorf("amount out of range: %w", ErrInvalidArgument)
		}
	}
	return nil
}

// Regime selects which taxes apply to a line.
type Regime string

const (
	RegimeIntraState Regime = "intra_state"
	RegimeInterState Regime = "inter_state"
)

// LineItem is one order line priced inclusive of tax.
type LineItem struct {
	ProductName         string          `json:"product_name"`
	HSNCode             string          `json:"hsn_code"`
	Quantity            int             `json:"quantity"`
	PriceInclusiveOfTax decimal.Decimal `json:"price_inclusive_of_tax"`
	TaxRatePercent      decimal.Decimal `json:"tax_rate_percent"`
}

// TaxBreakup holds either CGST and SGST or IGST, never both.
type TaxBreakup struct {
	Regime   Regime              `json:"regime"`
	CGST     decimal.NullDecimal `json:"cgst"`
	SGST     decimal.NullDecimal `json:"sgst"`
	IGST     decimal.NullDecimal `json:"igst"`
	TotalTax decimal.Decimal     `json:"total_tax"`
}

// LineTax is the computed tax view of a single line.
type LineTax struct {
	Item         LineItem        `json:"item"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	Breakup      TaxBreakup      `json:"breakup"`
	LineTotal    decimal.Decimal `json:"line_total"`
}

// Round2 rounds to the paisa, half away from zero.
func Round2(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}

// IsIntraState reports whether shipping stays within the seller's state.
// The comparison is exact and case-sensitive.
func IsIntraState(shipState, sellerState string) bool {
	return shipState == sellerState
}

// HalfRate returns the CGST or SGST share of a GST rate.
func HalfRate(rate decimal.Decimal) decimal.Decimal {
	return rate.Div(two)
}

// Breakup computes the tax on a taxable value.
func Breakup(taxableValue, ratePercent decimal.Decimal, intraState bool) (TaxBreakup, error) {
	if err := checkBounds(taxableValue, ratePercent); err != nil {
		return TaxBreakup{}, err
	}
	if taxableValue.IsNegative() {
		return TaxBreakup{}, fmt.Errorf("taxable value %s: %w", taxableValue, ErrInvalidArgument)
	}
	if ratePercent.IsNegative() {
		return TaxBreakup{}, fmt.Errorf("rate %s: %w", ratePercent, ErrInvalidArgument)
	}

	if intraState {
		half := Round2(taxableValue.Mul(ratePercent).Div(twoHundred))
		return TaxBreakup{
			Regime:   RegimeIntraState,
			CGST:     decimal.NewNullDecimal(half),
			SGST:     decimal.NewNullDecimal(half),
			TotalTax: Round2(half.Add(half)),
		}, nil
	}

	igst := Round2(taxableValue.Mul(ratePercent).Div(hundred))
	return TaxBreakup{
		Regime:   RegimeInterState,
		IGST:     decimal.NewNullDecimal(igst),
		TotalTax: igst,
	}, nil
}

// TaxableValue extracts the pre-tax value from a GST-inclusive price.
func TaxableValue(priceInclusive, ratePercent decimal.Decimal) (decimal.Decimal, error) {
	if ratePercent.Equal(hundred.Neg()) {
		return decimal.Zero, ErrDivisionByZero
	}
	if err := checkBounds(priceInclusive, ratePercent); err != nil {
		return decimal.Zero, err
	}
	if priceInclusive.IsNegative() {
		return decimal.Zero, fmt.Errorf("price %s: %w", priceInclusive, ErrInvalidArgument)
	}
	if ratePercent.IsNegative() {
		return decimal.Zero, fmt.Errorf("rate %s: %w", ratePercent, ErrInvalidArgument)
	}
	divisor := decimal.NewFromInt(1).Add(ratePercent.Div(hundred))
	return Round2(priceInclusive.Div(divisor)), nil
}

// LineTotal reconciles taxable value and tax back to the charged amount.
func LineTotal(taxableValue, totalTax decimal.Decimal) decimal.Decimal {
	return Round2(taxableValue.Add(totalTax))
}

// ComputeLine derives the full tax view of a line item.
func ComputeLine(item LineItem, intraState bool) (LineTax, error) {
	taxable, err := TaxableValue(item.PriceInclusiveOfTax, item.TaxRatePercent)
	if err != nil {
		return LineTax{}, fmt.Errorf("gst.ComputeLine %q: %w", item.ProductName, err)
	}
	breakup, err := Breakup(taxable, item.TaxRatePercent, intraState)
	if err != nil {
		return LineTax{}, fmt.Errorf("gst.ComputeLine %q: %w", item.ProductName, err)
	}
	return LineTax{
		Item:         item,
		TaxableValue: taxable,
		Breakup:      breakup,
		LineTotal:    LineTotal(taxable, breakup.TotalTax),
	}, nil
}

// AddOnTop computes tax charged on top of an exclusive amount, as the counter
// sale does with the default GST rate.
func AddOnTop(exclusive, ratePercent decimal.Decimal) (tax, total decimal.Decimal, err error) {
	if exclusive.IsNegative() || ratePercent.IsNegative() {
		return decimal.Zero, decimal.Zero, ErrInvalidArgument
	}
	if err := checkBounds(exclusive, ratePercent); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	tax = Round2(exclusive.Mul(ratePercent).Div(hundred))
	return tax, Round2(exclusive.Add(tax)), nil
}
