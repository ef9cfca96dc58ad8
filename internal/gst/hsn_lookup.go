package gst

import (
	"github.com/shopspring/decimal"
)

// HSNEntry is one row of the HSN master.
type HSNEntry struct {
	Code          string          `db:"code"`
	Description   string          `db:"description"`
	GSTRate       decimal.Decimal `db:"gst_rate"`
	ConditionDesc string          `db:"condition_desc"`
}

// HSNRate is a valid GST rate for an HSN code, with an optional condition.
type HSNRate struct {
	Rate          decimal.Decimal `json:"rate"`
	ConditionDesc string          `json:"condition,omitempty"`
}

// HSNLookup answers HSN existence and rate questions from memory.
// It is immutable after construction and safe for concurrent access.
type HSNLookup struct {
	byCode map[string][]HSNRate
}

// NewHSNLookup indexes the given HSN master rows by code.
func NewHSNLookup(entries []HSNEntry) *HSNLookup {
	m := make(map[string][]HSNRate, len(entries))
	for idx := range entries {
		e := &entries[idx]
		m[e.Code] = append(m[e.Code], HSNRate{
			Rate:          e.GSTRate,
			ConditionDesc: e.ConditionDesc,
		})
	}
	return &HSNLookup{byCode: m}
}

// Len returns the number of distinct codes indexed.
func (h *HSNLookup) Len() int {
	if h == nil {
		return 0
	}
	return len(h.byCode)
}

// Exists reports whether the code, or its 6 or 4 digit prefix, is known.
func (h *HSNLookup) Exists(code string) bool {
	return len(h.Rates(code)) > 0
}

// Rates returns the valid rates for a code, falling back 8→6→4 digits.
func (h *HSNLookup) Rates(code string) []HSNRate {
	if h.Len() == 0 || code == "" {
		return nil
	}
	if rates, ok := h.byCode[code]; ok {
		return rates
	}
	for _, prefixLen := range []int{6, 4} {
		if len(code) > prefixLen {
			if rates, ok := h.byCode[code[:prefixLen]]; ok {
				return rates
			}
		}
	}
	return nil
}

// RateMatches checks a GST rate against the master. Rates are compared
// exactly since both sides are decimals.
func (h *HSNLookup) RateMatches(code string, rate decimal.Decimal) (matched bool, validRates []HSNRate) {
	validRates = h.Rates(code)
	if len(validRates) == 0 {
		return false, nil
	}
	for idx := range validRates {
		if validRates[idx].Rate.Equal(rate) {
			return true, validRates
		}
	}
	return false, validRates
}
