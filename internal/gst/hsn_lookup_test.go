package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"amorlias/internal/gst"
)

func newLookup() *gst.HSNLookup {
	return gst.NewHSNLookup([]gst.HSNEntry{
		{Code: "6109", Description: "T-shirts, knitted", GSTRate: d("5"), ConditionDesc: "sale value not exceeding Rs. 1000"},
		{Code: "6109", Description: "T-shirts, knitted", GSTRate: d("12"), ConditionDesc: "sale value exceeding Rs. 1000"},
		{Code: "520851", Description: "Printed cotton fabric", GSTRate: d("5")},
		{Code: "33049910", Description: "Face creams", GSTRate: d("18")},
	})
}

func TestHSNLookup_Exists(t *testing.T) {
	h := newLookup()

	assert.True(t, h.Exists("33049910"))
	assert.True(t, h.Exists("52085190"), "6-digit prefix")
	assert.True(t, h.Exists("61091000"), "4-digit prefix")
	assert.False(t, h.Exists("99999999"))
	assert.False(t, h.Exists(""))
}

func TestHSNLookup_EmptyTable(t *testing.T) {
	h := gst.NewHSNLookup(nil)
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.Exists("6109"))
	assert.Nil(t, h.Rates("6109"))
}

func TestHSNLookup_RateMatches(t *testing.T) {
	h := newLookup()

	matched, rates := h.RateMatches("61091000", d("12"))
	assert.True(t, matched)
	assert.Len(t, rates, 2)

	matched, rates = h.RateMatches("33049910", d("12"))
	assert.False(t, matched)
	assert.Len(t, rates, 1)

	matched, rates = h.RateMatches("0000", d("5"))
	assert.False(t, matched)
	assert.Nil(t, rates)
}
