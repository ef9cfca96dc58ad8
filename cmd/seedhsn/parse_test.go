package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"5%", "5", true},
		{" 12 % ", "12", true},
		{"0.18", "18", true},
		{"Exempt", "0", true},
		{"0", "0", true},
		{"", "", false},
		{"n/a", "", false},
		{"-5%", "", false},
	}
	for _, tt := range tests {
		got, ok := parseRate(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s: got %s", tt.in, got)
		}
	}
}

func TestParseHSNRows_FromWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)

	set := func(cell, v string) { require.NoError(t, f.SetCellValue(sheet, cell, v)) }
	// Row 6 is the first data row.
	set("F6", "6109")
	set("H6", "T-shirts, singlets")
	set("I6", "610910")
	set("J6", "Of cotton")
	set("K6", "61091000")
	set("M6", "T-shirts of cotton")
	set("N6", "5%")
	set("F7", "8471")
	set("K7", "84713010")
	set("N7", "18%")
	set("F8", "6109")
	set("N8", "5%")

	rows, err := f.GetRows(sheet)
	require.NoError(t, err)

	got := parseHSNRows(rows, storeChapters)
	require.Len(t, got, 3)
	assert.Equal(t, "61091000", got[0].Code)
	assert.Equal(t, "6109", got[0].ParentCode)
	assert.Equal(t, "610910", got[1].Code)
	assert.Equal(t, "6109", got[2].Code)
	assert.Empty(t, got[2].ParentCode)
	assert.Nil(t, got[2].parentOrNil())
	for _, r := range got {
		assert.True(t, r.GSTRate.Equal(decimal.NewFromInt(5)))
	}
}
