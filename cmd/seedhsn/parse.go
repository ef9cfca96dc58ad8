package main

import (
	"strings"

	"github.com/shopspring/decimal"
)

// storeChapters are the HSN chapters for textiles, apparel, footwear,
// headgear and imitation jewellery.
var storeChapters = []string{"50", "51", "52", "53", "54", "55", "56", "58", "60", "61", "62", "63", "64", "65", "71"}

type hsnRow struct {
	Code        string
	Description string
	GSTRate     decimal.Decimal
	ParentCode  string
}

func (r hsnRow) parentOrNil() interface{} {
	if r.ParentCode == "" {
		return nil
	}
	return r.ParentCode
}

// parseHSNRows reads the goods sheet of the HSN master.
// Columns: F(5)=4-digit, H(7)=4-digit desc, I(8)=6-digit, J(9)=6-digit desc,
// K(10)=8-digit, M(12)=8-digit desc, N(13)=GST rate. Data starts at row index 5.
func parseHSNRows(rows [][]string, chapters []string) []hsnRow {
	seen := make(map[string]bool)
	var out []hsnRow
	for i := 5; i < len(rows); i++ {
		row := rows[i]
		rate, ok := parseRate(cellVal(row, 13))
		if !ok {
			continue
		}
		for _, col := range [][2]int{{10, 12}, {8, 9}, {5, 7}} {
			code := strings.TrimSpace(cellVal(row, col[0]))
			if !isNumeric(code) || !inChapters(code, chapters) {
				continue
			}
			key := code + "|" + rate.StringFixed(2)
			if seen[key] {
				continue
			}
			seen[key] = true

			r := hsnRow{Code: code, Description: strings.TrimSpace(cellVal(row, col[1])), GSTRate: rate}
			if len(code) > 4 {
				r.ParentCode = code[:4]
			}
			out = append(out, r)
		}
	}
	return out
}

// parseRate accepts "5%", "12", "0.05" style cells. Fractions below 1 are
// percentages stored as ratios by the spreadsheet.
func parseRate(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "exempt") || strings.EqualFold(s, "nil") {
		return decimal.Zero, true
	}
	pct := strings.HasSuffix(s, "%")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	if !pct && d.LessThan(decimal.NewFromInt(1)) && !d.IsZero() {
		d = d.Mul(decimal.NewFromInt(100))
	}
	return d.Round(2), true
}

func inChapters(code string, chapters []string) bool {
	if len(chapters) == 0 {
		return true
	}
	for _, ch := range chapters {
		if strings.HasPrefix(code, ch) {
			return true
		}
	}
	return false
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
