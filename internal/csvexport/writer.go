// Package csvexport writes the GST sales register: one row per order line
// with its taxable value and CGST/SGST/IGST split.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"amorlias/internal/domain"
	"amorlias/internal/gst"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var columns = []string{
	"Order Number",
	"Order Date",
	"Status",
	"Channel",
	"Customer",
	"Ship To State",
	"Supply",
	"Product",
	"HSN",
	"Quantity",
	"GST Rate",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Total Tax",
	"Line Total",
}

// Writer wraps csv.Writer for exporting the sales register.
type Writer struct {
	csv         *csv.Writer
	sellerState string
}

// NewWriter creates a Writer that writes CSV to w. sellerState decides
// between intra-state and inter-state tax for every line.
func NewWriter(w io.Writer, sellerState string) *Writer {
	return &Writer{csv: csv.NewWriter(w), sellerState: sellerState}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteOrders writes one row per line item of each order.
func (w *Writer) WriteOrders(orders []domain.Order) error {
	for i := range orders {
		rows, err := w.orderRows(&orders[i])
		if err != nil {
			return err
		}
		if err := w.csv.WriteAll(rows); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func (w *Writer) orderRows(o *domain.Order) ([][]string, error) {
	intra := gst.IsIntraState(o.ShippingAddress.State, w.sellerState)
	supply := "Inter-state"
	if intra {
		supply = "Intra-state"
	}
	channel := "Online"
	if o.IsOffline {
		channel = "Counter"
	}

	rows := make([][]string, 0, len(o.Items))
	for _, item := range o.Items {
		line, err := gst.ComputeLine(gst.LineItem{
			ProductName:         item.ProductName,
			HSNCode:             item.HSNCode,
			Quantity:            item.Quantity,
			PriceInclusiveOfTax: item.LineTotal,
			TaxRatePercent:      item.TaxRate,
		}, intra)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", o.OrderNumber, err)
		}

		rows = append(rows, []string{
			o.OrderNumber,
			o.CreatedAt.Format("2006-01-02"),
			string(o.Status),
			channel,
			o.ShippingAddress.Name,
			o.ShippingAddress.State,
			supply,
			item.ProductName,
			item.HSNCode,
			strconv.Itoa(item.Quantity),
			item.TaxRate.String(),
			formatMoney(line.TaxableValue),
			formatNullMoney(line.Breakup.CGST),
			formatNullMoney(line.Breakup.SGST),
			formatNullMoney(line.Breakup.IGST),
			formatMoney(line.Breakup.TotalTax),
			formatMoney(line.LineTotal),
		})
	}
	return rows, nil
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func formatNullMoney(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return formatMoney(v.Decimal)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces characters outside [A-Za-z0-9_-] with _, collapses
// runs of underscores and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_name}_{YYYY-MM-DD}.{ext}.
func BuildFilename(name, ext string, day time.Time) string {
	return fmt.Sprintf("%s_%s.%s", SanitizeFilename(name), day.Format("2006-01-02"), ext)
}
