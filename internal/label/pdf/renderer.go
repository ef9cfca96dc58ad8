// Package pdf renders shipping labels as 4x6 inch PDFs.
//
// Layout:
//
//	┌──────────────────────────────────┐
//	│ COURIER            payment text  │
//	│ barcode + tracking               │
//	│ SHIP TO address       │ QR       │
//	│ destination code / return code   │
//	│ item table with GST breakup      │
//	│ totals                           │
//	│ FROM seller address              │
//	└──────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"amorlias/internal/gst"
	"amorlias/internal/label"
)

const (
	pageWidthMM  = 101.6
	pageHeightMM = 152.4
)

var (
	colorDark = &props.Color{Red: 20, Green: 20, Blue: 20}
	colorGray = &props.Color{Red: 110, Green: 110, Blue: 110}
)

// Renderer draws labels with maroto.
type Renderer struct{}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer { return &Renderer{} }

// Render produces the PDF bytes for a label.
func (r *Renderer) Render(l *label.ShippingLabel) ([]byte, error) {
	if l == nil {
		return nil, fmt.Errorf("pdf: nil label")
	}

	cfg := config.NewBuilder().
		WithDimensions(pageWidthMM, pageHeightMM).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle("Shipping label "+l.OrderNumber, true).
		WithAuthor(l.Seller.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(courierRow(l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorDark, Thickness: 0.4}))

	barcodeRows, err := barcodeRows(l)
	if err != nil {
		return nil, err
	}
	m.AddRows(barcodeRows...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorDark, Thickness: 0.4}))

	shipTo, err := shipToRow(l)
	if err != nil {
		return nil, err
	}
	m.AddRows(shipTo)
	m.AddRows(codesRow(l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorDark, Thickness: 0.4}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(l)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(totalsRow(l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorDark, Thickness: 0.4}))
	m.AddRows(fromRow(l))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate label %s: %w", l.OrderNumber, err)
	}
	return doc.GetBytes(), nil
}

func courierRow(l *label.ShippingLabel) core.Row {
	return row.New(10).Add(
		col.New(5).Add(text.New(strings.ToUpper(l.Courier.DisplayLabel), props.Text{
			Style: fontstyle.Bold, Size: 13, Top: 1,
		})),
		col.New(7).Add(
			text.New(l.Courier.PaymentInstructionText, props.Text{
				Style: fontstyle.Bold, Size: 7, Align: align.Right, Top: 1,
			}),
			text.New("Order "+l.OrderNumber, props.Text{
				Size: 6, Align: align.Right, Top: 5, Color: colorGray,
			}),
		),
	)
}

func barcodeRows(l *label.ShippingLabel) ([]core.Row, error) {
	if l.Barcode.Payload == "" {
		return []core.Row{row.New(8).Add(col.New(12).Add(text.New("Tracking number not assigned", props.Text{
			Size: 8, Align: align.Center, Top: 2, Color: colorGray,
		})))}, nil
	}

	img, err := BarcodePNG(l.Barcode)
	if err != nil {
		return nil, err
	}
	rows := []core.Row{
		row.New(18).Add(col.New(12).Add(image.NewFromBytes(img, extension.Png, props.Rect{
			Center: true, Percent: 95,
		}))),
	}
	if l.Barcode.DisplayValue {
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(l.Barcode.Payload, props.Text{
			Size: 8, Align: align.Center, Top: 0.5,
		}))))
	}
	return rows, nil
}

func shipToRow(l *label.ShippingLabel) (core.Row, error) {
	a := l.ShipTo
	addr := joinNonEmpty(", ", a.Line1, a.Line2)
	cityLine := fmt.Sprintf("%s, %s - %s", a.City, a.State, a.Pincode)

	left := col.New(8).Add(
		text.New("SHIP TO", props.Text{Style: fontstyle.Bold, Size: 7, Top: 1}),
		text.New(a.Name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 5}),
		text.New(addr, props.Text{Size: 7, Top: 10}),
		text.New(cityLine, props.Text{Size: 7, Top: 14}),
	)
	if a.Phone != "" {
		left.Add(text.New("Ph: "+a.Phone, props.Text{Size: 7, Top: 18}))
	}

	right := col.New(4)
	if l.QR.Payload != "" {
		qrImg, err := QRPNG(l.QR)
		if err != nil {
			return nil, err
		}
		right.Add(image.NewFromBytes(qrImg, extension.Png, props.Rect{Center: true, Percent: 90}))
	}

	return row.New(24).Add(left, right), nil
}

func codesRow(l *label.ShippingLabel) core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New("Dest: "+l.DestinationCode, props.Text{Style: fontstyle.Bold, Size: 7, Top: 1})),
		col.New(6).Add(text.New("Return: "+l.ReturnCode, props.Text{Size: 7, Align: align.Right, Top: 1})),
	)
}

func tableHeaderRow() core.Row {
	h := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Style: fontstyle.Bold, Size: 6, Align: a, Top: 1}))
	}
	return row.New(5).Add(
		h("Item", 3, align.Left),
		h("HSN", 2, align.Left),
		h("Qty", 1, align.Center),
		h("Taxable", 2, align.Right),
		h("Tax", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func tableRows(l *label.ShippingLabel) []core.Row {
	rows := make([]core.Row, 0, len(l.Lines))
	for i := range l.Lines {
		ln := &l.Lines[i]
		taxLines := taxCaption(ln)
		height := 4.5 * float64(len(taxLines))
		if height < 5 {
			height = 5
		}

		taxCol := col.New(2)
		for j, s := range taxLines {
			taxCol.Add(text.New(s, props.Text{Size: 5.5, Align: align.Right, Top: 0.5 + 4*float64(j)}))
		}

		rows = append(rows, row.New(height).Add(
			col.New(3).Add(text.New(ln.Item.ProductName, props.Text{Size: 6, Top: 0.5})),
			col.New(2).Add(text.New(ln.Item.HSNCode, props.Text{Size: 6, Top: 0.5})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", ln.Item.Quantity), props.Text{Size: 6, Align: align.Center, Top: 0.5})),
			col.New(2).Add(text.New(rupees(ln.TaxableValue), props.Text{Size: 6, Align: align.Right, Top: 0.5})),
			taxCol,
			col.New(2).Add(text.New(rupees(ln.LineTotal), props.Text{Size: 6, Align: align.Right, Top: 0.5})),
		))
	}
	return rows
}

// taxCaption prints "CGST 9%" style captions from the line's own rate.
func taxCaption(ln *gst.LineTax) []string {
	rate := ln.Item.TaxRatePercent
	if ln.Breakup.Regime == gst.RegimeIntraState {
		half := gst.HalfRate(rate).String()
		return []string{
			fmt.Sprintf("CGST %s%%: %s", half, rupees(ln.Breakup.CGST.Decimal)),
			fmt.Sprintf("SGST %s%%: %s", half, rupees(ln.Breakup.SGST.Decimal)),
		}
	}
	return []string{fmt.Sprintf("IGST %s%%: %s", rate.String(), rupees(ln.Breakup.IGST.Decimal))}
}

func totalsRow(l *label.ShippingLabel) core.Row {
	t := l.Totals
	labels := []string{"Taxable value"}
	values := []string{rupees(t.Taxable)}
	if l.Regime == gst.RegimeIntraState {
		labels = append(labels, "CGST", "SGST")
		values = append(values, rupees(t.CGST), rupees(t.SGST))
	} else {
		labels = append(labels, "IGST")
		values = append(values, rupees(t.IGST))
	}
	labels = append(labels, "Grand total")
	values = append(values, rupees(t.GrandTotal))

	left, right := col.New(4), col.New(3)
	for i := range labels {
		style := fontstyle.Normal
		if i == len(labels)-1 {
			style = fontstyle.Bold
		}
		top := 0.5 + 3.5*float64(i)
		left.Add(text.New(labels[i]+":", props.Text{Style: style, Size: 6.5, Align: align.Right, Top: top}))
		right.Add(text.New(values[i], props.Text{Style: style, Size: 6.5, Align: align.Right, Top: top}))
	}
	return row.New(3.5*float64(len(labels))+1).Add(col.New(5), left, right)
}

func fromRow(l *label.ShippingLabel) core.Row {
	s := l.Seller
	return row.New(16).Add(col.New(12).Add(
		text.New("FROM (if undelivered, return to)", props.Text{Style: fontstyle.Bold, Size: 6, Top: 1}),
		text.New(s.CompanyName, props.Text{Style: fontstyle.Bold, Size: 7, Top: 4}),
		text.New(s.Address, props.Text{Size: 6, Top: 8, Color: colorGray}),
		text.New(fmt.Sprintf("%s, %s - %s", s.City, s.State, s.Pincode), props.Text{Size: 6, Top: 11.5, Color: colorGray}),
	))
}

func rupees(v decimal.Decimal) string {
	return "Rs." + v.StringFixed(2)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
