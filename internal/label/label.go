// Package label assembles everything printed on a 4x6 shipping label: courier
// profile, routing codes, per-line GST and barcode payloads. It does no
// rendering itself.
package label

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"amorlias/internal/courier"
	"amorlias/internal/domain"
	"amorlias/internal/gst"
)

var maxRate = decimal.NewFromInt(100)

const (
	BarcodeWidth  = 2
	BarcodeHeight = 55
	QRSize        = 80
)

// BarcodeSpec is handed to the barcode rasteriser.
type BarcodeSpec struct {
	Payload      string            `json:"payload"`
	Symbology    courier.Symbology `json:"symbology"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	DisplayValue bool              `json:"display_value"`
}

// QRSpec is handed to the QR rasteriser.
type QRSpec struct {
	Payload string `json:"payload"`
	Size    int    `json:"size"`
}

// Totals sums the line taxes of a label.
type Totals struct {
	Taxable    decimal.Decimal `json:"taxable"`
	CGST       decimal.Decimal `json:"cgst"`
	SGST       decimal.Decimal `json:"sgst"`
	IGST       decimal.Decimal `json:"igst"`
	Tax        decimal.Decimal `json:"tax"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// ShippingLabel is the render-ready view of an order.
type ShippingLabel struct {
	OrderID           uuid.UUID       `json:"order_id"`
	OrderNumber       string          `json:"order_number"`
	OrderDate         time.Time       `json:"order_date"`
	Seller            SellerSettings  `json:"seller"`
	ShipTo            domain.Address  `json:"ship_to"`
	Courier           courier.Profile `json:"courier"`
	CourierRecognised bool            `json:"courier_recognised"`
	DestinationCode   string          `json:"destination_code"`
	ReturnCode        string          `json:"return_code"`
	Regime            gst.Regime      `json:"regime"`
	Lines             []gst.LineTax   `json:"lines"`
	Totals            Totals          `json:"totals"`
	Barcode           BarcodeSpec     `json:"barcode"`
	QR                QRSpec          `json:"qr"`
	GeneratedAt       time.Time       `json:"generated_at"`
}

// Builder turns orders into shipping labels.
type Builder struct {
	rnd IntN
	now func() time.Time
}

// NewBuilder returns a Builder drawing return codes from math/rand/v2.
func NewBuilder() *Builder {
	return &Builder{rnd: rand.IntN, now: time.Now}
}

// WithRandom replaces the return-code random source.
func (b *Builder) WithRandom(rnd IntN) *Builder {
	b.rnd = rnd
	return b
}

// WithClock replaces the clock used for GeneratedAt.
func (b *Builder) WithClock(now func() time.Time) *Builder {
	b.now = now
	return b
}

// Build validates the inputs and assembles the label.
func (b *Builder) Build(order *domain.Order, seller SellerSettings) (*ShippingLabel, error) {
	if err := Validate(order, seller); err != nil {
		return nil, err
	}

	addr := order.ShippingAddress
	intra := gst.IsIntraState(addr.State, seller.State)
	regime := gst.RegimeInterState
	if intra {
		regime = gst.RegimeIntraState
	}

	kind, matchErr := courier.Match(order.Courier)
	profile := courier.ProfileFor(kind, order.IsCOD, order.TrackingNumber)

	lines := make([]gst.LineTax, 0, len(order.Items))
	totals := Totals{}
	for i := range order.Items {
		item := &order.Items[i]
		line, err := gst.ComputeLine(gst.LineItem{
			ProductName:         item.ProductName,
			HSNCode:             item.HSNCode,
			Quantity:            item.Quantity,
			PriceInclusiveOfTax: item.LineTotal,
			TaxRatePercent:      item.TaxRate,
		}, intra)
		if err != nil {
			if errors.Is(err, domain.ErrDivisionByZero) || errors.Is(err, domain.ErrInvalidArgument) {
				return nil, errors.Join(domain.ErrInvalidTaxRate, err)
			}
			return nil, err
		}
		lines = append(lines, line)
		totals.add(line)
	}

	returnPincode := seller.Pincode
	if returnPincode == "" {
		returnPincode = addr.Pincode
	}

	return &ShippingLabel{
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		OrderDate:         order.CreatedAt,
		Seller:            seller,
		ShipTo:            addr,
		Courier:           profile,
		CourierRecognised: matchErr == nil,
		DestinationCode:   DestinationCode(addr.City, addr.State),
		ReturnCode:        ReturnCode(returnPincode, b.rnd),
		Regime:            regime,
		Lines:             lines,
		Totals:            totals,
		Barcode: BarcodeSpec{
			Payload:      profile.TrackingValue,
			Symbology:    profile.Symbology,
			Width:        BarcodeWidth,
			Height:       BarcodeHeight,
			DisplayValue: true,
		},
		QR:          QRSpec{Payload: profile.TrackingValue, Size: QRSize},
		GeneratedAt: b.now().UTC(),
	}, nil
}

func (t *Totals) add(line gst.LineTax) {
	t.Taxable = t.Taxable.Add(line.TaxableValue)
	if line.Breakup.CGST.Valid {
		t.CGST = t.CGST.Add(line.Breakup.CGST.Decimal)
	}
	if line.Breakup.SGST.Valid {
		t.SGST = t.SGST.Add(line.Breakup.SGST.Decimal)
	}
	if line.Breakup.IGST.Valid {
		t.IGST = t.IGST.Add(line.Breakup.IGST.Decimal)
	}
	t.Tax = t.Tax.Add(line.Breakup.TotalTax)
	t.GrandTotal = t.GrandTotal.Add(line.LineTotal)
}
