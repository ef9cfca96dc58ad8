package pdf_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amorlias/internal/courier"
	"amorlias/internal/domain"
	"amorlias/internal/label"
	"amorlias/internal/label/pdf"
)

func buildLabel(t *testing.T, courierName, shipState string) *label.ShippingLabel {
	t.Helper()
	order := &domain.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20260301-123456",
		ShippingAddress: domain.Address{
			Name: "Anil", Line1: "22 Temple St", City: "Madurai", State: shipState, Pincode: "625001", Phone: "9876543210",
		},
		Courier:        courierName,
		TrackingNumber: "vm77aa10",
		Items: domain.OrderItems{
			{ProductName: "Silk Saree", HSNCode: "50072010", Quantity: 1, LineTotal: decimal.NewFromInt(2100), TaxRate: decimal.NewFromInt(5)},
		},
	}
	seller := label.SellerSettings{CompanyName: "Amorlias", Address: "1 Main Rd", City: "Coimbatore", State: "Tamil Nadu", Pincode: "641001"}
	l, err := label.NewBuilder().Build(order, seller)
	require.NoError(t, err)
	return l
}

func TestRenderer_Render(t *testing.T) {
	r := pdf.NewRenderer()

	for _, tc := range []struct{ courier, state string }{
		{"Valmo", "Tamil Nadu"},
		{"Shadowfax", "Kerala"},
		{"Delhivery", "Karnataka"},
	} {
		t.Run(tc.courier, func(t *testing.T) {
			out, err := r.Render(buildLabel(t, tc.courier, tc.state))
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
		})
	}
}

func TestRenderer_RenderWithoutTracking(t *testing.T) {
	l := buildLabel(t, "Delhivery", "Kerala")
	l.Barcode.Payload = ""
	l.QR.Payload = ""

	out, err := pdf.NewRenderer().Render(l)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderer_NilLabel(t *testing.T) {
	_, err := pdf.NewRenderer().Render(nil)
	assert.Error(t, err)
}

func TestBarcodePNG(t *testing.T) {
	for _, sym := range []courier.Symbology{courier.CODE128, courier.CODE39} {
		t.Run(string(sym), func(t *testing.T) {
			raw, err := pdf.BarcodePNG(label.BarcodeSpec{
				Payload: "Ab12cd", Symbology: sym, Width: 2, Height: 55, DisplayValue: true,
			})
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(raw))
			require.NoError(t, err)
			assert.Equal(t, 55, img.Bounds().Dy())
			assert.Equal(t, 0, img.Bounds().Dx()%2)
		})
	}
}

func TestBarcodePNG_EmptyPayload(t *testing.T) {
	_, err := pdf.BarcodePNG(label.BarcodeSpec{Symbology: courier.CODE128, Width: 2, Height: 55})
	assert.Error(t, err)
}

func TestQRPNG(t *testing.T) {
	raw, err := pdf.QRPNG(label.QRSpec{Payload: "SFX0001", Size: 80})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 80, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}
