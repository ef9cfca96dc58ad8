package label_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amorlias/internal/courier"
	"amorlias/internal/domain"
	"amorlias/internal/gst"
	"amorlias/internal/label"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testSeller() label.SellerSettings {
	return label.SellerSettings{
		CompanyName: "Amorlias Fashions",
		Address:     "12 Market Road",
		City:        "Coimbatore",
		State:       "Tamil Nadu",
		Pincode:     "641001",
	}
}

func testOrder() *domain.Order {
	return &domain.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20260101-000042",
		ShippingAddress: domain.Address{
			Name:    "Priya",
			Line1:   "4 Lake View",
			City:    "Navi Mumbai",
			State:   "Maharashtra",
			Pincode: "400703",
		},
		Courier:        "Shadowfax",
		TrackingNumber: "sfx0001",
		IsCOD:          true,
		Items: domain.OrderItems{
			{ProductName: "Kurti", HSNCode: "6104", Quantity: 1, LineTotal: d("1180"), TaxRate: d("18")},
			{ProductName: "Dupatta", HSNCode: "6214", Quantity: 2, LineTotal: d("1050"), TaxRate: d("5")},
		},
		CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func fixedRand(v int) label.IntN {
	return func(n int) int { return v }
}

var returnCodeRe = regexp.MustCompile(`^\d+,\d{7}$`)

func TestReturnCode_Format(t *testing.T) {
	for i := 0; i < 200; i++ {
		assert.Regexp(t, returnCodeRe, label.ReturnCode("641001", nil))
	}
}

func TestReturnCode_Bounds(t *testing.T) {
	assert.Equal(t, "641001,1000000", label.ReturnCode("641001", fixedRand(0)))
	assert.Equal(t, "641001,9999999", label.ReturnCode("641001", fixedRand(8999999)))
}

func TestDestinationCode(t *testing.T) {
	assert.Equal(t, "NaviMumbai_Maharashtra_D", label.DestinationCode("Navi Mumbai", "Maharashtra"))
	assert.Equal(t, "Chennai_Tamil_D", label.DestinationCode("Chennai", "Tamil Nadu"))
	assert.Equal(t, "NewDelhi_Delhi_D", label.DestinationCode(" New  Delhi ", "Delhi"))
	assert.Equal(t, "__D", label.DestinationCode("", ""))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *domain.Order, s *label.SellerSettings)
		want   error
	}{
		{"ok", func(o *domain.Order, s *label.SellerSettings) {}, nil},
		{"missing address", func(o *domain.Order, s *label.SellerSettings) { o.ShippingAddress = domain.Address{} }, domain.ErrMissingAddress},
		{"missing state", func(o *domain.Order, s *label.SellerSettings) { o.ShippingAddress.State = "" }, domain.ErrMissingAddress},
		{"no items", func(o *domain.Order, s *label.SellerSettings) { o.Items = nil }, domain.ErrMissingItems},
		{"zero quantity", func(o *domain.Order, s *label.SellerSettings) { o.Items[1].Quantity = 0 }, domain.ErrInvalidQuantity},
		{"negative rate", func(o *domain.Order, s *label.SellerSettings) { o.Items[0].TaxRate = d("-100") }, domain.ErrInvalidTaxRate},
		{"rate over 100", func(o *domain.Order, s *label.SellerSettings) { o.Items[0].TaxRate = d("180") }, domain.ErrInvalidTaxRate},
		{"no seller state", func(o *domain.Order, s *label.SellerSettings) { s.State = "" }, domain.ErrMissingSettings},
		{"no company", func(o *domain.Order, s *label.SellerSettings) { s.CompanyName = " " }, domain.ErrMissingSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, s := testOrder(), testSeller()
			tt.mutate(o, &s)
			err := label.Validate(o, s)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_NilOrder(t *testing.T) {
	assert.ErrorIs(t, label.Validate(nil, testSeller()), domain.ErrInvalidArgument)
}

func TestBuild_InterState(t *testing.T) {
	now := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	b := label.NewBuilder().WithRandom(fixedRand(234567)).WithClock(func() time.Time { return now })

	l, err := b.Build(testOrder(), testSeller())
	require.NoError(t, err)

	assert.Equal(t, gst.RegimeInterState, l.Regime)
	assert.Equal(t, "641001,1234567", l.ReturnCode)
	assert.Equal(t, "NaviMumbai_Maharashtra_D", l.DestinationCode)
	assert.Equal(t, courier.KindShadowfax, l.Courier.Kind)
	assert.True(t, l.CourierRecognised)
	assert.Equal(t, "SFX0001", l.Courier.TrackingValue)
	assert.Equal(t, courier.CODInstruction, l.Courier.PaymentInstructionText)
	assert.Equal(t, now, l.GeneratedAt)

	require.Len(t, l.Lines, 2)
	assert.True(t, l.Lines[0].TaxableValue.Equal(d("1000")))
	assert.True(t, l.Lines[0].Breakup.IGST.Decimal.Equal(d("180")))
	assert.True(t, l.Lines[1].TaxableValue.Equal(d("1000")))
	assert.True(t, l.Lines[1].Breakup.IGST.Decimal.Equal(d("50")))

	assert.True(t, l.Totals.Taxable.Equal(d("2000")))
	assert.True(t, l.Totals.IGST.Equal(d("230")))
	assert.True(t, l.Totals.CGST.IsZero())
	assert.True(t, l.Totals.Tax.Equal(d("230")))
	assert.True(t, l.Totals.GrandTotal.Equal(d("2230")))

	assert.Equal(t, label.BarcodeSpec{
		Payload: "SFX0001", Symbology: courier.CODE128, Width: 2, Height: 55, DisplayValue: true,
	}, l.Barcode)
	assert.Equal(t, label.QRSpec{Payload: "SFX0001", Size: 80}, l.QR)
}

func TestBuild_IntraState(t *testing.T) {
	o := testOrder()
	o.ShippingAddress.State = "Tamil Nadu"
	o.ShippingAddress.City = "Chennai"
	o.Courier = "Valmo"

	l, err := label.NewBuilder().WithRandom(fixedRand(0)).Build(o, testSeller())
	require.NoError(t, err)

	assert.Equal(t, gst.RegimeIntraState, l.Regime)
	assert.True(t, l.Totals.CGST.Equal(d("115")))
	assert.True(t, l.Totals.SGST.Equal(d("115")))
	assert.True(t, l.Totals.IGST.IsZero())
	assert.Equal(t, courier.CODE39, l.Barcode.Symbology)
	assert.Equal(t, "sfx0001", l.Barcode.Payload)
}

func TestBuild_UnknownCourierFallsBack(t *testing.T) {
	o := testOrder()
	o.Courier = "BlueDart"

	l, err := label.NewBuilder().Build(o, testSeller())
	require.NoError(t, err)
	assert.Equal(t, courier.KindDelhivery, l.Courier.Kind)
	assert.False(t, l.CourierRecognised)
}

func TestBuild_ReturnPincodeFallsBackToShipping(t *testing.T) {
	s := testSeller()
	s.Pincode = ""

	l, err := label.NewBuilder().WithRandom(fixedRand(1)).Build(testOrder(), s)
	require.NoError(t, err)
	assert.Equal(t, "400703,1000001", l.ReturnCode)
}

func TestBuild_ValidationError(t *testing.T) {
	o := testOrder()
	o.Items = nil
	l, err := label.NewBuilder().Build(o, testSeller())
	assert.Nil(t, l)
	assert.ErrorIs(t, err, domain.ErrMissingItems)
}
