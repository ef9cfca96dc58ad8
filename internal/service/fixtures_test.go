package service_test

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"amorlias/internal/cache"
	"amorlias/internal/domain"
	"amorlias/internal/service"
	"amorlias/mocks"
)

var (
	anyCtx = mock.Anything
	nopLog = zerolog.Nop()
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sellerSettings() *domain.BusinessSettings {
	s := domain.DefaultBusinessSettings()
	s.BusinessName = "Amorlias"
	s.Address = domain.Address{Line1: "12 Market Road", City: "Coimbatore", State: "Tamil Nadu", Pincode: "641001"}
	return s
}

// settingsWith returns a SettingsService backed by a mock repo that always
// returns s.
func settingsWith(s *domain.BusinessSettings) service.SettingsService {
	repo := new(mocks.MockSettingsRepo)
	repo.On("Get", anyCtx).Return(s, nil)
	return service.NewSettingsService(repo, cache.Nop{}, nopLog)
}

func shippableOrder(status domain.OrderStatus) *domain.Order {
	uid := uuid.New()
	return &domain.Order{
		ID:          uuid.New(),
		OrderNumber: "ORD-20260101-000042",
		UserID:      &uid,
		Status:      status,
		ShippingAddress: domain.Address{
			Name:    "Priya",
			Line1:   "4 Lake View",
			City:    "Navi Mumbai",
			State:   "Maharashtra",
			Pincode: "400703",
		},
		Courier:        "Delhivery",
		TrackingNumber: "DL123",
		Items: domain.OrderItems{
			{ProductName: "Kurti", HSNCode: "6104", Quantity: 1, LineTotal: d("1180"), TaxRate: d("18")},
		},
		CreatedAt: time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}
