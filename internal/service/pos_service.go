package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ttacon/libphonenumber"

	"amorlias/internal/domain"
	"amorlias/internal/gst"
	"amorlias/internal/pos"
	"amorlias/internal/port"
)

const walkInName = "Walk-in Customer"

// SaleItemInput is one cart line of a counter sale.
type SaleItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateSaleInput is the payload for recording a counter sale.
type CreateSaleInput struct {
	Items         []SaleItemInput      `json:"items" binding:"dive"`
	CustomerName  string               `json:"customer_name" binding:"omitempty,max=120"`
	CustomerPhone string               `json:"customer_phone"`
	PaymentMethod domain.PaymentMethod `json:"payment_method" binding:"required,oneof=cash upi card"`
}

// CustomerLookup is the result of a phone search at the counter.
type CustomerLookup struct {
	Phone string `json:"phone"`
	Name  string `json:"name,omitempty"`
	Found bool   `json:"found"`
}

// POSService records in-store sales.
type POSService interface {
	CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Order, error)
	SearchCustomer(ctx context.Context, phone string) (*CustomerLookup, error)
}

type posService struct {
	products port.ProductRepository
	orders   port.OrderRepository
	settings SettingsService
	metrics  port.Metrics
	region   string
	rnd      func(n int) int
	now      func() time.Time
	log      zerolog.Logger
}

// NewPOSService creates a new POSService. region is the default country used
// to parse phone numbers written without a country code.
func NewPOSService(
	products port.ProductRepository,
	orders port.OrderRepository,
	settings SettingsService,
	metrics port.Metrics,
	region string,
	log zerolog.Logger,
) POSService {
	if region == "" {
		region = "IN"
	}
	return &posService{
		products: products,
		orders:   orders,
		settings: settings,
		metrics:  metrics,
		region:   region,
		rnd:      rand.IntN,
		now:      time.Now,
		log:      log.With().Str("component", "pos").Logger(),
	}
}

func (s *posService) CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Order, error) {
	if len(input.Items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if !domain.POSPaymentMethods[input.PaymentMethod] {
		return nil, fmt.Errorf("payment method %q: %w", input.PaymentMethod, domain.ErrInvalidArgument)
	}

	phone := ""
	if strings.TrimSpace(input.CustomerPhone) != "" {
		p, err := NormalizePhone(input.CustomerPhone, s.region)
		if err != nil {
			return nil, err
		}
		phone = p
	}

	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	cart, err := s.buildCart(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	rate := settings.DefaultGSTRate
	totals, err := cart.Totals(rate)
	if err != nil {
		return nil, err
	}

	items := make(domain.OrderItems, 0, cart.Len())
	for _, ln := range cart.Lines() {
		_, inclusive, err := gst.AddOnTop(ln.Amount, rate)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.OrderItem{
			ProductID:   ln.Product.ID,
			ProductName: ln.Product.Name,
			SKU:         ln.Product.SKU,
			HSNCode:     ln.Product.HSNCode,
			Quantity:    ln.Quantity,
			UnitPrice:   ln.Product.SellingPrice,
			LineTotal:   inclusive,
			TaxRate:     rate,
		})
	}

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		name = walkInName
	}
	now := s.now()
	order := &domain.Order{
		OrderNumber:     s.orderNumber(settings.OrderPrefix, now),
		Items:           items,
		ShippingAddress: WalkInAddress(name, phone, settings.Address.State),
		PaymentMethod:   input.PaymentMethod,
		PaymentStatus:   domain.PaymentStatusPaid,
		Status:          domain.OrderStatusDelivered,
		IsOffline:       true,
		CustomerPhone:   phone,
		Subtotal:        totals.Subtotal,
		TaxTotal:        totals.GST,
		GrandTotal:      totals.Total,
	}

	if err := s.orders.CreateCounterSale(ctx, order); err != nil {
		return nil, err
	}
	s.metrics.SaleRecorded(string(input.PaymentMethod))
	s.log.Info().
		Str("order_number", order.OrderNumber).
		Str("payment_method", string(order.PaymentMethod)).
		Str("total", order.GrandTotal.StringFixed(2)).
		Msg("counter sale recorded")
	return order, nil
}

func (s *posService) buildCart(ctx context.Context, lines []SaleItemInput) (*pos.Cart, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, ln := range lines {
		ids = append(ids, ln.ProductID)
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	cart := pos.NewCart()
	for _, ln := range lines {
		p, ok := byID[ln.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", ln.ProductID, domain.ErrNotFound)
		}
		if err := cart.AddQuantity(p, ln.Quantity); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

func (s *posService) orderNumber(prefix string, at time.Time) string {
	if prefix == "" {
		prefix = domain.DefaultBusinessSettings().OrderPrefix
	}
	return fmt.Sprintf("%s-%s-%06d", prefix, at.Format("20060102"), s.rnd(1000000))
}

func (s *posService) SearchCustomer(ctx context.Context, phone string) (*CustomerLookup, error) {
	normalized, err := NormalizePhone(phone, s.region)
	if err != nil {
		return nil, err
	}
	result := &CustomerLookup{Phone: normalized}

	order, err := s.orders.FindLatestByPhone(ctx, normalized)
	if errors.Is(err, domain.ErrNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	if name := order.ShippingAddress.Name; name != "" && name != walkInName {
		result.Name = name
		result.Found = true
	}
	return result, nil
}

// NormalizePhone parses a phone number and formats it as E.164.
func NormalizePhone(raw, region string) (string, error) {
	num, err := libphonenumber.Parse(strings.TrimSpace(raw), region)
	if err != nil {
		return "", fmt.Errorf("%q: %w", raw, domain.ErrInvalidPhone)
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", fmt.Errorf("%q: %w", raw, domain.ErrInvalidPhone)
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}

// WalkInAddress is the placeholder shipping address of a counter sale. The
// supply happens at the shop, so the address carries the seller's state and
// the sale is taxed as intra-state.
func WalkInAddress(name, phone, sellerState string) domain.Address {
	state := strings.TrimSpace(sellerState)
	if state == "" {
		state = "Local"
	}
	return domain.Address{
		Name:    name,
		Line1:   "In-Store",
		City:    "Local",
		State:   state,
		Pincode: "000000",
		Phone:   phone,
	}
}
