package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"amorlias/internal/courier"
	"amorlias/internal/csvexport"
	"amorlias/internal/domain"
	"amorlias/internal/port"
)

// StatusAll is the list filter value that disables status filtering.
const StatusAll = "all"

// UpdateShipmentInput is the payload for marking an order as shipped.
type UpdateShipmentInput struct {
	Courier        string `json:"courier" binding:"required,max=64"`
	TrackingNumber string `json:"tracking_number" binding:"required,max=64"`
}

// UpdateStatusInput is the payload for moving an order along its lifecycle.
type UpdateStatusInput struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

// OrderService exposes order queries and admin fulfilment actions.
type OrderService interface {
	ListByUser(ctx context.Context, userID uuid.UUID, status string, offset, limit int) ([]domain.Order, int, error)
	// GetForUser returns the order only if it belongs to userID.
	GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error)
	GetByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, status string, offset, limit int) ([]domain.Order, int, error)
	UpdateShipment(ctx context.Context, orderID uuid.UUID, input UpdateShipmentInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, input UpdateStatusInput) (*domain.Order, error)
	// ExportGSTRegister streams the sales register of matching orders as CSV.
	ExportGSTRegister(ctx context.Context, filter domain.OrderFilter, w io.Writer) error
}

type orderService struct {
	repo          port.OrderRepository
	notifications port.NotificationRepository
	settings      SettingsService
	log           zerolog.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(repo port.OrderRepository, notifications port.NotificationRepository, settings SettingsService, log zerolog.Logger) OrderService {
	return &orderService{
		repo:          repo,
		notifications: notifications,
		settings:      settings,
		log:           log.With().Str("component", "orders").Logger(),
	}
}

// ParseStatusFilter maps the "status" query value to a filter status. Empty
// and "all" mean no filter.
func ParseStatusFilter(status string) (domain.OrderStatus, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" || status == StatusAll {
		return "", nil
	}
	s := domain.OrderStatus(status)
	if !domain.ValidOrderStatuses[s] {
		return "", fmt.Errorf("status %q: %w", status, domain.ErrInvalidArgument)
	}
	return s, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID, status string, offset, limit int) ([]domain.Order, int, error) {
	st, err := ParseStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, domain.OrderFilter{UserID: &userID, Status: st}, offset, limit)
}

func (s *orderService) GetForUser(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return order, nil
}

func (s *orderService) GetByID(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return s.repo.GetByID(ctx, orderID)
}

func (s *orderService) List(ctx context.Context, status string, offset, limit int) ([]domain.Order, int, error) {
	st, err := ParseStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, domain.OrderFilter{Status: st}, offset, limit)
}

func (s *orderService) UpdateShipment(ctx context.Context, orderID uuid.UUID, input UpdateShipmentInput) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	next := order.Status
	if order.Status == domain.OrderStatusPending || order.Status == domain.OrderStatusProcessing {
		next = domain.OrderStatusShipped
	} else if order.Status != domain.OrderStatusShipped {
		return nil, fmt.Errorf("order is %s: %w", order.Status, domain.ErrInvalidTransition)
	}

	courierName := strings.TrimSpace(input.Courier)
	tracking := strings.TrimSpace(input.TrackingNumber)
	if _, err := courier.Match(courierName); err != nil {
		s.log.Warn().Str("order_number", order.OrderNumber).Str("courier", courierName).Msg("shipment uses unrecognised courier")
	}

	if err := s.repo.UpdateShipment(ctx, orderID, courierName, tracking, order.Status, next); err != nil {
		return nil, fmt.Errorf("shipping %s: %w", order.OrderNumber, err)
	}
	wasShipped := order.Status == domain.OrderStatusShipped
	order.Courier, order.TrackingNumber, order.Status = courierName, tracking, next

	if !wasShipped && order.UserID != nil {
		s.notifyShipped(ctx, order)
	}
	return order, nil
}

func (s *orderService) notifyShipped(ctx context.Context, order *domain.Order) {
	data, _ := json.Marshal(map[string]string{
		"order_id":        order.ID.String(),
		"order_number":    order.OrderNumber,
		"courier":         order.Courier,
		"tracking_number": order.TrackingNumber,
	})
	n := &domain.Notification{
		UserID:  *order.UserID,
		Type:    domain.NotificationOrderShipped,
		Title:   "Order shipped",
		Message: fmt.Sprintf("Your order %s has been shipped via %s.", order.OrderNumber, order.Courier),
		Data:    data,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("creating shipped notification")
	}
}

func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, input UpdateStatusInput) (*domain.Order, error) {
	if !domain.ValidOrderStatuses[input.Status] {
		return nil, fmt.Errorf("status %q: %w", input.Status, domain.ErrInvalidArgument)
	}
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransition(input.Status) {
		return nil, fmt.Errorf("%s to %s: %w", order.Status, input.Status, domain.ErrInvalidTransition)
	}
	if err := s.repo.UpdateStatus(ctx, orderID, order.Status, input.Status); err != nil {
		return nil, err
	}
	order.Status = input.Status

	if order.Status == domain.OrderStatusDelivered && order.UserID != nil {
		n := &domain.Notification{
			UserID:  *order.UserID,
			Type:    domain.NotificationOrderDelivered,
			Title:   "Order delivered",
			Message: fmt.Sprintf("Your order %s has been delivered.", order.OrderNumber),
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			s.log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("creating delivered notification")
		}
	}
	return order, nil
}

func (s *orderService) ExportGSTRegister(ctx context.Context, filter domain.OrderFilter, w io.Writer) error {
	seller, err := s.settings.Seller(ctx)
	if err != nil {
		return err
	}
	orders, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return err
	}
	cw := csvexport.NewWriter(w, seller.State)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteOrders(orders); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}
