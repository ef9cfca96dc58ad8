package port

import (
	"context"

	"github.com/google/uuid"

	"amorlias/internal/domain"
)

// OrderRepository defines the contract for order persistence.
type OrderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, filter domain.OrderFilter, offset, limit int) ([]domain.Order, int, error)
	// ListAll returns every order matching the filter, oldest first, for exports.
	ListAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	// CreateCounterSale inserts the order and decrements stock for each item in
	// one transaction. It returns domain.ErrInsufficientStock if any product no
	// longer has enough stock.
	CreateCounterSale(ctx context.Context, order *domain.Order) error
	// UpdateShipment records courier and tracking and moves the order from
	// status from to status to. It returns domain.ErrInvalidTransition if the
	// order is no longer in status from.
	UpdateShipment(ctx context.Context, id uuid.UUID, courier, tracking string, from, to domain.OrderStatus) error
	// UpdateStatus moves an order from one status to another. It returns
	// domain.ErrInvalidTransition if the order is no longer in status from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error
	FindLatestByPhone(ctx context.Context, phone string) (*domain.Order, error)
	// BlockedQuantities sums item quantities of pending and processing orders per product.
	BlockedQuantities(ctx context.Context) (map[uuid.UUID]int, error)
}

// ProductRepository defines the contract for catalog persistence.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Product, int, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Deactivate(ctx context.Context, id uuid.UUID) error
}

// SettingsRepository defines the contract for the business settings row.
type SettingsRepository interface {
	// Get returns domain.ErrNotFound until settings are saved once.
	Get(ctx context.Context) (*domain.BusinessSettings, error)
	Upsert(ctx context.Context, settings *domain.BusinessSettings) error
}

// NotificationRepository defines the contract for user notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Notification, int, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	// ClaimEmails marks up to limit un-emailed notifications of the given types
	// as emailed and returns them with their recipient.
	ClaimEmails(ctx context.Context, types []domain.NotificationType, limit int) ([]domain.PendingEmail, error)
	// ReleaseEmail clears the emailed mark after a failed delivery.
	ReleaseEmail(ctx context.Context, id uuid.UUID) error
}

// UserRepository defines the contract for storefront accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// List filters by an email or name substring when search is non-empty.
	List(ctx context.Context, search string, offset, limit int) ([]domain.User, int, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) error
}
