package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"amorlias/internal/domain"
	"amorlias/internal/port"
)

const orderColumns = `id, order_number, user_id, items, shipping_address, courier, tracking_number,
	is_cod, payment_method, payment_status, status, is_offline, customer_phone,
	subtotal, tax_total, grand_total, created_at, updated_at`

type orderRepo struct {
	db *sqlx.DB
}

// NewOrderRepo creates a new PostgreSQL-backed OrderRepository.
func NewOrderRepo(db *sqlx.DB) port.OrderRepository {
	return &orderRepo{db: db}
}

func orderWhere(filter domain.OrderFilter) *whereBuilder {
	w := &whereBuilder{}
	if filter.UserID != nil {
		w.add("user_id = $%d", *filter.UserID)
	}
	if filter.Status != "" {
		w.add("status = $%d", filter.Status)
	}
	if filter.From != nil {
		w.add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		w.add("created_at < $%d", *filter.To)
	}
	return w
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.db.GetContext(ctx, &order, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}
	return &order, nil
}

func (r *orderRepo) List(ctx context.Context, filter domain.OrderFilter, offset, limit int) ([]domain.Order, int, error) {
	w := orderWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM orders "+w.clause(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("orderRepo.List count: %w", err)
	}

	n := w.next()
	query := fmt.Sprintf("SELECT %s FROM orders %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		orderColumns, w.clause(), n, n+1)
	orders := []domain.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, append(w.args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("orderRepo.List: %w", err)
	}
	return orders, total, nil
}

func (r *orderRepo) ListAll(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	w := orderWhere(filter)
	orders := []domain.Order{}
	err := r.db.SelectContext(ctx, &orders,
		"SELECT "+orderColumns+" FROM orders "+w.clause()+" ORDER BY created_at", w.args...)
	if err != nil {
		return nil, fmt.Errorf("orderRepo.ListAll: %w", err)
	}
	return orders, nil
}

func (r *orderRepo) CreateCounterSale(ctx context.Context, order *domain.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, item := range order.Items {
			res, err := tx.ExecContext(ctx,
				`UPDATE products SET stock_qty = stock_qty - $1, updated_at = $2
				 WHERE id = $3 AND is_active AND stock_qty >= $1`,
				item.Quantity, now, item.ProductID)
			if err != nil {
				return fmt.Errorf("orderRepo.CreateCounterSale stock: %w", err)
			}
			if rows, _ := res.RowsAffected(); rows == 0 {
				return fmt.Errorf("%s: %w", item.ProductName, domain.ErrInsufficientStock)
			}
		}

		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO orders (`+orderColumns+`)
			 VALUES (:id, :order_number, :user_id, :items, :shipping_address, :courier, :tracking_number,
			 :is_cod, :payment_method, :payment_status, :status, :is_offline, :customer_phone,
			 :subtotal, :tax_total, :grand_total, :created_at, :updated_at)`, order)
		if err != nil {
			return fmt.Errorf("orderRepo.CreateCounterSale insert: %w", err)
		}
		return nil
	})
}

func (r *orderRepo) UpdateShipment(ctx context.Context, id uuid.UUID, courier, tracking string, from, to domain.OrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET courier = $1, tracking_number = $2, status = $3, updated_at = $4
		 WHERE id = $5 AND status = $6`,
		courier, tracking, to, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("orderRepo.UpdateShipment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.OrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
		to, time.Now().UTC(), id, from)
	if err != nil {
		return fmt.Errorf("orderRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

func (r *orderRepo) FindLatestByPhone(ctx context.Context, phone string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.GetContext(ctx, &order,
		"SELECT "+orderColumns+" FROM orders WHERE customer_phone = $1 ORDER BY created_at DESC LIMIT 1", phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("orderRepo.FindLatestByPhone: %w", err)
	}
	return &order, nil
}

func (r *orderRepo) BlockedQuantities(ctx context.Context) (map[uuid.UUID]int, error) {
	var rows []struct {
		ProductID uuid.UUID `db:"product_id"`
		Qty       int       `db:"qty"`
	}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT (item->>'product_id')::uuid AS product_id, SUM((item->>'quantity')::int) AS qty
		 FROM orders, jsonb_array_elements(items) AS item
		 WHERE status IN ($1, $2)
		 GROUP BY 1`,
		domain.OrderStatusPending, domain.OrderStatusProcessing)
	if err != nil {
		return nil, fmt.Errorf("orderRepo.BlockedQuantities: %w", err)
	}

	blocked := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		blocked[row.ProductID] = row.Qty
	}
	return blocked, nil
}
