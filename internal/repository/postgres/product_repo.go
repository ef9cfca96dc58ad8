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

const productColumns = `id, name, description, category_id, sku, mrp, selling_price, wholesale_price,
	wholesale_min_qty, cost_price, stock_qty, low_stock_threshold, gst_rate, hsn_code, images,
	is_active, created_at, updated_at`

type productRepo struct {
	db *sqlx.DB
}

// NewProductRepo creates a new PostgreSQL-backed ProductRepository.
func NewProductRepo(db *sqlx.DB) port.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = uuid.New()
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO products (`+productColumns+`)
		 VALUES (:id, :name, :description, :category_id, :sku, :mrp, :selling_price, :wholesale_price,
		 :wholesale_min_qty, :cost_price, :stock_qty, :low_stock_threshold, :gst_rate, :hsn_code, :images,
		 :is_active, :created_at, :updated_at)`, product)
	if err != nil {
		if isDuplicateKey(err, "sku") {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("productRepo.Create: %w", err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.GetContext(ctx, &product, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("productRepo.GetByID: %w", err)
	}
	return &product, nil
}

func (r *productRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	products := []domain.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	query, args, err := sqlx.In("SELECT "+productColumns+" FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("productRepo.GetByIDs build: %w", err)
	}
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("productRepo.GetByIDs: %w", err)
	}
	return products, nil
}

func (r *productRepo) List(ctx context.Context, search string, offset, limit int) ([]domain.Product, int, error) {
	w := &whereBuilder{}
	if search != "" {
		w.add("(name ILIKE '%%' || $%[1]d || '%%' OR sku ILIKE '%%' || $%[1]d || '%%')", search)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM products "+w.clause(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("productRepo.List count: %w", err)
	}

	n := w.next()
	query := fmt.Sprintf("SELECT %s FROM products %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		productColumns, w.clause(), n, n+1)
	products := []domain.Product{}
	if err := r.db.SelectContext(ctx, &products, query, append(w.args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("productRepo.List: %w", err)
	}
	return products, total, nil
}

func (r *productRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.SelectContext(ctx, &products,
		"SELECT "+productColumns+" FROM products WHERE is_active ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("productRepo.ListActive: %w", err)
	}
	return products, nil
}

func (r *productRepo) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now().UTC()
	result, err := r.db.NamedExecContext(ctx,
		`UPDATE products SET name = :name, description = :description, category_id = :category_id,
		 sku = :sku, mrp = :mrp, selling_price = :selling_price, wholesale_price = :wholesale_price,
		 wholesale_min_qty = :wholesale_min_qty, cost_price = :cost_price, stock_qty = :stock_qty,
		 low_stock_threshold = :low_stock_threshold, gst_rate = :gst_rate, hsn_code = :hsn_code,
		 images = :images, is_active = :is_active, updated_at = :updated_at
		 WHERE id = :id`, product)
	if err != nil {
		if isDuplicateKey(err, "sku") {
			return domain.ErrDuplicateSKU
		}
		return fmt.Errorf("productRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *productRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE products SET is_active = FALSE, updated_at = $1 WHERE id = $2", time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("productRepo.Deactivate: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
