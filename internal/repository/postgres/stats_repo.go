package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"amorlias/internal/domain"
	"amorlias/internal/port"
)

type statsRepo struct {
	db *sqlx.DB
}

// NewStatsRepo creates a new PostgreSQL-backed StatsRepository.
func NewStatsRepo(db *sqlx.DB) port.StatsRepository {
	return &statsRepo{db: db}
}

// $1 is a nullable lower bound on created_at.
const orderStatsQuery = `SELECT
	COUNT(*) AS total_orders,
	COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending_orders,
	COUNT(CASE WHEN status = 'processing' THEN 1 END) AS processing_orders,
	COUNT(CASE WHEN status = 'shipped' THEN 1 END) AS shipped_orders,
	COUNT(CASE WHEN status = 'delivered' THEN 1 END) AS delivered_orders,
	COUNT(CASE WHEN status = 'cancelled' THEN 1 END) AS cancelled_orders,
	COUNT(CASE WHEN is_offline THEN 1 END) AS offline_sales,
	COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN grand_total END), 0) AS revenue,
	COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN tax_total END), 0) AS tax_collected
FROM orders WHERE ($1::timestamptz IS NULL OR created_at >= $1)`

const catalogStatsQuery = `SELECT
	COUNT(*) AS total_products,
	COUNT(CASE WHEN is_active THEN 1 END) AS active_products,
	COUNT(CASE WHEN is_active AND stock_qty > 0 AND stock_qty <= low_stock_threshold THEN 1 END) AS low_stock_products,
	COUNT(CASE WHEN is_active AND stock_qty <= 0 THEN 1 END) AS out_of_stock_products
FROM products`

// GetDashboard scans both aggregate queries into one struct; each fills its own columns.
func (r *statsRepo) GetDashboard(ctx context.Context, since *time.Time) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := r.db.GetContext(ctx, &stats, orderStatsQuery, since); err != nil {
		return nil, fmt.Errorf("statsRepo.GetDashboard orders: %w", err)
	}
	if err := r.db.GetContext(ctx, &stats, catalogStatsQuery); err != nil {
		return nil, fmt.Errorf("statsRepo.GetDashboard products: %w", err)
	}

	var customers int
	if err := r.db.GetContext(ctx, &customers,
		"SELECT COUNT(*) FROM users WHERE role = 'customer'"); err != nil {
		return nil, fmt.Errorf("statsRepo.GetDashboard customers: %w", err)
	}
	stats.TotalCustomers = customers
	stats.Since = since

	return &stats, nil
}
