package port

import (
	"context"
	"time"

	"amorlias/internal/domain"
)

// StatsRepository provides aggregate statistics queries.
type StatsRepository interface {
	// GetDashboard counts orders created at or after since (all orders when
	// nil) and takes a current snapshot of the catalog and customer base.
	GetDashboard(ctx context.Context, since *time.Time) (*domain.DashboardStats, error)
}
