package service

import (
	"context"
	"fmt"
	"time"

	"amorlias/internal/domain"
	"amorlias/internal/port"
)

// MaxDashboardDays bounds the dashboard look-back window.
const MaxDashboardDays = 3650

// StatsService provides aggregate statistics for the admin dashboard.
type StatsService interface {
	// Dashboard returns order figures for the last days days (all time when
	// days is 0) plus the current catalog snapshot.
	Dashboard(ctx context.Context, days int) (*domain.DashboardStats, error)
}

type statsService struct {
	statsRepo port.StatsRepository
	now       func() time.Time
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(statsRepo port.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo, now: time.Now}
}

func (s *statsService) Dashboard(ctx context.Context, days int) (*domain.DashboardStats, error) {
	if days < 0 || days > MaxDashboardDays {
		return nil, fmt.Errorf("days %d outside 0..%d: %w", days, MaxDashboardDays, domain.ErrInvalidArgument)
	}
	var since *time.Time
	if days > 0 {
		y, m, d := s.now().UTC().Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))
		since = &start
	}
	return s.statsRepo.GetDashboard(ctx, since)
}
