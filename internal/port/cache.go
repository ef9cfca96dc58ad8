package port

import (
	"context"

	"amorlias/internal/domain"
)

// SettingsCache caches the business settings row. Get returns
// domain.ErrNotFound on a miss.
type SettingsCache interface {
	Get(ctx context.Context) (*domain.BusinessSettings, error)
	Set(ctx context.Context, settings *domain.BusinessSettings) error
	Invalidate(ctx context.Context) error
}
