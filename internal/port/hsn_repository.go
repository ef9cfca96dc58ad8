package port

import (
	"context"

	"amorlias/internal/gst"
)

// HSNRepository defines the contract for HSN master data access.
type HSNRepository interface {
	LoadAll(ctx context.Context) ([]gst.HSNEntry, error)
}
