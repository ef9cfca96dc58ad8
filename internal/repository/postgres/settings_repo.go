package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"amorlias/internal/domain"
	"amorlias/internal/port"
)

// The settings table is keyed by type; the business row is the only one in use.
const businessSettingsType = "business"

type settingsRepo struct {
	db *sqlx.DB
}

// NewSettingsRepo creates a new PostgreSQL-backed SettingsRepository.
func NewSettingsRepo(db *sqlx.DB) port.SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	var s domain.BusinessSettings
	err := r.db.GetContext(ctx, &s,
		`SELECT business_name, company_name, gst_number, phone, email, address, enable_gst_billing,
		 default_gst_rate, invoice_prefix, order_prefix, updated_at
		 FROM business_settings WHERE type = $1`, businessSettingsType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("settingsRepo.Get: %w", err)
	}
	return &s, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, s *domain.BusinessSettings) error {
	s.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO business_settings (type, business_name, company_name, gst_number, phone, email, address,
		 enable_gst_billing, default_gst_rate, invoice_prefix, order_prefix, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (type) DO UPDATE SET
		 business_name = EXCLUDED.business_name, company_name = EXCLUDED.company_name,
		 gst_number = EXCLUDED.gst_number, phone = EXCLUDED.phone, email = EXCLUDED.email,
		 address = EXCLUDED.address, enable_gst_billing = EXCLUDED.enable_gst_billing,
		 default_gst_rate = EXCLUDED.default_gst_rate, invoice_prefix = EXCLUDED.invoice_prefix,
		 order_prefix = EXCLUDED.order_prefix, updated_at = EXCLUDED.updated_at`,
		businessSettingsType, s.BusinessName, s.CompanyName, s.GSTNumber, s.Phone, s.Email, s.Address,
		s.EnableGSTBilling, s.DefaultGSTRate, s.InvoicePrefix, s.OrderPrefix, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("settingsRepo.Upsert: %w", err)
	}
	return nil
}
