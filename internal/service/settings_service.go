package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"amorlias/internal/domain"
	"amorlias/internal/label"
	"amorlias/internal/port"
)

// UpdateSettingsInput is the payload for saving the business settings.
// Omitted pointer fields keep their stored values.
type UpdateSettingsInput struct {
	BusinessName     string          `json:"business_name" binding:"required"`
	CompanyName      string          `json:"company_name"`
	GSTNumber        string          `json:"gst_number" binding:"omitempty,len=15"`
	Phone            string          `json:"phone"`
	Email            string          `json:"email" binding:"omitempty,email"`
	Address          SettingsAddress `json:"address"`
	EnableGSTBilling *bool           `json:"enable_gst_billing"`
	DefaultGSTRate   *decimal.Decimal `json:"default_gst_rate" binding:"omitempty,gst_rate"`
	InvoicePrefix    string          `json:"invoice_prefix" binding:"omitempty,max=10"`
	OrderPrefix      string          `json:"order_prefix" binding:"omitempty,max=10"`
}

// SettingsAddress is the seller address as entered in the settings form.
type SettingsAddress struct {
	Line1   string `json:"line1" binding:"required"`
	Line2   string `json:"line2"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Pincode string `json:"pincode" binding:"required,pincode"`
}

// SettingsService manages the singleton business settings.
type SettingsService interface {
	Get(ctx context.Context) (*domain.BusinessSettings, error)
	Update(ctx context.Context, input UpdateSettingsInput) (*domain.BusinessSettings, error)
	// Seller projects the settings onto the sender block of a shipping label.
	Seller(ctx context.Context) (label.SellerSettings, error)
}

type settingsService struct {
	repo  port.SettingsRepository
	cache port.SettingsCache
	log   zerolog.Logger
}

// NewSettingsService creates a new SettingsService. Reads go through cache.
func NewSettingsService(repo port.SettingsRepository, cache port.SettingsCache, log zerolog.Logger) SettingsService {
	return &settingsService{repo: repo, cache: cache, log: log.With().Str("component", "settings").Logger()}
}

func (s *settingsService) Get(ctx context.Context) (*domain.BusinessSettings, error) {
	cached, err := s.cache.Get(ctx)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.log.Warn().Err(err).Msg("settings cache read failed")
	}

	settings, err := s.repo.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		settings = domain.DefaultBusinessSettings()
	} else if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	if err := s.cache.Set(ctx, settings); err != nil {
		s.log.Warn().Err(err).Msg("settings cache write failed")
	}
	return settings, nil
}

func (s *settingsService) Update(ctx context.Context, input UpdateSettingsInput) (*domain.BusinessSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	next := *settings

	next.BusinessName = strings.TrimSpace(input.BusinessName)
	next.CompanyName = strings.TrimSpace(input.CompanyName)
	next.GSTNumber = strings.ToUpper(strings.TrimSpace(input.GSTNumber))
	next.Phone = strings.TrimSpace(input.Phone)
	next.Email = strings.TrimSpace(input.Email)
	next.Address = domain.Address{
		Line1:   strings.TrimSpace(input.Address.Line1),
		Line2:   strings.TrimSpace(input.Address.Line2),
		City:    strings.TrimSpace(input.Address.City),
		State:   strings.TrimSpace(input.Address.State),
		Pincode: strings.TrimSpace(input.Address.Pincode),
	}
	if input.EnableGSTBilling != nil {
		next.EnableGSTBilling = *input.EnableGSTBilling
	}
	if input.DefaultGSTRate != nil {
		next.DefaultGSTRate = *input.DefaultGSTRate
	}
	if input.InvoicePrefix != "" {
		next.InvoicePrefix = strings.ToUpper(input.InvoicePrefix)
	}
	if input.OrderPrefix != "" {
		next.OrderPrefix = strings.ToUpper(input.OrderPrefix)
	}

	if err := s.repo.Upsert(ctx, &next); err != nil {
		return nil, fmt.Errorf("saving settings: %w", err)
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("settings cache invalidate failed")
	}
	return &next, nil
}

func (s *settingsService) Seller(ctx context.Context) (label.SellerSettings, error) {
	settings, err := s.Get(ctx)
	if err != nil {
		return label.SellerSettings{}, err
	}
	return SellerFromSettings(settings), nil
}

// SellerFromSettings maps business settings to a label sender block. The
// trading name stands in when no registered company name is set.
func SellerFromSettings(s *domain.BusinessSettings) label.SellerSettings {
	name := s.CompanyName
	if name == "" {
		name = s.BusinessName
	}
	addr := s.Address.Line1
	if s.Address.Line2 != "" {
		addr += ", " + s.Address.Line2
	}
	return label.SellerSettings{
		CompanyName: name,
		Address:     addr,
		City:        s.Address.City,
		State:       s.Address.State,
		Pincode:     s.Address.Pincode,
	}
}
