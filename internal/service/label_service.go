package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"amorlias/internal/domain"
	"amorlias/internal/label"
	"amorlias/internal/port"
)

const (
	labelFormatJSON = "json"
	labelFormatPDF  = "pdf"
)

// LabelArchiveConfig controls where archived label PDFs go.
type LabelArchiveConfig struct {
	Enabled       bool
	Bucket        string
	PresignExpiry int64
}

// ArchivedLabel is the result of uploading a label PDF.
type ArchivedLabel struct {
	Key       string `json:"key"`
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in"`
}

// LabelService produces shipping labels for orders.
type LabelService interface {
	Preview(ctx context.Context, orderID uuid.UUID) (*label.ShippingLabel, error)
	RenderPDF(ctx context.Context, orderID uuid.UUID) ([]byte, *label.ShippingLabel, error)
	Archive(ctx context.Context, orderID uuid.UUID) (*ArchivedLabel, error)
}

type labelService struct {
	orders   port.OrderRepository
	settings SettingsService
	builder  *label.Builder
	renderer port.LabelRenderer
	storage  port.ObjectStorage
	metrics  port.Metrics
	archive  LabelArchiveConfig
	log      zerolog.Logger
}

// NewLabelService creates a new LabelService.
func NewLabelService(
	orders port.OrderRepository,
	settings SettingsService,
	builder *label.Builder,
	renderer port.LabelRenderer,
	storage port.ObjectStorage,
	metrics port.Metrics,
	archive LabelArchiveConfig,
	log zerolog.Logger,
) LabelService {
	return &labelService{
		orders:   orders,
		settings: settings,
		builder:  builder,
		renderer: renderer,
		storage:  storage,
		metrics:  metrics,
		archive:  archive,
		log:      log.With().Str("component", "label").Logger(),
	}
}

func (s *labelService) Preview(ctx context.Context, orderID uuid.UUID) (*label.ShippingLabel, error) {
	l, err := s.build(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.metrics.LabelRendered(labelFormatJSON)
	return l, nil
}

func (s *labelService) RenderPDF(ctx context.Context, orderID uuid.UUID) ([]byte, *label.ShippingLabel, error) {
	l, err := s.build(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := s.renderer.Render(l)
	if err != nil {
		return nil, nil, fmt.Errorf("rendering label %s: %w", l.OrderNumber, err)
	}
	s.metrics.LabelRendered(labelFormatPDF)
	return pdf, l, nil
}

func (s *labelService) Archive(ctx context.Context, orderID uuid.UUID) (*ArchivedLabel, error) {
	if !s.archive.Enabled || s.storage == nil {
		return nil, domain.ErrArchiveDisabled
	}

	pdf, l, err := s.RenderPDF(ctx, orderID)
	if err != nil {
		return nil, err
	}

	key := LabelKey(l.OrderNumber)
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Bucket:             s.archive.Bucket,
		Key:                key,
		Body:               bytes.NewReader(pdf),
		ContentType:        "application/pdf",
		ContentDisposition: fmt.Sprintf("inline; filename=%q", l.OrderNumber+".pdf"),
	})
	if err != nil {
		s.log.Error().Err(err).Str("order_number", l.OrderNumber).Msg("label upload failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}

	url, err := s.storage.GetPresignedURL(ctx, s.archive.Bucket, key, s.archive.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning label %s: %w", key, err)
	}

	s.log.Info().Str("order_number", l.OrderNumber).Str("key", key).Msg("label archived")
	return &ArchivedLabel{Key: key, URL: url, ExpiresIn: s.archive.PresignExpiry}, nil
}

func (s *labelService) build(ctx context.Context, orderID uuid.UUID) (*label.ShippingLabel, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	seller, err := s.settings.Seller(ctx)
	if err != nil {
		return nil, err
	}

	l, err := s.builder.Build(order, seller)
	if err != nil {
		return nil, err
	}
	if !l.CourierRecognised {
		s.metrics.UnknownCourierSeen()
		s.log.Warn().
			Str("order_number", order.OrderNumber).
			Str("courier", order.Courier).
			Str("fallback", l.Courier.DisplayLabel).
			Msg("unknown courier, using default profile")
	}
	return l, nil
}

// LabelKey is the object key of an archived label PDF.
func LabelKey(orderNumber string) string {
	return "labels/" + orderNumber + ".pdf"
}
