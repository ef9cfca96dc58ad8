package noop

import (
	"context"

	"github.com/rs/zerolog"

	"amorlias/internal/email"
	"amorlias/internal/port"
)

type noopSender struct {
	frontendURL string
	log         zerolog.Logger
}

// NewNoopSender creates an EmailSender that only logs what it would send.
func NewNoopSender(frontendURL string, log zerolog.Logger) port.EmailSender {
	return &noopSender{frontendURL: frontendURL, log: log.With().Str("component", "noop_email").Logger()}
}

func (s *noopSender) SendOrderShippedEmail(_ context.Context, toEmail, toName string, msg port.ShipmentEmail) error {
	m := email.ShipmentMessage(toName, s.frontendURL, msg)
	s.log.Info().
		Str("to", toEmail).
		Str("subject", m.Subject).
		Str("tracking_url", email.TrackingURL(s.frontendURL, msg.OrderNumber)).
		Msg("order shipped email skipped")
	return nil
}
