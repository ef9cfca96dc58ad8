package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"amorlias/internal/domain"
	"amorlias/internal/port"
)

const dispatchLockKey = "amorlias:lock:notification-dispatch"

// DispatcherConfig holds settings for the notification dispatcher.
type DispatcherConfig struct {
	PollInterval time.Duration
	Concurrency  int
}

// NotificationDispatcher polls for un-emailed shipment notifications and
// sends them.
type NotificationDispatcher struct {
	repo    port.NotificationRepository
	sender  port.EmailSender
	locker  port.Locker
	metrics port.Metrics
	cfg     DispatcherConfig
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewNotificationDispatcher creates a new NotificationDispatcher.
func NewNotificationDispatcher(
	repo port.NotificationRepository,
	sender port.EmailSender,
	locker port.Locker,
	metrics port.Metrics,
	cfg DispatcherConfig,
	log zerolog.Logger,
) *NotificationDispatcher {
	return &NotificationDispatcher{
		repo:    repo,
		sender:  sender,
		locker:  locker,
		metrics: metrics,
		cfg:     cfg,
		log:     log.With().Str("component", "dispatcher").Logger(),
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight sends have finished.
func (d *NotificationDispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, d.cfg.Concurrency)

	d.log.Info().
		Dur("poll", d.cfg.PollInterval).
		Int("concurrency", d.cfg.Concurrency).
		Msg("notification dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.log.Info().Msg("notification dispatcher shutting down, waiting for in-flight sends")
			d.wg.Wait()
			d.log.Info().Msg("notification dispatcher stopped")
			return
		case <-ticker.C:
			d.Tick(ctx, sem)
		}
	}
}

// Tick claims one batch of pending emails and sends them on the semaphore.
// Only one replica claims per tick.
func (d *NotificationDispatcher) Tick(ctx context.Context, sem chan struct{}) {
	available := cap(sem) - len(sem)
	if available <= 0 {
		return
	}

	release, ok, err := d.locker.TryLock(ctx, dispatchLockKey, d.cfg.PollInterval)
	if err != nil {
		if ctx.Err() == nil {
			d.log.Error().Err(err).Msg("dispatch lock")
		}
		return
	}
	if !ok {
		return
	}
	defer release()

	pending, err := d.repo.ClaimEmails(ctx, []domain.NotificationType{domain.NotificationOrderShipped}, available)
	if err != nil {
		if ctx.Err() == nil {
			d.log.Error().Err(err).Msg("claiming notification emails")
		}
		return
	}

	for i := range pending {
		p := pending[i]

		sem <- struct{}{}
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			defer func() { <-sem }()

			// in-flight sends complete even during shutdown
			sendCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			d.send(sendCtx, &p)
		}()
	}
}

// Wait blocks until all in-flight sends have finished.
func (d *NotificationDispatcher) Wait() {
	d.wg.Wait()
}

func (d *NotificationDispatcher) send(ctx context.Context, p *domain.PendingEmail) {
	msg := shipmentEmailFrom(p)
	err := d.sender.SendOrderShippedEmail(ctx, p.Email, p.FullName, msg)
	d.metrics.EmailDelivered(err == nil)
	if err == nil {
		d.log.Debug().Str("notification_id", p.ID.String()).Str("order_number", msg.OrderNumber).Msg("shipment email sent")
		return
	}

	d.log.Error().Err(err).Str("notification_id", p.ID.String()).Msg("shipment email failed")
	if rerr := d.repo.ReleaseEmail(ctx, p.ID); rerr != nil {
		d.log.Error().Err(rerr).Str("notification_id", p.ID.String()).Msg("releasing notification email")
	}
}

func shipmentEmailFrom(p *domain.PendingEmail) port.ShipmentEmail {
	var data struct {
		OrderNumber    string `json:"order_number"`
		Courier        string `json:"courier"`
		TrackingNumber string `json:"tracking_number"`
	}
	_ = p.Data.Decode(&data)
	return port.ShipmentEmail{
		OrderNumber:    data.OrderNumber,
		Courier:        data.Courier,
		TrackingNumber: data.TrackingNumber,
		Message:        p.Message,
	}
}
