package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"amorlias/internal/domain"
	"amorlias/internal/notify"
	"amorlias/internal/port"
)

// effectsScanLimit bounds how many recent notifications are inspected when
// planning UI effects.
const effectsScanLimit = 50

// NotificationService serves a user's notifications and pending UI effects.
type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Notification, int, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	// Effects plans effects from the user's notifications, then drains the
	// user's queue.
	Effects(ctx context.Context, userID uuid.UUID) ([]notify.Effect, error)
}

type notificationService struct {
	repo port.NotificationRepository
	hub  *notify.Hub
	log  zerolog.Logger
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(repo port.NotificationRepository, hub *notify.Hub, log zerolog.Logger) NotificationService {
	return &notificationService{repo: repo, hub: hub, log: log.With().Str("component", "notifications").Logger()}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Notification, int, error) {
	return s.repo.ListByUser(ctx, userID, offset, limit)
}

func (s *notificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.repo.MarkRead(ctx, userID, id); err != nil {
		s.hub.For(userID).Push(notify.ErrorToast("Failed to mark notification as read"))
		return err
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		s.hub.For(userID).Push(notify.ErrorToast("Failed to mark notifications as read"))
		return 0, err
	}
	return n, nil
}

func (s *notificationService) Effects(ctx context.Context, userID uuid.UUID) ([]notify.Effect, error) {
	q := s.hub.For(userID)
	list, _, err := s.repo.ListByUser(ctx, userID, 0, effectsScanLimit)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID.String()).Msg("loading notifications for effects")
		return q.Drain(), nil
	}
	q.Push(notify.Plan(list)...)
	return q.Drain(), nil
}
