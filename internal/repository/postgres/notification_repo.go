package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"amorlias/internal/domain"
	"amorlias/internal/port"
)

type notificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo creates a new PostgreSQL-backed NotificationRepository.
func NewNotificationRepo(db *sqlx.DB) port.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, type, title, message, data, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.UserID, n.Type, n.Title, n.Message, n.Data, n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("notificationRepo.Create: %w", err)
	}
	return nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.Notification, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM notifications WHERE user_id = $1", userID); err != nil {
		return nil, 0, fmt.Errorf("notificationRepo.ListByUser count: %w", err)
	}

	items := []domain.Notification{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT id, user_id, type, title, message, data, read, emailed_at, created_at
		 FROM notifications WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("notificationRepo.ListByUser: %w", err)
	}
	return items, total, nil
}

func (r *notificationRepo) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read", userID)
	if err != nil {
		return 0, fmt.Errorf("notificationRepo.UnreadCount: %w", err)
	}
	return count, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("notificationRepo.MarkRead: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET read = TRUE WHERE user_id = $1 AND NOT read", userID)
	if err != nil {
		return 0, fmt.Errorf("notificationRepo.MarkAllRead: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (r *notificationRepo) ClaimEmails(ctx context.Context, types []domain.NotificationType, limit int) ([]domain.PendingEmail, error) {
	if len(types) == 0 || limit <= 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		`UPDATE notifications n SET emailed_at = NOW()
		 FROM users u
		 WHERE u.id = n.user_id AND n.id IN (
		   SELECT id FROM notifications
		   WHERE emailed_at IS NULL AND type IN (?)
		   ORDER BY created_at
		   LIMIT ?
		   FOR UPDATE SKIP LOCKED)
		 RETURNING n.id, n.user_id, n.type, n.title, n.message, n.data, n.read, n.emailed_at, n.created_at,
		 u.email, u.full_name`, types, limit)
	if err != nil {
		return nil, fmt.Errorf("notificationRepo.ClaimEmails build: %w", err)
	}

	claimed := []domain.PendingEmail{}
	if err := r.db.SelectContext(ctx, &claimed, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("notificationRepo.ClaimEmails: %w", err)
	}
	return claimed, nil
}

func (r *notificationRepo) ReleaseEmail(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "UPDATE notifications SET emailed_at = NULL WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("notificationRepo.ReleaseEmail: %w", err)
	}
	return nil
}
