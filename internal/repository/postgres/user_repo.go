package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"amorlias/internal/domain"
	"amorlias/internal/port"
)

const userColumns = "id, email, full_name, role, created_at, updated_at"

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	err := r.db.GetContext(ctx, &user,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, search string, offset, limit int) ([]domain.User, int, error) {
	w := &whereBuilder{}
	if search != "" {
		w.add("(email ILIKE '%%' || $%[1]d || '%%' OR full_name ILIKE '%%' || $%[1]d || '%%')", search)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM users "+w.clause(), w.args...); err != nil {
		return nil, 0, fmt.Errorf("userRepo.List count: %w", err)
	}

	n := w.next()
	query := fmt.Sprintf("SELECT %s FROM users %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		userColumns, w.clause(), n, n+1)
	users := []domain.User{}
	if err := r.db.SelectContext(ctx, &users, query, append(w.args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("userRepo.List: %w", err)
	}
	return users, total, nil
}

func (r *userRepo) UpdateRole(ctx context.Context, id uuid.UUID, role domain.UserRole) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE users SET role = $1, updated_at = $2 WHERE id = $3",
		role, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("userRepo.UpdateRole: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
