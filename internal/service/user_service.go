package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"amorlias/internal/domain"
	"amorlias/internal/port"
)

// ChangeRoleInput is the DTO for changing an account's role.
type ChangeRoleInput struct {
	Role domain.UserRole `json:"role" binding:"required,oneof=admin customer"`
}

// UserService defines the admin contract over storefront accounts.
type UserService interface {
	List(ctx context.Context, search string, offset, limit int) ([]domain.User, int, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	// ChangeRole sets the role of userID and leaves the user a role_change
	// notification. Admins cannot change their own role.
	ChangeRole(ctx context.Context, actorID, userID uuid.UUID, input ChangeRoleInput) (*domain.User, error)
}

type userService struct {
	repo          port.UserRepository
	notifications port.NotificationRepository
	log           zerolog.Logger
}

// NewUserService creates a new UserService implementation.
func NewUserService(repo port.UserRepository, notifications port.NotificationRepository, log zerolog.Logger) UserService {
	return &userService{
		repo:          repo,
		notifications: notifications,
		log:           log.With().Str("component", "users").Logger(),
	}
}

func (s *userService) List(ctx context.Context, search string, offset, limit int) ([]domain.User, int, error) {
	return s.repo.List(ctx, search, offset, limit)
}

func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

func (s *userService) ChangeRole(ctx context.Context, actorID, userID uuid.UUID, input ChangeRoleInput) (*domain.User, error) {
	if !domain.ValidUserRoles[input.Role] {
		return nil, fmt.Errorf("role %q: %w", input.Role, domain.ErrInvalidArgument)
	}
	if actorID == userID {
		return nil, fmt.Errorf("changing own role: %w", domain.ErrForbidden)
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == input.Role {
		return user, nil
	}
	if err := s.repo.UpdateRole(ctx, userID, input.Role); err != nil {
		return nil, err
	}

	oldRole := user.Role
	user.Role = input.Role
	s.log.Info().
		Str("user_id", userID.String()).
		Str("actor_id", actorID.String()).
		Str("old_role", string(oldRole)).
		Str("new_role", string(input.Role)).
		Msg("role changed")

	data, _ := json.Marshal(map[string]string{
		"old_role": string(oldRole),
		"new_role": string(input.Role),
	})
	n := &domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationRoleChange,
		Title:   "Your role has changed",
		Message: fmt.Sprintf("Your account role is now %s.", input.Role),
		Data:    data,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		s.log.Error().Err(err).Str("user_id", userID.String()).Msg("creating role change notification")
	}
	return user, nil
}
