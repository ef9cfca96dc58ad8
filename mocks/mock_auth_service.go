package mocks

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"amorlias/internal/domain"
	"amorlias/internal/service"
)

// MockAuthService is a mock implementation of service.AuthService.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) IssueAccessToken(userID uuid.UUID, email string, role domain.UserRole, ttl time.Duration) (string, error) {
	args := m.Called(userID, email, role, ttl)
	return args.String(0), args.Error(1)
}
