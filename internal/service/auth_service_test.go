package service_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amorlias/internal/config"
	"amorlias/internal/domain"
	"amorlias/internal/service"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret-key-for-testing", Issuer: "amorlias-test"}
}

func TestAuthService_ValidateToken_Success(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())
	userID := uuid.New()

	token, err := svc.IssueAccessToken(userID, "admin@amorlias.in", domain.RoleAdmin, time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin@amorlias.in", claims.Email)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_ValidateToken_InvalidSignature(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())

	claims, err := svc.ValidateToken("invalid.token.string")
	assert.Nil(t, claims)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_OtherSecret(t *testing.T) {
	issuer := service.NewAuthService(config.JWTConfig{Secret: "another-secret", Issuer: "amorlias-test"})
	token, err := issuer.IssueAccessToken(uuid.New(), "a@b.in", domain.RoleCustomer, time.Minute)
	require.NoError(t, err)

	_, err = service.NewAuthService(testJWTConfig()).ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_WrongIssuer(t *testing.T) {
	issuer := service.NewAuthService(config.JWTConfig{Secret: "test-secret-key-for-testing", Issuer: "elsewhere"})
	token, err := issuer.IssueAccessToken(uuid.New(), "a@b.in", domain.RoleCustomer, time.Minute)
	require.NoError(t, err)

	_, err = service.NewAuthService(testJWTConfig()).ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Expired(t *testing.T) {
	svc := service.NewAuthService(testJWTConfig())
	token, err := svc.IssueAccessToken(uuid.New(), "a@b.in", domain.RoleCustomer, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
