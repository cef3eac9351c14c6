package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vedanthcy46/Crisis-Management-System/internal/config"
	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
	"github.com/vedanthcy46/Crisis-Management-System/internal/validators"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/logger"
)

func testSecurityConfig() *config.SecurityConfig {
	return &config.SecurityConfig{
		JWTSecret:   "test-secret",
		JWTTokenTTL: time.Hour,
	}
}

func TestRegister(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, testSecurityConfig(), logger.NewNop())

	result, err := svc.Register(context.Background(), &validators.RegisterRequest{
		Name:     "Asha Kumar",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     "citizen",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.UserRoleCitizen, result.User.Role)
	assert.NotEqual(t, "secret123", result.User.Password)

	claims, err := utils.ValidateToken(result.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID.String(), claims.UserID)
	assert.Equal(t, "citizen", claims.Role)
}

func TestRegister_IgnoresRequestedRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, testSecurityConfig(), logger.NewNop())

	// A forged role must not mint a rescue-team account with no team row.
	result, err := svc.Register(context.Background(), &validators.RegisterRequest{
		Name:     "Asha Kumar",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     "rescue_team",
	})
	require.NoError(t, err)

	assert.Equal(t, models.UserRoleCitizen, result.User.Role)
	stored, err := users.GetByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleCitizen, stored.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	users.add(&models.User{ID: uuid.New(), Email: "asha@example.com"})

	svc := NewAuthService(users, testSecurityConfig(), logger.NewNop())

	_, err := svc.Register(context.Background(), &validators.RegisterRequest{
		Name:     "Asha Kumar",
		Email:    "asha@example.com",
		Password: "secret123",
		Role:     "citizen",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLogin(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	users := newFakeUserRepo()
	users.add(&models.User{
		ID:       uuid.New(),
		Email:    "asha@example.com",
		Password: hash,
		Role:     models.UserRoleCitizen,
		Status:   models.UserStatusActive,
	})

	svc := NewAuthService(users, testSecurityConfig(), logger.NewNop())

	result, err := svc.Login(context.Background(), &validators.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	users := newFakeUserRepo()
	users.add(&models.User{ID: uuid.New(), Email: "asha@example.com", Password: hash, Status: models.UserStatusActive})

	svc := NewAuthService(users, testSecurityConfig(), logger.NewNop())

	_, err = svc.Login(context.Background(), &validators.LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testSecurityConfig(), logger.NewNop())

	_, err := svc.Login(context.Background(), &validators.LoginRequest{
		Email:    "nobody@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	users := newFakeUserRepo()
	users.add(&models.User{ID: uuid.New(), Email: "asha@example.com", Password: hash, Status: models.UserStatusInactive})

	svc := NewAuthService(users, testSecurityConfig(), logger.NewNop())

	_, err = svc.Login(context.Background(), &validators.LoginRequest{
		Email:    "asha@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestCheckEmail(t *testing.T) {
	users := newFakeUserRepo()
	users.add(&models.User{ID: uuid.New(), Email: "asha@example.com"})

	svc := NewAuthService(users, testSecurityConfig(), logger.NewNop())

	exists, err := svc.CheckEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.CheckEmail(context.Background(), "other@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
