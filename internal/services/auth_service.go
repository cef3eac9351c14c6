package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vedanthcy46/Crisis-Management-System/internal/config"
	"github.com/vedanthcy46/Crisis-Management-System/internal/models"
	"github.com/vedanthcy46/Crisis-Management-System/internal/repositories/interfaces"
	"github.com/vedanthcy46/Crisis-Management-System/internal/utils"
	"github.com/vedanthcy46/Crisis-Management-System/internal/validators"
	"github.com/vedanthcy46/Crisis-Management-System/pkg/logger"
)

// AuthResult is what a successful register or login returns.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

type AuthService struct {
	userRepo interfaces.UserRepository
	security *config.SecurityConfig
	logger   *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, security *config.SecurityConfig, log *logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		security: security,
		logger:   log,
	}
}

func (s *AuthService) Register(ctx context.Context, req *validators.RegisterRequest) (*AuthResult, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Public registration only creates citizens; rescue-team accounts are
	// provisioned through the admin path together with their team row.
	user := &models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Phone:    req.Phone,
		Role:     models.UserRoleCitizen,
		Status:   models.UserStatusActive,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, interfaces.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role), user.Email, s.security.JWTSecret, s.security.JWTTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.WithUserID(user.ID).WithField("role", user.Role).Info("user registered")

	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req *validators.LoginRequest) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if user.Status != models.UserStatusActive {
		return nil, ErrAccountDisabled
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role), user.Email, s.security.JWTSecret, s.security.JWTTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.WithUserID(user.ID).Info("user logged in")

	return &AuthResult{User: user, Token: token}, nil
}

// CheckEmail reports whether an email is already registered. The signup form
// calls this before submitting.
func (s *AuthService) CheckEmail(ctx context.Context, email string) (bool, error) {
	return s.userRepo.EmailExists(ctx, email)
}
