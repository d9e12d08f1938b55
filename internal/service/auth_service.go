package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	users  repository.UserRepository
	hasher PasswordHasher
	logger zerolog.Logger
}

// NewAuthService creates a new credential service.
func NewAuthService(users repository.UserRepository, hasher PasswordHasher, logger zerolog.Logger) AuthService {
	return &authService{
		users:  users,
		hasher: hasher,
		logger: logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates a customer account with a hashed password.
func (s *authService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, model.ErrMissingCredentials
	}
	if len(password) > auth.MaxPasswordBytes {
		return nil, model.ErrPasswordTooLong
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         model.RoleCustomer,
		CreatedAt:    time.Now().UTC(),
	}

	// the unique index still reports ErrEmailExists if a concurrent signup won
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Authenticate returns the user when password matches the stored hash.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, model.ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		s.logger.Debug().Msg("login for unknown email")
		return nil, model.ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to verify password hash")
		}
		return nil, model.ErrInvalidCredentials
	}

	return user, nil
}
