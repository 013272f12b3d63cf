package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/app/models/dto"
	"github.com/MiiguelHG/escolar-api/internal/pkg/apperrors"
	"github.com/MiiguelHG/escolar-api/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// userReader is the slice of the user repository the auth service needs
type userReader interface {
	GetByUsername(ctx context.Context, username string) (*models.Usuario, error)
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   userReader
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo userReader, jwtService *auth.JWTService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates a user and issues an access token. Unknown usernames
// and wrong passwords collapse into the same error so the response does not
// reveal which one failed.
func (s *AuthService) Login(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.Disabled {
		return nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.Username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", user.Username).Msg("Failed to generate access token")
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// GetActiveUser resolves a username from a validated token to its account and
// rejects disabled accounts. The auth middleware calls this on every request.
func (s *AuthService) GetActiveUser(ctx context.Context, username string) (*models.Usuario, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error looking up user: %w", err)
	}

	if user.Disabled {
		return nil, apperrors.ErrAccountDisabled
	}

	return user, nil
}
