package services

import (
	"context"
	"testing"
	"time"

	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/app/models/dto"
	"github.com/MiiguelHG/escolar-api/internal/pkg/apperrors"
	"github.com/MiiguelHG/escolar-api/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[string]*models.Usuario
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.Usuario, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func newTestAuthService(t *testing.T, users ...*models.Usuario) *AuthService {
	t.Helper()

	repo := &fakeUserRepo{users: map[string]*models.Usuario{}}
	for _, u := range users {
		repo.users[u.Username] = u
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: 20 * time.Minute,
		TokenIssuer:    "escolar.test",
	})

	return NewAuthService(repo, jwtService, zerolog.Nop())
}

func testUser(t *testing.T, username, password string, disabled bool) *models.Usuario {
	t.Helper()

	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)

	return &models.Usuario{ID: 1, Username: username, Password: hashed, Disabled: disabled}
}

func TestLoginSuccess(t *testing.T) {
	service := newTestAuthService(t, testUser(t, "admin", "admin", false))

	resp, err := service.Login(context.Background(), &dto.TokenRequest{Username: "admin", Password: "admin"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, "bearer", resp.TokenType)
	require.Equal(t, int64((20 * time.Minute).Seconds()), resp.ExpiresIn)
}

func TestLoginWrongPassword(t *testing.T) {
	service := newTestAuthService(t, testUser(t, "admin", "admin", false))

	_, err := service.Login(context.Background(), &dto.TokenRequest{Username: "admin", Password: "nope"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	service := newTestAuthService(t)

	_, err := service.Login(context.Background(), &dto.TokenRequest{Username: "ghost", Password: "x"})
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginDisabledUser(t *testing.T) {
	service := newTestAuthService(t, testUser(t, "admin", "admin", true))

	_, err := service.Login(context.Background(), &dto.TokenRequest{Username: "admin", Password: "admin"})
	require.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}

func TestGetActiveUser(t *testing.T) {
	service := newTestAuthService(t,
		testUser(t, "admin", "admin", false),
		testUser(t, "inactive", "admin", true),
	)

	user, err := service.GetActiveUser(context.Background(), "admin")
	require.NoError(t, err)
	require.Equal(t, "admin", user.Username)

	_, err = service.GetActiveUser(context.Background(), "inactive")
	require.ErrorIs(t, err, apperrors.ErrAccountDisabled)

	_, err = service.GetActiveUser(context.Background(), "ghost")
	require.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}
