package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MiiguelHG/escolar-api/internal/app/models"
	"github.com/MiiguelHG/escolar-api/internal/pkg/apperrors"
	"github.com/MiiguelHG/escolar-api/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fakeUserResolver struct {
	users map[string]*models.Usuario
}

func (f *fakeUserResolver) GetActiveUser(_ context.Context, username string) (*models.Usuario, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, apperrors.ErrTokenInvalid
	}
	if user.Disabled {
		return nil, apperrors.ErrAccountDisabled
	}
	return user, nil
}

func newAuthTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: 20 * time.Minute,
	})

	resolver := &fakeUserResolver{users: map[string]*models.Usuario{
		"admin":    {ID: 1, Username: "admin"},
		"inactive": {ID: 2, Username: "inactive", Disabled: true},
	}}

	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(jwtService, resolver).JWTAuth(), func(c *gin.Context) {
		username, _ := c.Get("username")
		c.JSON(http.StatusOK, gin.H{"username": username})
	})

	return router, jwtService
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	rec := doRequest(router, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	router, _ := newAuthTestRouter(t)

	rec := doRequest(router, "Bearer not-a-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	router, jwtService := newAuthTestRouter(t)

	token, _, err := jwtService.GenerateToken("admin")
	require.NoError(t, err)

	rec := doRequest(router, "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "admin")
}

func TestJWTAuthDisabledUser(t *testing.T) {
	router, jwtService := newAuthTestRouter(t)

	// The token itself is valid; the account behind it is not.
	token, _, err := jwtService.GenerateToken("inactive")
	require.NoError(t, err)

	rec := doRequest(router, "Bearer "+token)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthUnknownSubject(t *testing.T) {
	router, jwtService := newAuthTestRouter(t)

	token, _, err := jwtService.GenerateToken("ghost")
	require.NoError(t, err)

	rec := doRequest(router, "Bearer "+token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
