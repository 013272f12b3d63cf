package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func newTestService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "escolar.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestService(20 * time.Minute)

	token, expiresIn, err := service.GenerateToken("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, int64((20 * time.Minute).Seconds()), expiresIn)

	claims, err := service.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	require.Equal(t, "admin", claims.Subject)
	require.Equal(t, "escolar.test", claims.Issuer)
	require.NotEmpty(t, claims.ID)
}

func TestGenerateTokenEmptyUsername(t *testing.T) {
	service := newTestService(20 * time.Minute)

	_, _, err := service.GenerateToken("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAccessTokenExpiryFallback(t *testing.T) {
	service := newTestService(0)
	require.Equal(t, fallbackTokenExp, service.AccessTokenExpiry())

	service = newTestService(20 * time.Minute)
	require.Equal(t, 20*time.Minute, service.AccessTokenExpiry())
}

func TestValidateExpiredToken(t *testing.T) {
	service := newTestService(20 * time.Minute)

	now := time.Now().Add(-1 * time.Hour)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   "admin",
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = service.ValidateToken(expired)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	service := newTestService(20 * time.Minute)
	other := NewJWTService(JWTConfig{SecretKey: "other-secret", AccessTokenExp: 20 * time.Minute})

	token, _, err := other.GenerateToken("admin")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAndExtractClaimsMissingSubject(t *testing.T) {
	service := newTestService(20 * time.Minute)

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = service.ValidateAndExtractClaims(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	require.ErrorIs(t, err, ErrInvalidFormat)
}
