package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEqual(t, "secret123", hashed)

	require.True(t, CheckPassword(hashed, "secret123"))
	require.False(t, CheckPassword(hashed, "wrong"))
	require.False(t, CheckPassword("not-a-hash", "secret123"))
}
