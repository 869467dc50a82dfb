package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	at, err := NewAccessToken("s3cret", 42, "GUEST", 15)
	require.NoError(t, err)
	assert.NotEmpty(t, at.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 5*time.Second)

	tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("s3cret"), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.EqualValues(t, 42, claims["sub"])
	assert.Equal(t, "GUEST", claims["role"])
}

func TestNewAccessTokenRejectedByWrongSecret(t *testing.T) {
	at, err := NewAccessToken("s3cret", 42, "GUEST", 15)
	require.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("different"), nil
	})
	assert.Error(t, err)
}

func TestNewRefreshTokenIsRandom(t *testing.T) {
	a, err := NewRefreshToken(30)
	require.NoError(t, err)
	b, err := NewRefreshToken(30)
	require.NoError(t, err)

	assert.Len(t, a.Raw, 96) // 48 bytes hex encoded
	assert.NotEqual(t, a.Raw, b.Raw)
	assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), a.Exp, 5*time.Second)
}

func TestHashRefreshRawDeterministic(t *testing.T) {
	h1 := HashRefreshRaw("token-value")
	h2 := HashRefreshRaw("token-value")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // sha256 hex
	assert.NotEqual(t, h1, HashRefreshRaw("other"))
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("hunter2", 4) // min cost keeps the test fast
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "hunter2"))
	assert.False(t, VerifyPassword(hash, "hunter3"))
}
