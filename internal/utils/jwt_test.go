package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndVerifyJWT(t *testing.T) {
	token, err := GenerateJWT(42, testSecret)
	require.NoError(t, err)

	id, ok := VerifyJWT(token, testSecret)
	require.True(t, ok)
	assert.Equal(t, uint(42), id)

	claims, err := ParseJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, TokenTTL, lifetime)
}

func TestVerifyJWT_Rejects(t *testing.T) {
	valid, err := GenerateJWT(7, testSecret)
	require.NoError(t, err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-TokenTTL)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 7}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID:           7,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]struct {
		token  string
		secret string
	}{
		"wrong secret":  {valid, "other-secret"},
		"expired":       {expired, testSecret},
		"no expiry":     {noExpiry, testSecret},
		"no user":       {noUser, testSecret},
		"alg none":      {unsigned, testSecret},
		"garbage":       {"not.a.token", testSecret},
		"empty":         {"", testSecret},
		"tampered sig":  {valid + "x", testSecret},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			id, ok := VerifyJWT(c.token, c.secret)
			assert.False(t, ok)
			assert.Zero(t, id)
		})
	}
}
