package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenServiceRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	token, err := svc.GenerateToken(42, "standard")
	require.NoError(t, err)

	userID, err := svc.VerifyCredential(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)

	_, err = svc.GenerateToken(0, "standard")
	require.Error(t, err)
}

func TestVerifyCredentialFailuresAreUnauthenticated(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	valid, err := svc.GenerateToken(7, "admin")
	require.NoError(t, err)

	expiredSvc := NewTokenService("secret", time.Minute)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.GenerateToken(7, "admin")
	require.NoError(t, err)

	otherKey, err := NewTokenService("other", time.Hour).GenerateToken(7, "admin")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 7}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"missing":   "",
		"blank":     "   ",
		"malformed": "not.a.jwt",
		"expired":   expired,
		"wrong key": otherKey,
		"alg none":  noneToken,
		"no expiry": noExpiry,
		"truncated": valid[:len(valid)-4],
	}
	for name, credential := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.VerifyCredential(credential)
			assert.ErrorIs(t, err, ErrUnauthenticated)
		})
	}
}
