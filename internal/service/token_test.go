package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

func TestTokenIssueAndValidate(t *testing.T) {
	svc := NewTokenService(testSecret, 24*time.Hour)

	token, err := svc.Issue(42, "neo")
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "neo", claims.Username)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 2*time.Second)
}

func TestTokenDeterministicForSameInstant(t *testing.T) {
	fixed := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	svc := NewTokenService(testSecret, 24*time.Hour)
	svc.now = func() time.Time { return fixed }

	a, err := svc.Issue(1, "neo")
	require.NoError(t, err)
	b, err := svc.Issue(1, "neo")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTokenExpiredIsForbidden(t *testing.T) {
	issuedAt := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	svc := NewTokenService(testSecret, 24*time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(1, "neo")
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(23 * time.Hour) }
	_, err = svc.Validate(token)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(24*time.Hour + time.Second) }
	_, err = svc.Validate(token)
	assert.True(t, errors.Is(err, ErrForbidden))
	assert.False(t, errors.Is(err, ErrUnauthenticated))
}

func TestTokenValidateErrors(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	other := NewTokenService("another-secret-another-secret-xx", time.Hour)

	foreign, err := other.Issue(1, "neo")
	require.NoError(t, err)

	noneToken := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	unsigned, err := noneToken.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"missing", "", ErrUnauthenticated},
		{"malformed", "not-a-jwt", ErrUnauthenticated},
		{"wrong signature", foreign, ErrForbidden},
		{"alg none", unsigned, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}
