package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return NewTokenService("test-secret-key-for-testing-purposes", 15*time.Minute)
}

func TestMint_Success(t *testing.T) {
	service := newTestTokenService()

	token, expiresAt, err := service.Mint("user-123", "test@example.com", RoleUser)

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))
	assert.True(t, expiresAt.Before(time.Now().Add(16*time.Minute)))
}

func TestVerify_Valid(t *testing.T) {
	service := newTestTokenService()

	token, _, err := service.Mint("user-456", "test@example.com", RoleAdmin)
	require.NoError(t, err)

	claims, err := service.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, "user-456", claims.UserID)
	assert.Equal(t, "test@example.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "user-456", claims.Subject)
}

func TestVerify_Expired(t *testing.T) {
	service := NewTokenService("test-secret", 1*time.Millisecond)

	token, _, err := service.Mint("user-123", "test@example.com", RoleUser)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	claims, err := service.Verify(token)

	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestVerify_Invalid(t *testing.T) {
	service := newTestTokenService()

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiJ4In0.invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.Verify(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	token, _, err := newTestTokenService().Mint("user-123", "test@example.com", RoleUser)
	require.NoError(t, err)

	other := NewTokenService("a-completely-different-secret-key", 15*time.Minute)
	claims, err := other.Verify(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestVerify_RejectsUnexpectedSigningMethod(t *testing.T) {
	service := newTestTokenService()

	// Token signed with "none" must never validate.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-123"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	claims, err := service.Verify(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}
