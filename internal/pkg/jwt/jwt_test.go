package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/exellar/payroll-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService("test-secret-key-for-jwt", "1h", "24h", false)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_InvalidDuration(t *testing.T) {
	_, err := NewJWTService("secret", "soon", "24h", false)
	assert.Error(t, err)
}

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := newTestService(t)
	emp := "EMP001"

	token, exp, err := svc.GenerateAccessToken(42, "hr@example.com", &emp, user.RoleHR)
	require.NoError(t, err)
	assert.Greater(t, exp, time.Now().Unix())

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)
	m, err := parsed.AsMap(context.Background())
	require.NoError(t, err)

	claims, err := ParseClaims(m)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "hr@example.com", claims.Email)
	assert.Equal(t, user.RoleHR, claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	require.NotNil(t, claims.EmployeeID)
	assert.Equal(t, "EMP001", *claims.EmployeeID)
}

func TestGenerateRefreshToken_Unique(t *testing.T) {
	svc := newTestService(t)

	a, _, err := svc.GenerateRefreshToken(1)
	require.NoError(t, err)
	b, _, err := svc.GenerateRefreshToken(1)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestRevokeToken(t *testing.T) {
	svc := newTestService(t)
	future := time.Now().Add(time.Hour).Unix()

	assert.False(t, svc.IsTokenRevoked("abc"))
	svc.RevokeToken("abc", future)
	assert.True(t, svc.IsTokenRevoked("abc"))

	// Expired entries are pruned on the next revocation.
	svc.RevokeToken("old", time.Now().Add(-time.Minute).Unix())
	svc.RevokeToken("new", future)
	assert.False(t, svc.IsTokenRevoked("old"))
	assert.True(t, svc.IsTokenRevoked("new"))
}

func TestParseClaims_RejectsMissingUser(t *testing.T) {
	_, err := ParseClaims(map[string]interface{}{"role": "admin"})
	assert.ErrorIs(t, err, ErrInvalidClaims)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService(t)
	c := svc.RefreshTokenCookie("tok", time.Now().Add(time.Hour).Unix())
	assert.Equal(t, RefreshCookieName, c.Name)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, -1, svc.ClearRefreshTokenCookie().MaxAge)
}
