package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/arketra-labs/workforce-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret-key-for-jwt", "15m", "168h")
}

func TestAccessTokenClaims(t *testing.T) {
	svc := newTestService()

	employeeID := "emp-1"
	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "rep@example.com", &employeeID, user.RoleEmployee)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "rep@example.com", claims["email"])
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "employee", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestAccessTokenWithoutEmployee(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateAccessToken("user-1", "admin@example.com", nil, user.RoleAdmin)
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Nil(t, claims["employee_id"])
}

func TestParseRefreshToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	userID, err := svc.ParseRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestParseRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateAccessToken("user-1", "rep@example.com", nil, user.RoleEmployee)
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestParseRefreshTokenRejectsRevoked(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	svc.RevokeToken(tokenString)
	assert.True(t, svc.IsTokenRevoked(tokenString))

	_, err = svc.ParseRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := newTestService()

	expiresAt := time.Now().Add(168 * time.Hour).Unix()
	cookie := svc.RefreshTokenCookie("token-value", expiresAt)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}

func TestClaimsFromContext(t *testing.T) {
	svc := newTestService()

	employeeID := "emp-1"
	tokenString, _, err := svc.GenerateAccessToken("user-1", "rep@example.com", &employeeID, user.RoleManager)
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), token, nil)
	claims, err := ClaimsFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "emp-1", claims.EmployeeID)
	assert.True(t, claims.IsManager())
	assert.False(t, claims.IsAdmin())
}
