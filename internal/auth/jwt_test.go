package auth

import (
	"testing"

	"assettrack-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func parseClaims(t *testing.T, tokenStr, secret string) (*JWTCustomClaims, error) {
	t.Helper()
	claims := &JWTCustomClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	return claims, err
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	cid := uint(7)
	user := &models.User{
		ID:         42,
		Email:      "staff@example.com",
		Role:       models.RoleStaff,
		ConsumerID: &cid,
	}

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	claims, err := parseClaims(t, tokenStr, testSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "staff@example.com", claims.Email)
	assert.Equal(t, models.RoleStaff, claims.Role)
	require.NotNil(t, claims.ConsumerID)
	assert.Equal(t, uint(7), *claims.ConsumerID)
	assert.NotEmpty(t, claims.ID)
}

func TestGenerateTokenUniqueJTI(t *testing.T) {
	user := &models.User{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin}

	t1, err := GenerateToken(testSecret, user)
	require.NoError(t, err)
	t2, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	c1, err := parseClaims(t, t1, testSecret)
	require.NoError(t, err)
	c2, err := parseClaims(t, t2, testSecret)
	require.NoError(t, err)

	assert.NotEqual(t, c1.ID, c2.ID)
}

func TestGenerateTokenWrongSecretRejected(t *testing.T) {
	user := &models.User{ID: 1, Email: "admin@example.com", Role: models.RoleAdmin}

	tokenStr, err := GenerateToken(testSecret, user)
	require.NoError(t, err)

	_, err = parseClaims(t, tokenStr, "another-secret-another-secret-xx")
	assert.Error(t, err)
}
