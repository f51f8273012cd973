package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func mintToken(t *testing.T, secret string, claims *Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(userID string) *Claims {
	now := time.Now().UTC()
	return &Claims{
		UserID: userID,
		Email:  "user@example.com",
		Role:   "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			Issuer:    "user-service",
		},
	}
}

func TestVerify_ValidToken(t *testing.T) {
	verifier := NewVerifier(testSecret)
	token := mintToken(t, testSecret, validClaims("user-1"))

	claims, err := verifier.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "customer", claims.Role)
}

func TestVerify_UserIDFallsBackToSubject(t *testing.T) {
	verifier := NewVerifier(testSecret)
	c := validClaims("user-1")
	c.UserID = ""
	token := mintToken(t, testSecret, c)

	claims, err := verifier.Verify(token)

	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestVerify_WrongSecret(t *testing.T) {
	verifier := NewVerifier(testSecret)
	token := mintToken(t, "another-secret", validClaims("user-1"))

	_, err := verifier.Verify(token)

	assert.Error(t, err)
}

func TestVerify_ExpiredToken(t *testing.T) {
	verifier := NewVerifier(testSecret)
	c := validClaims("user-1")
	c.ExpiresAt = jwt.NewNumericDate(time.Now().UTC().Add(-time.Minute))
	token := mintToken(t, testSecret, c)

	_, err := verifier.Verify(token)

	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	verifier := NewVerifier(testSecret)

	_, err := verifier.Verify("not-a-token")

	assert.Error(t, err)
}
