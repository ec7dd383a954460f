package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJWTSecretMissing(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.Error(t, InitJWTSecret())
}

func TestGenerateAndVerifyJWT(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	require.NoError(t, InitJWTSecret())

	tokenString, err := GenerateJWT(42, "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := VerifyJWT(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "a@x.com", claims["email"])
}

func TestVerifyJWTRejectsTampered(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	require.NoError(t, InitJWTSecret())

	tokenString, err := GenerateJWT(42, "a@x.com")
	require.NoError(t, err)

	_, err = VerifyJWT(tokenString + "x")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	require.NoError(t, InitJWTSecret())

	tokenString, err := GenerateJWT(7, "b@x.com")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "second-secret")
	require.NoError(t, InitJWTSecret())

	_, err = VerifyJWT(tokenString)
	assert.Error(t, err)
}
