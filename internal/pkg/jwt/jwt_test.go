package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "ADMIN", testAccessSecret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, testAccessSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.AccountID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, "educenter", claims.Issuer)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := GenerateAccessToken(1, "USER", testAccessSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testAccessSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "USER", testAccessSecret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "some-other-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenTampered(t *testing.T) {
	token, err := GenerateAccessToken(1, "USER", testAccessSecret, 15)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = ValidateAccessToken(tampered, testAccessSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ValidateAccessToken("not.a.token", testAccessSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-123", testRefreshSecret, 1)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testRefreshSecret)
	require.NoError(t, err)

	assert.Equal(t, uint(7), claims.AccountID)
	assert.Equal(t, "token-id-123", claims.TokenID)
}

func TestRefreshTokenExpired(t *testing.T) {
	token, err := GenerateRefreshToken(7, "token-id-123", testRefreshSecret, -1)
	require.NoError(t, err)

	_, err = ValidateRefreshToken(token, testRefreshSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestSecretsAreNotInterchangeable(t *testing.T) {
	// An access token must not validate as a refresh token and vice versa,
	// because the two use distinct secrets.
	access, err := GenerateAccessToken(1, "USER", testAccessSecret, 15)
	require.NoError(t, err)

	_, err = ValidateRefreshToken(access, testRefreshSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	refresh, err := GenerateRefreshToken(1, "id", testRefreshSecret, 1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(refresh, testAccessSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
