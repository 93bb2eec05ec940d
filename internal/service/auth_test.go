package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathsolver/internal/config"
	"mathsolver/internal/service"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := service.NewTokenService(config.APIConfig{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "mathsolver",
	})

	token, expiry, err := tokens.Issue("alex")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := tokens.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alex", claims.Name)
	assert.Equal(t, "alex", claims.Subject)
}

func TestTokenWrongSecret(t *testing.T) {
	issuer := service.NewTokenService(config.APIConfig{
		JWTSecret: "secret-a", TokenExpiry: time.Hour, Issuer: "mathsolver",
	})
	verifier := service.NewTokenService(config.APIConfig{
		JWTSecret: "secret-b", TokenExpiry: time.Hour, Issuer: "mathsolver",
	})

	token, _, err := issuer.Issue("alex")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tokens := service.NewTokenService(config.APIConfig{
		JWTSecret: "test-secret", TokenExpiry: -time.Minute, Issuer: "mathsolver",
	})

	token, _, err := tokens.Issue("alex")
	require.NoError(t, err)

	_, err = tokens.Validate(token)
	assert.Error(t, err)
}

func TestTokenWrongIssuer(t *testing.T) {
	issuer := service.NewTokenService(config.APIConfig{
		JWTSecret: "test-secret", TokenExpiry: time.Hour, Issuer: "someone-else",
	})
	verifier := service.NewTokenService(config.APIConfig{
		JWTSecret: "test-secret", TokenExpiry: time.Hour, Issuer: "mathsolver",
	})

	token, _, err := issuer.Issue("alex")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	tokens := service.NewTokenService(config.APIConfig{
		JWTSecret: "test-secret", TokenExpiry: time.Hour, Issuer: "mathsolver",
	})
	_, err := tokens.Validate("not-a-token")
	assert.Error(t, err)
}
