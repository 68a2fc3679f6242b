package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWT(t *testing.T) {
	now := time.Now()
	signed, err := GenerateJWT("alice", "secret", time.Hour, "ledger", now)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}, jwt.WithIssuer("ledger"))
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestGenerateJWT_Rejects(t *testing.T) {
	_, err := GenerateJWT("", "secret", time.Hour, "ledger", time.Now())
	assert.Error(t, err)

	_, err = GenerateJWT("alice", "", time.Hour, "ledger", time.Now())
	assert.Error(t, err)
}
