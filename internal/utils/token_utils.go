package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GenerateJWT signs an HS256 operator token for subject, valid from now for
// expiryDuration.
func GenerateJWT(subject string, secret string, expiryDuration time.Duration, issuer string, now time.Time) (string, error) {
	if subject == "" {
		return "", errors.New("token subject cannot be empty")
	}
	if secret == "" {
		return "", errors.New("token secret cannot be empty")
	}
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
