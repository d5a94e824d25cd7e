package api

import (
	"time"

	"github.com/youridegraef/qash-backend-sub000/internal/auth"
)

// Tokens carries the JWT settings every adapter needs: the key and issuer
// handed to UserService.Authenticate, and a manager that validates the
// tokens it issues.
type Tokens struct {
	Key     string
	Issuer  string
	Manager *auth.JWTManager
}

// NewTokens builds Tokens for one signing key and issuer.
func NewTokens(key, issuer string, ttl time.Duration) Tokens {
	return Tokens{
		Key:     key,
		Issuer:  issuer,
		Manager: auth.NewJWTManager(key, issuer, ttl),
	}
}
