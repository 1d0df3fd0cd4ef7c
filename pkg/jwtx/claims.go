package jwtx

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is the lifetime of a login token.
const DefaultAccessTokenTTL = time.Hour

// Claims are the access-token claims issued at login. The user identity is
// carried both as the custom "id" claim and as the standard subject.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the numeric user identifier.
	UserID int64 `json:"id"`

	// Email the user registered with.
	Email string `json:"email"`
}

// NewAccessClaims builds minimally-correct claims for a user.
func NewAccessClaims(userID int64, email, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Email:  email,
	}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry ensures the token hasn't expired (exp) and isn't before nbf.
func (c *Claims) ValidateExpiry() error {
	now := time.Now().UTC()

	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}

// ValidateIdentity ensures the token names a user.
func (c *Claims) ValidateIdentity() error {
	if c.UserID <= 0 {
		return ErrInvalidClaim
	}
	return nil
}
