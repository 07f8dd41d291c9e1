package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const ContextAdminClaim = "context_admin_claim"

// AdminClaim identifies the holder of an admin token. Name is free-form,
// typically the operator or automation that minted the token.
type AdminClaim struct {
	Name string
	jwt.RegisteredClaims
}

func CreateJwtSignedString(c AdminClaim, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(secret)
}

// NewAdminClaim builds a claim valid for the given duration
func NewAdminClaim(name string, ttl time.Duration) AdminClaim {
	now := time.Now()
	return AdminClaim{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   name,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
