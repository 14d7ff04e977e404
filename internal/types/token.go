package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the claims carried by a bearer token. The user id lives
// in the registered "sub" claim; UserID is populated from it after the
// token has been verified.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"-"`
}
