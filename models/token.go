package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the JWT claim set used at the HTTP transport edge.
// The JWT is only an envelope: the authoritative credential is the opaque
// session token carried in SessionToken, which the session manager validates
// (token match plus sliding expiry) on every request.
type AccessClaims struct {
	jwt.RegisteredClaims

	// SessionToken is the opaque core session token issued at login.
	SessionToken string `json:"sid"`
}

// Token wraps an issued transport token together with its claims.
//
// SignedString holds the compact serialized form (header.payload.signature)
// ready to be transmitted in the Authorization header.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// Claims is the parsed claim set of the token.
	Claims AccessClaims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
