package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/health-keeper/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken creates a signed HMAC-SHA256 JWT carrying the opaque
// core session token as a private claim.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the canonical user identifier
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - sid:            the opaque session token issued by the session manager
//
// The JWT is only a transport envelope; the session manager remains the
// authority on whether the carried session token is still valid.
//
// All parameters are required. Returns an error if any of them are empty or zero.
func GenerateAccessToken(issuer, userID, sessionToken string, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || userID == "" || sessionToken == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating access token")
	}

	now := time.Now()
	claims := models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		SessionToken: sessionToken,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing access token: %w", err)
	}

	return models.Token{Token: token, Claims: claims, SignedString: tokenString}, nil
}

// ValidateAndParseAccessToken validates the given token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Presence of the subject and session-token claims
//
// Returns the parsed token or an error if validation fails or a required
// claim is missing.
func ValidateAndParseAccessToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error parsing access token: %w", err)
	}

	if !token.Valid {
		return models.Token{}, errors.New("access token is not valid")
	}
	if claims.Subject == "" || claims.SessionToken == "" {
		return models.Token{}, errors.New("access token is missing required claims")
	}

	return models.Token{Token: token, Claims: *claims, SignedString: tokenString}, nil
}
