package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// auth is an HTTP middleware enforcing session authentication.
//
// It extracts the bearer token from the "Authorization" header, validates
// the JWT envelope, and then checks the carried opaque session token against
// the session manager. The session manager stays authoritative: a signed,
// unexpired envelope is still rejected when its session has idled out or was
// replaced by a newer login.
//
// On success the canonical user ID and the session token are stored in the
// request context under [utils.UserIDCtxKey] and [utils.SessionTokenCtxKey].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		token, err := utils.ValidateAndParseAccessToken(tokenString, h.app.TokenSignKey, h.app.TokenIssuer)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				log.Err(err).Msg("token expired")
				http.Error(w, "token expired", http.StatusUnauthorized)
				return
			default:
				log.Err(err).Msg("error occurred during parsing token")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}
		}

		userID := token.Claims.Subject
		sessionToken := token.Claims.SessionToken
		if !h.services.SessionService.ValidateSession(userID, sessionToken) {
			log.Warn().Str("user_id", userID).Msg("session rejected")
			http.Error(w, ErrSessionRejected.Error(), http.StatusUnauthorized)
			return
		}

		// Store the session identity in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
		ctx = context.WithValue(ctx, utils.SessionTokenCtxKey, sessionToken)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the standard form:
//
//	Authorization: <scheme> <token>
//
// It returns [ErrInvalidAuthorizationHeader] if the header contains fewer
// than two space-separated parts, and [ErrEmptyToken] if the second part
// exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
