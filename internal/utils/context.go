package utils

import "context"

// ctxKey is an unexported type for request-context keys defined in this
// package, preventing collisions with keys from other packages.
type ctxKey string

const (
	// UserIDCtxKey stores the authenticated canonical user identifier.
	UserIDCtxKey ctxKey = "user_id"

	// SessionTokenCtxKey stores the opaque session token extracted from the
	// transport envelope.
	SessionTokenCtxKey ctxKey = "session_token"
)

// UserIDFromContext returns the authenticated user identifier placed in ctx
// by the auth middleware, or "" if the request was not authenticated.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDCtxKey).(string)
	return userID
}

// SessionTokenFromContext returns the opaque session token placed in ctx by
// the auth middleware, or "" if absent.
func SessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(SessionTokenCtxKey).(string)
	return token
}
