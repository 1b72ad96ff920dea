package models

import "time"

// Session is one active in-memory session. At most one session exists per
// user identifier; creating a new one silently replaces the previous entry,
// which makes any old token un-matchable.
type Session struct {
	// UserID is the canonical user identifier the session belongs to.
	UserID string `json:"user_id"`

	// Token is the opaque, unguessable session token handed to the caller
	// at creation time. It is never derivable from the user identifier.
	Token string `json:"-"`

	// CreatedAt is the session creation instant.
	CreatedAt time.Time `json:"created_at"`

	// LastActivity is refreshed on every successful validation (sliding
	// expiration). A session whose idle time exceeds the configured timeout
	// is destroyed lazily on the next validation or by the periodic sweep.
	LastActivity time.Time `json:"last_activity"`
}

// IdleSince reports how long the session has been idle at instant now.
func (s *Session) IdleSince(now time.Time) time.Duration {
	return now.Sub(s.LastActivity)
}
