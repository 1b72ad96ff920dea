package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/health-keeper/models"
)

// RecordService owns the per-user health-log documents.
//
// Every operation takes the raw user identifier (canonicalized internally)
// and an encrypted flag selecting whether the cipher is applied to the
// serialized document. Operations degrade instead of failing: a read fault
// looks like an empty history and a write fault is reported as a false
// result, because message processing must never abort on a storage fault.
type RecordService interface {
	// Load returns the user's document. If no document exists, or the
	// payload cannot be read, parsed, or decrypted, an empty document is
	// returned (the latter tagged with a load-error marker in metadata).
	Load(ctx context.Context, userID string, encrypted bool) *models.HealthDocument

	// Save recomputes the document bookkeeping fields and persists it.
	// Returns false on any I/O or encryption error.
	Save(ctx context.Context, userID string, doc *models.HealthDocument, encrypted bool) bool

	// Update runs fn against the user's document and persists the result,
	// holding the per-user lock across the whole load-modify-save so no
	// concurrent writer can interleave. An error returned by fn aborts the
	// update without saving.
	Update(ctx context.Context, userID string, encrypted bool, fn func(doc *models.HealthDocument) error) error

	// AddRecord synthesizes a full record from partial (defaulting date to
	// the current day and category to the generic one), appends it, resorts
	// the collection descending by timestamp, and saves.
	AddRecord(ctx context.Context, userID string, partial models.Record, encrypted bool) bool

	// GetByDate returns the records whose Date equals date exactly.
	GetByDate(ctx context.Context, userID, date string, encrypted bool) []models.Record

	// GetRecent returns the records of the last days calendar days,
	// inclusive lower bound.
	GetRecent(ctx context.Context, userID string, days int, encrypted bool) []models.Record

	// GetAll returns all records, most recent first.
	GetAll(ctx context.Context, userID string, encrypted bool) []models.Record

	// DeleteAll removes the user's persisted document entirely.
	// Returns false if none existed.
	DeleteAll(ctx context.Context, userID string) bool

	// Export renders a human-readable report grouped by date descending,
	// or an explicit "no records" message for an empty collection.
	Export(ctx context.Context, userID string, encrypted bool) string
}

// SessionService is the in-memory session table with sliding expiration.
// At most one session exists per user; creating a new one replaces the old
// entry, making any previously issued token un-matchable.
type SessionService interface {
	// CreateSession issues a fresh opaque token and stores the session,
	// silently replacing a previous one for the same user.
	CreateSession(userID string) (string, error)

	// ValidateSession reports whether token matches the user's active
	// session and the session has not idled out. On success the idle window
	// is reset; an idled-out session is destroyed (lazy expiry).
	ValidateSession(userID, token string) bool

	// UpdateActivity refreshes the idle window without token validation,
	// used for background activity pings.
	UpdateActivity(userID string)

	// DestroySession removes the user's session immediately.
	DestroySession(userID string)

	// CleanupExpiredSessions destroys every session whose idle time exceeds
	// the timeout and returns the number of sessions removed. Intended to
	// run on a fixed interval to bound memory growth.
	CleanupExpiredSessions() int
}

// AuthService manages the optional PIN protection of a user's store and
// gates session creation on it.
type AuthService interface {
	// SetPIN validates the PIN format, hashes the PIN, and stores the hash
	// in the user's document. The PIN itself is never persisted.
	SetPIN(ctx context.Context, userID, pin string, encrypted bool) error

	// Login verifies the PIN when the store is protected and creates a
	// session, returning the opaque session token. For an unprotected
	// store the PIN argument is ignored.
	Login(ctx context.Context, userID, pin string, encrypted bool) (string, error)

	// IsProtected reports whether the user's store requires a PIN.
	IsProtected(ctx context.Context, userID string, encrypted bool) bool
}
