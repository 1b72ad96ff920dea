package store

import "errors"

var (
	// ErrDocumentNotFound is returned when no document exists for the
	// requested user identifier.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrInvalidUserID is returned when the caller passes an identifier
	// that is empty after canonicalization.
	ErrInvalidUserID = errors.New("invalid user identifier")
)
