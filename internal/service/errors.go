package service

import "errors"

var (
	// ErrInvalidDataProvided is returned when a required argument is empty
	// or malformed.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrWrongPIN is returned by Login when the PIN does not match the
	// stored hash.
	ErrWrongPIN = errors.New("wrong PIN")

	// ErrSessionCreationFailed is returned when token generation fails.
	ErrSessionCreationFailed = errors.New("session creation failed")

	// ErrDocumentNotSaved is returned by Update when the modified document
	// could not be persisted.
	ErrDocumentNotSaved = errors.New("document not saved")
)
