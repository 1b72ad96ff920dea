package crypto

import "errors"

var (
	// ErrCipherFailure covers every cryptographic fault: missing key
	// material, malformed blobs, and failed authentication. Callers at the
	// store boundary absorb it into a degraded (empty/false) result.
	ErrCipherFailure = errors.New("crypto failure")

	// ErrInvalidPINFormat is returned when a PIN is not 4-6 ASCII digits.
	ErrInvalidPINFormat = errors.New("invalid PIN format")
)
