package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Cipher performs authenticated symmetric encryption of opaque byte payloads.
// The key is derived once per process from a configured secret and cached in
// memory; it is never written to disk.
//
// The serialized blob bundles nonce and ciphertext (with the GCM tag), so
// Decrypt is self-describing and needs no external state beyond the key.
type Cipher interface {
	// Encrypt seals plaintext with AES-256-GCM under a fresh random nonce
	// and returns the base64-encoded blob nonce ‖ ciphertext.
	Encrypt(plaintext []byte) (string, error)

	// Decrypt opens a blob produced by Encrypt. It fails with a wrapped
	// [ErrCipherFailure] if the blob is malformed, the authentication tag
	// does not verify, or the key is unavailable. A tampered blob always
	// fails; corrupted plaintext is never returned.
	Decrypt(blob string) ([]byte, error)
}

// PINHasher produces and verifies one-way hashes of short numeric access
// PINs. Hashing is deliberately slow (adaptive cost) with a per-call random
// salt baked into the output, so identical PINs yield different hashes.
type PINHasher interface {
	// Hash returns the salted one-way hash of pin.
	Hash(pin string) (string, error)

	// Verify reports whether pin matches the stored hash. The comparison is
	// constant-time with respect to correct and incorrect guesses. Malformed
	// stored hashes yield false, never a panic or an error.
	Verify(pin, hash string) bool

	// IsValidFormat reports whether pin consists of exactly 4 to 6 ASCII
	// digits.
	IsValidFormat(pin string) bool
}
