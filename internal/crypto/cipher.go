// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/argon2"
)

// vaultCipher is the private implementation of [Cipher].
type vaultCipher struct {
	// secret and salt are the key-derivation inputs from configuration.
	// The derived key exists only in process memory.
	secret string
	salt   []byte

	// Argon2id tuning parameters. Stored in the struct so they can be
	// adjusted per deployment target.
	argonTime    uint32
	argonMemory  uint32
	argonThreads uint8
	argonKeyLen  uint32

	// once guards the lazy, one-time key derivation.
	once   sync.Once
	key    []byte
	keyErr error
}

// NewVaultCipher constructs a [Cipher] that derives its AES-256 key from
// secret and salt via Argon2id with the parameters recommended by OWASP
// (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
//
// Derivation happens lazily on first use and the result is cached for the
// process lifetime.
func NewVaultCipher(secret, salt string) Cipher {
	return &vaultCipher{
		secret:       secret,
		salt:         []byte(salt),
		argonTime:    1,
		argonMemory:  64 * 1024, // 64 MiB
		argonThreads: 4,
		argonKeyLen:  32, // 256 bits
	}
}

// deriveKey runs the Argon2id derivation exactly once and caches the result.
// Subsequent calls return the cached key or the cached derivation error.
func (c *vaultCipher) deriveKey() ([]byte, error) {
	c.once.Do(func() {
		if c.secret == "" {
			c.keyErr = fmt.Errorf("%w: master secret is not configured", ErrCipherFailure)
			return
		}
		if len(c.salt) == 0 {
			c.keyErr = fmt.Errorf("%w: key-derivation salt is not configured", ErrCipherFailure)
			return
		}

		c.key = argon2.IDKey(
			[]byte(c.secret),
			c.salt,
			c.argonTime,
			c.argonMemory,
			c.argonThreads,
			c.argonKeyLen,
		)
	})

	return c.key, c.keyErr
}

// Encrypt implements [Cipher]. It seals plaintext with AES-256-GCM under a
// fresh random 12-byte nonce. The nonce is prepended to the ciphertext so
// that Decrypt can locate it: blob = nonce ‖ ciphertext. The blob is returned
// Base64 (standard encoding) so it can be stored as text.
func (c *vaultCipher) Encrypt(plaintext []byte) (string, error) {
	key, err := c.deriveKey()
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("%w: create cipher: %w", ErrCipherFailure, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("%w: create gcm: %w", ErrCipherFailure, err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: generate nonce: %w", ErrCipherFailure, err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)
	blob := append(nonce, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [Cipher]. It Base64-decodes the blob, splits out the
// nonce, and opens the ciphertext with AES-256-GCM. Any failure (bad
// encoding, short blob, authentication-tag mismatch) is reported as a
// wrapped [ErrCipherFailure]; altered plaintext is never returned.
func (c *vaultCipher) Decrypt(blob string) ([]byte, error) {
	key, err := c.deriveKey()
	if err != nil {
		return nil, err
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: decode base64: %w", ErrCipherFailure, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: create cipher: %w", ErrCipherFailure, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: create gcm: %w", ErrCipherFailure, err)
	}

	nonceSize := gcm.NonceSize()
	if len(raw) < nonceSize {
		return nil, fmt.Errorf("%w: ciphertext too short", ErrCipherFailure)
	}

	// Split the blob into nonce and actual ciphertext.
	nonce, ciphertext := raw[:nonceSize], raw[nonceSize:]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication failed: %w", ErrCipherFailure, err)
	}

	return plaintext, nil
}
