// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCipher() Cipher {
	return NewVaultCipher("unit-test-master-secret", "unit-test-salt")
}

func TestVaultCipher_RoundTrip(t *testing.T) {
	c := newTestCipher()

	plaintexts := [][]byte{
		[]byte("hello"),
		[]byte(""),
		[]byte(`{"records":[{"id":"1","content":"cramps"}]}`),
		make([]byte, 4096),
	}

	for _, plaintext := range plaintexts {
		blob, err := c.Encrypt(plaintext)
		require.NoError(t, err)

		decrypted, err := c.Decrypt(blob)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestVaultCipher_NonceFreshness(t *testing.T) {
	c := newTestCipher()
	plaintext := []byte("same input twice")

	first, err := c.Encrypt(plaintext)
	require.NoError(t, err)
	second, err := c.Encrypt(plaintext)
	require.NoError(t, err)

	// Fresh nonce per call: identical plaintext must not produce
	// identical blobs.
	assert.NotEqual(t, first, second)

	for _, blob := range []string{first, second} {
		decrypted, err := c.Decrypt(blob)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestVaultCipher_TamperedBlobFails(t *testing.T) {
	c := newTestCipher()

	blob, err := c.Encrypt([]byte("integrity matters"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)

	// Flip one bit in every byte position in turn: nonce, ciphertext and
	// tag corruption must all fail authentication deterministically.
	for i := range raw {
		tampered := make([]byte, len(raw))
		copy(tampered, raw)
		tampered[i] ^= 0x01

		_, err := c.Decrypt(base64.StdEncoding.EncodeToString(tampered))
		require.Error(t, err, "bit flip at byte %d must not decrypt", i)
		assert.True(t, errors.Is(err, ErrCipherFailure))
	}
}

func TestVaultCipher_MalformedBlob(t *testing.T) {
	c := newTestCipher()

	tests := []struct {
		name string
		blob string
	}{
		{name: "not base64", blob: "%%%not-base64%%%"},
		{name: "too short", blob: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "empty", blob: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Decrypt(tt.blob)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrCipherFailure))
		})
	}
}

func TestVaultCipher_MissingSecret(t *testing.T) {
	c := NewVaultCipher("", "salt")

	_, err := c.Encrypt([]byte("data"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCipherFailure))

	_, err = c.Decrypt("whatever")
	assert.True(t, errors.Is(err, ErrCipherFailure))
}

func TestVaultCipher_DifferentSecretsCannotDecrypt(t *testing.T) {
	first := NewVaultCipher("secret-one", "salt")
	second := NewVaultCipher("secret-two", "salt")

	blob, err := first.Encrypt([]byte("private"))
	require.NoError(t, err)

	_, err = second.Decrypt(blob)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCipherFailure))
}
