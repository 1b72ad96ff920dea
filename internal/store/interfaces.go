package store

//go:generate mockgen -source=interfaces.go -destination=../mock/document_store_mock.go -package=mock

import "context"

// DocumentStore is the byte-level persistence contract of the record store:
// one opaque payload per canonical user identifier. The payload is either
// plaintext JSON or an encrypted blob; the store does not care which.
//
// A file system, an embedded database, and a relational table are all
// conforming implementations.
type DocumentStore interface {
	// Read returns the persisted payload for userID, or [ErrDocumentNotFound]
	// if no document exists yet.
	Read(ctx context.Context, userID string) ([]byte, error)

	// Write persists payload for userID, replacing any previous document.
	// The write is atomic: a concurrent reader sees either the old or the
	// new payload, never a mix.
	Write(ctx context.Context, userID string, payload []byte) error

	// Delete removes the document of userID. Returns [ErrDocumentNotFound]
	// if there was nothing to delete.
	Delete(ctx context.Context, userID string) error
}
