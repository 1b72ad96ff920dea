// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/MKhiriev/health-keeper/internal/logger"
)

// fileDocumentStore is the file-system implementation of [DocumentStore].
// Documents live under <dataDir>/users, one file per canonical user
// identifier. Writes go through a temp file followed by a rename, so a
// crash mid-write can never leave a half-written document behind.
type fileDocumentStore struct {
	usersDir string
	logger   *logger.Logger
}

// NewFileDocumentStore constructs a [DocumentStore] rooted at dataDir.
// The users subdirectory is created on demand with owner-only permissions.
func NewFileDocumentStore(dataDir string, log *logger.Logger) (DocumentStore, error) {
	usersDir := filepath.Join(dataDir, "users")
	if err := os.MkdirAll(usersDir, 0o700); err != nil {
		log.Err(err).Str("dir", usersDir).Msg("error creating users directory")
		return nil, fmt.Errorf("error creating users directory: %w", err)
	}

	log.Debug().Str("dir", usersDir).Msg("file document store ready")
	return &fileDocumentStore{
		usersDir: usersDir,
		logger:   log,
	}, nil
}

// documentPath maps a canonical user identifier to its on-disk location.
// The identifier must be non-empty and purely numeric; anything else is
// rejected so a crafted identifier can never escape the users directory.
func (s *fileDocumentStore) documentPath(userID string) (string, error) {
	if userID == "" {
		return "", ErrInvalidUserID
	}
	for _, r := range userID {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidUserID, userID)
		}
	}

	return filepath.Join(s.usersDir, userID+".json"), nil
}

// Read implements [DocumentStore].
func (s *fileDocumentStore) Read(ctx context.Context, userID string) ([]byte, error) {
	path, err := s.documentPath(userID)
	if err != nil {
		return nil, err
	}

	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("error reading document: %w", err)
	}

	return payload, nil
}

// Write implements [DocumentStore]. The payload is written to a temp file in
// the same directory and renamed over the destination, which is atomic on
// POSIX file systems.
func (s *fileDocumentStore) Write(ctx context.Context, userID string, payload []byte) error {
	path, err := s.documentPath(userID)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.usersDir, userID+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing document: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error setting document permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error replacing document: %w", err)
	}

	return nil
}

// Delete implements [DocumentStore].
func (s *fileDocumentStore) Delete(ctx context.Context, userID string) error {
	path, err := s.documentPath(userID)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("error deleting document: %w", err)
	}

	return nil
}
