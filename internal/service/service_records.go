// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/health-keeper/internal/crypto"
	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/store"
	"github.com/MKhiriev/health-keeper/internal/utils"
	"github.com/MKhiriev/health-keeper/models"
)

// recordService is the concrete implementation of [RecordService].
//
// All operations for one user are serialized through a per-user mutex, so
// concurrent add/save calls for the same identifier cannot race on
// load-modify-save. Operations across different users run in parallel.
type recordService struct {
	documents store.DocumentStore
	cipher    crypto.Cipher
	ids       *utils.UUIDGenerator
	logger    *logger.Logger

	// now is injectable for tests of date-window filtering.
	now func() time.Time

	// userLocks serializes mutating operations per canonical user id.
	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewRecordService constructs a [RecordService] over the given document
// store and cipher.
func NewRecordService(documents store.DocumentStore, cipher crypto.Cipher, log *logger.Logger) RecordService {
	log.Debug().Msg("creating record service")
	return &recordService{
		documents: documents,
		cipher:    cipher,
		ids:       utils.NewUUIDGenerator(),
		logger:    log,
		now:       time.Now,
		userLocks: make(map[string]*sync.Mutex),
	}
}

// lockUser returns the mutex guarding userID, creating it on first use.
func (s *recordService) lockUser(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// Load implements [RecordService]. Any read, decrypt, or parse failure is
// absorbed: the caller receives an empty document tagged with a load-error
// marker and must treat it as "no history available".
func (s *recordService) Load(ctx context.Context, userID string, encrypted bool) *models.HealthDocument {
	log := logger.FromContext(ctx)
	canonical := utils.CanonicalUserID(userID)

	if canonical == "" {
		log.Error().Str("raw_id", userID).Msg("identifier is empty after canonicalization")
		doc := models.NewHealthDocument(canonical)
		doc.Metadata.LoadError = "invalid user identifier"
		return doc
	}

	payload, err := s.documents.Read(ctx, canonical)
	if err != nil {
		if errors.Is(err, store.ErrDocumentNotFound) {
			return models.NewHealthDocument(canonical)
		}
		log.Err(err).Str("user_id", canonical).Msg("error reading document, degrading to empty history")
		doc := models.NewHealthDocument(canonical)
		doc.Metadata.LoadError = err.Error()
		return doc
	}

	plaintext := payload
	if encrypted {
		plaintext, err = s.cipher.Decrypt(string(payload))
		if err != nil {
			log.Err(err).Str("user_id", canonical).Msg("error decrypting document, degrading to empty history")
			doc := models.NewHealthDocument(canonical)
			doc.Metadata.LoadError = err.Error()
			return doc
		}
	}

	var doc models.HealthDocument
	if err := json.Unmarshal(plaintext, &doc); err != nil {
		log.Err(err).Str("user_id", canonical).Msg("error parsing document, degrading to empty history")
		fresh := models.NewHealthDocument(canonical)
		fresh.Metadata.LoadError = err.Error()
		return fresh
	}

	if doc.Records == nil {
		doc.Records = []models.Record{}
	}
	doc.UserID = canonical

	return &doc
}

// Save implements [RecordService]. Returns false on any marshalling,
// encryption, or write error; record loss must never crash message handling.
func (s *recordService) Save(ctx context.Context, userID string, doc *models.HealthDocument, encrypted bool) bool {
	log := logger.FromContext(ctx)
	canonical := utils.CanonicalUserID(userID)

	if canonical == "" || doc == nil {
		log.Error().Str("raw_id", userID).Msg("invalid save arguments")
		return false
	}

	doc.UserID = canonical
	doc.Touch()

	payload, err := json.Marshal(doc)
	if err != nil {
		log.Err(err).Str("user_id", canonical).Msg("error marshalling document")
		return false
	}

	if encrypted {
		blob, err := s.cipher.Encrypt(payload)
		if err != nil {
			log.Err(err).Str("user_id", canonical).Msg("error encrypting document")
			return false
		}
		payload = []byte(blob)
	}

	if err := s.documents.Write(ctx, canonical, payload); err != nil {
		log.Err(err).Str("user_id", canonical).Msg("error writing document")
		return false
	}

	return true
}

// Update implements [RecordService]. The per-user lock is held across the
// load, fn, and save, so writers going through Update or AddRecord cannot
// lose each other's changes.
func (s *recordService) Update(ctx context.Context, userID string, encrypted bool, fn func(doc *models.HealthDocument) error) error {
	canonical := utils.CanonicalUserID(userID)
	if canonical == "" || fn == nil {
		return ErrInvalidDataProvided
	}

	lock := s.lockUser(canonical)
	lock.Lock()
	defer lock.Unlock()

	doc := s.Load(ctx, canonical, encrypted)
	if err := fn(doc); err != nil {
		return err
	}

	if !s.Save(ctx, canonical, doc, encrypted) {
		return ErrDocumentNotSaved
	}
	return nil
}

// AddRecord implements [RecordService].
func (s *recordService) AddRecord(ctx context.Context, userID string, partial models.Record, encrypted bool) bool {
	canonical := utils.CanonicalUserID(userID)
	if canonical == "" {
		return false
	}

	lock := s.lockUser(canonical)
	lock.Lock()
	defer lock.Unlock()

	now := s.now().UTC()

	record := partial
	if record.ID == "" {
		record.ID = s.ids.Generate()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = now
	}
	if record.Date == "" {
		record.Date = now.Format(models.DateLayout)
	}
	if record.Category == "" {
		record.Category = models.CategoryGeneric
	}

	doc := s.Load(ctx, canonical, encrypted)
	doc.Append(record)

	return s.Save(ctx, canonical, doc, encrypted)
}

// GetByDate implements [RecordService]: exact string match on Date.
func (s *recordService) GetByDate(ctx context.Context, userID, date string, encrypted bool) []models.Record {
	doc := s.Load(ctx, userID, encrypted)

	matched := make([]models.Record, 0)
	for _, record := range doc.Records {
		if record.Date == date {
			matched = append(matched, record)
		}
	}

	return matched
}

// GetRecent implements [RecordService]. The lower bound is inclusive and
// compared lexicographically, which matches chronological order because the
// dates are zero-padded "YYYY-MM-DD" strings.
func (s *recordService) GetRecent(ctx context.Context, userID string, days int, encrypted bool) []models.Record {
	doc := s.Load(ctx, userID, encrypted)

	lowerBound := s.now().UTC().AddDate(0, 0, -days).Format(models.DateLayout)

	matched := make([]models.Record, 0)
	for _, record := range doc.Records {
		if record.Date >= lowerBound {
			matched = append(matched, record)
		}
	}

	return matched
}

// GetAll implements [RecordService].
func (s *recordService) GetAll(ctx context.Context, userID string, encrypted bool) []models.Record {
	return s.Load(ctx, userID, encrypted).Records
}

// DeleteAll implements [RecordService]. Returns false if no document
// existed or the removal failed.
func (s *recordService) DeleteAll(ctx context.Context, userID string) bool {
	log := logger.FromContext(ctx)
	canonical := utils.CanonicalUserID(userID)
	if canonical == "" {
		return false
	}

	lock := s.lockUser(canonical)
	lock.Lock()
	defer lock.Unlock()

	if err := s.documents.Delete(ctx, canonical); err != nil {
		if !errors.Is(err, store.ErrDocumentNotFound) {
			log.Err(err).Str("user_id", canonical).Msg("error deleting document")
		}
		return false
	}

	return true
}
