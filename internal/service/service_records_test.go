// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/store"
	"github.com/MKhiriev/health-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.DocumentStore
// ─────────────────────────────────────────────

type mockDocumentStore struct {
	mu   sync.Mutex
	docs map[string][]byte

	readFn   func(ctx context.Context, userID string) ([]byte, error)
	writeFn  func(ctx context.Context, userID string, payload []byte) error
	deleteFn func(ctx context.Context, userID string) error
}

func newMockDocumentStore() *mockDocumentStore {
	return &mockDocumentStore{docs: make(map[string][]byte)}
}

func (m *mockDocumentStore) Read(ctx context.Context, userID string) ([]byte, error) {
	if m.readFn != nil {
		return m.readFn(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.docs[userID]
	if !ok {
		return nil, store.ErrDocumentNotFound
	}
	return payload, nil
}

func (m *mockDocumentStore) Write(ctx context.Context, userID string, payload []byte) error {
	if m.writeFn != nil {
		return m.writeFn(ctx, userID, payload)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[userID] = payload
	return nil
}

func (m *mockDocumentStore) Delete(ctx context.Context, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[userID]; !ok {
		return store.ErrDocumentNotFound
	}
	delete(m.docs, userID)
	return nil
}

// ─────────────────────────────────────────────
// Mock: crypto.Cipher
// ─────────────────────────────────────────────

// passthroughCipher marks payloads instead of encrypting, so tests can
// assert that the cipher was applied.
type passthroughCipher struct {
	encryptErr error
	decryptErr error
}

func (c *passthroughCipher) Encrypt(plaintext []byte) (string, error) {
	if c.encryptErr != nil {
		return "", c.encryptErr
	}
	return "enc:" + string(plaintext), nil
}

func (c *passthroughCipher) Decrypt(blob string) ([]byte, error) {
	if c.decryptErr != nil {
		return nil, c.decryptErr
	}
	if len(blob) < 4 || blob[:4] != "enc:" {
		return nil, errors.New("not an encrypted payload")
	}
	return []byte(blob[4:]), nil
}

func newTestRecordService(docs store.DocumentStore, cipher *passthroughCipher) *recordService {
	svc := NewRecordService(docs, cipher, logger.Nop()).(*recordService)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestRecordService_AddAndLoad(t *testing.T) {
	docs := newMockDocumentStore()
	svc := newTestRecordService(docs, &passthroughCipher{})
	ctx := context.Background()

	ok := svc.AddRecord(ctx, "79161234567@transport", models.Record{Content: "headache"}, false)
	require.True(t, ok)

	doc := svc.Load(ctx, "79161234567", false)
	require.Len(t, doc.Records, 1)
	assert.Equal(t, "headache", doc.Records[0].Content)
	assert.Equal(t, models.CategoryGeneric, doc.Records[0].Category)
	assert.Equal(t, "2026-03-15", doc.Records[0].Date)
	assert.NotEmpty(t, doc.Records[0].ID)
	assert.Equal(t, 1, doc.Metadata.TotalRecords)
}

func TestRecordService_AddRecord_KeepsProvidedFields(t *testing.T) {
	docs := newMockDocumentStore()
	svc := newTestRecordService(docs, &passthroughCipher{})
	ctx := context.Background()

	ts := time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)
	ok := svc.AddRecord(ctx, "100", models.Record{
		ID:        "fixed-id",
		Timestamp: ts,
		Date:      "2026-03-10",
		Category:  models.CategorySymptom,
		Content:   "cramps",
	}, false)
	require.True(t, ok)

	records := svc.GetAll(ctx, "100", false)
	require.Len(t, records, 1)
	assert.Equal(t, "fixed-id", records[0].ID)
	assert.Equal(t, ts, records[0].Timestamp)
	assert.Equal(t, models.CategorySymptom, records[0].Category)
}

func TestRecordService_SortDescendingByTimestamp(t *testing.T) {
	docs := newMockDocumentStore()
	svc := newTestRecordService(docs, &passthroughCipher{})
	ctx := context.Background()

	older := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2026, time.March, 14, 8, 0, 0, 0, time.UTC)

	require.True(t, svc.AddRecord(ctx, "100", models.Record{Timestamp: older, Content: "first"}, false))
	require.True(t, svc.AddRecord(ctx, "100", models.Record{Timestamp: newer, Content: "second"}, false))

	records := svc.GetAll(ctx, "100", false)
	require.Len(t, records, 2)
	assert.Equal(t, "second", records[0].Content)
	assert.Equal(t, "first", records[1].Content)
}

func TestRecordService_EncryptedRoundTrip(t *testing.T) {
	docs := newMockDocumentStore()
	svc := newTestRecordService(docs, &passthroughCipher{})
	ctx := context.Background()

	require.True(t, svc.AddRecord(ctx, "200", models.Record{Content: "secret"}, true))

	// The persisted payload must not be raw JSON.
	raw, err := docs.Read(ctx, "200")
	require.NoError(t, err)
	assert.False(t, json.Valid(raw), "stored payload should be opaque")

	records := svc.GetAll(ctx, "200", true)
	require.Len(t, records, 1)
	assert.Equal(t, "secret", records[0].Content)
}

func TestRecordService_Load_DegradesOnCorruptPayload(t *testing.T) {
	docs := newMockDocumentStore()
	svc := newTestRecordService(docs, &passthroughCipher{})
	ctx := context.Background()

	require.NoError(t, docs.Write(ctx, "300", []byte("{not json")))

	doc := svc.Load(ctx, "300", false)
	assert.Empty(t, doc.Records)
	assert.NotEmpty(t, doc.Metadata.LoadError)
}

func TestRecordService_Load_DegradesOnDecryptFailure(t *testing.T) {
	docs := newMockDocumentStore()
	svc := newTestRecordService(docs, &passthroughCipher{decryptErr: errors.New("tampered")})
	ctx := context.Background()

	require.NoError(t, docs.Write(ctx, "300", []byte("enc:whatever")))

	doc := svc.Load(ctx, "300", true)
	assert.Empty(t, doc.Records)
	assert.NotEmpty(t, doc.Metadata.LoadError)
}

func TestRecordService_Load_MissingDocumentIsEmptyNotError(t *testing.T) {
	svc := newTestRecordService(newMockDocumentStore(), &passthroughCipher{})

	doc := svc.Load(context.Background(), "404", false)
	assert.Empty(t, doc.Records)
	assert.Empty(t, doc.Metadata.LoadError)
}

func TestRecordService_Save_FalseOnWriteError(t *testing.T) {
	docs := newMockDocumentStore()
	docs.writeFn = func(ctx context.Context, userID string, payload []byte) error {
		return errors.New("disk full")
	}
	svc := newTestRecordService(docs, &passthroughCipher{})

	ok := svc.Save(context.Background(), "100", models.NewHealthDocument("100"), false)
	assert.False(t, ok)
}

func TestRecordService_Save_FalseOnEncryptError(t *testing.T) {
	svc := newTestRecordService(newMockDocumentStore(), &passthroughCipher{encryptErr: errors.New("no key")})

	ok := svc.Save(context.Background(), "100", models.NewHealthDocument("100"), true)
	assert.False(t, ok)
}

func TestRecordService_GetByDate(t *testing.T) {
	docs := newMockDocumentStore()
	svc := newTestRecordService(docs, &passthroughCipher{})
	ctx := context.Background()

	require.True(t, svc.AddRecord(ctx, "100", models.Record{Date: "2026-03-10", Content: "a"}, false))
	require.True(t, svc.AddRecord(ctx, "100", models.Record{Date: "2026-03-11", Content: "b"}, false))
	require.True(t, svc.AddRecord(ctx, "100", models.Record{Date: "2026-03-10", Content: "c"}, false))

	matched := svc.GetByDate(ctx, "100", "2026-03-10", false)
	assert.Len(t, matched, 2)

	assert.Empty(t, svc.GetByDate(ctx, "100", "2025-01-01", false))
}

func TestRecordService_GetRecent(t *testing.T) {
	docs := newMockDocumentStore()
	svc := newTestRecordService(docs, &passthroughCipher{})
	ctx := context.Background()

	// now is fixed at 2026-03-15; a 7 day window reaches back to 03-08.
	require.True(t, svc.AddRecord(ctx, "100", models.Record{Date: "2026-03-08", Content: "edge"}, false))
	require.True(t, svc.AddRecord(ctx, "100", models.Record{Date: "2026-03-14", Content: "in"}, false))
	require.True(t, svc.AddRecord(ctx, "100", models.Record{Date: "2026-03-01", Content: "out"}, false))

	matched := svc.GetRecent(ctx, "100", 7, false)
	require.Len(t, matched, 2)
	for _, record := range matched {
		assert.NotEqual(t, "out", record.Content)
	}
}

func TestRecordService_DeleteAll(t *testing.T) {
	docs := newMockDocumentStore()
	svc := newTestRecordService(docs, &passthroughCipher{})
	ctx := context.Background()

	require.True(t, svc.AddRecord(ctx, "100", models.Record{Content: "x"}, false))
	assert.True(t, svc.DeleteAll(ctx, "100"))
	assert.Empty(t, svc.GetAll(ctx, "100", false))

	// Second wipe has nothing to remove.
	assert.False(t, svc.DeleteAll(ctx, "100"))
}

func TestRecordService_ConcurrentAddsSameUser(t *testing.T) {
	docs := newMockDocumentStore()
	svc := newTestRecordService(docs, &passthroughCipher{})
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, svc.AddRecord(ctx, "100", models.Record{Content: "tick"}, false))
		}()
	}
	wg.Wait()

	assert.Len(t, svc.GetAll(ctx, "100", false), writers)
}

func TestRecordService_Update(t *testing.T) {
	docs := newMockDocumentStore()
	svc := newTestRecordService(docs, &passthroughCipher{})
	ctx := context.Background()

	err := svc.Update(ctx, "100", false, func(doc *models.HealthDocument) error {
		doc.Security.PINProtected = true
		return nil
	})
	require.NoError(t, err)

	assert.True(t, svc.Load(ctx, "100", false).Security.PINProtected)
}

func TestRecordService_Update_FnErrorAbortsSave(t *testing.T) {
	docs := newMockDocumentStore()
	svc := newTestRecordService(docs, &passthroughCipher{})

	rejected := errors.New("rejected")
	err := svc.Update(context.Background(), "100", false, func(doc *models.HealthDocument) error {
		return rejected
	})
	assert.ErrorIs(t, err, rejected)
	assert.Empty(t, docs.docs)
}

func TestRecordService_Update_WriteError(t *testing.T) {
	docs := newMockDocumentStore()
	docs.writeFn = func(ctx context.Context, userID string, payload []byte) error {
		return errors.New("disk full")
	}
	svc := newTestRecordService(docs, &passthroughCipher{})

	err := svc.Update(context.Background(), "100", false, func(doc *models.HealthDocument) error {
		return nil
	})
	assert.ErrorIs(t, err, ErrDocumentNotSaved)
}
