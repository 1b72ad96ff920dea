// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/MKhiriev/health-keeper/internal/adapter"
	"github.com/MKhiriev/health-keeper/internal/config"
	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/service"
	"github.com/MKhiriev/health-keeper/models"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock RecordService
// ─────────────────────────────────────────────

// mockRecordService implements service.RecordService for unit tests.
// Each method field can be overridden per test case.
type mockRecordService struct {
	loadFn      func(ctx context.Context, userID string, encrypted bool) *models.HealthDocument
	saveFn      func(ctx context.Context, userID string, doc *models.HealthDocument, encrypted bool) bool
	addRecordFn func(ctx context.Context, userID string, partial models.Record, encrypted bool) bool
	getByDateFn func(ctx context.Context, userID, date string, encrypted bool) []models.Record
	getRecentFn func(ctx context.Context, userID string, days int, encrypted bool) []models.Record
	getAllFn    func(ctx context.Context, userID string, encrypted bool) []models.Record
	deleteAllFn func(ctx context.Context, userID string) bool
	exportFn    func(ctx context.Context, userID string, encrypted bool) string
	updateFn    func(ctx context.Context, userID string, encrypted bool, fn func(doc *models.HealthDocument) error) error
}

func (m *mockRecordService) Load(ctx context.Context, userID string, encrypted bool) *models.HealthDocument {
	if m.loadFn != nil {
		return m.loadFn(ctx, userID, encrypted)
	}
	return models.NewHealthDocument(userID)
}

func (m *mockRecordService) Save(ctx context.Context, userID string, doc *models.HealthDocument, encrypted bool) bool {
	if m.saveFn != nil {
		return m.saveFn(ctx, userID, doc, encrypted)
	}
	return true
}

func (m *mockRecordService) Update(ctx context.Context, userID string, encrypted bool, fn func(doc *models.HealthDocument) error) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, encrypted, fn)
	}
	return fn(models.NewHealthDocument(userID))
}

func (m *mockRecordService) AddRecord(ctx context.Context, userID string, partial models.Record, encrypted bool) bool {
	if m.addRecordFn != nil {
		return m.addRecordFn(ctx, userID, partial, encrypted)
	}
	return true
}

func (m *mockRecordService) GetByDate(ctx context.Context, userID, date string, encrypted bool) []models.Record {
	if m.getByDateFn != nil {
		return m.getByDateFn(ctx, userID, date, encrypted)
	}
	return nil
}

func (m *mockRecordService) GetRecent(ctx context.Context, userID string, days int, encrypted bool) []models.Record {
	if m.getRecentFn != nil {
		return m.getRecentFn(ctx, userID, days, encrypted)
	}
	return nil
}

func (m *mockRecordService) GetAll(ctx context.Context, userID string, encrypted bool) []models.Record {
	if m.getAllFn != nil {
		return m.getAllFn(ctx, userID, encrypted)
	}
	return nil
}

func (m *mockRecordService) DeleteAll(ctx context.Context, userID string) bool {
	if m.deleteAllFn != nil {
		return m.deleteAllFn(ctx, userID)
	}
	return true
}

func (m *mockRecordService) Export(ctx context.Context, userID string, encrypted bool) string {
	if m.exportFn != nil {
		return m.exportFn(ctx, userID, encrypted)
	}
	return ""
}

// ─────────────────────────────────────────────
// Mock SessionService
// ─────────────────────────────────────────────

type mockSessionService struct {
	createSessionFn   func(userID string) (string, error)
	validateSessionFn func(userID, token string) bool
	updateActivityFn  func(userID string)
	destroySessionFn  func(userID string)
	cleanupFn         func() int
}

func (m *mockSessionService) CreateSession(userID string) (string, error) {
	if m.createSessionFn != nil {
		return m.createSessionFn(userID)
	}
	return "session-token", nil
}

func (m *mockSessionService) ValidateSession(userID, token string) bool {
	if m.validateSessionFn != nil {
		return m.validateSessionFn(userID, token)
	}
	return true
}

func (m *mockSessionService) UpdateActivity(userID string) {
	if m.updateActivityFn != nil {
		m.updateActivityFn(userID)
	}
}

func (m *mockSessionService) DestroySession(userID string) {
	if m.destroySessionFn != nil {
		m.destroySessionFn(userID)
	}
}

func (m *mockSessionService) CleanupExpiredSessions() int {
	if m.cleanupFn != nil {
		return m.cleanupFn()
	}
	return 0
}

// ─────────────────────────────────────────────
// Mock AuthService
// ─────────────────────────────────────────────

type mockAuthService struct {
	setPINFn      func(ctx context.Context, userID, pin string, encrypted bool) error
	loginFn       func(ctx context.Context, userID, pin string, encrypted bool) (string, error)
	isProtectedFn func(ctx context.Context, userID string, encrypted bool) bool
}

func (m *mockAuthService) SetPIN(ctx context.Context, userID, pin string, encrypted bool) error {
	if m.setPINFn != nil {
		return m.setPINFn(ctx, userID, pin, encrypted)
	}
	return nil
}

func (m *mockAuthService) Login(ctx context.Context, userID, pin string, encrypted bool) (string, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, userID, pin, encrypted)
	}
	return "session-token", nil
}

func (m *mockAuthService) IsProtected(ctx context.Context, userID string, encrypted bool) bool {
	if m.isProtectedFn != nil {
		return m.isProtectedFn(ctx, userID, encrypted)
	}
	return false
}

// ─────────────────────────────────────────────
// Mock Classifier
// ─────────────────────────────────────────────

type mockClassifier struct {
	classifyFn func(ctx context.Context, text string) (models.Classification, error)
}

func (m *mockClassifier) Classify(ctx context.Context, text string) (models.Classification, error) {
	if m.classifyFn != nil {
		return m.classifyFn(ctx, text)
	}
	return models.Classification{Category: models.CategoryGeneric, Content: text}, nil
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func testAppConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			MasterSecret:  "test-secret",
			TokenSignKey:  "test-sign-key",
			TokenIssuer:   "health-keeper-test",
			TokenDuration: time.Hour,
			Version:       "test",
		},
	}
}

// newTestHandler builds a Handler over the given mocks, defaulting any nil
// argument to a permissive mock.
func newTestHandler(t *testing.T, records *mockRecordService, sessions *mockSessionService, auth *mockAuthService, classifier adapter.Classifier) *Handler {
	t.Helper()

	if records == nil {
		records = &mockRecordService{}
	}
	if sessions == nil {
		sessions = &mockSessionService{}
	}
	if auth == nil {
		auth = &mockAuthService{}
	}
	if classifier == nil {
		classifier = &mockClassifier{}
	}

	svcs := &service.Services{
		RecordService:  records,
		SessionService: sessions,
		AuthService:    auth,
	}
	return NewHandler(svcs, classifier, testAppConfig(), logger.Nop())
}

// jsonBody serialises v to a JSON request body string.
func jsonBody(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestNewHandler(t *testing.T) {
	h := newTestHandler(t, nil, nil, nil, nil)
	require.NotNil(t, h)
	require.True(t, h.encrypted)
	require.NotNil(t, h.Init())
}
