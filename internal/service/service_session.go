// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/utils"
	"github.com/MKhiriev/health-keeper/models"
)

// sessionService is an in-memory session table keyed by canonical user id.
// Expiry is sliding: each successful validation refreshes the idle window.
type sessionService struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session

	timeout time.Duration
	logger  *logger.Logger

	// now is injectable for expiry tests.
	now func() time.Time
}

// NewSessionService constructs a [SessionService] with the given idle
// timeout.
func NewSessionService(timeout time.Duration, log *logger.Logger) SessionService {
	log.Debug().Dur("timeout", timeout).Msg("creating session service")
	return &sessionService{
		sessions: make(map[string]*models.Session),
		timeout:  timeout,
		logger:   log,
		now:      time.Now,
	}
}

// CreateSession implements [SessionService].
func (s *sessionService) CreateSession(userID string) (string, error) {
	canonical := utils.CanonicalUserID(userID)
	if canonical == "" {
		return "", fmt.Errorf("%w: empty user identifier", ErrSessionCreationFailed)
	}

	token, err := s.generateToken(canonical)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrSessionCreationFailed, err)
	}

	now := s.now()
	s.mu.Lock()
	s.sessions[canonical] = &models.Session{
		UserID:       canonical,
		Token:        token,
		CreatedAt:    now,
		LastActivity: now,
	}
	s.mu.Unlock()

	return token, nil
}

// ValidateSession implements [SessionService]. An idled-out session is
// destroyed on the spot instead of waiting for the sweeper.
func (s *sessionService) ValidateSession(userID, token string) bool {
	canonical := utils.CanonicalUserID(userID)
	now := s.now()

	// The token compare and idle check stay inside the read-locked section:
	// LastActivity is written by concurrent validations under the write lock.
	s.mu.RLock()
	session, ok := s.sessions[canonical]
	tokenMatches := false
	expired := false
	if ok {
		tokenMatches = subtle.ConstantTimeCompare([]byte(session.Token), []byte(token)) == 1
		expired = session.IdleSince(now) > s.timeout
	}
	s.mu.RUnlock()

	if !ok || !tokenMatches {
		return false
	}
	if expired {
		s.DestroySession(canonical)
		return false
	}

	s.mu.Lock()
	// Re-check under the write lock: the session may have been replaced or
	// destroyed between the read and write sections.
	if current, ok := s.sessions[canonical]; ok && current == session {
		current.LastActivity = now
	}
	s.mu.Unlock()

	return true
}

// UpdateActivity implements [SessionService].
func (s *sessionService) UpdateActivity(userID string) {
	canonical := utils.CanonicalUserID(userID)

	s.mu.Lock()
	if session, ok := s.sessions[canonical]; ok {
		session.LastActivity = s.now()
	}
	s.mu.Unlock()
}

// DestroySession implements [SessionService].
func (s *sessionService) DestroySession(userID string) {
	canonical := utils.CanonicalUserID(userID)

	s.mu.Lock()
	delete(s.sessions, canonical)
	s.mu.Unlock()
}

// CleanupExpiredSessions implements [SessionService].
func (s *sessionService) CleanupExpiredSessions() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for userID, session := range s.sessions {
		if session.IdleSince(now) > s.timeout {
			delete(s.sessions, userID)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("expired sessions swept")
	}

	return removed
}

// generateToken derives an unguessable opaque token from the user id, the
// current time, and 32 bytes of system entropy.
func (s *sessionService) generateToken(userID string) (string, error) {
	entropy := make([]byte, 32)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("error reading entropy: %w", err)
	}

	digest := sha256.New()
	digest.Write([]byte(userID))
	digest.Write([]byte(fmt.Sprintf("%d", s.now().UnixNano())))
	digest.Write(entropy)

	return hex.EncodeToString(digest.Sum(nil)), nil
}
