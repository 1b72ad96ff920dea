// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"sync"
	"time"

	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/service"
)

// SessionSweeper periodically removes idled-out sessions so the in-memory
// table cannot grow without bound. Expiry is also enforced lazily on
// validation; the sweeper only reclaims memory for sessions nobody touches
// again.
type SessionSweeper struct {
	sessions service.SessionService
	interval time.Duration
	logger   *logger.Logger

	stopOnce sync.Once
	done     chan struct{}
}

// NewSessionSweeper builds a sweeper running every interval.
func NewSessionSweeper(sessions service.SessionService, interval time.Duration, log *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		interval: interval,
		logger:   log,
		done:     make(chan struct{}),
	}
}

// Run starts the sweep loop in a background goroutine and returns.
func (s *SessionSweeper) Run() {
	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper started")

	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := s.sessions.CleanupExpiredSessions(); removed > 0 {
					s.logger.Info().Int("removed", removed).Msg("expired sessions removed")
				}
			case <-s.done:
				s.logger.Info().Msg("session sweeper stopped")
				return
			}
		}
	}()
}

// Stop terminates the sweep loop. Safe to call more than once.
func (s *SessionSweeper) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}
