// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/health-keeper/internal/crypto"
	"github.com/MKhiriev/health-keeper/internal/logger"
	"github.com/MKhiriev/health-keeper/internal/utils"
	"github.com/MKhiriev/health-keeper/models"
)

// authService gates store access on an optional PIN. The PIN hash lives
// inside the user's document security block, so it shares the document's
// at-rest protection.
type authService struct {
	records  RecordService
	sessions SessionService
	pins     crypto.PINHasher
	logger   *logger.Logger
}

// NewAuthService constructs an [AuthService].
func NewAuthService(records RecordService, sessions SessionService, pins crypto.PINHasher, log *logger.Logger) AuthService {
	log.Debug().Msg("creating auth service")
	return &authService{
		records:  records,
		sessions: sessions,
		pins:     pins,
		logger:   log,
	}
}

// SetPIN implements [AuthService].
func (s *authService) SetPIN(ctx context.Context, userID, pin string, encrypted bool) error {
	log := logger.FromContext(ctx)
	canonical := utils.CanonicalUserID(userID)
	if canonical == "" {
		return fmt.Errorf("%w: empty user identifier", ErrInvalidDataProvided)
	}

	if !s.pins.IsValidFormat(pin) {
		return crypto.ErrInvalidPINFormat
	}

	hash, err := s.pins.Hash(pin)
	if err != nil {
		log.Err(err).Str("user_id", canonical).Msg("error hashing pin")
		return fmt.Errorf("error hashing pin: %w", err)
	}

	return s.records.Update(ctx, canonical, encrypted, func(doc *models.HealthDocument) error {
		if doc.Metadata.LoadError != "" {
			return fmt.Errorf("%w: store unavailable", ErrInvalidDataProvided)
		}
		doc.Security.PINHash = hash
		doc.Security.PINProtected = true
		return nil
	})
}

// Login implements [AuthService].
func (s *authService) Login(ctx context.Context, userID, pin string, encrypted bool) (string, error) {
	log := logger.FromContext(ctx)
	canonical := utils.CanonicalUserID(userID)
	if canonical == "" {
		return "", fmt.Errorf("%w: empty user identifier", ErrInvalidDataProvided)
	}

	doc := s.records.Load(ctx, canonical, encrypted)
	if doc.Security.PINProtected {
		if !s.pins.Verify(pin, doc.Security.PINHash) {
			log.Warn().Str("user_id", canonical).Msg("wrong pin on login")
			return "", ErrWrongPIN
		}
	}

	token, err := s.sessions.CreateSession(canonical)
	if err != nil {
		log.Err(err).Str("user_id", canonical).Msg("error creating session")
		return "", err
	}

	return token, nil
}

// IsProtected implements [AuthService].
func (s *authService) IsProtected(ctx context.Context, userID string, encrypted bool) bool {
	return s.records.Load(ctx, userID, encrypted).Security.PINProtected
}
