// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"sort"
	"time"
)

// HealthDocument is the per-user collection of health-log records.
// One document maps to exactly one persisted payload (plaintext JSON or an
// encrypted blob) keyed by the canonical user identifier.
type HealthDocument struct {
	// UserID is the canonical identifier: transport suffix and all
	// non-digit characters stripped from the raw identifier.
	UserID string `json:"userId"`

	// Records is the ordered record collection. Kept sorted descending by
	// Timestamp after every add; callers must not rely on insertion order.
	Records []Record `json:"records"`

	// Metadata carries document bookkeeping fields.
	Metadata DocumentMetadata `json:"metadata"`

	// Security holds the optional PIN protection state for this user.
	Security SecuritySettings `json:"security,omitempty"`
}

// DocumentMetadata is the bookkeeping block of a HealthDocument.
// TotalRecords must equal len(Records) after every successful save.
type DocumentMetadata struct {
	CreatedAt    time.Time `json:"createdAt"`
	LastUpdate   time.Time `json:"lastUpdate"`
	TotalRecords int       `json:"totalRecords"`

	// LoadError marks a document that was substituted for an unreadable or
	// undecryptable payload. Callers treat such a document as "no history
	// available". Never persisted.
	LoadError string `json:"-"`
}

// SecuritySettings describes the PIN protection of a user's store.
// Only the bcrypt hash of the PIN is ever kept; the PIN itself is not
// persisted anywhere.
type SecuritySettings struct {
	PINHash      string `json:"pinHash,omitempty"`
	PINProtected bool   `json:"pinProtected,omitempty"`
}

// NewHealthDocument returns an empty document with fresh metadata for userID.
func NewHealthDocument(userID string) *HealthDocument {
	now := time.Now().UTC()
	return &HealthDocument{
		UserID:  userID,
		Records: []Record{},
		Metadata: DocumentMetadata{
			CreatedAt:    now,
			LastUpdate:   now,
			TotalRecords: 0,
		},
	}
}

// Append adds a record and re-sorts the collection descending by Timestamp,
// most recent first.
func (d *HealthDocument) Append(record Record) {
	d.Records = append(d.Records, record)
	sort.SliceStable(d.Records, func(i, j int) bool {
		return d.Records[i].Timestamp.After(d.Records[j].Timestamp)
	})
}

// Touch recomputes the bookkeeping fields before a save.
func (d *HealthDocument) Touch() {
	d.Metadata.LastUpdate = time.Now().UTC()
	d.Metadata.TotalRecords = len(d.Records)
}
