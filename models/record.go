// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Well-known record categories. The set is closed for presentation purposes:
// unrecognized values are stored verbatim and rendered with the generic label.
const (
	CategoryMenstrualCycle = "menstrual_cycle"
	CategoryContraceptive  = "contraceptive"
	CategorySymptom        = "symptom"
	CategorySexualActivity = "sexual_activity"
	CategoryNote           = "note"

	// CategoryGeneric is the fallback category assigned when the caller
	// supplies none. Unknown stored categories keep their original value;
	// the generic label is applied only when rendering.
	CategoryGeneric = "other"
)

// categoryLabels maps well-known categories to their human-readable
// report labels. Lookup misses fall back to the generic label.
var categoryLabels = map[string]string{
	CategoryMenstrualCycle: "Menstrual cycle",
	CategoryContraceptive:  "Contraceptive",
	CategorySymptom:        "Symptom",
	CategorySexualActivity: "Sexual activity",
	CategoryNote:           "Note",
	CategoryGeneric:        "Other",
}

// CategoryLabel returns the display label for category. Unrecognized
// categories get the generic label; the stored value is never rewritten.
func CategoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return categoryLabels[CategoryGeneric]
}

// Record is a single dated health-log entry. Records are immutable once
// created; later edits are out of scope.
type Record struct {
	// ID is a unique identifier (UUIDv7: time-ordered prefix plus random
	// suffix, collision probability negligible).
	ID string `json:"id"`

	// Timestamp is the creation instant. Collections are kept sorted
	// descending by this field, most recent first.
	Timestamp time.Time `json:"timestamp"`

	// Date is the calendar day the record refers to, "YYYY-MM-DD".
	// Zero-padded so lexicographic and chronological order coincide.
	Date string `json:"date"`

	// Category is one of the well-known categories above, or any
	// caller-supplied value preserved as-is.
	Category string `json:"category"`

	// Content is the free-text body of the record.
	Content string `json:"content"`

	// Extra carries additional caller-supplied fields. Kept as an explicit
	// extension map so the typed fields above stay checkable.
	Extra map[string]any `json:"extra,omitempty"`
}

// DateLayout is the canonical calendar-day format used by Record.Date.
const DateLayout = "2006-01-02"
