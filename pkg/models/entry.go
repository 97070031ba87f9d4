package models

import (
	"time"

	"github.com/google/uuid"
)

// HydrationEntry is one recorded intake event handed to the persistence
// sink. The engine only produces these as data; storing and rendering them
// is the caller's concern.
type HydrationEntry struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	AmountML   int       `json:"amountMl"`
	RecordedAt time.Time `json:"recordedAt"`
}

// NewHydrationEntry builds an entry with a fresh ID and timestamp.
func NewHydrationEntry(userID string, amountML int, now time.Time) HydrationEntry {
	return HydrationEntry{
		ID:         uuid.NewString(),
		UserID:     userID,
		AmountML:   amountML,
		RecordedAt: now,
	}
}
