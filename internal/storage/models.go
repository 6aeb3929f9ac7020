package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Exchange is one processed conversation turn, kept for auditing.
// It is observational only: trimming or clearing the exchange log never
// affects live conversation history.
type Exchange struct {
	ID        string
	CreatedAt time.Time
	Question  string
	Answer    string
	Status    string // "ok", "no_results", "search_failed", "generation_failed"
	Artworks  string // JSON array of retrieved artwork titles, stored as text
}
