package utils

import "github.com/google/uuid"

// NewUUID returns a time-ordered UUIDv7, falling back to a random UUIDv4 if
// the system entropy source misbehaves. Time-ordered ids keep index pages
// warm on insert-heavy tables.
func NewUUID() uuid.UUID {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return v7
}
