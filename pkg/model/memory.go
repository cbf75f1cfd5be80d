package model

import (
	"time"
)

type MemoryID string

// MemoryRecord is a single stored content record owned by the remote service.
// Content is the payload as held at rest (ciphertext for vaulted writes); the
// client only round-trips it and never interprets it.
type MemoryRecord struct {
	ID        MemoryID
	Content   string
	Metadata  map[string]string
	Tags      []string
	CreatedAt time.Time
}

// SearchMatch pairs a memory with its similarity score for one query.
// Score is in [0, 1]; results arrive ordered by descending score.
type SearchMatch struct {
	Memory MemoryRecord
	Score  float64
}
