// Package store — in-memory Store implementation.
// Used when no DATABASE_URL is configured (local dev, tests).
package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/roastboard/roastboard/pkg/models"
)

// MemoryStore implements Store with a mutex-guarded slice. Entries are
// kept newest-first so reads are a straight prefix copy.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []models.LeaderboardEntry
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// CreateEntry inserts one entry, assigning an ID and timestamp when absent.
func (m *MemoryStore) CreateEntry(_ context.Context, entry *models.LeaderboardEntry) error {
	if entry == nil {
		return &ErrInvalidEntry{Reason: "nil entry"}
	}
	if entry.DisplayName == "" {
		return &ErrInvalidEntry{Reason: "empty display name"}
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append([]models.LeaderboardEntry{*entry}, m.entries...)
	return nil
}

// TopEntries returns up to limit entries, newest first.
func (m *MemoryStore) TopEntries(_ context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit > len(m.entries) {
		limit = len(m.entries)
	}
	out := make([]models.LeaderboardEntry, limit)
	copy(out, m.entries[:limit])
	return out, nil
}

// Ping always succeeds for the in-memory store.
func (m *MemoryStore) Ping(_ context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error { return nil }
