// Package store provides the leaderboard storage interface and its
// implementations: in-memory (local dev, tests) and PostgreSQL.
package store

import (
	"context"
	"fmt"

	"github.com/roastboard/roastboard/pkg/models"
)

// DefaultLeaderboardLimit is the reference page size for leaderboard reads.
const DefaultLeaderboardLimit = 20

// Store persists roast outcomes. Entries are append-only: the pipeline
// only ever inserts and reads, never updates or deletes.
type Store interface {
	// CreateEntry inserts one leaderboard entry.
	CreateEntry(ctx context.Context, entry *models.LeaderboardEntry) error

	// TopEntries returns the most recent entries, newest first.
	TopEntries(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)

	// Ping checks if the backing storage is reachable.
	Ping(ctx context.Context) error

	// Close releases all resources held by the store.
	Close() error
}

// ErrInvalidEntry reports an entry that cannot be stored.
type ErrInvalidEntry struct {
	Reason string
}

func (e *ErrInvalidEntry) Error() string {
	return fmt.Sprintf("invalid leaderboard entry: %s", e.Reason)
}
