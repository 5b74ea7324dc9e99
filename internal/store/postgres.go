// Package store — PostgreSQL Store implementation backed by pgxpool.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/roastboard/roastboard/pkg/models"
	"github.com/rs/zerolog/log"
)

// PostgresStore implements Store on PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and creates the roasts table if
// it does not exist.
func NewPostgresStore(ctx context.Context, connURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connURL)
	if err != nil {
		return nil, fmt.Errorf("postgres connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres migrate: %w", err)
	}

	log.Info().Msg("postgres store initialized")
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS roasts (
			id           TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			score        DOUBLE PRECISION NOT NULL,
			roast_text   TEXT NOT NULL DEFAULT '',
			verdict      TEXT NOT NULL DEFAULT '',
			analysis     TEXT NOT NULL DEFAULT '',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_roasts_created_at ON roasts (created_at DESC);
	`
	_, err := s.pool.Exec(ctx, ddl)
	return err
}

// CreateEntry inserts one entry, assigning an ID and timestamp when absent.
func (s *PostgresStore) CreateEntry(ctx context.Context, entry *models.LeaderboardEntry) error {
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

	_, err := s.pool.Exec(ctx,
		`INSERT INTO roasts (id, display_name, score, roast_text, verdict, analysis, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.DisplayName, entry.Score, entry.RoastText, entry.Verdict, entry.Analysis, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert roast: %w", err)
	}
	return nil
}

// TopEntries returns up to limit entries ordered by created_at descending.
func (s *PostgresStore) TopEntries(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, display_name, score, roast_text, verdict, analysis, created_at
		 FROM roasts
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query roasts: %w", err)
	}
	defer rows.Close()

	var entries []models.LeaderboardEntry
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.DisplayName, &e.Score, &e.RoastText, &e.Verdict, &e.Analysis, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan roast: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roasts: %w", err)
	}
	return entries, nil
}

// Ping checks database reachability.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
