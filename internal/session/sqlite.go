package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pokehub/pkg/database"
)

// SQLiteStore keeps slots in the session_slot table. A slot not written for
// TTL is treated as gone and removed on the next Put.
type SQLiteStore struct {
	DB  *sql.DB
	TTL time.Duration
}

// OpenSQLite opens (and migrates) the database described by cfg. ttl <= 0
// means DefaultTTL.
func OpenSQLite(cfg database.Config, ttl time.Duration) (*SQLiteStore, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SQLiteStore{DB: db, TTL: ttl}, nil
}

// cutoff is the oldest updated_at still served. Times are always stored in
// UTC so the driver's text encoding orders the same way the instants do.
func (s *SQLiteStore) cutoff() time.Time {
	return time.Now().UTC().Add(-s.TTL)
}

func (s *SQLiteStore) Get(ctx context.Context, sessionID string) (*Slot, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT raw, updated_at
		FROM session_slot
		WHERE session_id = ? AND updated_at >= ?
	`, sessionID, s.cutoff())

	var (
		raw     string
		updated time.Time
	)
	if err := row.Scan(&raw, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot: %w", err)
	}
	return decodeSlot([]byte(raw), updated)
}

// Put overwrites the session's slot, then drops every expired one.
func (s *SQLiteStore) Put(ctx context.Context, sessionID string, slot Slot) error {
	if slot.UpdatedAt.IsZero() {
		slot.UpdatedAt = time.Now()
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO session_slot (session_id, pokemon_id, pokemon_name, raw, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
		  pokemon_id = excluded.pokemon_id,
		  pokemon_name = excluded.pokemon_name,
		  raw = excluded.raw,
		  updated_at = excluded.updated_at
	`, sessionID, slot.Pokemon.ID, slot.Pokemon.Name, string(slot.Raw), slot.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("put slot: %w", err)
	}

	if _, err := s.Sweep(ctx); err != nil {
		return err
	}
	return nil
}

// Sweep deletes slots older than TTL and reports how many went.
func (s *SQLiteStore) Sweep(ctx context.Context) (int64, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM session_slot WHERE updated_at < ?`, s.cutoff())
	if err != nil {
		return 0, fmt.Errorf("sweep slots: %w", err)
	}
	return res.RowsAffected()
}

// Count returns how many sessions hold a slot.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM session_slot`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count slots: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.DB.Close()
}
