// Package session owns the per-visitor "last searched pokemon" slot.
//
// A visitor is identified by a signed session token (see TokenService). The
// HTTP layer loads the slot for the caller's session and hands the record to
// the derivations explicitly; nothing else reads it.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pokehub/pkg/models"
)

// DefaultTTL is how long an idle session's slot is kept. It matches the
// default session token lifetime: once the token expires the slot is
// unreachable anyway.
const DefaultTTL = 24 * time.Hour

// Slot is the last record a session searched successfully.
type Slot struct {
	Pokemon   models.Pokemon
	Raw       []byte
	UpdatedAt time.Time
}

// Store keeps one Slot per session id. Get returns nil, nil for a session
// that has not searched anything yet or whose slot is older than the
// store's TTL.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Slot, error)
	Put(ctx context.Context, sessionID string, slot Slot) error
	Ping(ctx context.Context) error
	Close() error
}

func decodeSlot(raw []byte, updated time.Time) (*Slot, error) {
	var p models.Pokemon
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode slot: %w", err)
	}
	return &Slot{Pokemon: p, Raw: raw, UpdatedAt: updated}, nil
}
