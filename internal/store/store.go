package store

import (
	"context"
	"errors"

	"github.com/rangvaar/rangvaar-backend/internal/engine"
)

var ErrNotFound = errors.New("match not found")
var ErrAlreadyExists = errors.New("match already exists")

// ErrVersionConflict means the stored state changed between the caller's
// read and their commit. The caller must reread and retry; the stale write
// is never applied.
var ErrVersionConflict = errors.New("match state changed since read")

// MatchStore is the narrow host contract the engine's callers run against:
// read a versioned snapshot, commit conditionally on that version. The same
// engine works over the in-memory store in tests and postgres in production.
type MatchStore interface {
	// Create persists a brand-new match and returns its initial version.
	Create(ctx context.Context, matchID string, state engine.MatchState) (int, error)

	// Load returns the current state and its version.
	Load(ctx context.Context, matchID string) (engine.MatchState, int, error)

	// Commit writes next only if the stored version still equals
	// expectedVersion, returning the new version or ErrVersionConflict.
	Commit(ctx context.Context, matchID string, expectedVersion int, next engine.MatchState) (int, error)
}
