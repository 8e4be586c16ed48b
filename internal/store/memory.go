package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rangvaar/rangvaar-backend/internal/engine"
)

type memoryRecord struct {
	state   []byte
	version int
}

// Memory is a mutex-guarded MatchStore for tests and single-node runs.
// State is stored serialized so callers never share map or slice memory
// with the store, same as the postgres path.
type Memory struct {
	mu      sync.Mutex
	matches map[string]memoryRecord
}

func NewMemory() *Memory {
	return &Memory{matches: make(map[string]memoryRecord)}
}

func (m *Memory) Create(ctx context.Context, matchID string, state engine.MatchState) (int, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return 0, fmt.Errorf("encode match %s: %w", matchID, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.matches[matchID]; ok {
		return 0, ErrAlreadyExists
	}
	m.matches[matchID] = memoryRecord{state: data, version: 0}
	return 0, nil
}

func (m *Memory) Load(ctx context.Context, matchID string) (engine.MatchState, int, error) {
	m.mu.Lock()
	rec, ok := m.matches[matchID]
	m.mu.Unlock()
	if !ok {
		return engine.MatchState{}, 0, ErrNotFound
	}
	var state engine.MatchState
	if err := json.Unmarshal(rec.state, &state); err != nil {
		return engine.MatchState{}, 0, fmt.Errorf("decode match %s: %w", matchID, err)
	}
	return state, rec.version, nil
}

func (m *Memory) Commit(ctx context.Context, matchID string, expectedVersion int, next engine.MatchState) (int, error) {
	data, err := json.Marshal(next)
	if err != nil {
		return 0, fmt.Errorf("encode match %s: %w", matchID, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.matches[matchID]
	if !ok {
		return 0, ErrNotFound
	}
	if rec.version != expectedVersion {
		return 0, ErrVersionConflict
	}
	m.matches[matchID] = memoryRecord{state: data, version: expectedVersion + 1}
	return expectedVersion + 1, nil
}
