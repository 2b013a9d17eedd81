// internal/store/memory.go
//
// In-memory session store: each player has at most one live game session.
//
// Characteristics:
//   - Stores *game.Session objects keyed by player ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for players without a session.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/JonJui02/wordle-automated-deployment/internal/game"
)

// ErrNotFound is returned by Get when the player has no session.
var ErrNotFound = errors.New("store: session not found")

// Store defines the persistence interface for live sessions.
type Store interface {
	// Save stores s as the player's live session, replacing any previous one.
	Save(ctx context.Context, player string, s *game.Session) error

	// Get retrieves the player's live session.
	Get(ctx context.Context, player string) (*game.Session, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex             // guards sessions map
	sessions map[string]*game.Session // keyed by player ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Session)}
}

// Save adds or replaces the player's session.
func (m *memory) Save(_ context.Context, player string, s *game.Session) error {
	if player == "" {
		return errors.New("store: player is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[player] = s
	return nil
}

// Get looks up a session by player ID.
func (m *memory) Get(_ context.Context, player string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[player]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}
