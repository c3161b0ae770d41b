// internal/store/memory.go
//
// In-memory session store.
// Sessions hold a solver pool (and, for engine-backed games, the game) for
// one player. State is lost when the process restarts.
//
// Characteristics:
//   - Stores *Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Each Session carries its own mutex; handlers lock it for a whole turn.
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordle/apps/solver-server/internal/game"
	"github.com/robalobadob/wordle/apps/solver-server/internal/solver"
)

// ErrNotFound is returned by Get for unknown or swept sessions.
var ErrNotFound = errors.New("not found")

// Session modes.
const (
	ModeAssist = "assist" // player reports feedback from an outside game
	ModeGame   = "game"   // player plays the built-in engine
)

// Session is one player's solver state.
type Session struct {
	mu sync.Mutex

	ID         string
	Mode       string
	Pool       *solver.Pool
	Game       *game.Game         // nil in assist mode
	Last       solver.GuessResult // feedback for the latest played guess
	Suggestion string             // solver's pending guess, if any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSession creates a session with a fresh ID, or the game's ID when g is set.
func NewSession(mode string, pool *solver.Pool, g *game.Game) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		Mode:      mode,
		Pool:      pool,
		Game:      g,
		Last:      solver.FirstTurn(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if g != nil {
		s.ID = g.ID
	}
	return s
}

// Lock serialises turns on one session.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch records activity for Sweep. Call with the session locked.
func (s *Session) Touch() { s.UpdatedAt = time.Now() }

// Store defines the persistence interface for sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session does not exist.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions idle since before cutoff and returns how many.
	Sweep(ctx context.Context, cutoff time.Time) (int, error)

	// Len returns the number of live sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Sweep never holds the map lock while waiting on a session lock; handlers
// take them in the opposite order.
func (m *memory) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	m.mu.RLock()
	snapshot := make(map[string]*Session, len(m.sessions))
	for id, s := range m.sessions {
		snapshot[id] = s
	}
	m.mu.RUnlock()

	var stale []string
	for id, s := range snapshot {
		s.mu.Lock()
		old := s.UpdatedAt.Before(cutoff)
		s.mu.Unlock()
		if old {
			stale = append(stale, id)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, id := range stale {
		if cur, ok := m.sessions[id]; ok && cur == snapshot[id] {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
