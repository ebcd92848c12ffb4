package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps live sessions in memory for the lifetime of the process.
// Sessions are independent; events for one session are applied one at a
// time, in the order Do is called.
type Store struct {
	catalog *Catalog
	idle    time.Duration
	now     func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*entry
}

type entry struct {
	mu       sync.Mutex
	engine   *Engine
	lastSeen time.Time
	// removed is set under mu once the entry leaves the map.
	removed bool
}

// NewStore creates a store whose sessions all share catalog. Sessions unused
// for longer than idle are dropped by Sweep; zero disables expiry.
func NewStore(catalog *Catalog, idle time.Duration) *Store {
	return &Store{
		catalog:  catalog,
		idle:     idle,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*entry),
	}
}

// Create starts a fresh session.
func (s *Store) Create() uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.sessions[id] = &entry{engine: NewEngine(s.catalog), lastSeen: s.now()}
	s.mu.Unlock()
	return id
}

// Do runs fn against the session's engine while holding the session lock.
// An event either fully applies or not at all: when fn returns an error the
// session state is put back to what it was before fn ran.
func (s *Store) Do(id uuid.UUID, fn func(*Engine) error) error {
	e, err := s.lookup(id)
	if err != nil {
		return err
	}
	return s.run(id, e, fn)
}

func (s *Store) lookup(id uuid.UUID) (*entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e, nil
}

func (s *Store) run(id uuid.UUID, e *entry, fn func(*Engine) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	// Swept or deleted between lookup and lock.
	if e.removed {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	e.lastSeen = s.now()

	before := e.engine.state
	if err := fn(e.engine); err != nil {
		e.engine.state = before
		return err
	}
	return nil
}

// Delete ends a session. It reports whether the session existed.
func (s *Store) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return false
	}
	delete(s.sessions, id)
	e.mu.Lock()
	e.removed = true
	e.mu.Unlock()
	return true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops sessions idle since before now minus the idle timeout and
// returns how many were dropped.
func (s *Store) Sweep(now time.Time) int {
	if s.idle <= 0 {
		return 0
	}
	cutoff := now.Add(-s.idle)

	s.mu.Lock()
	defer s.mu.Unlock()
	dropped := 0
	for id, e := range s.sessions {
		e.mu.Lock()
		if e.lastSeen.Before(cutoff) {
			e.removed = true
			delete(s.sessions, id)
			dropped++
		}
		e.mu.Unlock()
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is done. onSweep, if set,
// receives the number of sessions dropped by each pass that dropped any.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(dropped int)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			if n := s.Sweep(t); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
