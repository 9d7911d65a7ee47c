package testfixtures

import (
	"context"
	"sync"
	"time"

	"github.com/coinomad/payroll-dashboard/internal/session"
)

// MemoryStore is an in-memory session.Store for tests that do not want a
// database on disk.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]session.Record
	pending  map[string]session.PendingSignup
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: map[string]session.Record{},
		pending:  map[string]session.PendingSignup{},
	}
}

func (s *MemoryStore) SaveSession(_ context.Context, rec session.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[rec.ID] = rec
	return nil
}

func (s *MemoryStore) FindSession(_ context.Context, id string) (session.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[id]
	if !ok {
		return session.Record{}, session.ErrNotFound
	}
	return rec, nil
}

func (s *MemoryStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return session.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) SavePendingSignup(_ context.Context, pending session.PendingSignup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[pending.ID] = pending
	return nil
}

func (s *MemoryStore) FindPendingSignup(_ context.Context, id string) (session.PendingSignup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending, ok := s.pending[id]
	if !ok {
		return session.PendingSignup{}, session.ErrNotFound
	}
	return pending, nil
}

func (s *MemoryStore) DeletePendingSignup(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[id]; !ok {
		return session.ErrNotFound
	}
	delete(s.pending, id)
	return nil
}

func (s *MemoryStore) DeleteExpired(_ context.Context, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, rec := range s.sessions {
		if !rec.ExpiresAt.After(now) {
			delete(s.sessions, id)
		}
	}
	for id, pending := range s.pending {
		if !pending.ExpiresAt.After(now) {
			delete(s.pending, id)
		}
	}
	return nil
}

// SessionCount reports how many sessions are held, for assertions.
func (s *MemoryStore) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
