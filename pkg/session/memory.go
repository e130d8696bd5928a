package session

import (
	"context"
	"sync"
)

// MemoryStore keeps session state in process memory. Default backend for
// single-instance deployments and tests.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]State)}
}

func (s *MemoryStore) Get(_ context.Context, sid string) (*State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[sid]
	if !ok {
		return nil, nil
	}
	cp := st
	return &cp, nil
}

func (s *MemoryStore) Put(_ context.Context, sid string, st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = *st
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
