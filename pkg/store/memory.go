package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process run store for tests and one-off runs.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*Run
	ids  []string // insertion order, oldest first
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*Run)}
}

// Insert stores a run record.
func (s *MemoryStore) Insert(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *run
	if _, exists := s.runs[run.ID]; !exists {
		s.ids = append(s.ids, run.ID)
	}
	s.runs[run.ID] = &cp
	return nil
}

// Get retrieves a run by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *run
	return &cp, nil
}

// List returns the most recent runs, newest first.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.ids)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]*Run, 0, n)
	for i := len(s.ids) - 1; i >= 0 && len(out) < n; i-- {
		cp := *s.runs[s.ids[i]]
		out = append(out, &cp)
	}
	return out, nil
}

// Delete removes a run.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return nil
	}
	delete(s.runs, id)
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return nil
}

// Close does nothing for the in-memory store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
