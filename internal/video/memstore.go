package video

import (
	"context"
	"sync"
)

// MemoryStore is the in-process StatusStore. A mutex-guarded map is enough for
// the per-key atomicity the contract asks for.
type MemoryStore struct {
	mu   sync.Mutex
	recs map[string]*VideoStatus
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]*VideoStatus)}
}

func (s *MemoryStore) Create(ctx context.Context, rec *VideoStatus) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.recs[rec.VideoID]; exists {
		return ErrDuplicateID
	}
	cp := *rec
	s.recs[rec.VideoID] = &cp
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*VideoStatus, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, upd StatusUpdate) (*VideoStatus, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.recs[id]
	if !ok {
		return nil, ErrNotFound
	}
	ApplyUpdate(rec, upd)
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) (bool, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recs[id]; !ok {
		return false, nil
	}
	delete(s.recs, id)
	return true, nil
}
