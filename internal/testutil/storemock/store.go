// Package storemock provides an in-memory blob store for tests, plus
// function-backed hooks to inject failures.
package storemock

import (
	"context"
	"fmt"
	"sync"

	"rapport-backend/internal/domain/store"
)

// Store keeps blobs in a map. Refs are "ref-<n>" in write order.
// ReadFn/WriteFn, when set, override the default behavior (use them to
// simulate store outages).
type Store struct {
	mu    sync.Mutex
	blobs map[string][]byte
	refs  map[string]string
	seq   int

	ReadFn  func(ctx context.Context, name string) ([]byte, string, error)
	WriteFn func(ctx context.Context, name string, data []byte, existingRef string) (string, error)
}

func New() *Store {
	return &Store{blobs: map[string][]byte{}, refs: map[string]string{}}
}

// Seed places a blob without going through Write.
func (s *Store) Seed(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.blobs[name] = data
	s.refs[name] = fmt.Sprintf("ref-%d", s.seq)
}

// Get returns the current blob contents, nil when absent.
func (s *Store) Get(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blobs[name]
}

func (s *Store) Read(ctx context.Context, name string) ([]byte, string, error) {
	if s.ReadFn != nil {
		return s.ReadFn(ctx, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[name]
	if !ok {
		return nil, "", nil
	}
	return data, s.refs[name], nil
}

func (s *Store) Write(ctx context.Context, name string, data []byte, existingRef string) (string, error) {
	if s.WriteFn != nil {
		return s.WriteFn(ctx, name, data, existingRef)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existingRef == "" {
		s.seq++
		s.refs[name] = fmt.Sprintf("ref-%d", s.seq)
	}
	s.blobs[name] = data
	return s.refs[name], nil
}

var _ store.Store = (*Store)(nil)
