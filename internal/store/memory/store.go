package memory

import (
	"context"
	"sync"
)

// Store is a process-local blob store. It backs tests and STORAGE_DRIVER=memory.
type Store struct {
	mu    sync.RWMutex
	blobs map[string]string
}

func New() *Store {
	return &Store{
		blobs: make(map[string]string),
	}
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.blobs[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[key] = value
	return nil
}
