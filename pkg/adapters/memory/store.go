package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/fable/pkg/domain"
)

// Store implements ports.SaveStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.SaveData
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.SaveData),
	}
}

// Save keeps a private copy of save.
func (s *Store) Save(ctx context.Context, name string, save domain.SaveData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = save.Clone()
	return nil
}

// Load returns a copy so callers cannot reach the stored maps.
func (s *Store) Load(ctx context.Context, name string) (domain.SaveData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	save, ok := s.data[name]
	if !ok {
		return domain.SaveData{}, domain.ErrSaveNotFound
	}
	return save.Clone(), nil
}

// Delete removes the save.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored names.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
