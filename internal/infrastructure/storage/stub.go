package storage

import (
	"context"
	"errors"
	"sync"

	backupapp "github.com/flower8718/backend/internal/application/backup"
)

// StubArchiveStorage is an in-memory ArchiveStorage for development
// and tests. Uploaded archives are kept in a map.
type StubArchiveStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewStubArchiveStorage creates a new StubArchiveStorage
func NewStubArchiveStorage() *StubArchiveStorage {
	return &StubArchiveStorage{objects: make(map[string][]byte)}
}

var _ backupapp.ArchiveStorage = (*StubArchiveStorage)(nil)

// Upload stores the archive in memory
func (s *StubArchiveStorage) Upload(_ context.Context, key string, data []byte, _ string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]byte, len(data))
	copy(copied, data)
	s.objects[key] = copied
	return nil
}

// Object returns a stored archive and whether it exists
func (s *StubArchiveStorage) Object(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[key]
	return data, ok
}

// Keys lists the stored archive keys
func (s *StubArchiveStorage) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}
