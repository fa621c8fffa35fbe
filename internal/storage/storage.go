package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bigboy/appconfig/internal/storagekeys"
)

var (
	// ErrUnknownKey indicates the key is not part of the configured key set.
	ErrUnknownKey = errors.New("key is not a registered storage key")
	// ErrNotFound is returned when no value is stored under the key.
	ErrNotFound = errors.New("no value stored for key")
)

// Storage persists client state under the registered storage keys.
type Storage interface {
	Get(ctx context.Context, key storagekeys.Key) (string, error)
	Set(ctx context.Context, key storagekeys.Key, value string) error
	Delete(ctx context.Context, key storagekeys.Key) error
	Clear(ctx context.Context) error
}

// MemoryStorage keeps values in-memory and guards access with a RWMutex.
type MemoryStorage struct {
	keys storagekeys.Set

	mu     sync.RWMutex
	values map[storagekeys.Key]string
}

// NewMemoryStorage creates an empty store accepting only keys from set.
func NewMemoryStorage(set storagekeys.Set) *MemoryStorage {
	return &MemoryStorage{
		keys:   set,
		values: make(map[storagekeys.Key]string, len(set.All())),
	}
}

// Get returns the value stored under key.
func (s *MemoryStorage) Get(_ context.Context, key storagekeys.Key) (string, error) {
	if err := checkKey(s.keys, key); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return v, nil
}

// Set stores value under key, replacing any previous value.
func (s *MemoryStorage) Set(_ context.Context, key storagekeys.Key, value string) error {
	if err := checkKey(s.keys, key); err != nil {
		return err
	}

	s.mu.Lock()
	s.values[key] = value
	s.mu.Unlock()

	return nil
}

// Delete removes the value under key. Deleting an absent value is not an error.
func (s *MemoryStorage) Delete(_ context.Context, key storagekeys.Key) error {
	if err := checkKey(s.keys, key); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.values, key)
	s.mu.Unlock()

	return nil
}

// Clear removes every stored value.
func (s *MemoryStorage) Clear(_ context.Context) error {
	s.mu.Lock()
	clear(s.values)
	s.mu.Unlock()
	return nil
}

func checkKey(set storagekeys.Set, key storagekeys.Key) error {
	if !set.Contains(key) {
		return fmt.Errorf("%w: %q", ErrUnknownKey, string(key))
	}
	return nil
}
