package database

import (
	"context"
	"sync"
)

// MemoryKV is an in-process KeyValueStore. It backs the "memory" favorites
// backend and the unit tests, which can make individual operations fail.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
	writes int

	readErr   error
	writeErr  error
	deleteErr error
}

// NewMemoryKV returns an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string][]byte)}
}

func (s *MemoryKV) Read(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.readErr != nil {
		return nil, false, s.readErr
	}
	value, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (s *MemoryKV) Write(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeErr != nil {
		return s.writeErr
	}
	s.values[key] = append([]byte(nil), value...)
	s.writes++
	return nil
}

func (s *MemoryKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.values, key)
	return nil
}

// Put stores a raw value directly, bypassing failure injection.
func (s *MemoryKV) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
}

// Get returns the raw stored value, bypassing failure injection.
func (s *MemoryKV) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

// Writes reports how many successful writes the store has seen.
func (s *MemoryKV) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// FailReads makes every subsequent Read return err. Pass nil to recover.
func (s *MemoryKV) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// FailWrites makes every subsequent Write return err. Pass nil to recover.
func (s *MemoryKV) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// FailDeletes makes every subsequent Delete return err. Pass nil to recover.
func (s *MemoryKV) FailDeletes(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleteErr = err
}

// PingContext always succeeds.
func (s *MemoryKV) PingContext(context.Context) error {
	return nil
}
