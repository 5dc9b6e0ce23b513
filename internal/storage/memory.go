package storage

import (
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store used in tests and throwaway sessions.
// Values are held as serialized JSON so round-trip behavior matches the
// file-backed store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get implements Store.
func (s *MemoryStore) Get(key string, v any) bool {
	s.mu.RLock()
	data, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// Set implements Store.
func (s *MemoryStore) Set(key string, v any) bool {
	data, err := json.Marshal(v)
	if err != nil {
		return false
	}
	s.mu.Lock()
	s.data[key] = data
	s.mu.Unlock()
	return true
}

// Remove implements Store.
func (s *MemoryStore) Remove(key string) bool {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return true
}

// Clear implements Store.
func (s *MemoryStore) Clear() bool {
	s.mu.Lock()
	s.data = make(map[string][]byte)
	s.mu.Unlock()
	return true
}
