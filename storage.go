package main

import (
	"sync"
)

// Storage keys, one record per container, overwritten wholesale on every
// mutation.
const (
	cartStorageKey  = "cart-storage"
	orderStorageKey = "order-storage"
	appStorageKey   = "app-storage"
)

// SessionStorage holds JSON snapshots of container state, scoped to a session
// id. State does not survive beyond the session.
type SessionStorage interface {
	Get(sessionID, key string) (string, bool, error)
	Set(sessionID, key, value string) error
	Delete(sessionID, key string) error
	DropSession(sessionID string) error
}

type MemorySessionStore struct {
	mu      sync.RWMutex
	records map[string]map[string]string
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		records: make(map[string]map[string]string),
	}
}

func (s *MemorySessionStore) Get(sessionID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[sessionID]
	if !ok {
		return "", false, nil
	}
	value, ok := record[key]
	return value, ok, nil
}

func (s *MemorySessionStore) Set(sessionID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[sessionID]
	if !ok {
		record = make(map[string]string)
		s.records[sessionID] = record
	}
	record[key] = value
	return nil
}

func (s *MemorySessionStore) Delete(sessionID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if record, ok := s.records[sessionID]; ok {
		delete(record, key)
	}
	return nil
}

// DropSession discards every record the session owns.
func (s *MemorySessionStore) DropSession(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, sessionID)
	return nil
}
