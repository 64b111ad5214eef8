package statestore

import (
	"context"
	"encoding/json"
	"sync"
)

// Memory is an in-process Store used by unit tests and local development.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string]map[string][]byte // sessionID -> key -> raw JSON
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string]map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, sessionID, key string, out interface{}) (bool, error) {
	m.mu.RLock()
	raw, ok := m.blobs[sessionID][key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, nil
	}
	return true, nil
}

func (m *Memory) Save(_ context.Context, sessionID, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	if m.blobs[sessionID] == nil {
		m.blobs[sessionID] = make(map[string][]byte)
	}
	m.blobs[sessionID][key] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Remove(_ context.Context, sessionID, key string) error {
	m.mu.Lock()
	delete(m.blobs[sessionID], key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) ListByKey(_ context.Context, key string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []Entry
	for sessionID, keys := range m.blobs {
		if raw, ok := keys[key]; ok {
			entries = append(entries, Entry{SessionID: sessionID, Data: append(json.RawMessage(nil), raw...)})
		}
	}
	return entries, nil
}

// Put stores a raw blob directly, bypassing marshalling. Tests use it to
// simulate corrupt persisted data.
func (m *Memory) Put(sessionID, key string, raw []byte) {
	m.mu.Lock()
	if m.blobs[sessionID] == nil {
		m.blobs[sessionID] = make(map[string][]byte)
	}
	m.blobs[sessionID][key] = raw
	m.mu.Unlock()
}
