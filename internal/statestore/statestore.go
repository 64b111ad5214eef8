package statestore

import (
	"context"
	"encoding/json"
)

// Store persists named JSON blobs scoped to a client session. Each aggregate
// owns exactly one key and is its only reader and writer; concurrent writes
// from multiple clients of the same session are last-write-wins.
type Store interface {
	// Load decodes the blob at (sessionID, key) into out. It returns false
	// when the key is absent or the stored blob cannot be decoded; a decode
	// failure is recovered locally, never surfaced to callers.
	Load(ctx context.Context, sessionID, key string, out interface{}) (bool, error)
	Save(ctx context.Context, sessionID, key string, value interface{}) error
	Remove(ctx context.Context, sessionID, key string) error
	// ListByKey returns the raw blobs stored under key across all sessions.
	ListByKey(ctx context.Context, key string) ([]Entry, error)
}

// Entry is one session's blob for a given key.
type Entry struct {
	SessionID string
	Data      json.RawMessage
}
