package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Store backed by the client_state table.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Store {
	return &postgresStore{pool: pool, logger: logger}
}

func (s *postgresStore) Load(ctx context.Context, sessionID, key string, out interface{}) (bool, error) {
	const q = `
SELECT data
FROM client_state
WHERE session_id = $1 AND key = $2
`
	var raw []byte
	if err := s.pool.QueryRow(ctx, q, sessionID, key).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		// Corrupt blob: fall back to the caller's default state.
		s.logger.Printf("statestore: discarding undecodable blob session=%s key=%s: %v", sessionID, key, err)
		return false, nil
	}
	return true, nil
}

func (s *postgresStore) Save(ctx context.Context, sessionID, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO client_state (session_id, key, data)
VALUES ($1, $2, $3)
ON CONFLICT (session_id, key) DO UPDATE
SET data = EXCLUDED.data, updated_at = now()
`
	_, err = s.pool.Exec(ctx, q, sessionID, key, raw)
	return err
}

func (s *postgresStore) Remove(ctx context.Context, sessionID, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM client_state WHERE session_id = $1 AND key = $2`, sessionID, key)
	return err
}

func (s *postgresStore) ListByKey(ctx context.Context, key string) ([]Entry, error) {
	const q = `
SELECT session_id, data
FROM client_state
WHERE key = $1
ORDER BY updated_at DESC
`
	rows, err := s.pool.Query(ctx, q, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.SessionID, &e.Data); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
