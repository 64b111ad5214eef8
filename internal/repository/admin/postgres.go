package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopfront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const q = `
SELECT id::text, email, password_hash, created_at
FROM admin_accounts
WHERE email = $1
`
	var a domain.Admin
	err := r.pool.QueryRow(ctx, q, strings.ToLower(strings.TrimSpace(email))).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, email, passwordHash string) error {
	const q = `
INSERT INTO admin_accounts (email, password_hash)
VALUES ($1, $2)
ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash
`
	_, err := r.pool.Exec(ctx, q, strings.ToLower(strings.TrimSpace(email)), passwordHash)
	return err
}
