package newsletter

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopfront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Subscribe(ctx context.Context, email, source string) error {
	const q = `
INSERT INTO newsletter_subscribers (email, source)
VALUES ($1, $2)
`
	_, err := r.pool.Exec(ctx, q, strings.ToLower(strings.TrimSpace(email)), source)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrAlreadyExists
		}
		return err
	}
	return nil
}
