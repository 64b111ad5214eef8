package admin

import (
	"context"

	"shopfront/internal/domain"
)

// Repository stores admin dashboard accounts.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Upsert(ctx context.Context, email, passwordHash string) error
}
