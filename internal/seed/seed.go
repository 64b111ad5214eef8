package seed

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	adminrepo "shopfront/internal/repository/admin"
)

// AdminAccount makes sure the configured dashboard operator exists. Reruns
// overwrite the stored hash, so rotating ADMIN_PASSWORD is a re-seed away.
func AdminAccount(ctx context.Context, repo adminrepo.Repository, email, password string, logger *log.Logger) error {
	if email == "" || password == "" {
		return fmt.Errorf("admin email and password must be set")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if err := repo.Upsert(ctx, email, string(hash)); err != nil {
		return fmt.Errorf("upsert admin account: %w", err)
	}

	logger.Printf("seeded admin account %s", email)
	return nil
}
