package admin

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"shopfront/internal/auth"
	"shopfront/internal/domain"
	adminrepo "shopfront/internal/repository/admin"
)

// ErrInvalidCredentials is returned when email/password do not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service handles admin dashboard login.
type Service struct {
	repo   adminrepo.Repository
	tokens *auth.Tokens
}

func New(repo adminrepo.Repository, tokens *auth.Tokens) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login validates credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return s.tokens.Issue(a.ID, a.Email)
}
