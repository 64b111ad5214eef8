package account

import (
	"context"

	"shopfront/internal/domain"
	"shopfront/internal/statestore"
)

// Blob keys owned by this aggregate. Both are removed together on logout.
const (
	tokenKey = "token"
	userKey  = "user"
)

type authAPI interface {
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}

// Service holds the customer auth session: the upstream token plus the
// cached profile, persisted per browsing session.
type Service struct {
	api   authAPI
	store statestore.Store
}

func New(api authAPI, store statestore.Store) *Service {
	return &Service{api: api, store: store}
}

// Login authenticates upstream and persists the session.
func (s *Service) Login(ctx context.Context, sessionID, username, password string) (*domain.User, error) {
	user, token, err := s.api.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, tokenKey, token); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, sessionID, userKey, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout destroys the session: token and cached profile are both removed.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.store.Remove(ctx, sessionID, tokenKey); err != nil {
		return err
	}
	return s.store.Remove(ctx, sessionID, userKey)
}

// Current returns the cached profile, or ok=false when not authenticated.
func (s *Service) Current(ctx context.Context, sessionID string) (*domain.User, bool, error) {
	var token string
	ok, err := s.store.Load(ctx, sessionID, tokenKey, &token)
	if err != nil {
		return nil, false, err
	}
	if !ok || token == "" {
		return nil, false, nil
	}
	var user domain.User
	ok, err = s.store.Load(ctx, sessionID, userKey, &user)
	if err != nil || !ok {
		return nil, false, err
	}
	return &user, true, nil
}
