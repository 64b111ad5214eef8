package wishlist

import (
	"context"

	"shopfront/internal/domain"
	"shopfront/internal/statestore"
)

const stateKey = "wishlist"

// Service is the wishlist aggregate: a persisted set of products keyed by id.
type Service struct {
	store statestore.Store
}

func New(store statestore.Store) *Service {
	return &Service{store: store}
}

func (s *Service) Get(ctx context.Context, sessionID string) (domain.WishlistState, error) {
	st := domain.EmptyWishlist()
	ok, err := s.store.Load(ctx, sessionID, stateKey, &st)
	if err != nil {
		return domain.EmptyWishlist(), err
	}
	if !ok {
		return domain.EmptyWishlist(), nil
	}
	if st.Items == nil {
		st.Items = []domain.WishlistItem{}
	}
	return st, nil
}

// Add saves the item. Adding an id already on the list is a no-op.
func (s *Service) Add(ctx context.Context, sessionID string, item domain.WishlistItem) (domain.WishlistState, error) {
	st, err := s.Get(ctx, sessionID)
	if err != nil {
		return domain.EmptyWishlist(), err
	}
	for _, existing := range st.Items {
		if existing.ID == item.ID {
			return st, nil
		}
	}
	st.Items = append(st.Items, item)
	if err := s.store.Save(ctx, sessionID, stateKey, st); err != nil {
		return domain.EmptyWishlist(), err
	}
	return st, nil
}

func (s *Service) Remove(ctx context.Context, sessionID string, id int64) (domain.WishlistState, error) {
	st, err := s.Get(ctx, sessionID)
	if err != nil {
		return domain.EmptyWishlist(), err
	}
	items := make([]domain.WishlistItem, 0, len(st.Items))
	for _, existing := range st.Items {
		if existing.ID != id {
			items = append(items, existing)
		}
	}
	st.Items = items
	if err := s.store.Save(ctx, sessionID, stateKey, st); err != nil {
		return domain.EmptyWishlist(), err
	}
	return st, nil
}

func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Remove(ctx, sessionID, stateKey)
}
