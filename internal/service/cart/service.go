package cart

import (
	"context"

	"shopfront/internal/domain"
	"shopfront/internal/statestore"
)

// stateKey is the cart's blob key. This service is its only reader/writer.
const stateKey = "cart"

// Service is the cart aggregate: it loads the session's cart, applies a pure
// transition, and persists the result.
type Service struct {
	store statestore.Store
}

func New(store statestore.Store) *Service {
	return &Service{store: store}
}

// Get returns the session's cart, falling back to an empty cart when nothing
// usable is persisted.
func (s *Service) Get(ctx context.Context, sessionID string) (domain.CartState, error) {
	st := domain.EmptyCart()
	ok, err := s.store.Load(ctx, sessionID, stateKey, &st)
	if err != nil {
		return domain.EmptyCart(), err
	}
	if !ok {
		return domain.EmptyCart(), nil
	}
	if st.Items == nil {
		st.Items = []domain.CartItem{}
	}
	return st, nil
}

// AddItem merges the product into the cart, incrementing quantity for an
// existing line. Adding always opens the cart UI flag.
func (s *Service) AddItem(ctx context.Context, sessionID string, item domain.CartItem, quantity int) (domain.CartState, error) {
	return s.apply(ctx, sessionID, func(st domain.CartState) domain.CartState {
		return addItem(st, item, quantity)
	})
}

// RemoveItem deletes a line. Removing an id that is not in the cart is a
// no-op, not an error.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, id int64) (domain.CartState, error) {
	return s.apply(ctx, sessionID, func(st domain.CartState) domain.CartState {
		return removeItem(st, id)
	})
}

// SetQuantity sets a line's quantity; zero or negative removes the line.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, id int64, quantity int) (domain.CartState, error) {
	return s.apply(ctx, sessionID, func(st domain.CartState) domain.CartState {
		return setQuantity(st, id, quantity)
	})
}

// SetOpen persists the cart drawer's UI flag.
func (s *Service) SetOpen(ctx context.Context, sessionID string, open bool) (domain.CartState, error) {
	return s.apply(ctx, sessionID, func(st domain.CartState) domain.CartState {
		return setOpen(st, open)
	})
}

// Clear empties the cart and deletes the persisted blob.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Remove(ctx, sessionID, stateKey)
}

func (s *Service) apply(ctx context.Context, sessionID string, transition func(domain.CartState) domain.CartState) (domain.CartState, error) {
	st, err := s.Get(ctx, sessionID)
	if err != nil {
		return domain.EmptyCart(), err
	}
	next := transition(st)
	if err := s.store.Save(ctx, sessionID, stateKey, next); err != nil {
		return domain.EmptyCart(), err
	}
	return next, nil
}
