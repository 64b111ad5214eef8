package orders

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/statestore"
)

const stateKey = "orders"

// Service is the order aggregate: an append-only log per session, newest
// first, where only an order's status may change after creation.
type Service struct {
	store  statestore.Store
	logger *log.Logger
}

func New(store statestore.Store, logger *log.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// CreateInput carries the checkout snapshot an order is built from.
type CreateInput struct {
	Items         []domain.CartItem
	Shipping      domain.ShippingDetails
	PaymentMethod string
	UserID        string
}

// Create builds an order from the snapshot, prepends it to the session's log
// and persists. The order total is computed from the snapshot items.
func (s *Service) Create(ctx context.Context, sessionID string, in CreateInput) (*domain.Order, error) {
	items := make([]domain.OrderItem, 0, len(in.Items))
	var total int64
	for _, item := range in.Items {
		items = append(items, domain.OrderItem{
			ID:             item.ID,
			Title:          item.Title,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			Thumbnail:      item.Thumbnail,
		})
		total += int64(item.Quantity) * item.UnitPriceCents
	}

	order := domain.Order{
		ID:            domain.NewOrderID(),
		CreatedAt:     time.Now().UTC(),
		Status:        domain.OrderPending,
		Items:         items,
		TotalCents:    total,
		Shipping:      in.Shipping,
		PaymentMethod: in.PaymentMethod,
		UserID:        in.UserID,
	}

	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st.Orders = append([]domain.Order{order}, st.Orders...)
	if err := s.store.Save(ctx, sessionID, stateKey, st); err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns the session's orders, newest first.
func (s *Service) List(ctx context.Context, sessionID string) ([]domain.Order, error) {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return st.Orders, nil
}

// Get returns a single order by id.
func (s *Service) Get(ctx context.Context, sessionID, orderID string) (*domain.Order, error) {
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range st.Orders {
		if st.Orders[i].ID == orderID {
			return &st.Orders[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// SetStatus applies a status change within one session's log. Unknown
// statuses and transitions outside the forward-only lifecycle are rejected
// with domain.ErrInvalidTransition and leave the order untouched.
func (s *Service) SetStatus(ctx context.Context, sessionID, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidTransition
	}
	st, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range st.Orders {
		if st.Orders[i].ID != orderID {
			continue
		}
		if !domain.CanTransition(st.Orders[i].Status, status) {
			return nil, domain.ErrInvalidTransition
		}
		st.Orders[i].Status = status
		if err := s.store.Save(ctx, sessionID, stateKey, st); err != nil {
			return nil, err
		}
		return &st.Orders[i], nil
	}
	return nil, domain.ErrNotFound
}

// SessionOrder pairs an order with the session that owns it, for the admin
// dashboard view.
type SessionOrder struct {
	SessionID string       `json:"sessionId"`
	Order     domain.Order `json:"order"`
}

// ListAll aggregates every session's order log, for admin use. Blobs that no
// longer decode are skipped rather than failing the whole listing.
func (s *Service) ListAll(ctx context.Context) ([]SessionOrder, error) {
	entries, err := s.store.ListByKey(ctx, stateKey)
	if err != nil {
		return nil, err
	}
	out := make([]SessionOrder, 0)
	for _, entry := range entries {
		var st domain.OrdersState
		if err := json.Unmarshal(entry.Data, &st); err != nil {
			s.logger.Printf("orders: skipping undecodable log session=%s: %v", entry.SessionID, err)
			continue
		}
		for _, order := range st.Orders {
			out = append(out, SessionOrder{SessionID: entry.SessionID, Order: order})
		}
	}
	return out, nil
}

// SetStatusByID locates the session owning orderID and applies the status
// change there. Admin endpoints use this since they have no session scope.
func (s *Service) SetStatusByID(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return nil, domain.ErrInvalidTransition
	}
	entries, err := s.store.ListByKey(ctx, stateKey)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		var st domain.OrdersState
		if err := json.Unmarshal(entry.Data, &st); err != nil {
			continue
		}
		for i := range st.Orders {
			if st.Orders[i].ID == orderID {
				return s.SetStatus(ctx, entry.SessionID, orderID, status)
			}
		}
	}
	return nil, domain.ErrNotFound
}

// ClearAll wipes every session's order log. It is reachable only from the
// admin surface, never from customer flows.
func (s *Service) ClearAll(ctx context.Context) error {
	entries, err := s.store.ListByKey(ctx, stateKey)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := s.store.Remove(ctx, entry.SessionID, stateKey); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) load(ctx context.Context, sessionID string) (domain.OrdersState, error) {
	st := domain.EmptyOrders()
	ok, err := s.store.Load(ctx, sessionID, stateKey, &st)
	if err != nil {
		return domain.EmptyOrders(), err
	}
	if !ok || st.Orders == nil {
		st.Orders = []domain.Order{}
	}
	return st, nil
}
