package checkout

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"shopfront/internal/domain"
	"shopfront/internal/payment"
	orderssvc "shopfront/internal/service/orders"
	"shopfront/internal/statestore"
)

// checkoutKey holds the pending checkout snapshot between initialize and
// verify. It is owned by this service.
const checkoutKey = "checkout"

// MsgNoReference is the user-facing failure for a callback without any
// reference parameter.
const MsgNoReference = "No payment reference found"

// msgVerifyFailed is the only error text end users ever see for gateway or
// network failures; the real error goes to the operator log.
const msgVerifyFailed = "Payment verification failed. Please try again or contact support."

var (
	// ErrEmptyCart rejects checkout on a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrVerifyInFlight signals a concurrent verification for the same reference.
	ErrVerifyInFlight = errors.New("verification already in progress")
)

type cartService interface {
	Get(ctx context.Context, sessionID string) (domain.CartState, error)
	Clear(ctx context.Context, sessionID string) error
}

type orderService interface {
	Create(ctx context.Context, sessionID string, in orderssvc.CreateInput) (*domain.Order, error)
}

type gateway interface {
	Initialize(ctx context.Context, in payment.InitializeInput) (*payment.Initialization, error)
	Verify(ctx context.Context, reference string) (*domain.Transaction, error)
}

// Service orchestrates the checkout round trip: snapshot the cart and open a
// gateway transaction, then verify the reference when the shopper returns
// and reconcile cart and order log.
type Service struct {
	cart        cartService
	orders      orderService
	store       statestore.Store
	gateway     gateway
	logger      *log.Logger
	callbackURL string
	currency    string

	mu       sync.Mutex
	inFlight map[verifyKey]bool
	// Successful verifications are memoized so a repeat call for the same
	// reference cannot clear the cart or append an order twice. Failures are
	// not memoized: the shopper's "Try Again" must reach the gateway. The memo
	// is keyed per session as well as per reference, since settlement runs
	// against the caller's session; a stranger verifying a leaked reference
	// must not consume the paying session's settlement.
	verified map[verifyKey]*VerifyResult
}

// verifyKey scopes the in-flight guard and the memo to one session's view of
// one reference.
type verifyKey struct {
	sessionID string
	reference string
}

func New(cart cartService, orders orderService, store statestore.Store, gw gateway, callbackURL, currency string, logger *log.Logger) *Service {
	return &Service{
		cart:        cart,
		orders:      orders,
		store:       store,
		gateway:     gw,
		logger:      logger,
		callbackURL: callbackURL,
		currency:    currency,
		inFlight:    make(map[verifyKey]bool),
		verified:    make(map[verifyKey]*VerifyResult),
	}
}

// pendingCheckout is the snapshot persisted between initialize and verify.
type pendingCheckout struct {
	Reference     string                 `json:"reference"`
	Email         string                 `json:"email"`
	Items         []domain.CartItem      `json:"items"`
	TotalCents    int64                  `json:"totalCents"`
	Shipping      domain.ShippingDetails `json:"shipping"`
	PaymentMethod string                 `json:"paymentMethod"`
	UserID        string                 `json:"userId,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

// StartInput is the checkout form.
type StartInput struct {
	Email         string
	Shipping      domain.ShippingDetails
	PaymentMethod string
	UserID        string
}

// StartOutput points the shopper at the hosted payment page.
type StartOutput struct {
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode"`
	Reference        string `json:"reference"`
}

// Start snapshots the cart, generates the transaction reference and opens
// the gateway transaction. The reference is persisted with the snapshot
// before the gateway call so a later verify can be matched even if the
// initialize response is lost.
func (s *Service) Start(ctx context.Context, sessionID string, in StartInput) (*StartOutput, error) {
	st, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(st.Items) == 0 {
		return nil, ErrEmptyCart
	}

	reference := payment.GenerateReference()
	pending := pendingCheckout{
		Reference:     reference,
		Email:         in.Email,
		Items:         st.Items,
		TotalCents:    st.TotalCents,
		Shipping:      in.Shipping,
		PaymentMethod: in.PaymentMethod,
		UserID:        in.UserID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.Save(ctx, sessionID, checkoutKey, pending); err != nil {
		return nil, err
	}

	init, err := s.gateway.Initialize(ctx, payment.InitializeInput{
		Email:       in.Email,
		AmountCents: st.TotalCents,
		Reference:   reference,
		CallbackURL: s.callbackURL,
		Currency:    s.currency,
		Metadata: domain.TransactionMetadata{
			CustomerName: in.Shipping.FullName,
		},
	})
	if err != nil {
		// Snapshot stays; the shopper can retry checkout with a new reference.
		return nil, err
	}

	return &StartOutput{
		AuthorizationURL: init.AuthorizationURL,
		AccessCode:       init.AccessCode,
		Reference:        init.Reference,
	}, nil
}

// VerifyResult is the terminal state of one verification attempt.
type VerifyResult struct {
	Success       bool
	Status        string
	Reference     string
	AmountCents   int64
	Currency      string
	Channel       string
	PaidAt        *time.Time
	CustomerEmail string
	Metadata      domain.TransactionMetadata
	OrderID       string
	Message       string
}

// Verify runs one verification attempt for the reference carried in the
// callback parameters. Either parameter name is accepted; the canonical one
// wins when both are present. A missing reference fails immediately with no
// gateway call. On a successful transaction the cart is cleared and the
// order appended exactly once, guarded per session and reference.
func (s *Service) Verify(ctx context.Context, sessionID, reference, trxref string) (*VerifyResult, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		ref = strings.TrimSpace(trxref)
	}
	if ref == "" {
		return &VerifyResult{Success: false, Message: MsgNoReference}, nil
	}

	key := verifyKey{sessionID: sessionID, reference: ref}

	s.mu.Lock()
	if done, ok := s.verified[key]; ok {
		s.mu.Unlock()
		return done, nil
	}
	if s.inFlight[key] {
		s.mu.Unlock()
		return nil, ErrVerifyInFlight
	}
	s.inFlight[key] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, key)
		s.mu.Unlock()
	}()

	tx, err := s.gateway.Verify(ctx, ref)
	if err != nil {
		s.logger.Printf("checkout: verify failed reference=%s: %v", ref, err)
		return &VerifyResult{Success: false, Reference: ref, Message: msgVerifyFailed}, nil
	}

	if tx.Status != domain.TransactionSuccess {
		s.logger.Printf("checkout: transaction not successful reference=%s status=%s", ref, tx.Status)
		return &VerifyResult{
			Success:   false,
			Status:    tx.Status,
			Reference: ref,
			Message:   msgVerifyFailed,
		}, nil
	}

	result := &VerifyResult{
		Success:       true,
		Status:        tx.Status,
		Reference:     tx.Reference,
		AmountCents:   tx.AmountCents,
		Currency:      tx.Currency,
		Channel:       tx.Channel,
		PaidAt:        tx.PaidAt,
		CustomerEmail: tx.CustomerEmail,
		Metadata:      tx.Metadata,
	}

	order, err := s.settle(ctx, sessionID, ref)
	if err != nil {
		// The payment itself succeeded; reconciliation problems are an
		// operator concern, not a shopper-facing failure.
		s.logger.Printf("checkout: reconcile failed reference=%s: %v", ref, err)
	} else if order != nil {
		result.OrderID = order.ID
	}

	s.mu.Lock()
	s.verified[key] = result
	s.mu.Unlock()

	return result, nil
}

// settle creates the order from the pending snapshot (falling back to the
// live cart when no snapshot survives), clears the cart and drops the
// snapshot.
func (s *Service) settle(ctx context.Context, sessionID, ref string) (*domain.Order, error) {
	var pending pendingCheckout
	ok, err := s.store.Load(ctx, sessionID, checkoutKey, &pending)
	if err != nil {
		return nil, err
	}

	in := orderssvc.CreateInput{PaymentMethod: "card"}
	if ok && pending.Reference == ref {
		in.Items = pending.Items
		in.Shipping = pending.Shipping
		in.PaymentMethod = pending.PaymentMethod
		in.UserID = pending.UserID
	} else {
		st, err := s.cart.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		in.Items = st.Items
	}

	var order *domain.Order
	if len(in.Items) > 0 {
		order, err = s.orders.Create(ctx, sessionID, in)
		if err != nil {
			return nil, err
		}
	}

	if err := s.cart.Clear(ctx, sessionID); err != nil {
		return order, err
	}
	if err := s.store.Remove(ctx, sessionID, checkoutKey); err != nil {
		return order, err
	}
	return order, nil
}
