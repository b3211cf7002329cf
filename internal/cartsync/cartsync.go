// Package cartsync keeps a locally displayed cart consistent with the
// server-held cart. Every operation is one round trip and the local snapshot
// is only ever replaced wholesale by the backend's response.
package cartsync

import (
	"context"
	"sync"

	"github.com/angelmondragon/storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/types"
)

// Backend is the subset of the storefront API the cart depends on.
type Backend interface {
	GetCart(ctx context.Context, sessionID string) (storefront.Cart, error)
	AddItem(ctx context.Context, sessionID string, productID types.ProductID, quantity int) (storefront.Cart, error)
	RemoveItem(ctx context.Context, sessionID string, productID types.ProductID) (storefront.Cart, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID types.ProductID, quantity int) (storefront.Cart, error)
	ClearCart(ctx context.Context, sessionID string) (storefront.Cart, error)
	Checkout(ctx context.Context, sessionID string, info storefront.CustomerInfo) (storefront.Order, error)
}

// IDSource resolves the session identifier, e.g. *session.Provider.
type IDSource interface {
	SessionID(ctx context.Context) (string, error)
}

type Options struct {
	// GuardStale discards responses to calls issued before the last applied one.
	// Off by default: the last response to arrive wins.
	GuardStale bool
	Logger     *logger.Logger
	Metrics    *metrics.ClientMetrics
}

// Session is the cart context for one session id. It is safe for concurrent use.
type Session struct {
	backend Backend
	id      string
	guard   bool
	logg    *logger.Logger
	metrics *metrics.ClientMetrics

	mu       sync.Mutex
	snapshot storefront.Cart
	issued   uint64
	applied  uint64
}

// NewSession resolves the session id and returns a context with an empty snapshot.
func NewSession(ctx context.Context, backend Backend, ids IDSource, opts Options) (*Session, error) {
	id, err := ids.SessionID(ctx)
	if err != nil {
		return nil, err
	}
	return newSession(backend, id, opts), nil
}

func newSession(backend Backend, id string, opts Options) *Session {
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Session{
		backend:  backend,
		id:       id,
		guard:    opts.GuardStale,
		logg:     logg,
		metrics:  opts.Metrics,
		snapshot: emptyCart(),
	}
}

// ID returns the session identifier every call is keyed by.
func (s *Session) ID() string {
	return s.id
}

// Fetch replaces the snapshot with the backend's cart. On any failure the
// snapshot degrades to an empty cart and no error is returned.
func (s *Session) Fetch(ctx context.Context) storefront.Cart {
	ctx = s.opContext(ctx, storefront.OpGetCart)
	token := s.issue()
	cart, err := s.backend.GetCart(ctx, s.id)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.fetch.degraded")
		cart = emptyCart()
	}
	applied, _ := s.apply(ctx, token, cart)
	return applied
}

// Add asks the backend to add one unit of productID.
func (s *Session) Add(ctx context.Context, productID types.ProductID) (storefront.Cart, error) {
	return s.AddQuantity(ctx, productID, 1)
}

// AddQuantity asks the backend to add quantity units of productID.
func (s *Session) AddQuantity(ctx context.Context, productID types.ProductID, quantity int) (storefront.Cart, error) {
	if quantity < 1 {
		return s.Snapshot(), pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]string{"quantity": "must be at least 1"})
	}
	return s.mutate(ctx, storefront.OpAddItem, func(ctx context.Context) (storefront.Cart, error) {
		return s.backend.AddItem(ctx, s.id, productID, quantity)
	})
}

// Remove asks the backend to delete the line for productID.
func (s *Session) Remove(ctx context.Context, productID types.ProductID) (storefront.Cart, error) {
	return s.mutate(ctx, storefront.OpRemoveItem, func(ctx context.Context) (storefront.Cart, error) {
		return s.backend.RemoveItem(ctx, s.id, productID)
	})
}

// UpdateQuantity asks the backend to set the exact quantity. Whether a
// nonpositive quantity removes the line is the backend's decision.
func (s *Session) UpdateQuantity(ctx context.Context, productID types.ProductID, quantity int) (storefront.Cart, error) {
	return s.mutate(ctx, storefront.OpUpdateQuantity, func(ctx context.Context) (storefront.Cart, error) {
		return s.backend.UpdateQuantity(ctx, s.id, productID, quantity)
	})
}

// Clear asks the backend to delete every line.
func (s *Session) Clear(ctx context.Context) (storefront.Cart, error) {
	return s.mutate(ctx, storefront.OpClearCart, func(ctx context.Context) (storefront.Cart, error) {
		return s.backend.ClearCart(ctx, s.id)
	})
}

// Checkout validates info, submits the session's cart and resets the local
// snapshot on success. An invalid form issues no request.
func (s *Session) Checkout(ctx context.Context, info storefront.CustomerInfo) (storefront.Order, error) {
	ctx = s.opContext(ctx, storefront.OpCheckout)
	if err := info.Validate(); err != nil {
		return storefront.Order{}, err
	}
	order, err := s.backend.Checkout(ctx, s.id, info.Normalized())
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.checkout.failed")
		return storefront.Order{}, err
	}
	s.Reset()
	s.logg.Info(s.logg.WithField(ctx, "order_id", order.ID), "cart.checkout.confirmed")
	return order, nil
}

// Reset empties the local snapshot without contacting the backend. Responses
// to calls issued before Reset are treated as stale when the guard is on.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = emptyCart()
	s.applied = s.issued
}

// Snapshot returns a copy of the last applied cart.
func (s *Session) Snapshot() storefront.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCart(s.snapshot)
}

func (s *Session) Items() []storefront.CartItem {
	return s.Snapshot().Items
}

// Total is the server total when provided, otherwise Σ price×quantity.
func (s *Session) Total() types.Money {
	return s.Snapshot().DisplayTotal()
}

func (s *Session) ItemCount() int {
	return s.Snapshot().ItemCount()
}

func (s *Session) mutate(ctx context.Context, op string, call func(context.Context) (storefront.Cart, error)) (storefront.Cart, error) {
	ctx = s.opContext(ctx, op)
	token := s.issue()
	cart, err := call(ctx)
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "cart.mutation.failed")
		return s.Snapshot(), err
	}
	applied, ok := s.apply(ctx, token, cart)
	if !ok {
		return applied, pkgerrors.New(pkgerrors.CodeStaleResponse, op+" response superseded by a newer one").
			WithDetails(map[string]any{"op": op})
	}
	return applied, nil
}

func (s *Session) issue() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// apply swaps in cart unless the guard is on and a later call already landed.
func (s *Session) apply(ctx context.Context, token uint64, cart storefront.Cart) (storefront.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.guard && token <= s.applied {
		s.metrics.IncStale()
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"token":   token,
			"applied": s.applied,
		}), "cart.response.stale")
		return copyCart(s.snapshot), false
	}
	if cart.Items == nil {
		cart.Items = []storefront.CartItem{}
	}
	s.snapshot = copyCart(cart)
	if token > s.applied {
		s.applied = token
	}
	return copyCart(s.snapshot), true
}

func (s *Session) opContext(ctx context.Context, op string) context.Context {
	return s.logg.WithOperation(s.logg.WithSessionID(ctx, s.id), op)
}

func emptyCart() storefront.Cart {
	return storefront.Cart{Items: []storefront.CartItem{}}
}

func copyCart(c storefront.Cart) storefront.Cart {
	out := storefront.Cart{Items: make([]storefront.CartItem, len(c.Items))}
	copy(out.Items, c.Items)
	if c.Total != nil {
		total := *c.Total
		out.Total = &total
	}
	return out
}
