// Package checkout converts a session's cart into a confirmed order.
package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service places orders.
type Service interface {
	Checkout(ctx context.Context, sessionID string, info storefront.CustomerInfo) (storefront.Order, error)
}

type service struct {
	tx     txRunner
	carts  cart.Repository
	orders orders.Repository
	logg   *logger.Logger
	newID  func() string
}

func NewService(tx txRunner, carts cart.Repository, orderRepo orders.Repository, logg *logger.Logger) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if orderRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{tx: tx, carts: carts, orders: orderRepo, logg: logg, newID: uuid.NewString}, nil
}

// Checkout snapshots the cart, persists the order and empties the cart in one
// transaction. An empty cart is a state conflict.
func (s *service) Checkout(ctx context.Context, sessionID string, info storefront.CustomerInfo) (storefront.Order, error) {
	if sessionID == "" {
		return storefront.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "sessionId is required").
			WithDetails(map[string]string{"sessionId": "is required"})
	}
	info = info.Normalized()
	if err := info.Validate(); err != nil {
		return storefront.Order{}, err
	}

	var placed models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.carts.WithTx(tx).List(ctx, sessionID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart").WithDetails(map[string]any{"step": "load_cart"})
		}
		if len(rows) == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty").
				WithDetails(map[string]any{"sessionId": sessionID})
		}

		lines, total := orders.LinesFromCart(rows)
		placed = models.Order{
			ID:              s.newID(),
			SessionID:       sessionID,
			CustomerName:    info.Name,
			CustomerEmail:   info.Email,
			CustomerPhone:   info.Phone,
			CustomerAddress: info.Address,
			Items:           lines,
			Total:           total,
			EstimatedTime:   EstimatedTime(itemCount(rows)),
		}
		if err := s.orders.WithTx(tx).Create(ctx, &placed); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order").WithDetails(map[string]any{"step": "create_order"})
		}
		if err := s.carts.WithTx(tx).Clear(ctx, sessionID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart").WithDetails(map[string]any{"step": "clear_cart"})
		}
		return nil
	})
	if err != nil {
		return storefront.Order{}, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id":   placed.ID,
		"session_id": sessionID,
		"total":      placed.Total.StringFixed(2),
	}), "checkout.order_placed")
	return orders.ToDTO(placed), nil
}

func itemCount(rows []models.CartItem) int {
	n := 0
	for _, row := range rows {
		n += row.Quantity
	}
	return n
}
