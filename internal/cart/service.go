// Package cart owns the per-session cart held by the reference backend.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/types"
)

const maxSessionIDLength = 128

// Service defines the cart mutations exposed over HTTP. Every method returns
// the full cart after the change.
type Service interface {
	Get(ctx context.Context, sessionID string) (storefront.Cart, error)
	Add(ctx context.Context, sessionID string, productID types.ProductID, quantity int) (storefront.Cart, error)
	Remove(ctx context.Context, sessionID string, productID types.ProductID) (storefront.Cart, error)
	Update(ctx context.Context, sessionID string, productID types.ProductID, quantity int) (storefront.Cart, error)
	Clear(ctx context.Context, sessionID string) (storefront.Cart, error)
}

type service struct {
	repo    Repository
	catalog products.Repository
}

func NewService(repo Repository, catalog products.Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo, catalog: catalog}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (storefront.Cart, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return storefront.Cart{}, err
	}
	return s.load(ctx, sessionID)
}

func (s *service) Add(ctx context.Context, sessionID string, productID types.ProductID, quantity int) (storefront.Cart, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return storefront.Cart{}, err
	}
	if quantity < 1 {
		return storefront.Cart{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]string{"quantity": "must be at least 1"})
	}
	id, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return storefront.Cart{}, err
	}
	if err := s.repo.Increment(ctx, sessionID, id, quantity); err != nil {
		return storefront.Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}
	return s.load(ctx, sessionID)
}

func (s *service) Remove(ctx context.Context, sessionID string, productID types.ProductID) (storefront.Cart, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return storefront.Cart{}, err
	}
	id, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return storefront.Cart{}, err
	}
	if err := s.repo.Delete(ctx, sessionID, id); err != nil {
		return storefront.Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	return s.load(ctx, sessionID)
}

// Update sets the exact quantity; zero or below removes the line.
func (s *service) Update(ctx context.Context, sessionID string, productID types.ProductID, quantity int) (storefront.Cart, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return storefront.Cart{}, err
	}
	id, err := s.resolveProduct(ctx, productID)
	if err != nil {
		return storefront.Cart{}, err
	}
	if quantity <= 0 {
		err = s.repo.Delete(ctx, sessionID, id)
	} else {
		err = s.repo.Set(ctx, sessionID, id, quantity)
	}
	if err != nil {
		return storefront.Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	return s.load(ctx, sessionID)
}

func (s *service) Clear(ctx context.Context, sessionID string) (storefront.Cart, error) {
	sessionID, err := normalizeSessionID(sessionID)
	if err != nil {
		return storefront.Cart{}, err
	}
	if err := s.repo.Clear(ctx, sessionID); err != nil {
		return storefront.Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return s.load(ctx, sessionID)
}

func (s *service) load(ctx context.Context, sessionID string) (storefront.Cart, error) {
	rows, err := s.repo.List(ctx, sessionID)
	if err != nil {
		return storefront.Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return ToDTO(rows), nil
}

func (s *service) resolveProduct(ctx context.Context, productID types.ProductID) (int64, error) {
	id, ok := productID.Int64()
	if !ok {
		return 0, productNotFound(productID)
	}
	if _, err := s.catalog.Get(ctx, id); err != nil {
		if errors.Is(err, products.ErrNotFound) {
			return 0, productNotFound(productID)
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
	}
	return id, nil
}

func productNotFound(productID types.ProductID) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
		WithDetails(map[string]any{"productId": productID.String()})
}

func normalizeSessionID(sessionID string) (string, error) {
	trimmed := strings.TrimSpace(sessionID)
	switch {
	case trimmed == "":
		return "", pkgerrors.New(pkgerrors.CodeValidation, "sessionId is required").
			WithDetails(map[string]string{"sessionId": "is required"})
	case len(trimmed) > maxSessionIDLength:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "sessionId is too long").
			WithDetails(map[string]string{"sessionId": fmt.Sprintf("must be at most %d", maxSessionIDLength)})
	}
	return trimmed, nil
}
