package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Service reads back placed orders.
type Service interface {
	Get(ctx context.Context, id string) (storefront.Order, error)
	ListBySession(ctx context.Context, sessionID string) ([]storefront.Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id string) (storefront.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return storefront.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "order id is required").
			WithDetails(map[string]string{"id": "is required"})
	}
	row, err := s.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return storefront.Order{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "order not found").
			WithDetails(map[string]any{"id": id})
	}
	if err != nil {
		return storefront.Order{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return ToDTO(*row), nil
}

// ListBySession returns the session's orders newest first; none is an empty slice.
func (s *service) ListBySession(ctx context.Context, sessionID string) ([]storefront.Order, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sessionId is required").
			WithDetails(map[string]string{"sessionId": "is required"})
	}
	rows, err := s.repo.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	out := make([]storefront.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToDTO(row))
	}
	return out, nil
}
