package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	cartsvc "github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/types"
)

const maxSessionParamLength = 128

type addItemRequest struct {
	SessionID string          `json:"sessionId" validate:"required"`
	ProductID types.ProductID `json:"productId" validate:"required"`
	Quantity  *int            `json:"quantity,omitempty" validate:"omitempty,min=1"`
}

type removeItemRequest struct {
	SessionID string          `json:"sessionId" validate:"required"`
	ProductID types.ProductID `json:"productId" validate:"required"`
}

type updateQuantityRequest struct {
	SessionID string          `json:"sessionId" validate:"required"`
	ProductID types.ProductID `json:"productId" validate:"required"`
	Quantity  *int            `json:"quantity" validate:"required"`
}

type clearCartRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

// CartGet serves GET /api/cart/{sessionId}.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := validators.SanitizeString(chi.URLParam(r, "sessionId"), maxSessionParamLength)
		ctx := logg.WithSessionID(r.Context(), sessionID)
		cart, err := svc.Get(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// CartAdd serves POST /api/cart/add. A missing quantity adds one unit.
func CartAdd(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity := 1
		if payload.Quantity != nil {
			quantity = *payload.Quantity
		}
		ctx := logg.WithSessionID(r.Context(), payload.SessionID)
		cart, err := svc.Add(ctx, payload.SessionID, payload.ProductID, quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, "Item added to cart", cart)
	}
}

// CartRemove serves POST /api/cart/remove.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload removeItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithSessionID(r.Context(), payload.SessionID)
		cart, err := svc.Remove(ctx, payload.SessionID, payload.ProductID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, "Item removed from cart", cart)
	}
}

// CartUpdate serves POST /api/cart/update.
func CartUpdate(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithSessionID(r.Context(), payload.SessionID)
		cart, err := svc.Update(ctx, payload.SessionID, payload.ProductID, *payload.Quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, "Cart updated", cart)
	}
}

// CartClear serves POST /api/cart/clear.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload clearCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithSessionID(r.Context(), payload.SessionID)
		cart, err := svc.Clear(ctx, payload.SessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, "Cart cleared", cart)
	}
}
