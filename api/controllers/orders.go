package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const maxOrderIDLength = 64

// OrderGet serves GET /api/orders/{orderId}.
func OrderGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID := validators.SanitizeString(chi.URLParam(r, "orderId"), maxOrderIDLength)
		ctx := logg.WithField(r.Context(), "order_id", orderID)
		order, err := svc.Get(ctx, orderID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// OrdersList serves GET /api/orders?sessionId=.
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := validators.SanitizeString(r.URL.Query().Get("sessionId"), maxSessionParamLength)
		ctx := logg.WithSessionID(r.Context(), sessionID)
		placed, err := svc.ListBySession(ctx, sessionID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, placed)
	}
}
