package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront/api/responses"
	"github.com/angelmondragon/storefront/api/validators"
	checkoutsvc "github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const maxCustomerFieldLength = 256

type checkoutRequest struct {
	SessionID    string                  `json:"sessionId" validate:"required"`
	CustomerInfo storefront.CustomerInfo `json:"customerInfo" validate:"required"`
}

// Checkout serves POST /api/checkout.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		info := storefront.CustomerInfo{
			Name:    validators.SanitizeString(payload.CustomerInfo.Name, maxCustomerFieldLength),
			Email:   validators.SanitizeString(payload.CustomerInfo.Email, maxCustomerFieldLength),
			Phone:   validators.SanitizeString(payload.CustomerInfo.Phone, maxCustomerFieldLength),
			Address: validators.SanitizeString(payload.CustomerInfo.Address, maxCustomerFieldLength),
		}
		ctx := logg.WithSessionID(r.Context(), payload.SessionID)
		order, err := svc.Checkout(ctx, payload.SessionID, info)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusOK, "Order placed successfully", order)
	}
}
