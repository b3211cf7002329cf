package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront/api/validators"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/logger"
)

const maxCorrelationIDLength = 128

// Correlation puts the caller's request id and cart session on the request
// context. Cart mutations carry the session only in their body, so the
// X-Session-Id header sent by the storefront client is what ties their log
// lines to a cart. A missing request id is minted; either way it is echoed.
func Correlation(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := validators.SanitizeString(r.Header.Get(storefront.HeaderRequestID), maxCorrelationIDLength)
			if reqID == "" {
				reqID = uuid.NewString()
			}
			w.Header().Set(storefront.HeaderRequestID, reqID)

			ctx := logg.WithRequestID(r.Context(), reqID)
			if sessionID := validators.SanitizeString(r.Header.Get(storefront.HeaderSessionID), maxCorrelationIDLength); sessionID != "" {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
