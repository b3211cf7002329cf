package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/angelmondragon/storefront/internal/storefront"
)

var defaultCORSOrigins = []string{
	"http://localhost:3000", // local storefront dev server
	"http://localhost:5173", // vite
}

// CORS applies the storefront's allowed origin policy. An empty list falls
// back to the local dev servers.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = defaultCORSOrigins
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", storefront.HeaderRequestID, storefront.HeaderSessionID, "X-Requested-With"},
		ExposedHeaders: []string{storefront.HeaderRequestID},
		MaxAge:         300,
	}).Handler
}
