package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/cart"
	checkoutsvc "github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

// Dependencies groups what the storefront API serves from.
type Dependencies struct {
	Products products.Service
	Cart     cart.Service
	Checkout checkoutsvc.Service
	Orders   orders.Service
	// Ready is pinged by /health/ready, keyed by dependency name.
	Ready   map[string]controllers.Pinger
	Metrics *metrics.HTTPMetrics
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Correlation(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.Recoverer(logg),
		middleware.CORS(cfg.Server.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Ready))
	})
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", controllers.ProductsList(deps.Products, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Post("/add", controllers.CartAdd(deps.Cart, logg))
			r.Post("/remove", controllers.CartRemove(deps.Cart, logg))
			r.Post("/update", controllers.CartUpdate(deps.Cart, logg))
			r.Post("/clear", controllers.CartClear(deps.Cart, logg))
			r.Get("/{sessionId}", controllers.CartGet(deps.Cart, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(deps.Orders, logg))
			r.Get("/{orderId}", controllers.OrderGet(deps.Orders, logg))
		})
	})

	return r
}
