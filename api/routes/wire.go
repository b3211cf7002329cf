package routes

import (
	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/internal/cart"
	checkoutsvc "github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
)

// Wire builds the services behind the router on a single database client.
func Wire(client *db.Client, logg *logger.Logger, m *metrics.HTTPMetrics) (Dependencies, error) {
	catalog := products.NewRepository(client.DB())
	cartRepo := cart.NewRepository(client.DB())
	orderRepo := orders.NewRepository(client.DB())

	productService, err := products.NewService(catalog)
	if err != nil {
		return Dependencies{}, err
	}
	cartService, err := cart.NewService(cartRepo, catalog)
	if err != nil {
		return Dependencies{}, err
	}
	checkoutService, err := checkoutsvc.NewService(client, cartRepo, orderRepo, logg)
	if err != nil {
		return Dependencies{}, err
	}
	orderService, err := orders.NewService(orderRepo)
	if err != nil {
		return Dependencies{}, err
	}

	return Dependencies{
		Products: productService,
		Cart:     cartService,
		Checkout: checkoutService,
		Orders:   orderService,
		Ready:    map[string]controllers.Pinger{"db": client},
		Metrics:  m,
	}, nil
}
