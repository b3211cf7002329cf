package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/products"
	"github.com/angelmondragon/storefront/internal/storefront"
	"github.com/angelmondragon/storefront/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

type fixture struct {
	carts    cart.Service
	orders   orders.Repository
	checkout Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	client := dbtest.OpenSQLite(t)
	cartRepo := cart.NewRepository(client.DB())
	cartSvc, err := cart.NewService(cartRepo, products.NewRepository(client.DB()))
	require.NoError(t, err)
	orderRepo := orders.NewRepository(client.DB())
	svc, err := NewService(client, cartRepo, orderRepo, nil)
	require.NoError(t, err)
	return fixture{carts: cartSvc, orders: orderRepo, checkout: svc}
}

var customer = storefront.CustomerInfo{Name: "A", Email: "a@b.com", Phone: "555", Address: "X"}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.carts.Add(ctx, "s1", "1", 2)
	require.NoError(t, err)

	order, err := f.checkout.Checkout(ctx, "s1", customer)
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "20-30 minutes", order.EstimatedTime)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, "$17.98", order.Total.Display())
	assert.Equal(t, customer, order.CustomerInfo)

	remaining, err := f.carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, remaining.Items)

	stored, err := f.orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "s1", stored.SessionID)
}

func TestCheckoutEmptyCartIsStateConflict(t *testing.T) {
	f := newFixture(t)
	_, err := f.checkout.Checkout(context.Background(), "s1", customer)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeStateConflict, pkgerrors.CodeOf(err))
}

func TestCheckoutValidatesCustomer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.carts.Add(ctx, "s1", "1", 1)
	require.NoError(t, err)

	_, err = f.checkout.Checkout(ctx, "s1", storefront.CustomerInfo{Name: "A", Email: "nope", Phone: "555", Address: " "})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	still, err := f.carts.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, still.Items, 1)
}

func TestEstimatedTime(t *testing.T) {
	cases := map[int]string{
		0:   "20-30 minutes",
		1:   "20-30 minutes",
		3:   "20-30 minutes",
		4:   "25-35 minutes",
		7:   "30-40 minutes",
		100: "60-70 minutes",
	}
	for items, want := range cases {
		assert.Equal(t, want, EstimatedTime(items), "items=%d", items)
	}
}
