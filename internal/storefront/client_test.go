package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.ClientMetrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := metrics.NewClientMetrics(prometheus.NewRegistry())
	client, err := NewClient(Options{
		BaseURL:   srv.URL + "/",
		UserAgent: "storefront-test",
		Metrics:   m,
	})
	require.NoError(t, err)
	return client, m
}

func writeRaw(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	_, err := NewClient(Options{})
	require.Error(t, err)

	_, err = NewClient(Options{BaseURL: "localhost:8080"})
	require.Error(t, err)
}

func TestListProductsDecodesMixedIDs(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.Equal(t, "storefront-test", r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get(HeaderRequestID))
		assert.Empty(t, r.Header.Get(HeaderSessionID))
		writeRaw(w, http.StatusOK, `{"success":true,"data":[
			{"_id":1,"name":"Classic Burger","price":8.99,"category":"burgers"},
			{"_id":"sku-2","name":"Fries","price":3.49,"category":"sides"}
		]}`)
	})

	products, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, types.ProductID("1"), products[0].ID)
	assert.Equal(t, types.ProductID("sku-2"), products[1].ID)
	assert.Equal(t, "$8.99", products[0].Price.Display())
}

func TestGetCartEscapesSessionID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/cart/a%2Fb", r.URL.EscapedPath())
		writeRaw(w, http.StatusOK, `{"success":true,"data":{"items":[]}}`)
	})

	cart, err := client.GetCart(context.Background(), "a/b")
	require.NoError(t, err)
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestAddItemSendsBody(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/cart/add", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "s-1", r.Header.Get(HeaderSessionID))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "s-1", body["sessionId"])
		assert.Equal(t, float64(7), body["productId"])
		assert.Equal(t, float64(2), body["quantity"])

		writeRaw(w, http.StatusOK, `{"success":true,"data":{"items":[
			{"productId":7,"quantity":2,"product":{"_id":7,"name":"Shake","price":4.99}}
		],"total":9.98}}`)
	})

	cart, err := client.AddItem(context.Background(), "s-1", "7", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.ItemCount())
	assert.Equal(t, "$9.98", cart.DisplayTotal().Display())
	assert.NotNil(t, cart.Total)
	assert.Equal(t, "$9.98", cart.Items[0].LineTotal().Display())
	assert.InDelta(t, 1, testutil.ToFloat64(mustCounter(t, m, OpAddItem, metrics.OutcomeSuccess)), 0)
}

func TestNon2xxIsHTTPStatusError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeRaw(w, http.StatusNotFound, `{"success":false,"message":"product not found","error":{"code":"NOT_FOUND","message":"resource not found"}}`)
	})

	_, err := client.RemoveItem(context.Background(), "s-1", "99")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeHTTPStatus))
	assert.Equal(t, http.StatusNotFound, StatusCode(err))

	details, ok := pkgerrors.As(err).Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, OpRemoveItem, details["op"])
	assert.Equal(t, "product not found", details["message"])
	assert.Equal(t, "NOT_FOUND", details["backend_code"])
}

func TestNon2xxWithSuccessBodyIsStillFailure(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeRaw(w, http.StatusInternalServerError, `{"success":true,"data":{"items":[
			{"productId":1,"quantity":3,"product":{"_id":1,"name":"Classic Burger","price":8.99}}
		],"total":26.97}}`)
	})

	cart, err := client.AddItem(context.Background(), "s-1", "1", 1)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeHTTPStatus, pkgerrors.CodeOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
	assert.Nil(t, cart.Items)
	assert.InDelta(t, 1, testutil.ToFloat64(mustCounter(t, m, OpAddItem, metrics.OutcomeHTTPError)), 0)
}

func TestTextIDsAreSentBackQuoted(t *testing.T) {
	var sent []map[string]json.RawMessage
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var body map[string]json.RawMessage
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			sent = append(sent, body)
		}
		writeRaw(w, http.StatusOK, `{"success":true,"data":{"items":[
			{"productId":"12","quantity":1,"product":{"_id":"12","name":"Fries","price":3.49}}
		]}}`)
	})
	ctx := context.Background()

	cart, err := client.GetCart(ctx, "s-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	id := cart.Items[0].ProductID
	assert.Equal(t, "12", id.String())

	_, err = client.UpdateQuantity(ctx, "s-1", id, 2)
	require.NoError(t, err)
	_, err = client.RemoveItem(ctx, "s-1", id)
	require.NoError(t, err)

	require.Len(t, sent, 2)
	for _, body := range sent {
		assert.Equal(t, `"12"`, string(body["productId"]))
	}
}

func TestNon2xxWithUnreadableBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeRaw(w, http.StatusInternalServerError, `<html>oops</html>`)
	})

	_, err := client.ClearCart(context.Background(), "s-1")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeHTTPStatus, pkgerrors.CodeOf(err))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))
}

func TestMalformedResponses(t *testing.T) {
	cases := map[string]string{
		"invalid json": `{"success":true,"data":`,
		"missing data": `{"success":true}`,
		"null data":    `{"success":true,"data":null}`,
		"wrong shape":  `{"success":true,"data":"nope"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				writeRaw(w, http.StatusOK, body)
			})
			_, err := client.UpdateQuantity(context.Background(), "s-1", "1", 3)
			require.Error(t, err)
			assert.Equal(t, pkgerrors.CodeMalformedResponse, pkgerrors.CodeOf(err))
			assert.InDelta(t, 1, testutil.ToFloat64(mustCounter(t, m, OpUpdateQuantity, metrics.OutcomeMalformed)), 0)
		})
	}
}

func TestSuccessFalseOn2xxStillApplies(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeRaw(w, http.StatusOK, `{"success":false,"data":{"items":[{"productId":1,"quantity":1,"product":{"_id":1,"price":1}}]}}`)
	})

	cart, err := client.GetCart(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestTransportFailure(t *testing.T) {
	client, err := NewClient(Options{BaseURL: "http://storefront.invalid", HTTPClient: failingDoer{}})
	require.NoError(t, err)

	_, err = client.GetCart(context.Background(), "s-1")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeTransport, pkgerrors.CodeOf(err))
	assert.True(t, pkgerrors.MetadataFor(pkgerrors.CodeOf(err)).Retryable)
	assert.Zero(t, StatusCode(err))
}

func TestCheckoutDecodesOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/checkout", r.URL.Path)
		var body checkoutRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "s-1", body.SessionID)
		assert.Equal(t, "ada@example.com", body.CustomerInfo.Email)
		writeRaw(w, http.StatusOK, `{"success":true,"message":"Order placed","data":{
			"id":"ord-1","estimatedTime":"25-35 minutes","items":[],"total":12.5,
			"customerInfo":{"name":"Ada","email":"ada@example.com","phone":"555","address":"1 Main"}
		}}`)
	})

	order, err := client.Checkout(context.Background(), "s-1", CustomerInfo{
		Name: "Ada", Email: "ada@example.com", Phone: "555", Address: "1 Main",
	})
	require.NoError(t, err)
	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, "25-35 minutes", order.EstimatedTime)
	assert.Equal(t, "$12.50", order.Total.Display())
}

func TestCheckoutWithoutOrderIDIsMalformed(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeRaw(w, http.StatusOK, `{"success":true,"data":{"estimatedTime":"soon"}}`)
	})

	_, err := client.Checkout(context.Background(), "s-1", CustomerInfo{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeMalformedResponse, pkgerrors.CodeOf(err))
}

func TestGetOrderAndListOrders(t *testing.T) {
	client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		order := `{"id":"o-1","estimatedTime":"20-30 minutes","items":[],"customerInfo":{"name":"A","email":"a@b.com","phone":"555","address":"X"},"total":2.99}`
		switch r.URL.Path {
		case "/api/orders/o-1":
			assert.Empty(t, r.Header.Get(HeaderSessionID))
			writeRaw(w, http.StatusOK, `{"success":true,"data":`+order+`}`)
		case "/api/orders":
			assert.Equal(t, "s 1", r.URL.Query().Get("sessionId"))
			assert.Equal(t, "s 1", r.Header.Get(HeaderSessionID))
			writeRaw(w, http.StatusOK, `{"success":true,"data":[`+order+`]}`)
		default:
			writeRaw(w, http.StatusNotFound, `{"success":false,"message":"order not found","error":{"code":"NOT_FOUND","message":"order not found"}}`)
		}
	})
	ctx := context.Background()

	order, err := client.GetOrder(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "o-1", order.ID)
	assert.Equal(t, "$2.99", order.Total.Display())

	list, err := client.ListOrders(ctx, "s 1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "o-1", list[0].ID)

	_, err = client.GetOrder(ctx, "nope")
	assert.Equal(t, pkgerrors.CodeHTTPStatus, pkgerrors.CodeOf(err))
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.InDelta(t, 1, testutil.ToFloat64(mustCounter(t, m, OpGetOrder, metrics.OutcomeHTTPError)), 0)
}

func TestCustomerInfoValidate(t *testing.T) {
	valid := CustomerInfo{Name: " Ada ", Email: "ada@example.com", Phone: "555", Address: "1 Main"}
	require.NoError(t, valid.Validate())
	assert.Equal(t, "Ada", valid.Normalized().Name)

	blank := CustomerInfo{Name: "   ", Email: "not-an-email", Phone: "555", Address: "1 Main"}
	err := blank.Validate()
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestCartDisplayTotalFallsBackToLineSum(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ProductID: "1", Quantity: 2, Product: Product{Price: types.MustMoney("1.25")}},
		{ProductID: "2", Quantity: 1, Product: Product{Price: types.MustMoney("3.00")}},
	}}
	assert.Equal(t, "$5.50", cart.DisplayTotal().Display())
	item, ok := cart.Find("2")
	require.True(t, ok)
	assert.Equal(t, 1, item.Quantity)
	_, ok = cart.Find("3")
	assert.False(t, ok)
}

func mustCounter(t *testing.T, m *metrics.ClientMetrics, op, outcome string) prometheus.Collector {
	t.Helper()
	c, err := m.RequestCounter(op, outcome)
	require.NoError(t, err)
	return c
}
