// Package storefront is the typed HTTP client for the storefront catalog, cart
// and checkout endpoints. Every call is a single request with no retries; any
// non-2xx status or unreadable envelope is reported as a typed error.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/metrics"
	"github.com/angelmondragon/storefront/pkg/types"
)

// Correlation headers sent on every call. The backend logs both.
const (
	HeaderRequestID = "X-Request-Id"
	HeaderSessionID = "X-Session-Id"
)

const maxResponseSize = 4 << 20

// Operation names used in logs, metrics and error details.
const (
	OpListProducts   = "list_products"
	OpGetCart        = "get_cart"
	OpAddItem        = "add_item"
	OpRemoveItem     = "remove_item"
	OpUpdateQuantity = "update_quantity"
	OpClearCart      = "clear_cart"
	OpCheckout       = "checkout"
	OpGetOrder       = "get_order"
	OpListOrders     = "list_orders"
)

// Doer is satisfied by *http.Client.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Options configures a Client.
type Options struct {
	BaseURL string
	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient Doer
	// Timeout of zero leaves the transport default in place.
	Timeout   time.Duration
	UserAgent string
	Logger    *logger.Logger
	Metrics   *metrics.ClientMetrics
}

// Client talks to the storefront backend.
type Client struct {
	baseURL   *url.URL
	http      Doer
	userAgent string
	logg      *logger.Logger
	metrics   *metrics.ClientMetrics
}

func NewClient(opts Options) (*Client, error) {
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", opts.BaseURL)
	}

	doer := opts.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: opts.Timeout}
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}

	return &Client{
		baseURL:   base,
		http:      doer,
		userAgent: opts.UserAgent,
		logg:      logg,
		metrics:   opts.Metrics,
	}, nil
}

type addItemRequest struct {
	SessionID string          `json:"sessionId"`
	ProductID types.ProductID `json:"productId"`
	Quantity  int             `json:"quantity"`
}

type removeItemRequest struct {
	SessionID string          `json:"sessionId"`
	ProductID types.ProductID `json:"productId"`
}

type clearCartRequest struct {
	SessionID string `json:"sessionId"`
}

type checkoutRequest struct {
	SessionID    string       `json:"sessionId"`
	CustomerInfo CustomerInfo `json:"customerInfo"`
}

// ListProducts fetches the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, OpListProducts, "", http.MethodGet, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

// GetCart fetches the current cart for the session.
func (c *Client) GetCart(ctx context.Context, sessionID string) (Cart, error) {
	return c.cartCall(ctx, OpGetCart, sessionID, http.MethodGet, "/api/cart/"+url.PathEscape(sessionID), nil)
}

// AddItem asks the backend to add quantity units of productID.
func (c *Client) AddItem(ctx context.Context, sessionID string, productID types.ProductID, quantity int) (Cart, error) {
	return c.cartCall(ctx, OpAddItem, sessionID, http.MethodPost, "/api/cart/add", addItemRequest{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// RemoveItem deletes the line for productID.
func (c *Client) RemoveItem(ctx context.Context, sessionID string, productID types.ProductID) (Cart, error) {
	return c.cartCall(ctx, OpRemoveItem, sessionID, http.MethodPost, "/api/cart/remove", removeItemRequest{
		SessionID: sessionID,
		ProductID: productID,
	})
}

// UpdateQuantity sets the exact quantity; the backend decides what nonpositive values mean.
func (c *Client) UpdateQuantity(ctx context.Context, sessionID string, productID types.ProductID, quantity int) (Cart, error) {
	return c.cartCall(ctx, OpUpdateQuantity, sessionID, http.MethodPost, "/api/cart/update", addItemRequest{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
	})
}

// ClearCart deletes every line for the session.
func (c *Client) ClearCart(ctx context.Context, sessionID string) (Cart, error) {
	return c.cartCall(ctx, OpClearCart, sessionID, http.MethodPost, "/api/cart/clear", clearCartRequest{SessionID: sessionID})
}

// Checkout submits the session's cart with the customer's contact details.
func (c *Client) Checkout(ctx context.Context, sessionID string, info CustomerInfo) (Order, error) {
	var order Order
	err := c.do(ctx, OpCheckout, sessionID, http.MethodPost, "/api/checkout", checkoutRequest{
		SessionID:    sessionID,
		CustomerInfo: info,
	}, &order)
	if err != nil {
		return Order{}, err
	}
	if order.ID == "" {
		return Order{}, malformed(OpCheckout, 0, fmt.Errorf("order id missing"))
	}
	return order, nil
}

// GetOrder fetches a placed order by id.
func (c *Client) GetOrder(ctx context.Context, orderID string) (Order, error) {
	var order Order
	if err := c.do(ctx, OpGetOrder, "", http.MethodGet, "/api/orders/"+url.PathEscape(orderID), nil, &order); err != nil {
		return Order{}, err
	}
	if order.ID == "" {
		return Order{}, malformed(OpGetOrder, 0, fmt.Errorf("order id missing"))
	}
	return order, nil
}

// ListOrders fetches the session's orders, newest first.
func (c *Client) ListOrders(ctx context.Context, sessionID string) ([]Order, error) {
	var placed []Order
	path := "/api/orders?" + url.Values{"sessionId": {sessionID}}.Encode()
	if err := c.do(ctx, OpListOrders, sessionID, http.MethodGet, path, nil, &placed); err != nil {
		return nil, err
	}
	if placed == nil {
		placed = []Order{}
	}
	return placed, nil
}

func (c *Client) cartCall(ctx context.Context, op, sessionID, method, path string, body any) (Cart, error) {
	var cart Cart
	if err := c.do(ctx, op, sessionID, method, path, body, &cart); err != nil {
		return Cart{}, err
	}
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	return cart, nil
}

func (c *Client) do(ctx context.Context, op, sessionID, method, path string, body any, out any) (err error) {
	requestID := uuid.NewString()
	ctx = c.logg.WithFields(ctx, map[string]any{
		"op":         op,
		"request_id": requestID,
	})

	start := time.Now()
	outcome := metrics.OutcomeSuccess
	defer func() {
		if err != nil {
			outcome = outcomeFor(err)
			c.logg.Warn(c.logg.WithField(ctx, "error", err.Error()), "storefront.request.failed")
		}
		c.metrics.Observe(op, outcome, time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		payload, mErr := json.Marshal(body)
		if mErr != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, mErr, "encode request body").WithDetails(map[string]any{"op": op})
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL.String() + path
	req, rErr := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if rErr != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, rErr, "build request").WithDetails(map[string]any{"op": op})
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if sessionID != "" {
		req.Header.Set(HeaderSessionID, sessionID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.logg.Debug(ctx, "storefront.request.start")

	resp, dErr := c.http.Do(req)
	if dErr != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransport, dErr, op+" request failed").WithDetails(map[string]any{"op": op})
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp.StatusCode, raw)
	}
	if readErr != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTransport, readErr, op+" response read failed").WithDetails(map[string]any{"op": op, "status": resp.StatusCode})
	}

	var envelope types.RawEnvelope
	if jErr := json.Unmarshal(raw, &envelope); jErr != nil {
		return malformed(op, resp.StatusCode, jErr)
	}
	if !envelope.HasData() {
		return malformed(op, resp.StatusCode, fmt.Errorf("data missing from response"))
	}
	if !envelope.Success {
		c.logg.Warn(c.logg.WithField(ctx, "status", resp.StatusCode), "storefront.response.success_flag_false")
	}
	if jErr := json.Unmarshal(envelope.Data, out); jErr != nil {
		return malformed(op, resp.StatusCode, jErr)
	}

	c.logg.Debug(c.logg.WithFields(ctx, map[string]any{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	}), "storefront.request.complete")
	return nil
}

func statusError(op string, status int, raw []byte) error {
	details := map[string]any{"op": op, "status": status}
	var envelope types.ErrorEnvelope
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Message != "" {
			details["message"] = envelope.Message
		}
		if envelope.Error.Code != "" {
			details["backend_code"] = envelope.Error.Code
		}
		if envelope.Message == "" && envelope.Error.Message != "" {
			details["message"] = envelope.Error.Message
		}
	}
	return pkgerrors.New(pkgerrors.CodeHTTPStatus, fmt.Sprintf("%s returned HTTP status %d", op, status)).WithDetails(details)
}

func malformed(op string, status int, cause error) error {
	details := map[string]any{"op": op}
	if status != 0 {
		details["status"] = status
	}
	return pkgerrors.Wrap(pkgerrors.CodeMalformedResponse, cause, op+" response malformed").WithDetails(details)
}

func outcomeFor(err error) string {
	switch pkgerrors.CodeOf(err) {
	case pkgerrors.CodeHTTPStatus:
		return metrics.OutcomeHTTPError
	case pkgerrors.CodeMalformedResponse:
		return metrics.OutcomeMalformed
	default:
		return metrics.OutcomeTransport
	}
}

// StatusCode extracts the backend HTTP status carried by a storefront error, or 0.
func StatusCode(err error) int {
	typed := pkgerrors.As(err)
	if typed == nil {
		return 0
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		return 0
	}
	status, _ := details["status"].(int)
	return status
}
