package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels recorded for each backend call.
const (
	OutcomeSuccess   = "success"
	OutcomeHTTPError = "http_error"
	OutcomeTransport = "transport_error"
	OutcomeMalformed = "malformed"
)

var errNotRegistered = errors.New("metrics not registered")

// ClientMetrics records storefront API calls made by the cart client.
type ClientMetrics struct {
	duration *prometheus.HistogramVec
	requests *prometheus.CounterVec
	stale    prometheus.Counter
}

// NewClientMetrics registers the client metrics on the provided registerer.
func NewClientMetrics(reg prometheus.Registerer) *ClientMetrics {
	if reg == nil {
		return &ClientMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Latency of storefront backend calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Storefront backend calls by operation and outcome.",
	}, []string{"op", "outcome"})
	stale := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "cart",
		Name:      "stale_responses_total",
		Help:      "Cart responses discarded because a newer one was already applied.",
	})
	reg.MustRegister(duration, requests, stale)
	return &ClientMetrics{
		duration: duration,
		requests: requests,
		stale:    stale,
	}
}

// Observe records one finished call.
func (c *ClientMetrics) Observe(op, outcome string, elapsed time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	op = normalizeLabel(op)
	c.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	c.requests.WithLabelValues(op, normalizeLabel(outcome)).Inc()
}

// IncStale counts a discarded out-of-order response.
func (c *ClientMetrics) IncStale() {
	if c == nil || c.stale == nil {
		return
	}
	c.stale.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}

// RequestCounter exposes the per-outcome counter for op.
func (c *ClientMetrics) RequestCounter(op, outcome string) (prometheus.Counter, error) {
	if c == nil || c.requests == nil {
		return nil, errNotRegistered
	}
	return c.requests.GetMetricWithLabelValues(normalizeLabel(op), normalizeLabel(outcome))
}

// StaleCounter exposes the discarded-response counter.
func (c *ClientMetrics) StaleCounter() (prometheus.Counter, error) {
	if c == nil || c.stale == nil {
		return nil, errNotRegistered
	}
	return c.stale, nil
}
