// Package notify turns cart and catalog outcomes into user-facing
// notifications. It never touches cart state.
package notify

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/angelmondragon/storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/validate"
)

// Level describes how a notification is presented.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

var validLevels = []Level{LevelSuccess, LevelError}

// IsValid reports whether the value is a known level.
func (l Level) IsValid() bool {
	for _, candidate := range validLevels {
		if candidate == l {
			return true
		}
	}
	return false
}

const (
	MsgProductsFailed = "Failed to Fetch All Product, Please try again later."
	MsgCartFailed     = "Failed to fetch cart"
	MsgAddFailed      = "Failed adding to cart"
	MsgRemoveFailed   = "Error removing from cart"
	MsgUpdateFailed   = "Error in updating quantity"
	MsgClearFailed    = "Failed in clearing cart!"
	MsgCheckoutFailed = "Failed processing order. Please try again."
	MsgOrderFailed    = "Failed to load order"
	MsgOrdersFailed   = "Failed to load order history"
)

var failureMessages = map[string]string{
	storefront.OpListProducts:   MsgProductsFailed,
	storefront.OpGetCart:        MsgCartFailed,
	storefront.OpAddItem:        MsgAddFailed,
	storefront.OpRemoveItem:     MsgRemoveFailed,
	storefront.OpUpdateQuantity: MsgUpdateFailed,
	storefront.OpClearCart:      MsgClearFailed,
	storefront.OpCheckout:       MsgCheckoutFailed,
	storefront.OpGetOrder:       MsgOrderFailed,
	storefront.OpListOrders:     MsgOrdersFailed,
}

// Notification is one message shown to the user.
type Notification struct {
	Level   Level
	Message string
	// Fields lists offending form fields for validation failures.
	Fields map[string]string
}

// Sink receives notifications for presentation.
type Sink interface {
	Notify(ctx context.Context, n Notification)
}

// Notifier maps operation outcomes onto a Sink.
type Notifier struct {
	sink Sink
	logg *logger.Logger
}

func New(sink Sink, logg *logger.Logger) (*Notifier, error) {
	if sink == nil {
		return nil, fmt.Errorf("notification sink required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Notifier{sink: sink, logg: logg}, nil
}

// Failed reports err for op. Validation failures name the offending fields;
// superseded responses are not shown since a newer result already landed.
func (n *Notifier) Failed(ctx context.Context, op string, err error) {
	if err == nil || pkgerrors.IsCode(err, pkgerrors.CodeStaleResponse) {
		return
	}
	message, ok := failureMessages[op]
	if !ok {
		message = "Something went wrong"
	}
	notification := Notification{Level: LevelError, Message: message}
	if fields := validate.FieldErrors(err); len(fields) > 0 {
		notification.Message = message + ": " + describeFields(fields)
		notification.Fields = fields
	}
	n.logg.Debug(n.logg.WithFields(ctx, map[string]any{
		"op":    op,
		"code":  string(pkgerrors.CodeOf(err)),
		"level": string(notification.Level),
	}), "notify.failure")
	n.sink.Notify(ctx, notification)
}

// OrderConfirmed reports a successful checkout.
func (n *Notifier) OrderConfirmed(ctx context.Context, order storefront.Order) {
	n.sink.Notify(ctx, Notification{
		Level:   LevelSuccess,
		Message: fmt.Sprintf("Order confirmed! Order ID: %s. Estimated time: %s", order.ID, order.EstimatedTime),
	})
}

func describeFields(fields map[string]string) string {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+fields[name])
	}
	return strings.Join(parts, ", ")
}

// WriterSink prints one line per notification.
type WriterSink struct {
	mu  sync.Mutex
	out io.Writer
}

func NewWriterSink(out io.Writer) *WriterSink {
	return &WriterSink{out: out}
}

func (s *WriterSink) Notify(_ context.Context, n Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "[%s] %s\n", n.Level, n.Message)
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu   sync.Mutex
	seen []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, n)
}

// All returns the notifications recorded so far, oldest first.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.seen))
	copy(out, r.seen)
	return out
}
