package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

func newRecorded(t *testing.T) (*Notifier, *Recorder) {
	t.Helper()
	rec := &Recorder{}
	n, err := New(rec, nil)
	require.NoError(t, err)
	return n, rec
}

func TestNewRequiresSink(t *testing.T) {
	_, err := New(nil, nil)
	require.Error(t, err)
}

func TestFailureMessagesPerOperation(t *testing.T) {
	n, rec := newRecorded(t)
	ctx := context.Background()
	boom := pkgerrors.New(pkgerrors.CodeTransport, "down")

	ops := []string{
		storefront.OpListProducts,
		storefront.OpAddItem,
		storefront.OpRemoveItem,
		storefront.OpUpdateQuantity,
		storefront.OpClearCart,
		storefront.OpCheckout,
	}
	for _, op := range ops {
		n.Failed(ctx, op, boom)
	}

	got := rec.All()
	require.Len(t, got, len(ops))
	assert.Equal(t, MsgProductsFailed, got[0].Message)
	assert.Equal(t, MsgAddFailed, got[1].Message)
	assert.Equal(t, MsgRemoveFailed, got[2].Message)
	assert.Equal(t, MsgUpdateFailed, got[3].Message)
	assert.Equal(t, MsgClearFailed, got[4].Message)
	assert.Equal(t, MsgCheckoutFailed, got[5].Message)
	for _, notification := range got {
		assert.Equal(t, LevelError, notification.Level)
	}
}

func TestValidationFailureListsFields(t *testing.T) {
	n, rec := newRecorded(t)
	err := storefront.CustomerInfo{Name: "A", Email: "nope", Address: "X"}.Validate()
	require.Error(t, err)

	n.Failed(context.Background(), storefront.OpCheckout, err)

	got := rec.All()
	require.Len(t, got, 1)
	assert.Equal(t, MsgCheckoutFailed+": email must be a valid email, phone is required", got[0].Message)
	assert.Equal(t, "is required", got[0].Fields["phone"])
}

func TestStaleAndNilErrorsAreSilent(t *testing.T) {
	n, rec := newRecorded(t)
	n.Failed(context.Background(), storefront.OpAddItem, nil)
	n.Failed(context.Background(), storefront.OpAddItem, pkgerrors.New(pkgerrors.CodeStaleResponse, "superseded"))
	assert.Empty(t, rec.All())
}

func TestOrderConfirmed(t *testing.T) {
	var buf bytes.Buffer
	n, err := New(NewWriterSink(&buf), nil)
	require.NoError(t, err)

	n.OrderConfirmed(context.Background(), storefront.Order{ID: "ord-9", EstimatedTime: "20-30 minutes"})
	assert.Equal(t, "[success] Order confirmed! Order ID: ord-9. Estimated time: 20-30 minutes\n", buf.String())
}

func TestLevelIsValid(t *testing.T) {
	assert.True(t, LevelError.IsValid())
	assert.False(t, Level("warning").IsValid())
}
