package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/validate"
)

type addRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(`{"sessionId":"s","quantity":1,"extra":true}`))
	var dest addRequest
	err := DecodeJSONBody(req, &dest)
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyRunsValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(`{"quantity":0}`))
	var dest addRequest
	err := DecodeJSONBody(req, &dest)
	fields := validate.FieldErrors(err)
	if fields["sessionId"] != "is required" {
		t.Fatalf("expected sessionId to be required, got %v", fields)
	}
	if fields["quantity"] == "" {
		t.Fatalf("expected quantity error, got %v", fields)
	}
}

func TestDecodeJSONBodySuccess(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/cart/add", strings.NewReader(`{"sessionId":"abc","quantity":2}`))
	var dest addRequest
	if err := DecodeJSONBody(req, &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.SessionID != "abc" || dest.Quantity != 2 {
		t.Fatalf("unexpected decode result %+v", dest)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  héllo world  ", 5); got != "héllo" {
		t.Fatalf("unexpected sanitize result %q", got)
	}
	if got := SanitizeString("  keep  ", 0); got != "keep" {
		t.Fatalf("unexpected sanitize result %q", got)
	}
}
