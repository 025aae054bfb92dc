package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestIDValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "valid_123")
	if got := requestID(req); got != "valid_123" {
		t.Fatalf("expected pass-through, got %s", got)
	}

	req.Header.Set(HeaderRequestID, strings.Repeat("x", 65))
	if got := requestID(req); len(got) != 16 {
		t.Fatalf("expected generated hex id for an oversized header, got %q", got)
	}
}

func TestNewRequestIDFallsBackWhenRandFails(t *testing.T) {
	orig := randRead
	defer func() { randRead = orig }()
	randRead = func([]byte) (int, error) { return 0, errors.New("no entropy") }

	if got := newRequestID(); len(got) < 2 || got[0] != 't' {
		t.Fatalf("expected time-based fallback id, got %q", got)
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	req.Header.Set("X-Real-IP", "7.7.7.7")
	if got := ClientIP(req); got != "1.2.3.4" {
		t.Fatalf("expected first forwarded address, got %s", got)
	}

	req.Header.Del("X-Forwarded-For")
	if got := ClientIP(req); got != "7.7.7.7" {
		t.Fatalf("expected X-Real-IP, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "9.9.9.9:1234"
	if got := ClientIP(req); got != "9.9.9.9" {
		t.Fatalf("expected remote host without port, got %s", got)
	}

	req.RemoteAddr = "pipe"
	if got := ClientIP(req); got != "pipe" {
		t.Fatalf("expected raw remote addr when it has no port, got %s", got)
	}
}

func TestRequestIDFromContext(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}
	ctx := withRequestID(context.Background(), "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
	var nilCtx context.Context
	if got := RequestIDFromContext(nilCtx); got != "" {
		t.Fatalf("expected empty id for nil context, got %s", got)
	}
}
