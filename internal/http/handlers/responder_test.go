package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mlb-scoreboard/internal/testutil"
)

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()

	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	var body errorResponse
	testutil.DecodeJSON(t, rr, &body)
	if body.Error != "boom" || body.RequestID != "abc123" {
		t.Fatalf("unexpected error body %+v", body)
	}
}

func TestWriteErrorOmitsMissingRequestID(t *testing.T) {
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "gone", nil)
	}), http.MethodGet, "/missing", nil)

	if strings.Contains(rr.Body.String(), "requestId") {
		t.Fatalf("expected requestId omitted, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, make(chan int), logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if !strings.Contains(buf.String(), "failed to encode response") {
		t.Fatalf("expected logger to record encode error, got %q", buf.String())
	}
}

func TestRequireMethodSetsAllow(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/board", nil)
	if requireMethod(rr, req, http.MethodGet, nil) {
		t.Fatalf("expected PUT to be rejected")
	}
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
	if got := rr.Header().Get("Allow"); got != http.MethodGet {
		t.Fatalf("expected Allow header GET, got %q", got)
	}
}
