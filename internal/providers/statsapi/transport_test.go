package statsapi

import (
	"net/http"
	"testing"
	"time"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestResolveHTTPClientDefaults(t *testing.T) {
	doer := resolveHTTPClient(nil)
	client, ok := doer.(*http.Client)
	if !ok || client.Timeout != defaultHTTPTimeout {
		t.Fatalf("expected default client with timeout, got %#v", doer)
	}

	custom := &http.Client{}
	if resolveHTTPClient(custom) != custom {
		t.Fatal("expected custom client to be used")
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	if got := normalizeBaseURL(""); got != defaultBaseURL {
		t.Fatalf("expected default base url, got %s", got)
	}
	if got := normalizeBaseURL(" http://example.com/api/ "); got != "http://example.com/api" {
		t.Fatalf("expected trimmed base url, got %s", got)
	}
}

func TestResolveTimeout(t *testing.T) {
	if got := resolveTimeout(0); got != defaultHTTPTimeout {
		t.Fatalf("expected default timeout, got %s", got)
	}
	if got := resolveTimeout(time.Second); got != time.Second {
		t.Fatalf("expected explicit timeout, got %s", got)
	}
}

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter("30"); got != 30*time.Second {
		t.Fatalf("expected 30s, got %s", got)
	}
	if got := parseRetryAfter("Wed, 21 Oct 2015 07:28:00 GMT"); got != 0 {
		t.Fatalf("expected http-date form to be ignored, got %s", got)
	}
	if got := parseRetryAfter(""); got != 0 {
		t.Fatalf("expected empty header to be ignored, got %s", got)
	}
}
