package statsapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mlb-scoreboard/internal/providers"
)

const scheduleBody = `{
	"totalGames": 2,
	"dates": [
		{
			"date": "2024-06-01",
			"games": [
				{
					"gamePk": 745001,
					"gameDate": "2024-06-01T17:05:00Z",
					"teams": {
						"away": { "team": { "id": 147, "name": "New York Yankees" } },
						"home": { "team": { "id": 111, "name": "Boston Red Sox" } }
					},
					"content": {
						"editorial": {
							"recap": {
								"mlb": {
									"headline": "Yankees hold off Red Sox",
									"image": { "cuts": [ { "src": "https://img.mlbstatic.com/recap-1.jpg" } ] }
								}
							}
						}
					}
				},
				{
					"gamePk": 745002,
					"gameDate": "2024-06-01T23:10:00Z",
					"teams": {
						"away": { "team": { "id": 112, "name": "Chicago Cubs" } },
						"home": { "team": { "id": 138, "name": "St. Louis Cardinals" } }
					},
					"content": {}
				}
			]
		}
	]
}`

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestFetchScheduleHitsAPIAndMapsResponse(t *testing.T) {
	var captured *http.Request
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		captured = req
		return jsonResponse(http.StatusOK, scheduleBody), nil
	})

	client := NewClient(Config{
		BaseURL:    "http://example.com/api/v1/",
		UserAgent:  "scoreboard-test",
		HTTPClient: &http.Client{Transport: rt},
	})

	result, err := client.FetchSchedule(context.Background(), "2024-06-01")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if captured.URL.Path != "/api/v1/schedule" {
		t.Fatalf("expected /api/v1/schedule path, got %s", captured.URL.Path)
	}
	q := captured.URL.Query()
	if q.Get("date") != "2024-06-01" || q.Get("sportId") != "1" || q.Get("hydrate") != scheduleHydrate {
		t.Fatalf("unexpected query %s", captured.URL.RawQuery)
	}
	if got := captured.Header.Get("User-Agent"); got != "scoreboard-test" {
		t.Fatalf("expected user agent header, got %q", got)
	}
	if _, ok := captured.Context().Deadline(); !ok {
		t.Fatal("expected request to carry a deadline")
	}

	if len(result) != 2 {
		t.Fatalf("expected 2 games, got %d", len(result))
	}
	if result[0].Title() != "New York Yankees at Boston Red Sox" || result[1].Title() != "Chicago Cubs at St. Louis Cardinals" {
		t.Fatalf("expected upstream order preserved, got %q then %q", result[0].Title(), result[1].Title())
	}
	if result[0].Recap == nil || result[0].Recap.ImageURLs[0] != "https://img.mlbstatic.com/recap-1.jpg" {
		t.Fatalf("expected recap on first game, got %+v", result[0].Recap)
	}
	if result[1].Recap != nil {
		t.Fatalf("expected no recap on second game, got %+v", result[1].Recap)
	}
}

func TestFetchScheduleErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		rt   roundTripperFunc
		kind error
	}{
		{
			name: "transport",
			rt: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			kind: providers.ErrTransport,
		},
		{
			name: "non-2xx",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusBadGateway, "boom"), nil
			},
			kind: providers.ErrResponse,
		},
		{
			name: "schema",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"dates": "nope"}`), nil
			},
			kind: providers.ErrSchema,
		},
		{
			name: "truncated json",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"dates": [`), nil
			},
			kind: providers.ErrSchema,
		},
	}

	for _, tc := range cases {
		client := NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: tc.rt}})
		_, err := client.FetchSchedule(context.Background(), "2024-06-01")
		if !errors.Is(err, tc.kind) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.kind, err)
		}
	}
}

func TestFetchScheduleNon2xxCarriesStatus(t *testing.T) {
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusServiceUnavailable, "maintenance"), nil
	})
	client := NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: rt}})

	_, err := client.FetchSchedule(context.Background(), "2024-06-01")
	var statusErr *providers.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusServiceUnavailable || statusErr.Body != "maintenance" {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
}

func TestFetchScheduleRateLimited(t *testing.T) {
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		resp := jsonResponse(http.StatusTooManyRequests, "")
		resp.Header.Set("Retry-After", "12")
		return resp, nil
	})
	client := NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: rt}})

	_, err := client.FetchSchedule(context.Background(), "2024-06-01")
	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rl.RetryAfter != 12*time.Second {
		t.Fatalf("expected retry-after 12s, got %s", rl.RetryAfter)
	}
}

func TestFetchScheduleRejectsMalformedRequests(t *testing.T) {
	called := false
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		called = true
		return jsonResponse(http.StatusOK, scheduleBody), nil
	})

	client := NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: rt}})
	if _, err := client.FetchSchedule(context.Background(), "06/01/2024"); !errors.Is(err, providers.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for bad date, got %v", err)
	}

	badBase := NewClient(Config{BaseURL: "http://bad host", HTTPClient: &http.Client{Transport: rt}})
	if _, err := badBase.FetchSchedule(context.Background(), "2024-06-01"); !errors.Is(err, providers.ErrInvalidRequest) {
		t.Fatalf("expected invalid request for bad base url, got %v", err)
	}

	if called {
		t.Fatal("expected no request to be sent")
	}
}

func TestFetchScheduleOffDay(t *testing.T) {
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"totalGames": 0, "dates": []}`), nil
	})
	client := NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: rt}})

	result, err := client.FetchSchedule(context.Background(), "2024-12-25")
	if err != nil {
		t.Fatalf("expected off day to succeed, got %v", err)
	}
	if len(result) != 0 {
		t.Fatalf("expected no games, got %d", len(result))
	}
}

func TestFetchScheduleTimesOut(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})
	client := NewClient(Config{
		BaseURL:    "http://example.com",
		HTTPClient: &http.Client{Transport: rt},
		Timeout:    20 * time.Millisecond,
	})

	start := time.Now()
	_, err := client.FetchSchedule(context.Background(), "2024-06-01")
	if !errors.Is(err, providers.ErrTransport) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected transport deadline error, got %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Fatal("expected the per-call timeout to bound the request")
	}
}

func TestFetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.jpg":
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte{0xff, 0xd8, 0xff, 0xe0})
		case "/empty.jpg":
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(Config{HTTPClient: srv.Client()})

	img, err := client.FetchImage(context.Background(), srv.URL+"/ok.jpg")
	if err != nil {
		t.Fatalf("expected image, got %v", err)
	}
	if len(img) != 4 || img[0] != 0xff {
		t.Fatalf("unexpected image bytes %v", img)
	}

	if _, err := client.FetchImage(context.Background(), srv.URL+"/empty.jpg"); !errors.Is(err, providers.ErrResponse) {
		t.Fatalf("expected empty body to be a response error, got %v", err)
	}
	if _, err := client.FetchImage(context.Background(), srv.URL+"/missing.jpg"); !errors.Is(err, providers.ErrResponse) {
		t.Fatalf("expected 404 to be a response error, got %v", err)
	}
	if _, err := client.FetchImage(context.Background(), "ftp://example.com/a.jpg"); !errors.Is(err, providers.ErrInvalidRequest) {
		t.Fatalf("expected unsupported scheme to be invalid, got %v", err)
	}
	if _, err := client.FetchImage(context.Background(), "http://bad host/a.jpg"); !errors.Is(err, providers.ErrInvalidRequest) {
		t.Fatalf("expected malformed url to be invalid, got %v", err)
	}
}

func TestFetchImageRejectsOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		size := maxImageBytes
		if r.URL.Path == "/huge.jpg" {
			size += 1024
		}
		_, _ = w.Write(make([]byte, size))
	}))
	defer srv.Close()

	client := NewClient(Config{HTTPClient: srv.Client()})

	img, err := client.FetchImage(context.Background(), srv.URL+"/huge.jpg")
	if !errors.Is(err, providers.ErrResponse) || img != nil {
		t.Fatalf("expected oversized image to fail with a response error, got %d bytes, err %v", len(img), err)
	}
	img, err = client.FetchImage(context.Background(), srv.URL+"/limit.jpg")
	if err != nil || len(img) != maxImageBytes {
		t.Fatalf("expected image at the limit to succeed, got %d bytes, err %v", len(img), err)
	}
}

func TestFetchScheduleRejectsOversizedBody(t *testing.T) {
	rt := roundTripperFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, strings.Repeat(" ", maxScheduleBytes+1)), nil
	})
	client := NewClient(Config{BaseURL: "http://example.com", HTTPClient: &http.Client{Transport: rt}})

	_, err := client.FetchSchedule(context.Background(), "2024-06-01")
	if !errors.Is(err, providers.ErrResponse) || errors.Is(err, providers.ErrSchema) {
		t.Fatalf("expected oversized schedule to be a response error, got %v", err)
	}
}
