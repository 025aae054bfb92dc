package statsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/providers"
	"mlb-scoreboard/internal/timeutil"
)

// Config controls how the Stats API client reaches the upstream API.
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	// Timeout bounds every individual request, schedule or image.
	Timeout time.Duration
}

// Client fetches schedules and recap images from the MLB Stats API.
// One Client is shared by every concurrent fetch.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
	timeout    time.Duration
}

// NewClient constructs a Stats API client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  cfg.UserAgent,
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		timeout:    resolveTimeout(cfg.Timeout),
	}
}

// FetchSchedule retrieves the games scheduled on date (YYYY-MM-DD) in upstream order.
func (c *Client) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildScheduleRequest(ctx, date)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req, maxScheduleBytes)
	if err != nil {
		return nil, err
	}

	return DecodeSchedule(body)
}

// DecodeSchedule parses a schedule endpoint payload into games.
// It is shared with replay providers that read recorded responses.
func DecodeSchedule(body []byte) ([]games.Game, error) {
	var payload scheduleResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, providers.Wrap(providers.ErrSchema, fmt.Errorf("decode schedule: %w", err))
	}
	return mapSchedule(payload)
}

// FetchImage retrieves the raw bytes at a recap image URL.
func (c *Client) FetchImage(ctx context.Context, rawURL string) ([]byte, error) {
	target, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, providers.Wrap(providers.ErrInvalidRequest, err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, providers.Wrap(providers.ErrInvalidRequest, fmt.Errorf("unsupported image url %q", rawURL))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, providers.Wrap(providers.ErrInvalidRequest, err)
	}
	c.decorate(req)

	img, err := c.do(req, maxImageBytes)
	if err != nil {
		return nil, err
	}
	if len(img) == 0 {
		return nil, providers.Wrap(providers.ErrResponse, errors.New("empty image body"))
	}
	return img, nil
}

func (c *Client) buildScheduleRequest(ctx context.Context, date string) (*http.Request, error) {
	if _, err := timeutil.ParseDate(date); err != nil {
		return nil, providers.Wrap(providers.ErrInvalidRequest, fmt.Errorf("schedule date %q: %w", date, err))
	}

	endpoint, err := url.Parse(c.baseURL + "/schedule")
	if err != nil {
		return nil, providers.Wrap(providers.ErrInvalidRequest, err)
	}
	q := endpoint.Query()
	q.Set("sportId", defaultSportID)
	q.Set("hydrate", scheduleHydrate)
	q.Set("date", date)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, providers.Wrap(providers.ErrInvalidRequest, err)
	}
	c.decorate(req)
	return req, nil
}

func (c *Client) decorate(req *http.Request) {
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}

// do executes req and returns a 2xx body. Bodies longer than limit are
// rejected rather than truncated.
func (c *Client) do(req *http.Request, limit int64) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, providers.Wrap(providers.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    "statsapi rate limited",
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyBytes))
		return nil, &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, providers.Wrap(providers.ErrResponse, err)
	}
	if int64(len(body)) > limit {
		return nil, providers.Wrap(providers.ErrResponse, fmt.Errorf("response body exceeds %d bytes", limit))
	}
	return body, nil
}
