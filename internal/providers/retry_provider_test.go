package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"

	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/metrics"
)

type flakeyProvider struct {
	failures int
	err      error
	calls    int
}

func (f *flakeyProvider) FetchSchedule(ctx context.Context, date string) ([]games.Game, error) {
	_ = ctx
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, Wrap(ErrTransport, errors.New("boom"))
	}
	return []games.Game{{AwayTeam: "ok", HomeTeam: date}}, nil
}

func TestRetryingProviderRetriesAndSucceeds(t *testing.T) {
	fp := &flakeyProvider{failures: 2}
	rec := metrics.NewRecorder()
	rp := NewRetryingProvider(fp, nil, rec, "flakey", 3, time.Millisecond)

	result, err := rp.FetchSchedule(context.Background(), "2024-06-01")
	if err != nil {
		t.Fatalf("expected success, got error %v", err)
	}
	if len(result) != 1 || result[0].HomeTeam != "2024-06-01" {
		t.Fatalf("unexpected games %+v", result)
	}
	if fp.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", fp.calls)
	}
	snap := rec.Snapshot(metrics.SourceSchedule)
	if snap.Calls != 3 || snap.Errors != 2 {
		t.Fatalf("expected every attempt recorded, got %+v", snap)
	}
}

func TestRetryingProviderStopsAfterMaxAttempts(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Millisecond)

	_, err := rp.FetchSchedule(context.Background(), "2024-06-01")
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport error after retries, got %v", err)
	}
	if fp.calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", fp.calls)
	}
}

func TestRetryingProviderDoesNotRetrySchemaErrors(t *testing.T) {
	fp := &flakeyProvider{failures: 5, err: Wrap(ErrSchema, errors.New("bad json"))}
	rp := NewRetryingProvider(fp, nil, nil, "flakey", 3, time.Millisecond)

	_, err := rp.FetchSchedule(context.Background(), "2024-06-01")
	if !errors.Is(err, ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if fp.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", fp.calls)
	}
}

func TestRetryingProviderRecordsRateLimits(t *testing.T) {
	fp := &flakeyProvider{failures: 1, err: &RateLimitError{StatusCode: 429, RetryAfter: time.Second}}
	rec := metrics.NewRecorder()
	rp := NewRetryingProvider(fp, nil, rec, "flakey", 2, time.Millisecond)

	if _, err := rp.FetchSchedule(context.Background(), "2024-06-01"); err != nil {
		t.Fatalf("expected success after rate limit, got %v", err)
	}
	if got := rec.Snapshot(metrics.SourceSchedule).RateLimitHits; got != 1 {
		t.Fatalf("expected 1 rate limit hit, got %d", got)
	}
}

func TestRetryingProviderRespectsContextCancel(t *testing.T) {
	fp := &flakeyProvider{failures: 5}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 3, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rp.FetchSchedule(ctx, "2024-06-01")
	if err == nil {
		t.Fatal("expected context error")
	}
}

func TestRetryingProviderUsesCustomBackoff(t *testing.T) {
	fp := &flakeyProvider{failures: 1}
	rp := NewRetryingProvider(fp, nil, metrics.NewRecorder(), "flakey", 2, time.Hour).(*retryingProvider)

	calls := 0
	rp.newBackOff = func() backoff.BackOff {
		calls++
		return &backoff.ZeroBackOff{}
	}

	start := time.Now()
	if _, err := rp.FetchSchedule(context.Background(), "2024-06-01"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected custom backoff to be used once, got %d", calls)
	}
	if time.Since(start) > time.Second {
		t.Fatal("expected zero backoff to skip the hour-long delay")
	}
}
