package metrics

import (
	"sync"
	"time"
)

type sourceStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type aggregationStats struct {
	runs        int
	failures    int
	lastKept    int
	lastDropped int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about upstream fetches and
// aggregation runs, mirroring them to OpenTelemetry when configured.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*sourceStats
	aggregation aggregationStats
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*sourceStats),
		otel:  otel,
	}
}

// RecordFetchAttempt increments counters for an upstream call and stores the last observed latency.
// Safe for concurrent use from fan-out workers.
func (r *Recorder) RecordFetchAttempt(source string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(source)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFetchAttempt(source, duration, err)
	}
}

// RecordRateLimit tracks that an upstream response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(source string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(source)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(source, retryAfter)
	}
}

// RecordAggregation tracks one board build: how many days survived, how many were dropped.
func (r *Recorder) RecordAggregation(duration time.Duration, kept, dropped int, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.aggregation.runs++
	if err != nil {
		r.aggregation.failures++
	}
	r.aggregation.lastKept = kept
	r.aggregation.lastDropped = dropped
	r.aggregation.lastLatency = duration
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordAggregation(duration, kept, dropped, err)
	}
}

// Snapshot returns a copy of the current stats for a fetch source.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(source string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[source]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// AggregationSnapshot summarises board builds so far.
type AggregationSnapshot struct {
	Runs        int
	Failures    int
	LastKept    int
	LastDropped int
	LastLatency time.Duration
}

func (r *Recorder) Aggregation() AggregationSnapshot {
	if r == nil {
		return AggregationSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return AggregationSnapshot{
		Runs:        r.aggregation.runs,
		Failures:    r.aggregation.failures,
		LastKept:    r.aggregation.lastKept,
		LastDropped: r.aggregation.lastDropped,
		LastLatency: r.aggregation.lastLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordRefreshCycle tracks poller refresh cycles and errors.
func (r *Recorder) RecordRefreshCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordRefresh(duration, err)
}

func (r *Recorder) ensureStatsLocked(source string) *sourceStats {
	stats, ok := r.stats[source]
	if !ok {
		stats = &sourceStats{}
		r.stats[source] = stats
	}
	return stats
}
