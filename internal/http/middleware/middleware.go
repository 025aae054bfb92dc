package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mlb-scoreboard/internal/logging"
	"mlb-scoreboard/internal/metrics"
)

// LoggingMiddleware tags every request with an ID and a scoped logger, then
// logs and records the outcome.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := requestID(r)
		w.Header().Set(HeaderRequestID, reqID)

		logger := baseLogger.With(
			slog.String(logging.FieldRequestID, reqID),
			slog.String(logging.FieldMethod, r.Method),
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String(logging.FieldClientIP, ClientIP(r)),
		)
		ctx := withRequestID(logging.WithLogger(r.Context(), logger), reqID)

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r.WithContext(ctx))

		elapsed := time.Since(start)
		status := sw.Status()
		recorder.RecordHTTPRequest(r.Method, routeLabel(r.URL.Path), status, elapsed)

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.Log(ctx, level, "request complete",
			slog.Int(logging.FieldStatusCode, status),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
	})
}

// statusWriter remembers the status code written by the handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// Status defaults to 200 when the handler never wrote a header.
func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// routeLabel collapses path parameters so metrics keep a bounded label set.
func routeLabel(path string) string {
	rest, ok := strings.CutPrefix(path, "/board/days/")
	if !ok {
		return path
	}
	if strings.Contains(rest, "/games/") && strings.HasSuffix(rest, "/image") {
		return "/board/days/{date}/games/{index}/image"
	}
	return "/board/days/{date}"
}
