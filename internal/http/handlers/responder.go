package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"mlb-scoreboard/internal/http/middleware"
	"mlb-scoreboard/internal/logging"
)

const contentTypeJSON = "application/json"

// errorResponse is the body of every non-2xx JSON reply.
type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(payload)
	if err != nil && logger != nil {
		logger.Error("failed to encode response", logging.FieldStatusCode, status, "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	id := middleware.RequestIDFromContext(r.Context())
	if id == "" {
		id = r.Header.Get(middleware.HeaderRequestID)
	}
	writeJSON(w, status, errorResponse{Error: message, RequestID: id}, logger)
}

// requireMethod answers 405 with an Allow header unless r uses method.
func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method != method {
		w.Header().Set("Allow", method)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
		return false
	}
	return true
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
