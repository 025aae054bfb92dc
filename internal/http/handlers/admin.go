package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"mlb-scoreboard/internal/http/middleware"
	"mlb-scoreboard/internal/logging"
)

// Refresher rebuilds the board on demand.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// AdminHandler exposes admin-only endpoints (e.g., forcing a board refresh).
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Refresh rebuilds the board immediately instead of waiting for the next tick.
// Guarded by a bearer token; returns 401 if missing or invalid.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(r.Context(), logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String(logging.FieldClientIP, middleware.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", logger)
		return
	}

	if err := h.refresher.Refresh(r.Context()); err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusServiceUnavailable
		}
		logging.Error(r.Context(), logger, "admin refresh failed", err)
		writeError(w, r, status, "board refresh failed", logger)
		return
	}

	logging.Info(r.Context(), logger, "admin refresh complete")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
