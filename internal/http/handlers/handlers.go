package handlers

import (
	"fmt"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"time"

	"mlb-scoreboard/internal/domain/games"
	"mlb-scoreboard/internal/logging"
	"mlb-scoreboard/internal/poller"
	"mlb-scoreboard/internal/timeutil"
)

// BoardSource exposes the most recently built board.
type BoardSource interface {
	Board() (games.Board, bool)
}

// Handler serves the board read surface and health probes.
type Handler struct {
	boards   BoardSource
	logger   *slog.Logger
	statusFn func() poller.Status
}

type boardResponse struct {
	Order   games.Order   `json:"order"`
	BuiltAt time.Time     `json:"builtAt"`
	Days    []dayResponse `json:"days"`
}

type dayResponse struct {
	Date  string         `json:"date"`
	Games []gameResponse `json:"games"`
}

type gameResponse struct {
	Title    string `json:"title"`
	Summary  string `json:"summary"`
	HasImage bool   `json:"hasImage"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// NewHandler constructs a Handler with defaults.
func NewHandler(boards BoardSource, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		boards:   boards,
		logger:   logger,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]any{
			"status": "ready",
			"days":   status.Days,
			"games":  status.Games,
		}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Board returns every day of the current board.
func (h *Handler) Board(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	board, ok := h.currentBoard(w, r)
	if !ok {
		return
	}

	resp := boardResponse{Order: board.Order, BuiltAt: board.BuiltAt, Days: make([]dayResponse, 0, len(board.Days))}
	for _, day := range board.Days {
		resp.Days = append(resp.Days, newDayResponse(day))
	}
	logging.Info(r.Context(), h.logger, "served board", logging.FieldCount, len(resp.Days))
	writeJSON(w, nethttp.StatusOK, resp, h.logger)
}

// BoardDay returns a single day, addressed as /board/days/{date}.
func (h *Handler) BoardDay(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	day, ok := h.lookupDay(w, r)
	if !ok {
		return
	}
	writeJSON(w, nethttp.StatusOK, newDayResponse(day), h.logger)
}

// GameImage serves the raw recap image of one game. Games without an image
// return 404; substituting a default is up to the client.
func (h *Handler) GameImage(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	day, ok := h.lookupDay(w, r)
	if !ok {
		return
	}
	idx, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || idx < 0 {
		writeError(w, r, nethttp.StatusBadRequest, "invalid game index", h.logger)
		return
	}
	if idx >= len(day.Games) {
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}
	record := day.Games[idx]
	if !record.HasImage() {
		writeError(w, r, nethttp.StatusNotFound, "no recap image", h.logger)
		return
	}

	w.Header().Set("Content-Type", nethttp.DetectContentType(record.Image))
	w.Header().Set("Content-Length", strconv.Itoa(len(record.Image)))
	w.WriteHeader(nethttp.StatusOK)
	if _, err := w.Write(record.Image); err != nil {
		logging.Warn(r.Context(), h.logger, "failed to write image", "error", err)
	}
}

func (h *Handler) currentBoard(w nethttp.ResponseWriter, r *nethttp.Request) (games.Board, bool) {
	if h.boards == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "board not configured", h.logger)
		return games.Board{}, false
	}
	board, ok := h.boards.Board()
	if !ok {
		writeError(w, r, nethttp.StatusServiceUnavailable, "board not loaded yet", h.logger)
		return games.Board{}, false
	}
	return board, true
}

func (h *Handler) lookupDay(w nethttp.ResponseWriter, r *nethttp.Request) (games.DaySchedule, bool) {
	date := r.PathValue("date")
	if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return games.DaySchedule{}, false
	}
	board, ok := h.currentBoard(w, r)
	if !ok {
		return games.DaySchedule{}, false
	}
	day, ok := board.Day(date)
	if !ok {
		logging.Info(r.Context(), h.logger, "day not on board", logging.FieldDate, date)
		writeError(w, r, nethttp.StatusNotFound, "day not on board", h.logger)
		return games.DaySchedule{}, false
	}
	return day, true
}

func newDayResponse(day games.DaySchedule) dayResponse {
	date := timeutil.FormatDate(day.Date)
	resp := dayResponse{Date: date, Games: make([]gameResponse, 0, len(day.Games))}
	for i, g := range day.Games {
		item := gameResponse{Title: g.Title, Summary: g.Summary, HasImage: g.HasImage()}
		if item.HasImage {
			item.ImageURL = fmt.Sprintf("/board/days/%s/games/%d/image", date, i)
		}
		resp.Games = append(resp.Games, item)
	}
	return resp
}
