package http

import (
	nethttp "net/http"

	"mlb-scoreboard/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. The admin routes are only
// mounted when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) *nethttp.ServeMux {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/board", handler.Board)
	mux.HandleFunc("/board/days/{date}", handler.BoardDay)
	mux.HandleFunc("/board/days/{date}/games/{index}/image", handler.GameImage)
	if admin != nil {
		mux.HandleFunc("/admin/refresh", admin.Refresh)
	}
	return mux
}
