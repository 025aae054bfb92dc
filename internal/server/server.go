package server

import (
	"context"
	"log/slog"
	"net/http"

	"mlb-scoreboard/internal/app/scoreboard"
	"mlb-scoreboard/internal/config"
	httpserver "mlb-scoreboard/internal/http"
	"mlb-scoreboard/internal/http/handlers"
	"mlb-scoreboard/internal/http/middleware"
	"mlb-scoreboard/internal/logging"
	"mlb-scoreboard/internal/metrics"
	"mlb-scoreboard/internal/poller"
	"mlb-scoreboard/internal/store"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.BoardStore
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	closers       []func()
}

// New constructs a server that rebuilds the board from the configured provider.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, nil)

	pipeline, err := scoreboard.NewPipeline(cfg, logger, recorder)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, err
	}
	if logger != nil {
		logger.Info("board pipeline ready",
			slog.String(logging.FieldProvider, pipeline.Provider()),
			slog.String(logging.FieldTimezone, pipeline.Location().String()),
		)
	}

	srv := newServerWithBuilder(cfg, logger, pipeline, recorder)
	srv.metricsServer = metricsSrv
	srv.metricsStop = metricsShutdown
	srv.closers = append(srv.closers, pipeline.Close)
	return srv, nil
}

func newServerWithBuilder(cfg config.Config, logger *slog.Logger, builder poller.Builder, recorder *metrics.Recorder) *Server {
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}
	boards := store.NewBoardStore()
	plr := poller.New(builder, boards, logger, recorder, cfg.RefreshInterval)
	httpSrv := buildHTTPServer(cfg, boards, plr, logger, recorder)

	return &Server{
		cfg:        cfg,
		logger:     logger,
		metrics:    recorder,
		store:      boards,
		httpServer: httpSrv,
		poller:     plr,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, boards handlers.BoardSource, plr Poller, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(boards, logger, statusFn)
	var admin *handlers.AdminHandler
	// The refresh endpoint only exists when a token is configured.
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(plr, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// Rate-limit tickers outlive the poller otherwise.
	for _, c := range s.closers {
		c()
	}
	s.closers = nil

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}
	if logger != nil && recCfg.Enabled {
		logger.Info("metrics ready", "port", recCfg.Port, "otlp_push", cfg.Metrics.PushEnabled())
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Refresh rebuilds the board once, outside the polling schedule.
func (s *Server) Refresh(ctx context.Context) error {
	return s.poller.Refresh(ctx)
}
