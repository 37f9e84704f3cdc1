package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/rs/cors"

	"readstudy/internal/auth"
	"readstudy/internal/config"
	"readstudy/internal/logging"
	"readstudy/internal/results"
	"readstudy/internal/session"
	"readstudy/internal/volume"
)

// Server is the read-study HTTP API. It owns no domain state of its own;
// every handler works through the stores and registries passed to New.
type Server struct {
	bind     string
	logger   *slog.Logger
	cfg      *config.Config
	store    *results.Store
	library  volume.Library
	sessions *auth.Registry
	caches   *session.Manager
	started  time.Time

	listener net.Listener
	server   *http.Server
}

// New assembles the API server. It does not start listening.
func New(cfg *config.Config, store *results.Store, library volume.Library, sessions *auth.Registry, caches *session.Manager, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: config is required")
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, errors.New("server: api_bind is required")
	}

	srv := &Server{
		bind:     bind,
		logger:   logger,
		cfg:      cfg,
		store:    store,
		library:  library,
		sessions: sessions,
		caches:   caches,
		started:  time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", srv.handleStatus)
	mux.HandleFunc("/api/window-presets", srv.handleWindowPresets)
	mux.HandleFunc("/api/auth/login", srv.handleLogin)
	mux.HandleFunc("/api/auth/logout", srv.requireSession(srv.handleLogout))
	mux.HandleFunc("/api/auth/status", srv.requireSession(srv.handleAuthStatus))
	mux.HandleFunc("/api/patients", srv.requireSession(srv.handlePatients))
	mux.HandleFunc("/api/patients/", srv.requireSession(srv.handlePatientInfo))
	mux.HandleFunc("/api/patients/slice", srv.requireSession(srv.handleSlice))
	mux.HandleFunc("/api/analysis/submit", srv.requireSession(srv.handleSubmit))
	mux.HandleFunc("/api/analysis/patients/", srv.requireSession(srv.handlePatientResults))

	srv.server = &http.Server{
		Handler:           cors.AllowAll().Handler(mux),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Start begins serving in the background. The server shuts down when ctx
// is cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down, waiting briefly for in-flight requests.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr returns the bound listen address, or the configured bind string
// before Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.bind
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String("component", "api-server"))
	}
	return logging.NewNop()
}
