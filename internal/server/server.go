package server

import (
	"context"
	"fmt"
	"net/http"

	"bookshelf/internal/config"

	"github.com/rs/zerolog"
)

// Server represents the HTTP API server
type Server struct {
	router *Router
	server *http.Server
	addr   string
	logger zerolog.Logger
}

// NewServer wires store into a Router behind the middleware chain.
func NewServer(cfg config.ServerConfig, store Store, logger zerolog.Logger) *Server {
	api := &API{
		Store:        store,
		Logger:       logger,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}
	s := &Server{
		addr:   cfg.Addr,
		logger: logger,
		router: NewRouter(api),
	}

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.applyMiddleware(s.router),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// Start listens until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.addr).Msg("Starting HTTP server")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// last one wraps first
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger)(handler)
	handler = RequestIDMiddleware()(handler)
	return handler
}
