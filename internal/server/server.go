package server

import (
	"context"
	"net/http"
	"time"

	"better-life/pkg/logger"
)

// Server wraps the HTTP server with a graceful start/stop lifecycle.
type Server struct {
	server *http.Server
	logger *logger.Logger
}

func New(port string, handler http.Handler, log *logger.Logger) *Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		server: httpServer,
		logger: log,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping HTTP server")
	return s.server.Shutdown(ctx)
}
