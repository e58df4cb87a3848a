package adminserver

import (
	"context"
	"net/http"
)

// Server is the administrative HTTP server.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
}

// New creates a new administrative HTTP server listening on addr.
func New(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
		handler: handler,
	}
}

// ListenAndServe starts the server. It blocks until the server is shut
// down or fails, and always returns a non-nil error (http.ErrServerClosed
// on a clean Shutdown).
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server, waiting for in-flight
// requests to complete or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
