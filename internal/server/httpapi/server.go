package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/brianXcode/tezda-auth-service/internal/logging"
	"github.com/brianXcode/tezda-auth-service/internal/server/services"
)

// Server owns the HTTP listener and the route table.
type Server struct {
	address string
	auth    *services.AuthService
	logger  logging.Logger
}

func NewServer(address string, auth *services.AuthService, logger logging.Logger) *Server {
	return &Server{
		address: address,
		auth:    auth,
		logger:  logger.With("module", "http_server"),
	}
}

// Handler returns the route table. Exposed separately so tests can drive
// it through httptest without binding a port.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth", s.handleAuth)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
