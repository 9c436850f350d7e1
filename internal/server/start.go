package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// Start serves on addr until ctx is canceled, then shuts down gracefully.
// It also runs the workspace sweeper and, when a catalog directory is
// configured, the catalog watcher.
func (s *Server) Start(ctx context.Context, addr string) error {
	go s.deps.Manager.Run(ctx)

	if dir := s.deps.Config.GetCatalogDir(); dir != "" {
		if err := s.deps.Catalog.Watch(ctx, dir); err != nil {
			slog.Warn("Catalog hot reload disabled", "error", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "addr", addr)
		if err := s.E.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.E.Shutdown(shutdownCtx)
}
