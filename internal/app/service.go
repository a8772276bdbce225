package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"media-gateway/config"

	"github.com/sirupsen/logrus"
)

// httpServer is the part of the transport server the service drives.
type httpServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// Service owns one HTTP server for the lifetime of the process.
type Service struct {
	name   string
	config *config.Config
	log    *logrus.Logger
	server httpServer
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the configured shutdown timeout. A listener failure is returned as is.
func (s *Service) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("address", s.config.Address()).Infof("starting %s", s.name)
		errCh <- s.server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.log.Info("server exited gracefully")
	return nil
}
