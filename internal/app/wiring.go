package app

import (
	"fmt"

	"media-gateway/config"
	"media-gateway/internal/infra/s3"
	"media-gateway/internal/transport/echo"
	"media-gateway/pkg/logger"
	"media-gateway/pkg/metrics"

	"github.com/sirupsen/logrus"
)

// InitializeGateway wires the storage client and the upload/list/stream server.
func InitializeGateway(cfg *config.Config, log *logrus.Logger) (*Service, error) {
	if err := cfg.ValidateStorage(); err != nil {
		return nil, err
	}

	s3Client, err := s3.NewClient(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	log.WithFields(logrus.Fields(logger.SanitizeMap(cfg.LogFields()))).Info("configuration loaded")

	server := echo.NewGatewayServer(&echo.Dependencies{
		Config:  cfg,
		Store:   s3Client,
		Logger:  log,
		Metrics: metrics.New(),
	})

	return &Service{
		name:   "media gateway",
		config: cfg,
		log:    log,
		server: server,
	}, nil
}

// InitializeSkeleton wires the placeholder server. No storage settings are needed.
func InitializeSkeleton(cfg *config.Config, log *logrus.Logger) (*Service, error) {
	server := echo.NewSkeletonServer(&echo.Dependencies{
		Config:  cfg,
		Logger:  log,
		Metrics: metrics.New(),
	})

	return &Service{
		name:   "skeleton",
		config: cfg,
		log:    log,
		server: server,
	}, nil
}
