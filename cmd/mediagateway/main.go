package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"media-gateway/config"
	"media-gateway/internal/app"
	"media-gateway/pkg/logger"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const (
	defaultEnvFile = ".env"
	envPort        = "PORT"
)

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

type initializer func(*config.Config, *logrus.Logger) (*app.Service, error)

type rootOptions struct {
	envFile string
	port    string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "mediagateway",
		Short:         "HTTP gateway for uploading, listing and streaming media in an S3-compatible bucket",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", defaultEnvFile, "dotenv file loaded before reading the environment")
	root.PersistentFlags().StringVar(&opts.port, "port", "", "listen port, overrides PORT")

	root.AddCommand(
		newServeCommand("serve", "Run the upload/list/stream gateway", opts, app.InitializeGateway),
		newServeCommand("skeleton", "Run the placeholder application", opts, app.InitializeSkeleton),
	)

	return root
}

func newServeCommand(use, short string, opts *rootOptions, initialize initializer) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, initialize)
		},
	}
}

func run(parent context.Context, opts *rootOptions, initialize initializer) error {
	envErr := godotenv.Load(opts.envFile)

	if opts.port != "" {
		if err := os.Setenv(envPort, opts.port); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		// The logger is not configured yet.
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return err
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	if envErr != nil {
		log.WithField("env_file", opts.envFile).Warn(".env file not found, using environment variables")
	}

	service, err := initialize(cfg, log)
	if err != nil {
		log.WithError(err).Error("failed to initialize service")
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, shutdownSignals...)
	defer stop()

	if err := service.Run(ctx); err != nil {
		log.WithError(err).Error("service stopped with error")
		return err
	}

	return nil
}
