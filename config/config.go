package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	envS3Endpoint            = "S3_ENDPOINT"
	envRegion                = "REGION"
	envAWSAccessKeyID        = "AWS_ACCESS_KEY_ID"
	envAWSSecretAccessKey    = "AWS_SECRET_ACCESS_KEY"
	envBucketName            = "BUCKET_NAME"
	envPort                  = "PORT"
	envServerShutdownTimeout = "SERVER_SHUTDOWN_TIMEOUT"
	envLogLevel              = "LOG_LEVEL"
	envLogFormat             = "LOG_FORMAT"
	envEnableProfiling       = "ENABLE_PROFILING"
)

const (
	defaultServerPort      = "5000"
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultLogFormat       = "json"
	maxPort                = 65535

	errPortRequiredFmt         = "PORT must be set"
	errPortInvalidFmt          = "PORT must be a number between 1 and %d, got %q"
	errShutdownTimeoutFmt      = "SERVER_SHUTDOWN_TIMEOUT must be positive"
	errS3EndpointInvalidFmt    = "S3_ENDPOINT must be an http(s) URL, got %q"
	errInvalidConfigurationFmt = "invalid configuration: %w"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
	// EnableProfiling mounts /debug/pprof on the gateway.
	EnableProfiling bool
}

// StorageConfig describes the S3-compatible object store. An empty Endpoint
// selects the AWS default endpoint for Region.
type StorageConfig struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads the process environment. Storage settings are read but not
// validated here; the gateway calls ValidateStorage before dialing the store.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ShutdownTimeout: getDurationEnv(envServerShutdownTimeout, defaultShutdownTimeout),
			EnableProfiling: getBoolEnv(envEnableProfiling, false),
		},
		Storage: StorageConfig{
			Endpoint:        strings.TrimSpace(os.Getenv(envS3Endpoint)),
			Region:          os.Getenv(envRegion),
			AccessKeyID:     os.Getenv(envAWSAccessKeyID),
			SecretAccessKey: os.Getenv(envAWSSecretAccessKey),
			BucketName:      os.Getenv(envBucketName),
		},
		Log: LogConfig{
			Level:  getEnv(envLogLevel, defaultLogLevel),
			Format: getEnv(envLogFormat, defaultLogFormat),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > maxPort {
		return fmt.Errorf(errPortInvalidFmt, maxPort, c.Server.Port)
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf(errShutdownTimeoutFmt)
	}

	return nil
}

// ValidateStorage reports the first missing storage setting.
func (c *Config) ValidateStorage() error {
	required := []struct {
		key   string
		value string
	}{
		{envRegion, c.Storage.Region},
		{envAWSAccessKeyID, c.Storage.AccessKeyID},
		{envAWSSecretAccessKey, c.Storage.SecretAccessKey},
		{envBucketName, c.Storage.BucketName},
	}

	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf(errInvalidConfigurationFmt, messages.requiredEnvNotSet(r.key))
		}
	}

	if c.Storage.Endpoint != "" &&
		!strings.HasPrefix(c.Storage.Endpoint, "http://") &&
		!strings.HasPrefix(c.Storage.Endpoint, "https://") {
		return fmt.Errorf(errInvalidConfigurationFmt, fmt.Errorf(errS3EndpointInvalidFmt, c.Storage.Endpoint))
	}

	return nil
}

// Address is the listen address for the configured port.
func (c *Config) Address() string {
	return ":" + c.Server.Port
}

// LogFields summarizes the configuration for the startup log line.
func (c *Config) LogFields() map[string]interface{} {
	return map[string]interface{}{
		"port":                  c.Server.Port,
		"s3_endpoint":           c.Storage.Endpoint,
		"region":                c.Storage.Region,
		"bucket":                c.Storage.BucketName,
		"aws_access_key_id":     c.Storage.AccessKeyID,
		"aws_secret_access_key": c.Storage.SecretAccessKey,
		"log_level":             c.Log.Level,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
