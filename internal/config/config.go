package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Data      DataConfig
	Model     ModelConfig
	Providers ProviderConfig
	Features  FeatureConfig
	Baseline  BaselineConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// DataConfig locates the static climate pattern documents.
type DataConfig struct {
	Dir string // contains location_mapping.json, continents/, hemispheres/
}

// ModelConfig locates the frozen model artifacts and the inference server.
type ModelConfig struct {
	ArtifactDir string // feature_names.json, scaler.json, metadata.json
	ServerURL   string // inference server base URL; empty disables the model path
}

// ProviderConfig holds upstream weather data source settings.
type ProviderConfig struct {
	OpenWeatherURL string
	OpenWeatherKey string
	PowerURL       string
	TimeoutSeconds int
}

// FeatureConfig controls the time-series feature pipeline.
type FeatureConfig struct {
	LagDays           []int
	RollingWindowDays []int
	HistoryDaysBack   int
}

// BaselineConfig controls the long-range historical baseline path.
type BaselineConfig struct {
	ReferenceYear int
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	// Set config file name and paths
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("$HOME/.stormrisk")

	// Set defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.ginmode", "release")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("data.dir", "data")
	viper.SetDefault("model.artifactdir", "model/artifacts")
	viper.SetDefault("model.serverurl", "")
	viper.SetDefault("providers.openweatherurl", "https://api.openweathermap.org/data/2.5")
	viper.SetDefault("providers.openweatherkey", "")
	viper.SetDefault("providers.powerurl", "https://power.larc.nasa.gov/api/temporal/daily/point")
	viper.SetDefault("providers.timeoutseconds", 10)
	viper.SetDefault("features.lagdays", []int{1, 2, 3, 7, 14, 30})
	viper.SetDefault("features.rollingwindowdays", []int{3, 7, 14, 30})
	viper.SetDefault("features.historydaysback", 60)
	viper.SetDefault("baseline.referenceyear", 2024)

	// Read from environment variables
	viper.SetEnvPrefix("STORMRISK")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// ProviderTimeout returns the per-call ceiling for upstream provider requests.
func (c *Config) ProviderTimeout() time.Duration {
	if c.Providers.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Providers.TimeoutSeconds) * time.Second
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
