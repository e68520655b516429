package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	httpclient "github.com/route66/trip-service/internal/http"
	"github.com/route66/trip-service/internal/itinerary"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig     `mapstructure:"server"`
	Database  DatabaseConfig   `mapstructure:"database"`
	Redis     RedisConfig      `mapstructure:"redis"`
	Directory DirectoryConfig  `mapstructure:"directory"`
	Planning  itinerary.Config `mapstructure:"planning"`
	RateLimit RateLimitConfig  `mapstructure:"rate_limit"`
	Storage   StorageConfig    `mapstructure:"storage"`
	Logging   LoggingConfig    `mapstructure:"logging"`
	Telemetry TelemetryConfig  `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	InternalAPIKey  string        `mapstructure:"internal_api_key"`
	EnableSwagger   bool          `mapstructure:"enable_swagger"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConnections  int           `mapstructure:"max_connections"`
	MinConnections  int           `mapstructure:"min_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// RedisConfig holds the shared snapshot cache configuration
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"` // Empty disables Redis
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Key      string        `mapstructure:"key"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// DirectoryConfig selects and tunes the stop directory
type DirectoryConfig struct {
	Source          string                 `mapstructure:"source"` // static, file, url or postgres
	File            string                 `mapstructure:"file"`
	URL             string                 `mapstructure:"url"`
	HTTP            httpclient.RetryConfig `mapstructure:"http"`
	CacheTTL        time.Duration          `mapstructure:"cache_ttl"`
	MaxFailures     int                    `mapstructure:"max_failures"`
	ResetTimeout    time.Duration          `mapstructure:"reset_timeout"`
	HalfOpenSuccess int                    `mapstructure:"half_open_success"`
}

// RateLimitConfig holds per-IP rate limiting configuration
type RateLimitConfig struct {
	RequestsPerSecond float64  `mapstructure:"requests_per_second"`
	Burst             int      `mapstructure:"burst"`
	TrustedProxies    []string `mapstructure:"trusted_proxies"`
}

// StorageConfig holds artifact storage configuration
type StorageConfig struct {
	Type          string        `mapstructure:"type"`
	BasePath      string        `mapstructure:"base_path"`
	Retention     time.Duration `mapstructure:"retention"` // Zero keeps archives forever
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

var globalConfig *Config

// Load loads the configuration from file, .env, and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := loadEnvFile(); err != nil {
		// .env is optional
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	v.SetEnvPrefix("TRIP_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	globalConfig = &cfg
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if err := c.Planning.Validate(); err != nil {
		return fmt.Errorf("invalid planning config: %w", err)
	}
	switch c.Directory.Source {
	case "static", "postgres":
	case "file":
		if c.Directory.File == "" {
			return itinerary.ErrInvalidConfig{Field: "directory.file", Reason: "required when source is file"}
		}
	case "url":
		if c.Directory.URL == "" {
			return itinerary.ErrInvalidConfig{Field: "directory.url", Reason: "required when source is url"}
		}
	default:
		return itinerary.ErrInvalidConfig{Field: "directory.source", Reason: fmt.Sprintf("unknown source %q", c.Directory.Source)}
	}
	if c.Storage.Retention > 0 && c.Storage.SweepInterval <= 0 {
		return itinerary.ErrInvalidConfig{Field: "storage.sweep_interval", Reason: "must be positive when retention is set"}
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1 {
		return itinerary.ErrInvalidConfig{Field: "rate_limit", Reason: "requests_per_second and burst must be positive"}
	}
	return nil
}

// loadEnvFile loads the first .env file found without overriding the environment.
func loadEnvFile() error {
	for _, dir := range []string{".", "./config"} {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return godotenv.Load(path)
	}
	return fmt.Errorf("no .env file found")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Database
	_ = v.BindEnv("database.url", "DATABASE_URL")

	// Server
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.host", "HOST")
	_ = v.BindEnv("server.internal_api_key", "INTERNAL_API_KEY")

	// Redis
	_ = v.BindEnv("redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Logging
	_ = v.BindEnv("logging.level", "LOG_LEVEL")

	// Directory
	_ = v.BindEnv("directory.url", "STOPS_URL")

	// Storage
	_ = v.BindEnv("storage.base_path", "STORAGE_PATH")

	// Telemetry
	_ = v.BindEnv("telemetry.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.enable_swagger", true)

	// Database defaults
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.min_connections", 2)
	v.SetDefault("database.max_conn_lifetime", 1*time.Hour)
	v.SetDefault("database.max_conn_idle_time", 30*time.Minute)

	// Redis defaults
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 10*time.Minute)

	// Directory defaults
	v.SetDefault("directory.source", "static")
	v.SetDefault("directory.cache_ttl", 5*time.Minute)
	v.SetDefault("directory.max_failures", 5)
	v.SetDefault("directory.reset_timeout", 30*time.Second)
	v.SetDefault("directory.half_open_success", 1)
	h := httpclient.DefaultRetryConfig()
	v.SetDefault("directory.http.requests_per_second", h.RequestsPerSecond)
	v.SetDefault("directory.http.max_retries", h.MaxRetries)
	v.SetDefault("directory.http.initial_backoff", h.InitialBackoff)
	v.SetDefault("directory.http.max_backoff", h.MaxBackoff)
	v.SetDefault("directory.http.timeout", h.Timeout)

	// Planning defaults
	p := itinerary.Defaults()
	v.SetDefault("planning.average_speed_mph", p.AverageSpeedMPH)
	v.SetDefault("planning.min_daily_hours", p.MinDailyHours)
	v.SetDefault("planning.ideal_daily_hours", p.IdealDailyHours)
	v.SetDefault("planning.max_daily_hours", p.MaxDailyHours)
	v.SetDefault("planning.extreme_daily_hours", p.ExtremeDailyHours)
	v.SetDefault("planning.recommend_target_hours", p.RecommendTargetHours)
	v.SetDefault("planning.max_stddev_hours", p.MaxStdDevHours)
	v.SetDefault("planning.max_days", p.MaxDays)
	v.SetDefault("planning.corridor_name", p.CorridorName)
	v.SetDefault("planning.corridor_states", p.CorridorStates)
	v.SetDefault("planning.compare_concurrency", p.CompareConcurrency)
	v.SetDefault("planning.max_compare_day_counts", p.MaxCompareDayCounts)

	// Rate limit defaults
	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)

	// Storage defaults
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.base_path", "./data/exports")
	v.SetDefault("storage.retention", 30*24*time.Hour)
	v.SetDefault("storage.sweep_interval", 1*time.Hour)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.no_color", false)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "localhost:4317")
	v.SetDefault("telemetry.service_name", "trip-service")
	v.SetDefault("telemetry.insecure", true)
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// GetDatabaseURL returns the database URL from config or environment
func GetDatabaseURL() string {
	if cfg := Get(); cfg != nil && cfg.Database.URL != "" {
		return cfg.Database.URL
	}
	return os.Getenv("DATABASE_URL")
}
