package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"library-service/internal/infrastructure/database"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App      AppConfig
	Database *database.DBConfig
	Redis    RedisConfig
	Metrics  MetricsConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, production
	Addr        string // listen address, e.g. 127.0.0.1:8080 (required)
	Version     string
	LogLevel    string
}

type RedisConfig struct {
	Addr     string // empty disables the cache
	Password string
	DB       int
	TTL      time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

// Load đọc config từ environment variables
func Load() (*Config, error) {
	dbCfg, err := LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	metricsEnabled, err := strconv.ParseBool(getEnv("METRICS_ENABLED", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Addr:        os.Getenv("ADDR"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: dbCfg,
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      cacheTTL,
		},
		Metrics: MetricsConfig{
			Enabled: metricsEnabled,
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.App.Addr == "" {
		return fmt.Errorf("ADDR is not set")
	}

	switch c.Database.Driver {
	case database.DriverSQLite, database.DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)",
			c.Database.Driver, database.DriverSQLite, database.DriverPostgres)
	}

	if c.Database.MaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNECTIONS must be positive")
	}

	// Production environment phải có DB password khi dùng PostgreSQL
	if c.App.Environment == "production" && c.Database.Driver == database.DriverPostgres {
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool {
	return c.Redis.Addr != ""
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
