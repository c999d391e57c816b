package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-service/internal/infrastructure/database"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADDR", "127.0.0.1:8080")
	for _, k := range []string{"DB_DRIVER", "DB_PATH", "DB_MAX_CONNECTIONS", "REDIS_ADDR", "CACHE_TTL", "METRICS_ENABLED", "APP_ENV"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.App.Addr)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "db.sqlite", cfg.Database.Path)
	assert.Equal(t, int32(5), cfg.Database.MaxConns)
	assert.Equal(t, 15*time.Minute, cfg.Redis.TTL)
	assert.False(t, cfg.CacheEnabled())
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_MAX_CONNECTIONS", "20")
	t.Setenv("DB_RETRY_DELAY", "250ms")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, database.DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, int32(20), cfg.Database.MaxConns)
	assert.Equal(t, 250*time.Millisecond, cfg.Database.RetryDelay)
	assert.True(t, cfg.CacheEnabled())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing addr", map[string]string{"ADDR": ""}},
		{"unknown driver", map[string]string{"ADDR": ":8080", "DB_DRIVER": "oracle"}},
		{"non-positive pool size", map[string]string{"ADDR": ":8080", "DB_MAX_CONNECTIONS": "0"}},
		{"malformed pool size", map[string]string{"ADDR": ":8080", "DB_MAX_CONNECTIONS": "lots"}},
		{"malformed duration", map[string]string{"ADDR": ":8080", "DB_CONNECT_TIMEOUT": "soon"}},
		{"malformed ttl", map[string]string{"ADDR": ":8080", "CACHE_TTL": "forever"}},
		{"production postgres without password", map[string]string{
			"ADDR": ":8080", "APP_ENV": "production", "DB_DRIVER": "postgres", "DB_PASSWORD": "",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
