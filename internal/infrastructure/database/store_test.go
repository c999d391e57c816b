package database

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-service/internal/shared/resource"
)

var testSchema = resource.Schema{Table: "notes", Columns: []string{"title", "body"}}

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:", 5)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDialect_Rebind(t *testing.T) {
	q := "UPDATE notes SET title = ?, body = ? WHERE id = ?"

	assert.Equal(t, q, SQLite.Rebind(q))
	assert.Equal(t, "UPDATE notes SET title = $1, body = $2 WHERE id = $3", Postgres.Rebind(q))
	assert.Equal(t, "SELECT id FROM notes", Postgres.Rebind("SELECT id FROM notes"))
}

func TestDialect_BindTypeMatchesDriver(t *testing.T) {
	assert.Equal(t, sqlx.BindType("pgx"), Postgres.BindType)
	assert.Equal(t, sqlx.BindType("sqlite3"), SQLite.BindType)
}

func TestCreateTableSQL(t *testing.T) {
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS notes (id INTEGER PRIMARY KEY AUTOINCREMENT, title TEXT, body TEXT)",
		CreateTableSQL(SQLite, testSchema))
	assert.Equal(t,
		"CREATE TABLE IF NOT EXISTS notes (id BIGSERIAL PRIMARY KEY, title TEXT, body TEXT)",
		CreateTableSQL(Postgres, testSchema))
}

func TestMigrate_IsIdempotent(t *testing.T) {
	s := openMemory(t)
	ctx := context.Background()

	require.NoError(t, Migrate(ctx, s, testSchema))
	require.NoError(t, Migrate(ctx, s, testSchema))

	var id int64
	err := s.QueryRowContext(ctx, "INSERT INTO notes (title, body) VALUES (?, ?) RETURNING id", "t", nil).Scan(&id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestOpenSQLite_MemoryUsesSingleConnection(t *testing.T) {
	s := openMemory(t)

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, stats.Driver)
	assert.Equal(t, 1, stats.MaxOpenConnections)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), &DBConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestStore_PingAndClose(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:", 1)
	require.NoError(t, err)

	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
	assert.NoError(t, s.Close(), "second close is a no-op")
	assert.Error(t, s.Ping(context.Background()))

	_, err = s.Stats()
	assert.Error(t, err)
}

func TestMonitorPoolHealth_StopsOnCancel(t *testing.T) {
	s := openMemory(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.MonitorPoolHealth(ctx, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}

func TestStartPoolMonitor_StopWaitsForExit(t *testing.T) {
	s, err := OpenSQLite(context.Background(), ":memory:", 1)
	require.NoError(t, err)

	stop := s.StartPoolMonitor(context.Background(), time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("stop did not return")
	}

	// Monitor has exited, so closing cannot race a Stats call.
	require.NoError(t, s.Close())
}

func TestPostgresDB_BuildConnectionString(t *testing.T) {
	db := NewPostgresDB(&DBConfig{
		Host:     "db",
		Port:     5432,
		Username: "library",
		Password: "secret",
		DBName:   "library",
	})

	assert.Equal(t, "postgresql://library:secret@db:5432/library?sslmode=disable", db.buildConnectionString())

	db.Config.SSLMode = "require"
	assert.Contains(t, db.buildConnectionString(), "sslmode=require")
}

func TestPostgresDB_ConfigurePool(t *testing.T) {
	db := NewPostgresDB(&DBConfig{
		Host:              "db",
		Port:              5432,
		Username:          "library",
		DBName:            "library",
		MaxConns:          5,
		MinConns:          1,
		MaxConnLifetime:   5 * time.Minute,
		HealthCheckPeriod: time.Minute,
		ConnectTimeout:    3 * time.Second,
	})

	cfg, err := db.configurePool()
	require.NoError(t, err)
	assert.Equal(t, int32(5), cfg.MaxConns)
	assert.Equal(t, int32(1), cfg.MinConns)
	assert.Equal(t, 5*time.Minute, cfg.MaxConnLifetime)
	assert.Equal(t, 3*time.Second, cfg.ConnConfig.ConnectTimeout)
}

func TestCalculateAvgDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), calculateAvgDuration(time.Second, 0))
	assert.Equal(t, 250*time.Millisecond, calculateAvgDuration(time.Second, 4))
}

func TestStats_PostgresReadsPoolCounters(t *testing.T) {
	pg := NewPostgresDB(&DBConfig{
		Host:     "127.0.0.1",
		Port:     1,
		Username: "library",
		DBName:   "library",
		MaxConns: 7,
	})

	cfg, err := pg.configurePool()
	require.NoError(t, err)

	// MinConns is zero, so the pool does not dial until the first acquire.
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	pg.Pool = pool

	s := pg.store()
	t.Cleanup(func() { s.Close() })

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, stats.Driver)
	assert.Equal(t, 7, stats.MaxOpenConnections)
	assert.Equal(t, 0, stats.InUse)

	require.NoError(t, s.Close())
	assert.Nil(t, pg.Pool, "closing the store closes the pool")
}
