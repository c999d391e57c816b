package resource

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun/driver/sqliteshim"
)

var widgetSchema = Schema{
	Table:   "widgets",
	Columns: []string{"name", "color"},
}

type widget struct {
	ID    *int64  `json:"id"`
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func (w *widget) Fields() []Field {
	return []Field{
		Optional("name", w.Name),
		Optional("color", w.Color),
	}
}

func (w *widget) ScanTargets() []any {
	return []any{&w.ID, &w.Name, &w.Color}
}

type widgetFilter struct {
	Limit *int    `form:"limit"`
	Color *string `form:"color"`
}

func (f widgetFilter) Validate() error {
	if f.Limit != nil && *f.Limit < 1 {
		return errors.New("limit must be a positive integer")
	}
	return nil
}

func (f widgetFilter) Conditions() []Condition {
	var conds []Condition
	if f.Color != nil {
		conds = append(conds, Condition{Column: "color", Value: *f.Color})
	}
	return conds
}

func (f widgetFilter) MaxRows() *int {
	return f.Limit
}

func ptr[T any](v T) *T {
	return &v
}

// newTestDB returns a private in-memory SQLite database with the widgets table.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE widgets (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT, color TEXT)`)
	require.NoError(t, err)
	return db
}

// memoryCache is an in-process cache.Cache that round-trips values through JSON.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
	gets  int
	hits  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	data, ok := m.items[key]
	if !ok {
		return false, nil
	}
	m.hits++
	return true, json.Unmarshal(data, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = data
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *memoryCache) Ping(context.Context) error {
	return nil
}

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok
}
