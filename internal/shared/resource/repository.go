package resource

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"library-service/internal/infrastructure/metrics"
	"library-service/pkg/cache"
)

// Executor is the part of the store a Repository needs. Queries are written
// with `?` placeholders; the executor rewrites them for its driver.
// database.Store and *sql.DB (for `?` drivers) satisfy it.
type Executor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// RepositoryInterface defines data access operations for one resource.
type RepositoryInterface[E any, P Record[E], F Filter] interface {
	// List returns every row matching the filter; an empty slice when none do.
	List(ctx context.Context, filter F) ([]E, error)

	// GetByID returns the row with the given id.
	// Errors: KindNotFound if no row has that id.
	GetByID(ctx context.Context, id int64) (*E, error)

	// Create inserts the entity (its id is ignored) and returns the assigned id.
	Create(ctx context.Context, entity P) (int64, error)

	// Update writes the present fields of entity to the row with the given id.
	// An entity with no present field is a successful no-op.
	Update(ctx context.Context, id int64, entity P) error

	// Delete removes the row with the given id. Deleting a missing row succeeds.
	Delete(ctx context.Context, id int64) error
}

// Repository implements RepositoryInterface on top of an Executor, with an
// optional cache-aside layer for GetByID.
type Repository[E any, P Record[E], F Filter] struct {
	db     Executor
	schema Schema
	cache  cache.Cache
	ttl    time.Duration
}

// NewRepository creates a repository for schema. A nil cache disables caching.
func NewRepository[E any, P Record[E], F Filter](db Executor, schema Schema, c cache.Cache, ttl time.Duration) *Repository[E, P, F] {
	if c == nil {
		c = cache.Noop{}
	}
	return &Repository[E, P, F]{
		db:     db,
		schema: schema,
		cache:  c,
		ttl:    ttl,
	}
}

func (r *Repository[E, P, F]) List(ctx context.Context, filter F) ([]E, error) {
	if err := filter.Validate(); err != nil {
		return nil, ValidationError(r.schema.Table, "list", err)
	}

	q := BuildList(r.schema, filter)

	start := time.Now()
	defer r.observe("list", start)

	rows, err := r.db.QueryContext(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, r.storeError("list", err)
	}
	defer rows.Close()

	items := make([]E, 0)
	for rows.Next() {
		var e E
		if err := rows.Scan(P(&e).ScanTargets()...); err != nil {
			return nil, r.storeError("list", err)
		}
		items = append(items, e)
	}

	if err := rows.Err(); err != nil {
		return nil, r.storeError("list", err)
	}

	return items, nil
}

func (r *Repository[E, P, F]) GetByID(ctx context.Context, id int64) (*E, error) {
	key := r.cacheKey(id)

	var e E
	if hit, err := r.cache.Get(ctx, key, &e); err == nil && hit {
		metrics.CacheHits.WithLabelValues(r.schema.Table).Inc()
		return &e, nil
	}

	q := BuildGet(r.schema, id)

	start := time.Now()
	err := r.db.QueryRowContext(ctx, q.SQL, q.Args...).Scan(P(&e).ScanTargets()...)
	r.observe("get", start)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &Error{Kind: KindNotFound, Resource: r.schema.Table, Op: "get", Err: err}
		}
		return nil, r.storeError("get", err)
	}

	if err := r.cache.Set(ctx, key, &e, r.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}

	return &e, nil
}

func (r *Repository[E, P, F]) Create(ctx context.Context, entity P) (int64, error) {
	q := BuildCreate(r.schema, entity.Fields())

	start := time.Now()
	var id int64
	err := r.db.QueryRowContext(ctx, q.SQL, q.Args...).Scan(&id)
	r.observe("create", start)

	if err != nil {
		return 0, r.storeError("create", err)
	}

	return id, nil
}

func (r *Repository[E, P, F]) Update(ctx context.Context, id int64, entity P) error {
	q, ok := BuildUpdate(r.schema, id, entity.Fields())
	if !ok {
		return nil
	}

	start := time.Now()
	_, err := r.db.ExecContext(ctx, q.SQL, q.Args...)
	r.observe("update", start)

	if err != nil {
		return r.storeError("update", err)
	}

	r.invalidate(ctx, id)
	return nil
}

func (r *Repository[E, P, F]) Delete(ctx context.Context, id int64) error {
	q := BuildDelete(r.schema, id)

	start := time.Now()
	_, err := r.db.ExecContext(ctx, q.SQL, q.Args...)
	r.observe("delete", start)

	if err != nil {
		return r.storeError("delete", err)
	}

	r.invalidate(ctx, id)
	return nil
}

// Cache helper methods

func (r *Repository[E, P, F]) cacheKey(id int64) string {
	return r.schema.Table + ":" + strconv.FormatInt(id, 10)
}

func (r *Repository[E, P, F]) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, r.cacheKey(id)); err != nil {
		log.Warn().Err(err).Str("key", r.cacheKey(id)).Msg("cache invalidation failed")
	}
}

func (r *Repository[E, P, F]) observe(op string, start time.Time) {
	metrics.QueryDuration.WithLabelValues(r.schema.Table, op).Observe(time.Since(start).Seconds())
}

func (r *Repository[E, P, F]) storeError(op string, err error) error {
	metrics.QueryErrors.WithLabelValues(r.schema.Table, op).Inc()

	ev := log.Error().Err(err).Str("resource", r.schema.Table).Str("op", op)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		ev = ev.Str("sqlstate", pgErr.Code)
	}
	ev.Msg("store operation failed")

	return &Error{Kind: KindStore, Resource: r.schema.Table, Op: op, Err: err}
}
