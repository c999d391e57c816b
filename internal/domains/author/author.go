package author

import (
	"time"

	"library-service/internal/shared/resource"
	"library-service/pkg/cache"
)

// Repository defines data access operations for authors.
type Repository = resource.RepositoryInterface[Author, *Author, Filter]

// Handler serves /authors.
type Handler = resource.Handler[Author, *Author, Filter]

// NewRepository creates the authors repository.
func NewRepository(db resource.Executor, c cache.Cache, ttl time.Duration) *resource.Repository[Author, *Author, Filter] {
	return resource.NewRepository[Author, *Author, Filter](db, Schema, c, ttl)
}

// NewHandler creates the /authors handler.
func NewHandler(repo Repository) *Handler {
	return resource.NewHandler[Author, *Author, Filter](repo, Schema.Table)
}
