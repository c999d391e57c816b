package book

import (
	"time"

	"library-service/internal/shared/resource"
	"library-service/pkg/cache"
)

// Repository defines data access operations for books.
type Repository = resource.RepositoryInterface[Book, *Book, Filter]

// Handler serves /books.
type Handler = resource.Handler[Book, *Book, Filter]

// NewRepository creates the books repository.
func NewRepository(db resource.Executor, c cache.Cache, ttl time.Duration) *resource.Repository[Book, *Book, Filter] {
	return resource.NewRepository[Book, *Book, Filter](db, Schema, c, ttl)
}

// NewHandler creates the /books handler.
func NewHandler(repo Repository) *Handler {
	return resource.NewHandler[Book, *Book, Filter](repo, Schema.Table)
}
