package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-service/internal/config"
	"library-service/internal/domains/author"
	"library-service/internal/domains/book"
	infraCache "library-service/internal/infrastructure/cache"
	"library-service/internal/infrastructure/database"
	"library-service/pkg/cache"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	DB     *database.Store
	Cache  cache.Cache // RedisCache hoặc Noop khi REDIS_ADDR trống

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	AuthorRepo author.Repository
	BookRepo   book.Repository

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	AuthorHandler *author.Handler
	BookHandler   *book.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Database (+ migrate tables)
// 2. Cache
// 3. Repositories - phụ thuộc DB và Cache
// 4. Handlers - phụ thuộc Repositories
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI Container...")

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: INITIALIZE DATABASE
	// ========================================
	log.Info().Str("driver", cfg.Database.Driver).Msg("Connecting to database...")

	store, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	c.DB = store

	if err := database.Migrate(ctx, store, author.Schema, book.Schema); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// ========================================
	// STEP 2: INITIALIZE CACHE
	// ========================================
	c.Cache = c.initCache(ctx)

	// ========================================
	// STEP 3: INITIALIZE REPOSITORIES
	// ========================================
	c.AuthorRepo = author.NewRepository(store, c.Cache, cfg.Redis.TTL)
	c.BookRepo = book.NewRepository(store, c.Cache, cfg.Redis.TTL)

	// ========================================
	// STEP 4: INITIALIZE HANDLERS
	// ========================================
	c.AuthorHandler = author.NewHandler(c.AuthorRepo)
	c.BookHandler = book.NewHandler(c.BookRepo)

	log.Info().Msg("Container initialized")
	return c, nil
}

// initCache kết nối Redis nếu được cấu hình.
// Redis failure không critical - log warning và fallback sang Noop.
func (c *Container) initCache(ctx context.Context) cache.Cache {
	if !c.Config.CacheEnabled() {
		log.Info().Msg("[REDIS] REDIS_ADDR not set, by-id cache disabled")
		return cache.Noop{}
	}

	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Addr,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisCache.Connect(connectCtx); err != nil {
		log.Warn().Err(err).Msg("[REDIS] Connection failed (non-critical), cache disabled")
		_ = redisCache.Close()
		return cache.Noop{}
	}

	return redisCache
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources...")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("[DATABASE] Failed to close")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("[REDIS] Failed to close")
		} else {
			log.Info().Msg("[REDIS] Connections closed")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
