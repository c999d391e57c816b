package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-service/internal/infrastructure/metrics"
	"library-service/internal/shared/middleware"
	"library-service/internal/shared/response"
	"library-service/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)
	if c.Config.Metrics.Enabled {
		router.Use(middleware.Metrics())
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	router.GET("/health", healthCheckHandler(c))

	c.AuthorHandler.Register(router, "/authors")
	c.BookHandler.Register(router, "/books")

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "route not found")
	})

	return router
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.DB.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"error":  err.Error(),
			})
			return
		}

		health := gin.H{
			"status":  "ok",
			"version": appCtx.Config.App.Version,
		}
		if stats, err := appCtx.DB.Stats(); err == nil {
			health["database"] = stats
		}

		// Redis failure không ảnh hưởng status, cache chỉ là optimization
		cacheStatus := "disabled"
		if appCtx.Config.CacheEnabled() {
			cacheStatus = "ok"
			if err := appCtx.Cache.Ping(ctx); err != nil {
				cacheStatus = "error: " + err.Error()
			}
		}
		health["cache"] = cacheStatus

		c.JSON(http.StatusOK, health)
	}
}
