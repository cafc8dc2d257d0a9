package handler

import (
	"custody-broker/internal/adapter/http/middleware"
	redisStore "custody-broker/internal/adapter/storage/redis"
	"custody-broker/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	Registry       ports.ConnectionRegistry
	SyncSvc        ports.SyncService
	TransferSvc    ports.TransferService
	DestinationSvc ports.KnownDestinationService
	ProxySvc       ports.ProxyService
	RateLimitStore *redisStore.RateLimitStore
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep, verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	connectionHandler := NewConnectionHandler(deps.Registry)
	syncHandler := NewSyncHandler(deps.SyncSvc, deps.DestinationSvc)
	transferHandler := NewTransferHandler(deps.TransferSvc)
	proxyHandler := NewProxyHandler(deps.ProxySvc)

	// Per-client rate limits; noop when no store is wired (tests).
	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1", middleware.ClientAuth())

	connections := v1.Group("/connections")
	{
		connections.POST("", rl("connections"), connectionHandler.Create)
		connections.GET("", rl("connections"), connectionHandler.List)
		connections.POST("/:id/activate", rl("connections"), connectionHandler.Activate)
		connections.POST("/:id/revoke", rl("connections"), connectionHandler.Revoke)

		connections.POST("/:id/sync", rl("sync"), syncHandler.Run)
		connections.GET("/:id/known-destinations", rl("sync"), syncHandler.ListKnownDestinations)

		connections.POST("/:id/transfers", rl("transfers"), transferHandler.Send)
		connections.GET("/:id/transfers/:transferId", rl("transfers"), transferHandler.Get)

		connections.Any("/:id/proxy/*path", rl("proxy"), proxyHandler.Forward)
	}

	return r
}
