package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"schooladmin/internal/config"
	"schooladmin/internal/handler"
	"schooladmin/internal/middleware"
)

// RegisterRoutes registers routes that require no dependencies beyond the
// Echo instance itself. Currently that is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the login endpoint and the JWT-protected /v1/me.
// Login sits behind the Redis token bucket so password guessing from a
// single source is throttled; with no Redis client the limiter is a
// pass-through.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, rdb *redis.Client) {
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	g := e.Group("/v1/auth")
	g.POST("/login", a.Login, limiter)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(a.Cfg.JWTSecret))
	auth.GET("/me", a.Me)
}

// RegisterAccount registers the user password-change endpoint. The route
// is deliberately unauthenticated: the flow verifies the current password
// itself and serves clients that hold no session.
func RegisterAccount(e *echo.Echo, p *handler.PasswordHandler) {
	e.POST("/v1/account/password", p.Change)
}

// RegisterAvailability registers the scheduling-gap report behind the
// Redis response cache. The report is read-only, so short-lived cached
// copies are safe and spare the anti-join queries on dashboard refreshes.
func RegisterAvailability(e *echo.Echo, av *handler.AvailabilityHandler, rdb *redis.Client) {
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	e.GET("/v1/availability", av.Check, cache)
}
