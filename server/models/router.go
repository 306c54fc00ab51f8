package models

import (
	"time"

	"github.com/hayas1/closet/server/env"
	"github.com/hayas1/closet/server/logger"
	custommiddleware "github.com/hayas1/closet/server/middleware"
	"github.com/hayas1/closet/server/models/auth"
	"github.com/hayas1/closet/server/response"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// SetupRoutes configures and starts the HTTP server
func (m *Models) SetupRoutes() {
	e := echo.New()
	e.HideBanner = true

	// Global middleware - use custom zerolog middleware
	e.Use(custommiddleware.RequestLogger())
	e.Use(custommiddleware.RecoverWithLogger())
	e.Use(middleware.CORS())

	e.RouteNotFound("/*", func(c echo.Context) error {
		return response.NotFound(c, response.ErrCodeNotFound, "not found api endpoint")
	})

	// Rate limit middleware for auth endpoints
	authRateLimit := custommiddleware.RateLimitByIP(m.redisClient, 10, time.Minute)

	e.GET("/health", m.healthHandler.Health)
	e.GET("/health/rich", m.healthHandler.RichHealth)

	// The bearer middleware only attaches an optional identity;
	// handlers decide whether a session is required.
	a := e.Group("/auth")
	a.Use(auth.Middleware(m.verifier))
	a.POST("/create", m.authHandler.Create, authRateLimit)
	a.POST("/login", m.authHandler.Login, authRateLimit)
	a.GET("/whoami", m.authHandler.Whoami)
	a.POST("/logout", m.authHandler.Logout)
	a.POST("/deactivate", m.authHandler.Deactivate)

	// Start server
	serverAddr := env.E.Backend.HTTPHost + ":" + env.E.GetServerPort()
	e.Server.ReadTimeout = env.E.GetRequestTimeout()
	e.Server.WriteTimeout = env.E.GetRequestTimeout()

	logger.Infof("Server starting on %s...", serverAddr)
	logger.Info("Available endpoints:")
	logger.Info("  GET  /health          - Health check")
	logger.Info("  GET  /health/rich     - Database-backed health check")
	logger.Info("  POST /auth/create     - Register a new user")
	logger.Info("  POST /auth/login      - Login and get a session token")
	logger.Info("  GET  /auth/whoami     - Current identity (auth optional)")
	logger.Info("  POST /auth/logout     - End the session (requires auth)")
	logger.Info("  POST /auth/deactivate - Deactivate the account (requires auth)")

	go func() {
		if err := e.Start(serverAddr); err != nil {
			logger.Errorf("Server stopped: %v", err)
		}
	}()
}
