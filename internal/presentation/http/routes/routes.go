package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/label-bridge/internal/config"
	"github.com/sangkips/label-bridge/internal/infrastructure/logger"
	"github.com/sangkips/label-bridge/internal/presentation/http/handler"
	"github.com/sangkips/label-bridge/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Print *handler.PrintHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg         *config.Config
	Logger      *zap.Logger
	RateLimiter *middleware.ClientRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(logger.Recovery(deps.Logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(logger.GinMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", h.Print.Health)

	printHandlers := []gin.HandlerFunc{h.Print.Print}
	if deps.RateLimiter != nil {
		printHandlers = append([]gin.HandlerFunc{deps.RateLimiter.Middleware()}, printHandlers...)
	}
	router.POST("/print", printHandlers...)

	return router
}
