package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sangkips/label-bridge/internal/application/service"
	"github.com/sangkips/label-bridge/internal/config"
	"github.com/sangkips/label-bridge/internal/infrastructure/logger"
	"github.com/sangkips/label-bridge/internal/presentation/http/handler"
	"github.com/sangkips/label-bridge/internal/presentation/http/middleware"
	"github.com/sangkips/label-bridge/internal/presentation/http/routes"
	"github.com/sangkips/label-bridge/pkg/printer"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	zapLogger := logger.NewForEnvironment(cfg.App.Env, cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = zapLogger.Sync() }()

	// Initialize printer driver
	driver, err := printer.NewDriverFromConfig(
		cfg.Printer.Driver,
		cfg.Printer.Name,
		cfg.Printer.DevicePath,
		cfg.Printer.Address,
	)
	if err != nil {
		zapLogger.Fatal("Failed to initialize printer driver", zap.Error(err))
	}

	// Initialize services
	renderer := service.NewLabelRenderer(cfg.Printer)
	printService := service.NewPrintService(driver, renderer, cfg.Printer, zapLogger)

	if status, err := printService.GetStatus(); err != nil {
		zapLogger.Warn("Could not list printers", zap.Error(err))
	} else if !status.Installed {
		zapLogger.Warn("Configured printer is not installed",
			zap.String("printer", status.Name),
			zap.Strings("printers", status.Printers),
		)
	}

	rateLimiter := middleware.NewClientRateLimiter(
		middleware.NewRateLimiterConfig(cfg.RateLimit.Requests, cfg.RateLimit.Duration),
	)
	stop := make(chan struct{})
	go rateLimiter.Run(stop)

	// Setup routes
	router := routes.Setup(&routes.Handlers{
		Print: handler.NewPrintHandler(printService),
	}, &routes.Deps{
		Cfg:         cfg,
		Logger:      zapLogger,
		RateLimiter: rateLimiter,
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Starting label bridge",
			zap.String("service", cfg.App.Name),
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("printer", cfg.Printer.Name),
			zap.String("driver", cfg.Printer.Driver),
			zap.Int("rotation", int(cfg.Printer.Rotation)),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt to exit cleanly
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Forced shutdown", zap.Error(err))
	}
}
