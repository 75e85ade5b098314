package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booking-orchestrator/internal/adapter/agent_http"
	"booking-orchestrator/internal/di"
	"booking-orchestrator/internal/infra"
	"booking-orchestrator/internal/infra/config"
	"booking-orchestrator/internal/infra/logger"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.OTelEnabled {
		shutdown, err := logger.SetupOTelLogging(ctx, cfg.OTLPEndpoint)
		if err != nil {
			slog.Error("failed to set up OTel logging", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = shutdown(flushCtx)
		}()
	}
	log := logger.NewWithOTel(cfg.OTelEnabled)

	pool, err := infra.NewPostgresDB(ctx, cfg.DSN())
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	// An unreachable or empty passage index is a deployment defect. Die here
	// rather than reject every document question at runtime.
	container, err := di.NewContainer(ctx, cfg, pool, log)
	if err != nil {
		log.Error("failed to build container", slog.String("error", err.Error()))
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency))
			return nil
		},
	}))

	agent_http.NewHandler(container.Orchestrator, log).Register(e)
	e.GET("/readyz", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "db unreachable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})

	go func() {
		log.Info("server starting",
			slog.String("port", cfg.Port),
			slog.String("generator_model", cfg.GeneratorModel),
			slog.String("embedding_model", cfg.EmbeddingModel))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
	log.Info("server stopped")
}
