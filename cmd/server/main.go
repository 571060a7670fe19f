package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tripova/tourbase/internal/di"
	"github.com/tripova/tourbase/internal/handler"
	"github.com/tripova/tourbase/pkg/config"
	"github.com/tripova/tourbase/pkg/logger"
	"github.com/tripova/tourbase/pkg/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&logger.Config{
		Level:       logLevel(cfg),
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
		OutputPath:  "stdout",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Get().Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
	}); err != nil {
		logger.Fatal("failed to init telemetry", zap.Error(err))
	}

	container, err := di.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to build container", zap.Error(err))
	}
	defer container.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.NewRouter(container.Router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.App.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

func logLevel(cfg *config.Config) string {
	if cfg.App.Debug {
		return "debug"
	}
	return "info"
}
