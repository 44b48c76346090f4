// backend-go/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardiwinata/posbranch/backend-go/internal/api"
	"github.com/ardiwinata/posbranch/backend-go/internal/cache"
	"github.com/ardiwinata/posbranch/backend-go/internal/config"
	"github.com/ardiwinata/posbranch/backend-go/internal/replenish"
	"github.com/ardiwinata/posbranch/backend-go/internal/repository/postgres"
	"github.com/ardiwinata/posbranch/backend-go/internal/service"
	"github.com/ardiwinata/posbranch/backend-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize report cache; fall back to the noop cache when redis is off
	reportCache, err := cache.NewReplenishCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("report cache unavailable, running without it")
		reportCache = cache.NewNoopReplenishCache()
	}

	// Initialize services
	costs := replenish.CostConfig{
		OrderingCost:    cfg.Replenish.OrderingCost,
		HoldingRate:     cfg.Replenish.HoldingRate,
		DefaultItemCost: cfg.Replenish.DefaultItemCost,
	}
	replenishService := service.NewReplenishService(
		postgres.NewSalesRepository(db),
		postgres.NewProductRepository(db),
		postgres.NewPolicyRepository(db),
		reportCache,
		costs,
		cfg.Replenish.Workers,
	)
	transferService := service.NewTransferService(
		postgres.NewTransferRepository(db),
		postgres.NewLedgerRepository(db),
	)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		ReplenishService: replenishService,
		TransferService:  transferService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
