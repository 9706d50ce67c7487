// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gaming-palace/storefront/internal/config"
	"github.com/gaming-palace/storefront/internal/domain/payment"
	"github.com/gaming-palace/storefront/internal/infrastructure/database/postgres"
	"github.com/gaming-palace/storefront/internal/infrastructure/database/redis"
	"github.com/gaming-palace/storefront/internal/interfaces/http"
	"github.com/gaming-palace/storefront/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.New(cfg)
	appLogger.WithField("environment", cfg.App.Environment).Infof("Starting %s v%s", cfg.App.Name, cfg.App.Version)

	db, err := postgres.NewConnection(cfg, appLogger)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	opts := []http.Option{}

	// Redis only backs rate limiting; the API runs without it
	redisClient, err := redis.NewConnection(cfg, appLogger)
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, rate limiting disabled")
	} else {
		defer redisClient.Close()
		opts = append(opts, http.WithRedis(redisClient.GetClient()))
	}

	migration := postgres.NewMigration(db.GetDB(), appLogger)
	if err := migration.RunAutoMigrations(); err != nil {
		appLogger.WithError(err).Fatal("Database migration failed")
	}
	if err := migration.CreateIndexes(); err != nil {
		appLogger.WithError(err).Warn("Index creation failed")
	}
	if cfg.IsDevelopment() {
		if err := migration.SeedInitialData(context.Background()); err != nil {
			appLogger.WithError(err).Warn("Data seeding failed")
		}
	}

	if cfg.PaymentsEnabled() {
		opts = append(opts, http.WithGateway(payment.NewStripeGateway(cfg.External.Stripe, appLogger)))
	} else {
		appLogger.Warn("STRIPE_SECRET_KEY not set, payment endpoints are disabled")
	}

	server := http.NewServer(cfg, appLogger, db.GetDB(), opts...)

	go func() {
		if err := server.Start(); err != nil {
			appLogger.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLogger.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	appLogger.Info("Server shutdown completed")
}
