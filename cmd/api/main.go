// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/ecommerce-platform/internal/config"
	"github.com/your-org/ecommerce-platform/internal/infrastructure/database/postgres"
	"github.com/your-org/ecommerce-platform/internal/infrastructure/database/redis"
	"github.com/your-org/ecommerce-platform/internal/interfaces/http"
	"github.com/your-org/ecommerce-platform/internal/pkg/logger"
	"github.com/your-org/ecommerce-platform/internal/pkg/password"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The configured logger needs a valid config.
		logger.New(config.LoggingConfig{Level: "info", Format: "json"}).
			WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg.Logging)
	log.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("🚀 Starting application")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	if err := run(context.Background(), cfg, log, quit); err != nil {
		log.WithError(err).Error("❌ Application stopped with error")
		os.Exit(1)
	}
}

// run owns every resource of the process. It returns once quit fires or a
// startup step fails, after releasing what it opened.
func run(ctx context.Context, cfg *config.Config, log *logrus.Logger, quit <-chan os.Signal) error {
	db, err := postgres.NewConnection(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// The service does not accept traffic on a partial schema.
	migration := postgres.NewMigration(db.GetDB(), log)

	migrateCtx, cancel := context.WithTimeout(ctx, cfg.Database.MigrationTimeout)
	err = migration.Run(migrateCtx)
	cancel()
	if err != nil {
		return fmt.Errorf("database schema initialization failed: %w", err)
	}

	if cfg.Database.Seed {
		if err := migration.SeedInitialData(ctx, password.NewHasher(cfg.Security.BcryptCost)); err != nil {
			return fmt.Errorf("data seeding failed: %w", err)
		}
	}
	if cfg.IsDevelopment() {
		if _, err := migration.GetTableInfo(ctx); err != nil {
			log.WithError(err).Warn("Failed to read table info")
		}
	}

	var redisClient *goredis.Client
	if cfg.Redis.Enabled {
		client, err := redis.NewConnection(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client.GetClient()
	}

	log.Info("✅ All systems operational!")

	server := http.NewServer(cfg, log, db.GetDB(), redisClient)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("👋 Shutting down gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		return err
	}

	log.Info("✅ Server shutdown completed")
	return nil
}
