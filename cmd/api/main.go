// cmd/api/main.go
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/infrastructure/database"
	"github.com/luxfakia/storefront/internal/infrastructure/database/redis"
	"github.com/luxfakia/storefront/internal/interfaces/http"
	"github.com/luxfakia/storefront/internal/pkg/logger"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	resetDB := flag.Bool("reset-db", false, "drop every table before migrating (refused in production)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Infof("Starting %s", cfg.App.Name)

	db, err := database.NewConnection(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	migration := database.NewMigration(db.GetDB(), cfg, log)
	if *resetDB {
		if err := migration.DropAllTables(); err != nil {
			log.WithError(err).Fatal("Failed to reset database")
		}
	}
	if err := migration.RunAutoMigrations(); err != nil {
		log.WithError(err).Fatal("Database migration failed")
	}
	if failed := migration.CreateIndexes(); failed > 0 {
		log.WithField("failed", failed).Warn("Some indexes could not be created")
	}
	if err := migration.SeedInitialData(); err != nil {
		log.WithError(err).Warn("Data seeding failed")
	}

	var redisClient *goredis.Client
	if cfg.UsesRedis() {
		conn, err := redis.NewConnection(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer conn.Close()
		redisClient = conn.GetClient()
	} else {
		log.Warn("REDIS_HOST not set, sessions are kept in process memory")
	}

	server, err := http.NewServer(cfg, db, redisClient, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to build HTTP server")
	}

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}
