package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	natsio "github.com/nats-io/nats.go"

	"github.com/iratxeld/tripfinder/internal/adapters/http"
	"github.com/iratxeld/tripfinder/internal/adapters/mongodb"
	natsadapter "github.com/iratxeld/tripfinder/internal/adapters/nats"
	"github.com/iratxeld/tripfinder/internal/adapters/upstream"
	"github.com/iratxeld/tripfinder/internal/adapters/valkey"
	"github.com/iratxeld/tripfinder/internal/core/ports"
	"github.com/iratxeld/tripfinder/internal/core/usecases"
	"github.com/iratxeld/tripfinder/internal/pkg/config"
	"github.com/iratxeld/tripfinder/internal/pkg/logging"
	"github.com/iratxeld/tripfinder/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("tripfinder-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Document store. Optional: with no URI the saved-trips routes stay
	// registered but answer with store failures.
	var db *mongodb.DB
	if cfg.Mongo.URI != "" {
		db, err = mongodb.New(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
		if err != nil {
			log.Fatalf("mongodb: %v", err)
		}
		defer db.Close(ctx)
	} else {
		slog.Info("mongo.uri not set, saved trips persistence disabled")
	}

	// Cache
	var cacheSvc ports.CacheService
	var cache *valkey.Cache
	if cfg.Valkey.Addr != "" {
		cache, err = valkey.New(cfg.Valkey.Addr)
		if err != nil {
			slog.Warn("valkey unavailable", "error", err)
			cache = nil
		} else {
			defer cache.Close()
			cacheSvc = cache
		}
	}

	// NATS
	var events ports.EventPublisher
	var natsConn *natsio.Conn
	if cfg.NATS.URL != "" {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats unavailable", "error", err)
		} else {
			defer pub.Close()
			events = pub
		}

		// Raw connection for the WebSocket relay
		natsConn, err = natsadapter.RawConn(cfg.NATS.URL)
		if err != nil {
			slog.Warn("nats ws conn unavailable", "error", err)
		}
	}

	// Upstream trip-search client
	searcher := upstream.New(cfg.Upstream.URL, cfg.Upstream.APIKey,
		time.Duration(cfg.Upstream.Timeout)*time.Second)

	// Repos
	var savedTripRepo ports.SavedTripRepository
	if db != nil {
		savedTripRepo = mongodb.NewSavedTripRepo(db)
	}

	// Use cases
	searchSvc := usecases.NewSearchService(searcher, cacheSvc)
	savedTripSvc := usecases.NewSavedTripService(savedTripRepo, events)

	deps := &http.Dependencies{
		Search:     searchSvc,
		SavedTrips: savedTripSvc,
		NATS:       natsConn,
		DB:         db,
		Cache:      cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "TripFinder API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173",
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
