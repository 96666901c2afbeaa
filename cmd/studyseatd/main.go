package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"studyseat-dashboard/config"
	"studyseat-dashboard/internal/api"
	"studyseat-dashboard/internal/backend"
	"studyseat-dashboard/internal/db"
	"studyseat-dashboard/internal/layout"
	"studyseat-dashboard/internal/notification"
	"studyseat-dashboard/internal/state"
	"studyseat-dashboard/internal/store"
	syncsvc "studyseat-dashboard/internal/sync"
)

func main() {
	logger := log.New(os.Stdout, "studyseat-dashboard ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	appStore := store.NewGormStore(gormDB)

	// The room/table model is built once at startup with the configured shape;
	// occupancy is rebuilt from the backend on every refresh.
	rooms, tables := layout.BuildRooms(cfg.Layout.Rooms, cfg.Layout.TablesPerRoom)
	cache := state.NewCache(rooms, tables)
	logger.Printf("room layout initialized: %d rooms, %d tables", len(rooms), len(tables))

	client := backend.NewClient(&cfg.Backend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var webpushOptions *webpush.Options
	var workerPool *notification.WorkerPool
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		// Started here rather than by the refresh service: command handlers
		// dispatch expiry alerts too, even when the background loop is disabled.
		workerPool = notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions)
		workerPool.Start(ctx)
	} else {
		logger.Println("VAPID keys are not configured; payment expiry alerts are disabled")
	}

	refresher := syncsvc.NewService(cfg, client, cache, workerPool)
	go refresher.Run(ctx)

	router := api.NewRouter(cfg, cache, client, refresher, appStore, webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
