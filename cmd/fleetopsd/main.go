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

	"fleet-ops-backend/config"
	"fleet-ops-backend/internal/api"
	"fleet-ops-backend/internal/db"
	"fleet-ops-backend/internal/notification"
	"fleet-ops-backend/internal/schedule"
	"fleet-ops-backend/internal/state"
	"fleet-ops-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "fleet-ops ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	// Bulk-fetch all tables into the in-memory snapshot. All-or-nothing:
	// the first error aborts startup.
	appState := state.New()
	if err := appState.Load(ctx, appStore); err != nil {
		logger.Fatalf("failed to load initial snapshot: %v", err)
	}
	logger.Println("initial snapshot loaded")

	// Keep the snapshot in sync with writes from other sessions.
	refresher := state.NewRefresher(&cfg.Refresh, appState, appStore)
	go refresher.Run(ctx)

	tz := time.Local
	if cfg.Schedule.Timezone != "" {
		loc, err := time.LoadLocation(cfg.Schedule.Timezone)
		if err != nil {
			logger.Fatalf("invalid schedule timezone %q: %v", cfg.Schedule.Timezone, err)
		}
		tz = loc
	}

	// Notification worker pool for assignment-change pushes. It shares
	// the schedule timezone so "today" means the same calendar day in
	// both places.
	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpushOptions, tz)
	workerPool.Start(ctx)

	scheduleSvc := schedule.NewService(appStore, appState, workerPool, tz)

	// Initialize router
	handler := api.NewHandler(appStore, appState, scheduleSvc, &webpushOptions)
	router := api.NewRouter(handler, &cfg.Server)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	// Create a deadline to wait for.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
