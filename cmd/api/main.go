package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/life-engine/internal/config"
	"github.com/jwebster45206/life-engine/internal/handlers"
	"github.com/jwebster45206/life-engine/internal/logger"
	"github.com/jwebster45206/life-engine/internal/middleware"
	"github.com/jwebster45206/life-engine/internal/services/events"
	"github.com/jwebster45206/life-engine/internal/services/notices"
	"github.com/jwebster45206/life-engine/internal/session"
	"github.com/jwebster45206/life-engine/internal/storage"
	"github.com/jwebster45206/life-engine/pkg/world"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg)

	log.Info("Starting Life Engine API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"tick_interval", cfg.TickInterval)

	w := world.Default()
	if err := w.Validate(); err != nil {
		log.Error("World definition is invalid", "error", err)
		os.Exit(1)
	}

	store := storage.NewRedisStorage(cfg.RedisURL, cfg.SessionTTL, log)
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		log.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisURL})
	broadcaster := events.NewBroadcaster(redisClient, log)
	noticeQueue := notices.NewQueue(redisClient, log)

	manager := session.NewManager(store, w, broadcaster, cfg.TickInterval, cfg.SessionIdleTimeout, log)

	reaperCtx, reaperCancel := context.WithCancel(context.Background())
	defer reaperCancel()
	go manager.RunReaper(reaperCtx)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, log)
	mux.Handle("/health", healthHandler)

	sessionHandler := handlers.NewSessionHandler(manager, noticeQueue, broadcaster, log)
	playHandler := handlers.NewPlayHandler(manager, log)
	mux.Handle("/v1/sessions", sessionHandler)
	mux.Handle("/v1/sessions/", http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		// The play socket upgrades; everything else is plain JSON.
		if r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/play") {
			playHandler.ServeHTTP(rw, r)
			return
		}
		sessionHandler.ServeHTTP(rw, r)
	}))

	eventsHandler := handlers.NewEventsHandler(broadcaster, log)
	mux.Handle("/v1/events/sessions/", eventsHandler)

	worldHandler := handlers.NewWorldHandler(w, log)
	mux.Handle("/v1/world", worldHandler)

	handler := middleware.Logger(mux)
	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout stays unset so the SSE stream and play socket are
		// not cut off mid-connection.
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Server is shutting down...")

	reaperCancel()
	manager.Close()

	if err := store.Close(); err != nil {
		log.Error("Error closing storage connection", "error", err)
	}
	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis client", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
