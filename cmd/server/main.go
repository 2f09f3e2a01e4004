package main

import (
	"context"   // Redis ping and shutdown deadline
	"errors"    // Error matching
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Signal notification
	"syscall"   // SIGTERM
	"time"      // Server timeouts

	"esg_portal/internal/api"    // Custom package for API handlers
	"esg_portal/internal/config" // Custom package for configuration
	"esg_portal/internal/db"     // Database connection
	"esg_portal/internal/store"  // Persistence

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// setupLogger configures the global logrus logger
func setupLogger(cfg *config.Config) {
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	setupLogger(cfg)

	gdb, err := db.Open(cfg) // Connect to the database
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client when configured
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_, err = redisClient.Ping(pingCtx).Result()
		cancel()
		if err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Info("REDIS_ADDR not set, response caching disabled")
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := api.NewRouter(api.Deps{
		Store:     store.New(gdb),
		Redis:     redisClient,
		JWTSecret: cfg.JWTSecret,
		CacheTTL:  cfg.CacheTTL,
	})
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second, // PDF rendering is synchronous
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logrus.Infof("Server running on %s", cfg.AppPort) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("forced shutdown: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
