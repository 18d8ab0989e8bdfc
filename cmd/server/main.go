package main

import (
	"context"   // context package is needed for Redis operations and shutdown
	"errors"    // Server close detection
	"net/http"  // HTTP server
	"os"        // Signals
	"os/signal" // Graceful shutdown
	"syscall"   // SIGTERM
	"time"      // Timeouts

	"feedback_system/internal/api"        // Custom package for API handlers
	"feedback_system/internal/config"     // Custom package for configuration
	"feedback_system/internal/db"         // Custom package for database setup
	"feedback_system/internal/events"     // Custom package for domain events
	"feedback_system/internal/repository" // Custom package for stores
	"feedback_system/internal/service"    // Custom package for use cases
	"feedback_system/internal/utils"      // Custom package for JWT and cache

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// setupLogger configures logrus from the config
func setupLogger(cfg *config.Config) {
	if cfg.IsProd {
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

// connectCache returns the analytics cache, or nil when Redis is not configured
func connectCache(cfg *config.Config) (service.Cache, *redis.Client) {
	if cfg.RedisAddr == "" {
		logrus.Info("REDIS_ADDR not set, analytics caching disabled")
		return nil, nil
	}
	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})
	// Test Redis connection
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	return utils.NewCache(redisClient, cfg.CacheTTL), redisClient
}

// connectPublisher returns the AMQP publisher, or a no-op one when AMQP is not configured
func connectPublisher(cfg *config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		logrus.Info("AMQP_URL not set, feedback events disabled")
		return events.Noop{}
	}
	pub, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		logrus.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	return pub
}

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	setupLogger(cfg)

	// Connect to the database and keep the schema current
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("failed to migrate DB: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logrus.Fatalf("failed to access DB pool: %v", err)
	}

	cache, redisClient := connectCache(cfg)
	publisher := connectPublisher(cfg)

	tokens, err := utils.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry.Duration())
	if err != nil {
		logrus.Fatalf("failed to set up tokens: %v", err)
	}

	users := repository.NewUserRepo(gdb)
	feedback := repository.NewFeedbackRepo(gdb)

	// Set Mode to Release if in production
	environment := "development"
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
		environment = "production"
	}

	router, err := api.NewRouter(api.Deps{
		Auth:           service.NewAuthService(users, nil, tokens),
		Feedback:       service.NewFeedbackService(feedback, cache, publisher),
		Analytics:      service.NewAnalyticsService(feedback, cache),
		Tokens:         tokens,
		Ping:           sqlDB.PingContext,
		Environment:    environment,
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		logrus.Fatalf("failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),       // Listen address
		Handler:           router,           // Gin engine
		ReadHeaderTimeout: 10 * time.Second, // Slow client protection
	}
	go func() {
		logrus.Info("Server running on " + cfg.Addr()) // Log server start
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("server failed: %v", err)
		}
	}()

	// Wait for SIGINT or SIGTERM, then drain in-flight requests
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logrus.Info("Shutting down gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("forced shutdown: %v", err)
	}
	if err := publisher.Close(); err != nil {
		logrus.Warnf("failed to close publisher: %v", err)
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	_ = sqlDB.Close()
	logrus.Info("Server closed")
}
