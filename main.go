package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ladypi89/website/backend/go-services/handlers"
	"github.com/ladypi89/website/backend/go-services/internal/config"
	"github.com/ladypi89/website/backend/go-services/internal/content/handler"
	"github.com/ladypi89/website/backend/go-services/internal/content/service"
	"github.com/ladypi89/website/backend/go-services/internal/database"
	"github.com/ladypi89/website/backend/go-services/internal/storage"
	"github.com/ladypi89/website/backend/go-services/pkg/logger"
	"github.com/ladypi89/website/backend/go-services/pkg/metrics"
	"github.com/ladypi89/website/backend/go-services/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	if err := run(); err != nil {
		logger.Fatalf("%v", err)
	}
}

// run returns instead of exiting so deferred cleanup of the Mongo and Redis
// clients always executes.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Debugf("log level %s", logger.LevelString())
	logger.Infof("config loaded: env=%s redis=%v minio=%v seed_on_startup=%v", cfg.Server.Environment, cfg.Redis.Host != "", cfg.MinIO.Endpoint != "", cfg.Seed.OnStartup)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Retry/backoff when connecting to MongoDB to tolerate startup races
	client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
	if err != nil {
		return fmt.Errorf("could not connect to MongoDB: %w", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	svc := service.NewMongoService(ctx, client.Database(cfg.MongoDB.Database))

	if cfg.Seed.OnStartup {
		if err := svc.Bootstrap(ctx); err != nil {
			return fmt.Errorf("bootstrap seeding failed: %w", err)
		}
		logger.Infof("bootstrap seeding complete")
	}

	var rdb *redis.Client
	if addr := cfg.Redis.Addr(); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", addr, err)
		} else {
			logger.Infof("connected to Redis: %s", addr)
		}
		defer func() { _ = rdb.Close() }()
	}

	var media *storage.MinIOStorage
	if cfg.MinIO.Endpoint != "" {
		media, err = storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("media storage disabled: %v", err)
			media = nil
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.AccessLog(), middleware.CORS(cfg.CORS.Origins, cfg.CORS.AllowCredentials))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	r.GET("/ready", readyHandler(cfg, client, rdb, media))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	handlers.RegisterSwagger(r)

	api := r.Group("/api")
	var opts []handler.Option
	if cfg.RateLimit.Enabled {
		api.Use(rateLimiter(cfg, rdb, "api", cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		opts = append(opts, handler.WithContactMiddleware(rateLimiter(cfg, rdb, "contact", cfg.RateLimit.ContactRPS, cfg.RateLimit.ContactBurst)))
	}
	handler.RegisterContentRoutes(api, svc, opts...)
	if media != nil {
		handlers.RegisterMediaRoutes(api, media, cfg.Media.MaxUploadBytes, cfg.Media.URLTTL)
		logger.Infof("media endpoints enabled (bucket=%s)", media.Bucket())
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return serve(ctx, srv, cfg.Server.ShutdownTimeout)
}

// serve runs srv until ctx is cancelled, then shuts it down. A listener
// failure is returned to the caller.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("starting site API on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	logger.Infof("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
	return nil
}

// rateLimiter picks the Redis fixed-window limiter when configured and
// reachable, otherwise the in-memory token bucket.
func rateLimiter(cfg *config.Config, rdb *redis.Client, scope string, rps float64, burst int) gin.HandlerFunc {
	if cfg.RateLimit.UseRedis && rdb != nil {
		win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		return middleware.RedisRateLimitMiddleware(rdb, scope, rps, burst, win)
	}
	return middleware.RateLimitMiddleware(scope, rps, burst)
}
