package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ladypi89/website/backend/go-services/internal/config"
	"github.com/ladypi89/website/backend/go-services/internal/database"
	"github.com/ladypi89/website/backend/go-services/internal/storage"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// dependency is one readiness check. Optional dependencies are reported
// but do not fail readiness.
type dependency struct {
	name     string
	required bool
	check    func(ctx context.Context) error
}

func readyHandler(cfg *config.Config, client *mongo.Client, rdb *redis.Client, media *storage.MinIOStorage) gin.HandlerFunc {
	deps := []dependency{{
		name:     "mongo",
		required: true,
		check:    func(ctx context.Context) error { return database.Ping(ctx, client, 2*time.Second) },
	}}
	if rdb != nil {
		deps = append(deps, dependency{
			name:     "redis",
			required: cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis,
			check:    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	if media != nil {
		deps = append(deps, dependency{name: "minio", check: media.Ping})
	}
	return readiness(deps)
}

// readiness returns 200 only when every required dependency answers.
func readiness(deps []dependency) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		ready := true
		status := map[string]bool{}
		for _, d := range deps {
			err := d.check(ctx)
			status[d.name] = err == nil
			if err != nil && d.required {
				ready = false
			}
		}

		uptime := time.Since(startTime).Round(time.Second).String()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": status, "uptime": uptime})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": status, "uptime": uptime})
	}
}
