// Command seed inserts the default biography, streaming status, partnerships
// and social media links, then exits. It is safe to run repeatedly and from
// several replicas at once.
package main

import (
	"context"
	"os"

	"github.com/ladypi89/website/backend/go-services/internal/config"
	"github.com/ladypi89/website/backend/go-services/internal/content/service"
	"github.com/ladypi89/website/backend/go-services/internal/database"
	"github.com/ladypi89/website/backend/go-services/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()
	client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
	if err != nil {
		logger.Fatalf("could not connect to MongoDB: %v", err)
	}

	svc := service.NewMongoService(ctx, client.Database(cfg.MongoDB.Database))
	err = svc.Bootstrap(ctx)
	_ = client.Disconnect(ctx)
	if err != nil {
		logger.Fatalf("seeding failed: %v", err)
	}
	logger.Infof("seeding complete (database=%s)", cfg.MongoDB.Database)
}
