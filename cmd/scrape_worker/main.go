package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/repository/composite"
	"github.com/kingrain94/realty-api/internal/service"
	"github.com/kingrain94/realty-api/internal/service/cache"
	"github.com/kingrain94/realty-api/internal/service/media"
	"github.com/kingrain94/realty-api/internal/service/pubsub"
	"github.com/kingrain94/realty-api/internal/service/queue"
	"github.com/kingrain94/realty-api/internal/service/scraper"
	"github.com/kingrain94/realty-api/internal/service/storage"
	"github.com/kingrain94/realty-api/internal/worker"
	"github.com/kingrain94/realty-api/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize logger
	appLogger := logger.NewLogger(os.Getenv("APP_ENV"), os.Getenv("LOG_FILE"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	osConfig := config.DefaultOpenSearchConfig()
	osClient, err := osConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to OpenSearch", err)
	}

	redisClient, err := config.DefaultRedisConfig().GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	events := pubsub.NewRedisPubSub(redisClient, appLogger)

	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	s3Config := config.DefaultS3Config()
	s3Client, err := s3Config.GetClient(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to connect to S3", err)
	}
	photoStorage := storage.NewS3Storage(s3Client, s3Config)

	repo := composite.NewCompositeRepository(dbConnections, osClient, osConfig)

	tenantService := service.NewTenantService(repo, cache.NewTenantCache(redisClient, cfg.TenantCacheTTL), appLogger)
	listingService := service.NewListingService(repo, sqsService, photoStorage, appLogger)
	photoService := service.NewPhotoService(repo, photoStorage, media.NewProcessor(), events, appLogger)
	scrapeService := service.NewScrapeService(
		sqsService,
		sqsService,
		events,
		scraper.NewFetcher(float64(cfg.ScraperRPS)),
		listingService,
		photoService,
		appLogger,
	)

	// A single poller keeps the source site throttle meaningful
	sqsWorker := worker.NewSQSWorker(
		sqsService,
		sqsService.ScrapeQueueURL(),
		worker.NewScrapeHandler(tenantService, scrapeService, appLogger),
		appLogger,
		1,
		5*time.Second,
	)

	sqsWorker.Start()
	appLogger.Info("Scrape worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down worker...")
	sqsWorker.Stop()
	appLogger.Info("Worker stopped")
	appLogger.Sync()
}
