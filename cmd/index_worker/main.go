package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/repository/composite"
	"github.com/kingrain94/realty-api/internal/service"
	"github.com/kingrain94/realty-api/internal/service/pubsub"
	"github.com/kingrain94/realty-api/internal/service/queue"
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

	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	// Initialize OpenSearch
	osConfig := config.DefaultOpenSearchConfig()
	osClient, err := osConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to OpenSearch", err)
	}

	appLogger.Info("OpenSearch connection established for index worker")

	// Initialize Redis for job events
	redisClient, err := config.DefaultRedisConfig().GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()
	events := pubsub.NewRedisPubSub(redisClient, appLogger)

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	appLogger.Info("SQS connection established for index worker")

	repo := composite.NewCompositeRepository(dbConnections, osClient, osConfig)
	indexService := service.NewIndexService(repo, events, appLogger)

	sqsWorker := worker.NewSQSWorker(
		sqsService,
		sqsService.IndexQueueURL(),
		worker.NewIndexHandler(indexService),
		appLogger,
		3,             // 3 worker goroutines
		5*time.Second, // Poll every 5 seconds
	)

	// Start the worker
	sqsWorker.Start()
	appLogger.Info("Index worker started")

	// Wait for interrupt signal to gracefully shutdown the worker
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Stop the worker
	appLogger.Info("Shutting down worker...")
	sqsWorker.Stop()
	appLogger.Info("Worker stopped")
	appLogger.Sync()
}
