package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/repository/postgres"
	"github.com/kingrain94/realty-api/internal/service"
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

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	// Initialize PostgreSQL with database connections
	dbConnections, err := config.NewDatabaseConnections()
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", err)
	}
	defer dbConnections.Close()

	pgRepo := postgres.NewPostgresRepository(dbConnections)

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	scheduler := worker.NewPurgeScheduler(
		pgRepo.Tenant(),
		sqsService,
		appLogger,
		cfg.PurgeInterval,
		service.ConfirmationTTL,
	)

	cleanupWorker := worker.NewSQSWorker(
		sqsService,
		sqsService.CleanupQueueURL(),
		worker.NewCleanupHandler(pgRepo.Subscriber(), appLogger),
		appLogger,
		1,
		5*time.Second,
	)

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	scheduler.Start()
	cleanupWorker.Start()
	appLogger.Info("Cleanup worker started")

	// Wait for shutdown signal
	<-sigChan
	appLogger.Info("Shutting down cleanup worker...")

	scheduler.Stop()
	cleanupWorker.Stop()
	appLogger.Info("Cleanup worker stopped")
	appLogger.Sync()
}
