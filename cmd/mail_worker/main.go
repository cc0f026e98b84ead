package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/service/mailer"
	"github.com/kingrain94/realty-api/internal/service/queue"
	"github.com/kingrain94/realty-api/internal/worker"
	"github.com/kingrain94/realty-api/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"), os.Getenv("LOG_FILE"))

	mailerConfig := config.DefaultMailerConfig()
	if mailerConfig.From == "" {
		appLogger.Warn("MAILER_FROM and GMAIL_EMAIL are empty, mails will be rejected by the SMTP server")
	}
	smtpMailer := mailer.NewMailer(mailerConfig, appLogger)

	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	sqsWorker := worker.NewSQSWorker(
		sqsService,
		sqsService.MailQueueURL(),
		worker.NewMailHandler(smtpMailer),
		appLogger,
		2,
		5*time.Second,
	)

	sqsWorker.Start()
	appLogger.Info("Mail worker started", zap.String("smtp", mailerConfig.Addr()))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down worker...")
	sqsWorker.Stop()
	appLogger.Info("Worker stopped")
	appLogger.Sync()
}
