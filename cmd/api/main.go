package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kingrain94/realty-api/docs"
	"github.com/kingrain94/realty-api/internal/api"
	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/middleware"
	"github.com/kingrain94/realty-api/internal/repository/composite"
	"github.com/kingrain94/realty-api/internal/repository/postgres"
	"github.com/kingrain94/realty-api/internal/service"
	"github.com/kingrain94/realty-api/internal/service/cache"
	"github.com/kingrain94/realty-api/internal/service/media"
	"github.com/kingrain94/realty-api/internal/service/pubsub"
	"github.com/kingrain94/realty-api/internal/service/queue"
	"github.com/kingrain94/realty-api/internal/service/scraper"
	"github.com/kingrain94/realty-api/internal/service/storage"
	"github.com/kingrain94/realty-api/pkg/logger"
)

// @title           Realty content API
// @version         1.0
// @description     Multi-tenant content API for real-estate agency sites.

// @host      localhost:10000
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-Api-Key
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

	appLogger.Info("Database connections established - writer and reader connected")

	if cfg.AutoMigrate {
		if err := postgres.Migrate(dbConnections.Writer); err != nil {
			appLogger.Fatal("Failed to migrate database", err)
		}
		appLogger.Info("Database schema migrated")
	}

	// Initialize OpenSearch
	osConfig := config.DefaultOpenSearchConfig()
	osClient, err := osConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to OpenSearch", err)
	}

	// Initialize Redis
	redisConfig := config.DefaultRedisConfig()
	redisClient, err := redisConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", err)
	}
	defer redisClient.Close()

	// Initialize Redis pub/sub
	redisPubSub := pubsub.NewRedisPubSub(redisClient, appLogger)

	// Initialize SQS
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	// Initialize S3
	s3Config := config.DefaultS3Config()
	s3Client, err := s3Config.GetClient(context.Background())
	if err != nil {
		appLogger.Fatal("Failed to connect to S3", err)
	}
	photoStorage := storage.NewS3Storage(s3Client, s3Config)

	repo := composite.NewCompositeRepository(dbConnections, osClient, osConfig)

	// Initialize services
	listingService := service.NewListingService(repo, sqsService, photoStorage, appLogger)
	photoService := service.NewPhotoService(repo, photoStorage, media.NewProcessor(), redisPubSub, appLogger)
	services := api.Services{
		Tenant:         service.NewTenantService(repo, cache.NewTenantCache(redisClient, cfg.TenantCacheTTL), appLogger),
		Listing:        listingService,
		ListingComplex: service.NewListingComplexService(repo, photoStorage, appLogger),
		BlogPost:       service.NewBlogPostService(repo, photoStorage, appLogger),
		ClubStory:      service.NewClubStoryService(repo, photoStorage, appLogger),
		Testimonial:    service.NewTestimonialService(repo, appLogger),
		Variable:       service.NewVariableService(repo, appLogger),
		Photo:          photoService,
		Preview:        service.NewPreviewService(repo, cfg.PreviewSecretKey, cfg.PreviewTokenTTL, cfg.PreviewBaseURL),
		Scrape: service.NewScrapeService(
			sqsService,
			sqsService,
			redisPubSub,
			scraper.NewFetcher(float64(cfg.ScraperRPS)),
			listingService,
			photoService,
			appLogger,
		),
		Subscriber: service.NewSubscriberService(repo, sqsService, sqsService, redisPubSub, cfg.JWTSecretKey, cfg.PublicBaseURL, appLogger),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger)
	validationMiddleware := middleware.NewValidationMiddleware(appLogger)

	// Initialize server
	server := api.NewServer(
		services,
		cfg,
		authMiddleware,
		rateLimitMiddleware,
		validationMiddleware,
		appLogger,
		redisPubSub,
	)

	// Start WebSocket hub
	server.StartWebSocketHub()

	// Initialize router
	router := gin.Default()
	router.Use(middleware.Metrics())

	// Swagger documentation endpoint
	docs.SwaggerInfo.Title = "Realty content API"
	docs.SwaggerInfo.Description = "Multi-tenant content API for real-estate agency sites"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", cfg.ServerPort)
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Swagger UI endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Setup API routes
	apiGroup := router.Group("/api/v1")
	server.SetupRoutes(apiGroup)

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	// Shutdown the HTTP server
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", err)
	}
	server.StopWebSocketHub()

	appLogger.Info("Server exiting")
	appLogger.Sync()
}
