package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/realty-api/internal/config"
	"github.com/kingrain94/realty-api/internal/domain"
	"github.com/kingrain94/realty-api/internal/middleware"
	"github.com/kingrain94/realty-api/internal/service"
	"github.com/kingrain94/realty-api/pkg/logger"
)

// Services are the application services the HTTP layer exposes.
type Services struct {
	Tenant         *service.TenantService
	Listing        *service.ListingService
	ListingComplex *service.ListingComplexService
	BlogPost       *service.BlogPostService
	ClubStory      *service.ClubStoryService
	Testimonial    *service.TestimonialService
	Variable       *service.VariableService
	Photo          *service.PhotoService
	Preview        *service.PreviewService
	Scrape         *service.ScrapeService
	Subscriber     *service.SubscriberService
}

type Server struct {
	tenant         *TenantHandler
	listing        *ListingHandler
	listingComplex *ListingComplexHandler
	blogPost       *BlogPostHandler
	clubStory      *ClubStoryHandler
	testimonial    *TestimonialHandler
	variable       *VariableHandler
	photo          *PhotoHandler
	preview        *PreviewHandler
	scrape         *ScrapeHandler
	subscriber     *SubscriberHandler
	websocket      *WebSocketHandler
	auth           *middleware.AuthMiddleware
	tenants        *middleware.TenantMiddleware
	rateLimit      *middleware.RateLimitMiddleware
	validation     *middleware.ValidationMiddleware
	config         *config.Config
}

func NewServer(
	services Services,
	cfg *config.Config,
	auth *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	validation *middleware.ValidationMiddleware,
	logger *logger.Logger,
	events EventSubscriber,
) *Server {
	RegisterValidators()
	return &Server{
		tenant:         NewTenantHandler(services.Tenant),
		listing:        NewListingHandler(services.Listing),
		listingComplex: NewListingComplexHandler(services.ListingComplex),
		blogPost:       NewBlogPostHandler(services.BlogPost),
		clubStory:      NewClubStoryHandler(services.ClubStory),
		testimonial:    NewTestimonialHandler(services.Testimonial),
		variable:       NewVariableHandler(services.Variable),
		photo:          NewPhotoHandler(services.Photo, cfg.MaxUploadBytes),
		preview:        NewPreviewHandler(services.Preview),
		scrape:         NewScrapeHandler(services.Scrape),
		subscriber:     NewSubscriberHandler(services.Subscriber),
		websocket:      NewWebSocketHandler(events, logger),
		auth:           auth,
		tenants:        middleware.NewTenantMiddleware(services.Tenant, logger),
		rateLimit:      rateLimit,
		validation:     validation,
		config:         cfg,
	}
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	// Apply security middleware first
	api.Use(s.validation.BlockSuspiciousPatterns())
	api.Use(s.validation.ValidateRequestSize(s.config.MaxUploadBytes + 1024*1024))
	api.Use(s.validation.ValidateContentType("application/json", "multipart/form-data"))

	// Apply global rate limiting
	api.Use(s.rateLimit.GlobalRateLimit(s.config.GlobalRateLimit))
	api.Use(middleware.Locale(s.config.SupportedLocales))

	public := api.Group("", s.tenants.ResolveTenant(), s.rateLimit.TenantRateLimit())
	{
		public.GET("/tenant", s.tenant.CurrentTenant)

		public.GET("/listings", s.listing.ListListings)
		public.GET("/listings/:slug", s.listing.GetListing)
		public.GET("/listing-complexes", s.listingComplex.ListListingComplexes)
		public.GET("/listing-complexes/:slug", s.listingComplex.GetListingComplex)
		public.GET("/blog-posts", s.blogPost.ListBlogPosts)
		public.GET("/blog-posts/:slug", s.blogPost.GetBlogPost)
		public.GET("/club-stories", s.clubStory.ListClubStories)
		public.GET("/club-stories/:slug", s.clubStory.GetClubStory)
		public.GET("/testimonials", s.testimonial.ListTestimonials)
		public.GET("/variables", s.variable.ListVariables)
		public.GET("/variables/:slug", s.variable.GetVariable)

		public.GET("/preview", s.preview.GetPreview)

		public.POST("/subscribers", s.subscriber.Subscribe)
		public.GET("/subscribers/confirm", s.subscriber.ConfirmSubscription)
	}

	tenants := api.Group("/tenants", s.auth.JWTAuth(), s.auth.RequireSuperAdmin())
	{
		tenants.POST("", s.tenant.CreateTenant)
		tenants.GET("", s.tenant.ListTenants)
		tenants.GET("/:id", s.tenant.GetTenant)
		tenants.PATCH("/:id", s.tenant.UpdateTenant)
		tenants.POST("/:id/rotate-key", s.tenant.RotateAPIKey)
		tenants.DELETE("/:id", s.tenant.DeleteTenant)
	}

	admin := api.Group("/admin", s.auth.JWTAuth(), s.tenants.AdminTenant(), s.rateLimit.TenantRateLimit())
	content := admin.Group("", s.auth.RequireRole(domain.RoleAdmin, domain.RoleEditor))
	{
		content.GET("/listings", s.listing.AdminListListings)
		content.POST("/listings", s.listing.CreateListing)
		content.GET("/listings/:id", s.listing.AdminGetListing)
		content.PUT("/listings/:id", s.listing.UpdateListing)
		content.DELETE("/listings/:id", s.listing.DeleteListing)

		content.GET("/listing-complexes", s.listingComplex.AdminListListingComplexes)
		content.POST("/listing-complexes", s.listingComplex.CreateListingComplex)
		content.GET("/listing-complexes/:id", s.listingComplex.AdminGetListingComplex)
		content.PUT("/listing-complexes/:id", s.listingComplex.UpdateListingComplex)
		content.PATCH("/listing-complexes/:id/reorder", s.listingComplex.ReorderListingComplex)
		content.DELETE("/listing-complexes/:id", s.listingComplex.DeleteListingComplex)

		content.GET("/blog-posts", s.blogPost.AdminListBlogPosts)
		content.POST("/blog-posts", s.blogPost.CreateBlogPost)
		content.GET("/blog-posts/:id", s.blogPost.AdminGetBlogPost)
		content.PUT("/blog-posts/:id", s.blogPost.UpdateBlogPost)
		content.DELETE("/blog-posts/:id", s.blogPost.DeleteBlogPost)

		content.GET("/club-stories", s.clubStory.AdminListClubStories)
		content.POST("/club-stories", s.clubStory.CreateClubStory)
		content.GET("/club-stories/:id", s.clubStory.AdminGetClubStory)
		content.PUT("/club-stories/:id", s.clubStory.UpdateClubStory)
		content.DELETE("/club-stories/:id", s.clubStory.DeleteClubStory)

		content.GET("/testimonials", s.testimonial.AdminListTestimonials)
		content.POST("/testimonials", s.testimonial.CreateTestimonial)
		content.GET("/testimonials/:id", s.testimonial.AdminGetTestimonial)
		content.PUT("/testimonials/:id", s.testimonial.UpdateTestimonial)
		content.DELETE("/testimonials/:id", s.testimonial.DeleteTestimonial)

		content.GET("/variables", s.variable.AdminListVariables)
		content.POST("/variables", s.variable.CreateVariable)
		content.GET("/variables/:id", s.variable.AdminGetVariable)
		content.PUT("/variables/:id", s.variable.UpdateVariable)
		content.DELETE("/variables/:id", s.variable.DeleteVariable)

		s.photo.RegisterRoutes(content)

		content.POST("/preview", s.preview.IssuePreview)
		content.POST("/scrape", s.scrape.EnqueueScrape)
		content.GET("/events", s.websocket.HandleWebSocket)
	}

	settings := admin.Group("", s.auth.RequireRole(domain.RoleAdmin))
	{
		settings.POST("/listings/reindex", s.listing.ReindexListings)
		settings.GET("/subscribers", s.subscriber.ListSubscribers)
		settings.POST("/subscribers/purge", s.subscriber.PurgeSubscribers)
		settings.DELETE("/subscribers/:id", s.subscriber.DeleteSubscriber)
	}
}

// StartWebSocketHub starts the WebSocket hub for broadcasting events
func (s *Server) StartWebSocketHub() {
	go s.websocket.Start()
}

// StopWebSocketHub closes the hub and its Redis subscriptions
func (s *Server) StopWebSocketHub() {
	s.websocket.Stop()
}
