// internal/router/router.go
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/karyadesa/karya-desa-backend/internal/apperrors"
	"github.com/karyadesa/karya-desa-backend/internal/config"
	"github.com/karyadesa/karya-desa-backend/internal/handlers"
	"github.com/karyadesa/karya-desa-backend/internal/middleware"
	"github.com/karyadesa/karya-desa-backend/internal/repository"
	"github.com/karyadesa/karya-desa-backend/internal/services"
	"github.com/karyadesa/karya-desa-backend/internal/utils"
)

// Options overrides collaborators that are otherwise built from config.
type Options struct {
	Storage   *services.StorageService
	Events    services.EventsCounter
	Policy    middleware.Authorizer
	StartedAt time.Time
}

func Initialize(store *repository.Store, cfg *config.Config, opts Options) (*gin.Engine, error) {
	if opts.Storage == nil {
		storage, err := services.NewStorageService(cfg.AWS, fmt.Sprintf("http://localhost:%s", cfg.Server.Port))
		if err != nil {
			return nil, err
		}
		opts.Storage = storage
	}
	if opts.Events == nil {
		opts.Events = services.NewEventsClient(cfg.Events)
	}
	if opts.Policy == nil {
		opts.Policy = middleware.DefaultPolicy()
	}
	if opts.StartedAt.IsZero() {
		opts.StartedAt = time.Now()
	}

	// Initialize services
	notificationService := services.NewNotificationService(store.Notifications)
	authService := services.NewAuthService(store.Users, cfg.JWT)
	productService := services.NewProductService(store.Products)
	orderService := services.NewOrderService(store.Products, store.Orders)
	reportService := services.NewReportService(store.Orders)
	profileService := services.NewMsmeProfileService(store.MsmeProfiles)
	communityService := services.NewCommunityService(store.Users, store.MsmeProfiles, store.News, store.Tourism, opts.Events)
	adminService := services.NewAdminService(store.Users, store.MsmeProfiles, store.Orders, notificationService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(opts.StartedAt)
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	orderHandler := handlers.NewOrderHandler(orderService)
	reportHandler := handlers.NewReportHandler(reportService)
	communityHandler := handlers.NewCommunityHandler(communityService, opts.Storage)
	profileHandler := handlers.NewMsmeProfileHandler(profileService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(adminService)

	limiters := middleware.NewRateLimiters(cfg.RateLimit)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	// Audit sits outside the limiter and policy so rejected writes are recorded too.
	r.Use(middleware.AuditLogMiddleware(store.AuditLogs))
	r.Use(limiters.General.Middleware())
	r.Use(middleware.Authorize(opts.Policy))

	r.NoRoute(func(c *gin.Context) {
		utils.ErrorResponse(c, http.StatusNotFound, string(apperrors.KindNotFound), "Route not found", nil)
	})

	r.GET("/health", healthHandler.Health)

	if !opts.Storage.UsesS3() {
		r.Static(services.LocalUploadsPath, cfg.AWS.UploadDir)
	}

	auth := r.Group("/auth")
	auth.Use(limiters.Auth.Middleware())
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", authHandler.Me)
	}

	products := r.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.POST("", productHandler.CreateProduct)
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}

	orders := r.Group("/orders")
	{
		orders.GET("", orderHandler.GetOrders)
		orders.POST("", orderHandler.CreateOrder)
		orders.PATCH("/:id/status", orderHandler.UpdateOrderStatus)
	}

	r.GET("/reports/sales", reportHandler.GetSalesSummary)

	community := r.Group("/community")
	{
		community.GET("/home", communityHandler.GetHome)
		community.POST("/news", communityHandler.CreateNews)
		community.DELETE("/news/:id", communityHandler.DeleteNews)
		community.POST("/tourism", communityHandler.CreateTourismSpot)
		community.DELETE("/tourism/:id", communityHandler.DeleteTourismSpot)
		community.POST("/tourism/images", limiters.Uploads.Middleware(), communityHandler.UploadTourismImage)
	}

	msme := r.Group("/msme")
	{
		msme.GET("/profile", profileHandler.GetProfile)
		msme.PUT("/profile", profileHandler.UpdateProfile)
	}

	notifications := r.Group("/notifications")
	{
		notifications.GET("", notificationHandler.GetNotifications)
		notifications.POST("", notificationHandler.CreateNotification)
		notifications.POST("/:id/read", notificationHandler.MarkRead)
	}

	admin := r.Group("/admin")
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)
		admin.GET("/msmes", adminHandler.GetMsmes)
		admin.PATCH("/msmes/:id", adminHandler.UpdateMsmeStatus)
	}

	return r, nil
}
