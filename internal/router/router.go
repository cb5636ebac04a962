package router

import (
	"time"

	"auromart/internal/config"
	"auromart/internal/handler"
	"auromart/internal/infra"
	"auromart/internal/middleware"
	"auromart/internal/model"
	"auromart/internal/repository"
	"auromart/internal/service"
	"auromart/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, whatsappCB *infra.CircuitBreaker, store infra.InvoiceStore) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst))

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	partnershipRepo := repository.NewPartnershipRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	searchRepo := repository.NewSearchHistoryRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	cacheTTL := time.Duration(cfg.CatalogCacheTTLSeconds) * time.Second
	dispatcher := worker.NewDispatcher(rdb)

	authSvc := service.NewAuthService(userRepo, cfg)
	categorySvc := service.NewCategoryService(categoryRepo)
	productSvc := service.NewProductService(productRepo, categoryRepo, inventoryRepo, rdb, cacheTTL)
	inventorySvc := service.NewInventoryService(inventoryRepo, productRepo, rdb, cacheTTL)
	orderSvc := service.NewOrderService(orderRepo, userRepo, productRepo, inventoryRepo, notificationRepo, dispatcher,
		service.OrderOptions{StrictTransitions: cfg.OrderStrictTransitions})
	invoiceSvc := service.NewInvoiceService(invoiceRepo, orderRepo, store, dispatcher)
	partnershipSvc := service.NewPartnershipService(partnershipRepo, userRepo, notificationRepo, dispatcher)
	favoriteSvc := service.NewFavoriteService(favoriteRepo, userRepo)
	notificationSvc := service.NewNotificationService(notificationRepo)
	analyticsSvc := service.NewAnalyticsService(orderRepo, userRepo, productRepo)
	searchSvc := service.NewSearchService(searchRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	catalogH := handler.NewCatalogHandler(categorySvc, productSvc, partnershipSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	ordersH := handler.NewOrdersHandler(orderSvc, invoiceSvc)
	partnershipsH := handler.NewPartnershipsHandler(partnershipSvc, favoriteSvc)
	activityH := handler.NewActivityHandler(notificationSvc, analyticsSvc, searchSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, whatsappCB))

	api := r.Group("/api")

	// Public
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.LoginRateLimiter(), authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}
	api.GET("/categories", catalogH.ListCategories)
	api.GET("/products", catalogH.ListProducts)
	api.GET("/products/search", catalogH.SearchProducts)
	api.GET("/products/:id", catalogH.GetProduct)

	// Protected
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	p := api.Group("", jwtMW)
	{
		p.GET("/auth/user", authH.Me)
		p.PATCH("/auth/user", authH.UpdateProfile)

		p.POST("/categories", middleware.RequireRole(model.RoleAdmin), catalogH.CreateCategory)
		p.POST("/products", middleware.RequireRole(model.RoleManufacturer), catalogH.CreateProduct)
		p.GET("/distributors", catalogH.ListDistributors)

		inv := p.Group("/inventory", middleware.RequireRole(model.RoleDistributor))
		{
			inv.GET("", inventoryH.List)
			inv.PUT("", inventoryH.Upsert)
		}

		orders := p.Group("/orders")
		{
			orders.GET("", ordersH.List)
			orders.POST("", middleware.RequireRole(model.RoleRetailer), ordersH.Create)
			orders.GET("/history/:partnerId", ordersH.History)
			orders.GET("/:id", ordersH.Get)
			orders.PATCH("/:id/status", middleware.RequireRole(model.RoleDistributor), ordersH.UpdateStatus)
			orders.PATCH("/:id/delivery-mode", middleware.RequireRole(model.RoleDistributor), ordersH.UpdateDeliveryMode)
			orders.POST("/:id/invoice", middleware.RequireRole(model.RoleDistributor), ordersH.CreateInvoice)
			orders.GET("/:id/invoice", ordersH.GetInvoice)
		}
		p.GET("/invoices/:id/pdf", ordersH.DownloadInvoicePDF)

		p.GET("/analytics/stats", activityH.Stats)

		partners := p.Group("/partners")
		{
			partners.GET("/available", partnershipsH.Available)
			partners.GET("/search", partnershipsH.Search)
			partners.GET("/retailers", middleware.RequireRole(model.RoleDistributor), partnershipsH.Directory(model.RoleRetailer))
			partners.GET("/manufacturers", middleware.RequireRole(model.RoleDistributor), partnershipsH.Directory(model.RoleManufacturer))
		}
		partnerships := p.Group("/partnerships")
		{
			partnerships.GET("", partnershipsH.List)
			partnerships.GET("/received", partnershipsH.Received)
			partnerships.POST("/request", partnershipsH.Request)
			partnerships.PATCH("/:id/respond", partnershipsH.Respond)
		}

		favorites := p.Group("/favorites")
		{
			favorites.GET("", partnershipsH.ListFavorites)
			favorites.POST("", partnershipsH.AddFavorite)
			favorites.GET("/:favoriteUserId/check", partnershipsH.CheckFavorite)
			favorites.DELETE("/:favoriteUserId", partnershipsH.RemoveFavorite)
		}

		notifications := p.Group("/notifications")
		{
			notifications.GET("", activityH.Notifications)
			notifications.GET("/history", activityH.NotificationHistory)
			notifications.PATCH("/:id/delivered", activityH.MarkDelivered)
		}

		search := p.Group("/search/history")
		{
			search.GET("", activityH.SearchHistory)
			search.POST("", activityH.RecordSearch)
		}
	}

	// Swagger UI outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
