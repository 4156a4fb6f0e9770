package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/printshop/internal/config"
	"github.com/polkiloo/printshop/internal/domain/model"
	"github.com/polkiloo/printshop/internal/metrics"
	"github.com/polkiloo/printshop/internal/server/http/handlers"
	"github.com/polkiloo/printshop/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PrintshopFacade, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.MaxMultipartMemory = cfg.MaxUploadSize

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.RequestMetrics(m))
	engine.Use(middleware.DecompressRequest(cfg.MaxUploadSize))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics", "/functions/"})))

	authHandler := handlers.NewAuthHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade, facade)
	attachmentHandler := handlers.NewAttachmentHandler(facade, cfg.MaxUploadSize)
	catalogHandler := handlers.NewCatalogHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	engine.GET("/metrics", gin.WrapH(m.Handler()))

	functions := engine.Group("/functions/v1")
	functions.Use(middleware.CORS())
	functions.OPTIONS("/create-user", adminHandler.Preflight)
	functions.POST("/create-user", middleware.AuthRequired(facade), adminHandler.CreateUser)

	api := engine.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	staff := api.Group("")
	staff.Use(middleware.AuthRequired(facade))

	orders := staff.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.POST("", middleware.RequireRole(model.RoleAdmin, model.RoleSales), orderHandler.Create)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/status", orderHandler.AdvanceStatus)
	orders.POST("/:id/payment", middleware.RequireRole(model.RoleAdmin, model.RoleAccountant), orderHandler.ConfirmPayment)
	orders.GET("/:id/delivery", orderHandler.Delivery)
	orders.POST("/:id/deliver", orderHandler.Deliver)
	orders.POST("/:id/attachments", attachmentHandler.Upload)
	orders.GET("/:id/attachments", attachmentHandler.List)

	staff.GET("/statuses", catalogHandler.Statuses)
	staff.GET("/pricing-tiers", catalogHandler.PricingTiers)
	staff.GET("/currencies", catalogHandler.Currencies)
	staff.GET("/exchange-rates", catalogHandler.ExchangeRates)
	staff.GET("/company/currency", catalogHandler.CompanyCurrency)

	admin := staff.Group("/admin")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.POST("/statuses", catalogHandler.CreateStatus)
	admin.PUT("/statuses/:id", catalogHandler.UpdateStatus)
	admin.POST("/pricing-tiers", catalogHandler.CreatePricingTier)
	admin.POST("/exchange-rates", catalogHandler.CreateExchangeRate)

	return engine
}
