package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cyberscripts/storefront/internal/server/http/handlers"
	"github.com/cyberscripts/storefront/internal/server/http/middleware"
)

// Setup configures the gin router with handlers and middleware.
func Setup(facade handlers.StoreFacade, health handlers.HealthChecker, registry *prometheus.Registry, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	metrics := middleware.NewMetrics(registry)

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(metrics.Handler())
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	purchaseHandler := handlers.NewPurchaseHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade, facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	healthHandler := handlers.NewHealthHandler(health)

	engine.GET("/health", healthHandler.Check)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := engine.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	api.GET("/products", catalogHandler.Storefront)
	api.GET("/products/:id", catalogHandler.Get)
	api.POST("/payments/webhook", paymentHandler.Webhook)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.GET("/auth/me", authHandler.Profile)
	authed.POST("/orders", orderHandler.Create)
	authed.GET("/orders", orderHandler.List)
	authed.GET("/orders/:id", orderHandler.Get)
	authed.GET("/purchases", purchaseHandler.List)
	authed.POST("/payments/intent", paymentHandler.CreateIntent)
	authed.POST("/payments/confirm", paymentHandler.Confirm)

	admin := authed.Group("/admin")
	admin.Use(middleware.AdminRequired())
	admin.GET("/orders", orderHandler.ListAll)
	admin.PATCH("/orders/:id/verify", orderHandler.Verify)
	admin.PATCH("/orders/:id/reject", orderHandler.Reject)
	admin.GET("/products", catalogHandler.List)
	admin.POST("/products", catalogHandler.Create)
	admin.PATCH("/products/:id", catalogHandler.Update)
	admin.DELETE("/products/:id", catalogHandler.Delete)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.PATCH("/users/:id", adminHandler.UpdateUser)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.POST("/users/:id/products", adminHandler.AssignProduct)
	admin.DELETE("/users/:id/products/:productId", adminHandler.RemoveProduct)

	return engine
}
