package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"orderlist/internal/config"
	"orderlist/internal/presentation/http/handler"
	"orderlist/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Catalog *handler.CatalogHandler
	Order   *handler.OrderHandler
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(cfg.RateLimit.Duration),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	api := router.Group("/api")
	api.Use(rateLimiter.Middleware())
	{
		api.GET("/item/:barcode", h.Catalog.Resolve)
		api.POST("/upload-inventory", h.Catalog.Upload)
		api.GET("/latest-inventory", h.Catalog.Latest)

		api.POST("/save-order", h.Order.Save)

		orders := api.Group("/orders")
		{
			orders.GET("/page", h.Order.List)
			orders.GET("/search", h.Order.Search)
			orders.GET("/details/:filename", h.Order.Details)
			orders.GET("/download/:filename", h.Order.Download)
			orders.DELETE("/delete/:filename", h.Order.Delete)
		}
	}

	return router
}
