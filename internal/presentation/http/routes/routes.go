package routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sergiuconi/casier-api/internal/config"
	domainRepo "github.com/sergiuconi/casier-api/internal/domain/repository"
	"github.com/sergiuconi/casier-api/internal/presentation/http/handler"
	"github.com/sergiuconi/casier-api/internal/presentation/http/middleware"
	"github.com/sergiuconi/casier-api/pkg/metrics"
	"github.com/sergiuconi/casier-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Cart     *handler.CartHandler
	Product  *handler.ProductHandler
	Customer *handler.CustomerHandler
	Receipt  *handler.ReceiptHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Metrics         *metrics.RegisterMetrics
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.MetricsMiddleware(deps.Metrics))

		// Per-operator rate limiter
		rateLimiter := middleware.NewOperatorRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.GET("/auth/me", h.Auth.Me)
	protected.PUT("/auth/password", h.Auth.ChangePassword)

	registerCartRoutes(protected, h, deps)
	registerProductRoutes(protected, h)
	registerCustomerRoutes(protected, h)
	registerReceiptRoutes(protected, h)
	registerPrinterRoutes(protected, h)
}

func registerCartRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	cart := protected.Group("/cart")
	// Replays of retried scans and edits return the cached response
	cart.Use(middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	}))
	{
		cart.GET("/state", h.Cart.State)
		cart.GET("/receipts", h.Cart.SessionReceipts)

		cart.POST("/items", h.Cart.AddItem)
		cart.POST("/items/custom", h.Cart.AddCustomItem)
		cart.PUT("/items/:id", h.Cart.UpdateItem)
		cart.DELETE("/items/:id", h.Cart.RemoveItem)
		cart.POST("/items/:id/select", h.Cart.SelectItem)
		cart.POST("/items/:id/move-up", h.Cart.MoveItemUp)
		cart.POST("/items/:id/move-down", h.Cart.MoveItemDown)
		cart.POST("/items/:id/storno", h.Cart.ToggleStorno)

		cart.POST("/cash", h.Cart.SetCashGiven)
		cart.POST("/tender-split", h.Cart.SetTenderSplit)
		cart.POST("/cod-fiscal", h.Cart.SetCodFiscal)
		cart.POST("/payment-method", h.Cart.SetPaymentMethod)
		cart.POST("/customer", h.Cart.SetCustomer)
		cart.POST("/reset", h.Cart.Reset)

		// Payment completion must carry an Idempotency-Key so retried
		// submits never cut a second bon
		cart.POST("/payment", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Cart.CompletePayment)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/upc/:upc", h.Product.GetByUPC)
		products.GET("/:id", h.Product.Get)

		// Catalog mutation is a back-office concern
		products.POST("", middleware.RequireRole("manager"), h.Product.Create)
		products.PUT("/:id", middleware.RequireRole("manager"), h.Product.Update)
		products.DELETE("/:id", middleware.RequireRole("manager"), h.Product.Delete)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	{
		customers.GET("", h.Customer.List)
		customers.GET("/:id", h.Customer.Get)
		customers.POST("", h.Customer.Create)
		customers.PUT("/:id", middleware.RequireRole("manager"), h.Customer.Update)
		customers.DELETE("/:id", middleware.RequireRole("manager"), h.Customer.Delete)
	}
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers) {
	receipts := protected.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		receipts.GET("/:id", h.Receipt.Get)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
		printer.POST("/print", h.Printer.PrintBon)
	}
}
