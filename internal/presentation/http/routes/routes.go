package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yasserh/sultan-pos/internal/config"
	domainRepo "github.com/yasserh/sultan-pos/internal/domain/repository"
	"github.com/yasserh/sultan-pos/internal/presentation/http/handler"
	"github.com/yasserh/sultan-pos/internal/presentation/http/middleware"
	"github.com/yasserh/sultan-pos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	POS     *handler.POSHandler
	Sale    *handler.SaleHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
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

		// Per-terminal rate limiter
		rateLimiter := middleware.NewTerminalRateLimiter(middleware.RateLimiterConfig{
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
	protected.POST("/auth/logout", h.Auth.Logout)

	// Catalog
	protected.GET("/products", h.Catalog.ListProducts)
	protected.GET("/products/search", h.Catalog.SearchProduct)
	protected.GET("/products/:id", h.Catalog.GetProduct)
	protected.GET("/customers", h.Catalog.ListCustomers)

	// POS session
	posGroup := protected.Group("/pos")
	{
		posGroup.GET("/invoice", h.POS.CurrentInvoice)
		posGroup.GET("/held", h.POS.HeldInvoices)
		posGroup.POST("/lines", h.POS.AddLine)
		posGroup.PATCH("/lines/:productId/quantity", h.POS.UpdateQuantity)
		posGroup.PATCH("/lines/:productId/discount", h.POS.UpdateLineDiscount)
		posGroup.DELETE("/lines/:productId", h.POS.RemoveLine)
		posGroup.PUT("/discount", h.POS.SetInvoiceDiscount)
		posGroup.PUT("/customer", h.POS.SetCustomer)
		posGroup.POST("/hold", h.POS.Hold)
		posGroup.POST("/restore", h.POS.Restore)
		posGroup.POST("/new", h.POS.StartNewSale)

		// Checkout is the one money-moving POST; a client retry must
		// replay the stored response, not ring up a second sale.
		posGroup.POST("/checkout",
			middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}),
			h.POS.Checkout)
	}

	// Sales history
	protected.GET("/sales", h.Sale.ListSales)
	protected.GET("/sales/:invoiceNo", h.Sale.GetSale)
	protected.PATCH("/sales/:invoiceNo/cheque", h.Sale.UpdateChequeStatus)

	// Printer
	protected.GET("/printer/status", h.Printer.Status)
	protected.POST("/printer/test", h.Printer.PrintTest)
	protected.POST("/printer/receipt/:invoiceNo", h.Printer.PrintReceipt)
}
