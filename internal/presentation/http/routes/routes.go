package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tanwartailor/tailor-api/internal/config"
	"github.com/tanwartailor/tailor-api/internal/presentation/http/handler"
	"github.com/tanwartailor/tailor-api/internal/presentation/http/middleware"
	"github.com/tanwartailor/tailor-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Invoice   *handler.InvoiceHandler
	Contact   *handler.ContactHandler
	Review    *handler.ReviewHandler
	Dashboard *handler.DashboardHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
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

	// Per-IP rate limiter guarding the public intake endpoints
	rateLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		Requests:        deps.Cfg.RateLimit.Requests,
		Window:          time.Duration(deps.Cfg.RateLimit.Duration) * time.Second,
		CleanupInterval: 5 * time.Minute,
		EntryTTL:        10 * time.Minute,
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		registerPublicRoutes(v1, h, rateLimiter)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerPublicRoutes(v1 *gin.RouterGroup, h *Handlers, rateLimiter *middleware.IPRateLimiter) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}

	// Share-link view, unauthenticated by design
	v1.GET("/invoices/public/:slug", h.Invoice.PublicView)

	// Public intake, rate limited per client IP
	v1.POST("/contact", rateLimiter.Middleware(), h.Contact.Create)
	v1.POST("/reviews", rateLimiter.Middleware(), h.Review.Create)
	v1.GET("/reviews", h.Review.ListApproved)
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.GET("/auth/me", h.Auth.GetProfile)

	invoices := protected.Group("/invoices")
	{
		invoices.POST("", h.Invoice.Create)
		invoices.GET("", h.Invoice.List)
		invoices.GET("/stats", h.Invoice.Stats)
		invoices.GET("/:id", h.Invoice.Get)
		invoices.PUT("/:id", h.Invoice.Update)
		invoices.DELETE("/:id", h.Invoice.Delete)
		invoices.PATCH("/:id/mark-paid", h.Invoice.MarkPaid)
		invoices.POST("/:id/send-email", h.Invoice.SendEmail)
	}

	contacts := protected.Group("/contacts")
	{
		contacts.GET("", h.Contact.List)
		contacts.GET("/:id", h.Contact.Get)
		contacts.PATCH("/:id", h.Contact.SetRead)
		contacts.DELETE("/:id", h.Contact.Delete)
	}

	admin := protected.Group("/admin")
	{
		admin.GET("/stats", h.Dashboard.Stats)
		admin.GET("/reviews", h.Review.List)
		admin.PATCH("/reviews/:id", h.Review.SetApproved)
		admin.DELETE("/reviews/:id", h.Review.Delete)
	}
}
