package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tanwartailor/tailor-api/internal/application/service"
	"github.com/tanwartailor/tailor-api/internal/config"
	"github.com/tanwartailor/tailor-api/internal/infrastructure/database"
	"github.com/tanwartailor/tailor-api/internal/infrastructure/repository"
	"github.com/tanwartailor/tailor-api/internal/presentation/http/handler"
	"github.com/tanwartailor/tailor-api/internal/presentation/http/routes"
	"github.com/tanwartailor/tailor-api/pkg/email"
	"github.com/tanwartailor/tailor-api/pkg/oauth"
	"github.com/tanwartailor/tailor-api/pkg/pdf"
	"github.com/tanwartailor/tailor-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the admin account
	if err := database.SeedAdminUser(db, &cfg.Admin); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	invoiceRepo := repository.NewInvoiceRepository(db)
	contactRepo := repository.NewContactRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize email service
	emailService := email.NewService(email.Config{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		ShopEmail:    cfg.Email.ShopEmail,
	})

	// Initialize PDF renderer
	pdfRenderer := pdf.NewRenderer(cfg.Invoice.ShopName, cfg.Invoice.ShopTagline)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	invoiceService := service.NewInvoiceService(invoiceRepo, emailService, pdfRenderer, cfg.Invoice.NumberPrefix, cfg.Invoice.ShopName)
	contactService := service.NewContactService(contactRepo, emailService)
	reviewService := service.NewReviewService(reviewRepo)
	dashboardService := service.NewDashboardService(contactRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, googleOAuthService),
		Invoice:   handler.NewInvoiceHandler(invoiceService),
		Contact:   handler.NewContactHandler(contactService),
		Review:    handler.NewReviewHandler(reviewService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
		log.Printf("Environment: %s", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for an interrupt, then drain in-flight requests before exiting
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Warning: forced shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("Warning: failed to close database: %v", err)
		}
	}

	log.Println("Server stopped")
}
