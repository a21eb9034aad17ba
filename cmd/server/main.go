package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillbridge/internal/auth"
	"skillbridge/internal/config"
	"skillbridge/internal/database"
	"skillbridge/internal/handlers"
	"skillbridge/internal/repository"
	"skillbridge/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	guardianRepo := repository.NewGuardianRepository(db)
	dependentRepo := repository.NewDependentRepository(db)
	offeringRepo := repository.NewOfferingRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	// Initialize identity resolution
	resolver := auth.NewResolver(cfg.AuthJWTSecret)
	provider := auth.NewProviderClient(cfg.IdentityAPIBaseURL, cfg.IdentityTokenURL, cfg.IdentityClientID, cfg.IdentityClientSecret)
	if provider == nil {
		log.Println("Identity provider lookup disabled: provider API not configured")
	}

	// Initialize services
	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	accountService := service.NewAccountService(accountRepo, provider, emailService)
	guardianService := service.NewGuardianService(guardianRepo, dependentRepo)
	offeringService := service.NewOfferingService(offeringRepo)
	engagementService := service.NewEngagementService(engagementRepo, offeringRepo)
	videoService := service.NewVideoService(videoRepo, offeringRepo)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, engagementRepo, dependentRepo, guardianRepo, emailService)

	// Initialize handlers
	middleware := handlers.NewMiddleware(resolver, accountService)
	accountHandler := handlers.NewAccountHandler(accountService)
	guardianHandler := handlers.NewGuardianHandler(guardianService)
	offeringHandler := handlers.NewOfferingHandler(offeringService)
	engagementHandler := handlers.NewEngagementHandler(engagementService)
	videoHandler := handlers.NewVideoHandler(videoService)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentService)

	// Setup routes
	mux := http.NewServeMux()

	// Accounts
	mux.HandleFunc("POST /v1/accounts/register", middleware.RequireIdentity(accountHandler.Register))
	mux.HandleFunc("GET /v1/accounts/me", middleware.RequireAccount(accountHandler.Me))
	mux.HandleFunc("GET /v1/accounts", middleware.RequireAccount(accountHandler.List))
	mux.HandleFunc("GET /v1/accounts/pending", middleware.RequireAccount(accountHandler.ListPending))
	mux.HandleFunc("GET /v1/accounts/{id}", middleware.RequireAccount(accountHandler.Get))
	mux.HandleFunc("POST /v1/accounts/{id}/approve", middleware.RequireAccount(accountHandler.Approve))

	// Guardians and dependents
	mux.HandleFunc("POST /v1/guardians", middleware.RequireAccount(guardianHandler.Register))
	mux.HandleFunc("GET /v1/guardians/me", middleware.RequireAccount(guardianHandler.Me))
	mux.HandleFunc("POST /v1/dependents", middleware.RequireAccount(guardianHandler.CreateDependent))
	mux.HandleFunc("GET /v1/dependents", middleware.RequireAccount(guardianHandler.ListDependents))
	mux.HandleFunc("GET /v1/dependents/{id}", middleware.RequireAccount(guardianHandler.GetDependent))
	mux.HandleFunc("PUT /v1/dependents/{id}", middleware.RequireAccount(guardianHandler.UpdateDependent))
	mux.HandleFunc("GET /v1/dependents/{id}/enrollments", middleware.RequireAccount(enrollmentHandler.ListForDependent))

	// Catalog offerings
	mux.HandleFunc("POST /v1/offerings", middleware.RequireAccount(offeringHandler.Create))
	mux.HandleFunc("GET /v1/offerings", middleware.RequireAccount(offeringHandler.List))
	mux.HandleFunc("GET /v1/offerings/{id}", middleware.RequireAccount(offeringHandler.Get))
	mux.HandleFunc("PUT /v1/offerings/{id}", middleware.RequireAccount(offeringHandler.Update))
	mux.HandleFunc("DELETE /v1/offerings/{id}", middleware.RequireAccount(offeringHandler.Delete))
	mux.HandleFunc("GET /v1/offerings/{id}/engagements", middleware.RequireAccount(engagementHandler.ListByOffering))
	mux.HandleFunc("GET /v1/offerings/{id}/videos", middleware.RequireAccount(videoHandler.ListByOffering))

	// Engagements
	mux.HandleFunc("POST /v1/engagements", middleware.RequireAccount(engagementHandler.Create))
	mux.HandleFunc("GET /v1/engagements", middleware.RequireAccount(engagementHandler.List))
	mux.HandleFunc("GET /v1/engagements/mine", middleware.RequireAccount(engagementHandler.ListMine))
	mux.HandleFunc("GET /v1/engagements/{id}", middleware.RequireAccount(engagementHandler.Get))
	mux.HandleFunc("PATCH /v1/engagements/{id}", middleware.RequireAccount(engagementHandler.Update))
	mux.HandleFunc("DELETE /v1/engagements/{id}", middleware.RequireAccount(engagementHandler.Delete))
	mux.HandleFunc("GET /v1/engagements/{id}/enrollments", middleware.RequireAccount(enrollmentHandler.ListForEngagement))

	// Videos
	mux.HandleFunc("POST /v1/videos", middleware.RequireAccount(videoHandler.Create))
	mux.HandleFunc("GET /v1/videos", middleware.RequireAccount(videoHandler.List))
	mux.HandleFunc("GET /v1/videos/{id}", middleware.RequireAccount(videoHandler.Get))
	mux.HandleFunc("PATCH /v1/videos/{id}", middleware.RequireAccount(videoHandler.Update))
	mux.HandleFunc("DELETE /v1/videos/{id}", middleware.RequireAccount(videoHandler.Delete))

	// Enrollments
	mux.HandleFunc("POST /v1/enrollments", middleware.RequireAccount(enrollmentHandler.Enroll))

	// Health check
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Wrap with request id and logging middleware
	handler := handlers.RequestID(handlers.Logging(mux))

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
