package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gert-backend/internal/config"
	"gert-backend/internal/database"
	"gert-backend/internal/handlers"
	"gert-backend/internal/middleware"
	"gert-backend/internal/repository"
	"gert-backend/internal/router"
	"gert-backend/internal/services"
	"gert-backend/internal/websocket"
	"gert-backend/internal/worker"
)

func main() {
	log.Println("🚀 Starting Gert Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Clients ────
	redisClients, err := database.NewRedisClients(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClients.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	clientRepo := repository.NewClientRepo(pool)
	employeeRepo := repository.NewEmployeeRepo(pool)
	sessionRepo := repository.NewSessionRepo(pool)

	// ──── Initialize Services ────
	jwtAuth := middleware.NewJWTAuth(cfg.JWTSecret)
	emailService := services.NewEmailService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	reportService := services.NewReportService()
	authService := services.NewAuthService(userRepo, redisClients.Queue, jwtAuth, emailService)
	assessmentService := services.NewAssessmentService(
		sessionRepo,
		clientRepo,
		employeeRepo,
		redisClients.Queue,
		time.Duration(cfg.Module1LimitMin)*time.Minute,
		time.Duration(cfg.Module2LimitMin)*time.Minute,
	)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService)
	clientHandler := handlers.NewClientHandler(clientRepo, emailService)
	clientUserHandler := handlers.NewClientUserHandler(userRepo, authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeRepo)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService)
	reportHandler := handlers.NewReportHandler(assessmentService, reportService)

	// ──── Step 5: Start Report Delivery Workers ────
	workerPool := worker.NewPool(
		redisClients.Queue,
		emailService,
		reportService,
		sessionRepo,
		clientRepo,
		cfg.ReportBaseURL,
		cfg.ReportWorkers,
	)
	workerPool.Start()
	log.Printf("✓ Report delivery pool started (%d goroutines)", cfg.ReportWorkers)

	// ──── Step 6: Start WebSocket Hub ────
	wsHub := websocket.NewHub(redisClients.PubSub, cfg.JWTSecret)
	log.Println("✓ WebSocket hub started")

	// ──── Step 7: Start HTTP Server ────
	r := router.New(
		jwtAuth,
		authHandler,
		clientHandler,
		clientUserHandler,
		employeeHandler,
		assessmentHandler,
		reportHandler,
		wsHub,
		cfg.FrontendURL,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		workerPool.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Gert Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)
	log.Printf("  WS:  ws://localhost:%s/api/v1/ws", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
