package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-interview-backend/config"
	_ "go-interview-backend/docs" // Important for Swagger
	v1 "go-interview-backend/internal/delivery/http/v1"
	"go-interview-backend/internal/repository/postgres"
	"go-interview-backend/internal/usecase"
	"go-interview-backend/pkg/auth"
	"go-interview-backend/pkg/database"
	"go-interview-backend/pkg/email"
	"go-interview-backend/pkg/logger"
	"go-interview-backend/pkg/redis"
	"go-interview-backend/pkg/resume"
	"go-interview-backend/pkg/token"

	"github.com/go-playground/validator/v10"
)

// @title           Interview Backend API
// @version         1.0
// @description     Backend for the recruiting platform: authentication, interview invitations and resume processing.
// @host            localhost:8080
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting interview backend", "port", cfg.Port, "env", cfg.Env)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting falls back to memory when unavailable)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting uses in-memory fallback", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	hrRepo := postgres.NewHRRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	txManager := postgres.NewTxManager(dbPool)

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - invitations and rejections will fail")
	}

	// 7. Setup Token Manager and Google Verifier
	tokenExpiry := 24 * time.Hour
	if cfg.IsProduction() {
		tokenExpiry = 15 * time.Minute
	}
	tokens := token.NewManager(cfg.JWTSecret, tokenExpiry)
	googleProvider := auth.NewGoogleProvider(cfg.GoogleClientID)

	// 8. Setup Resume Processing Client
	resumeClient := resume.NewClient(cfg.ResumeServiceURL)

	// 9. Setup UseCases
	validate := validator.New()
	authUC := usecase.NewAuthUsecase(userRepo, hrRepo, txManager, tokens, googleProvider)
	interviewUC := usecase.NewInterviewUsecase(userRepo, hrRepo, interviewRepo, txManager, emailService, validate, cfg.FrontendURL)
	resumeUC := usecase.NewResumeUsecase(hrRepo, resumeClient)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		InterviewUC: interviewUC,
		ResumeUC:    resumeUC,
		Tokens:      tokens,
		Config:      cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
