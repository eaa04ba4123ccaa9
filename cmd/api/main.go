package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-learnlab-backend/config"
	v1 "go-learnlab-backend/internal/delivery/http/v1"
	"go-learnlab-backend/internal/repository/postgres"
	"go-learnlab-backend/internal/usecase"
	"go-learnlab-backend/pkg/ai"
	"go-learnlab-backend/pkg/auth"
	"go-learnlab-backend/pkg/database"
	"go-learnlab-backend/pkg/logger"
	"go-learnlab-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           LearnLab Backend API
// @version         1.0
// @description     Backend for the idea refiner and interview simulator using Clean Architecture.
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting learnlab backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := postgres.Migrate(context.Background(), dbPool); err != nil {
		logger.Log.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 4. Setup Redis (rate limiting; in-memory fallback when absent)
	if cfg.RedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
		}
	}
	defer redis.Close()

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	ideaRepo := postgres.NewIdeaRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)

	// 6. Setup Enrichment Gateway
	chatClient, err := ai.NewChatClient(ai.Config{
		APIKey:  cfg.OpenAIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: time.Duration(cfg.OpenAITimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Log.Warn("AI client not configured, enrichment calls will fail", "error", err)
		chatClient = ai.Disabled()
	}
	gateway := ai.NewGateway(chatClient)

	// 7. Setup UseCases
	validate := validator.New()
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry())
	authUC := usecase.NewAuthUsecase(userRepo, tokens)
	userUC := usecase.NewUserUsecase(userRepo)
	ideaUC := usecase.NewIdeaUsecase(ideaRepo, userRepo, gateway)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, userRepo, gateway, validate)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		IdeaUC:      ideaUC,
		InterviewUC: interviewUC,
		Tokens:      tokens,
		Config:      cfg,
	})

	// 9. Start Server
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
