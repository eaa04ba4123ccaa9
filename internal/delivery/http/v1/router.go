package v1

import (
	"net/http"
	"time"

	"go-learnlab-backend/config"
	"go-learnlab-backend/internal/delivery/http/middleware"
	"go-learnlab-backend/internal/delivery/http/response"
	"go-learnlab-backend/internal/domain"
	"go-learnlab-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	UserUC      domain.UserUsecase
	IdeaUC      domain.IdeaUsecase
	InterviewUC domain.InterviewUsecase
	Tokens      *auth.TokenManager
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Credential endpoints get a stricter per-IP budget than the rest.
	authLimited := api.Group("")
	authLimited.Use(middleware.RateLimitMiddleware(middleware.AuthRateLimitConfig(deps.Config.RateLimitAuthThreshold, window)))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewAuthHandler(authLimited, protected, deps.AuthUC)
		NewUserHandler(protected, deps.UserUC)
		NewIdeaHandler(protected, deps.IdeaUC)
		NewInterviewHandler(api, protected, deps.InterviewUC)
	}

	return r
}
