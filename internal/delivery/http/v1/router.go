package v1

import (
	"net/http"

	"go-interview-backend/config"
	"go-interview-backend/internal/delivery/http/middleware"
	"go-interview-backend/internal/delivery/http/response"
	"go-interview-backend/internal/domain"
	"go-interview-backend/pkg/token"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	InterviewUC domain.InterviewUsecase
	ResumeUC    domain.ResumeUsecase
	Tokens      *token.Manager
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CSRFMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimit(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold, deps.Config.RateLimitWindowSeconds)))

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// WebSocket echo
	NewWSHandler(r)

	authGroup := r.Group("/authentication")
	authGroup.Use(middleware.RateLimit(middleware.AuthRateLimitConfig(
		deps.Config.RateLimitLoginThreshold, deps.Config.RateLimitWindowSeconds)))

	// Protected routes
	authRequired := middleware.AuthMiddleware(deps.Tokens, deps.AuthUC)

	protectedAuth := authGroup.Group("")
	protectedAuth.Use(authRequired)

	userGroup := r.Group("/user")
	userGroup.Use(authRequired)

	interviewGroup := r.Group("/interview")
	interviewGroup.Use(authRequired)

	resumeGroup := r.Group("/resume")
	resumeGroup.Use(authRequired)

	NewAuthHandler(authGroup, protectedAuth, deps.AuthUC, deps.Config)
	NewUserHandler(userGroup, deps.AuthUC)
	NewInterviewHandler(interviewGroup, deps.InterviewUC)
	NewResumeHandler(resumeGroup, deps.ResumeUC)

	return r
}
