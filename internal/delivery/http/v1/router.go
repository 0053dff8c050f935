package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/zordhalo/lontario-YC-sub000/config"
	"github.com/zordhalo/lontario-YC-sub000/internal/delivery/http/middleware"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/internal/usecase"
	"github.com/zordhalo/lontario-YC-sub000/pkg/auth"
	"github.com/zordhalo/lontario-YC-sub000/pkg/security"
)

type RouterDeps struct {
	JobUC        domain.JobUsecase
	PipelineUC   domain.PipelineUsecase
	ScoringUC    domain.ScoringUsecase
	InterviewUC  domain.InterviewUsecase
	HealthUC     usecase.HealthUsecase
	JWKSProvider *auth.Provider
	RateLimiter  *middleware.RateLimiter
	SecurityLog  *security.SecurityLogger
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.Environment == "production")) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
	v1 := r.Group("/v1")
	v1.Use(deps.RateLimiter.Middleware(middleware.GlobalTier(cfg.RateLimitGlobalThreshold, window)))

	NewHealthHandler(v1, deps.HealthUC)

	if cfg.SwaggerEnabled {
		v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, cfg.SupabaseJWTSecret, deps.SecurityLog))
	protected.Use(middleware.RequireRole(deps.SecurityLog, domain.RoleRecruiter, domain.RoleAdmin))
	{
		aiLimit := deps.RateLimiter.Middleware(middleware.AITier(cfg.RateLimitAIThreshold, window))

		NewJobHandler(protected, deps.JobUC)
		NewCandidateHandler(protected, deps.PipelineUC, deps.ScoringUC, deps.InterviewUC, aiLimit)
		NewInterviewHandler(protected, deps.InterviewUC, aiLimit)
	}

	return r
}
