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
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
	"github.com/zordhalo/lontario-YC-sub000/config"
	_ "github.com/zordhalo/lontario-YC-sub000/docs" // Important for Swagger
	"github.com/zordhalo/lontario-YC-sub000/internal/delivery/http/middleware"
	v1 "github.com/zordhalo/lontario-YC-sub000/internal/delivery/http/v1"
	"github.com/zordhalo/lontario-YC-sub000/internal/domain"
	"github.com/zordhalo/lontario-YC-sub000/internal/repository/postgres"
	"github.com/zordhalo/lontario-YC-sub000/internal/usecase"
	"github.com/zordhalo/lontario-YC-sub000/internal/viewcache"
	"github.com/zordhalo/lontario-YC-sub000/internal/worker"
	"github.com/zordhalo/lontario-YC-sub000/pkg/auth"
	"github.com/zordhalo/lontario-YC-sub000/pkg/database"
	"github.com/zordhalo/lontario-YC-sub000/pkg/email"
	"github.com/zordhalo/lontario-YC-sub000/pkg/github"
	"github.com/zordhalo/lontario-YC-sub000/pkg/logger"
	"github.com/zordhalo/lontario-YC-sub000/pkg/oracle"
	"github.com/zordhalo/lontario-YC-sub000/pkg/redis"
	"github.com/zordhalo/lontario-YC-sub000/pkg/security"
	"github.com/zordhalo/lontario-YC-sub000/pkg/storage"
	"github.com/zordhalo/lontario-YC-sub000/pkg/validation"
)

type redisPinger struct{ client *goredis.Client }

func (p redisPinger) Ping(ctx context.Context) error { return p.client.Ping(ctx).Err() }

// @title           Lontario Hiring API
// @version         1.0
// @description     AI-assisted applicant tracking API.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	var envFile string
	pflag.StringVarP(&envFile, "env-file", "e", ".env", "Path to a dotenv file (ignored when missing)")
	pflag.Parse()

	// 1. Load Config
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting hiring backend", "port", cfg.Port, "env", cfg.Environment)

	secLog := security.NewSecurityLogger("lontario-api", cfg.Environment)
	defer secLog.Sync()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repositories
	jobRepo := postgres.NewJobRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	activityRepo := postgres.NewActivityRepository(dbPool)
	questionRepo := postgres.NewQuestionRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)

	// 5. Setup Integrations
	oracleClient := oracle.NewClient(oracle.Config{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.OpenAITimeout,
	})
	githubClient := github.NewClient(cfg.GitHubToken)

	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - interview invites will not be delivered")
	}

	var exportStore domain.ExportStore
	if cfg.ExportStorageConfigured() {
		store, err := storage.NewObjectStore(ctx, storage.Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Bucket:          cfg.ExportBucket,
		})
		if err != nil {
			logger.Log.Warn("Export storage unavailable - exports will be streamed only", "error", err)
		} else {
			exportStore = store
		}
	}

	optional := map[string]usecase.Pinger{"redis": nil}
	redisClient, err := redis.NewClient(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		redisClient = nil
	case err != nil:
		logger.Log.Warn("Redis unavailable - rate limiting falls back to memory", "error", err)
		redisClient = nil
	default:
		defer redisClient.Close()
		optional["redis"] = redisPinger{client: redisClient}
	}

	// 6. Setup UseCases
	views := viewcache.New(cfg.ViewCacheTTL)
	pipelineUC := usecase.NewPipelineUsecase(candidateRepo, activityRepo, views)

	pregen := usecase.NewQuestionPregenerator(candidateRepo, jobRepo, questionRepo, oracleClient, cfg.PregenWorkers, cfg.PregenQueueSize)
	pregen.Start()

	jobUC := usecase.NewJobUsecase(jobRepo, candidateRepo, exportStore)
	scoringUC := usecase.NewScoringUsecase(candidateRepo, jobRepo, activityRepo, oracleClient, githubClient, pregen, pipelineUC)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, candidateRepo, jobRepo, questionRepo, activityRepo,
		oracleClient, emailService, pipelineUC, usecase.InterviewConfig{
			FrontendURL:      cfg.FrontendURL,
			AccessWindow:     cfg.InterviewAccessWindow,
			PregenStaleAfter: cfg.PregenStaleAfter,
		})
	healthUC := usecase.NewHealthUsecase(dbPool, optional, oracleClient.Configured())

	// 7. Background Workers
	sweeper := worker.NewInterviewSweeper(interviewUC, cfg.InterviewSweepInterval)
	sweeper.Start()
	janitor := worker.NewCacheJanitor(views, cfg.ViewCacheCleanInterval)
	janitor.Start()

	// 8. Setup Auth Provider (JWKS)
	jwksProvider := auth.NewProvider(cfg.SupabaseUrl + "/auth/v1/.well-known/jwks.json")

	rateLimiter := middleware.NewRateLimiter(redisClient, secLog)
	defer rateLimiter.Stop()

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:        jobUC,
		PipelineUC:   pipelineUC,
		ScoringUC:    scoringUC,
		InterviewUC:  interviewUC,
		HealthUC:     healthUC,
		JWKSProvider: jwksProvider,
		RateLimiter:  rateLimiter,
		SecurityLog:  secLog,
		Config:       cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}
	sweeper.Stop()
	janitor.Stop()
	pregen.Stop()

	logger.Log.Info("Server exiting")
}
