package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	Environment       string
	LogLevel          string
	DBUrl             string
	SupabaseUrl       string
	SupabaseJWTSecret string
	FrontendURL       string
	SwaggerEnabled    bool
	// SMTP Configuration
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string
	SMTPFromName  string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	RateLimitAIThreshold     int
	// AI Oracle Configuration
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	OpenAITimeout time.Duration
	GitHubToken   string
	// Interview / Pre-generation
	InterviewAccessWindow  time.Duration
	InterviewSweepInterval time.Duration
	PregenWorkers          int
	PregenQueueSize        int
	PregenStaleAfter       time.Duration
	ViewCacheTTL           time.Duration
	ViewCacheCleanInterval time.Duration
	// Export storage (S3-compatible, e.g. Supabase Storage)
	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	ExportBucket      string
}

// LoadConfig reads the environment, first loading envFiles (default .env) when present.
func LoadConfig(envFiles ...string) (*Config, error) {
	// Only effective locally; production injects real env vars.
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "debug"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		// Strip trailing slash to avoid double slashes (e.g. .co//auth)
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		FrontendURL:       strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		SwaggerEnabled:    getEnvBool("SWAGGER_ENABLED", true),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "interviews@lontario.ai"),
		SMTPFromName:  getEnv("SMTP_FROM_NAME", "Lontario Hiring"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		RateLimitAIThreshold:     getEnvInt("RATE_LIMIT_AI_THRESHOLD", 20),
		// AI Oracle Configuration
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
		OpenAITimeout: getEnvDuration("OPENAI_TIMEOUT", 90*time.Second),
		GitHubToken:   getEnv("GITHUB_TOKEN", ""),
		// Interview / Pre-generation
		InterviewAccessWindow:  time.Duration(getEnvInt("INTERVIEW_ACCESS_WINDOW_HOURS", 168)) * time.Hour,
		InterviewSweepInterval: getEnvDuration("INTERVIEW_SWEEP_INTERVAL", 5*time.Minute),
		PregenWorkers:          getEnvInt("PREGEN_WORKERS", 2),
		PregenQueueSize:        getEnvInt("PREGEN_QUEUE_SIZE", 100),
		PregenStaleAfter:       time.Duration(getEnvInt("PREGEN_STALE_AFTER_HOURS", 72)) * time.Hour,
		ViewCacheTTL:           getEnvDuration("VIEW_CACHE_TTL", 30*time.Second),
		ViewCacheCleanInterval: getEnvDuration("VIEW_CACHE_CLEAN_INTERVAL", time.Minute),
		// Export storage
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		ExportBucket:      getEnv("EXPORT_BUCKET", ""),
	}

	// Basic sanity checks to avoid confusing failures later
	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("WARNING: OPENAI_API_KEY not configured. AI scoring and question generation will be unavailable.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// SMTPConfigured reports whether interview emails can be delivered.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != "" && c.SMTPPassword != ""
}

// ExportStorageConfigured reports whether pipeline exports can be uploaded.
func (c *Config) ExportStorageConfigured() bool {
	return c.ExportBucket != "" && c.S3AccessKeyID != "" && c.S3SecretAccessKey != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration parses values like "30s" or "5m"
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
