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
	Port        string
	DBUrl       string
	FrontendURL string
	// JWT Configuration
	JWTSecret        string
	JWTExpiryMinutes int
	// OpenAI Configuration
	OpenAIKey            string
	OpenAIBaseURL        string
	OpenAIModel          string
	OpenAITimeoutSeconds int
	// Redis Configuration (rate limiting)
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitAuthThreshold   int
	RateLimitGlobalThreshold int
}

func LoadConfig() (*Config, error) {
	// .env only exists locally; ignored in production
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "5000"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTExpiryMinutes: getEnvInt("JWT_EXPIRY_MINUTES", 60*24),

		OpenAIKey:            getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:        strings.TrimRight(getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"), "/"),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4"),
		OpenAITimeoutSeconds: getEnvInt("OPENAI_TIMEOUT_SECONDS", 60),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitAuthThreshold:   getEnvInt("RATE_LIMIT_AUTH_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is missing. Token issuance will fail.")
	}
	if cfg.OpenAIKey == "" {
		log.Println("WARNING: OPENAI_API_KEY not configured. Idea processing and interview AI will be unavailable.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// JWTExpiry returns the configured access token lifetime.
func (c *Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryMinutes) * time.Minute
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
