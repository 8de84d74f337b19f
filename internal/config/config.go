package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	Environment     string
	LogLevel        string
	DefaultPageSize int

	GraphQLEndpoint string
	GraphQLTimeout  time.Duration

	SessionBackend  string
	DatabasePath    string
	DatabaseURL     string
	RedisURL        string
	SessionSecret   string
	SessionDuration time.Duration

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string
}

// Session persistence backends
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
	BackendRedis    = "redis"
)

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		Environment:     getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DefaultPageSize: getEnvInt("DEFAULT_PAGE_SIZE", 10),

		GraphQLEndpoint: getEnv("GRAPHQL_ENDPOINT", "http://localhost:4000/graphql"),
		GraphQLTimeout:  getEnvDuration("GRAPHQL_TIMEOUT", 15*time.Second),

		SessionBackend:  strings.ToLower(getEnv("SESSION_BACKEND", BackendSQLite)),
		DatabasePath:    getEnv("DB_PATH", "./gotera-sessions.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionSecret:   getEnv("SESSION_SECRET", "gotera-dev-secret-change-me"),
		SessionDuration: getEnvDuration("SESSION_DURATION", 24*time.Hour),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Gotera Youth"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),
	}
}

// IsProduction reports whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Validate checks for settings the server cannot start without
func (c *Config) Validate() error {
	if strings.TrimSpace(c.GraphQLEndpoint) == "" {
		return errors.New("GRAPHQL_ENDPOINT is required")
	}
	switch c.SessionBackend {
	case BackendMemory, BackendSQLite, BackendRedis:
	case BackendPostgres, BackendMySQL:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for session backend %q", c.SessionBackend)
		}
	default:
		return fmt.Errorf("unsupported session backend: %s", c.SessionBackend)
	}
	if c.SessionDuration <= 0 {
		return errors.New("SESSION_DURATION must be positive")
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}
