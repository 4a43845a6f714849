package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort       string
	DatabaseType     string
	DatabaseURL      string
	DatabasePath     string
	DBMaxOpenConns   int
	DBMaxIdleConns   int
	SessionSecret    string
	CSRFSecret       string
	RememberDuration time.Duration
	LoginRateLimit   int
	TemplatesPath    string
	MigrationsPath   string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present; values
// already set in the environment take precedence over it.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	return &Config{
		ServerPort:       getEnv("PORT", "8080"),
		DatabaseType:     getEnv("DATABASE_TYPE", "sqlite"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabasePath:     getEnv("DB_PATH", "./quizzy.db"),
		DBMaxOpenConns:   getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:   getEnvInt("DB_MAX_IDLE_CONNS", 5),
		SessionSecret:    getEnv("SESSION_SECRET", ""),
		CSRFSecret:       getEnv("CSRF_SECRET", ""),
		RememberDuration: time.Duration(getEnvInt("REMEMBER_ME_DAYS", 30)) * 24 * time.Hour,
		LoginRateLimit:   getEnvInt("LOGIN_RATE_LIMIT", 10),
		TemplatesPath:    getEnv("TEMPLATES_PATH", "./templates"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "./migrations"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads a positive integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
