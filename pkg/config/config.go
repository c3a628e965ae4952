package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/korjavin/smartpantry/pkg/logger"
)

// Pantry storage backends
const (
	BackendBadger   = "badger"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP server configuration
	HTTPAddr    string
	CORSOrigins []string

	// Storage configuration
	DataDir       string
	RecipesPath   string
	PantryBackend string
	DatabaseURL   string
	GCInterval    time.Duration

	// Telegram Bot configuration, only needed by the bot
	BotToken string

	LogLevel string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		logger.Global.Warn("Error loading .env file: %v", err)
	}

	dataDir := getEnvWithDefault("DATA_DIR", "./data")

	cfg := &Config{
		HTTPAddr:      getEnvWithDefault("HTTP_ADDR", ":8080"),
		CORSOrigins:   splitList(getEnvWithDefault("CORS_ORIGINS", "http://localhost:8501")),
		DataDir:       dataDir,
		RecipesPath:   getEnvWithDefault("RECIPES_PATH", dataDir+"/recipes.csv"),
		PantryBackend: strings.ToLower(getEnvWithDefault("PANTRY_BACKEND", BackendBadger)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		BotToken:      os.Getenv("BOT_TOKEN"),
		LogLevel:      strings.ToLower(getEnvWithDefault("LOG_LEVEL", "info")),
	}

	gc, err := time.ParseDuration(getEnvWithDefault("GC_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid GC_INTERVAL: %w", err)
	}
	cfg.GCInterval = gc

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Log configuration with sensitive data redacted
	logCfg := *cfg
	logCfg.BotToken = redact(logCfg.BotToken)
	logCfg.DatabaseURL = redact(logCfg.DatabaseURL)
	logger.Global.Info("Configuration loaded: %+v", logCfg)
	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.PantryBackend {
	case BackendBadger:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL environment variable is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown PANTRY_BACKEND %q (must be badger or postgres)", c.PantryBackend)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if c.GCInterval <= 0 {
		return fmt.Errorf("GC_INTERVAL must be positive")
	}

	return nil
}

// RequireBotToken returns an error when the bot token is not configured
func (c *Config) RequireBotToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN environment variable is required")
	}
	return nil
}

// getEnvWithDefault returns the value of the environment variable or the default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func redact(secret string) string {
	if len(secret) > 8 {
		return secret[:8] + "...REDACTED..."
	}
	if secret != "" {
		return "REDACTED"
	}
	return ""
}
