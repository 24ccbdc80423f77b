package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server configuration
	Port string
	Mode string

	// Database configuration
	DatabaseURL string

	// Redis configuration
	RedisURL string

	// lomi webhook configuration
	LomiWebhookSecret string

	// Email dispatch function configuration
	SendTicketEmailURL  string
	EmailFunctionKey    string
	EmailTimeoutSeconds int

	// Ticket check-in configuration
	StaffAPIKey         string
	ScanCooldownSeconds int

	ServiceName string
}

var AppConfig *Config

func InitConfig() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// Ignore error if .env file doesn't exist
	}

	AppConfig = &Config{
		Port:                getEnv("PORT", "8080"),
		Mode:                getEnv("GIN_MODE", "debug"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		RedisURL:            getEnv("REDIS_URL", "redis://localhost:6379/0"),
		LomiWebhookSecret:   getEnv("LOMI_WEBHOOK_SECRET", ""),
		SendTicketEmailURL:  getEnv("SEND_TICKET_EMAIL_URL", ""),
		EmailFunctionKey:    getEnv("EMAIL_FUNCTION_KEY", ""),
		EmailTimeoutSeconds: getEnvInt("EMAIL_TIMEOUT_SECONDS", 10),
		StaffAPIKey:         getEnv("STAFF_API_KEY", ""),
		ScanCooldownSeconds: getEnvInt("SCAN_COOLDOWN_SECONDS", 0),
		ServiceName:         getEnv("SERVICE_NAME", "Events Service"),
	}

	return nil
}

// Validate checks the settings the payment and email flows depend on.
// DATABASE_URL may be empty (SQLite fallback for development).
func (c *Config) Validate() error {
	var missing []string
	if c.LomiWebhookSecret == "" {
		missing = append(missing, "LOMI_WEBHOOK_SECRET")
	}
	if c.SendTicketEmailURL == "" {
		missing = append(missing, "SEND_TICKET_EMAIL_URL")
	}
	if c.EmailFunctionKey == "" {
		missing = append(missing, "EMAIL_FUNCTION_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
