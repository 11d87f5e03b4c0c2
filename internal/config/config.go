package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings for the external collaborators. Everything
// has a working default; the AI features simply stay in offline-fallback
// mode without an API key.
type Config struct {
	AI       AIConfig
	Calendar CalendarConfig
}

type AIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type CalendarConfig struct {
	Account string
}

// Load reads configuration from the environment, with an optional .env
// file in the working directory
func Load() *Config {
	// Missing .env is fine; the environment wins either way
	_ = godotenv.Load()

	return &Config{
		AI: AIConfig{
			APIKey:  getEnv("GEMINI_API_KEY", ""),
			Model:   getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
			Timeout: getEnvAsDuration("GEMINI_TIMEOUT", 15*time.Second),
		},
		Calendar: CalendarConfig{
			Account: getEnv("CALENDAR_ACCOUNT", "hermes0001@gmail.com"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	return defaultValue
}
