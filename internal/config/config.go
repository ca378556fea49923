package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Telegram TelegramConfig
	AutoDev  AutoDevConfig
	OpenAI   OpenAIConfig
	Server   ServerConfig
	Fallback FallbackConfig
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	Token         string
	UpdateTimeout int
	Debug         bool
}

// AutoDevConfig holds auto.dev listings API configuration
type AutoDevConfig struct {
	APIKey  string
	BaseURL string
	Timeout int // seconds
}

// OpenAIConfig holds OpenAI-compatible completion API configuration
type OpenAIConfig struct {
	APIKey          string
	APIBase         string
	ChatModel       string
	ChatTemperature float64
	ChatMaxTokens   int
	Timeout         int // seconds
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	GinMode        string
	AllowedOrigins string
}

// FallbackConfig holds paths to the canned fallback images
type FallbackConfig struct {
	BetMoreImage string
	BetLessImage string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	_ = godotenv.Load()

	cfg := &Config{
		Telegram: TelegramConfig{
			Token:         getEnv("TELEGRAM_BOT_TOKEN", ""),
			UpdateTimeout: getEnvAsInt("TELEGRAM_UPDATE_TIMEOUT", 30),
			Debug:         getEnv("TELEGRAM_DEBUG", "") == "true",
		},
		AutoDev: AutoDevConfig{
			APIKey:  getEnv("AUTO_DEV_API_KEY", ""),
			BaseURL: getEnv("AUTO_DEV_API_BASE", "https://auto.dev/api"),
			Timeout: getEnvAsInt("AUTO_DEV_TIMEOUT", 10),
		},
		OpenAI: OpenAIConfig{
			APIKey:          getEnv("OPENAI_API_KEY", ""),
			APIBase:         getEnv("OPENAI_API_BASE", "https://api.openai.com/v1"),
			ChatModel:       getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			ChatTemperature: getEnvAsFloat("OPENAI_CHAT_TEMPERATURE", 0.2),
			ChatMaxTokens:   getEnvAsInt("OPENAI_CHAT_MAX_TOKENS", 512),
			Timeout:         getEnvAsInt("OPENAI_TIMEOUT", 10),
		},
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			GinMode:        getEnv("GIN_MODE", "release"),
			AllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Fallback: FallbackConfig{
			BetMoreImage: getEnv("BET_MORE_IMAGE", "./betmore.jpeg"),
			BetLessImage: getEnv("BET_LESS_IMAGE", "./betless.jpeg"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that the required secrets are present. A missing secret
// is a startup failure, never a runtime one.
func (c *Config) validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.AutoDev.APIKey == "" {
		return fmt.Errorf("AUTO_DEV_API_KEY is required")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float value for %s, using default %f", key, defaultValue)
		return defaultValue
	}
	return value
}
