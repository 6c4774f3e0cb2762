package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	SlackBotToken      string
	SlackAppToken      string
	GoogleCalendarID   string
	ServiceAccountB64  string
	ServiceAccountFile string

	// Optional with defaults
	AnthropicAPIKey   string
	ClaudeModel       string
	ClaudeTemperature float64
	Timezone          string
	DedupDBPath       string
	RequestTimeoutSec int
}

func LoadFromEnv() *Config {
	cfg := &Config{
		// Required
		SlackBotToken:      os.Getenv("SLACK_BOT_TOKEN"),
		SlackAppToken:      os.Getenv("SLACK_APP_TOKEN"),
		GoogleCalendarID:   getEnvOrDefault("GOOGLE_CALENDAR_ID", "primary"),
		ServiceAccountB64:  os.Getenv("GOOGLE_SERVICE_ACCOUNT_B64"),
		ServiceAccountFile: getEnvOrDefault("GOOGLE_SERVICE_ACCOUNT_FILE", "./service_account.json"),

		// Optional with defaults
		AnthropicAPIKey:   os.Getenv("ANTHROPIC_API_KEY"),
		ClaudeModel:       getEnvOrDefault("YOTEI_CLAUDE_MODEL", "claude-sonnet-4-20250514"),
		ClaudeTemperature: getEnvAsFloatOrDefault("YOTEI_CLAUDE_TEMPERATURE", 0),
		Timezone:          getEnvOrDefault("YOTEI_TIMEZONE", "Asia/Tokyo"),
		DedupDBPath:       getEnvOrDefault("YOTEI_DEDUP_DB_PATH", "./yoteibot.db"),
		RequestTimeoutSec: getEnvAsIntOrDefault("YOTEI_REQUEST_TIMEOUT_SEC", 30),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
