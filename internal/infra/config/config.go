package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env      string
	Port     string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	OllamaURL      string
	GeneratorModel string
	EmbeddingModel string
	LLMRateLimit   float64

	AnswerTopK      int
	AnswerMaxTokens int
	ContextBudget   int
	SummaryReserved int

	CacheSize int
	CacheTTL  time.Duration

	RoomCount    int
	DaysInPeriod int

	OTelEnabled  bool
	OTLPEndpoint string
}

func Load() *Config {
	return &Config{
		Env:      getEnv("ENV", "development"),
		Port:     getEnv("PORT", "9020"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBHost:     getEnv("DB_HOST", "booking-db"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "booking_user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "booking_password"),
		DBName:     getEnv("DB_NAME", "booking_db"),

		OllamaURL:      getEnv("OLLAMA_URL", "http://localhost:11434"),
		GeneratorModel: getEnv("GENERATOR_MODEL", "gemma3:4b"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "bge-m3"),
		LLMRateLimit:   getEnvFloat("LLM_RATE_LIMIT", 0),

		AnswerTopK:      getEnvInt("ANSWER_TOP_K", 5),
		AnswerMaxTokens: getEnvInt("ANSWER_MAX_TOKENS", 768),
		ContextBudget:   getEnvInt("CONTEXT_BUDGET_CHARS", 8000),
		SummaryReserved: getEnvInt("SUMMARY_RESERVED_CHARS", 2000),

		CacheSize: getEnvInt("ANSWER_CACHE_SIZE", 256),
		CacheTTL:  getEnvDuration("ANSWER_CACHE_TTL", 10*time.Minute),

		RoomCount:    getEnvInt("HOTEL_ROOM_COUNT", 0),
		DaysInPeriod: getEnvInt("REPORT_DAYS_IN_PERIOD", 0),

		OTelEnabled:  getEnvBool("OTEL_ENABLED", false),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
	}
}

// DSN renders the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		if content, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
