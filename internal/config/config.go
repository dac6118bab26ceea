package config

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported model providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds all configuration for the application.
type Config struct {
	LLMProvider         string
	LLMBaseURL          string
	LLMModelName        string
	LLMAPIKey           string
	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingVectorSize int
	GeminiAPIKey        string
	DBPath              string
	QdrantURL           string // empty disables the vector mirror
	QdrantCollection    string
	APIPort             string
	JWTSecret           string
	LogLevel            slog.Level
	LogFormat           string

	SimilarityThreshold float32
	TopK                int
	MaxCandidateNotes   int
	AnswerMaxTokens     int
	AnswerTemperature   float32
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or up to five parents, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	provider := strings.ToLower(getEnv("LLM_PROVIDER", ProviderOpenAI))
	if provider != ProviderOpenAI && provider != ProviderGemini {
		return nil, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, provider)
	}

	chatModel, embeddingModel := "gpt-4o-mini", "text-embedding-3-small"
	if provider == ProviderGemini {
		chatModel, embeddingModel = "gemini-1.5-flash-latest", "text-embedding-004"
	}

	cfg := &Config{
		LLMProvider:        provider,
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMModelName:       getEnv("LLM_MODEL", chatModel),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "https://api.openai.com"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", embeddingModel),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		DBPath:             getEnv("DB_PATH", "./data/minibrain.db"),
		QdrantURL:          getEnv("QDRANT_URL", ""),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "notes"),
		APIPort:            getEnv("API_PORT", "9000"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	// EMBEDDING_VECTOR_SIZE must match the embedding model's output. Changing it
	// requires re-embedding stored notes and recreating the Qdrant collection.
	vectorSizeStr := getEnv("EMBEDDING_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("EMBEDDING_VECTOR_SIZE must be greater than 0")
	}
	cfg.EmbeddingVectorSize = vectorSize

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if provider == ProviderGemini && cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER is %q", ProviderGemini)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if err := cfg.loadPolicy(); err != nil {
		return nil, err
	}

	// Create the database directory if it doesn't exist
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// loadPolicy reads the retrieval and generation tuning knobs.
func (c *Config) loadPolicy() error {
	threshold, err := getEnvFloat("SIMILARITY_THRESHOLD", 0.15)
	if err != nil {
		return err
	}
	if threshold < -1 || threshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be between -1 and 1")
	}
	c.SimilarityThreshold = threshold

	if c.TopK, err = getEnvPositiveInt("TOP_K", 3); err != nil {
		return err
	}
	if c.MaxCandidateNotes, err = getEnvPositiveInt("MAX_CANDIDATE_NOTES", 2000); err != nil {
		return err
	}
	if c.AnswerMaxTokens, err = getEnvPositiveInt("ANSWER_MAX_TOKENS", 512); err != nil {
		return err
	}

	temperature, err := getEnvFloat("ANSWER_TEMPERATURE", 0.3)
	if err != nil {
		return err
	}
	if temperature < 0 || temperature > 2 {
		return fmt.Errorf("ANSWER_TEMPERATURE must be between 0 and 2")
	}
	c.AnswerTemperature = temperature
	return nil
}

// loadDotEnv loads the first .env found walking up from the working directory.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float32) (float32, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	// NaN fails every range comparison, so it is rejected here.
	if math.IsNaN(f) {
		return 0, fmt.Errorf("%s must be a number, got %q", key, value)
	}
	return float32(f), nil
}

func getEnvPositiveInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return n, nil
}
