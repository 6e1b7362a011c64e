// ABOUTME: Centralized configuration for the DSA mentor retrieval service
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultHFAPIURL is the Hugging Face feature-extraction endpoint for the
// all-MiniLM-L6-v2 sentence transformer (384 dimensions).
const DefaultHFAPIURL = "https://router.huggingface.co/hf-inference/models/sentence-transformers/all-MiniLM-L6-v2/pipeline/feature-extraction"

// DefaultGroqBaseURL is the OpenAI-compatible Groq API base URL.
const DefaultGroqBaseURL = "https://api.groq.com/openai/v1"

// Config holds all configuration for the retrieval service
type Config struct {
	// Embedding provider settings
	HFAPIURL      string
	HFToken       string
	HFTokenBackup string
	Dimension     int
	MaxRetries    int
	Timeout       time.Duration
	RetryDelay    time.Duration

	// Groq (chat completion) settings
	GroqBaseURL string
	GroqAPIKey  string
	ChatModel   string

	// Retrieval settings
	TopK                int
	SimilarityThreshold float64
	CorpusCacheTTL      time.Duration

	// Datastore settings
	DatabaseURL string

	// Request settings
	MaxQueryLength int
	ListenAddr     string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		HFAPIURL:            getEnv("HF_API_URL", DefaultHFAPIURL),
		HFToken:             os.Getenv("HF_API_TOKEN"),
		HFTokenBackup:       os.Getenv("HF_API_TOKEN_BACKUP"),
		Dimension:           getEnvInt("EMBEDDING_DIMENSION", 384),
		MaxRetries:          getEnvInt("EMBEDDING_MAX_RETRIES", 3),
		Timeout:             getEnvDuration("EMBEDDING_TIMEOUT", 15*time.Second),
		RetryDelay:          getEnvDuration("EMBEDDING_RETRY_DELAY", time.Second),
		GroqBaseURL:         getEnv("GROQ_BASE_URL", DefaultGroqBaseURL),
		GroqAPIKey:          os.Getenv("GROQ_API_KEY"),
		ChatModel:           getEnv("GROQ_CHAT_MODEL", "llama3-70b-8192"),
		TopK:                getEnvInt("QA_TOP_K", 5),
		SimilarityThreshold: getEnvFloat("SIMILARITY_THRESHOLD", 0.7),
		CorpusCacheTTL:      getEnvDuration("CORPUS_CACHE_TTL", 5*time.Minute),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		MaxQueryLength:      getEnvInt("MAX_QUERY_LENGTH", 2000),
		ListenAddr:          getEnv("LISTEN_ADDR", ":8080"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Dimension <= 0 {
		return fmt.Errorf("EMBEDDING_DIMENSION must be positive, got %d", c.Dimension)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("EMBEDDING_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("QA_TOP_K must be positive, got %d", c.TopK)
	}
	if c.SimilarityThreshold < -1 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be -1..1, got %f", c.SimilarityThreshold)
	}
	if c.MaxQueryLength <= 0 {
		return fmt.Errorf("MAX_QUERY_LENGTH must be positive, got %d", c.MaxQueryLength)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
