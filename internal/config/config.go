package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	Port        string
	UploadsDir  string

	// LLM Configuration
	LLMProvider string // "openai", "groq", or "none"
	LLMModel    string // "gpt-4o", "gpt-4o-mini", "llama-3.3-70b-versatile"
	LLMAPIKey   string

	// Embeddings always go through OpenAI, whatever the chat provider is.
	EmbeddingAPIKey string

	// Interval between latent score refresh runs.
	ScoreRefreshInterval time.Duration

	LogJSON  bool
	LogDebug bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	llmProvider := os.Getenv("LLM_PROVIDER")
	if llmProvider == "" {
		llmProvider = "openai"
	}

	llmModel := os.Getenv("LLM_MODEL")
	if llmModel == "" {
		llmModel = "gpt-4o"
	}

	llmAPIKey := ""
	if llmProvider == "openai" {
		llmAPIKey = os.Getenv("OPENAI_API_KEY")
	} else if llmProvider == "groq" {
		llmAPIKey = os.Getenv("GROQ_API_KEY")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}

	interval := 24 * time.Hour
	if raw := os.Getenv("SCORE_REFRESH_INTERVAL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			interval = d
		} else {
			log.Printf("Warning: invalid SCORE_REFRESH_INTERVAL %q, using %s", raw, interval)
		}
	}

	return &Config{
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		Port:                 port,
		UploadsDir:           uploadsDir,
		LLMProvider:          llmProvider,
		LLMModel:             llmModel,
		LLMAPIKey:            llmAPIKey,
		EmbeddingAPIKey:      os.Getenv("OPENAI_API_KEY"),
		ScoreRefreshInterval: interval,
		LogJSON:              boolEnv("LOG_JSON"),
		LogDebug:             boolEnv("LOG_DEBUG"),
	}
}

func boolEnv(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return false
	}
	return v
}
