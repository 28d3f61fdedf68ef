// One-shot manual run of the latent score refresh, for operators who do not
// want to wait for the next scheduled cycle.
package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"talentmatch/internal/config"
	"talentmatch/internal/llm"
	"talentmatch/internal/logger"
	"talentmatch/internal/scoring"
	"talentmatch/internal/storage"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogJSON, cfg.LogDebug)
	if err != nil {
		log.Fatal("logger:", err)
	}
	defer zlog.Sync()

	if cfg.DatabaseURL == "" {
		zlog.Fatal("set DATABASE_URL environment variable")
	}

	db, err := storage.NewDB(cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("db open", zap.Error(err))
	}
	defer db.Close()

	llmClient := llm.NewClient(cfg.LLMProvider, cfg.LLMAPIKey, cfg.EmbeddingAPIKey, cfg.LLMModel, zlog)
	refresher := scoring.NewRefresher(db, llmClient, zlog)

	if err := refresher.RefreshAll(context.Background()); err != nil {
		zlog.Fatal("refresh", zap.Error(err))
	}
}
