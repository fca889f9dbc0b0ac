package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/run-bigpig/carpick/internal/config"
	"github.com/run-bigpig/carpick/internal/embedding"
	"github.com/run-bigpig/carpick/internal/inventory"
	"github.com/run-bigpig/carpick/internal/llm"
	"github.com/run-bigpig/carpick/internal/orchestrator"
	"github.com/run-bigpig/carpick/internal/rerank"
	"github.com/run-bigpig/carpick/internal/session"
)

// loadConfig resolves configuration from the --config flag, falling back to
// defaults plus environment variables when no file is given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// buildOrchestrator wires the full consultation stack from config.
func buildOrchestrator(cfg *config.Config) (*orchestrator.Orchestrator, *session.Manager, error) {
	store, err := inventory.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open inventory: %w", err)
	}

	sessions := session.NewManager(session.NewRedisStore(cfg.Redis))
	embedder := embedding.NewService(llm.NewEmbeddingClient(cfg.OpenAI), cfg.OpenAI.EmbeddingModel)
	reranker := rerank.New(embedder)

	orch := orchestrator.New(llm.NewClient(cfg.OpenAI), reranker, sessions, store)
	return orch, sessions, nil
}
