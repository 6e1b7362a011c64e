// ABOUTME: Shared pipeline construction for CLI commands
// ABOUTME: Builds the orchestrator from config, swappable in tests
package commands

import (
	"context"
	"fmt"

	"github.com/dsamentor/dsa-mentor/internal/config"
	"github.com/dsamentor/dsa-mentor/internal/core"
	"github.com/dsamentor/dsa-mentor/internal/embeddings"
	"github.com/dsamentor/dsa-mentor/internal/intent"
	"github.com/dsamentor/dsa-mentor/internal/models"
	"github.com/dsamentor/dsa-mentor/internal/server"
	"github.com/dsamentor/dsa-mentor/internal/storage/postgres"
)

// buildPipeline constructs the full retrieval pipeline from the environment.
// Tests replace it with a fake.
var buildPipeline = func() (server.Answerer, *config.Config, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	embedder := embeddings.NewClient(cfg)
	classifier := intent.NewClassifier(cfg)

	var corpus core.CorpusProvider = emptyCorpus{}
	var videoStore core.VideoSearcher
	cleanup := func() error { return nil }

	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening database: %w", err)
		}
		store := postgres.NewStore(db, cfg.Dimension)
		corpus = store
		videoStore = store
		cleanup = db.Close
	}

	orch := core.NewOrchestrator(cfg, embedder, corpus, videoStore, classifier)
	return orch, cfg, cleanup, nil
}

// emptyCorpus serves when no database is configured. Retrieval degrades to
// "no relevant content" while canned intents keep working.
type emptyCorpus struct{}

func (emptyCorpus) LoadTextCorpus(ctx context.Context) []models.ContentRecord { return nil }
func (emptyCorpus) LoadQACorpus(ctx context.Context) []models.QAResource     { return nil }
