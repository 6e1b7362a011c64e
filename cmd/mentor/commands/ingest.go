// ABOUTME: CLI command to ingest corpus rows from a JSON file
// ABOUTME: Embeds content and Q&A entries and upserts them into Postgres
package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dsamentor/dsa-mentor/internal/config"
	"github.com/dsamentor/dsa-mentor/internal/embeddings"
	"github.com/dsamentor/dsa-mentor/internal/models"
	"github.com/dsamentor/dsa-mentor/internal/storage/postgres"
)

// ingestFile is the JSON ingestion format: free-text content blocks plus
// Q&A resources, embedded at load time.
type ingestFile struct {
	Content []ingestContent `json:"content"`
	QA      []ingestQA      `json:"qa"`
}

type ingestContent struct {
	ID      int64  `json:"id,omitempty"`
	Content string `json:"content"`
}

type ingestQA struct {
	ID           int64  `json:"id,omitempty"`
	Section      string `json:"section"`
	Question     string `json:"question"`
	ArticleLink  string `json:"article_link"`
	PracticeLink string `json:"practice_link"`
}

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file.json>",
		Short: "Ingest corpus rows from a JSON file",
		Long: `Ingest corpus rows from a JSON file into the database.

Each content block and Q&A entry is embedded via the configured
embedding provider and upserted with its vector. The schema is created
when missing.

File format:
  {
    "content": [{"content": "Merge sort is ..."}],
    "qa": [{"section": "Sorting", "question": "What is merge sort?"}]
  }

Examples:
  mentor ingest corpus.json`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	// Load .env for API keys and the database URL
	_ = godotenv.Load()

	file, err := parseIngestFile(args[0])
	if err != nil {
		return err
	}
	if len(file.Content) == 0 && len(file.QA) == 0 {
		return fmt.Errorf("%s contains no content or qa entries", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set for ingestion")
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	store := postgres.NewStore(db, cfg.Dimension)
	if err := store.EnsureSchema(cmd.Context()); err != nil {
		return err
	}

	embedder := embeddings.NewClient(cfg)

	var contentCount, qaCount int
	for _, c := range file.Content {
		vec, err := embedder.Embed(cmd.Context(), c.Content)
		if err != nil {
			return fmt.Errorf("embedding content entry %d: %w", contentCount+1, err)
		}
		if _, err := store.UpsertContent(cmd.Context(), models.ContentRecord{
			ID:        c.ID,
			Content:   c.Content,
			Embedding: vec,
		}); err != nil {
			return err
		}
		contentCount++
	}

	for _, q := range file.QA {
		vec, err := embedder.Embed(cmd.Context(), q.Question)
		if err != nil {
			return fmt.Errorf("embedding qa entry %d: %w", qaCount+1, err)
		}
		if _, err := store.UpsertQAResource(cmd.Context(), models.QAResource{
			ID:           q.ID,
			Section:      q.Section,
			Question:     q.Question,
			ArticleLink:  q.ArticleLink,
			PracticeLink: q.PracticeLink,
			Embedding:    vec,
		}); err != nil {
			return err
		}
		qaCount++
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d content block(s) and %d qa entr(ies)\n",
			contentCount, qaCount)
	}
	return nil
}

// parseIngestFile reads and validates the ingestion JSON.
func parseIngestFile(path string) (ingestFile, error) {
	var file ingestFile

	data, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i, c := range file.Content {
		if c.Content == "" {
			return file, fmt.Errorf("content entry %d has no content", i+1)
		}
	}
	for i, q := range file.QA {
		if q.Question == "" {
			return file, fmt.Errorf("qa entry %d has no question", i+1)
		}
	}
	return file, nil
}
