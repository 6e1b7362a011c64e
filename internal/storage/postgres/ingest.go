// ABOUTME: Ingestion writes for corpus rows using native pgvector columns
// ABOUTME: Schema bootstrap plus upserts for content, Q&A, and video rows
package postgres

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/dsamentor/dsa-mentor/internal/models"
)

// EnsureSchema creates the corpus tables and the pgvector extension when
// they are missing. Reads cast the embedding columns to text, so the
// native vector type here stays compatible with the load path.
func (s *Store) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS text_embeddings (
			id BIGSERIAL PRIMARY KEY,
			content TEXT NOT NULL,
			embedding vector(%d)
		)`, s.dimension),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS qa1_resources (
			id BIGSERIAL PRIMARY KEY,
			section TEXT,
			question TEXT NOT NULL,
			article_link TEXT,
			practice_link TEXT,
			embedding vector(%d)
		)`, s.dimension),
		`CREATE TABLE IF NOT EXISTS video_suggestions (
			id BIGSERIAL PRIMARY KEY,
			title TEXT,
			topic TEXT,
			subtopic TEXT,
			description TEXT,
			difficulty TEXT,
			duration TEXT,
			video_url TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensuring schema: %w", err)
		}
	}
	return nil
}

// UpsertContent inserts or updates a text corpus row.
func (s *Store) UpsertContent(ctx context.Context, rec models.ContentRecord) (int64, error) {
	if len(rec.Embedding) != s.dimension {
		return 0, fmt.Errorf("content embedding dimension %d, want %d", len(rec.Embedding), s.dimension)
	}

	vec := pgvector.NewVector(toFloat32(rec.Embedding))
	if rec.ID != 0 {
		_, err := s.db.ExecContext(ctx,
			`UPDATE text_embeddings SET content = $1, embedding = $2 WHERE id = $3`,
			rec.Content, vec, rec.ID)
		if err != nil {
			return 0, fmt.Errorf("updating content row %d: %w", rec.ID, err)
		}
		return rec.ID, nil
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO text_embeddings (content, embedding) VALUES ($1, $2) RETURNING id`,
		rec.Content, vec).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting content row: %w", err)
	}
	return id, nil
}

// UpsertQAResource inserts or updates a Q&A corpus row.
func (s *Store) UpsertQAResource(ctx context.Context, rec models.QAResource) (int64, error) {
	if len(rec.Embedding) != s.dimension {
		return 0, fmt.Errorf("qa embedding dimension %d, want %d", len(rec.Embedding), s.dimension)
	}

	vec := pgvector.NewVector(toFloat32(rec.Embedding))
	if rec.ID != 0 {
		_, err := s.db.ExecContext(ctx,
			`UPDATE qa1_resources SET section = $1, question = $2, article_link = $3, practice_link = $4, embedding = $5 WHERE id = $6`,
			rec.Section, rec.Question, rec.ArticleLink, rec.PracticeLink, vec, rec.ID)
		if err != nil {
			return 0, fmt.Errorf("updating qa row %d: %w", rec.ID, err)
		}
		return rec.ID, nil
	}

	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO qa1_resources (section, question, article_link, practice_link, embedding) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		rec.Section, rec.Question, rec.ArticleLink, rec.PracticeLink, vec).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting qa row: %w", err)
	}
	return id, nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
