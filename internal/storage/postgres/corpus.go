// ABOUTME: Corpus loading with embedding decode and dimension filtering
// ABOUTME: Requests embeddings as text to defeat native-type decode ambiguity
package postgres

import (
	"context"
	"database/sql"
	"log"

	"github.com/dsamentor/dsa-mentor/internal/models"
	"github.com/dsamentor/dsa-mentor/internal/vector"
)

// Store loads corpus snapshots and video suggestions. Rows whose embedding
// cannot be decoded to the configured dimension are dropped, so everything
// handed to the ranker stacks cleanly.
type Store struct {
	db        *sql.DB
	dimension int
}

// NewStore creates a Store reading vectors of the given dimension
func NewStore(db *DB, dimension int) *Store {
	return &Store{db: db.Conn(), dimension: dimension}
}

// LoadTextCorpus fetches the free-text corpus. Store failures degrade to an
// empty snapshot: retrieval answers "no results" instead of crashing the
// request.
func (s *Store) LoadTextCorpus(ctx context.Context) []models.ContentRecord {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, embedding::text FROM text_embeddings`)
	if err != nil {
		log.Printf("[Corpus] text_embeddings fetch error: %v", err)
		return nil
	}
	defer func() { _ = rows.Close() }()

	var total, decoded int
	var records []models.ContentRecord
	for rows.Next() {
		var rec models.ContentRecord
		var raw sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Content, &raw); err != nil {
			log.Printf("[Corpus] text_embeddings scan error: %v", err)
			continue
		}
		total++
		vec := decodeEmbedding(raw)
		if vec != nil {
			decoded++
		}
		if !validDimension(vec, s.dimension) {
			continue
		}
		rec.Embedding = vec
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		log.Printf("[Corpus] text_embeddings iteration error: %v", err)
	}

	log.Printf("[Corpus] text_embeddings: %d fetched, %d decoded, %d valid at dimension %d",
		total, decoded, len(records), s.dimension)
	return records
}

// LoadQACorpus fetches the Q&A corpus with the same decode and dimension
// filtering as the text corpus.
func (s *Store) LoadQACorpus(ctx context.Context) []models.QAResource {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, section, question, article_link, practice_link, embedding::text FROM qa1_resources`)
	if err != nil {
		log.Printf("[Corpus] qa1_resources fetch error: %v", err)
		return nil
	}
	defer func() { _ = rows.Close() }()

	var total, decoded int
	var records []models.QAResource
	for rows.Next() {
		var rec models.QAResource
		var section, question, article, practice, raw sql.NullString
		if err := rows.Scan(&rec.ID, &section, &question, &article, &practice, &raw); err != nil {
			log.Printf("[Corpus] qa1_resources scan error: %v", err)
			continue
		}
		total++
		vec := decodeEmbedding(raw)
		if vec != nil {
			decoded++
		}
		if !validDimension(vec, s.dimension) {
			continue
		}
		rec.Section = section.String
		rec.Question = question.String
		rec.ArticleLink = article.String
		rec.PracticeLink = practice.String
		rec.Embedding = vec
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		log.Printf("[Corpus] qa1_resources iteration error: %v", err)
	}

	if total == 0 {
		log.Printf("[Corpus] qa1_resources table is empty")
	}
	log.Printf("[Corpus] qa1_resources: %d fetched, %d decoded, %d valid at dimension %d",
		total, decoded, len(records), s.dimension)
	return records
}

func decodeEmbedding(raw sql.NullString) []float64 {
	if !raw.Valid {
		return nil
	}
	return vector.Decode(raw.String)
}

// validDimension is the corpus admission check: only vectors of exactly the
// configured dimension reach the ranker.
func validDimension(vec []float64, dimension int) bool {
	return len(vec) == dimension
}
