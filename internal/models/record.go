// ABOUTME: Corpus record models for the text and Q&A corpora
// ABOUTME: Defines ContentRecord, QAResource and their scored search results
package models

// ContentRecord is one row of the free-text corpus with its precomputed
// embedding. Rows are produced by an offline ingestion process and are
// read-only at query time.
type ContentRecord struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	Embedding []float64 `json:"-"`
}

// QAResource is one row of the Q&A corpus: a practice question with links
// to an article and a practice problem.
type QAResource struct {
	ID           int64     `json:"id"`
	Section      string    `json:"section"`
	Question     string    `json:"question"`
	ArticleLink  string    `json:"article_link"`
	PracticeLink string    `json:"practice_link"`
	Embedding    []float64 `json:"-"`
}

// ScoredQA is a QAResource with its cosine similarity against the query,
// produced per request and discarded after response assembly.
type ScoredQA struct {
	QAResource
	Similarity float64 `json:"similarity"`
}
