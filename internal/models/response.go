// ABOUTME: Assembled response models handed to the presentation layer
// ABOUTME: Mirrors the best_book / top_dsa / video_suggestions JSON contract
package models

// BestBook is the single best-matching content block for a query, with the
// cosine similarity the match scored.
type BestBook struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity,omitempty"`
}

// Video is one video suggestion with playable embed and thumbnail URLs.
type Video struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Topic        string `json:"topic"`
	Subtopic     string `json:"subtopic"`
	Description  string `json:"description"`
	Difficulty   string `json:"difficulty"`
	Duration     string `json:"duration"`
	EmbedURL     string `json:"embed_url"`
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// QueryInfo carries the query diagnostics echoed back with each response.
type QueryInfo struct {
	OriginalQuery  string         `json:"original_query"`
	CleanedQuery   string         `json:"cleaned_query,omitempty"`
	Classification Classification `json:"classification"`
	Context        *QueryContext  `json:"context,omitempty"`
}

// Response is the assembled answer for one query.
type Response struct {
	BestBook BestBook   `json:"best_book"`
	Summary  string     `json:"summary"`
	TopQA    []ScoredQA `json:"top_dsa"`
	Videos   []Video    `json:"video_suggestions"`
	Info     QueryInfo  `json:"query_info"`
	ThreadID string     `json:"thread_id,omitempty"`
}
