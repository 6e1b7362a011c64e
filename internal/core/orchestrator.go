// ABOUTME: Retrieval orchestrator tying sanitization, intent, embedding, and ranking together
// ABOUTME: Caches corpus snapshots with a TTL and degrades gracefully on provider failure
package core

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/dsamentor/dsa-mentor/internal/config"
	"github.com/dsamentor/dsa-mentor/internal/models"
	"github.com/dsamentor/dsa-mentor/internal/query"
	"github.com/dsamentor/dsa-mentor/internal/vector"
)

// Embedder turns text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// CorpusProvider loads corpus snapshots. Implementations degrade to empty
// slices on store failure.
type CorpusProvider interface {
	LoadTextCorpus(ctx context.Context) []models.ContentRecord
	LoadQACorpus(ctx context.Context) []models.QAResource
}

// VideoSearcher finds video suggestions for a topic.
type VideoSearcher interface {
	SearchVideos(ctx context.Context, topic string, limit int) []models.Video
}

// IntentService classifies queries and produces intent-specific responses.
type IntentService interface {
	Classify(ctx context.Context, rawQuery string) models.Classification
	RespondByIntent(ctx context.Context, cls models.Classification, rawQuery string) *models.Response
	Summarize(ctx context.Context, content string, qctx models.QueryContext, rawQuery string) string
}

const (
	maxVideoSuggestions = 3
	videosPerTopic      = 2
)

// genericVideoTopics is the last resort of the video topic fallback chain,
// searched only when the keyword actually appears in the cleaned query.
var genericVideoTopics = []string{"algorithm", "data structure", "programming", "coding"}

// Orchestrator runs the full query-to-response pipeline.
type Orchestrator struct {
	embedder Embedder
	corpus   CorpusProvider
	videos   VideoSearcher
	intents  IntentService

	topK           int
	threshold      float64
	maxQueryLength int
	cacheTTL       time.Duration

	mu        sync.Mutex
	textCache []models.ContentRecord
	qaCache   []models.QAResource
	cachedAt  time.Time
	now       func() time.Time
}

// NewOrchestrator wires the pipeline from its dependencies. videos may be nil
// when no video store is configured.
func NewOrchestrator(cfg *config.Config, embedder Embedder, corpus CorpusProvider, videos VideoSearcher, intents IntentService) *Orchestrator {
	return &Orchestrator{
		embedder:       embedder,
		corpus:         corpus,
		videos:         videos,
		intents:        intents,
		topK:           cfg.TopK,
		threshold:      cfg.SimilarityThreshold,
		maxQueryLength: cfg.MaxQueryLength,
		cacheTTL:       cfg.CorpusCacheTTL,
		now:            time.Now,
	}
}

// Answer runs one query through the full pipeline.
func (o *Orchestrator) Answer(ctx context.Context, rawQuery string) (*models.Response, error) {
	q, err := SanitizeQuery(rawQuery, o.maxQueryLength)
	if err != nil {
		return nil, err
	}

	cls := o.intents.Classify(ctx, q)
	log.Printf("[Core] intent=%s confidence=%.2f dsa=%v", cls.Type, cls.Confidence, cls.IsDSA)

	if resp := o.intents.RespondByIntent(ctx, cls, q); resp != nil {
		resp.Info = models.QueryInfo{OriginalQuery: rawQuery, Classification: cls}
		return resp, nil
	}

	cleaned := query.Clean(q)
	qctx := query.ExtractContext(cleaned)
	info := models.QueryInfo{
		OriginalQuery:  rawQuery,
		CleanedQuery:   cleaned,
		Classification: cls,
		Context:        &qctx,
	}

	queryVec, err := o.embedder.Embed(ctx, cleaned)
	if err != nil {
		log.Printf("[Core] embedding failed: %v", err)
		return degradedResponse(info), nil
	}

	texts, qas := o.corpora(ctx)

	// Q&A ranking and video lookup run regardless of how the text-corpus
	// match goes; a missing best match degrades only the best_book slot.
	topQA := o.topQA(queryVec, qas)
	videos := o.suggestVideos(ctx, cleaned, qctx)

	best, found := o.bestContent(queryVec, texts)
	if !found {
		resp := noContentResponse(info)
		resp.TopQA = topQA
		resp.Videos = videos
		return resp, nil
	}

	summary := o.intents.Summarize(ctx, best.Content, qctx, q)
	if summary == "" {
		summary = "Here's the most relevant content I found for your question."
	}

	return &models.Response{
		BestBook: best,
		Summary:  summary,
		TopQA:    topQA,
		Videos:   videos,
		Info:     info,
	}, nil
}

// corpora returns the cached snapshots, refreshing them when the TTL lapsed.
func (o *Orchestrator) corpora(ctx context.Context) ([]models.ContentRecord, []models.QAResource) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.cachedAt.IsZero() || o.now().Sub(o.cachedAt) > o.cacheTTL {
		o.textCache = o.corpus.LoadTextCorpus(ctx)
		o.qaCache = o.corpus.LoadQACorpus(ctx)
		o.cachedAt = o.now()
	}
	return o.textCache, o.qaCache
}

func (o *Orchestrator) bestContent(queryVec []float64, texts []models.ContentRecord) (models.BestBook, bool) {
	embeddings := make([][]float64, len(texts))
	for i, rec := range texts {
		embeddings[i] = rec.Embedding
	}

	best, err := vector.BestMatch(queryVec, embeddings)
	if err != nil {
		if !errors.Is(err, vector.ErrEmptyCorpus) {
			log.Printf("[Core] best match failed: %v", err)
		}
		return models.BestBook{}, false
	}
	if best.Similarity < o.threshold {
		log.Printf("[Core] best similarity %.3f below threshold %.2f", best.Similarity, o.threshold)
	}

	rec := texts[best.Index]
	return models.BestBook{
		Title:      "DSA Reference",
		Content:    rec.Content,
		Similarity: best.Similarity,
	}, true
}

func (o *Orchestrator) topQA(queryVec []float64, qas []models.QAResource) []models.ScoredQA {
	embeddings := make([][]float64, len(qas))
	for i, rec := range qas {
		embeddings[i] = rec.Embedding
	}

	scored, err := vector.TopK(queryVec, embeddings, o.topK)
	if err != nil {
		if !errors.Is(err, vector.ErrEmptyCorpus) {
			log.Printf("[Core] qa ranking failed: %v", err)
		}
		return []models.ScoredQA{}
	}

	out := make([]models.ScoredQA, 0, len(scored))
	for _, s := range scored {
		out = append(out, models.ScoredQA{
			QAResource: qas[s.Index],
			Similarity: s.Similarity,
		})
	}
	return out
}

// suggestVideos gathers suggestions for the cleaned query and its first two
// context topics, deduplicated and capped. Generic keywords are the last
// resort, and only ones the query mentions get searched.
func (o *Orchestrator) suggestVideos(ctx context.Context, cleaned string, qctx models.QueryContext) []models.Video {
	if o.videos == nil {
		return []models.Video{}
	}

	out := []models.Video{}
	seen := make(map[int64]bool)
	add := func(found []models.Video) {
		for _, v := range found {
			if len(out) >= maxVideoSuggestions {
				return
			}
			if seen[v.ID] {
				continue
			}
			seen[v.ID] = true
			out = append(out, v)
		}
	}

	add(o.videos.SearchVideos(ctx, cleaned, maxVideoSuggestions))
	for i, topic := range qctx.Topics {
		if i >= 2 || len(out) >= maxVideoSuggestions {
			break
		}
		add(o.videos.SearchVideos(ctx, topic, videosPerTopic))
	}

	if len(out) == 0 {
		for _, kw := range genericVideoTopics {
			if !strings.Contains(cleaned, kw) {
				continue
			}
			add(o.videos.SearchVideos(ctx, kw, maxVideoSuggestions))
			if len(out) > 0 {
				break
			}
		}
	}
	return out
}

func degradedResponse(info models.QueryInfo) *models.Response {
	return &models.Response{
		BestBook: models.BestBook{
			Title:   "Search Temporarily Unavailable",
			Content: "I'm having trouble searching right now. Please try again in a moment.",
		},
		Summary: "Search is temporarily unavailable.",
		TopQA:   []models.ScoredQA{},
		Videos:  []models.Video{},
		Info:    info,
	}
}

func noContentResponse(info models.QueryInfo) *models.Response {
	return &models.Response{
		BestBook: models.BestBook{
			Title:   "No Relevant Content",
			Content: "I couldn't find relevant content for your question. Try rephrasing it or ask about a specific DSA topic like arrays, trees, or sorting.",
		},
		Summary: "No relevant content found for this query.",
		TopQA:   []models.ScoredQA{},
		Videos:  []models.Video{},
		Info:    info,
	}
}
