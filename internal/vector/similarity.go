// ABOUTME: Cosine similarity ranking over a corpus of embedding vectors
// ABOUTME: BestMatch and stable TopK with typed errors for invalid inputs
package vector

import (
	"errors"
	"math"
	"sort"
)

var (
	// ErrEmptyQuery is returned when the query vector is missing.
	ErrEmptyQuery = errors.New("empty query vector")
	// ErrEmptyCorpus is returned when there are no candidate vectors.
	ErrEmptyCorpus = errors.New("empty corpus")
	// ErrDimensionMismatch is returned when the query vector dimension does
	// not match the corpus.
	ErrDimensionMismatch = errors.New("query vector dimension mismatch")
)

// Scored is one ranked candidate: its position in the original corpus and
// its cosine similarity against the query.
type Scored struct {
	Index      int
	Similarity float64
}

// BestMatch returns the single highest-scoring corpus entry. No similarity
// threshold is applied here; a best match is returned however low it scores.
func BestMatch(query []float64, corpus [][]float64) (Scored, error) {
	sims, err := similarities(query, corpus)
	if err != nil {
		return Scored{}, err
	}
	best := Scored{Index: 0, Similarity: sims[0]}
	for i, s := range sims {
		if s > best.Similarity {
			best = Scored{Index: i, Similarity: s}
		}
	}
	return best, nil
}

// TopK returns the k highest-scoring entries sorted descending by
// similarity. Ties keep original corpus order. Returns fewer than k entries
// when the corpus is smaller.
func TopK(query []float64, corpus [][]float64, k int) ([]Scored, error) {
	if k <= 0 {
		return nil, nil
	}
	sims, err := similarities(query, corpus)
	if err != nil {
		return nil, err
	}
	scored := make([]Scored, len(sims))
	for i, s := range sims {
		scored[i] = Scored{Index: i, Similarity: s}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// similarities computes cosine similarity between query and every corpus
// row in one pass, reusing the query norm.
func similarities(query []float64, corpus [][]float64) ([]float64, error) {
	if len(query) == 0 {
		return nil, ErrEmptyQuery
	}
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}
	for _, row := range corpus {
		if len(row) != len(query) {
			return nil, ErrDimensionMismatch
		}
	}

	var queryNorm float64
	for _, v := range query {
		queryNorm += v * v
	}
	queryNorm = math.Sqrt(queryNorm)

	sims := make([]float64, len(corpus))
	for i, row := range corpus {
		var dot, norm float64
		for j := range row {
			dot += query[j] * row[j]
			norm += row[j] * row[j]
		}
		norm = math.Sqrt(norm)
		if queryNorm == 0 || norm == 0 {
			sims[i] = 0
			continue
		}
		sims[i] = dot / (queryNorm * norm)
	}
	return sims, nil
}

// CosineSimilarity calculates cosine similarity between two vectors.
// Returns 0 for mismatched dimensions or zero-magnitude vectors.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
