// ABOUTME: Deterministic rule-based intent classification
// ABOUTME: Used when the LLM classifier is unavailable or returns malformed output
package intent

import (
	"fmt"
	"strings"

	"github.com/dsamentor/dsa-mentor/internal/models"
	"github.com/dsamentor/dsa-mentor/internal/query"
)

// Rule order is load-bearing: exact high-precision phrase matches run before
// broader keyword scans, so "generate a tree question" classifies as
// question_generation rather than merely dsa_specific.
var (
	greetingKeywords = []string{"hi", "hello", "hey", "greetings", "good morning", "good afternoon"}
	casualPhrases    = []string{"how are you", "how r u", "whats up", "what's up", "how's it going"}
	questionPhrases  = []string{
		"generate question", "create question", "practice question", "quiz me",
		"test me", "give me question", "generate problem", "practice problem",
		"give me practice", "generate", "quiz",
	}
	dsaKeywords = []string{
		"algorithm", "complexity", "binary search", "merge sort", "linked list",
		"binary tree", "graph traversal", "data structure", "big o", "recursion",
		"dynamic programming", "dp", "leetcode", "coding interview",
	}
	programmingKeywords = []string{
		"code", "function", "loop", "variable", "programming", "debug", "compile",
	}
)

const maxGreetingLength = 40

// ClassifyFallback classifies a query without any network call.
func ClassifyFallback(rawQuery string) models.Classification {
	q := strings.ToLower(strings.TrimSpace(rawQuery))
	if q == "" {
		return models.Classification{
			Type:       models.IntentVagueQuestion,
			Confidence: 0.4,
			IsDSA:      false,
			Reasoning:  "fallback: empty query",
		}
	}

	if len(q) <= maxGreetingLength && anyWordMatch(q, greetingKeywords) {
		confidence := 0.8
		if isExactMatch(q, greetingKeywords) {
			confidence = 0.9
		}
		return models.Classification{
			Type:       models.IntentGreeting,
			Confidence: confidence,
			IsDSA:      false,
			Reasoning:  "fallback: greeting pattern",
		}
	}

	if anyPhrase(q, casualPhrases) {
		return models.Classification{
			Type:       models.IntentCasualChat,
			Confidence: 0.8,
			IsDSA:      false,
			Reasoning:  "fallback: casual chat pattern",
		}
	}

	if anyPhrase(q, questionPhrases) && looksLikeGenerationRequest(q) {
		return models.Classification{
			Type:       models.IntentQuestionGeneration,
			Confidence: 0.9,
			IsDSA:      true,
			Reasoning:  "fallback: question generation request",
		}
	}

	ctx := query.ExtractContext(q)
	if len(ctx.Topics) > 0 {
		confidence := 0.6 + 0.1*float64(len(ctx.Topics))
		if confidence > 0.9 {
			confidence = 0.9
		}
		return models.Classification{
			Type:       models.IntentDSASpecific,
			Confidence: confidence,
			IsDSA:      true,
			Reasoning:  fmt.Sprintf("fallback: detected topics %v", ctx.Topics),
		}
	}

	if anyPhrase(q, dsaKeywords) {
		return models.Classification{
			Type:       models.IntentDSASpecific,
			Confidence: 0.8,
			IsDSA:      true,
			Reasoning:  "fallback: DSA keyword match",
		}
	}

	if anyPhrase(q, programmingKeywords) {
		return models.Classification{
			Type:       models.IntentDSASpecific,
			Confidence: 0.6,
			IsDSA:      true,
			Reasoning:  "fallback: generic programming term",
		}
	}

	return models.Classification{
		Type:       models.IntentVagueQuestion,
		Confidence: 0.45,
		IsDSA:      false,
		Reasoning:  "fallback: no rule matched",
	}
}

// looksLikeGenerationRequest filters the broad "generate"/"quiz" triggers so
// they only fire for requests about questions, problems, or practice.
func looksLikeGenerationRequest(q string) bool {
	for _, w := range []string{"question", "problem", "quiz", "practice", "test me"} {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}

func anyPhrase(q string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(q, p) {
			return true
		}
	}
	return false
}

// anyWordMatch checks the query's words against exact keywords, so "hi"
// does not fire inside "hierarchy".
func anyWordMatch(q string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(kw, " ") {
			if strings.Contains(q, kw) {
				return true
			}
			continue
		}
		for _, word := range strings.FieldsFunc(q, func(r rune) bool {
			return r == ' ' || r == ',' || r == '!' || r == '?' || r == '.'
		}) {
			if word == kw {
				return true
			}
		}
	}
	return false
}

func isExactMatch(q string, keywords []string) bool {
	trimmed := strings.Trim(q, " !?.,")
	for _, kw := range keywords {
		if trimmed == kw {
			return true
		}
	}
	return false
}
