// ABOUTME: LLM-backed intent classification over the Groq chat-completion API
// ABOUTME: Strict JSON output with validation, falling back to rule-based classification
package intent

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dsamentor/dsa-mentor/internal/config"
	"github.com/dsamentor/dsa-mentor/internal/models"
)

const classifySystemPrompt = `You are an intent classifier for a DSA (Data Structures & Algorithms) chatbot.

Classify user queries into these categories:
- "greeting": Hi, hello, good morning
- "casual_chat": How are you, what's up
- "fun_chat": General friendly conversation
- "dsa_specific": Questions about algorithms, data structures, coding, complexity
- "question_generation": Requests to generate/create practice questions, problems, or quizzes
- "vague_question": Unclear or very general questions

For DSA topics like "queue", "stack", "tree", "sorting", "binary search" etc., always use "dsa_specific".
For requests like "generate questions", "create quiz", "practice problems", use "question_generation".

Respond with ONLY valid JSON in this format:
{"type": "category", "confidence": 0.8, "is_dsa": true, "reasoning": "explanation"}`

// ChatCompleter is the slice of the OpenAI-compatible client the classifier
// needs; satisfied by *openai.Client and by test fakes.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Classifier classifies queries with an LLM call, degrading to the
// deterministic fallback on any failure. It never returns an error: a
// well-typed Classification always comes back.
type Classifier struct {
	llm     ChatCompleter
	model   string
	timeout time.Duration
}

// NewClassifier builds a Classifier against the configured Groq endpoint.
// With no API key configured, classification is fully rule-based.
func NewClassifier(cfg *config.Config) *Classifier {
	c := &Classifier{
		model:   cfg.ChatModel,
		timeout: cfg.Timeout,
	}
	if cfg.GroqAPIKey == "" {
		log.Printf("[Intent] No Groq API key configured, using fallback classification only")
		return c
	}
	clientCfg := openai.DefaultConfig(cfg.GroqAPIKey)
	clientCfg.BaseURL = cfg.GroqBaseURL
	c.llm = openai.NewClientWithConfig(clientCfg)
	return c
}

// Classify categorizes a raw user query. The LLM path never raises to the
// caller; every failure mode routes through ClassifyFallback.
func (c *Classifier) Classify(ctx context.Context, rawQuery string) models.Classification {
	if strings.TrimSpace(rawQuery) == "" {
		return models.Classification{
			Type:       models.IntentVagueQuestion,
			Confidence: 0.4,
			IsDSA:      false,
			Reasoning:  "empty query",
		}
	}
	if c.llm == nil {
		return ClassifyFallback(rawQuery)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: "Classify this user query: '" + rawQuery + "'"},
		},
		Temperature: 0.1,
		MaxTokens:   150,
	})
	if err != nil {
		log.Printf("[Intent] Classification call failed, using fallback: %v", err)
		return ClassifyFallback(rawQuery)
	}
	if len(resp.Choices) == 0 {
		log.Printf("[Intent] Classification returned no choices, using fallback")
		return ClassifyFallback(rawQuery)
	}

	cls, ok := parseClassification(resp.Choices[0].Message.Content)
	if !ok {
		log.Printf("[Intent] Malformed classification output, using fallback")
		return ClassifyFallback(rawQuery)
	}
	return cls
}

// parseClassification extracts and normalizes the model's JSON answer. The
// content may be wrapped in code fences or surrounded by prose; only the
// first '{' to the last '}' span is parsed.
func parseClassification(content string) (models.Classification, bool) {
	body := extractJSONObject(content)
	if body == "" {
		return models.Classification{}, false
	}

	var raw struct {
		Type       string   `json:"type"`
		Confidence *float64 `json:"confidence"`
		IsDSA      *bool    `json:"is_dsa"`
		Reasoning  string   `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return models.Classification{}, false
	}

	cls := models.Classification{Type: models.IntentType(raw.Type)}
	if !models.KnownIntent(cls.Type) {
		cls.Type = models.IntentVagueQuestion
	}

	switch {
	case raw.Confidence == nil:
		cls.Confidence = 0.5
	case *raw.Confidence < 0:
		cls.Confidence = 0
	case *raw.Confidence > 1:
		cls.Confidence = 1
	default:
		cls.Confidence = *raw.Confidence
	}

	dsaType := cls.Type == models.IntentDSASpecific || cls.Type == models.IntentQuestionGeneration
	if raw.IsDSA != nil {
		cls.IsDSA = *raw.IsDSA
	}
	// Consistency correction: DSA categories are DSA even if the model
	// said otherwise.
	if dsaType {
		cls.IsDSA = true
	}
	if raw.IsDSA == nil && !dsaType {
		cls.IsDSA = false
	}

	cls.Reasoning = raw.Reasoning
	if cls.Reasoning == "" {
		cls.Reasoning = "classified as " + string(cls.Type)
	}
	return cls, true
}

// extractJSONObject strips code fences and clamps content to the first '{'
// through the last '}'.
func extractJSONObject(content string) string {
	s := strings.TrimSpace(content)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "json")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
