// ABOUTME: Intent-specific response generation for non-retrieval intents
// ABOUTME: Canned replies for greetings and chat, LLM-generated practice questions
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dsamentor/dsa-mentor/internal/models"
	"github.com/dsamentor/dsa-mentor/internal/query"
)

// Question is one generated practice question.
type Question struct {
	Question        string `json:"question"`
	Examples        string `json:"examples"`
	Solution        string `json:"solution"`
	Code            string `json:"code"`
	TimeComplexity  string `json:"time_complexity"`
	SpaceComplexity string `json:"space_complexity"`
}

// RespondByIntent produces the short-circuit response for non-retrieval
// intents. Returns nil for dsa_specific so the retrieval pipeline runs.
func (c *Classifier) RespondByIntent(ctx context.Context, cls models.Classification, rawQuery string) *models.Response {
	base := func(title, content, summary string) *models.Response {
		return &models.Response{
			BestBook: models.BestBook{Title: title, Content: content},
			Summary:  summary,
			TopQA:    []models.ScoredQA{},
			Videos:   []models.Video{},
		}
	}

	switch cls.Type {
	case models.IntentGreeting:
		return base(
			"Hello!",
			"Hi there! I'm DSA Mentor, your assistant for learning Data Structures and Algorithms.\n\nWhat topic would you like to explore today?",
			"Ready to help with any DSA topic!",
		)

	case models.IntentCasualChat:
		return base(
			"I'm doing great!",
			"Thanks for asking! I'm here and ready to help you learn DSA concepts.\n\nWhat would you like to work on?",
			"I'm doing well and ready to help you learn!",
		)

	case models.IntentFunChat:
		return base(
			"That's nice!",
			"I appreciate the friendly chat! While I love conversation, I'm most helpful with DSA topics.\n\nAsk me about any concept!",
			"I'm here for both fun and learning!",
		)

	case models.IntentQuestionGeneration:
		return c.questionGenerationResponse(ctx, rawQuery)

	case models.IntentVagueQuestion:
		return vagueQuestionResponse(rawQuery)
	}

	// dsa_specific falls through to the retrieval pipeline.
	return nil
}

func (c *Classifier) questionGenerationResponse(ctx context.Context, rawQuery string) *models.Response {
	qctx := query.ExtractContext(rawQuery)

	topic := "general"
	if len(qctx.Topics) > 0 {
		topic = qctx.Topics[0]
	}

	questions, err := c.GenerateQuestions(ctx, topic, qctx.Difficulty, 2)
	if err != nil || len(questions) == 0 {
		if err != nil {
			log.Printf("[Intent] Question generation failed: %v", err)
		}
		return &models.Response{
			BestBook: models.BestBook{
				Title:   "Question Generation",
				Content: "I'm having trouble generating questions right now. Please specify a topic (arrays, trees, graphs, etc.) and I'll help you practice!\n\nExample: 'Generate easy array questions' or 'Give me graph problems'",
			},
			Summary: "Specify a DSA topic for practice questions.",
			TopQA:   []models.ScoredQA{},
			Videos:  []models.Video{},
		}
	}

	return &models.Response{
		BestBook: models.BestBook{
			Title:   fmt.Sprintf("%s %s Practice Questions", titleCase(string(qctx.Difficulty)), titleCase(topic)),
			Content: formatQuestions(questions, topic, qctx.Difficulty),
		},
		Summary: fmt.Sprintf("Generated %d practice questions for %s", len(questions), strings.ReplaceAll(topic, "_", " ")),
		TopQA:   []models.ScoredQA{},
		Videos:  []models.Video{},
	}
}

func vagueQuestionResponse(rawQuery string) *models.Response {
	if strings.Contains(strings.ToLower(rawQuery), "dsa") {
		return &models.Response{
			BestBook: models.BestBook{
				Title:   "What is DSA?",
				Content: "DSA stands for **Data Structures and Algorithms**.\n\n**Data Structures** organize and store data efficiently:\n- Arrays, Linked Lists, Stacks, Queues\n- Trees, Graphs, Hash Tables\n\n**Algorithms** solve problems step-by-step:\n- Sorting, Searching\n- Graph traversal, Dynamic Programming\n\nDSA is essential for coding interviews and building scalable systems!",
			},
			Summary: "DSA = Data Structures + Algorithms for efficient problem solving.",
			TopQA:   []models.ScoredQA{},
			Videos:  []models.Video{},
		}
	}

	return &models.Response{
		BestBook: models.BestBook{
			Title:   "I'm here to help!",
			Content: "Please specify what you'd like to learn about:\n\n**Topics I can help with:**\n- Data Structures (arrays, trees, graphs, etc.)\n- Algorithms (sorting, searching, DP, etc.)\n- Complexity analysis\n- Practice problems generation\n\n**Try asking:**\n- \"Explain binary trees\"\n- \"Generate array problems\"\n- \"How does merge sort work?\"",
		},
		Summary: "Specify a DSA topic and I'll help you learn!",
		TopQA:   []models.ScoredQA{},
		Videos:  []models.Video{},
	}
}

const generateSystemPrompt = `You are a DSA practice question generator.
Generate practice questions for the requested topic and difficulty.

Respond with ONLY a valid JSON array. Each element must have these string fields:
question, examples, solution, code, time_complexity, space_complexity.`

// GenerateQuestions asks the LLM for count practice questions on a topic.
func (c *Classifier) GenerateQuestions(ctx context.Context, topic string, difficulty models.Difficulty, count int) ([]Question, error) {
	if c.llm == nil {
		return nil, fmt.Errorf("no chat API configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Generate %d %s practice questions about %s.",
		count, difficulty, strings.ReplaceAll(topic, "_", " "))

	resp, err := c.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: generateSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("question generation call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("question generation returned no choices")
	}

	body := extractJSONArray(resp.Choices[0].Message.Content)
	if body == "" {
		return nil, fmt.Errorf("question generation returned no JSON array")
	}

	var questions []Question
	if err := json.Unmarshal([]byte(body), &questions); err != nil {
		return nil, fmt.Errorf("parsing generated questions: %w", err)
	}
	if len(questions) > count {
		questions = questions[:count]
	}
	return questions, nil
}

func formatQuestions(questions []Question, topic string, difficulty models.Difficulty) string {
	display := strings.ReplaceAll(topic, "_", " ")
	var b strings.Builder
	fmt.Fprintf(&b, "Here are some **%s** practice questions about **%s**:\n\n", difficulty, titleCase(display))

	for i, q := range questions {
		fmt.Fprintf(&b, "## Question %d\n\n", i+1)
		fmt.Fprintf(&b, "**Problem:** %s\n\n", q.Question)
		if q.Examples != "" {
			fmt.Fprintf(&b, "**Example:** %s\n\n", q.Examples)
		}
		solution := q.Solution
		if solution == "" {
			solution = "See code implementation"
		}
		fmt.Fprintf(&b, "**Solution Approach:**\n%s\n\n", solution)
		if q.Code != "" {
			fmt.Fprintf(&b, "**Implementation:**\n```\n%s\n```\n\n", q.Code)
		}
		b.WriteString("**Complexity Analysis:**\n")
		fmt.Fprintf(&b, "- Time: %s\n", orDefault(q.TimeComplexity, "O(n)"))
		fmt.Fprintf(&b, "- Space: %s\n\n", orDefault(q.SpaceComplexity, "O(1)"))
		if i < len(questions)-1 {
			b.WriteString("---\n\n")
		}
	}

	b.WriteString("\n**Tips:** Practice these step by step. Start with the examples and try to implement before looking at the solution!")
	return b.String()
}

// extractJSONArray clamps content to the first '[' through the last ']',
// tolerating code fences and surrounding prose.
func extractJSONArray(content string) string {
	s := strings.TrimSpace(content)
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func titleCase(s string) string {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
