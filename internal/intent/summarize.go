// ABOUTME: Context-aware summarization of retrieved content
// ABOUTME: Shapes the summary around what the query asked for (complexity, examples, ...)
package intent

import (
	"context"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/dsamentor/dsa-mentor/internal/models"
)

// Summarize produces a short summary of retrieved content shaped by the
// query context. Returns "" on any failure; the caller supplies default
// copy, so summarization never blocks a response.
func (c *Classifier) Summarize(ctx context.Context, content string, qctx models.QueryContext, rawQuery string) string {
	if strings.TrimSpace(content) == "" {
		return ""
	}
	if c.llm == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var focus []string
	if qctx.ComplexityAsked {
		focus = append(focus, "time and space complexity")
	}
	if qctx.ImplementationAsked {
		focus = append(focus, "implementation steps")
	}
	if qctx.ExampleAsked {
		focus = append(focus, "a worked example")
	}
	if qctx.ComparisonAsked {
		focus = append(focus, "the comparison the user asked about")
	}

	prompt := fmt.Sprintf("Summarize the following DSA learning content in 2-3 sentences for the question %q.", rawQuery)
	if len(focus) > 0 {
		prompt += " Emphasize " + strings.Join(focus, ", ") + "."
	}
	prompt += "\n\nContent:\n" + content

	resp, err := c.llm.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a concise DSA tutor. Answer with the summary only."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   200,
	})
	if err != nil {
		log.Printf("[Intent] Summarization failed: %v", err)
		return ""
	}
	if len(resp.Choices) == 0 {
		return ""
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}
