// ABOUTME: Tests for the search command using a fake pipeline
// ABOUTME: Verifies output formats and pipeline error propagation

package commands

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dsamentor/dsa-mentor/internal/config"
	"github.com/dsamentor/dsa-mentor/internal/models"
	"github.com/dsamentor/dsa-mentor/internal/server"
)

type stubPipeline struct {
	resp  *models.Response
	err   error
	query string
}

func (s *stubPipeline) Answer(ctx context.Context, rawQuery string) (*models.Response, error) {
	s.query = rawQuery
	return s.resp, s.err
}

// withStubPipeline swaps buildPipeline for the duration of a test.
func withStubPipeline(t *testing.T, stub *stubPipeline) {
	t.Helper()
	original := buildPipeline
	buildPipeline = func() (server.Answerer, *config.Config, func() error, error) {
		return stub, &config.Config{}, func() error { return nil }, nil
	}
	t.Cleanup(func() { buildPipeline = original })
}

func searchResponse() *models.Response {
	return &models.Response{
		BestBook: models.BestBook{
			Title:      "DSA Reference",
			Content:    "Merge sort splits the input and merges sorted halves.",
			Similarity: 0.85,
		},
		Summary: "Merge sort in a nutshell.",
		TopQA: []models.ScoredQA{
			{QAResource: models.QAResource{Question: "What is merge sort?", Section: "Sorting"}, Similarity: 0.9},
		},
		Videos: []models.Video{},
	}
}

func TestSearchCmd_TableOutput(t *testing.T) {
	stub := &stubPipeline{resp: searchResponse()}
	withStubPipeline(t, stub)

	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"search", "how does merge sort work?"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	outputStr := output.String()
	if !strings.Contains(outputStr, "DSA Reference") {
		t.Errorf("Output should contain the best match title, got:\n%s", outputStr)
	}
	if !strings.Contains(outputStr, "Merge sort splits the input") {
		t.Errorf("Output should contain the content, got:\n%s", outputStr)
	}
	if !strings.Contains(outputStr, "What is merge sort?") {
		t.Errorf("Output should list related questions, got:\n%s", outputStr)
	}
	if stub.query != "how does merge sort work?" {
		t.Errorf("Pipeline received query %q", stub.query)
	}
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	stub := &stubPipeline{resp: searchResponse()}
	withStubPipeline(t, stub)

	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"search", "--format", "json", "explain trees"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	outputStr := output.String()
	if !strings.Contains(outputStr, `"best_book"`) {
		t.Errorf("JSON output should contain best_book, got:\n%s", outputStr)
	}
	if !strings.Contains(outputStr, `"top_dsa"`) {
		t.Errorf("JSON output should contain top_dsa, got:\n%s", outputStr)
	}
}

func TestSearchCmd_PipelineError(t *testing.T) {
	stub := &stubPipeline{err: fmt.Errorf("query cannot be empty")}
	withStubPipeline(t, stub)

	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"search", " "})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected pipeline error to propagate")
	}
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"search"})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error when no query argument is given")
	}
}

func TestSearchCmd_InvalidTopFlag(t *testing.T) {
	stub := &stubPipeline{resp: searchResponse()}
	withStubPipeline(t, stub)

	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"search", "--top", "0", "explain trees"})

	if err := cmd.Execute(); err == nil {
		t.Error("Expected error for non-positive --top")
	}
}
