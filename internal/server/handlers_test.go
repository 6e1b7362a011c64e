// ABOUTME: Handler tests using httptest against the chi router
// ABOUTME: Covers thread id rules, error mapping, and the SSE event stream
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/dsamentor/dsa-mentor/internal/models"
)

type fakeAnswerer struct {
	resp  *models.Response
	err   error
	query string
}

func (f *fakeAnswerer) Answer(ctx context.Context, rawQuery string) (*models.Response, error) {
	f.query = rawQuery
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func sampleResponse() *models.Response {
	return &models.Response{
		BestBook: models.BestBook{Title: "DSA Reference", Content: "Merge sort splits and merges.", Similarity: 0.85},
		Summary:  "A summary.",
		TopQA:    []models.ScoredQA{},
		Videos:   []models.Video{},
		Info:     models.QueryInfo{OriginalQuery: "how does merge sort work?"},
	}
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleQuery_Success(t *testing.T) {
	pipeline := &fakeAnswerer{resp: sampleResponse()}
	router := New(pipeline, ":0").Router()

	rec := postJSON(t, router, "/api/query", queryRequest{Query: "how does merge sort work?"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp models.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.BestBook.Title != "DSA Reference" {
		t.Errorf("BestBook.Title = %q", resp.BestBook.Title)
	}
	if pipeline.query != "how does merge sort work?" {
		t.Errorf("pipeline received query %q", pipeline.query)
	}

	suffix, ok := strings.CutPrefix(resp.ThreadID, "thread_")
	if !ok {
		t.Fatalf("ThreadID = %q, want thread_ prefix", resp.ThreadID)
	}
	if _, err := uuid.Parse(suffix); err != nil {
		t.Errorf("ThreadID suffix %q is not a uuid: %v", suffix, err)
	}
}

func TestHandleQuery_EchoesValidThreadID(t *testing.T) {
	pipeline := &fakeAnswerer{resp: sampleResponse()}
	router := New(pipeline, ":0").Router()

	id := "thread_" + uuid.NewString()
	rec := postJSON(t, router, "/api/query", queryRequest{Query: "explain trees", ThreadID: id})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp models.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.ThreadID != id {
		t.Errorf("ThreadID = %q, want %q echoed back", resp.ThreadID, id)
	}
}

func TestHandleQuery_InvalidThreadID(t *testing.T) {
	pipeline := &fakeAnswerer{resp: sampleResponse()}
	router := New(pipeline, ":0").Router()

	for _, id := range []string{"not-a-thread", "thread_nope", "session_" + uuid.NewString()} {
		rec := postJSON(t, router, "/api/query", queryRequest{Query: "explain trees", ThreadID: id})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("thread_id %q: status = %d, want 400", id, rec.Code)
		}
	}
}

func TestHandleQuery_InvalidBody(t *testing.T) {
	router := New(&fakeAnswerer{resp: sampleResponse()}, ":0").Router()

	req := httptest.NewRequest(http.MethodPost, "/api/query", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed JSON", rec.Code)
	}
}

func TestHandleQuery_PipelineValidationError(t *testing.T) {
	pipeline := &fakeAnswerer{err: fmt.Errorf("query cannot be empty")}
	router := New(pipeline, ":0").Router()

	rec := postJSON(t, router, "/api/query", queryRequest{Query: ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	if resp.Error == "" {
		t.Error("error response must carry a message")
	}
}

func TestHandleQueryStream_Events(t *testing.T) {
	pipeline := &fakeAnswerer{resp: sampleResponse()}
	router := New(pipeline, ":0").Router()

	rec := postJSON(t, router, "/api/query/stream", queryRequest{Query: "how does merge sort work?"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	body := rec.Body.String()
	for _, event := range []string{"meta", "summary", "answer", "qa", "videos", "done"} {
		if !strings.Contains(body, "event: "+event+"\n") {
			t.Errorf("stream missing %q event; body:\n%s", event, body)
		}
	}
	if !strings.Contains(body, "Merge sort splits and merges.") {
		t.Error("stream must carry the answer content")
	}

	// done is the terminal event.
	if !strings.HasSuffix(strings.TrimSpace(body), `data: {"done":true}`) {
		t.Errorf("stream must end with the done event; body:\n%s", body)
	}
}

func TestHandleHealthz(t *testing.T) {
	router := New(&fakeAnswerer{}, ":0").Router()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestChunkText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		size  int
		want  []string
	}{
		{"empty", "", 5, nil},
		{"short", "abc", 5, []string{"abc"}},
		{"exact", "abcde", 5, []string{"abcde"}},
		{"split", "abcdefgh", 3, []string{"abc", "def", "gh"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chunkText(tt.input, tt.size)
			if len(got) != len(tt.want) {
				t.Fatalf("chunkText() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
