// ABOUTME: HTTP handlers for query answering, SSE streaming, and health
// ABOUTME: Validates thread ids and maps pipeline errors to status codes
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const threadIDPrefix = "thread_"

// answerChunkSize is the rune count per streamed answer chunk.
const answerChunkSize = 200

type queryRequest struct {
	Query    string `json:"query"`
	ThreadID string `json:"thread_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	req, threadID, ok := s.decodeQueryRequest(w, r)
	if !ok {
		return
	}

	resp, err := s.pipeline.Answer(r.Context(), req.Query)
	if err != nil {
		// Answer only fails on input validation.
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	resp.ThreadID = threadID
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQueryStream(w http.ResponseWriter, r *http.Request) {
	req, threadID, ok := s.decodeQueryRequest(w, r)
	if !ok {
		return
	}

	flusher, canFlush := w.(http.Flusher)
	if !canFlush {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming not supported"})
		return
	}

	resp, err := s.pipeline.Answer(r.Context(), req.Query)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	resp.ThreadID = threadID

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sendEvent(w, flusher, "meta", map[string]any{
		"thread_id":  threadID,
		"title":      resp.BestBook.Title,
		"query_info": resp.Info,
	})
	sendEvent(w, flusher, "summary", map[string]string{"summary": resp.Summary})
	for _, chunk := range chunkText(resp.BestBook.Content, answerChunkSize) {
		sendEvent(w, flusher, "answer", map[string]string{"text": chunk})
	}
	sendEvent(w, flusher, "qa", map[string]any{"top_dsa": resp.TopQA})
	sendEvent(w, flusher, "videos", map[string]any{"video_suggestions": resp.Videos})
	sendEvent(w, flusher, "done", map[string]bool{"done": true})
}

// decodeQueryRequest parses the request body and resolves the thread id,
// writing the error response itself when validation fails.
func (s *Server) decodeQueryRequest(w http.ResponseWriter, r *http.Request) (queryRequest, string, bool) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return req, "", false
	}

	threadID, err := resolveThreadID(req.ThreadID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return req, "", false
	}
	return req, threadID, true
}

// resolveThreadID validates a client-supplied thread id or mints a new one.
func resolveThreadID(id string) (string, error) {
	if id == "" {
		return threadIDPrefix + uuid.NewString(), nil
	}
	suffix, hasPrefix := strings.CutPrefix(id, threadIDPrefix)
	if !hasPrefix {
		return "", fmt.Errorf("thread_id must have the form %s<uuid>", threadIDPrefix)
	}
	if _, err := uuid.Parse(suffix); err != nil {
		return "", fmt.Errorf("thread_id must have the form %s<uuid>", threadIDPrefix)
	}
	return id, nil
}

// chunkText splits s into rune-safe chunks of at most size runes.
func chunkText(s string, size int) []string {
	if s == "" {
		return nil
	}
	runes := []rune(s)
	var chunks []string
	for len(runes) > size {
		chunks = append(chunks, string(runes[:size]))
		runes = runes[size:]
	}
	return append(chunks, string(runes))
}

func sendEvent(w http.ResponseWriter, flusher http.Flusher, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Server] marshaling %s event: %v", event, err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
	flusher.Flush()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[Server] encoding response: %v", err)
	}
}
