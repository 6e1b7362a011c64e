// ABOUTME: HTTP client for the Hugging Face feature-extraction embedding API
// ABOUTME: Credential failover (primary then backup token) with exponential backoff
package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/dsamentor/dsa-mentor/internal/config"
	"github.com/dsamentor/dsa-mentor/internal/util"
	"github.com/dsamentor/dsa-mentor/internal/vector"
)

// ErrNoCredentials is returned when neither a primary nor a backup API
// token is configured.
var ErrNoCredentials = errors.New("no embedding API token configured")

// Client obtains fixed-dimension embeddings from a feature-extraction
// endpoint. It holds an ordered credential list: the backup token (when
// configured) is tried after the primary's first transport failure, before
// any same-credential backoff retry.
type Client struct {
	httpClient *http.Client
	apiURL     string
	tokens     []string
	dimension  int
	maxRetries int
	retryDelay time.Duration

	// sleep is swapped out in tests to keep the backoff schedule observable
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient builds a Client from configuration. Missing tokens are allowed;
// Embed reports ErrNoCredentials when called with none configured.
func NewClient(cfg *config.Config) *Client {
	var tokens []string
	if cfg.HFToken != "" {
		tokens = append(tokens, cfg.HFToken)
	}
	if cfg.HFTokenBackup != "" {
		tokens = append(tokens, cfg.HFTokenBackup)
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiURL:     cfg.HFAPIURL,
		tokens:     tokens,
		dimension:  cfg.Dimension,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		sleep:      waitBackoff,
	}
}

// Embed converts text into an embedding vector of the configured dimension.
// Expected provider failures (timeouts, 4xx/5xx, malformed bodies) are
// retried across the credential list and ultimately surface as an error the
// caller maps to a degraded "search unavailable" condition.
func (c *Client) Embed(ctx context.Context, text string) ([]float64, error) {
	if text == "" {
		return nil, errors.New("empty text for embedding")
	}
	if len(c.tokens) == 0 {
		return nil, ErrNoCredentials
	}

	credential := 0
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			// Credential failover takes priority over same-credential
			// backoff: switch to the backup immediately after the primary's
			// first failure.
			if credential == 0 && len(c.tokens) > 1 {
				credential = 1
				log.Printf("[Embed] Primary credential failed, failing over to backup")
			} else if err := c.sleep(ctx, util.CalculateBackoff(c.retryDelay, attempt)); err != nil {
				break
			}
		}

		vec, err := c.request(ctx, text, c.tokens[credential])
		if err == nil {
			return vec, nil
		}
		lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
		log.Printf("[Embed] %v", lastErr)

		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("embedding failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// waitBackoff blocks for d or until ctx is cancelled, whichever comes first.
func waitBackoff(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// request performs one POST against the feature-extraction endpoint.
func (c *Client) request(ctx context.Context, text, token string) ([]float64, error) {
	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embedding request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("embedding API status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var decoded any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decoding embedding response: %w", err)
	}

	// The provider may return a flat vector or a nested/batched shape.
	values, ok := decoded.([]any)
	if !ok {
		return nil, fmt.Errorf("unexpected embedding response type %T", decoded)
	}
	vec := vector.Flatten(values)
	if vec == nil {
		return nil, errors.New("embedding response contained no numeric values")
	}
	if len(vec) != c.dimension {
		return nil, fmt.Errorf("embedding dimension %d, want %d", len(vec), c.dimension)
	}
	return vec, nil
}
