package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rawe/rag/internal/config"
)

// HTTPClient implements Client against an OpenAI-compatible embeddings
// endpoint, such as the local E5 embedding service.
type HTTPClient struct {
	baseURL string
	model   string
	client  *http.Client
}

// EmbeddingsRequest is the request body for POST /v1/embeddings
type EmbeddingsRequest struct {
	Input []string `json:"input"`
	Model string   `json:"model,omitempty"`
}

// EmbeddingsResponse is the response body of POST /v1/embeddings
type EmbeddingsResponse struct {
	Object string `json:"object"`
	Data   []struct {
		Object    string    `json:"object"`
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Model string `json:"model"`
}

// HealthStatus is the response body of GET /health
type HealthStatus struct {
	Status string `json:"status"`
	Model  string `json:"model"`
	Device string `json:"device"`
}

// ConnectError indicates the embedding service could not be reached.
// It is distinct from malformed-input and HTTP-status errors so callers
// can point the user at the actual remedy.
type ConnectError struct {
	Endpoint string
	Err      error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("could not connect to embedding service at %s: %v\n\n"+
		"Is the embedding service running? Start it with:\n"+
		"  EMBED_E5_MODE=none uv run uvicorn embed_provider.api:app --port 8000",
		e.Endpoint, e.Err)
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

// IsConnectError checks if error is a connectivity failure
func IsConnectError(err error) bool {
	var ce *ConnectError
	return errors.As(err, &ce)
}

// NewHTTPClient creates a client for the configured embedding service
func NewHTTPClient(cfg *config.EmbeddingConfig) *HTTPClient {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &HTTPClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Embed generates embeddings for a batch of texts in a single request
func (c *HTTPClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	endpoint := c.baseURL + "/v1/embeddings"

	reqBody, err := json.Marshal(EmbeddingsRequest{
		Input: texts,
		Model: c.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &ConnectError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding service returned status %d: %s", resp.StatusCode, string(body))
	}

	var apiResp EmbeddingsResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(apiResp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(apiResp.Data))
	}

	if apiResp.Model != "" {
		c.model = apiResp.Model
	}

	embeddings := make([][]float32, len(texts))
	for _, data := range apiResp.Data {
		if data.Index < 0 || data.Index >= len(texts) {
			return nil, fmt.Errorf("invalid embedding index: %d", data.Index)
		}
		embeddings[data.Index] = data.Embedding
	}

	return embeddings, nil
}

// Model reports the model identifier. Before the first request this is
// the configured name; afterwards it is the provider's announced model.
func (c *HTTPClient) Model() string {
	return c.model
}

// Health queries the embedding service health endpoint
func (c *HTTPClient) Health(ctx context.Context) (*HealthStatus, error) {
	endpoint := c.baseURL + "/health"

	httpReq, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &ConnectError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding service returned status %d: %s", resp.StatusCode, string(body))
	}

	var status HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &status, nil
}
