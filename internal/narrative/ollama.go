package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OllamaClient implements Generator against an Ollama-compatible HTTP API:
// POST {base}/generate for completions and GET {base}/tags as a liveness
// probe.
type OllamaClient struct {
	baseURL string
	model   string
	http    *http.Client
}

// NewOllamaClient constructs an OllamaClient.
//
// Precondition: baseURL and model must be non-empty; timeout > 0.
func NewOllamaClient(baseURL, model string, timeout time.Duration) *OllamaClient {
	return &OllamaClient{
		baseURL: baseURL,
		model:   model,
		http:    &http.Client{Timeout: timeout},
	}
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	MaxTokens   int     `json:"max_tokens"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate issues a single bounded-length completion request.
//
// Postcondition: Returns the raw response text, or an error on any network
// failure, non-success status, or malformed body. No retries are performed;
// the caller's fallback policy keeps turn latency bounded.
func (c *OllamaClient) Generate(ctx context.Context, prompt string, gc Context) (string, error) {
	payload := generateRequest{
		Model:  c.model,
		Prompt: BuildPrompt(prompt, gc),
		Stream: false,
		Options: generateOptions{
			Temperature: 0.8,
			TopP:        0.9,
			MaxTokens:   300,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("building generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling generate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("generate returned status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decoding generate response: %w", err)
	}
	return decoded.Response, nil
}

// Ping performs the lightweight liveness probe.
//
// Postcondition: Returns nil iff GET {base}/tags answers with a success
// status.
func (c *OllamaClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tags", nil)
	if err != nil {
		return fmt.Errorf("building tags request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling tags: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tags returned status %d", resp.StatusCode)
	}
	return nil
}
