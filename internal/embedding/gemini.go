package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/papermind/docstudio/internal/config"
)

// GeminiEmbedder calls the Generative Language embedContent endpoint.
// Input is truncated to the configured character budget before submission
// because the endpoint imposes input-size limits.
type GeminiEmbedder struct {
	baseURL    string
	apiKey     string
	model      string
	dimensions int
	maxChars   int
	client     *http.Client
}

// GeminiOption configures a GeminiEmbedder.
type GeminiOption func(*GeminiEmbedder)

// WithHTTPClient overrides the HTTP client (used by tests with httptest servers).
func WithHTTPClient(c *http.Client) GeminiOption {
	return func(e *GeminiEmbedder) { e.client = c }
}

// NewGeminiEmbedder creates an embedder from config. apiKey is the raw credential.
func NewGeminiEmbedder(cfg *config.GeminiConfig, apiKey string, opts ...GeminiOption) *GeminiEmbedder {
	e := &GeminiEmbedder{
		baseURL:    cfg.BaseURL,
		apiKey:     apiKey,
		model:      cfg.EmbeddingModel,
		dimensions: cfg.EmbeddingDimensions,
		maxChars:   cfg.EmbeddingMaxChars,
		client:     &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type embedRequest struct {
	Model    string       `json:"model"`
	Content  embedContent `json:"content"`
	TaskType string       `json:"taskType"`
}

type embedContent struct {
	Parts []embedPart `json:"parts"`
}

type embedPart struct {
	Text string `json:"text"`
}

type embedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

// Embed returns the embedding vector for text. Any remote failure is returned
// as an error; wrap with NewFallback for the zero-vector degrade policy.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string, task Task) ([]float32, error) {
	if len(text) > e.maxChars {
		cut := e.maxChars
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	body, err := json.Marshal(embedRequest{
		Model:    e.model,
		Content:  embedContent{Parts: []embedPart{{Text: text}}},
		TaskType: string(task),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	url := fmt.Sprintf("%s/v1beta/%s:embedContent", e.baseURL, e.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embed request: %w", err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embed failed: %s", resp.Status)
	}
	var out embedResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(out.Embedding.Values) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	return out.Embedding.Values, nil
}

// Dimensions returns the model's expected embedding dimension.
func (e *GeminiEmbedder) Dimensions() int {
	return e.dimensions
}
