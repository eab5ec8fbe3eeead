package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"github.com/papermind/docstudio/internal/config"
)

func geminiTestConfig(baseURL string) *config.GeminiConfig {
	return &config.GeminiConfig{
		BaseURL:             baseURL,
		EmbeddingModel:      "models/embedding-001",
		EmbeddingDimensions: 4,
		EmbeddingMaxChars:   8000,
		TimeoutSeconds:      5,
	}
}

func TestGeminiEmbedder_Embed(t *testing.T) {
	var gotTask string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/embedding-001:embedContent" {
			t.Errorf("path: %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("api key header: %s", r.Header.Get("x-goog-api-key"))
		}
		var req struct {
			TaskType string `json:"taskType"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotTask = req.TaskType
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": map[string]interface{}{"values": []float32{0.1, 0.2, 0.3, 0.4}},
		})
	}))
	defer srv.Close()

	e := NewGeminiEmbedder(geminiTestConfig(srv.URL), "test-key")
	vec, err := e.Embed(context.Background(), "hello", TaskDocument)
	if err != nil {
		t.Fatal(err)
	}
	if len(vec) != 4 {
		t.Errorf("vector length=%d", len(vec))
	}
	if gotTask != "RETRIEVAL_DOCUMENT" {
		t.Errorf("task type: %s", gotTask)
	}
}

func TestGeminiEmbedder_Truncation(t *testing.T) {
	var gotLen int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotLen = len(req.Content.Parts[0].Text)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": map[string]interface{}{"values": []float32{1}},
		})
	}))
	defer srv.Close()

	cfg := geminiTestConfig(srv.URL)
	cfg.EmbeddingMaxChars = 10
	e := NewGeminiEmbedder(cfg, "test-key")
	long := make([]byte, 100)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := e.Embed(context.Background(), string(long), TaskQuery); err != nil {
		t.Fatal(err)
	}
	if gotLen != 10 {
		t.Errorf("submitted length=%d, want 10", gotLen)
	}
}

func TestGeminiEmbedder_TruncationRuneBoundary(t *testing.T) {
	var gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotText = req.Content.Parts[0].Text
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": map[string]interface{}{"values": []float32{1}},
		})
	}))
	defer srv.Close()

	cfg := geminiTestConfig(srv.URL)
	cfg.EmbeddingMaxChars = 10
	e := NewGeminiEmbedder(cfg, "test-key")
	// 9 ASCII bytes then a two-byte rune: a cut at byte 10 would split it.
	if _, err := e.Embed(context.Background(), "abcdefghié", TaskQuery); err != nil {
		t.Fatal(err)
	}
	if gotText != "abcdefghi" {
		t.Errorf("submitted text=%q", gotText)
	}
	if !utf8.ValidString(gotText) {
		t.Errorf("submitted text is not valid UTF-8: %q", gotText)
	}
}

func TestGeminiEmbedder_RemoteError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	e := NewGeminiEmbedder(geminiTestConfig(srv.URL), "test-key")
	if _, err := e.Embed(context.Background(), "hello", TaskQuery); err == nil {
		t.Error("expected error on 403")
	}
}

func TestGeminiEmbedder_EmptyEmbedding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{})
	}))
	defer srv.Close()

	e := NewGeminiEmbedder(geminiTestConfig(srv.URL), "test-key")
	if _, err := e.Embed(context.Background(), "hello", TaskQuery); err == nil {
		t.Error("expected error on empty embedding")
	}
}
