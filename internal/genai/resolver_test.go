package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestValidateAPIKey(t *testing.T) {
	if err := ValidateAPIKey("AIzaSyExample123"); err != nil {
		t.Errorf("long key rejected: %v", err)
	}
	for _, key := range []string{"", "short", "   spaced  "} {
		err := ValidateAPIKey(key)
		if err == nil {
			t.Errorf("key %q accepted", key)
			continue
		}
		if err.Error() != "invalid API key format" {
			t.Errorf("error=%q", err.Error())
		}
	}
}

func TestResolve_PreferredWorks(t *testing.T) {
	var probed []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(r.URL.Path, "/")
		model := strings.TrimSuffix(parts[len(parts)-1], ":generateContent")
		probed = append(probed, model)
		_ = json.NewEncoder(w).Encode(textResponse("ok"))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	model, err := Resolve(context.Background(), c, []string{"gemini-1.5-flash", "gemini-1.5-pro"}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if model != "gemini-1.5-flash" {
		t.Errorf("model=%s", model)
	}
	if len(probed) != 1 {
		t.Errorf("probes=%v, want one", probed)
	}
}

func TestResolve_FallbackToDiscovery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1beta/models" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"models": []map[string]interface{}{
					{"name": "models/embedding-001", "supportedGenerationMethods": []string{"embedContent"}},
					{"name": "models/gemini-2.0-flash", "supportedGenerationMethods": []string{"generateContent"}},
				},
			})
			return
		}
		if strings.Contains(r.URL.Path, "gemini-2.0-flash") {
			_ = json.NewEncoder(w).Encode(textResponse("ok"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": 404, "message": "not found"},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	model, err := Resolve(context.Background(), c, []string{"gemini-1.5-flash"}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if model != "gemini-2.0-flash" {
		t.Errorf("model=%s", model)
	}
}

func TestResolve_NoWorkingModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1beta/models" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"models": []map[string]interface{}{
					{"name": "models/m1", "supportedGenerationMethods": []string{"generateContent"}},
					{"name": "models/m2", "supportedGenerationMethods": []string{"generateContent"}},
					{"name": "models/m3", "supportedGenerationMethods": []string{"generateContent"}},
					{"name": "models/m4", "supportedGenerationMethods": []string{"generateContent"}},
				},
			})
			return
		}
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": 403, "message": "denied"},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := Resolve(context.Background(), c, []string{"gemini-1.5-flash"}, zap.NewNop())
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "no working model. Available: ") {
		t.Fatalf("error=%q", msg)
	}
	// The available list is capped at three entries.
	if strings.Contains(msg, "m4") {
		t.Errorf("list not capped: %q", msg)
	}
}

func TestResolve_NoGenerationModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1beta/models" {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"models": []map[string]interface{}{
					{"name": "models/embedding-001", "supportedGenerationMethods": []string{"embedContent"}},
				},
			})
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := Resolve(context.Background(), c, []string{"gemini-1.5-flash"}, zap.NewNop())
	if err == nil || err.Error() != "no text generation models available for this API key" {
		t.Errorf("error=%v", err)
	}
}

func TestResolve_DiscoveryFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": 500, "message": "backend unavailable"},
		})
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := Resolve(context.Background(), c, []string{"gemini-1.5-flash"}, zap.NewNop())
	if err == nil || !strings.HasPrefix(err.Error(), "model discovery failed: ") {
		t.Fatalf("error=%v", err)
	}
	// The message carries the actual probe failure, not a generic summary.
	if !strings.Contains(err.Error(), "backend unavailable") {
		t.Errorf("probe cause missing: %q", err.Error())
	}
}
