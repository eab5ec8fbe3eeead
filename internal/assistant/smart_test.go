package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/papermind/docstudio/internal/models"
)

// fakeRetriever returns a fixed result set.
type fakeRetriever struct {
	results []models.SearchResult
}

func (f *fakeRetriever) Search(ctx context.Context, query string, k int) []models.SearchResult {
	if k < len(f.results) {
		return f.results[:k]
	}
	return f.results
}

// panickyRetriever simulates an internal failure inside the engine.
type panickyRetriever struct{}

func (panickyRetriever) Search(ctx context.Context, query string, k int) []models.SearchResult {
	panic("index corrupted")
}

func TestSmartAnswer_WithDocs(t *testing.T) {
	gen := &fakeGenerator{}
	a := New(gen, searchConfig())
	retr := &fakeRetriever{results: []models.SearchResult{
		result("first passage", "a.pdf", "1"),
		result("second passage", "a.pdf", "2"),
		result("third passage", "b.pdf", "1"),
		result("fourth passage", "b.pdf", "2"),
	}}

	sa := a.SmartAnswer(context.Background(), retr, "explain", "")
	if !sa.HasDocs {
		t.Error("HasDocs should be true")
	}
	if sa.DocCount != 4 {
		t.Errorf("DocCount=%d", sa.DocCount)
	}
	// Only the top ContextTop passages reach the prompt and sources.
	if len(sa.Sources) != 3 {
		t.Errorf("sources=%d, want 3", len(sa.Sources))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "first passage") || strings.Contains(prompt, "fourth passage") {
		t.Errorf("prompt context wrong:\n%s", prompt)
	}
	if !strings.Contains(prompt, "general knowledge") {
		t.Error("hybrid prompt should allow general knowledge")
	}
}

func TestSmartAnswer_NoDocs(t *testing.T) {
	gen := &fakeGenerator{answer: "general knowledge answer"}
	a := New(gen, searchConfig())

	sa := a.SmartAnswer(context.Background(), &fakeRetriever{}, "what is gravity", "")
	if sa.HasDocs {
		t.Error("HasDocs should be false")
	}
	if sa.DocCount != 0 {
		t.Errorf("DocCount=%d", sa.DocCount)
	}
	if len(sa.Sources) != 0 {
		t.Errorf("sources=%v", sa.Sources)
	}
	if sa.Answer != "general knowledge answer" {
		t.Errorf("Answer=%q", sa.Answer)
	}
	if !strings.Contains(gen.prompts[0], "No documents are uploaded") {
		t.Errorf("no-docs prompt wrong:\n%s", gen.prompts[0])
	}
}

func TestSmartAnswer_PanicBecomesApology(t *testing.T) {
	a := New(&fakeGenerator{}, searchConfig())
	sa := a.SmartAnswer(context.Background(), panickyRetriever{}, "q", "")
	if sa == nil {
		t.Fatal("answer must never be nil")
	}
	if !strings.Contains(sa.Answer, "index corrupted") {
		t.Errorf("apology should carry the cause: %q", sa.Answer)
	}
	if !strings.HasPrefix(sa.Answer, "Error occurred: ") {
		t.Errorf("Answer=%q", sa.Answer)
	}
}
