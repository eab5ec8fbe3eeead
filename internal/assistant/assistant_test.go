package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/papermind/docstudio/internal/config"
	"github.com/papermind/docstudio/internal/models"
)

// fakeGenerator records prompts and returns a canned answer.
type fakeGenerator struct {
	prompts []string
	answer  string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) string {
	f.prompts = append(f.prompts, prompt)
	if f.answer == "" {
		return "canned answer"
	}
	return f.answer
}

func searchConfig() *config.SearchConfig {
	return &config.SearchConfig{TopK: 5, ContextTop: 3}
}

func result(text, file, page string) models.SearchResult {
	return models.SearchResult{
		Text: text,
		Meta: models.ChunkMeta{DocID: "d", File: file, Page: page},
	}
}

func TestAnswerQuestion_Prompt(t *testing.T) {
	gen := &fakeGenerator{}
	a := New(gen, searchConfig())
	results := []models.SearchResult{
		result("photosynthesis converts light", "bio.pdf", "3"),
		result("chlorophyll absorbs red light", "bio.pdf", "4"),
	}

	ans := a.AnswerQuestion(context.Background(), "What is photosynthesis?", results, "")
	if ans.Answer != "canned answer" {
		t.Errorf("Answer=%q", ans.Answer)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("prompts=%d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Answer ONLY from provided context") {
		t.Error("prompt missing strict directive")
	}
	if !strings.Contains(prompt, "Cite sources as [Filename - Page X]") {
		t.Error("prompt missing citation directive")
	}
	if !strings.Contains(prompt, "[Source 1: bio.pdf - Page 3]") {
		t.Errorf("prompt missing source label:\n%s", prompt)
	}
	if !strings.Contains(prompt, "photosynthesis converts light") {
		t.Error("prompt missing passage text")
	}
	if !strings.Contains(prompt, "QUESTION: What is photosynthesis?") {
		t.Error("prompt missing question")
	}
}

func TestAnswerQuestion_SourceDedup(t *testing.T) {
	a := New(&fakeGenerator{}, searchConfig())
	results := []models.SearchResult{
		result("a", "x.pdf", "1"),
		result("b", "x.pdf", "1"), // duplicate file+page
		result("c", "x.pdf", "2"),
		result("d", "y.pdf", "1"),
	}
	ans := a.AnswerQuestion(context.Background(), "q", results, "")
	if len(ans.Sources) != 3 {
		t.Fatalf("sources=%d, want 3 deduplicated", len(ans.Sources))
	}
	if ans.Sources[0].File != "x.pdf" || ans.Sources[0].Page != "1" {
		t.Errorf("first source=%+v", ans.Sources[0])
	}
	if ans.Sources[2].File != "y.pdf" {
		t.Errorf("third source=%+v", ans.Sources[2])
	}
}

func TestAnswerQuestion_SourceCap(t *testing.T) {
	a := New(&fakeGenerator{}, searchConfig())
	var results []models.SearchResult
	for _, page := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		results = append(results, result("t", "f.pdf", page))
	}
	ans := a.AnswerQuestion(context.Background(), "q", results, "")
	if len(ans.Sources) != 5 {
		t.Errorf("sources=%d, want cap of 5", len(ans.Sources))
	}
}

func TestAnswerQuestion_MissingMeta(t *testing.T) {
	gen := &fakeGenerator{}
	a := New(gen, searchConfig())
	results := []models.SearchResult{
		{Text: "orphan passage", Meta: models.ChunkMeta{}},
	}
	ans := a.AnswerQuestion(context.Background(), "q", results, "")
	if len(ans.Sources) != 0 {
		t.Errorf("sourceless passage must not produce a citation: %+v", ans.Sources)
	}
	if !strings.Contains(gen.prompts[0], "[Source 1: Unknown - Page ?]") {
		t.Errorf("prompt should use placeholder labels:\n%s", gen.prompts[0])
	}
}

func TestAnswerQuestion_HindiRegister(t *testing.T) {
	gen := &fakeGenerator{}
	a := New(gen, searchConfig())
	a.AnswerQuestion(context.Background(), "q", []models.SearchResult{result("t", "f", "1")}, "hi")
	if !strings.Contains(gen.prompts[0], "Roman Hinglish") {
		t.Error("hi register should change the answer directive")
	}
}

func TestRegisterFor_UnknownFallsBack(t *testing.T) {
	reg := registerFor("xx")
	if reg.answerDirective != registers["en"].answerDirective {
		t.Error("unknown language should fall back to the English register")
	}
}

func TestStyleFor_Unknown(t *testing.T) {
	if _, err := styleFor(summaryStyles, "summary", "poetic"); err == nil {
		t.Error("unknown style should be rejected")
	}
	if _, err := styleFor(summaryStyles, "summary", "brief"); err != nil {
		t.Errorf("known style rejected: %v", err)
	}
}
