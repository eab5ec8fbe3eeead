// Package assistant orchestrates retrieval, prompt assembly, generation, and
// citation extraction. It exposes two entry points: strict-context answering
// and the hybrid smart answer engine. Nothing raises past those boundaries.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/papermind/docstudio/internal/config"
	"github.com/papermind/docstudio/internal/models"
	"go.uber.org/zap"
)

// maxCitations bounds how many deduplicated sources an answer carries.
const maxCitations = 5

// TextGenerator is the generation boundary: string in, string out, never fails.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// Retriever is the retrieval boundary the smart answer engine searches against.
type Retriever interface {
	Search(ctx context.Context, query string, k int) []models.SearchResult
}

// Assistant answers questions and produces document artifacts via a resolved model.
type Assistant struct {
	gen    TextGenerator
	search *config.SearchConfig
	logger *zap.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger sets a logger for engine events.
func WithLogger(l *zap.Logger) Option {
	return func(a *Assistant) { a.logger = l }
}

// New creates an assistant over the given generator.
func New(gen TextGenerator, search *config.SearchConfig, opts ...Option) *Assistant {
	a := &Assistant{
		gen:    gen,
		search: search,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnswerQuestion answers in strict mode: only from the supplied context, with
// citations. The same results used as context supply up to maxCitations
// deduplicated file+page sources.
func (a *Assistant) AnswerQuestion(ctx context.Context, question string, results []models.SearchResult, lang string) *models.Answer {
	reg := registerFor(lang)

	prompt := fmt.Sprintf(`You are an AI document assistant.

%s

INSTRUCTIONS:
- Answer ONLY from provided context
- Cite sources as [Filename - Page X]
- Be clear and structured
- If not found, say so

CONTEXT:
%s

QUESTION: %s

ANSWER:`, reg.answerDirective, buildContext(results), question)

	return &models.Answer{
		Answer:  a.gen.Generate(ctx, prompt),
		Sources: collectSources(results, maxCitations),
	}
}

// buildContext enumerates results with a source label per passage.
func buildContext(results []models.SearchResult) string {
	var b strings.Builder
	for i, r := range results {
		fmt.Fprintf(&b, "\n[Source %d: %s - Page %s]\n%s\n", i+1, orDefault(r.Meta.File, "Unknown"), orDefault(r.Meta.Page, "?"), r.Text)
	}
	return b.String()
}

// collectSources deduplicates file+page citations from results, keeping order.
func collectSources(results []models.SearchResult, limit int) []models.Source {
	if limit < len(results) {
		results = results[:limit]
	}
	sources := make([]models.Source, 0, len(results))
	seen := make(map[string]bool)
	for _, r := range results {
		if r.Meta.File == "" {
			continue
		}
		key := r.Meta.File + "-" + r.Meta.Page
		if seen[key] {
			continue
		}
		seen[key] = true
		sources = append(sources, models.Source{File: r.Meta.File, Page: r.Meta.Page})
	}
	return sources
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
