package assistant

import (
	"context"
	"fmt"

	"github.com/papermind/docstudio/pkg/utils"
)

// Content caps for tool prompts, matching the remote model's useful context.
const (
	toolContentMax     = 15000
	analysisContentMax = 10000
	compareContentMax  = 5000
)

// Summarize produces a summary of content in the given style
// (brief, detailed, bullets, cheatsheet). Unknown styles are rejected.
func (a *Assistant) Summarize(ctx context.Context, content, style, lang string) (string, error) {
	tpl, err := styleFor(summaryStyles, "summary", style)
	if err != nil {
		return "", err
	}
	reg := registerFor(lang)
	prompt := fmt.Sprintf(`%s

Content:
%s

Summary:`, fmt.Sprintf(tpl, reg.toolDirective), utils.Truncate(content, toolContentMax))
	return a.gen.Generate(ctx, prompt), nil
}

// CreateNotes produces study notes in the given style
// (detailed, revision, cheatsheet). Unknown styles are rejected.
func (a *Assistant) CreateNotes(ctx context.Context, content, style, lang string) (string, error) {
	tpl, err := styleFor(noteStyles, "notes", style)
	if err != nil {
		return "", err
	}
	reg := registerFor(lang)
	prompt := fmt.Sprintf(`%s

Make it student-friendly and easy to understand.

Content:
%s

Notes:`, fmt.Sprintf(tpl, reg.toolDirective), utils.Truncate(content, toolContentMax))
	return a.gen.Generate(ctx, prompt), nil
}

// CreateMCQs produces count multiple-choice questions over content.
func (a *Assistant) CreateMCQs(ctx context.Context, content string, count int, lang string) (string, error) {
	if count <= 0 {
		return "", fmt.Errorf("mcq count must be positive, got %d", count)
	}
	reg := registerFor(lang)
	prompt := fmt.Sprintf(`Create %d high-quality MCQs %s.

Format each question as:

Q[N]. [Question]
A) [Option A]
B) [Option B]
C) [Option C]
D) [Option D]

Answer: [Letter]
Explanation: [Brief explanation]

---

Content:
%s

Generate %d MCQs:`, count, reg.toolDirective, utils.Truncate(content, toolContentMax), count)
	return a.gen.Generate(ctx, prompt), nil
}

// CreateFlashcards produces count study flashcards over content.
func (a *Assistant) CreateFlashcards(ctx context.Context, content string, count int, lang string) (string, error) {
	if count <= 0 {
		return "", fmt.Errorf("flashcard count must be positive, got %d", count)
	}
	reg := registerFor(lang)
	prompt := fmt.Sprintf(`Create %d study flashcards %s.

Format:

Card [N]
FRONT: [Question/Term]
BACK: [Answer/Definition]
Tip: [Memory hint]

---

Content:
%s

Create %d flashcards:`, count, reg.toolDirective, utils.Truncate(content, toolContentMax), count)
	return a.gen.Generate(ctx, prompt), nil
}

// ExtractKeywords produces the top count keywords and key concepts of content.
func (a *Assistant) ExtractKeywords(ctx context.Context, content string, count int) (string, error) {
	if count <= 0 {
		return "", fmt.Errorf("keyword count must be positive, got %d", count)
	}
	prompt := fmt.Sprintf(`Extract top %d keywords and key concepts from:

%s

Format as a list with brief explanations.`, count, utils.Truncate(content, analysisContentMax))
	return a.gen.Generate(ctx, prompt), nil
}

// AnalyzeContent runs the named analysis (sentiment, topics, readability)
// over content. Unknown analysis names are rejected.
func (a *Assistant) AnalyzeContent(ctx context.Context, content, analysis string) (string, error) {
	lead, err := styleFor(analysisStyles, "analysis", analysis)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf("%s\n\n%s", lead, utils.Truncate(content, analysisContentMax))
	return a.gen.Generate(ctx, prompt), nil
}

// CompareDocuments reports similarities, differences, and unique insights of
// two documents. Callers validate that two distinct documents exist.
func (a *Assistant) CompareDocuments(ctx context.Context, name1, content1, name2, content2 string) string {
	prompt := fmt.Sprintf(`Compare these documents:

Document 1: %s
%s

Document 2: %s
%s

Provide: similarities, differences, unique insights from each.`,
		name1, utils.Truncate(content1, compareContentMax),
		name2, utils.Truncate(content2, compareContentMax))
	return a.gen.Generate(ctx, prompt)
}
