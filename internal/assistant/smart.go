package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/papermind/docstudio/internal/models"
	"github.com/papermind/docstudio/pkg/utils"
	"go.uber.org/zap"
)

// SmartAnswer is the hybrid engine: it retrieves against the session's
// documents and always produces a substantive answer, blending document
// content with general knowledge when retrieval hits and answering purely
// from general knowledge when it does not. This entry point never fails:
// internal errors become a user-facing apology string.
func (a *Assistant) SmartAnswer(ctx context.Context, retriever Retriever, question, lang string) (sa *models.SmartAnswer) {
	reg := registerFor(lang)

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("smart answer panicked", zap.Any("panic", r))
			sa = &models.SmartAnswer{
				Answer: fmt.Sprintf(reg.apology, utils.Truncate(fmt.Sprint(r), 200)),
			}
		}
	}()

	results := retriever.Search(ctx, question, a.search.TopK)
	hasDocs := len(results) > 0

	var prompt string
	if hasDocs {
		top := results
		if a.search.ContextTop < len(top) {
			top = top[:a.search.ContextTop]
		}
		var docContext strings.Builder
		for i, r := range top {
			fmt.Fprintf(&docContext, "\n[Source %d: %s - Page %s]\n%s\n",
				i+1, orDefault(r.Meta.File, "Doc"), orDefault(r.Meta.Page, "?"), r.Text)
		}
		prompt = fmt.Sprintf(reg.hybridWithDocs, docContext.String(), question)
	} else {
		prompt = fmt.Sprintf(reg.hybridNoDocs, question)
	}

	answer := a.gen.Generate(ctx, prompt)

	var sources []models.Source
	if hasDocs {
		sources = collectSources(results, a.search.ContextTop)
	}
	return &models.SmartAnswer{
		Answer:   answer,
		Sources:  sources,
		HasDocs:  hasDocs,
		DocCount: len(results),
	}
}
