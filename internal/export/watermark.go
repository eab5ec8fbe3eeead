// Package export formats generated artifacts for download, wrapping them in a
// deterministic header/footer watermark.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/papermind/docstudio/internal/config"
)

const rule = 60

// Watermark wraps exported content with a tool-identity header and footer.
// Output is a pure function of (content, clock): fixed clock, fixed bytes.
type Watermark struct {
	Tool    string
	Version string
	Creator string
	Clock   func() time.Time
}

// NewWatermark builds a watermark from export config.
func NewWatermark(cfg *config.ExportConfig) *Watermark {
	return &Watermark{
		Tool:    cfg.Tool,
		Version: cfg.Version,
		Creator: cfg.Creator,
		Clock:   time.Now,
	}
}

// Wrap returns content framed by the watermark header and footer.
func (w *Watermark) Wrap(content string) string {
	now := w.Clock()
	line := strings.Repeat("=", rule)
	header := fmt.Sprintf(`
%s
%s %s
Created by: %s
Generated: %s
%s

`, line, w.Tool, w.Version, w.Creator, now.Format("2006-01-02 15:04:05"), line)
	footer := fmt.Sprintf(`

%s
© %d %s - All Rights Reserved
%s
`, line, now.Year(), w.Creator, line)
	return header + content + footer
}
