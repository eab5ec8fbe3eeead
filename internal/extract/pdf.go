package extract

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// readPDF extracts one page of text per PDF page. Extraction failures for a
// single page yield empty text for that page rather than aborting the document.
func readPDF(path string) (string, map[int]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", nil, fmt.Errorf("open PDF: %w", err)
	}
	pages := make(map[int]string)
	numPages := r.NumPage()
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages[i] = ""
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages[i] = ""
			continue
		}
		pages[i] = strings.TrimSpace(text)
	}
	return assemblePages(pages, "Page", true), pages, nil
}

// assemblePages joins pages into the document's full text, each prefixed with a
// human-readable locator like "[Page 3]". When skipEmpty is true, pages with no
// text are left out of the full text (they still count toward PageCount).
func assemblePages(pages map[int]string, locator string, skipEmpty bool) string {
	nums := make([]int, 0, len(pages))
	for n := range pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		if skipEmpty && pages[n] == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[%s %d]\n%s", locator, n, pages[n]))
	}
	return strings.Join(parts, "\n\n")
}
