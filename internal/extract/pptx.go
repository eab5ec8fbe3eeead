package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// pptxSlidePattern matches slide XML files inside a .pptx zip and captures the slide number.
var pptxSlidePattern = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// atTag matches <a:t>text</a:t> or <a:t xml:space="preserve">text</a:t> (and any other attributes).
var atTag = regexp.MustCompile(`<a:t[^>]*>([^<]*)</a:t>`)

// apClose splits slide XML into text paragraphs.
var apClose = regexp.MustCompile(`</a:p>`)

// readPPTX extracts one logical page per slide. PPTX is a ZIP containing
// ppt/slides/slideN.xml (Office Open XML); the text-bearing paragraphs of a
// slide are joined with newlines.
func readPPTX(path string) (string, map[int]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", nil, fmt.Errorf("extract PPTX: not a zip: %w", err)
	}

	pages := make(map[int]string)
	for _, f := range zr.File {
		m := pptxSlidePattern.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		slideXML, err := readZipFile(zr, f.Name)
		if err != nil {
			return "", nil, fmt.Errorf("extract PPTX: %w", err)
		}
		var lines []string
		for _, block := range apClose.Split(string(slideXML), -1) {
			var b strings.Builder
			for _, t := range atTag.FindAllStringSubmatch(block, -1) {
				b.WriteString(t[1])
			}
			if text := strings.TrimSpace(b.String()); text != "" {
				lines = append(lines, text)
			}
		}
		pages[num] = strings.Join(lines, "\n")
	}
	return assemblePages(pages, "Slide", false), pages, nil
}
