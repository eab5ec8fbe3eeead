package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// docxDocumentXMLPath is the path to the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// wtTag matches <w:t>text</w:t> or <w:t xml:space="preserve">text</w:t> (and any other attributes).
var wtTag = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// wpClose splits the document body into paragraphs.
var wpClose = regexp.MustCompile(`</w:p>`)

// readDOCX extracts text from a .docx file. DOCX has no native page concept: the
// document is a single logical page of all non-empty paragraphs joined with
// blank-line separators. DOCX is a ZIP containing word/document.xml (OOXML); we
// collect <w:t> text runs per paragraph so content survives run attributes.
func readDOCX(path string) (string, map[int]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", nil, fmt.Errorf("extract DOCX: not a zip: %w", err)
	}

	docXML, err := readZipFile(zr, docxDocumentXMLPath)
	if err != nil {
		return "", nil, fmt.Errorf("extract DOCX: %w", err)
	}

	var paragraphs []string
	for _, block := range wpClose.Split(string(docXML), -1) {
		var b strings.Builder
		for _, m := range wtTag.FindAllStringSubmatch(block, -1) {
			b.WriteString(m[1])
		}
		if text := strings.TrimSpace(b.String()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	text := strings.Join(paragraphs, "\n\n")
	return text, map[int]string{1: text}, nil
}

// readZipFile returns the contents of the named file inside the archive.
func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%s not found", name)
}
