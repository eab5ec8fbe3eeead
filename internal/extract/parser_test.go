package extract

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/papermind/docstudio/internal/config"
	"github.com/xuri/excelize/v2"
)

func testParser(t *testing.T) *Parser {
	t.Helper()
	cfg := &config.ChunkingConfig{Size: 50, Overlap: 10, MinChars: 5}
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return NewParser(cfg, WithClock(func() time.Time { return fixed }))
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestParse_Plain(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(path, []byte("alpha beta gamma delta epsilon"), 0600); err != nil {
		t.Fatal(err)
	}

	doc, err := testParser(t).Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Name != "notes.txt" {
		t.Errorf("Name=%s", doc.Name)
	}
	if doc.Type != "TXT" {
		t.Errorf("Type=%s", doc.Type)
	}
	if doc.PageCount != 1 {
		t.Errorf("PageCount=%d", doc.PageCount)
	}
	if doc.WordCount != 5 {
		t.Errorf("WordCount=%d", doc.WordCount)
	}
	if len(doc.ID) != 16 {
		t.Errorf("ID length=%d", len(doc.ID))
	}
	if len(doc.Chunks) != 1 {
		t.Errorf("chunks=%d", len(doc.Chunks))
	}
}

func TestParse_DeterministicID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "same.txt")
	if err := os.WriteFile(path, []byte("content"), 0600); err != nil {
		t.Fatal(err)
	}
	p := testParser(t)
	a, err := p.Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != b.ID {
		t.Errorf("same name and clock should yield same ID: %s vs %s", a.ID, b.ID)
	}
}

func TestParse_Unsupported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "image.png")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0600); err != nil {
		t.Fatal(err)
	}
	_, err := testParser(t).Parse(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParse_MissingFile(t *testing.T) {
	_, err := testParser(t).Parse(filepath.Join(t.TempDir(), "absent.txt"))
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *ReadError, got %v", err)
	}
	if readErr.Unwrap() == nil {
		t.Error("ReadError should wrap the cause")
	}
}

func TestParse_DOCX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.docx")
	docXML := `<?xml version="1.0"?><w:document>` +
		`<w:p><w:r><w:t>First paragraph</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t xml:space="preserve">Second </w:t></w:r><w:r><w:t>paragraph</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>   </w:t></w:r></w:p>` +
		`</w:document>`
	writeZip(t, path, map[string]string{"word/document.xml": docXML})

	doc, err := testParser(t).Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.PageCount != 1 {
		t.Errorf("PageCount=%d", doc.PageCount)
	}
	want := "First paragraph\n\nSecond paragraph"
	if doc.Content != want {
		t.Errorf("Content=%q, want %q", doc.Content, want)
	}
}

func TestParse_DOCXNotZip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.docx")
	if err := os.WriteFile(path, []byte("not a zip"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := testParser(t).Parse(path)
	var readErr *ReadError
	if !errors.As(err, &readErr) {
		t.Errorf("expected *ReadError, got %v", err)
	}
}

func TestParse_PPTX(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.pptx")
	slide := func(text string) string {
		return `<?xml version="1.0"?><p:sld><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></p:sld>`
	}
	writeZip(t, path, map[string]string{
		"ppt/slides/slide2.xml": slide("Second slide"),
		"ppt/slides/slide1.xml": slide("First slide"),
		"ppt/notes/notes1.xml":  slide("ignored"),
	})

	doc, err := testParser(t).Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.PageCount != 2 {
		t.Fatalf("PageCount=%d", doc.PageCount)
	}
	if doc.Pages[1] != "First slide" || doc.Pages[2] != "Second slide" {
		t.Errorf("pages=%v", doc.Pages)
	}
	if !strings.HasPrefix(doc.Content, "[Slide 1]\nFirst slide") {
		t.Errorf("Content=%q", doc.Content)
	}
	if !strings.Contains(doc.Content, "[Slide 2]\nSecond slide") {
		t.Errorf("Content=%q", doc.Content)
	}
}

func TestParse_Excel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.xlsx")
	f := excelize.NewFile()
	if err := f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Name", "Score"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow("Sheet1", "A2", &[]interface{}{"Ada", 95}); err != nil {
		t.Fatal(err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	doc, err := testParser(t).Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.PageCount != 1 {
		t.Errorf("PageCount=%d", doc.PageCount)
	}
	if !strings.Contains(doc.Content, "[Sheet: Sheet1]") {
		t.Errorf("Content missing sheet header: %q", doc.Content)
	}
	if !strings.Contains(doc.Content, "Name | Score") {
		t.Errorf("Content missing row: %q", doc.Content)
	}
	if !strings.Contains(doc.Content, "Ada | 95") {
		t.Errorf("Content missing row: %q", doc.Content)
	}
}

func TestParse_PlainInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "latin1.txt")
	if err := os.WriteFile(path, []byte{'c', 'a', 'f', 0xE9}, 0600); err != nil {
		t.Fatal(err)
	}
	doc, err := testParser(t).Parse(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(doc.Content, "caf") {
		t.Errorf("Content=%q", doc.Content)
	}
	if strings.Contains(doc.Content, "\xE9") {
		t.Error("invalid byte should have been replaced")
	}
}

func TestSupported(t *testing.T) {
	for _, ext := range []string{".pdf", ".docx", ".xlsx", ".pptx", ".txt", ".PDF"} {
		if !Supported(ext) {
			t.Errorf("Supported(%s) = false", ext)
		}
	}
	if Supported(".png") {
		t.Error("Supported(.png) = true")
	}
}

func TestAssemblePages(t *testing.T) {
	pages := map[int]string{
		2: "",
		1: "intro text",
		3: "closing text",
	}
	got := assemblePages(pages, "Page", true)
	want := "[Page 1]\nintro text\n\n[Page 3]\nclosing text"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	// Without skipEmpty the blank page keeps its locator.
	got = assemblePages(pages, "Slide", false)
	if !strings.Contains(got, "[Slide 2]\n") {
		t.Errorf("empty page missing: %q", got)
	}
}
