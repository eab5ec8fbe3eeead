// Package extract converts office documents into page-indexed plain text and chunks.
package extract

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/papermind/docstudio/internal/config"
	"github.com/papermind/docstudio/internal/models"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ReadError wraps a reader-level failure with the path that caused it.
// Ingestion of one document never aborts others; callers surface the cause.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Parser converts raw files into Documents. Dispatch is by file extension.
type Parser struct {
	chunker *Chunker
	clock   func() time.Time
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithClock sets the time source used for upload timestamps and document IDs.
func WithClock(clock func() time.Time) ParserOption {
	return func(p *Parser) { p.clock = clock }
}

// NewParser creates a parser with the given chunking settings.
func NewParser(cfg *config.ChunkingConfig, opts ...ParserOption) *Parser {
	p := &Parser{
		chunker: NewChunker(cfg.Size, cfg.Overlap, cfg.MinChars),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads the file at path and returns a Document with page-indexed text,
// locator-prefixed full text, and chunks. Unsupported extensions fail with
// ErrUnsupportedFormat; any reader failure is wrapped as a *ReadError.
func (p *Parser) Parse(path string) (*models.Document, error) {
	name := filepath.Base(path)
	ext := strings.ToLower(filepath.Ext(path))

	var (
		content string
		pages   map[int]string
		err     error
	)
	switch ext {
	case ".pdf":
		content, pages, err = readPDF(path)
	case ".docx":
		content, pages, err = readDOCX(path)
	case ".xlsx":
		content, pages, err = readExcel(path)
	case ".pptx":
		content, pages, err = readPPTX(path)
	case ".txt":
		content, pages, err = readPlain(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	now := p.clock()
	docID := models.NewDocumentID(name, now)
	return &models.Document{
		ID:         docID,
		Name:       name,
		Type:       strings.ToUpper(strings.TrimPrefix(ext, ".")),
		Content:    content,
		Pages:      pages,
		Chunks:     p.chunker.Chunk(pages, name, docID),
		PageCount:  len(pages),
		ByteSize:   info.Size(),
		UploadedAt: now,
		WordCount:  len(strings.Fields(content)),
	}, nil
}

// Supported reports whether the extension (with leading dot) has a reader.
func Supported(ext string) bool {
	switch strings.ToLower(ext) {
	case ".pdf", ".docx", ".xlsx", ".pptx", ".txt":
		return true
	}
	return false
}
