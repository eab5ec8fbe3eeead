package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/papermind/docstudio/internal/models"
)

// Chunker splits page text into overlapping word-based chunks.
type Chunker struct {
	size     int
	overlap  int
	minChars int
}

// NewChunker creates a chunker with the given window size and overlap (in words).
// Chunks whose text length is at or below minChars are dropped: too short to be
// useful for retrieval.
func NewChunker(size, overlap, minChars int) *Chunker {
	return &Chunker{size: size, overlap: overlap, minChars: minChars}
}

// Chunk splits each page into overlapping word windows. The window start
// advances by size-overlap words per step until it passes the last word, so a
// page shorter than size plus one step still yields trailing subset windows
// at each stride offset. Chunk IDs are deterministic:
// {docID}_p{page}_c{wordOffset}, collision-free within a document.
// Whitespace-only pages produce zero chunks.
func (c *Chunker) Chunk(pages map[int]string, filename, docID string) []*models.Chunk {
	pageNums := make([]int, 0, len(pages))
	for n := range pages {
		pageNums = append(pageNums, n)
	}
	sort.Ints(pageNums)

	step := c.size - c.overlap
	if step <= 0 {
		step = 1
	}
	var chunks []*models.Chunk
	for _, page := range pageNums {
		words := strings.Fields(pages[page])
		if len(words) == 0 {
			continue
		}
		for i := 0; i < len(words); i += step {
			end := i + c.size
			if end > len(words) {
				end = len(words)
			}
			text := strings.Join(words[i:end], " ")
			if len(text) > c.minChars {
				chunks = append(chunks, &models.Chunk{
					ID:   fmt.Sprintf("%s_p%d_c%d", docID, page, i),
					Text: text,
					Page: page,
					File: filename,
				})
			}
		}
	}
	return chunks
}
