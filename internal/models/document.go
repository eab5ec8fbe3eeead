// Package models defines core data structures for documents, chunks, and answers.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"time"
)

// Document is a parsed office document. Immutable after creation except for deletion.
type Document struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"` // upper-cased extension, e.g. "PDF"
	Content    string         `json:"-"`    // full text with page locators
	Pages      map[int]string `json:"-"`    // page number -> extracted text
	Chunks     []*Chunk       `json:"-"`
	PageCount  int            `json:"pages"`
	ByteSize   int64          `json:"size"`
	UploadedAt time.Time      `json:"uploaded_at"`
	WordCount  int            `json:"word_count"`
}

// PageNumbers returns the document's page numbers in ascending order.
func (d *Document) PageNumbers() []int {
	nums := make([]int, 0, len(d.Pages))
	for n := range d.Pages {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// Chunk is a bounded word-window of a document's text, the unit of embedding
// and retrieval. A chunk never outlives its owning document.
type Chunk struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Page int    `json:"page"`
	File string `json:"file"`
}

// NewDocumentID derives a document ID from the file name and upload time.
// Identity is name+timestamp, not content: two uploads of identical content
// produce distinct IDs.
func NewDocumentID(name string, uploadedAt time.Time) string {
	hash := sha256.Sum256([]byte(name + uploadedAt.Format(time.RFC3339Nano)))
	return hex.EncodeToString(hash[:])[:16]
}
