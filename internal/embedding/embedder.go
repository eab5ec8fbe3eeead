// Package embedding provides text embedding via the remote Gemini endpoint,
// with caching and a degrade-not-fail fallback.
package embedding

import "context"

// Task selects the embedding task type expected by the remote endpoint.
type Task string

const (
	// TaskDocument embeds text for indexing.
	TaskDocument Task = "RETRIEVAL_DOCUMENT"
	// TaskQuery embeds text for querying.
	TaskQuery Task = "RETRIEVAL_QUERY"
)

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string, task Task) ([]float32, error)
	Dimensions() int
}
