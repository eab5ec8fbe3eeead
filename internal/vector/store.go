// Package vector provides the in-memory chunk index and cosine similarity search.
package vector

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"github.com/papermind/docstudio/internal/embedding"
	"github.com/papermind/docstudio/internal/models"
	"go.uber.org/zap"
)

// entry is one indexed chunk row. Written once, never mutated, removed only by
// document-id cascade delete.
type entry struct {
	chunkID string
	vector  []float32
	text    string
	meta    models.ChunkMeta
}

// Store is an in-memory nearest-neighbor index over document chunks.
// All state lives for the process lifetime; there is no persistence.
type Store struct {
	embedder embedding.Embedder
	mu       sync.RWMutex
	entries  []entry
	logger   *zap.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// NewStore creates a store that embeds chunks and queries with embedder.
func NewStore(embedder embedding.Embedder, opts ...StoreOption) *Store {
	s := &Store{
		embedder: embedder,
		entries:  make([]entry, 0),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddDocument embeds each chunk and inserts it. Chunks whose embedding step
// fails are skipped individually: partial success, not atomic. Returns the
// number of chunks indexed. No-op on an empty chunk list.
func (s *Store) AddDocument(ctx context.Context, docID string, chunks []*models.Chunk) int {
	if len(chunks) == 0 {
		return 0
	}
	added := make([]entry, 0, len(chunks))
	for _, ch := range chunks {
		vec, err := s.embedder.Embed(ctx, ch.Text, embedding.TaskDocument)
		if err != nil {
			s.logger.Warn("chunk embedding failed, skipping",
				zap.String("chunk_id", ch.ID), zap.Error(err))
			continue
		}
		added = append(added, entry{
			chunkID: ch.ID,
			vector:  vec,
			text:    ch.Text,
			meta: models.ChunkMeta{
				DocID: docID,
				Page:  strconv.Itoa(ch.Page),
				File:  ch.File,
			},
		})
	}
	s.mu.Lock()
	s.entries = append(s.entries, added...)
	s.mu.Unlock()
	return len(added)
}

// Search embeds the query and returns up to min(k, Count()) nearest entries by
// cosine distance, sorted ascending (closest first). Search is advisory, never
// fatal: an empty index or any failure yields an empty result.
func (s *Store) Search(ctx context.Context, query string, k int) []models.SearchResult {
	if k <= 0 || s.Count() == 0 {
		return nil
	}
	queryVec, err := s.embedder.Embed(ctx, query, embedding.TaskQuery)
	if err != nil {
		s.logger.Warn("query embedding failed", zap.Error(err))
		return nil
	}

	s.mu.RLock()
	results := make([]models.SearchResult, 0, len(s.entries))
	for _, e := range s.entries {
		results = append(results, models.SearchResult{
			Text:     e.text,
			Meta:     e.meta,
			Distance: CosineDistance(queryVec, e.vector),
		})
	}
	s.mu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool { return results[i].Distance < results[j].Distance })
	if k < len(results) {
		results = results[:k]
	}
	return results
}

// DeleteDocument removes all entries whose metadata doc_id matches.
// A no-match is a silent no-op.
func (s *Store) DeleteDocument(docID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0]
	for _, e := range s.entries {
		if e.meta.DocID != docID {
			kept = append(kept, e)
		}
	}
	s.entries = kept
}

// Count returns the total number of indexed entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
