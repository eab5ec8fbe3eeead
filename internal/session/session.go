// Package session holds per-session state: the document set, the vector store,
// and chat history. Each session owns its state exclusively; nothing is shared
// across sessions.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/papermind/docstudio/internal/extract"
	"github.com/papermind/docstudio/internal/models"
	"github.com/papermind/docstudio/internal/vector"
	"go.uber.org/zap"
)

// Session is the explicit state object passed into every core call.
// Created at session start, torn down at session end.
type Session struct {
	ID string

	parser *extract.Parser
	store  *vector.Store
	logger *zap.Logger

	mu          sync.Mutex
	docs        map[string]*models.Document
	order       []string // document IDs in upload order
	chat        []models.ConversationTurn
	studentChat []models.ConversationTurn
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets a logger for session events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates an empty session over the given parser and vector store.
func New(parser *extract.Parser, store *vector.Store, opts ...Option) *Session {
	s := &Session{
		ID:     uuid.New().String(),
		parser: parser,
		store:  store,
		logger: zap.NewNop(),
		docs:   make(map[string]*models.Document),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddFile parses the file at path and indexes its chunks. The document is
// registered even when some chunks fail to embed (partial indexing).
func (s *Session) AddFile(ctx context.Context, path string) (*models.Document, error) {
	doc, err := s.parser.Parse(path)
	if err != nil {
		return nil, err
	}
	indexed := s.store.AddDocument(ctx, doc.ID, doc.Chunks)
	s.logger.Debug("document ingested",
		zap.String("doc_id", doc.ID),
		zap.String("name", doc.Name),
		zap.Int("chunks", len(doc.Chunks)),
		zap.Int("indexed", indexed),
	)

	s.mu.Lock()
	s.docs[doc.ID] = doc
	s.order = append(s.order, doc.ID)
	s.mu.Unlock()
	return doc, nil
}

// AddUpload materializes (filename, content) to a temporary file and ingests
// it. This is the upload-intake boundary: callers hand over bytes, never paths.
func (s *Session) AddUpload(ctx context.Context, filename string, content []byte) (*models.Document, error) {
	dir, err := os.MkdirTemp("", "docstudio-upload-")
	if err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(filename))
	if err := os.WriteFile(path, content, 0600); err != nil {
		return nil, fmt.Errorf("write upload: %w", err)
	}
	return s.AddFile(ctx, path)
}

// Documents returns the session's documents in upload order.
func (s *Session) Documents() []*models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := make([]*models.Document, 0, len(s.order))
	for _, id := range s.order {
		docs = append(docs, s.docs[id])
	}
	return docs
}

// Document returns the document with the given ID.
func (s *Session) Document(id string) (*models.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	return doc, ok
}

// DocumentByName returns the first document with the given name.
func (s *Session) DocumentByName(name string) (*models.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		if s.docs[id].Name == name {
			return s.docs[id], true
		}
	}
	return nil, false
}

// DeleteDocument removes the document and cascades to its index entries.
func (s *Session) DeleteDocument(id string) error {
	s.mu.Lock()
	if _, ok := s.docs[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("document %s not found", id)
	}
	delete(s.docs, id)
	for i, docID := range s.order {
		if docID == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.store.DeleteDocument(id)
	s.logger.Debug("document deleted", zap.String("doc_id", id))
	return nil
}

// ClearDocuments removes every document and its index entries, and clears chat
// history (document-set clear resets the conversation wholesale).
func (s *Session) ClearDocuments() {
	s.mu.Lock()
	ids := append([]string(nil), s.order...)
	s.docs = make(map[string]*models.Document)
	s.order = nil
	s.chat = nil
	s.studentChat = nil
	s.mu.Unlock()

	for _, id := range ids {
		s.store.DeleteDocument(id)
	}
}

// Search retrieves the k nearest chunks for query across the session's documents.
func (s *Session) Search(ctx context.Context, query string, k int) []models.SearchResult {
	return s.store.Search(ctx, query, k)
}

// Count returns the number of indexed chunks.
func (s *Session) Count() int {
	return s.store.Count()
}

// AppendTurn appends to the strict-mode chat history.
func (s *Session) AppendTurn(turn models.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = append(s.chat, turn)
}

// History returns a copy of the strict-mode chat history, in append order.
func (s *Session) History() []models.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ConversationTurn(nil), s.chat...)
}

// ClearChat resets the strict-mode chat history.
func (s *Session) ClearChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = nil
}

// AppendStudentTurn appends to the hybrid-mode chat history.
func (s *Session) AppendStudentTurn(turn models.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.studentChat = append(s.studentChat, turn)
}

// StudentHistory returns a copy of the hybrid-mode chat history.
func (s *Session) StudentHistory() []models.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ConversationTurn(nil), s.studentChat...)
}

// ClearStudentChat resets the hybrid-mode chat history.
func (s *Session) ClearStudentChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.studentChat = nil
}

// Stats aggregates session-wide document counts.
type Stats struct {
	Documents int `json:"documents"`
	Pages     int `json:"pages"`
	Chunks    int `json:"chunks"`
	Words     int `json:"words"`
}

// Stats returns aggregate counts across the session's documents.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Documents: len(s.order)}
	for _, id := range s.order {
		doc := s.docs[id]
		st.Pages += doc.PageCount
		st.Chunks += len(doc.Chunks)
		st.Words += doc.WordCount
	}
	return st
}
