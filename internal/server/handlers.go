package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/papermind/docstudio/internal/extract"
	"github.com/papermind/docstudio/internal/models"
	"go.uber.org/zap"
)

// maxUploadBytes caps a single uploaded file.
const maxUploadBytes = 50 << 20

// noResultsAnswer is returned by strict mode when retrieval finds nothing.
const noResultsAnswer = "No relevant information found in documents."

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "read upload failed")
		return
	}

	doc, err := s.session.AddUpload(r.Context(), header.Filename, content)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupportedFormat) {
			s.respondError(w, http.StatusUnsupportedMediaType, err.Error())
			return
		}
		s.logger.Error("upload failed", zap.String("file", header.Filename), zap.Error(err))
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.logger.Info("document uploaded",
		zap.String("doc_id", doc.ID),
		zap.String("name", doc.Name),
		zap.Int("pages", doc.PageCount),
		zap.Int("chunks", len(doc.Chunks)),
	)
	s.respondJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"documents": s.session.Documents(),
	})
}

func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.session.DeleteDocument(id); err != nil {
		s.respondError(w, http.StatusNotFound, "document not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleClearDocuments(w http.ResponseWriter, r *http.Request) {
	s.session.ClearDocuments()
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

type questionRequest struct {
	Question string `json:"question"`
	Language string `json:"language"`
}

// handleAsk is strict mode: answer only from retrieved context, with citations.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.session.AppendTurn(models.ConversationTurn{Role: models.RoleUser, Content: req.Question})

	results := s.session.Search(r.Context(), req.Question, s.config.Search.TopK)
	var answer *models.Answer
	if len(results) == 0 {
		answer = &models.Answer{Answer: noResultsAnswer, Sources: []models.Source{}}
	} else {
		answer = s.assistant.AnswerQuestion(r.Context(), req.Question, results, req.Language)
	}
	s.session.AppendTurn(models.ConversationTurn{
		Role:    models.RoleAssistant,
		Content: answer.Answer,
		Sources: answer.Sources,
	})
	s.respondJSON(w, http.StatusOK, answer)
}

// handleChat is hybrid mode: always answers, blending documents with general
// knowledge. This handler cannot fail once the body parses.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.session.AppendStudentTurn(models.ConversationTurn{Role: models.RoleUser, Content: req.Question})

	answer := s.assistant.SmartAnswer(r.Context(), s.session, req.Question, req.Language)
	s.session.AppendStudentTurn(models.ConversationTurn{
		Role:     models.RoleAssistant,
		Content:  answer.Answer,
		Sources:  answer.Sources,
		HasDocs:  answer.HasDocs,
		DocCount: answer.DocCount,
	})
	s.respondJSON(w, http.StatusOK, answer)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("mode") == "chat" {
		s.respondJSON(w, http.StatusOK, map[string]interface{}{"history": s.session.StudentHistory()})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"history": s.session.History()})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("mode") == "chat" {
		s.session.ClearStudentChat()
	} else {
		s.session.ClearChat()
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

type toolRequest struct {
	DocumentID string `json:"document_id"`
	Style      string `json:"style"`
	Analysis   string `json:"analysis"`
	Count      int    `json:"count"`
	Language   string `json:"language"`
}

// lookupDocument resolves the tool request's document or writes an error response.
func (s *Server) lookupDocument(w http.ResponseWriter, id string) (*models.Document, bool) {
	doc, ok := s.session.Document(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "document not found")
		return nil, false
	}
	return doc, true
}

func (s *Server) decodeTool(w http.ResponseWriter, r *http.Request) (*toolRequest, bool) {
	var req toolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}
	return &req, true
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTool(w, r)
	if !ok {
		return
	}
	doc, ok := s.lookupDocument(w, req.DocumentID)
	if !ok {
		return
	}
	result, err := s.assistant.Summarize(r.Context(), doc.Content, req.Style, req.Language)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTool(w, r)
	if !ok {
		return
	}
	doc, ok := s.lookupDocument(w, req.DocumentID)
	if !ok {
		return
	}
	result, err := s.assistant.CreateNotes(r.Context(), doc.Content, req.Style, req.Language)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) handleMCQs(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTool(w, r)
	if !ok {
		return
	}
	doc, ok := s.lookupDocument(w, req.DocumentID)
	if !ok {
		return
	}
	result, err := s.assistant.CreateMCQs(r.Context(), doc.Content, req.Count, req.Language)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) handleFlashcards(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTool(w, r)
	if !ok {
		return
	}
	doc, ok := s.lookupDocument(w, req.DocumentID)
	if !ok {
		return
	}
	result, err := s.assistant.CreateFlashcards(r.Context(), doc.Content, req.Count, req.Language)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) handleKeywords(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTool(w, r)
	if !ok {
		return
	}
	doc, ok := s.lookupDocument(w, req.DocumentID)
	if !ok {
		return
	}
	result, err := s.assistant.ExtractKeywords(r.Context(), doc.Content, req.Count)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeTool(w, r)
	if !ok {
		return
	}
	doc, ok := s.lookupDocument(w, req.DocumentID)
	if !ok {
		return
	}
	result, err := s.assistant.AnalyzeContent(r.Context(), doc.Content, req.Analysis)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"result": result})
}

type compareRequest struct {
	FirstID  string `json:"first_id"`
	SecondID string `json:"second_id"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.FirstID == req.SecondID {
		s.respondError(w, http.StatusBadRequest, "comparison requires two distinct documents")
		return
	}
	first, ok := s.lookupDocument(w, req.FirstID)
	if !ok {
		return
	}
	second, ok := s.lookupDocument(w, req.SecondID)
	if !ok {
		return
	}
	result := s.assistant.CompareDocuments(r.Context(), first.Name, first.Content, second.Name, second.Content)
	s.respondJSON(w, http.StatusOK, map[string]string{"result": result})
}

type exportRequest struct {
	Content string `json:"content"`
}

// handleExport wraps content in the watermark and returns it as plain text.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(s.watermark.Wrap(req.Content)))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.session.Stats()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"session_id":     s.session.ID,
		"model":          s.model,
		"documents":      stats.Documents,
		"pages":          stats.Pages,
		"chunks":         stats.Chunks,
		"words":          stats.Words,
		"indexed_chunks": s.session.Count(),
		"config": map[string]interface{}{
			"embedding_dimensions": s.config.Gemini.EmbeddingDimensions,
			"chunk_size":           s.config.Chunking.Size,
			"chunk_overlap":        s.config.Chunking.Overlap,
			"top_k":                s.config.Search.TopK,
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
