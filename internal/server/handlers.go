package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hyperjump/symptomatch/internal/language"
	"github.com/hyperjump/symptomatch/internal/models"
	"github.com/hyperjump/symptomatch/internal/ranking"
	"github.com/hyperjump/symptomatch/internal/report"
	"github.com/hyperjump/symptomatch/internal/reports"
	"github.com/hyperjump/symptomatch/internal/storage"
)

const missingFileMessage = "Please upload a PDF or image file."

type explainResponse struct {
	*models.MatchResponse
	Candidates []ranking.Candidate `json:"candidates"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req models.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("match request", zap.String("query", req.Query))
	resp := s.engine.MatchQuery(req.Query)
	if explain, _ := strconv.ParseBool(r.URL.Query().Get("explain")); explain {
		s.respondJSON(w, http.StatusOK, explainResponse{MatchResponse: resp, Candidates: s.engine.Explain(req.Query)})
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := s.engine.Answer(r.Context(), &req)
	if s.storage != nil {
		ex := &models.Exchange{
			ConversationID: req.ConversationID,
			Message:        req.Message,
			Response:       resp.Response,
			Language:       resp.Language,
		}
		if err := s.storage.SaveExchange(r.Context(), ex); err != nil {
			s.logger.Error("save exchange failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.ConversationID = ex.ConversationID
		resp.ExchangeID = ex.ID
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.config.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = 20 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.respondError(w, http.StatusBadRequest, missingFileMessage)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, missingFileMessage)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	s.logger.Debug("report upload", zap.String("file", header.Filename), zap.Int("bytes", len(content)))
	resp, err := s.reports.Process(r.Context(), reports.Upload{
		Name:              header.Filename,
		Content:           content,
		PreferredLanguage: r.FormValue("preferred_language"),
		ConversationID:    r.FormValue("conversation_id"),
	})
	if errors.Is(err, reports.ErrUnsupportedFile) {
		s.respondError(w, http.StatusBadRequest, reports.UnsupportedFileMessage)
		return
	}
	if err != nil {
		s.logger.Error("report processing failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req models.TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	code := s.engine.Language().Detect(r.Context(), req.Text)
	s.respondJSON(w, http.StatusOK, map[string]string{"language": code.String()})
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req models.TranslationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	target := language.ParseCode(req.Target)
	if target == language.Unrecognized {
		s.respondError(w, http.StatusBadRequest, "unsupported target language")
		return
	}
	source := language.ParseCode(req.Source)

	lang := s.engine.Language()
	if source == language.Unrecognized {
		source = lang.Detect(r.Context(), req.Text)
	}
	out := lang.Translate(r.Context(), req.Text, source, target)
	s.respondJSON(w, http.StatusOK, map[string]string{
		"text":   out,
		"source": source.String(),
		"target": target.String(),
	})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req models.TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	found := report.ExtractFields(req.Text)
	fields := make(map[string]string, len(report.AllFields))
	for _, f := range report.AllFields {
		fields[f.String()] = found.Get(f)
	}
	s.respondJSON(w, http.StatusOK, models.ExtractResponse{
		Fields:        fields,
		UploadSection: report.UploadSection(req.Text),
		Summary:       report.StripSummaryPrefix(report.BriefSummary(req.Text)),
	})
}

func (s *Server) handleListConversations(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50
	}
	convs, err := s.storage.ListConversations(r.Context(), max(offset, 0), limit)
	if err != nil {
		s.logger.Error("list conversations failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if convs == nil {
		convs = []*models.Conversation{}
	}
	s.respondJSON(w, http.StatusOK, convs)
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	exchanges, err := s.storage.ListExchanges(r.Context(), id, 0)
	if err != nil {
		s.logger.Error("list exchanges failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(exchanges) == 0 {
		s.respondError(w, http.StatusNotFound, "conversation not found")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":        id,
		"exchanges": exchanges,
	})
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.logger.Debug("delete conversation request", zap.String("id", id))
	err := s.storage.DeleteConversation(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "conversation not found")
		return
	}
	if err != nil {
		s.logger.Error("delete conversation failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleEditExchange answers the edited message again and drops the rest of
// the conversation, which was a reply to the old message.
func (s *Server) handleEditExchange(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req models.ExchangeEdit
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.respondError(w, http.StatusBadRequest, "message cannot be empty")
		return
	}

	existing, err := s.storage.GetExchange(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		s.respondError(w, http.StatusNotFound, "exchange not found")
		return
	}
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	answer := s.engine.Answer(r.Context(), &models.ChatRequest{
		Message:           req.Message,
		PreferredLanguage: req.PreferredLanguage,
		ConversationID:    existing.ConversationID,
	})
	existing.Message = req.Message
	existing.Response = answer.Response
	existing.Language = answer.Language

	deleted, err := s.storage.EditExchange(r.Context(), existing)
	if err != nil {
		s.logger.Error("edit exchange failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, models.EditResponse{
		Exchange:        existing,
		Matched:         answer.Matched,
		Keyword:         answer.Keyword,
		DeletedMessages: deleted,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"faqs":   s.engine.Entries(),
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
