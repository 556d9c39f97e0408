package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lazypower/ctxport/internal/conversation"
	"github.com/lazypower/ctxport/internal/pipeline"
	"github.com/lazypower/ctxport/internal/transport"
	"github.com/lazypower/ctxport/internal/vault"
)

type compressResponse struct {
	Output           string   `json:"output"`
	Chunks           []string `json:"chunks"`
	Method           string   `json:"method"`
	ReductionPercent int      `json:"reductionPercent"`
	MessageCount     int      `json:"messageCount"`
	OriginalChars    int      `json:"originalChars"`
	CompressedChars  int      `json:"compressedChars"`
}

func (s *Server) runPipeline(w http.ResponseWriter, r *http.Request, raw, source, target string, ai bool) {
	opts := pipeline.Options{
		Source:     source,
		Target:     target,
		AIEnabled:  ai && s.aiEnabled,
		Summarizer: s.summarizer,
	}
	res, err := pipeline.Run(r.Context(), raw, opts)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, compressResponse{
		Output:           res.Formatted,
		Chunks:           res.Chunks,
		Method:           res.Method,
		ReductionPercent: res.ReductionPercent,
		MessageCount:     len(res.Messages),
		OriginalChars:    res.OriginalChars,
		CompressedChars:  res.CompressedChars,
	})
}

func (s *Server) handleCompress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text   string `json:"text"`
		Source string `json:"source"`
		Target string `json:"target"`
		AI     bool   `json:"ai"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	s.runPipeline(w, r, req.Text, req.Source, req.Target, req.AI)
}

// handleExport accepts a raw conversation export document (the JSON a chat
// platform's export feature produces) and compresses it. Pipeline options
// arrive as query parameters since the body is the export itself.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body failed")
		return
	}

	text, err := conversation.ExtractFromJSON(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	q := r.URL.Query()
	source := q.Get("source")
	if source == "" {
		source = "Exported conversation"
	}
	s.runPipeline(w, r, text, source, q.Get("target"), q.Get("ai") == "true")
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req struct {
		conversation.ScrapeResult
		Target string `json:"target"`
		AI     bool   `json:"ai"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Messages) == 0 {
		writeError(w, http.StatusBadRequest, "no messages scraped")
		return
	}

	source := req.Platform
	if req.Title != "" {
		source = req.Platform + ": " + req.Title
	}
	s.runPipeline(w, r, req.Flatten(), source, req.Target, req.AI)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.db.Projects()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if projects == nil {
		projects = []vault.Project{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(projects),
		"projects": projects,
	})
}

func (s *Server) handleSaveContext(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	c, err := s.db.SaveContext(name, req.Text)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleLatestContext(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	c, err := s.db.LatestContext(projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "no contexts saved for project")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// handleListContexts returns a project's contexts oldest first. With
// ?combined=true it instead returns one document joining every session.
func (s *Server) handleListContexts(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	contexts, err := s.db.Contexts(projectID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if r.URL.Query().Get("combined") == "true" {
		writeJSON(w, http.StatusOK, map[string]any{
			"count":    len(contexts),
			"combined": vault.CombineContexts(contexts),
		})
		return
	}

	if contexts == nil {
		contexts = []vault.Context{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(contexts),
		"contexts": contexts,
	})
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")

	if err := s.db.DeleteProject(projectID); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// handleTeleport parks the text as a pending handoff and tells the caller
// which URL to open. The browser launch belongs to the client; a daemon
// popping windows on its own host helps nobody.
func (s *Server) handleTeleport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Target string `json:"target"`
		Text   string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	url, ok := transport.TargetURL(req.Target)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown target")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text required")
		return
	}

	if err := s.db.SetPendingHandoff(req.Text, req.Target); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ready",
		"url":       url,
		"expiresIn": vault.HandoffTTL.Seconds(),
	})
}

// handleHandoff claims the pending teleport handoff, if one is still fresh.
func (s *Server) handleHandoff(w http.ResponseWriter, r *http.Request) {
	h, err := s.db.TakePendingHandoff()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if h == nil {
		writeError(w, http.StatusNotFound, "no pending handoff")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"text":   h.Text,
		"target": h.Target,
		"age":    time.Since(time.UnixMilli(h.CreatedAt)).Seconds(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
