package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/JonMunkholm/celleditors/internal/core"
	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds API request bodies; the largest is one keystroke.
const maxBodyBytes = 4 << 10

func (s *Server) gridParam(w http.ResponseWriter, r *http.Request) (core.GridKey, bool) {
	key, err := core.ParseGridKey(chi.URLParam(r, "grid"))
	if err != nil {
		s.respondError(w, r, err)
		return "", false
	}
	return key, true
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, r, fmt.Errorf("%w: %v", errInvalidRequest, err))
		return false
	}
	return true
}

// parseIntParam parses a positive integer query parameter with a default.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}

// handleOptions returns the grid's gridOptions.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	key, ok := s.gridParam(w, r)
	if !ok {
		return
	}
	opts, err := s.service.Options(key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// handleData returns the grid's current rows ("Data Out").
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	key, ok := s.gridParam(w, r)
	if !ok {
		return
	}
	data, err := s.service.Data(key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	changed, err := s.service.Changed(key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"grid":    key,
		"columns": data.ColumnNames(),
		"rows":    rowObjects(data),
		"changed": changed,
	})
}

// handleExport streams the grid's rows as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	key, ok := s.gridParam(w, r)
	if !ok {
		return
	}
	data, err := s.service.Data(key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", key, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	if err := data.WriteCSV(w); err != nil {
		slog.Error("csv export failed", "grid", key, "error", err)
	}
}

// handleHistory lists committed edits, newest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	key, ok := s.gridParam(w, r)
	if !ok {
		return
	}
	history, err := s.service.History(key, parseIntParam(r, "limit", 50))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// handleStartEdit opens an editor on a cell. A keystroke the editor refuses
// yields 200 with cancelled=true and no session id.
func (s *Server) handleStartEdit(w http.ResponseWriter, r *http.Request) {
	key, ok := s.gridParam(w, r)
	if !ok {
		return
	}
	var req core.StartEditRequest
	if !s.decode(w, r, &req) {
		return
	}
	req.Grid = key

	view, err := s.service.StartEdit(withRequestMetadata(r), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	status := http.StatusCreated
	if view.Cancelled {
		status = http.StatusOK
	}
	writeJSON(w, status, view)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Session(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAttach(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Attach(withRequestMetadata(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// handleKey routes one keystroke: {"key": "5"}.
func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if !s.decode(w, r, &req) {
		return
	}
	res, err := s.service.Key(withRequestMetadata(r), chi.URLParam(r, "id"), req.Key)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Commit(withRequestMetadata(r), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Cancel(withRequestMetadata(r), chi.URLParam(r, "id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleReset restores both grids and clears stored edits.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Reset(withRequestMetadata(r)); err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
