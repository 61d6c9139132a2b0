package web

// errors.go turns service errors into responses. The technical error is
// logged with the request id; the client gets the mapped user message and
// its code, as JSON for API calls and as an alert fragment otherwise.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JonMunkholm/celleditors/internal/core"
	"github.com/JonMunkholm/celleditors/internal/dataset"
	"github.com/JonMunkholm/celleditors/internal/editor"
	"github.com/JonMunkholm/celleditors/internal/grid"
	"github.com/JonMunkholm/celleditors/internal/web/templates"
	"github.com/go-chi/chi/v5/middleware"
)

var (
	errRateLimited    = errors.New("rate limit exceeded")
	errInvalidRequest = errors.New("invalid request body")
)

// ErrorResponse is the JSON body of every API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// statusFor picks the HTTP status for a service error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrUnknownGrid),
		errors.Is(err, core.ErrSessionNotFound),
		errors.Is(err, dataset.ErrRowOutOfRange),
		errors.Is(err, dataset.ErrUnknownColumn),
		errors.Is(err, grid.ErrUnknownColumn):
		return http.StatusNotFound
	case errors.Is(err, core.ErrCellBusy),
		errors.Is(err, editor.ErrNotEditing),
		errors.Is(err, editor.ErrCancelledBeforeStart):
		return http.StatusConflict
	case errors.Is(err, editor.ErrMalformedCommit),
		errors.Is(err, grid.ErrNotEditable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errInvalidRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError logs err and writes the user-facing message.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	userMsg := core.MapError(err)

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
		"request_id", middleware.GetReqID(r.Context()),
	)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code).Render(r.Context(), w)
}

func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// wantsJSON reports whether the client expects a JSON error.
func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json") ||
		strings.Contains(r.Header.Get("Content-Type"), "application/json")
}
