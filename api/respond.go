package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// ErrResponseStarted is wrapped by Renderer errors that occur after the
// status line was written; nothing more can be sent to the client.
var ErrResponseStarted = errors.New("response already started")

// Renderer renders a named server page.
type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "err", err)
	}
}

// WriteError writes an ErrorResponse. When err is non-nil its message is
// included as details.
func WriteError(w http.ResponseWriter, log *slog.Logger, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	WriteJSON(w, log, status, resp)
}

// RenderPage renders page, falling back to a plain-text 500 if rendering
// fails before anything was written.
func RenderPage(w http.ResponseWriter, log *slog.Logger, renderer Renderer, status int, page string, data any) {
	err := renderer.Render(w, status, page, data)
	switch {
	case err == nil:
	case errors.Is(err, ErrResponseStarted):
		log.Warn("Failed to write page", "page", page, "err", err)
	default:
		log.Error("Failed to render page", "page", page, "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
