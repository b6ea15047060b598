// Package healthhandler answers orchestration probes. Probes report process
// health only and never touch the record store or the secret registry.
package healthhandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/halow-dashboard/api"
	"github.com/ruteri/halow-dashboard/interfaces"
)

const (
	ProbeStartup   = "startup"
	ProbeLiveness  = "liveness"
	ProbeReadiness = "readiness"
)

type Handler struct {
	service string
	now     func() time.Time
	log     *slog.Logger
}

// NewHandler creates a probe handler reporting the given service name.
func NewHandler(service string, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/probe/startup", h.probe(ProbeStartup, "healthy"))
	r.Get("/probe/liveness", h.probe(ProbeLiveness, "healthy"))
	r.Get("/probe/readiness", h.probe(ProbeReadiness, "ready"))
}

func (h *Handler) probe(name, status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, h.log, http.StatusOK, api.ProbeResponse{
			Status:    status,
			Service:   h.service,
			Timestamp: interfaces.FormatTimestamp(h.now()),
			Probe:     name,
		})
	}
}
