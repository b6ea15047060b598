package dashboardhandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ruteri/halow-dashboard/api"
	"github.com/ruteri/halow-dashboard/config"
	"github.com/ruteri/halow-dashboard/interfaces"
	"github.com/ruteri/halow-dashboard/metrics"
	"github.com/ruteri/halow-dashboard/views"
)

const maxFormMemory = 1 << 20

// Handler serves the record dashboard.
type Handler struct {
	store       interfaces.RecordStore
	renderer    api.Renderer
	environment string
	tableName   string
	metadata    *metadataValidator
	newID       func() string
	log         *slog.Logger
}

// NewHandler creates a dashboard handler over store. Pages are rendered by
// renderer and labelled with the environment and table name from cfg.
func NewHandler(store interfaces.RecordStore, renderer api.Renderer, cfg *config.Config, log *slog.Logger) (*Handler, error) {
	metadata, err := newMetadataValidator()
	if err != nil {
		return nil, err
	}
	return &Handler{
		store:       store,
		renderer:    renderer,
		environment: cfg.Environment,
		tableName:   cfg.TableName,
		metadata:    metadata,
		newID:       uuid.NewString,
		log:         log,
	}, nil
}

// RegisterRoutes configures the router with the dashboard endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleDashboard)
	r.Get("/dashboard", h.HandleDashboard)
	r.Post("/data", h.HandleAddRecord)
	r.Delete("/data/", h.HandleDeleteRecord)
	r.Delete("/data/{id}", h.HandleDeleteRecord)
}

// HandleDashboard renders every record, newest first.
//
// Store connectivity and permission failures render the page with no
// records and a notice. Any other failure renders the error page with 500.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	page := api.DashboardPage{
		PageData: api.PageData{
			Title:       "Dashboard",
			Environment: h.environment,
			TableName:   h.tableName,
			CurrentTab:  views.PageDashboard,
		},
		Items: []interfaces.Record{},
	}

	records, err := h.store.ListAll(r.Context())
	outcome := api.Classify(err)
	metrics.ObserveOutcome("dashboard", string(outcome))

	switch {
	case err == nil:
		interfaces.SortRecordsNewestFirst(records)
		page.Items = records
	case outcome.Degraded():
		h.log.Warn("Record store unavailable, rendering empty dashboard", "err", err, "outcome", outcome)
		page.Notice = api.DegradedNotice(outcome, h.store.Name())
	default:
		h.log.Error("Failed to list records", "err", err)
		api.RenderPage(w, h.log, h.renderer, http.StatusInternalServerError, views.PageError, api.ErrorPage{
			PageData: page.PageData,
			Message:  "Failed to load records",
			Error:    err.Error(),
		})
		return
	}

	api.RenderPage(w, h.log, h.renderer, http.StatusOK, views.PageDashboard, page)
}

// addRecordRequest is the JSON body accepted by POST /data.
type addRecordRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata"`
}

// HandleAddRecord creates a record and redirects to the dashboard.
//
// Status codes:
//   - 302 Found: record stored
//   - 400 Bad Request: missing title or description, invalid metadata
//   - 500 Internal Server Error: store failure
func (h *Handler) HandleAddRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.parseAddRecord(r)
	if err != nil {
		metrics.ObserveOutcome("add_record", string(api.OutcomeValidation))
		var reqErr *requestError
		if errors.As(err, &reqErr) {
			h.log.Debug("Rejected add record request", "err", err)
			api.WriteError(w, h.log, http.StatusBadRequest, reqErr.message, reqErr.details)
			return
		}
		api.WriteError(w, h.log, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record.ID = h.newID()
	err = h.store.Put(r.Context(), record)
	metrics.ObserveOutcome("add_record", string(api.Classify(err)))
	if err != nil {
		h.log.Error("Failed to add record", "err", err, "id", record.ID)
		api.WriteError(w, h.log, http.StatusInternalServerError, "Failed to add data", err)
		return
	}

	h.log.Info("Record added", "id", record.ID)
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// HandleDeleteRecord removes a record. Deleting an unknown id succeeds.
//
// Status codes:
//   - 200 OK: {"success": true}
//   - 400 Bad Request: empty id
//   - 500 Internal Server Error: store failure
func (h *Handler) HandleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		metrics.ObserveOutcome("delete_record", string(api.OutcomeValidation))
		api.WriteError(w, h.log, http.StatusBadRequest, "ID is required", nil)
		return
	}

	err := h.store.Delete(r.Context(), id)
	metrics.ObserveOutcome("delete_record", string(api.Classify(err)))
	if err != nil {
		h.log.Error("Failed to delete record", "err", err, "id", id)
		api.WriteError(w, h.log, http.StatusInternalServerError, "Failed to delete data", err)
		return
	}

	h.log.Info("Record deleted", "id", id)
	api.WriteJSON(w, h.log, http.StatusOK, api.SuccessResponse{Success: true})
}

// requestError carries the client-facing message of a rejected request.
type requestError struct {
	message string
	details error
}

func (e *requestError) Error() string {
	if e.details == nil {
		return e.message
	}
	return e.message + ": " + e.details.Error()
}

func (e *requestError) Unwrap() error {
	if e.details == nil {
		return interfaces.ErrValidation
	}
	return e.details
}

func (h *Handler) parseAddRecord(r *http.Request) (interfaces.Record, error) {
	var (
		record   interfaces.Record
		metadata interfaces.Metadata
		err      error
	)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var req addRecordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return record, err
		}
		record.Title, record.Description = req.Title, req.Description
		if record.Title == "" || record.Description == "" {
			return record, &requestError{message: "Title and description are required"}
		}
		metadata, err = h.metadata.parseRaw(req.Metadata)
	} else {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return record, err
		}
		record.Title = r.PostFormValue("title")
		record.Description = r.PostFormValue("description")
		if record.Title == "" || record.Description == "" {
			return record, &requestError{message: "Title and description are required"}
		}
		metadata, err = h.metadata.parseString(r.PostFormValue("metadata"))
	}
	if err != nil {
		return record, &requestError{message: metadataError, details: err}
	}

	if len(metadata) > 0 {
		record.Metadata = metadata
	}
	return record, nil
}
