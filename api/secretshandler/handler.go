// Package secretshandler serves the read-only secrets browser backed by an
// interfaces.SecretRegistry.
package secretshandler

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/halow-dashboard/api"
	"github.com/ruteri/halow-dashboard/config"
	"github.com/ruteri/halow-dashboard/interfaces"
	"github.com/ruteri/halow-dashboard/metrics"
	"github.com/ruteri/halow-dashboard/views"
)

// Handler serves the secrets listing and tag detail endpoints.
type Handler struct {
	registry    interfaces.SecretRegistry
	renderer    api.Renderer
	environment string
	tableName   string
	log         *slog.Logger
}

func NewHandler(registry interfaces.SecretRegistry, renderer api.Renderer, cfg *config.Config, log *slog.Logger) *Handler {
	return &Handler{
		registry:    registry,
		renderer:    renderer,
		environment: cfg.Environment,
		tableName:   cfg.TableName,
		log:         log,
	}
}

// RegisterRoutes configures the router with the secrets endpoints:
//   - GET /secrets?search=&tag= - secrets listing page
//   - GET /secrets/{secretName}/tags - tags and dates of one secret
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/secrets", h.HandleSecrets)
	r.Get("/secrets/{secretName}/tags", h.HandleSecretTags)
}

// HandleSecrets renders the secrets listing. A non-empty search query takes
// precedence over the tag filter.
func (h *Handler) HandleSecrets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	search := query.Get("search")
	tag := query.Get("tag")

	page := api.SecretsPage{
		PageData: api.PageData{
			Title:       "Secrets",
			Environment: h.environment,
			TableName:   h.tableName,
			CurrentTab:  views.PageSecrets,
		},
		Secrets:       []interfaces.SecretDescriptor{},
		SearchQuery:   search,
		SelectedTag:   tag,
		AvailableTags: []string{},
	}

	var (
		secrets []interfaces.SecretDescriptor
		err     error
	)
	switch {
	case search != "":
		secrets, err = h.registry.SearchByText(r.Context(), search)
	case tag != "":
		secrets, err = h.registry.FilterByTag(r.Context(), interfaces.ParseTagFilter(tag))
	default:
		secrets, err = h.registry.ListAll(r.Context())
	}

	outcome := api.Classify(err)
	metrics.ObserveOutcome("secrets", string(outcome))

	switch {
	case err == nil:
		interfaces.SortSecretsByName(secrets)
		page.Secrets = secrets
		page.AvailableTags = availableTags(secrets)
		page.TotalSecrets = len(secrets)
	case outcome.Degraded():
		h.log.Warn("Secret registry unavailable, rendering empty listing", "err", err, "outcome", outcome)
		page.Notice = api.DegradedNotice(outcome, h.registry.Name())
	default:
		h.log.Error("Failed to list secrets", "err", err, "search", search, "tag", tag)
		api.RenderPage(w, h.log, h.renderer, http.StatusInternalServerError, views.PageError, api.ErrorPage{
			PageData: page.PageData,
			Message:  "Failed to load secrets",
			Error:    err.Error(),
		})
		return
	}

	api.RenderPage(w, h.log, h.renderer, http.StatusOK, views.PageSecrets, page)
}

// HandleSecretTags returns the tags and dates of a single secret.
//
// Status codes:
//   - 200 OK: api.SecretTagsResponse
//   - 400 Bad Request: empty or malformed secret name
//   - 404 Not Found: no secret with that name
//   - 500 Internal Server Error: registry failure
func (h *Handler) HandleSecretTags(w http.ResponseWriter, r *http.Request) {
	name, err := secretName(r)
	if err != nil || name == "" {
		metrics.ObserveOutcome("secret_tags", string(api.OutcomeValidation))
		api.WriteError(w, h.log, http.StatusBadRequest, "Secret name is required", err)
		return
	}

	secret, err := h.findSecret(r, name)
	outcome := api.Classify(err)
	metrics.ObserveOutcome("secret_tags", string(outcome))

	switch outcome {
	case api.OutcomeOK:
		api.WriteJSON(w, h.log, http.StatusOK, api.SecretTagsResponse{
			Name:            secret.Name,
			Tags:            tagsOrEmpty(secret.Tags),
			Description:     secret.Description,
			CreatedDate:     secret.CreatedDate,
			LastChangedDate: secret.LastChangedDate,
		})
	case api.OutcomeNotFound:
		api.WriteError(w, h.log, http.StatusNotFound, "Secret not found", nil)
	default:
		h.log.Error("Failed to get secret tags", "err", err, "secret", name)
		api.WriteError(w, h.log, outcome.StatusCode(), "Failed to get secret tags", err)
	}
}

// secretName returns the decoded {secretName} path value. chi matches on
// RawPath when the request carries one (e.g. an encoded '/'), and on the
// already decoded Path otherwise.
func secretName(r *http.Request) (string, error) {
	name := r.PathValue("secretName")
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

func (h *Handler) findSecret(r *http.Request, name string) (*interfaces.SecretDescriptor, error) {
	secrets, err := h.registry.ListAll(r.Context())
	if err != nil {
		return nil, err
	}
	for i := range secrets {
		if secrets[i].Name == name {
			return &secrets[i], nil
		}
	}
	return nil, fmt.Errorf("secret %q: %w", name, interfaces.ErrNotFound)
}

// availableTags returns the distinct "key=value" pairs across secrets, sorted.
func availableTags(secrets []interfaces.SecretDescriptor) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, s := range secrets {
		for _, pair := range s.TagPairs() {
			if _, ok := seen[pair]; ok {
				continue
			}
			seen[pair] = struct{}{}
			tags = append(tags, pair)
		}
	}
	sort.Strings(tags)
	return tags
}

func tagsOrEmpty(tags map[string]string) map[string]string {
	if tags == nil {
		return map[string]string{}
	}
	return tags
}
