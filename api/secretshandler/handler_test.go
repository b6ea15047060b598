package secretshandler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/halow-dashboard/api"
	"github.com/ruteri/halow-dashboard/config"
	"github.com/ruteri/halow-dashboard/interfaces"
	"github.com/ruteri/halow-dashboard/registry"
	"github.com/ruteri/halow-dashboard/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type capturingRenderer struct {
	status int
	page   string
	data   any
}

func (c *capturingRenderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	c.status, c.page, c.data = status, page, data
	w.WriteHeader(status)
	return nil
}

func setupRouter(reg interfaces.SecretRegistry, renderer api.Renderer) *chi.Mux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(reg, renderer, config.Default(), logger)
	mux := chi.NewRouter()
	handler.RegisterRoutes(mux)
	return mux
}

func testSecrets() []interfaces.SecretDescriptor {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []interfaces.SecretDescriptor{
		{Name: "prod/db", ARN: "arn:prod-db", Tags: map[string]string{"env": "prod", "team": "data"}, CreatedDate: &created},
		{Name: "api-key", ARN: "arn:api-key", Description: "Partner API key", Tags: map[string]string{"env": "prod"}},
		{Name: "dev/db", ARN: "arn:dev-db", Tags: map[string]string{"env": "dev"}},
		{Name: "50%off", ARN: "vault://vault/secret/50%off", Tags: map[string]string{"env": "prod"}},
		{Name: "promo/50%off", ARN: "vault://vault/secret/promo/50%off", Tags: map[string]string{"env": "prod"}},
	}
}

func secretNames(secrets []interfaces.SecretDescriptor) []string {
	names := make([]string, 0, len(secrets))
	for _, s := range secrets {
		names = append(names, s.Name)
	}
	return names
}

func TestHandleSecrets_ListAll(t *testing.T) {
	reg := new(registry.MockSecretRegistry)
	reg.On("ListAll", mock.Anything).Return(testSecrets(), nil)
	renderer := &capturingRenderer{}
	mux := setupRouter(reg, renderer)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secrets", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, views.PageSecrets, renderer.page)
	page, ok := renderer.data.(api.SecretsPage)
	require.True(t, ok)
	assert.Equal(t, []string{"50%off", "api-key", "dev/db", "prod/db", "promo/50%off"}, secretNames(page.Secrets))
	assert.Equal(t, []string{"env=dev", "env=prod", "team=data"}, page.AvailableTags)
	assert.Equal(t, 5, page.TotalSecrets)
	assert.Empty(t, page.Notice)
}

func TestHandleSecrets_SearchWinsOverTag(t *testing.T) {
	reg := new(registry.MockSecretRegistry)
	reg.On("SearchByText", mock.Anything, "db").Return(testSecrets()[:1], nil)
	renderer := &capturingRenderer{}
	mux := setupRouter(reg, renderer)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secrets?search=db&tag=env=dev", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	page := renderer.data.(api.SecretsPage)
	assert.Equal(t, "db", page.SearchQuery)
	assert.Equal(t, "env=dev", page.SelectedTag)
	assert.Equal(t, 1, page.TotalSecrets)
	reg.AssertNotCalled(t, "FilterByTag", mock.Anything, mock.Anything)
	reg.AssertExpectations(t)
}

func TestHandleSecrets_TagFilter(t *testing.T) {
	reg := new(registry.MockSecretRegistry)
	reg.On("FilterByTag", mock.Anything, interfaces.TagFilter{Key: "env", Value: "prod"}).
		Return([]interfaces.SecretDescriptor{testSecrets()[0], testSecrets()[1]}, nil)
	renderer := &capturingRenderer{}
	mux := setupRouter(reg, renderer)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secrets?tag=env%3Dprod", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	page := renderer.data.(api.SecretsPage)
	assert.Equal(t, []string{"api-key", "prod/db"}, secretNames(page.Secrets))
	reg.AssertExpectations(t)
}

func TestHandleSecrets_Degraded(t *testing.T) {
	renderer, err := views.NewRenderer()
	require.NoError(t, err)

	reg := new(registry.MockSecretRegistry)
	reg.On("Name").Return("AWS Secrets Manager")
	reg.On("ListAll", mock.Anything).Return(nil, &interfaces.UpstreamError{
		Service: "AWS Secrets Manager", Op: "list", Kind: interfaces.KindAuth, Err: errors.New("AccessDeniedException"),
	})
	mux := setupRouter(reg, renderer)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secrets", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Access to AWS Secrets Manager was denied")
	assert.Contains(t, w.Body.String(), "No secrets found.")
}

func TestHandleSecrets_Failure(t *testing.T) {
	renderer := &capturingRenderer{}
	reg := new(registry.MockSecretRegistry)
	reg.On("ListAll", mock.Anything).Return(nil, errors.New("boom"))
	mux := setupRouter(reg, renderer)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secrets", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, views.PageError, renderer.page)
	page := renderer.data.(api.ErrorPage)
	assert.Equal(t, "boom", page.Error)
}

func TestHandleSecretTags(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		listErr    error
		wantStatus int
		wantError  string
	}{
		{"found", "/secrets/api-key/tags", nil, http.StatusOK, ""},
		{"found with slash", "/secrets/prod%2Fdb/tags", nil, http.StatusOK, ""},
		{"found with percent", "/secrets/50%25off/tags", nil, http.StatusOK, ""},
		{"found with percent and slash", "/secrets/promo%2F50%25off/tags", nil, http.StatusOK, ""},
		{"not found", "/secrets/missing/tags", nil, http.StatusNotFound, "Secret not found"},
		{"registry failure", "/secrets/api-key/tags", errors.New("throttled"), http.StatusInternalServerError, "Failed to get secret tags"},
		{"registry unavailable", "/secrets/api-key/tags", &interfaces.UpstreamError{Kind: interfaces.KindUnavailable, Err: errors.New("dial")}, http.StatusInternalServerError, "Failed to get secret tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := new(registry.MockSecretRegistry)
			if tt.listErr != nil {
				reg.On("ListAll", mock.Anything).Return(nil, tt.listErr)
			} else {
				reg.On("ListAll", mock.Anything).Return(testSecrets(), nil)
			}
			mux := setupRouter(reg, &capturingRenderer{})

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tt.wantError != "" {
				var resp api.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.wantError, resp.Error)
				return
			}

			var resp api.SecretTagsResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.NotEmpty(t, resp.Tags)
			assert.Equal(t, "prod", resp.Tags["env"])
		})
	}
}

func TestHandleSecretTags_Body(t *testing.T) {
	reg := new(registry.MockSecretRegistry)
	reg.On("ListAll", mock.Anything).Return(testSecrets(), nil)
	mux := setupRouter(reg, &capturingRenderer{})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secrets/prod%2Fdb/tags", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"name": "prod/db",
		"tags": {"env": "prod", "team": "data"},
		"createdDate": "2024-05-01T12:00:00Z"
	}`, w.Body.String())
}

func TestHandleSecretTags_EmptyName(t *testing.T) {
	reg := new(registry.MockSecretRegistry)
	mux := setupRouter(reg, &capturingRenderer{})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/secrets//tags", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Secret name is required"}`, w.Body.String())
	reg.AssertNotCalled(t, "ListAll", mock.Anything)
}
