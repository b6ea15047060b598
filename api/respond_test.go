package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubRenderer struct {
	writeHeader bool
	err         error
}

func (s stubRenderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	if s.writeHeader {
		w.WriteHeader(status)
		_, _ = w.Write([]byte("<html>partial"))
	}
	return s.err
}

func TestRenderPage(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("success", func(t *testing.T) {
		w := httptest.NewRecorder()
		RenderPage(w, logger, stubRenderer{writeHeader: true}, http.StatusOK, "dashboard", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<html>partial", w.Body.String())
	})

	t.Run("template error falls back to 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		RenderPage(w, logger, stubRenderer{err: errors.New("bad template")}, http.StatusOK, "dashboard", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Internal server error")
	})

	t.Run("write error leaves the started response alone", func(t *testing.T) {
		w := httptest.NewRecorder()
		err := fmt.Errorf("%w: %w", ErrResponseStarted, errors.New("connection reset"))
		RenderPage(w, logger, stubRenderer{writeHeader: true, err: err}, http.StatusOK, "dashboard", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "<html>partial", w.Body.String())
	})
}
