package handlers

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusTeapot, "Teapot", nil)

	assert.Equal(t, http.StatusTeapot, recorder.Code)
	assert.Equal(t, "Teapot", strings.TrimSpace(recorder.Body.String()))
}

func TestRespondWithErrorLogsRequest(t *testing.T) {
	var buf bytes.Buffer
	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(original)

	req := httptest.NewRequest(http.MethodPost, "/members", nil)
	req = req.WithContext(context.WithValue(req.Context(), RequestIDKey, "req-42"))

	respondWithError(httptest.NewRecorder(), req, http.StatusInternalServerError, ErrInternalServerError, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, ErrInternalServerError)
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "path=/members")
	assert.Contains(t, out, "request_id=req-42")
}

func TestRespondWithErrorSkipsLogWithoutCause(t *testing.T) {
	var buf bytes.Buffer
	original := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(original)

	respondWithError(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil), http.StatusForbidden, ErrInvalidCSRFToken, nil)

	assert.Empty(t, buf.String())
}
