package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithWriterOnce(t *testing.T) {
	var first, second bytes.Buffer

	l1 := InitWithWriter(Config{}, &first)
	l2 := InitWithWriter(Config{Level: int(slog.LevelDebug)}, &second)
	assert.Same(t, l1, l2)
	assert.Same(t, l1, slog.Default())

	slog.Default().Info("hello")
	assert.Contains(t, first.String(), `"msg":"hello"`)
	assert.Zero(t, second.Len())
}

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: int(slog.LevelWarn)}, &buf)

	l.Info("dropped")
	assert.Zero(t, buf.Len())

	l.Warn("kept")
	assert.Contains(t, buf.String(), `"msg":"kept"`)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{}, &buf)

	h := middleware.RequestID(RequestLogger(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health_check", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request served", line["msg"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/health_check", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
	assert.NotEmpty(t, line["request_id"])
	assert.Equal(t, "unknown", line["client_ip"])
}
