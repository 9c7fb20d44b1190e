package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// observeLogs подменяет логгер пакета наблюдателем и возвращает прежний после теста.
func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	prev := logger
	SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { SetLogger(prev) })
	return logs
}

func TestWithLogging_RecordsRequestFields(t *testing.T) {
	logs := observeLogs(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hello"))
	})

	rr := httptest.NewRecorder()
	WithLogging(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/curtains?x=1", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Equal(t, "hello", rr.Body.String())

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "request", entry.Message)
	fields := entry.ContextMap()
	assert.Equal(t, http.MethodPost, fields["method"])
	assert.Equal(t, "/api/curtains?x=1", fields["uri"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.EqualValues(t, 5, fields["size"])
	require.Contains(t, fields, "duration")
	_, isDuration := fields["duration"].(time.Duration)
	assert.True(t, isDuration, "duration logged as %T", fields["duration"])
	assert.Equal(t, "", fields["request_id"])
}

func TestWithLogging_ImplicitStatusAndAccumulatedSize(t *testing.T) {
	logs := observeLogs(t)

	// WriteHeader не вызывается: статус 200 выставляет net/http
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("chunk-1"))
		_, _ = w.Write([]byte("chunk-22"))
	})

	rr := httptest.NewRecorder()
	WithLogging(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.EqualValues(t, len("chunk-1")+len("chunk-22"), fields["size"])
}

func TestWithLogging_RequestIDFromChi(t *testing.T) {
	logs := observeLogs(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/curtains/1", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-42")
	chimw.RequestID(WithLogging(next)).ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-42", fields["request_id"])
	assert.EqualValues(t, http.StatusNoContent, fields["status"])
	assert.EqualValues(t, 0, fields["size"])
}

func TestWithLogging_NoLoggerStillServes(t *testing.T) {
	prev := logger
	SetLogger(nil)
	t.Cleanup(func() { SetLogger(prev) })

	rr := httptest.NewRecorder()
	WithLogging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
