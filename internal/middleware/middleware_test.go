package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/emilythestrangee/quora-clone/backend/internal/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(log *zap.Logger, logCauses bool) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), RequestLogger(log), Recovery(log, logCauses), ErrorHandler(log, logCauses))
	r.NoRoute(NotFound)
	return r
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", apperror.Validation("Invalid question id."), http.StatusBadRequest, "Invalid question id."},
		{"not found", apperror.NotFound("Question not found."), http.StatusNotFound, "Question not found."},
		{"internal", apperror.Internal("Unable to fetch questions.", errors.New("conn reset")), http.StatusInternalServerError, "Unable to fetch questions."},
		{"plain error", errors.New("unexpected"), http.StatusInternalServerError, "Internal server error."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(zap.NewNop(), false)
			r.GET("/x", func(c *gin.Context) {
				_ = c.Error(tt.err)
				c.Abort()
			})

			w := serve(r, http.MethodGet, "/x")
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMsg, message(t, w))
		})
	}
}

func TestErrorHandlerLogsCausesOnlyWhenEnabled(t *testing.T) {
	for _, logCauses := range []bool{true, false} {
		core, logs := observer.New(zapcore.ErrorLevel)
		r := newEngine(zap.New(core), logCauses)
		r.GET("/x", func(c *gin.Context) {
			_ = c.Error(apperror.Internal("Unable to vote question.", errors.New("db gone")))
		})

		serve(r, http.MethodGet, "/x")

		failed := logs.FilterMessage("request failed").Len()
		if logCauses {
			assert.Equal(t, 1, failed)
		} else {
			assert.Equal(t, 0, failed)
		}
	}
}

func TestErrorHandlerDoesNotLogClientErrors(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	r := newEngine(zap.New(core), true)
	r.GET("/x", func(c *gin.Context) {
		_ = c.Error(apperror.Validation("Invalid vote value."))
	})

	serve(r, http.MethodGet, "/x")
	assert.Equal(t, 0, logs.FilterMessage("request failed").Len())
}

func TestRecovery(t *testing.T) {
	r := newEngine(zap.NewNop(), true)
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := serve(r, http.MethodGet, "/panic")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error.", message(t, w))
}

func TestNotFound(t *testing.T) {
	r := newEngine(zap.NewNop(), false)

	w := serve(r, http.MethodPatch, "/nowhere")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Not found.", message(t, w))
}

func TestRequestID(t *testing.T) {
	r := newEngine(zap.NewNop(), false)
	r.GET("/id", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(RequestIDKey))
	})

	t.Run("generated", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/id")
		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/id", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := newEngine(zap.New(core), false)
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/ok?x=1")
	serve(r, http.MethodGet, "/missing")

	entries := logs.FilterMessage("request completed").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, "x=1", entries[0].ContextMap()["query"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}

func TestCORS(t *testing.T) {
	t.Run("all origins", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS([]string{"*"}))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://anywhere.test")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origins", func(t *testing.T) {
		r := gin.New()
		r.Use(CORS([]string{"http://app.test"}))
		r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://app.test")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Origin", "http://evil.test")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
