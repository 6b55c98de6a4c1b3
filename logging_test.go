package main_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	looper "gregoryjjb/looper"
)

func newLoggedRouter(buf *bytes.Buffer) http.Handler {
	logger := zerolog.New(buf)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(looper.LoggerMiddleware(&logger))
	r.Route("/api", func(r chi.Router) {
		r.Post("/jump/{offset}", func(w http.ResponseWriter, r *http.Request) {
			if chi.URLParam(r, "offset") == "-1" {
				w.WriteHeader(http.StatusConflict)
			}
		})
		r.Post("/boom", func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		})
	})
	return r
}

func accessLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var line map[string]any
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &line))
	return line
}

func TestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantCode  int
		wantLevel string
		wantRoute string
		offset    string
	}{
		{name: "jump", path: "/api/jump/3", wantCode: http.StatusOK, wantLevel: "info", wantRoute: "/api/jump/{offset}", offset: "3"},
		{name: "rejected jump", path: "/api/jump/-1", wantCode: http.StatusConflict, wantLevel: "warn", wantRoute: "/api/jump/{offset}", offset: "-1"},
		{name: "panic", path: "/api/boom", wantCode: http.StatusInternalServerError, wantLevel: "error", wantRoute: "/api/boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rec := httptest.NewRecorder()
			newLoggedRouter(&buf).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, nil))
			assert.Equal(t, tt.wantCode, rec.Code)

			line := accessLine(t, &buf)
			assert.Equal(t, "access", line["type"])
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, tt.wantRoute, line["route"])
			assert.Equal(t, float64(tt.wantCode), line["status"])
			assert.NotEmpty(t, line["request_id"])
			if tt.offset == "" {
				assert.NotContains(t, line, "offset")
			} else {
				assert.Equal(t, tt.offset, line["offset"])
			}
		})
	}
}
