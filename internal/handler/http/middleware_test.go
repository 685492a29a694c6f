package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/utils"
)

// ---- responseWriter ----

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError) // ignored

	assert.Equal(t, http.StatusCreated, w.status)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestResponseWriter_WriteImpliesOK(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	n, err := w.Write([]byte("first"))
	require.NoError(t, err)
	_, err = w.Write([]byte("second"))
	require.NoError(t, err)

	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 11, w.size)
	assert.Equal(t, "firstsecond", rr.Body.String())
	assert.Same(t, rr, w.Unwrap())
}

// ---- withLogging ----

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantLevel string
	}{
		{name: "200", status: http.StatusOK, body: "OK", wantLevel: "info"},
		{name: "404", status: http.StatusNotFound, wantLevel: "info"},
		{name: "502", status: http.StatusBadGateway, body: "bad", wantLevel: "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			req := httptest.NewRequest(http.MethodPost, "/api/sync/push", nil)
			req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))

			h := newTestHandler()
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			h.withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, "/api/sync/push", entry["uri"])
			assert.Equal(t, "POST", entry["method"])
			assert.EqualValues(t, tt.status, entry["status"])
			assert.EqualValues(t, len(tt.body), entry["size"])
			assert.Contains(t, entry, "duration")
		})
	}
}

// ---- withTraceID ----

func executeWithTraceID(t *testing.T, h *Handler, header string) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()
	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if header != "" {
		req.Header.Set(traceIDHeader, header)
	}
	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	require.NotNil(t, captured)
	return rr, captured
}

func TestWithTraceID_ReusesHeader(t *testing.T) {
	rr, req := executeWithTraceID(t, newTestHandler(), "my-trace")

	assert.Equal(t, "my-trace", rr.Header().Get(traceIDHeader))
	runID, ok := utils.GetRunIDFromContext(req.Context())
	assert.True(t, ok)
	assert.Equal(t, "my-trace", runID)
}

func TestWithTraceID_GeneratesUUID(t *testing.T) {
	rr, _ := executeWithTraceID(t, newTestHandler(), "")

	id, err := uuid.Parse(rr.Header().Get(traceIDHeader))
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
}

func TestWithTraceID_OversizedHeaderReplaced(t *testing.T) {
	long := strings.Repeat("x", maxTraceIDLen+1)
	rr, req := executeWithTraceID(t, newTestHandler(), long)

	got := rr.Header().Get(traceIDHeader)
	assert.NotEqual(t, long, got)
	_, err := uuid.Parse(got)
	assert.NoError(t, err)

	runID, _ := utils.GetRunIDFromContext(req.Context())
	assert.Equal(t, got, runID)
}

func TestWithTraceID_LoggerCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.NewLogger("test", "debug", &buf)}

	_, req := executeWithTraceID(t, h, "abc-123")
	logger.FromRequest(req).Info().Msg("inside")

	// в каждой записи должен быть trace_id из заголовка
	assert.Contains(t, buf.String(), `"trace_id":"abc-123"`)
}

// ---- auth ----

func TestGetTokenFromAuthHeader(t *testing.T) {
	tests := []struct {
		header    string
		wantToken string
		wantErr   error
	}{
		{header: "Bearer tkn", wantToken: "tkn"},
		{header: "Bearer", wantErr: ErrInvalidAuthorizationHeader},
		{header: "Bearer ", wantErr: ErrEmptyToken},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, got)
		})
	}
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "no token configured", wantStatus: http.StatusOK},
		{name: "valid", token: "s3cret", header: "Bearer s3cret", wantStatus: http.StatusOK},
		{name: "missing header", token: "s3cret", wantStatus: http.StatusUnauthorized, wantBody: ErrEmptyAuthorizationHeader.Error()},
		{name: "malformed", token: "s3cret", header: "s3cret", wantStatus: http.StatusUnauthorized, wantBody: ErrInvalidAuthorizationHeader.Error()},
		{name: "wrong", token: "s3cret", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler()
			h.token = tt.token

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/sync/pending", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.auth(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, called)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, strings.TrimSpace(rr.Body.String()))
			}
		})
	}
}
