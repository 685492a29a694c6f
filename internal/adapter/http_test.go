// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-field-sync/internal/config"
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(t *testing.T, serverURL string) *httpGateway {
	t.Helper()
	g, err := NewHTTPGateway(config.Adapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return g.(*httpGateway)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()}).SignedString([]byte("k"))
	require.NoError(t, err)
	return s
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── Get ─────────────────────────────────────────────────────────────────────

func TestGet_DecodesEnvelopeAndSendsQuery(t *testing.T) {
	tok := signedToken(t, time.Now().Add(time.Hour))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/case/list", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("pagenum"))
		assert.Equal(t, "Bearer "+tok, r.Header.Get("Authorization"))

		writeEnvelope(t, w, map[string]any{
			"status": true,
			"data": map[string]any{
				"data":        []map[string]any{{"contentItemId": "c1"}},
				"permissions": map[string]any{"isAllowEdit": true},
			},
		})
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetToken(tok)

	got, err := g.Get(context.Background(), "/api/case/list", url.Values{"pagenum": {"2"}})
	require.NoError(t, err)
	assert.True(t, got.Status)
	assert.True(t, got.Data.Permissions.IsAllowEdit)
	assert.JSONEq(t, `[{"contentItemId":"c1"}]`, string(got.Data.Data))
}

func TestGet_StatusMapping(t *testing.T) {
	tests := []struct {
		code int
		want error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusServiceUnavailable, ErrBadGateway},
		{http.StatusGatewayTimeout, ErrBadGateway},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.code)
				_, _ = w.Write([]byte("boom"))
			}))
			defer srv.Close()

			_, err := newTestGateway(t, srv.URL).Get(context.Background(), "/x", nil)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPost_ErrorDetailFromEnvelope(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "envelope message", body: `{"status":false,"message":"case is locked by another user"}`, want: "conflict: case is locked by another user"},
		{name: "envelope without message", body: `{"status":false}`, want: `conflict: {"status":false}`},
		{name: "plain text", body: "  locked\n", want: "conflict: locked"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestGateway(t, srv.URL).Post(context.Background(), "/api/case/sync", map[string]any{"contentItemId": "c1"})
			require.ErrorIs(t, err, ErrConflict)
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestGet_UnmappedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestGateway(t, srv.URL).Get(context.Background(), "/x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestGet_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	_, err := newTestGateway(t, srv.URL).Get(context.Background(), "/x", nil)
	assert.ErrorIs(t, err, ErrDecodeResponse)
}

func TestGet_ExpiredTokenFailsFast(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	g := newTestGateway(t, srv.URL)
	g.SetToken(signedToken(t, time.Now().Add(-time.Hour)))

	_, err := g.Get(context.Background(), "/x", nil)
	assert.ErrorIs(t, err, ErrTokenExpired)
	_, err = g.Post(context.Background(), "/x", nil)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Zero(t, hits.Load())
}

// ── Post ────────────────────────────────────────────────────────────────────

func TestPost_SendsJSONAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "c1", body["contentItemId"])

		writeEnvelope(t, w, map[string]any{
			"status": true,
			"data":   map[string]any{"statusCode": 200, "message": "ok", "data": map[string]any{"contentItemId": "srv-1"}},
		})
	}))
	defer srv.Close()

	got, err := newTestGateway(t, srv.URL).Post(context.Background(), "/api/case/sync", map[string]any{"contentItemId": "c1"})
	require.NoError(t, err)
	assert.True(t, got.Succeeded())
	assert.Equal(t, "ok", got.Data.Message)
	assert.JSONEq(t, `{"contentItemId":"srv-1"}`, string(got.Data.Data))
}

func TestPost_NonSuccessStatusCodeIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeEnvelope(t, w, models.PostResponse{Status: false, Data: models.PostData{StatusCode: 500, Message: "nope"}})
	}))
	defer srv.Close()

	got, err := newTestGateway(t, srv.URL).Post(context.Background(), "/x", struct{}{})
	require.NoError(t, err)
	assert.False(t, got.Succeeded())
}

// ── UploadFile ──────────────────────────────────────────────────────────────

func TestUploadFile_Multipart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "c9", r.FormValue("contentItemId"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "note.txt", hdr.Filename)
		assert.Equal(t, "hello", string(data))

		writeEnvelope(t, w, models.PostResponse{Status: true, Data: models.PostData{StatusCode: 200}})
	}))
	defer srv.Close()

	got, err := newTestGateway(t, srv.URL).UploadFile(context.Background(), "/api/attachment/upload", path,
		map[string]string{"contentItemId": "c9"})
	require.NoError(t, err)
	assert.True(t, got.Succeeded())
}

func TestUploadFile_MissingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	_, err := newTestGateway(t, srv.URL).UploadFile(context.Background(), "/x", "/no/such/file", nil)
	assert.Error(t, err)
}

// ── Ping / token ────────────────────────────────────────────────────────────

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != healthPath {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	assert.NoError(t, newTestGateway(t, srv.URL).Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	assert.Error(t, newTestGateway(t, addr).Ping(context.Background()))
}

func TestToken_TrimsAndComesFromConfig(t *testing.T) {
	g, err := NewHTTPGateway(config.Adapter{HTTPAddress: "localhost:1", Token: " abc "}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "abc", g.Token())

	g.SetToken("def")
	assert.Equal(t, "def", g.Token())
}

func TestNewHTTPGateway_InvalidAddress(t *testing.T) {
	_, err := NewHTTPGateway(config.Adapter{}, logger.Nop())
	assert.Error(t, err)
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "https://api.example.com/", "https://api.example.com", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
