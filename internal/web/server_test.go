package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestServer_Health returns ok without any backend
func TestServer_Health(t *testing.T) {
	srv, err := NewServer(&Config{Port: 0})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

// TestServer_APIProxy rewrites /api onto the backend base path and preserves
// the bearer token
func TestServer_APIProxy(t *testing.T) {
	backendRouter := chi.NewRouter()
	backendRouter.Get("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"auth":    r.Header.Get("Authorization"),
			"keyword": r.URL.Query().Get("keyword"),
		})
	})
	backend := httptest.NewServer(backendRouter)
	defer backend.Close()

	srv, err := NewServer(&Config{Port: 0, APIBaseURL: backend.URL + "/api"})
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/jobs?keyword=go", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bearer tok", body["auth"])
	assert.Equal(t, "go", body["keyword"])
}

// TestServer_SPAFallback serves real files directly and index.html for
// client-side routes
func TestServer_SPAFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0644))

	srv, err := NewServer(&Config{Port: 0, StaticDir: dir})
	require.NoError(t, err)

	// a real asset
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/app.js", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	// a client-side route falls back to the app shell
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/favorites", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app")
}

// TestServer_InvalidAPIBase rejects an unparsable backend URL
func TestServer_InvalidAPIBase(t *testing.T) {
	_, err := NewServer(&Config{Port: 0, APIBaseURL: "://bad"})
	assert.Error(t, err)
}
