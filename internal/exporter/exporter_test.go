package exporter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ennam/apidog-sync/internal/schema"
)

const schemaEndpoint = "/api/schema/"

func newSchemaServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, schemaEndpoint, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

const wellFormedSchema = `{
	"openapi": "3.0.3",
	"info": {"title": "Test API", "version": "1.0.0"},
	"paths": {"/api/users/": {}},
	"components": {"schemas": {"User": {"type": "object"}}}
}`

func TestFetch(t *testing.T) {
	server := newSchemaServer(t, http.StatusOK, wellFormedSchema)
	defer server.Close()

	exp := New(server.URL, schemaEndpoint, nil)
	doc, err := exp.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Version())
}

func TestFetch_Non200(t *testing.T) {
	server := newSchemaServer(t, http.StatusInternalServerError, "boom")
	defer server.Close()

	exp := New(server.URL, schemaEndpoint, nil)
	_, err := exp.Fetch(context.Background())
	assert.ErrorContains(t, err, "status 500")
}

func TestExport_WritesTimestampedAndLatest(t *testing.T) {
	server := newSchemaServer(t, http.StatusOK, wellFormedSchema)
	defer server.Close()

	dir := t.TempDir()
	exp := New(server.URL, schemaEndpoint, nil)
	exp.Now = func() time.Time {
		return time.Date(2025, 6, 1, 9, 30, 15, 0, time.UTC)
	}

	result, err := exp.Export(context.Background(), Options{OutputDir: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "openapi_schema_20250601_093015.json"), result.Path)
	assert.Equal(t, filepath.Join(dir, "openapi_schema_latest.json"), result.LatestPath)

	for _, path := range []string{result.Path, result.LatestPath} {
		_, err := os.Stat(path)
		assert.NoError(t, err)
	}

	info := result.Document.Info()
	assert.Equal(t, Generator, info["x-generated-by"])
	assert.Equal(t, "2025-06-01T09:30:15Z", info["x-generated-at"])
}

// Export followed by validate must always pass for a well-formed
// response.
func TestExport_OutputValidates(t *testing.T) {
	server := newSchemaServer(t, http.StatusOK, wellFormedSchema)
	defer server.Close()

	dir := t.TempDir()
	exp := New(server.URL, schemaEndpoint, nil)

	result, err := exp.Export(context.Background(), Options{OutputDir: dir})
	require.NoError(t, err)

	_, err = schema.ValidateFile(result.LatestPath)
	assert.NoError(t, err)
}

func TestExport_YAMLFormat(t *testing.T) {
	server := newSchemaServer(t, http.StatusOK, wellFormedSchema)
	defer server.Close()

	dir := t.TempDir()
	exp := New(server.URL, schemaEndpoint, nil)

	result, err := exp.Export(context.Background(), Options{Format: schema.FormatYAML, OutputDir: dir})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "openapi_schema_latest.yaml"), result.LatestPath)

	doc, err := schema.Load(result.LatestPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"/api/users/"}, doc.Paths())
}

func TestExport_CustomFilename(t *testing.T) {
	server := newSchemaServer(t, http.StatusOK, wellFormedSchema)
	defer server.Close()

	dir := t.TempDir()
	exp := New(server.URL, schemaEndpoint, nil)

	result, err := exp.Export(context.Background(), Options{OutputDir: dir, Filename: "my_schema.json"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "my_schema.json"), result.Path)
}
