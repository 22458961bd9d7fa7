package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ennam/apidog-sync/internal/config"
	"github.com/ennam/apidog-sync/internal/schema"
)

const testSchema = `{
	"openapi": "3.0.3",
	"info": {"title": "Test API", "version": "1.0.0"},
	"paths": {"/api/users/": {}, "/api/orders/": {}},
	"components": {"schemas": {"User": {"type": "object"}}}
}`

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(VersionInfo{Version: "test"})
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func newSchemaApp(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testSchema))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "apidog test")
}

func TestExportCommand(t *testing.T) {
	app := newSchemaApp(t)
	outputDir := t.TempDir()
	t.Setenv("APIDOG_SCHEMA_BASE_URL", app.URL)
	t.Setenv("APIDOG_OUTPUT_DIR", outputDir)

	out, err := runCommand(t, "export")
	require.NoError(t, err)
	assert.Contains(t, out, "Fetching OpenAPI schema from")
	assert.Contains(t, out, "Endpoints: 2")

	_, err = os.Stat(filepath.Join(outputDir, "openapi_schema_latest.json"))
	assert.NoError(t, err)
}

func TestExportThenValidate(t *testing.T) {
	app := newSchemaApp(t)
	outputDir := t.TempDir()
	t.Setenv("APIDOG_SCHEMA_BASE_URL", app.URL)
	t.Setenv("APIDOG_OUTPUT_DIR", outputDir)

	_, err := runCommand(t, "export")
	require.NoError(t, err)

	out, err := runCommand(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Validating:")
}

func TestExportCommand_BadFormat(t *testing.T) {
	_, err := runCommand(t, "export", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestValidateCommand_FileNotFound(t *testing.T) {
	t.Setenv("APIDOG_OUTPUT_DIR", t.TempDir())

	_, err := runCommand(t, "validate")
	assert.ErrorContains(t, err, "schema file not found")
}

func TestValidateCommand_MissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"openapi":"3.0.3"}`), 0600))

	_, err := runCommand(t, "validate", "--file", path)
	assert.ErrorContains(t, err, "missing required key")
}

func TestPushCommand_MissingCredentials_NoNetworkCall(t *testing.T) {
	var hits atomic.Int32
	cloudAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	t.Cleanup(cloudAPI.Close)

	t.Setenv("APIDOG_API_BASE_URL", cloudAPI.URL)
	t.Setenv("APIDOG_OUTPUT_DIR", t.TempDir())

	out, err := runCommand(t, "push")
	require.ErrorIs(t, err, config.ErrMissingCredentials)
	assert.Contains(t, out, "Option 2 - Environment variables")
	assert.Zero(t, hits.Load())
}

func TestPushCommand_ExportsWhenNoFileGiven(t *testing.T) {
	app := newSchemaApp(t)

	var imported atomic.Int32
	cloudAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/proj-1/import-openapi", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		imported.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(cloudAPI.Close)

	t.Setenv("APIDOG_SCHEMA_BASE_URL", app.URL)
	t.Setenv("APIDOG_API_BASE_URL", cloudAPI.URL)
	t.Setenv("APIDOG_OUTPUT_DIR", t.TempDir())
	t.Setenv("APIDOG_PROJECT_ID", "proj-1")
	t.Setenv("APIDOG_TOKEN", "tok")

	out, err := runCommand(t, "push")
	require.NoError(t, err)
	assert.Contains(t, out, "No schema file specified, exporting...")
	assert.Equal(t, int32(1), imported.Load())
}

func TestPullCommand_WritesSchema(t *testing.T) {
	cloudAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/projects/proj-1/export-openapi", r.URL.Path)
		_, _ = w.Write([]byte(testSchema))
	}))
	t.Cleanup(cloudAPI.Close)

	outputFile := filepath.Join(t.TempDir(), "pulled.json")
	t.Setenv("APIDOG_API_BASE_URL", cloudAPI.URL)
	t.Setenv("APIDOG_PROJECT_ID", "proj-1")
	t.Setenv("APIDOG_TOKEN", "tok")

	out, err := runCommand(t, "pull", "--output", outputFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Pulling from APIDOG project proj-1...")

	doc, err := schema.Load(outputFile)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", doc.Version())
}

func TestCompareCommand_InSync(t *testing.T) {
	cloudAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testSchema))
	}))
	t.Cleanup(cloudAPI.Close)

	outputDir := t.TempDir()
	latest := filepath.Join(outputDir, "openapi_schema_latest.json")
	require.NoError(t, os.WriteFile(latest, []byte(testSchema), 0600))

	t.Setenv("APIDOG_API_BASE_URL", cloudAPI.URL)
	t.Setenv("APIDOG_OUTPUT_DIR", outputDir)
	t.Setenv("APIDOG_PROJECT_ID", "proj-1")
	t.Setenv("APIDOG_TOKEN", "tok")

	out, err := runCommand(t, "compare")
	require.NoError(t, err)
	assert.Contains(t, out, "SCHEMA COMPARISON REPORT")
	assert.Contains(t, out, "Local endpoints:  2")
	assert.Contains(t, out, "Common endpoints: 2")
}

func TestEnvConfigCommand(t *testing.T) {
	outputDir := t.TempDir()
	t.Setenv("APIDOG_OUTPUT_DIR", outputDir)

	_, err := runCommand(t, "env-config")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outputDir, "apidog_environments.json"))
	require.NoError(t, err)

	var environments map[string]config.Environment
	require.NoError(t, json.Unmarshal(data, &environments))
	assert.Contains(t, environments, "staging")
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	outputDir := filepath.Join(dir, "apidog")
	t.Setenv("APIDOG_OUTPUT_DIR", outputDir)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	out, err := runCommand(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Initializing APIDOG integration...")

	_, err = os.Stat(filepath.Join(dir, "Makefile.apidog"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(outputDir, "environments.json"))
	assert.NoError(t, err)
}
