// Package exporter fetches the application's OpenAPI schema from its
// schema endpoint and writes it to the output directory as both a
// timestamped snapshot and a "latest" file.
package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/ennam/apidog-sync/internal/schema"
)

// Generator is stamped into info.x-generated-by on every export.
const Generator = "apidog-sync"

const timestampLayout = "20060102_150405"

// Exporter fetches schemas from a running application.
type Exporter struct {
	// BaseURL is the root of the application serving the schema,
	// e.g. http://localhost:8000.
	BaseURL string
	// Endpoint is the schema path, e.g. /api/schema/.
	Endpoint string
	// Client is the HTTP client used for the fetch.
	Client *http.Client
	// Now allows tests to pin the timestamp; defaults to time.Now.
	Now func() time.Time
}

// New creates an Exporter against the given application URL.
func New(baseURL, endpoint string, client *http.Client) *Exporter {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Exporter{
		BaseURL:  strings.TrimSuffix(baseURL, "/"),
		Endpoint: endpoint,
		Client:   client,
		Now:      time.Now,
	}
}

// Options controls where and how an export is written.
type Options struct {
	Format    schema.Format
	OutputDir string
	// Filename overrides the timestamped name when set.
	Filename string
	Indent   int
}

// Result describes a completed export.
type Result struct {
	Path       string
	LatestPath string
	Document   schema.Document
}

// Fetch retrieves the schema document from the application.
func (e *Exporter) Fetch(ctx context.Context) (schema.Document, error) {
	url := e.BaseURL + e.Endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := e.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schema from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch schema from %s: status %d", url, resp.StatusCode)
	}

	var doc schema.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema response: %w", err)
	}
	return doc, nil
}

// Export fetches the schema, annotates it with generation metadata and
// writes the timestamped and latest files, creating the output
// directory as needed.
func (e *Exporter) Export(ctx context.Context, opts Options) (*Result, error) {
	if opts.Format == "" {
		opts.Format = schema.FormatJSON
	}
	if opts.Indent <= 0 {
		opts.Indent = 2
	}

	doc, err := e.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	now := e.now()
	doc.Annotate(now, Generator)

	filename := opts.Filename
	if filename == "" {
		filename = fmt.Sprintf("openapi_schema_%s.%s", now.Format(timestampLayout), opts.Format)
	}
	path := filepath.Join(opts.OutputDir, filename)
	if err := doc.Write(path, opts.Format, opts.Indent); err != nil {
		return nil, err
	}

	latestPath := filepath.Join(opts.OutputDir, fmt.Sprintf("openapi_schema_latest.%s", opts.Format))
	if err := doc.Write(latestPath, opts.Format, opts.Indent); err != nil {
		return nil, err
	}

	return &Result{Path: path, LatestPath: latestPath, Document: doc}, nil
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}
