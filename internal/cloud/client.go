// Package cloud implements the APIDOG Cloud HTTP API used for schema
// synchronization: import-openapi (push) and export-openapi (pull).
// Each call is a single POST with bearer-token auth; there are no
// retries.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ennam/apidog-sync/internal/schema"
)

const (
	// DefaultBaseURL is the production APIDOG Cloud API root.
	DefaultBaseURL = "https://api.apidog.com/v1"

	// DefaultAPIVersion is sent as X-Apidog-Api-Version on every call.
	DefaultAPIVersion = "2024-03-28"

	// bodyExcerptLen caps how much of an error response body is carried
	// into the returned error.
	bodyExcerptLen = 500
)

// Client talks to the APIDOG Cloud API.
type Client struct {
	BaseURL    string
	Token      string
	APIVersion string
	HTTPClient *http.Client
}

// NewClient creates a client with the given credentials. Zero values
// fall back to the production defaults and a 60s timeout.
func NewClient(baseURL, token, apiVersion string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		Token:      token,
		APIVersion: apiVersion,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// ImportOpenAPI pushes a schema document to the cloud project. The
// schema text is sent verbatim inside the import payload.
func (c *Client) ImportOpenAPI(ctx context.Context, projectID, schemaText string) error {
	if projectID == "" || c.Token == "" {
		return ErrMissingCredentials
	}

	payload := map[string]any{
		"input": map[string]any{"data": schemaText},
		"options": map[string]any{
			"endpointOverwriteBehavior":     "MERGE_KEEP_NEWER",
			"schemaOverwriteBehavior":       "MERGE_KEEP_NEWER",
			"updateFolderOfChangedEndpoint": true,
		},
	}

	url := fmt.Sprintf("%s/projects/%s/import-openapi", c.BaseURL, projectID)
	if _, err := c.post(ctx, url, payload); err != nil {
		return err
	}
	return nil
}

// ExportOpenAPI pulls the project's schema from the cloud and returns
// the decoded document.
func (c *Client) ExportOpenAPI(ctx context.Context, projectID string) (schema.Document, error) {
	if projectID == "" || c.Token == "" {
		return nil, ErrMissingCredentials
	}

	payload := map[string]any{
		"scope": map[string]any{"type": "ALL"},
		"options": map[string]any{
			"includeApidogExtensionProperties": false,
			"addFoldersToTags":                 false,
		},
		"oasVersion":   "3.0",
		"exportFormat": "JSON",
	}

	url := fmt.Sprintf("%s/projects/%s/export-openapi", c.BaseURL, projectID)
	body, err := c.post(ctx, url, payload)
	if err != nil {
		return nil, err
	}

	var doc schema.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse cloud schema: %w", err)
	}
	return doc, nil
}

func (c *Client) post(ctx context.Context, url string, payload map[string]any) ([]byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error serializing request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("X-Apidog-Api-Version", c.APIVersion)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp.StatusCode, body)
	}
	return body, nil
}

// statusError maps an APIDOG Cloud response code to a sentinel error,
// carrying an excerpt of the response body for diagnostics.
func statusError(code int, body []byte) error {
	excerpt := string(body)
	if len(excerpt) > bodyExcerptLen {
		excerpt = excerpt[:bodyExcerptLen]
	}

	switch {
	case code == http.StatusUnauthorized:
		return fmt.Errorf("%w (status %d)", ErrUnauthorized, code)
	case code == http.StatusForbidden:
		return fmt.Errorf("%w (status %d)", ErrForbidden, code)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w (status %d)", ErrProjectNotFound, code)
	case code == http.StatusConflict:
		return fmt.Errorf("%w (status %d)", ErrVersionConflict, code)
	case code >= 500:
		return fmt.Errorf("%w (status %d): %s", ErrServerError, code, excerpt)
	default:
		return fmt.Errorf("APIDOG Cloud returned status %d: %s", code, excerpt)
	}
}
