// Package schema loads, writes and inspects OpenAPI 3 documents.
//
// Documents are treated as opaque JSON/YAML mappings; only the handful of
// fields needed for reporting (info.version, paths, components.schemas)
// are interpreted.
package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format identifies the on-disk serialization of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected json or yaml)", s)
	}
}

// Document is an OpenAPI schema document.
type Document map[string]any

// Load reads a document from path, choosing the parser by file extension.
// Files without a .yaml/.yml extension are parsed as JSON.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		// Decode into a plain map so nested mappings come back as
		// map[string]any, matching the JSON branch; yaml.v3 would
		// otherwise reuse the named Document type for nested maps.
		var m map[string]any
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse %s as YAML: %w", path, err)
		}
		doc = Document(m)
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s as JSON: %w", path, err)
		}
	}
	return doc, nil
}

// Write serializes the document to path. JSON output uses the given
// indent width; YAML output always uses 2-space indentation.
func (d Document) Write(path string, format Format, indent int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(file)
		encoder.SetIndent(2)
		if err := encoder.Encode(map[string]any(d)); err != nil {
			return fmt.Errorf("failed to write YAML: %w", err)
		}
		return encoder.Close()
	default:
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", strings.Repeat(" ", indent))
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(map[string]any(d)); err != nil {
			return fmt.Errorf("failed to write JSON: %w", err)
		}
		return nil
	}
}

// Info returns the info object, or an empty map when absent.
func (d Document) Info() map[string]any {
	if info, ok := d["info"].(map[string]any); ok {
		return info
	}
	return map[string]any{}
}

// Version returns info.version, or "N/A" when absent.
func (d Document) Version() string {
	if v, ok := d.Info()["version"].(string); ok && v != "" {
		return v
	}
	return "N/A"
}

// Paths returns the sorted list of endpoint paths.
func (d Document) Paths() []string {
	paths, ok := d["paths"].(map[string]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(paths))
	for p := range paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// ComponentCount returns the number of schemas under components.schemas.
func (d Document) ComponentCount() int {
	components, ok := d["components"].(map[string]any)
	if !ok {
		return 0
	}
	schemas, ok := components["schemas"].(map[string]any)
	if !ok {
		return 0
	}
	return len(schemas)
}

// Annotate stamps generation metadata into the info object.
func (d Document) Annotate(generatedAt time.Time, generator string) {
	info, ok := d["info"].(map[string]any)
	if !ok {
		info = map[string]any{}
		d["info"] = info
	}
	info["x-generated-at"] = generatedAt.Format(time.RFC3339)
	info["x-generated-by"] = generator
}
