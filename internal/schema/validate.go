package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	_ "embed"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Minimal structural schema for OpenAPI 3 documents. Full OpenAPI
// metaschema validation is out of scope; this catches the shapes that
// break an APIDOG import (wrong version string, malformed info, path
// keys without a leading slash).
//
//go:embed openapi3_min.schema.json
var openapiMinSchema []byte

// requiredKeys are the top-level keys every OpenAPI 3 document must carry.
var requiredKeys = []string{"openapi", "info", "paths"}

// ErrMissingRequiredKey reports an absent top-level key.
var ErrMissingRequiredKey = errors.New("missing required key")

// Validate checks the document for the required top-level keys and runs
// the structural JSON-Schema check. The returned error names every
// missing key, not just the first.
func Validate(doc Document) error {
	var missing []string
	for _, key := range requiredKeys {
		if _, ok := doc[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequiredKey, strings.Join(missing, ", "))
	}

	sch, err := compileMinSchema()
	if err != nil {
		return err
	}

	// The validator expects encoding/json value types, so YAML-loaded
	// documents are round-tripped before the structural check.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("failed to normalize document: %w", err)
	}
	if err := sch.Validate(instance); err != nil {
		return fmt.Errorf("schema structure invalid: %w", err)
	}
	return nil
}

// ValidateFile loads and validates a schema file in one step.
func ValidateFile(path string) (Document, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return doc, err
	}
	return doc, nil
}

func compileMinSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource("openapi3_min.schema.json", bytes.NewReader(openapiMinSchema)); err != nil {
		return nil, fmt.Errorf("failed to load embedded schema: %w", err)
	}
	sch, err := compiler.Compile("openapi3_min.schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile embedded schema: %w", err)
	}
	return sch, nil
}
