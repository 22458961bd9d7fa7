// Package config resolves tool settings from, in order of precedence,
// command-line flags, an optional project config file, APIDOG_-prefixed
// environment variables and built-in defaults. The resolved Config is
// immutable; it is built once in main and passed down.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
	env "github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the project config file looked up in the working
// directory when no --config flag is given.
const DefaultFileName = ".apidog.yaml"

// ErrMissingCredentials indicates that no project id or token could be
// resolved from any configuration layer.
var ErrMissingCredentials = errors.New("APIDOG credentials required (set APIDOG_PROJECT_ID and APIDOG_TOKEN, add them to .apidog.yaml, or pass --project-id/--token)")

// Environment describes one target environment for env-config output.
type Environment struct {
	Name      string            `json:"name" yaml:"name"`
	BaseURL   string            `json:"base_url" yaml:"base_url"`
	Variables map[string]string `json:"variables" yaml:"variables"`
}

// Config holds the resolved tool configuration.
// See the .apidog.yaml written by `apidog init` for file-level keys.
type Config struct {
	ProjectID      string `env:"PROJECT_ID" yaml:"project_id"`
	Token          string `env:"TOKEN" yaml:"token"`
	OutputDir      string `env:"OUTPUT_DIR" envDefault:"apidog" yaml:"output_dir"`
	SchemaBaseURL  string `env:"SCHEMA_BASE_URL" envDefault:"http://localhost:8000" yaml:"schema_base_url"`
	SchemaEndpoint string `env:"SCHEMA_ENDPOINT" envDefault:"/api/schema/" yaml:"schema_endpoint"`
	APIBaseURL     string `env:"API_BASE_URL" envDefault:"https://api.apidog.com/v1" yaml:"api_base_url"`
	APIVersion     string `env:"API_VERSION" envDefault:"2024-03-28" yaml:"api_version"`
	TimeoutSeconds int    `env:"TIMEOUT" envDefault:"60" yaml:"timeout_seconds"`

	// Environments is file-only; caarlos0/env skips untagged fields.
	Environments map[string]Environment `yaml:"environments"`
}

// Load builds the configuration. filePath may be empty, in which case
// DefaultFileName is used when present; a missing default file is not an
// error, a missing explicit file is.
func Load(filePath string) (*Config, error) {
	var base Config
	if err := env.ParseWithOptions(&base, env.Options{Prefix: "APIDOG_"}); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	explicit := filePath != ""
	if filePath == "" {
		filePath = DefaultFileName
	}

	data, err := os.ReadFile(filePath)
	switch {
	case err == nil:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", filePath, err)
		}
		// File values win over env values; mergo only fills fields the
		// file left at their zero value.
		if err := mergo.Merge(&fileCfg, base); err != nil {
			return nil, fmt.Errorf("failed to merge configuration layers: %w", err)
		}
		base = fileCfg
	case os.IsNotExist(err) && !explicit:
		// No project file, env + defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", filePath, err)
	}

	if base.Environments == nil {
		base.Environments = DefaultEnvironments()
	}
	return &base, nil
}

// Timeout returns the HTTP timeout for cloud calls.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Credentials applies command-line overrides on top of the resolved
// configuration and reports whether both values are present.
func (c *Config) Credentials(projectID, token string) (string, string, error) {
	if projectID == "" {
		projectID = c.ProjectID
	}
	if token == "" {
		token = c.Token
	}
	if projectID == "" || token == "" {
		return "", "", ErrMissingCredentials
	}
	return projectID, token, nil
}

// DefaultEnvironments returns the environment set written by env-config
// when the config file defines none.
func DefaultEnvironments() map[string]Environment {
	return map[string]Environment{
		"local": {
			Name:      "Local Development",
			BaseURL:   "http://localhost:8000",
			Variables: map[string]string{"AUTH_TOKEN": "", "API_VERSION": "v1"},
		},
		"development": {
			Name:      "Development",
			BaseURL:   "",
			Variables: map[string]string{"AUTH_TOKEN": "", "API_VERSION": "v1"},
		},
		"staging": {
			Name:      "Staging",
			BaseURL:   "",
			Variables: map[string]string{"AUTH_TOKEN": "", "API_VERSION": "v1"},
		},
		"production": {
			Name:      "Production",
			BaseURL:   "",
			Variables: map[string]string{"AUTH_TOKEN": "", "API_VERSION": "v1"},
		},
	}
}
