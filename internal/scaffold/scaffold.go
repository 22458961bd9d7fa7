// Package scaffold writes the project files created by `apidog init`:
// build/compose helpers at the project root, the environments template
// and README inside the output directory, and an APIDOG block in
// .gitignore.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed templates
var templates embed.FS

// gitignoreMarker guards the .gitignore block so repeated init runs do
// not duplicate it.
const gitignoreMarker = "# APIDOG generated files"

// Report lists what Init did, for command output.
type Report struct {
	Created []string
	Skipped []string
	Updated []string
}

// Init scaffolds the working directory. Root-level files go to
// projectRoot, environment and README files into outputDir. Existing
// files are skipped unless force is set; the .gitignore block is
// appended at most once regardless of force.
func Init(projectRoot, outputDir string, force bool) (*Report, error) {
	report := &Report{}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	files := []struct {
		template string
		dest     string
	}{
		{"apidog.yaml", filepath.Join(projectRoot, ".apidog.yaml")},
		{"Makefile.apidog", filepath.Join(projectRoot, "Makefile.apidog")},
		{"docker-compose.apidog.yml", filepath.Join(projectRoot, "docker-compose.apidog.yml")},
		{"environments.json", filepath.Join(outputDir, "environments.json")},
	}

	for _, f := range files {
		data, err := templates.ReadFile("templates/" + f.template)
		if err != nil {
			return nil, fmt.Errorf("template not found: %s: %w", f.template, err)
		}

		if _, err := os.Stat(f.dest); err == nil && !force {
			report.Skipped = append(report.Skipped, f.dest)
			continue
		}
		if err := os.WriteFile(f.dest, data, 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", f.dest, err)
		}
		report.Created = append(report.Created, f.dest)
	}

	if err := appendGitignore(projectRoot, report); err != nil {
		return nil, err
	}

	readmePath := filepath.Join(outputDir, "README.md")
	if _, err := os.Stat(readmePath); os.IsNotExist(err) || force {
		if err := os.WriteFile(readmePath, []byte(readmeContent), 0644); err != nil {
			return nil, fmt.Errorf("failed to write README: %w", err)
		}
		report.Created = append(report.Created, readmePath)
	} else {
		report.Skipped = append(report.Skipped, readmePath)
	}

	return report, nil
}

func appendGitignore(projectRoot string, report *Report) error {
	rules, err := templates.ReadFile("templates/gitignore.apidog")
	if err != nil {
		return fmt.Errorf("template not found: gitignore.apidog: %w", err)
	}

	gitignorePath := filepath.Join(projectRoot, ".gitignore")
	existing, err := os.ReadFile(gitignorePath)
	switch {
	case err == nil:
		if strings.Contains(string(existing), gitignoreMarker) {
			report.Skipped = append(report.Skipped, gitignorePath)
			return nil
		}
		f, err := os.OpenFile(gitignorePath, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open .gitignore: %w", err)
		}
		defer f.Close()
		if _, err := fmt.Fprintf(f, "\n%s", rules); err != nil {
			return fmt.Errorf("failed to update .gitignore: %w", err)
		}
		report.Updated = append(report.Updated, gitignorePath)
	case os.IsNotExist(err):
		if err := os.WriteFile(gitignorePath, rules, 0644); err != nil {
			return fmt.Errorf("failed to write .gitignore: %w", err)
		}
		report.Created = append(report.Created, gitignorePath)
	default:
		return fmt.Errorf("failed to read .gitignore: %w", err)
	}
	return nil
}

const readmeContent = `# APIDOG Integration

This directory contains APIDOG-related files for API documentation and testing.

## Directory Structure

` + "```" + `
apidog/
├── README.md                       # This file
├── environments.json               # Environment configurations
├── openapi_schema_latest.json      # Latest exported schema (gitignored)
├── openapi_schema_*.json           # Timestamped exports (gitignored)
└── openapi_from_apidog_*.json      # Pulled from cloud (gitignored)
` + "```" + `

## Quick Commands

` + "```bash" + `
# Export schema
apidog export

# Push to APIDOG Cloud
apidog push

# Pull from APIDOG Cloud
apidog pull

# Compare local vs cloud
apidog compare
` + "```" + `
`
