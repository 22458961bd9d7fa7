package commands

import (
	"fmt"
	"net/http"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ennam/apidog-sync/internal/config"
	"github.com/ennam/apidog-sync/internal/exporter"
	"github.com/ennam/apidog-sync/internal/schema"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the OpenAPI schema from the running application",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			formatStr, _ := cmd.Flags().GetString("format")
			format, err := schema.ParseFormat(formatStr)
			if err != nil {
				return err
			}

			outputDir, _ := cmd.Flags().GetString("output")
			if outputDir == "" {
				outputDir = cfg.OutputDir
			}
			filename, _ := cmd.Flags().GetString("filename")
			indent, _ := cmd.Flags().GetInt("indent")

			_, err = runExport(cmd, cfg, format, outputDir, filename, indent)
			return err
		},
	}

	cmd.Flags().StringP("format", "f", "json", "Output format (json or yaml)")
	cmd.Flags().StringP("output", "o", "", "Output directory (default from config)")
	cmd.Flags().String("filename", "", "Custom filename (default: timestamped)")
	cmd.Flags().Int("indent", 2, "JSON indentation")
	return cmd
}

// runExport performs a schema export and prints the result. push and
// compare call it when no local schema file is available.
func runExport(cmd *cobra.Command, cfg *config.Config, format schema.Format, outputDir, filename string, indent int) (*exporter.Result, error) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Fetching OpenAPI schema from %s%s...\n", cfg.SchemaBaseURL, cfg.SchemaEndpoint)

	exp := exporter.New(cfg.SchemaBaseURL, cfg.SchemaEndpoint, &http.Client{Timeout: cfg.Timeout()})
	result, err := exp.Export(cmd.Context(), exporter.Options{
		Format:    format,
		OutputDir: outputDir,
		Filename:  filename,
		Indent:    indent,
	})
	if err != nil {
		return nil, err
	}

	color.Green("Schema exported to: %s", result.Path)
	color.Green("Latest schema: %s", result.LatestPath)
	printStats(out, result.Document)
	return result, nil
}
