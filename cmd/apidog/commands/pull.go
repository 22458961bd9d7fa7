package commands

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ennam/apidog-sync/internal/cloud"
	"github.com/ennam/apidog-sync/internal/config"
	"github.com/ennam/apidog-sync/internal/schema"
)

func newPullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Pull the project schema from APIDOG Cloud",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			flagID, _ := cmd.Flags().GetString("project-id")
			flagToken, _ := cmd.Flags().GetString("token")
			projectID, token, err := cfg.Credentials(flagID, flagToken)
			if err != nil {
				printCredentialsHelp(cmd.OutOrStdout())
				return err
			}

			outputFile, _ := cmd.Flags().GetString("output")
			doc, _, err := runPull(cmd, cfg, projectID, token, outputFile)
			if err != nil {
				return err
			}

			printStats(cmd.OutOrStdout(), doc)
			return nil
		},
	}

	cmd.Flags().String("project-id", "", "APIDOG project ID (or set APIDOG_PROJECT_ID)")
	cmd.Flags().String("token", "", "APIDOG API token (or set APIDOG_TOKEN)")
	cmd.Flags().StringP("output", "o", "", "Output file path")
	return cmd
}

// runPull fetches the cloud schema and writes it to outputFile
// (timestamp-named under the output dir when empty). compare reuses the
// returned document directly.
func runPull(cmd *cobra.Command, cfg *config.Config, projectID, token, outputFile string) (schema.Document, string, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "Pulling from APIDOG project %s...\n", projectID)

	client := cloud.NewClient(cfg.APIBaseURL, token, cfg.APIVersion, cfg.Timeout())
	doc, err := client.ExportOpenAPI(cmd.Context(), projectID)
	if err != nil {
		return nil, "", fmt.Errorf("pull failed: %w", err)
	}

	if outputFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputFile = filepath.Join(cfg.OutputDir, fmt.Sprintf("openapi_from_apidog_%s.json", timestamp))
	}
	if err := doc.Write(outputFile, schema.FormatJSON, 2); err != nil {
		return nil, "", err
	}

	color.Green("Schema pulled to: %s", outputFile)
	return doc, outputFile, nil
}
