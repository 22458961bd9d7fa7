package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ennam/apidog-sync/internal/cloud"
	"github.com/ennam/apidog-sync/internal/schema"
)

func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "Push the local schema to APIDOG Cloud",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			flagID, _ := cmd.Flags().GetString("project-id")
			flagToken, _ := cmd.Flags().GetString("token")
			projectID, token, err := cfg.Credentials(flagID, flagToken)
			if err != nil {
				printCredentialsHelp(out)
				return err
			}

			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				fmt.Fprintln(out, "No schema file specified, exporting...")
				result, err := runExport(cmd, cfg, schema.FormatJSON, cfg.OutputDir, "", 2)
				if err != nil {
					return err
				}
				file = result.Path
			}

			fmt.Fprintf(out, "Pushing to APIDOG project %s...\n", projectID)

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("failed to read schema file: %w", err)
			}

			client := cloud.NewClient(cfg.APIBaseURL, token, cfg.APIVersion, cfg.Timeout())
			if err := client.ImportOpenAPI(cmd.Context(), projectID, string(data)); err != nil {
				return fmt.Errorf("push failed: %w", err)
			}

			color.Green("Successfully pushed to APIDOG!")
			return nil
		},
	}

	cmd.Flags().String("project-id", "", "APIDOG project ID (or set APIDOG_PROJECT_ID)")
	cmd.Flags().String("token", "", "APIDOG API token (or set APIDOG_TOKEN)")
	cmd.Flags().StringP("file", "f", "", "Schema file to push (default: export new)")
	return cmd
}

// printCredentialsHelp explains the three ways to supply credentials.
func printCredentialsHelp(out io.Writer) {
	color.Yellow("\nAPIDOG credentials required:")
	fmt.Fprintln(out, "  Option 1 - Config file (.apidog.yaml):")
	fmt.Fprintln(out, "    project_id: your-project-id")
	fmt.Fprintln(out, "    token: your-api-token")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "  Option 2 - Environment variables:")
	fmt.Fprintln(out, "    export APIDOG_PROJECT_ID=\"your-project-id\"")
	fmt.Fprintln(out, "    export APIDOG_TOKEN=\"your-api-token\"")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "  Option 3 - Command flags:")
	fmt.Fprintln(out, "    --project-id=xxx --token=xxx")
}
