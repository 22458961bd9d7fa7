package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ennam/apidog-sync/internal/compare"
	"github.com/ennam/apidog-sync/internal/schema"
)

// maxListedPaths caps how many drifted paths each side of the report
// prints before eliding the rest.
const maxListedPaths = 20

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the local schema with APIDOG Cloud",
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

			localFile, _ := cmd.Flags().GetString("local-file")
			if localFile == "" {
				localFile = filepath.Join(cfg.OutputDir, "openapi_schema_latest.json")
				if _, err := os.Stat(localFile); os.IsNotExist(err) {
					fmt.Fprintln(out, "No local schema found, exporting...")
					result, err := runExport(cmd, cfg, schema.FormatJSON, cfg.OutputDir, "", 2)
					if err != nil {
						return err
					}
					localFile = result.Path
				}
			}

			local, err := schema.Load(localFile)
			if err != nil {
				return err
			}

			cloudDoc, _, err := runPull(cmd, cfg, projectID, token, "")
			if err != nil {
				return err
			}

			renderReport(out, compare.Diff(local, cloudDoc))
			return nil
		},
	}

	cmd.Flags().String("project-id", "", "APIDOG project ID (or set APIDOG_PROJECT_ID)")
	cmd.Flags().String("token", "", "APIDOG API token (or set APIDOG_TOKEN)")
	cmd.Flags().String("local-file", "", "Local schema file (default: latest export)")
	return cmd
}

func renderReport(out io.Writer, report compare.Report) {
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(out, "\n"+rule)
	fmt.Fprintln(out, "SCHEMA COMPARISON REPORT")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Local endpoints:  %d\n", report.LocalTotal)
	fmt.Fprintf(out, "Cloud endpoints:  %d\n", report.CloudTotal)
	fmt.Fprintf(out, "Common endpoints: %d\n", report.Common)
	fmt.Fprintln(out, rule)

	if len(report.OnlyLocal) > 0 {
		color.Green("\n[+] Only in LOCAL (%d):", len(report.OnlyLocal))
		listPaths(out, report.OnlyLocal)
	}
	if len(report.OnlyCloud) > 0 {
		color.Yellow("\n[-] Only in CLOUD (%d):", len(report.OnlyCloud))
		listPaths(out, report.OnlyCloud)
	}
	if report.InSync() {
		color.Green("\nSchemas are in sync!")
	}

	fmt.Fprintln(out, "\n"+rule)
}

func listPaths(out io.Writer, paths []string) {
	for i, path := range paths {
		if i == maxListedPaths {
			fmt.Fprintf(out, "    ... and %d more\n", len(paths)-maxListedPaths)
			return
		}
		fmt.Fprintf(out, "    %s\n", path)
	}
}
