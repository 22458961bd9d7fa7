package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ennam/apidog-sync/internal/scaffold"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the apidog directory with templates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			force, _ := cmd.Flags().GetBool("force")

			fmt.Fprintln(out, "Initializing APIDOG integration...")

			report, err := scaffold.Init(".", cfg.OutputDir, force)
			if err != nil {
				return err
			}

			for _, path := range report.Created {
				color.Green("  Created: %s", path)
			}
			for _, path := range report.Updated {
				color.Green("  Updated: %s", path)
			}
			for _, path := range report.Skipped {
				fmt.Fprintf(out, "  Skipped (exists): %s\n", path)
			}

			color.Green("\nAPIDOG initialization complete!")
			fmt.Fprintln(out, "\nNext steps:")
			fmt.Fprintln(out, "  1. Configure .apidog.yaml (or set APIDOG_PROJECT_ID and APIDOG_TOKEN)")
			fmt.Fprintln(out, "  2. Run: apidog export")
			fmt.Fprintln(out, "  3. Run: apidog push")
			return nil
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Overwrite existing files")
	return cmd
}
