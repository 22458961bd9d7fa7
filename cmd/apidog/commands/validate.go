package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ennam/apidog-sync/internal/schema"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an OpenAPI schema file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				file = filepath.Join(cfg.OutputDir, "openapi_schema_latest.json")
			}
			if _, err := os.Stat(file); err != nil {
				return fmt.Errorf("schema file not found: %s", file)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Validating: %s\n", file)

			doc, err := schema.ValidateFile(file)
			if err != nil {
				return err
			}

			printStats(cmd.OutOrStdout(), doc)
			color.Green("Schema is valid!")
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "", "Schema file to validate (default: latest export)")
	return cmd
}
