package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newEnvConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env-config",
		Short: "Write the per-environment configuration file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Generating environment configuration...")

			if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			configFile := filepath.Join(cfg.OutputDir, "apidog_environments.json")
			data, err := json.MarshalIndent(cfg.Environments, "", "  ")
			if err != nil {
				return fmt.Errorf("error marshaling environments: %w", err)
			}
			if err := os.WriteFile(configFile, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", configFile, err)
			}

			color.Green("Config saved to: %s", configFile)
			return nil
		},
	}
}
