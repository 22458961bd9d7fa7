// Package commands implements the apidog CLI subcommands.
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ennam/apidog-sync/internal/config"
	"github.com/ennam/apidog-sync/internal/schema"
)

// VersionInfo carries the build-time version variables from main.
type VersionInfo struct {
	Version   string
	GitCommit string
	BuildTime string
}

// NewRootCmd builds the apidog command tree.
func NewRootCmd(version VersionInfo) *cobra.Command {
	root := &cobra.Command{
		Use:           "apidog",
		Short:         "Export, validate and sync OpenAPI schemas with APIDOG Cloud",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "Path to config file (default .apidog.yaml if present)")

	root.AddCommand(
		newInitCmd(),
		newExportCmd(),
		newValidateCmd(),
		newPushCmd(),
		newPullCmd(),
		newCompareCmd(),
		newEnvConfigCmd(),
		newDocsCmd(),
		newVersionCmd(version),
	)
	return root
}

func newVersionCmd(version VersionInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "apidog %s (commit: %s, built: %s)\n",
				version.Version, version.GitCommit, version.BuildTime)
		},
	}
}

// loadConfig resolves the configuration for a command invocation.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path)
}

// printStats writes the schema statistics block shown by export,
// validate and pull.
func printStats(out io.Writer, doc schema.Document) {
	fmt.Fprintln(out, "\nSchema Statistics:")
	fmt.Fprintf(out, "  API Version: %s\n", doc.Version())
	fmt.Fprintf(out, "  Endpoints: %d\n", len(doc.Paths()))
	fmt.Fprintf(out, "  Components: %d\n", doc.ComponentCount())
}
