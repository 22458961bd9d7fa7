package main

import (
	"fmt"
	"os"

	"github.com/ennam/apidog-sync/cmd/apidog/commands"
)

// Version info for the apidog CLI
// These variables are injected at build time via ldflags
var (
	// Version is the current version of the apidog CLI
	Version = "dev"

	// BuildTime is the time at which the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit that was compiled
	GitCommit = "unknown"
)

func main() {
	root := commands.NewRootCmd(commands.VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	})
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
