package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build-time variables, injected via ldflags:
//
//	go build -ldflags "-X github.com/toyinlola/coreiq/cmd.Version=1.0.0
//	  -X github.com/toyinlola/coreiq/cmd.Commit=$(git rev-parse --short HEAD)
//	  -X github.com/toyinlola/coreiq/cmd.BuildDate=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "coreiq %s\n", Version)
		fmt.Fprintf(w, "  commit:  %s\n", Commit)
		fmt.Fprintf(w, "  built:   %s\n", BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
