package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codezworl/spamshield/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s (commit %s, built %s)\n",
			version.ServiceName, version.Version, version.Commit, version.Date)
	},
}
