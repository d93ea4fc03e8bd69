package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spamshield",
	Short: "Rule-based spam detection service",
	Long: `SpamShield classifies short messages and emails as spam or legitimate
using a weighted rule catalog. It serves verdicts over an HTTP API or as
an SMTP content filter, and can score text directly from the command line.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("SpamShield - rule-based spam detection")
		fmt.Println("Use 'spamshield --help' for usage information")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}
