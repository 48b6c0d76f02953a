package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cheaxlang/cheax/pkg/cheax"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the CLI build version alongside the embedded pkg/cheax library version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cheax version %s\n", Version)
		fmt.Printf("Git Commit: %s\n", GitCommit)
		fmt.Printf("Build Date: %s\n", BuildDate)
		fmt.Printf("Library version: %s\n", cheax.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
