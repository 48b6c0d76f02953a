// Package cmd implements the cheax command-line tool: run, repl and
// version subcommands driving the public pkg/cheax embedding surface.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "cheax",
	Short: "cheax - an embeddable Lisp-family expression language",
	Long: `cheax is a small embeddable interpreter: a value model, an
environment stack, a reader, an evaluator and a pattern matcher driving
throw/try/catch/finally error flow.

This binary exercises the public embedding surface (pkg/cheax) from the
command line.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("cheax version {{.Version}}\ncommit %s\nbuilt %s\n", GitCommit, BuildDate))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
