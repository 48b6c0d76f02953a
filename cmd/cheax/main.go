// Command cheax is the command-line entry point for the cheax
// interpreter: run, repl and version subcommands over the public
// pkg/cheax embedding surface.
package main

import (
	"fmt"
	"os"

	"github.com/cheaxlang/cheax/cmd/cheax/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
