package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cheaxlang/cheax/internal/config"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/cheax"
	"github.com/cheaxlang/cheax/pkg/value"
)

var (
	evalExpr   string
	dumpForms  bool
	configPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a cheax script or expression",
	Long: `Read and evaluate a cheax program from a file or an inline
expression, printing the result of the final top-level form.

Examples:
  # Run a script file
  cheax run script.chx

  # Evaluate an inline expression
  cheax run -e "(+ 1 2)"

  # Print each top-level form as read, before evaluating it
  cheax run --dump script.chx`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from a file")
	runCmd.Flags().BoolVar(&dumpForms, "dump", false, "print each parsed form before evaluating it")
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML embedding-options file")
}

func runScript(_ *cobra.Command, args []string) error {
	var input, filename string
	if evalExpr != "" {
		input = evalExpr
		filename = "<eval>"
	} else if len(args) == 1 {
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	} else {
		return fmt.Errorf("either provide a file path or use -e for inline code")
	}

	opts, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	h := cheax.Init(opts.ToHandleOptions())
	if err := config.ApplyPrelude(h, opts); err != nil {
		return err
	}

	forms := h.ReadAllString(input)
	if h.Errstate() != runtime.Running {
		return fmt.Errorf("parsing %s failed: %s (errno %d)", filename, h.Errmsg(), h.Errno())
	}

	if dumpForms {
		fmt.Println("forms:")
		for _, f := range forms {
			fmt.Println(" ", h.PrintString(f))
		}
		fmt.Println()
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[running %s, %d top-level form(s)]\n", filename, len(forms))
	}

	var result value.Value
	evaluated := false
	for _, f := range forms {
		result = h.Eval(f)
		if h.Errstate() != runtime.Running {
			exitWithError("%s: %s (errno %d)", filename, h.Errmsg(), h.Errno())
		}
		evaluated = true
	}
	if evaluated {
		fmt.Println(h.PrintString(result))
	}
	return nil
}
