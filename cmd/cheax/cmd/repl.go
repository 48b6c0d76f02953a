package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cheaxlang/cheax/internal/config"
	"github.com/cheaxlang/cheax/internal/reader"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/cheax"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive read-eval-print loop over stdin",
	Long: `Read one form at a time from stdin, evaluate it against a
persistent handle, and print the result or the errno/message of a
THROWN state.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl drives the public embedding surface one form at a time. It
// contains no core-interpreter logic of its own; everything it does
// goes through pkg/cheax, the same surface any other embedding host
// would use.
func runRepl(_ *cobra.Command, _ []string) error {
	opts, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	h := cheax.Init(opts.ToHandleOptions())
	if err := config.ApplyPrelude(h, opts); err != nil {
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("cheax> ")
	for scanner.Scan() {
		line := scanner.Text()
		r := reader.New(line)
		form, ok, rerr := r.Read()
		if rerr != nil {
			fmt.Fprintf(os.Stderr, "read error: %v\n", rerr)
			fmt.Print("cheax> ")
			continue
		}
		if ok {
			result := h.Eval(form)
			if h.Errstate() != runtime.Running {
				fmt.Printf("error: %s (errno %d)\n", h.Errmsg(), h.Errno())
				h.Clear()
			} else {
				fmt.Println(h.PrintString(result))
			}
		}
		fmt.Print("cheax> ")
	}
	fmt.Println()
	return scanner.Err()
}
