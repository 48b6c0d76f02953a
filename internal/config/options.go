// Package config loads the optional YAML document describing embedding
// defaults for a cheax handle (SPEC_FULL.md's Configuration section):
// max_stack_depth, the enabled optional-feature names, and a prelude
// file path. Absent a config file, hard-coded defaults apply.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/cheaxlang/cheax/internal/eval"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/cheax"
)

// Options is the config-file shape, loaded into a pkg/cheax.Options at
// startup by the cmd/cheax CLI (or any other embedding host that wants
// file-driven defaults instead of compiling them in).
type Options struct {
	// MaxStackDepth bounds recursion (spec 4.F). Zero selects
	// eval.DefaultMaxStackDepth.
	MaxStackDepth int `yaml:"max_stack_depth"`
	// Features lists the optional binding groups to enable (spec 6).
	Features []string `yaml:"features"`
	// Prelude names a text file of definitions to read and evaluate
	// into the global environment before the user's own program runs.
	// Loading it is ambient plumbing; the prelude's own content is out
	// of scope (spec.md §1).
	Prelude string `yaml:"prelude"`
}

// Default returns the hard-coded defaults used when no config file is
// present.
func Default() Options {
	return Options{MaxStackDepth: eval.DefaultMaxStackDepth}
}

// Load reads and parses the YAML document at path. A missing file is
// not an error: Default() is returned unchanged, since a config file is
// always optional.
func Load(path string) (Options, error) {
	opts := Default()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, nil
	}
	if err != nil {
		return opts, err
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, err
	}
	if opts.MaxStackDepth <= 0 {
		opts.MaxStackDepth = eval.DefaultMaxStackDepth
	}
	return opts, nil
}

// ToHandleOptions translates the config-file shape into the
// pkg/cheax.Options Init expects.
func (o Options) ToHandleOptions() cheax.Options {
	return cheax.Options{MaxStackDepth: o.MaxStackDepth, Features: o.Features}
}

// ApplyPrelude reads every top-level form out of o.Prelude and
// evaluates each into h's global environment, stopping at the first
// fault (a read error or a THROWN evaluation). A blank Prelude is a
// no-op.
func ApplyPrelude(h *cheax.Handle, o Options) error {
	if o.Prelude == "" {
		return nil
	}
	data, err := os.ReadFile(o.Prelude)
	if err != nil {
		return fmt.Errorf("loading prelude %s: %w", o.Prelude, err)
	}
	forms := h.ReadAllString(string(data))
	if h.Errstate() != runtime.Running {
		return fmt.Errorf("reading prelude %s: errno %d", o.Prelude, h.Errno())
	}
	for _, form := range forms {
		h.Eval(form)
		if h.Errstate() != runtime.Running {
			return fmt.Errorf("evaluating prelude %s: errno %d", o.Prelude, h.Errno())
		}
	}
	return nil
}
