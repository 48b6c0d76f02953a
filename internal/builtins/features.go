package builtins

import (
	"fmt"
	"io"
	"os"

	"github.com/cheaxlang/cheax/internal/eval"
	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/pkg/value"
)

// writeStream backs both stdout and stderr: it unpacks one string
// argument and writes it verbatim (spec 1 marks byte-level I/O out of
// scope for the core; these two names are the minimal print surface
// spec.md §6's `stdout`/`stderr` features gate, per SPEC_FULL.md).
func writeStream(w io.Writer) value.ExtFuncImpl {
	return func(handle any, args value.Value) (value.Value, error) {
		ctx := handle.(eval.Context)
		vals, ok := Unpack(ctx, args, "s")
		if !ok {
			return nil, nil
		}
		defer Release(vals)
		fmt.Fprint(w, vals[0].(*value.String).String())
		return nil, nil
	}
}

// builtinExit backs the `exit` optional feature (spec 6): terminates
// the host process with the given status code.
func builtinExit(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	vals, ok := Unpack(ctx, args, "?i")
	if !ok {
		return nil, nil
	}
	code := 0
	if vals[0] != nil {
		code = int(vals[0].(*value.Int).V)
	}
	Release(vals)
	os.Exit(code)
	return nil, nil
}

// builtinGC backs the `gc` optional feature: forces a collection cycle
// and returns the current heap size in bytes. cheax relies on the Go
// runtime's GC (spec 9's design note on reclamation strategy), so this
// is a thin pass-through rather than a bespoke collector trigger.
func builtinGC(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	vals, ok := Unpack(ctx, args, "")
	if !ok {
		return nil, nil
	}
	Release(vals)
	runtimeGC()
	return value.NewInt(int32(heapBytes())), nil
}

// builtinSetMaxStackDepth backs the set-max-stack-depth optional
// feature (spec 6): `(set-max-stack-depth 4096)` reconfigures the
// evaluator's depth guard; called with no arguments it reports the
// current ceiling.
func builtinSetMaxStackDepth(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	vals, ok := Unpack(ctx, args, "?i")
	if !ok {
		return nil, nil
	}
	defer Release(vals)
	if vals[0] == nil {
		return value.NewInt(int32(ctx.MaxStackDepth())), nil
	}
	n := int(vals[0].(*value.Int).V)
	if n <= 0 {
		err := interr.WrongArgType(1, "positive integer", "non-positive integer")
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	ctx.SetMaxStackDepth(n)
	return value.NewInt(int32(n)), nil
}
