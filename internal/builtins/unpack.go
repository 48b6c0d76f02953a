// Package builtins supplies the external functions bound into a fresh
// interpreter's root frame at startup: arithmetic, comparison, list
// operations, the variable/lambda/case/prepend/eval forms, and the
// throw/try/catch/finally error-flow forms (spec 4.F/4.G/4.H). Every
// function here is an ordinary value.ExtFunc driven through an
// eval.Context, which is how the design note's "bindable external
// callback" choice is realized instead of hard-coding these as
// evaluator syntax.
package builtins

import (
	"github.com/cheaxlang/cheax/internal/eval"
	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

// Unpack evaluates args (an unevaluated argument-form list) against
// format, the shared helper spec 4.H describes: one directive per
// expected argument, drawn from `i` (integer), `d` (double), `s`
// (string), `.` (any), `f!` (file handle), `?` (everything after this
// point is optional) and `*` (gather the rest, evaluated, as one list
// — must be the final directive).
//
// ok is false if the call should abort: either the format didn't
// match (arity/type mismatch, which Unpack itself reports via
// ctx.Throw) or a sub-evaluation already raised THROWN, in which case
// ctx's state already carries that fault and vals is nil. Every
// caller follows the same pattern:
//
//	vals, ok := builtins.Unpack(ctx, args, "ii")
//	if !ok {
//	    return nil, nil
//	}
//	defer builtins.Release(vals)
func Unpack(ctx eval.Context, args value.Value, format string) (vals []value.Value, ok bool) {
	forms, isProper := value.Slice(args)
	if !isProper {
		ctx.Throw(interr.EMATCH, "argument list is not a proper list")
		return nil, false
	}

	var out []value.Value
	optional := false
	idx := 0
	for i := 0; i < len(format); i++ {
		switch format[i] {
		case '?':
			optional = true
			continue
		case '*':
			rest := make([]value.Value, 0, len(forms)-idx)
			for ; idx < len(forms); idx++ {
				v := ctx.Eval(forms[idx])
				if ctx.Errstate() != runtime.Running {
					Release(out)
					return nil, false
				}
				rest = append(rest, value.Ref(v))
			}
			out = append(out, value.List(rest...))
			continue
		}

		directive := format[i]
		fileHandle := false
		if directive == 'f' && i+1 < len(format) && format[i+1] == '!' {
			fileHandle = true
			i++
		}

		if idx >= len(forms) {
			if optional {
				out = append(out, nil)
				continue
			}
			Release(out)
			err := interr.WrongArgShape(format, len(forms))
			ctx.Throw(err.Code, err.Message)
			return nil, false
		}

		v := ctx.Eval(forms[idx])
		if ctx.Errstate() != runtime.Running {
			Release(out)
			return nil, false
		}
		if !checkDirective(directive, fileHandle, v) {
			Release(out)
			err := interr.WrongArgType(idx+1, directiveName(directive, fileHandle), value.KindOf(v).String())
			ctx.Throw(err.Code, err.Message)
			return nil, false
		}
		out = append(out, value.Ref(v))
		idx++
	}

	if idx < len(forms) {
		Release(out)
		err := interr.WrongArgShape(format, len(forms))
		ctx.Throw(err.Code, err.Message)
		return nil, false
	}
	return out, true
}

// Release unpins every value Unpack pinned, mirroring spec 4.H: "all
// unpacked arguments are pinned for the duration of the call and
// unpinned on return."
func Release(vals []value.Value) {
	for _, v := range vals {
		value.Unref(v)
	}
}

func checkDirective(directive byte, fileHandle bool, v value.Value) bool {
	switch directive {
	case 'i':
		_, ok := v.(*value.Int)
		return ok
	case 'd':
		_, ok := v.(*value.Double)
		return ok
	case 's':
		_, ok := v.(*value.String)
		return ok
	case '.':
		return true
	case 'f':
		if !fileHandle {
			return false
		}
		_, ok := v.(*value.UserPtr)
		return ok
	default:
		return false
	}
}

func directiveName(directive byte, fileHandle bool) string {
	switch directive {
	case 'i':
		return "integer"
	case 'd':
		return "double"
	case 's':
		return "string"
	case '.':
		return "any"
	case 'f':
		if fileHandle {
			return "file handle"
		}
		return "?"
	default:
		return "?"
	}
}
