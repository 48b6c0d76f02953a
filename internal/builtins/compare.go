package builtins

import (
	"github.com/cheaxlang/cheax/internal/eval"
	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

// compareOp applies pred pairwise over consecutive evaluated arguments,
// the conventional chained-comparison reading of `(< a b c)`.
func compareOp(handle any, args value.Value, pred func(a, b operand) bool) (value.Value, error) {
	ctx := handle.(eval.Context)
	ops, ok := evalNumericArgs(ctx, args, "")
	if !ok {
		return nil, nil
	}
	if len(ops) < 2 {
		err := interr.WrongArgShape("comparison", len(ops))
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	for i := 1; i < len(ops); i++ {
		if !pred(ops[i-1], ops[i]) {
			return nil, nil // false, represented as nil (spec's boolean convention: nil is false)
		}
	}
	return value.NewInt(1), nil
}

func builtinLt(handle any, args value.Value) (value.Value, error) {
	return compareOp(handle, args, func(a, b operand) bool { return a.asDouble() < b.asDouble() })
}

func builtinGt(handle any, args value.Value) (value.Value, error) {
	return compareOp(handle, args, func(a, b operand) bool { return a.asDouble() > b.asDouble() })
}

func builtinLe(handle any, args value.Value) (value.Value, error) {
	return compareOp(handle, args, func(a, b operand) bool { return a.asDouble() <= b.asDouble() })
}

func builtinGe(handle any, args value.Value) (value.Value, error) {
	return compareOp(handle, args, func(a, b operand) bool { return a.asDouble() >= b.asDouble() })
}

func builtinNumEq(handle any, args value.Value) (value.Value, error) {
	return compareOp(handle, args, func(a, b operand) bool { return a.asDouble() == b.asDouble() })
}

// builtinEq is the general structural `=`, delegating non-numeric pairs
// to the type registry's equals dispatch (spec 4.A).
func builtinEq(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	forms, ok := value.Slice(args)
	if !ok || len(forms) < 2 {
		err := interr.WrongArgShape("=", len(forms))
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	vals := make([]value.Value, 0, len(forms))
	for _, form := range forms {
		v := ctx.Eval(form)
		if ctx.Errstate() != runtime.Running {
			return nil, nil
		}
		vals = append(vals, v)
	}
	for i := 1; i < len(vals); i++ {
		if !ctx.Types().Equals(vals[i-1], vals[i]) {
			return nil, nil
		}
	}
	return value.NewInt(1), nil
}
