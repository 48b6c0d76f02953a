package builtins

import (
	"github.com/cheaxlang/cheax/internal/eval"
	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

// builtinPrepend implements `:` (spec 4.F/8: "(: 1 (: 2 ())) -> list (1 2)").
func builtinPrepend(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	forms, ok := value.Slice(args)
	if !ok || len(forms) != 2 {
		err := interr.WrongArgShape(":", len(forms))
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	head := ctx.Eval(forms[0])
	if ctx.Errstate() != runtime.Running {
		return nil, nil
	}
	tail := ctx.Eval(forms[1])
	if ctx.Errstate() != runtime.Running {
		return nil, nil
	}
	return value.NewPair(head, tail), nil
}
