package builtins

import (
	"github.com/cheaxlang/cheax/internal/eval"
	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

// defineByPattern backs both var and const: evaluate the value form
// once, then run it through the matcher against pattern in the current
// top frame (spec component E: the matcher "underlies variable binding
// and case analysis" — var/const reuse it rather than requiring pattern
// to be a bare identifier).
func defineByPattern(handle any, args value.Value, flags runtime.Flags) (value.Value, error) {
	ctx := handle.(eval.Context)
	forms, ok := value.Slice(args)
	if !ok || len(forms) != 2 {
		err := interr.WrongArgShape("var/const", len(forms))
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	v := ctx.Eval(forms[1])
	if ctx.Errstate() != runtime.Running {
		return nil, nil
	}
	if !eval.Match(ctx.Types(), ctx.Env(), forms[0], v, flags) {
		ctx.Throw(interr.EMATCH, "binding pattern did not match the value")
		return nil, nil
	}
	return v, nil
}

func builtinVar(handle any, args value.Value) (value.Value, error) {
	return defineByPattern(handle, args, 0)
}

func builtinConst(handle any, args value.Value) (value.Value, error) {
	return defineByPattern(handle, args, runtime.FlagReadonly)
}

// builtinSet implements `set` (spec 4.D: assign — "EREADONLY if the
// binding is read-only ... otherwise updates the stored value").
func builtinSet(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	forms, ok := value.Slice(args)
	if !ok || len(forms) != 2 {
		err := interr.WrongArgShape("set", len(forms))
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	ident, ok := forms[0].(*value.Ident)
	if !ok {
		ctx.Throw(interr.ETYPE, "set: first argument must be an identifier")
		return nil, nil
	}
	v := ctx.Eval(forms[1])
	if ctx.Errstate() != runtime.Running {
		return nil, nil
	}
	if err := ctx.Env().Assign(ident.Name, v); err != nil {
		ie := err.(*interr.Error)
		ctx.Throw(ie.Code, ie.Message)
		return nil, nil
	}
	return v, nil
}

// builtinCase implements `case` (spec 8: "(case 3 (1 'a) (2 'b) (x (:
// 'other (: x ())))) -> list (other 3)"): evaluate the subject once,
// then try each clause's pattern top-to-bottom, first match wins.
func builtinCase(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	forms, ok := value.Slice(args)
	if !ok || len(forms) < 1 {
		err := interr.WrongArgShape("case", len(forms))
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	subject := ctx.Eval(forms[0])
	if ctx.Errstate() != runtime.Running {
		return nil, nil
	}
	for _, clauseForm := range forms[1:] {
		clause, ok := value.Slice(clauseForm)
		if !ok || len(clause) < 1 {
			ctx.Throw(interr.EEVAL, "case: malformed clause")
			return nil, nil
		}
		if !eval.Match(ctx.Types(), ctx.Env(), clause[0], subject, 0) {
			continue
		}
		var result value.Value
		for _, bodyForm := range clause[1:] {
			result = ctx.Eval(bodyForm)
			if ctx.Errstate() != runtime.Running {
				return nil, nil
			}
		}
		return result, nil
	}
	ctx.Throw(interr.EMATCH, "case: no clause matched the subject")
	return nil, nil
}

// builtinEvalForm implements the `eval` special form (spec 4.F list of
// recognised forms): its one argument is evaluated to produce a value,
// which is then evaluated a second time.
func builtinEvalForm(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	forms, ok := value.Slice(args)
	if !ok || len(forms) != 1 {
		err := interr.WrongArgShape("eval", len(forms))
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	form := ctx.Eval(forms[0])
	if ctx.Errstate() != runtime.Running {
		return nil, nil
	}
	return ctx.Eval(form), nil
}

// makeLambdaBuiltin backs both \ (function, evalArgs true) and \\
// (macro, evalArgs false): the first form is the parameter pattern, the
// rest is the body, captured against the defining environment.
func makeLambdaBuiltin(evalArgs bool) value.ExtFuncImpl {
	return func(handle any, args value.Value) (value.Value, error) {
		ctx := handle.(eval.Context)
		forms, ok := value.Slice(args)
		if !ok || len(forms) < 1 {
			err := interr.WrongArgShape("\\", len(forms))
			ctx.Throw(err.Code, err.Message)
			return nil, nil
		}
		params := forms[0]
		body := value.List(forms[1:]...)
		return value.NewLambda(params, body, ctx.Env(), evalArgs), nil
	}
}
