package builtins

import (
	"fmt"

	"github.com/cheaxlang/cheax/internal/eval"
	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

// builtinThrow implements `throw` (spec 4.G: "throw(code, msg) sets
// state to THROWN (EAPI if code is zero)"). EAPI and ENOMEM may not be
// thrown from user code (spec section 7); user-supplied codes other
// than those two are accepted as-is.
func builtinThrow(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	vals, ok := Unpack(ctx, args, "i?s")
	if !ok {
		return nil, nil
	}
	defer Release(vals)
	code := int(vals[0].(*value.Int).V)
	if code == interr.EAPI || code == interr.ENOMEM {
		ctx.Throw(interr.EAPI, "throw: EAPI and ENOMEM are reserved for the host and allocator")
		return nil, nil
	}
	msg := ""
	if vals[1] != nil {
		msg = vals[1].(*value.String).String()
	}
	ctx.Throw(code, msg)
	return nil, nil
}

// builtinTry implements `(try body catch* [finally])` per spec 4.G's
// four-step algorithm.
func builtinTry(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	forms, ok := value.Slice(args)
	if !ok || len(forms) < 1 {
		err := interr.WrongArgShape("try", len(forms))
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	body := forms[0]
	rest := forms[1:]

	var finallyForm value.Value
	var catches []value.Value
	for _, f := range rest {
		clause, ok := value.Slice(f)
		if !ok || len(clause) < 1 {
			ctx.Throw(interr.EEVAL, "try: malformed clause")
			return nil, nil
		}
		head, ok := clause[0].(*value.Ident)
		if ok && head.Name == "finally" {
			finallyForm = f
			continue
		}
		catches = append(catches, f)
	}

	// Step 1.
	result := ctx.Eval(body)

	// Step 2/3: on THROWN, reset to RUNNING and walk catch blocks.
	if ctx.Errstate() == runtime.Thrown {
		thrownCode := ctx.Errno()
		thrownMsg := ctx.Errmsg()
		matched := false
		ctx.Clear()
		for _, c := range catches {
			clause, _ := value.Slice(c)
			if len(clause) < 2 {
				ctx.Throw(interr.EEVAL, "try: malformed catch clause")
				return nil, nil
			}
			codesForm := clause[1]
			codesVal := ctx.Eval(codesForm)
			if ctx.Errstate() != runtime.Running {
				return nil, nil
			}
			if !codeMatches(codesVal, thrownCode) {
				continue
			}
			matched = true
			var r value.Value
			for _, bodyForm := range clause[2:] {
				r = ctx.Eval(bodyForm)
				if ctx.Errstate() != runtime.Running {
					break
				}
			}
			result = r
			break
		}
		if !matched {
			// No catch matched; restore the original throw (step 4 is
			// about to run finally, then the state below stays THROWN).
			ctx.Throw(thrownCode, thrownMsg)
		}
	}

	// Step 4: finally, if present, runs exactly once on every exit path.
	if finallyForm != nil {
		priorState := ctx.Errstate()
		priorCode := ctx.Errno()
		priorMsg := ctx.Errmsg()
		ctx.Clear()

		clause, _ := value.Slice(finallyForm)
		for _, f := range clause[1:] {
			ctx.Eval(f)
			if ctx.Errstate() != runtime.Running {
				// A throw inside finally replaces the prior outcome.
				return nil, nil
			}
		}
		if priorState == runtime.Thrown {
			ctx.Throw(priorCode, priorMsg)
			return nil, nil
		}
	}

	return result, nil
}

// codeMatches reports whether codesVal — a single error code or a
// proper list of codes — contains code (spec 4.G step 2).
func codeMatches(codesVal value.Value, code int) bool {
	if i, ok := codesVal.(*value.Int); ok {
		return int(i.V) == code
	}
	if vs, ok := value.Slice(codesVal); ok {
		for _, v := range vs {
			if i, ok := v.(*value.Int); ok && int(i.V) == code {
				return true
			}
		}
	}
	return false
}

// builtinErrorCode returns the current error's code as an error-code
// typed value (spec 4.G: "error-code / error-msg forms return the
// current error's code and message"; spec 3.1 defines an error code as
// "an integer value whose type code is the 'error-code' alias of
// integer"). The alias is registered once per handle at Init; a registry
// that never registered it (e.g. a bare test harness) falls back to a
// plain integer rather than failing.
func builtinErrorCode(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	code := value.NewInt(int32(ctx.LastErrno()))
	if t, ok := ctx.Types().FindType("error-code"); ok {
		return value.Retype(code, t), nil
	}
	return code, nil
}

func builtinErrorMsg(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	if ctx.LastErrno() == 0 {
		return nil, nil
	}
	return value.NewString(ctx.LastErrmsg()), nil
}

// builtinNewErrorCode implements new_error_code(name) (spec 4.G).
func builtinNewErrorCode(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	vals, ok := Unpack(ctx, args, "s")
	if !ok {
		return nil, nil
	}
	defer Release(vals)
	name := vals[0].(*value.String).String()
	return value.NewInt(int32(ctx.ErrorCodes().NewErrorCode(name))), nil
}

// builtinPerror prints "<prefix>: <name> (<code>) <msg>" describing the
// current error state, named after the spec's `perror(prefix)`.
func builtinPerror(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	vals, ok := Unpack(ctx, args, "s")
	if !ok {
		return nil, nil
	}
	defer Release(vals)
	prefix := vals[0].(*value.String).String()
	if ctx.LastErrno() == 0 {
		return value.NewString(fmt.Sprintf("%s: no error", prefix)), nil
	}
	name := ctx.ErrorCodes().Name(ctx.LastErrno())
	if name == "" {
		name = fmt.Sprintf("E%d", ctx.LastErrno())
	}
	return value.NewString(fmt.Sprintf("%s: %s (%d) %s", prefix, name, ctx.LastErrno(), ctx.LastErrmsg())), nil
}
