package eval

import (
	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

// Evaluator is the interpreter nucleus: an environment stack, the
// THROWN/RUNNING error state, the type and error-code registries and a
// recursion-depth guard. It implements Context so the builtins package
// can drive it without this package ever importing builtins back.
//
// Every special form beyond the five cases Eval dispatches on directly
// — var, const, set, case, the \ and \\ lambda/macro builders, :, eval,
// throw/try/catch/finally, arithmetic and comparison — lives in package
// builtins as an ordinary external function bound into the root frame
// at startup (spec 9design note: "Implementers may instead hard-code
// them as first-class special forms; the observable semantics are
// identical" — this implementation takes the bindable-external route,
// keeping Eval itself to exactly the five cases spec 4.F enumerates).
type Evaluator struct {
	state    runtime.ErrorState
	errCodes *runtime.ErrorCodeRegistry
	types    *value.Registry
	stack    *CallStack
	top      *runtime.Frame
	features map[string]bool
}

// New creates an Evaluator with a fresh root frame.
func New(types *value.Registry, errCodes *runtime.ErrorCodeRegistry, maxStackDepth int, features map[string]bool) *Evaluator {
	if features == nil {
		features = map[string]bool{}
	}
	return &Evaluator{
		errCodes: errCodes,
		types:    types,
		stack:    NewCallStack(maxStackDepth),
		top:      runtime.NewRoot(),
		features: features,
	}
}

func (e *Evaluator) Env() *runtime.Frame               { return e.top }
func (e *Evaluator) Types() *value.Registry            { return e.types }
func (e *Evaluator) ErrorCodes() *runtime.ErrorCodeRegistry { return e.errCodes }
func (e *Evaluator) CallStack() *CallStack              { return e.stack }

func (e *Evaluator) Throw(code int, msg string)       { e.state.Throw(code, msg) }
func (e *Evaluator) Clear()                           { e.state.Clear() }
func (e *Evaluator) Errstate() runtime.RunState        { return e.state.Errstate() }
func (e *Evaluator) Errno() int                        { return e.state.Errno() }
func (e *Evaluator) Errmsg() string                    { return e.state.Errmsg() }
func (e *Evaluator) LastErrno() int                     { return e.state.LastErrno() }
func (e *Evaluator) LastErrmsg() string                 { return e.state.LastErrmsg() }
func (e *Evaluator) Feature(name string) bool          { return e.features[name] }
func (e *Evaluator) MaxStackDepth() int                { return e.stack.MaxDepth() }
func (e *Evaluator) SetMaxStackDepth(n int)             { e.stack.SetMaxDepth(n) }

// PushEnv creates a fresh top frame (spec 4.D: push_env).
func (e *Evaluator) PushEnv() {
	e.top = e.top.Push()
}

// SetEnv replaces the current top frame outright. This backs the
// embedding surface's enter_env (spec 6), which needs to install an
// already-bifurcated frame rather than derive one from scratch the way
// PushEnv does.
func (e *Evaluator) SetEnv(top *runtime.Frame) {
	e.top = top
}

// PopEnv tears the top frame down (spec 4.D: pop_env).
func (e *Evaluator) PopEnv() error {
	popped, err := e.top.Pop()
	if err != nil {
		e.state.ThrowErr(err.(*interr.Error))
		return err
	}
	e.top = popped
	return nil
}

// throwf is a convenience that both raises the error into the
// interpreter state and returns the sentinel Eval should hand back.
func (e *Evaluator) throwf(err *interr.Error) value.Value {
	e.state.ThrowErr(err)
	return nil
}

// Eval dispatches on the kind of form, implementing spec 4.F exactly:
// self-evaluating kinds return unchanged, identifiers resolve through
// the environment stack, quote/backquote are handled structurally, and
// a list is an application.
func (e *Evaluator) Eval(form value.Value) value.Value {
	switch f := form.(type) {
	case nil:
		return nil
	case *value.Int, *value.Double, *value.String, *value.Lambda,
		*value.ExtFunc, *value.UserPtr, *value.EnvValue:
		return f
	case *value.Ident:
		v, err := e.top.Lookup(f.Name)
		if err != nil {
			return e.throwf(err.(*interr.Error))
		}
		return v
	case *value.Quote:
		return f.Inner
	case *value.Backquote:
		return e.evalBackquote(f.Inner)
	case *value.Pair:
		return e.evalApplication(f)
	default:
		return e.throwf(interr.New(interr.EEVAL, "unevaluable form"))
	}
}

// evalBackquote walks v, evaluating comma subforms and splicing their
// results in place while reconstructing everything else structurally
// (spec 4.F).
func (e *Evaluator) evalBackquote(v value.Value) value.Value {
	switch t := v.(type) {
	case *value.Comma:
		result := e.Eval(t.Inner)
		if e.state.FallThrough() {
			return nil
		}
		return result
	case *value.Pair:
		head := e.evalBackquote(t.Head)
		if e.state.FallThrough() {
			return nil
		}
		tail := e.evalBackquote(t.Tail)
		if e.state.FallThrough() {
			return nil
		}
		return value.NewPair(head, tail)
	default:
		return v
	}
}

// evalApplication implements spec 4.F's list-application bullet: the
// head is evaluated; the result must be a lambda or external function.
func (e *Evaluator) evalApplication(form *value.Pair) value.Value {
	head := e.Eval(form.Head)
	if e.state.FallThrough() {
		return nil
	}
	return e.Apply(head, form.Tail)
}

// Apply invokes a callable (already evaluated to a Lambda or ExtFunc)
// against an unevaluated argument-form list. It is exported on
// *Evaluator, not on Context, so only code holding the concrete
// Evaluator can invoke a callable value directly this way.
func (e *Evaluator) Apply(callee value.Value, argForms value.Value) value.Value {
	switch fn := callee.(type) {
	case *value.ExtFunc:
		out, err := fn.Fn(e, argForms)
		if err != nil {
			if ie, ok := err.(*interr.Error); ok {
				return e.throwf(ie)
			}
			return e.throwf(interr.New(interr.EEVAL, err.Error()))
		}
		return out
	case *value.Lambda:
		return e.applyLambda(fn, argForms)
	default:
		return e.throwf(interr.NotCallable(value.KindOf(callee).String()))
	}
}

// applyLambda implements spec 4.F's lambda-call bullet in full: a
// fresh frame bifurcated to the lambda's captured environment, caller-
// side argument evaluation when eval_args is set, pattern-directed
// parameter binding, sequential body evaluation, and an unconditional
// pop on every exit path.
func (e *Evaluator) applyLambda(fn *value.Lambda, argForms value.Value) value.Value {
	if err := e.stack.Enter(); err != nil {
		return e.throwf(err.(*interr.Error))
	}
	defer e.stack.Leave()

	caller := e.top
	captured, _ := fn.Env.(*runtime.Frame)
	call := caller.Enter(captured)
	e.top = call
	defer func() { e.top = caller }()

	args := argForms
	if fn.EvalArgs {
		args = e.evalArgList(argForms, caller)
		if e.state.FallThrough() {
			return nil
		}
	}

	if !Match(e.types, call, fn.Params, args, 0) {
		return e.throwf(interr.Newf(interr.EMATCH, "argument list does not match parameter pattern"))
	}

	body, ok := value.Slice(fn.Body)
	if !ok {
		return e.throwf(interr.New(interr.EEVAL, "malformed lambda body"))
	}
	var result value.Value
	for _, form := range body {
		result = e.Eval(form)
		if e.state.FallThrough() {
			return nil
		}
	}

	if !fn.EvalArgs {
		// Macro: re-evaluate the result in the caller's environment.
		e.top = caller
		result = e.Eval(result)
	}
	return result
}

// evalArgList evaluates every element of a proper argument-form list
// in env, stopping (and reporting THROWN) at the first fault.
func (e *Evaluator) evalArgList(forms value.Value, env *runtime.Frame) value.Value {
	elems, ok := value.Slice(forms)
	if !ok {
		e.throwf(interr.New(interr.EEVAL, "malformed argument list"))
		return nil
	}
	saved := e.top
	e.top = env
	defer func() { e.top = saved }()

	out := make([]value.Value, len(elems))
	for i, form := range elems {
		out[i] = e.Eval(form)
		if e.state.FallThrough() {
			return nil
		}
	}
	return value.List(out...)
}
