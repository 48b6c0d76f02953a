package builtins

import (
	"github.com/cheaxlang/cheax/internal/eval"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

// newTestInterp builds an Evaluator with every builtin registered into
// its root frame, the shape every test in this package exercises
// end-to-end through Eval rather than calling an ExtFuncImpl directly.
func newTestInterp(features map[string]bool) *eval.Evaluator {
	e := eval.New(value.NewRegistry(), runtime.NewErrorCodeRegistry(), 0, features)
	Register(e.Env(), features)
	return e
}

func read(t interface{ Fatal(...interface{}) }, e *eval.Evaluator, form value.Value) value.Value {
	got := e.Eval(form)
	if e.Errstate() != runtime.Running {
		t.Fatal(e.Errmsg())
	}
	return got
}

func list(vs ...value.Value) value.Value { return value.List(vs...) }
func id(name string) *value.Ident        { return value.NewIdent(name) }
func i(n int32) *value.Int               { return value.NewInt(n) }
func d(n float64) *value.Double          { return value.NewDouble(n) }
