package builtins

import (
	"testing"

	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

func TestVarDefinesOrdinaryBinding(t *testing.T) {
	e := newTestInterp(nil)
	read(t, e, list(id("var"), id("x"), i(5)))
	got := read(t, e, id("x"))
	if got.(*value.Int).V != 5 {
		t.Errorf("got %v", got)
	}
	if err := e.Env().Assign("x", i(6)); err != nil {
		t.Fatalf("expected var binding to be writable, got %v", err)
	}
}

func TestConstDefinesReadonlyBinding(t *testing.T) {
	e := newTestInterp(nil)
	read(t, e, list(id("const"), id("x"), i(1)))
	e.Eval(list(id("set"), id("x"), i(2)))
	if e.Errstate() != runtime.Thrown || e.Errno() != interr.EREADONLY {
		t.Fatalf("errno=%d state=%v", e.Errno(), e.Errstate())
	}
	got, err := e.Env().Lookup("x")
	if err != nil || got.(*value.Int).V != 1 {
		t.Fatalf("x should remain 1, got %v, %v", got, err)
	}
}

func TestSetUpdatesExistingBinding(t *testing.T) {
	e := newTestInterp(nil)
	read(t, e, list(id("var"), id("x"), i(1)))
	read(t, e, list(id("set"), id("x"), i(9)))
	got := read(t, e, id("x"))
	if got.(*value.Int).V != 9 {
		t.Errorf("got %v", got)
	}
}

func TestCaseFirstMatchWins(t *testing.T) {
	e := newTestInterp(nil)
	form := list(id("case"), i(3),
		list(i(1), value.NewQuote(id("a"))),
		list(i(2), value.NewQuote(id("b"))),
		list(id("x"), list(id(":"), value.NewQuote(id("other")), list(id(":"), id("x"), nil))),
	)
	got := read(t, e, form)
	vs, ok := value.Slice(got)
	if !ok || len(vs) != 2 {
		t.Fatalf("got %v", got)
	}
	if vs[0].(*value.Ident).Name != "other" || vs[1].(*value.Int).V != 3 {
		t.Errorf("got %v", vs)
	}
}

func TestCaseNoMatchRaisesEMATCH(t *testing.T) {
	e := newTestInterp(nil)
	e.Eval(list(id("case"), i(3), list(i(1), i(1))))
	if e.Errstate() != runtime.Thrown || e.Errno() != interr.EMATCH {
		t.Fatalf("errno=%d state=%v", e.Errno(), e.Errstate())
	}
}

func TestLambdaFunctionEvaluatesArgs(t *testing.T) {
	e := newTestInterp(nil)
	lambda := list(id("\\"), list(id("n")), list(id("+"), id("n"), i(1)))
	got := read(t, e, list(lambda, i(41)))
	if got.(*value.Int).V != 42 {
		t.Errorf("got %v", got)
	}
}

func TestMacroLeavesArgsUnevaluated(t *testing.T) {
	e := newTestInterp(nil)
	read(t, e, list(id("var"), id("y"), i(7)))
	macro := list(id("\\\\"), list(id("form")), id("form"))
	got := read(t, e, list(macro, id("y")))
	if got.(*value.Int).V != 7 {
		t.Errorf("got %v", got)
	}
}

func TestEvalFormEvaluatesTwice(t *testing.T) {
	e := newTestInterp(nil)
	read(t, e, list(id("var"), id("z"), i(3)))
	// (eval (quote z)) should first evaluate (quote z) to get the
	// identifier z, then evaluate that identifier to get 3.
	got := read(t, e, list(id("eval"), value.NewQuote(id("z"))))
	if got.(*value.Int).V != 3 {
		t.Errorf("got %v", got)
	}
}

func TestFactorialViaCaseAndRecursion(t *testing.T) {
	e := newTestInterp(nil)
	fac := list(id("\\"), list(id("n")),
		list(id("case"), id("n"),
			list(i(0), i(1)),
			list(id("k"), list(id("*"), id("k"), list(id("fac"), list(id("-"), id("k"), i(1))))),
		),
	)
	read(t, e, list(id("const"), id("fac"), fac))
	got := read(t, e, list(id("fac"), i(5)))
	if got.(*value.Int).V != 120 {
		t.Errorf("got %v", got)
	}
}
