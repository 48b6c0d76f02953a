package eval

import (
	"testing"

	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

func newEvaluator() *Evaluator {
	return New(value.NewRegistry(), runtime.NewErrorCodeRegistry(), 0, nil)
}

func TestSelfEvaluatingKinds(t *testing.T) {
	e := newEvaluator()
	for _, v := range []value.Value{nil, value.NewInt(1), value.NewDouble(1.5), value.NewString("hi")} {
		if got := e.Eval(v); e.Errstate() != runtime.Running {
			t.Fatalf("self-eval of %v raised %v", v, e.Errmsg())
		} else if value.KindOf(got) != value.KindOf(v) {
			t.Errorf("Eval(%v) = %v", v, got)
		}
	}
}

func TestIdentLookup(t *testing.T) {
	e := newEvaluator()
	_ = e.Env().Define("x", value.NewInt(9), 0)
	got := e.Eval(value.NewIdent("x"))
	if e.Errstate() != runtime.Running {
		t.Fatal(e.Errmsg())
	}
	if got.(*value.Int).V != 9 {
		t.Errorf("got %v", got)
	}
}

func TestIdentLookupMissRaisesNosym(t *testing.T) {
	e := newEvaluator()
	e.Eval(value.NewIdent("missing"))
	if e.Errstate() != runtime.Thrown {
		t.Fatal("expected THROWN for an unbound identifier")
	}
	if e.Errno() != interr.ENOSYM {
		t.Errorf("Errno() = %d, want ENOSYM", e.Errno())
	}
}

func TestQuoteReturnsInnerVerbatim(t *testing.T) {
	e := newEvaluator()
	inner := value.List(value.NewInt(1), value.NewIdent("x"))
	got := e.Eval(value.NewQuote(inner))
	if !e.types.Equals(got, inner) {
		t.Errorf("Eval(quote) = %v, want %v", got, inner)
	}
}

func TestBackquoteSplicesComma(t *testing.T) {
	e := newEvaluator()
	_ = e.Env().Define("x", value.NewInt(5), 0)
	form := value.List(value.NewIdent("a"), value.NewComma(value.NewIdent("x")))
	got := e.Eval(value.NewBackquote(form))
	if e.Errstate() != runtime.Running {
		t.Fatal(e.Errmsg())
	}
	vs, ok := value.Slice(got)
	if !ok || len(vs) != 2 {
		t.Fatalf("got %v", got)
	}
	if vs[0].(*value.Ident).Name != "a" {
		t.Errorf("elem 0 = %v", vs[0])
	}
	if vs[1].(*value.Int).V != 5 {
		t.Errorf("elem 1 = %v, want spliced 5", vs[1])
	}
}

func TestApplyExtFunc(t *testing.T) {
	e := newEvaluator()
	double := value.NewExtFunc("double", func(handle any, args value.Value) (value.Value, error) {
		ctx := handle.(Context)
		vs, _ := value.Slice(args)
		n := ctx.Eval(vs[0]).(*value.Int).V
		return value.NewInt(n * 2), nil
	})
	_ = e.Env().Define("double", double, 0)
	form := value.List(value.NewIdent("double"), value.NewInt(21))
	got := e.Eval(form)
	if e.Errstate() != runtime.Running {
		t.Fatal(e.Errmsg())
	}
	if got.(*value.Int).V != 42 {
		t.Errorf("got %v", got)
	}
}

func TestApplyLambdaBindsAndEvaluatesBody(t *testing.T) {
	e := newEvaluator()
	params := value.List(value.NewIdent("n"))
	body := value.List(value.NewIdent("n"))
	lambda := value.NewLambda(params, body, e.Env(), true)
	form := value.List(lambda, value.NewInt(7))
	got := e.Eval(form)
	if e.Errstate() != runtime.Running {
		t.Fatal(e.Errmsg())
	}
	if got.(*value.Int).V != 7 {
		t.Errorf("got %v", got)
	}
}

func TestApplyLambdaScopeDoesNotLeak(t *testing.T) {
	e := newEvaluator()
	params := value.List(value.NewIdent("n"))
	body := value.List(value.NewIdent("n"))
	lambda := value.NewLambda(params, body, e.Env(), true)
	form := value.List(lambda, value.NewInt(7))
	e.Eval(form)
	if e.Env().Has("n") {
		t.Fatal("parameter binding leaked into the caller's frame")
	}
}

func TestApplyNonCallableIsTypeError(t *testing.T) {
	e := newEvaluator()
	form := value.List(value.NewInt(1), value.NewInt(2))
	e.Eval(form)
	if e.Errstate() != runtime.Thrown {
		t.Fatal("expected THROWN applying a non-callable head")
	}
	if e.Errno() != interr.ETYPE {
		t.Errorf("Errno() = %d, want ETYPE", e.Errno())
	}
}

func TestMacroArgsUnevaluatedAndResultReevaluated(t *testing.T) {
	e := newEvaluator()
	_ = e.Env().Define("y", value.NewInt(3), 0)
	// (defmacro (form) form) body just returns its single unevaluated
	// argument form, which the call then re-evaluates in the caller's
	// environment — so passing the identifier y should yield 3, not the
	// identifier itself.
	params := value.List(value.NewIdent("form"))
	body := value.List(value.NewIdent("form"))
	macro := value.NewLambda(params, body, e.Env(), false)
	form := value.List(macro, value.NewIdent("y"))
	got := e.Eval(form)
	if e.Errstate() != runtime.Running {
		t.Fatal(e.Errmsg())
	}
	if got.(*value.Int).V != 3 {
		t.Errorf("got %v, want 3", got)
	}
}

// A self-recursive lambda (its body calls itself by looking itself up
// in its own captured environment) must trip ESTACK rather than
// recurse forever.
func TestApplyLambdaRecursionTripsStackOverflow(t *testing.T) {
	e := New(value.NewRegistry(), runtime.NewErrorCodeRegistry(), 8, nil)
	params := value.List(value.NewIdent("n"))
	body := value.List(value.List(value.NewIdent("self"), value.NewIdent("n")))
	self := value.NewLambda(params, body, e.Env(), true)
	if err := e.Env().Define("self", self, 0); err != nil {
		t.Fatal(err)
	}

	form := value.List(value.NewIdent("self"), value.NewInt(0))
	e.Eval(form)
	if e.Errstate() != runtime.Thrown {
		t.Fatal("expected unbounded recursion to raise ESTACK")
	}
	if e.Errno() != interr.ESTACK {
		t.Errorf("Errno() = %d, want ESTACK", e.Errno())
	}
}
