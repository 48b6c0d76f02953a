package builtins

import (
	"testing"

	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

func TestAddIntegers(t *testing.T) {
	e := newTestInterp(nil)
	got := read(t, e, list(id("+"), i(1), i(2)))
	if got.(*value.Int).V != 3 {
		t.Errorf("got %v", got)
	}
}

func TestAddPromotesToDouble(t *testing.T) {
	e := newTestInterp(nil)
	got := e.Eval(list(id("+"), i(1), d(2.0)))
	if e.Errstate() != runtime.Running {
		t.Fatal(e.Errmsg())
	}
	dv, ok := got.(*value.Double)
	if !ok || dv.V != 3.0 {
		t.Errorf("got %v", got)
	}
}

func TestAddOverflowRaisesEOVERFLOW(t *testing.T) {
	e := newTestInterp(nil)
	e.Eval(list(id("+"), i(2147483647), i(1)))
	if e.Errstate() != runtime.Thrown || e.Errno() != interr.EOVERFLOW {
		t.Fatalf("errno=%d state=%v", e.Errno(), e.Errstate())
	}
}

func TestSubUnary(t *testing.T) {
	e := newTestInterp(nil)
	got := read(t, e, list(id("-"), i(5)))
	if got.(*value.Int).V != -5 {
		t.Errorf("got %v", got)
	}
}

func TestSubUnaryNegateMinInt32RaisesEOVERFLOW(t *testing.T) {
	e := newTestInterp(nil)
	e.Eval(list(id("-"), i(-2147483648)))
	if e.Errstate() != runtime.Thrown || e.Errno() != interr.EOVERFLOW {
		t.Fatalf("errno=%d state=%v, want EOVERFLOW negating math.MinInt32", e.Errno(), e.Errstate())
	}
}

func TestDivisionByZero(t *testing.T) {
	e := newTestInterp(nil)
	e.Eval(list(id("/"), i(4), i(0)))
	if e.Errstate() != runtime.Thrown || e.Errno() != interr.EDIVZERO {
		t.Fatalf("errno=%d state=%v", e.Errno(), e.Errstate())
	}
}

func TestModuloByZero(t *testing.T) {
	e := newTestInterp(nil)
	e.Eval(list(id("%"), i(4), i(0)))
	if e.Errstate() != runtime.Thrown || e.Errno() != interr.EDIVZERO {
		t.Fatalf("errno=%d state=%v", e.Errno(), e.Errstate())
	}
}

func TestModuloRejectsDoubles(t *testing.T) {
	e := newTestInterp(nil)
	e.Eval(list(id("%"), d(4), i(2)))
	if e.Errstate() != runtime.Thrown || e.Errno() != interr.ETYPE {
		t.Fatalf("errno=%d state=%v", e.Errno(), e.Errstate())
	}
}

func TestMulAndFactorialChain(t *testing.T) {
	e := newTestInterp(nil)
	got := read(t, e, list(id("*"), i(3), i(4), i(5)))
	if got.(*value.Int).V != 60 {
		t.Errorf("got %v", got)
	}
}
