package reader

import (
	"testing"

	"github.com/cheaxlang/cheax/pkg/value"
)

func TestReadAtom(t *testing.T) {
	v, ok, err := New("42").Read()
	if err != nil || !ok {
		t.Fatalf("Read() = %v, %v, %v", v, ok, err)
	}
	if v.(*value.Int).V != 42 {
		t.Errorf("got %v", v)
	}
}

func TestReadEmptyListIsNil(t *testing.T) {
	v, ok, err := New("()").Read()
	if err != nil || !ok {
		t.Fatalf("Read() = %v, %v, %v", v, ok, err)
	}
	if v != nil {
		t.Errorf("Read(()) = %v, want nil", v)
	}
}

func TestReadEOFReturnsNotOk(t *testing.T) {
	v, ok, err := New("   ").Read()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatalf("Read() on empty input reported ok, got %v", v)
	}
}

func TestReadProperList(t *testing.T) {
	v, ok, err := New("(1 2 3)").Read()
	if err != nil || !ok {
		t.Fatal(err)
	}
	vs, ok := value.Slice(v)
	if !ok || len(vs) != 3 {
		t.Fatalf("Slice() = %v, %v", vs, ok)
	}
	for i, want := range []int32{1, 2, 3} {
		if vs[i].(*value.Int).V != want {
			t.Errorf("elem %d = %v, want %d", i, vs[i], want)
		}
	}
}

func TestReadDottedPair(t *testing.T) {
	v, ok, err := New("(1 . 2)").Read()
	if err != nil || !ok {
		t.Fatal(err)
	}
	p, isPair := v.(*value.Pair)
	if !isPair {
		t.Fatalf("got %T", v)
	}
	if p.Head.(*value.Int).V != 1 || p.Tail.(*value.Int).V != 2 {
		t.Errorf("got (%v . %v)", p.Head, p.Tail)
	}
}

func TestReadDottedRestTail(t *testing.T) {
	v, ok, err := New("(1 2 . 3)").Read()
	if err != nil || !ok {
		t.Fatal(err)
	}
	outer := v.(*value.Pair)
	inner := outer.Tail.(*value.Pair)
	if outer.Head.(*value.Int).V != 1 {
		t.Errorf("outer head = %v", outer.Head)
	}
	if inner.Head.(*value.Int).V != 2 {
		t.Errorf("inner head = %v", inner.Head)
	}
	if inner.Tail.(*value.Int).V != 3 {
		t.Errorf("tail = %v, want 3", inner.Tail)
	}
}

func TestReadQuoteFamily(t *testing.T) {
	tests := []struct {
		src   string
		check func(value.Value) bool
	}{
		{"'1", func(v value.Value) bool { _, ok := v.(*value.Quote); return ok }},
		{"`1", func(v value.Value) bool { _, ok := v.(*value.Backquote); return ok }},
		{",1", func(v value.Value) bool { _, ok := v.(*value.Comma); return ok }},
	}
	for _, tt := range tests {
		v, ok, err := New(tt.src).Read()
		if err != nil || !ok {
			t.Fatalf("%s: %v, %v, %v", tt.src, v, ok, err)
		}
		if !tt.check(v) {
			t.Errorf("%s: got %T", tt.src, v)
		}
	}
}

func TestReadUnterminatedListIsEOFError(t *testing.T) {
	if _, _, err := New("(1 2").Read(); err == nil {
		t.Fatal("expected an EOF error for an unterminated list")
	}
}

func TestReadUnexpectedCloseParenIsReadError(t *testing.T) {
	if _, _, err := New(")").Read(); err == nil {
		t.Fatal("expected a read error for a stray )")
	}
}

func TestReadMultipleTopLevelForms(t *testing.T) {
	r := New("1 2 3")
	var got []int32
	for {
		v, ok, err := r.Read()
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			break
		}
		got = append(got, v.(*value.Int).V)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("got %v", got)
	}
}

func TestReadNestedListAndString(t *testing.T) {
	v, ok, err := New(`(a "hi" (b c))`).Read()
	if err != nil || !ok {
		t.Fatal(err)
	}
	vs, _ := value.Slice(v)
	if len(vs) != 3 {
		t.Fatalf("got %d elements", len(vs))
	}
	if vs[1].(*value.String).String() != "hi" {
		t.Errorf("string elem = %v", vs[1])
	}
	inner, ok := value.Slice(vs[2])
	if !ok || len(inner) != 2 {
		t.Fatalf("nested list = %v, %v", inner, ok)
	}
}
