package runtime

import (
	"testing"

	"github.com/cheaxlang/cheax/internal/interr"
)

func TestThrowAndClear(t *testing.T) {
	var s ErrorState
	if s.Errstate() != Running {
		t.Fatal("fresh state should be RUNNING")
	}
	s.Throw(interr.EVALUE, "bad value")
	if s.Errstate() != Thrown {
		t.Fatal("expected THROWN after Throw")
	}
	if s.Errno() != interr.EVALUE {
		t.Errorf("Errno() = %d", s.Errno())
	}
	if s.Errmsg() != "bad value" {
		t.Errorf("Errmsg() = %q", s.Errmsg())
	}
	s.Clear()
	if s.Errstate() != Running {
		t.Fatal("expected RUNNING after Clear")
	}
	if s.Errno() != 0 || s.Errmsg() != "" {
		t.Error("Clear() should drop code and message")
	}
}

func TestThrowZeroCodeIsAPIError(t *testing.T) {
	var s ErrorState
	s.Throw(0, "ignored")
	if s.Errno() != interr.EAPI {
		t.Errorf("throw(0, ...) should raise EAPI, got %d", s.Errno())
	}
}

func TestFallThrough(t *testing.T) {
	var s ErrorState
	if s.FallThrough() {
		t.Fatal("RUNNING state should not fall through")
	}
	s.Throw(interr.ETYPE, "")
	if !s.FallThrough() {
		t.Fatal("THROWN state should fall through")
	}
}

func TestThrowErrPreservesCodeAndMessage(t *testing.T) {
	var s ErrorState
	s.ThrowErr(interr.New(interr.ENOSYM, "undefined symbol: x"))
	if s.Errno() != interr.ENOSYM || s.Errmsg() != "undefined symbol: x" {
		t.Errorf("ThrowErr did not preserve code/message: %d %q", s.Errno(), s.Errmsg())
	}
}
