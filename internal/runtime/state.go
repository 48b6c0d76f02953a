package runtime

import "github.com/cheaxlang/cheax/internal/interr"

// RunState is the interpreter's two-state error machine (spec 4.G:
// "Interpreter state is either RUNNING or THROWN").
type RunState uint8

const (
	Running RunState = iota
	Thrown
)

// ErrorState holds the current RUNNING/THROWN status and, while
// THROWN, the error that caused it. Every Context embeds one.
//
// lastCode/lastMsg track the most recently thrown error independently
// of state/code/msg: try's catch-block evaluation (spec 4.G step 2)
// resets state to RUNNING before running a catch body, yet the worked
// example in spec 8 ("(try (throw EVALUE "bad") (catch EVALUE
// (error-code))) -> an error-code value ... EVALUE") requires
// error-code/error-msg to still see the error that was just caught.
// Clear (spec 4.G's `clear()`, reached through the host API and try)
// drops code/msg for errno
// purposes but deliberately leaves lastCode/lastMsg alone so the
// error-code/error-msg builtins keep working inside a catch block.
type ErrorState struct {
	state    RunState
	code     int
	msg      string
	lastCode int
	lastMsg  string
}

// Throw transitions to THROWN (spec 4.G: "throw(code, msg) sets state
// to THROWN (EAPI if code is zero)").
func (s *ErrorState) Throw(code int, msg string) {
	if code == 0 {
		code = interr.EAPI
		msg = "throw: error code must be non-zero"
	}
	s.state = Thrown
	s.code = code
	s.msg = msg
	s.lastCode = code
	s.lastMsg = msg
}

// Clear sets state to RUNNING and drops the message (spec 4.G: clear()).
func (s *ErrorState) Clear() {
	s.state = Running
	s.code = 0
	s.msg = ""
}

// LastErrno and LastErrmsg back the error-code/error-msg forms (spec
// 4.G), which describe the most recently thrown error even after try
// has reset state to RUNNING to evaluate a catch block.
func (s *ErrorState) LastErrno() int      { return s.lastCode }
func (s *ErrorState) LastErrmsg() string  { return s.lastMsg }

// Errstate inspects the state (spec 4.G: errstate()).
func (s *ErrorState) Errstate() RunState {
	return s.state
}

// Errno returns the current error code, or 0 if RUNNING.
func (s *ErrorState) Errno() int {
	if s.state != Thrown {
		return 0
	}
	return s.code
}

// Errmsg returns the current error message, or "" if RUNNING.
func (s *ErrorState) Errmsg() string {
	if s.state != Thrown {
		return ""
	}
	return s.msg
}

// FallThrough is the ft(pad) helper every sub-evaluation call site uses
// (spec 4.F: "the fall-through rule: after the call returns, the caller
// tests the interpreter state; if the state is THROWN, the caller
// immediately returns without examining the (invalid) result"). It
// reports whether the caller should stop and propagate.
func (s *ErrorState) FallThrough() bool {
	return s.state == Thrown
}

// ThrowErr raises an *interr.Error directly, preserving its code and
// message; a convenience over Throw for the common case where a
// component already built the structured error.
func (s *ErrorState) ThrowErr(err *interr.Error) {
	s.Throw(err.Code, err.Message)
}
