package eval

import (
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

// Context is the facade an external function (spec 3.1's {callable
// pointer, display name}) sees of the interpreter. Defining it here,
// rather than in package builtins, lets builtins import eval for the
// type without eval ever importing builtins back — the host facade
// (package cheax) is what wires a concrete *Evaluator into the
// builtins it installs, exactly the "Context interface pattern to
// avoid import cycles between the evaluator and external functions"
// design note calls for.
type Context interface {
	// Eval evaluates form in the current top frame (spec 4.F). On
	// fault it sets THROWN and returns nil; callers apply the
	// fall-through rule via Errstate/FallThrough.
	Eval(form value.Value) value.Value

	// Env returns the current top frame.
	Env() *runtime.Frame
	// PushEnv creates a fresh top frame (spec 4.D: push_env).
	PushEnv()
	// PopEnv tears the top frame down (spec 4.D: pop_env).
	PopEnv() error

	Types() *value.Registry
	ErrorCodes() *runtime.ErrorCodeRegistry

	Throw(code int, msg string)
	Clear()
	Errstate() runtime.RunState
	Errno() int
	Errmsg() string
	// LastErrno/LastErrmsg describe the most recently thrown error even
	// after Clear (e.g. try's catch-block evaluation), for error-code
	// and error-msg.
	LastErrno() int
	LastErrmsg() string

	// Feature reports whether an optional binding group (spec 6) was
	// enabled at startup.
	Feature(name string) bool

	// MaxStackDepth and SetMaxStackDepth back the set-max-stack-depth
	// optional feature (spec 6).
	MaxStackDepth() int
	SetMaxStackDepth(n int)
}
