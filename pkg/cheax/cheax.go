// Package cheax is the public embedding surface (spec section 6): a
// handle representing one independent interpreter instance. A host
// program creates a handle, populates its global environment with
// host-provided bindings, then drives a read/eval/print loop or
// evaluates pre-constructed expressions.
package cheax

import (
	"io"
	"strconv"
	"strings"

	"github.com/cheaxlang/cheax/internal/builtins"
	"github.com/cheaxlang/cheax/internal/eval"
	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/reader"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

// Version is the embedding surface's own version string, independent of
// any host application version (spec 6: "version() -> string").
const Version = "0.1.0"

// Options configures a freshly-created Handle. The zero value is valid
// and selects every default (spec 9's recommended finite default stack
// depth, no optional features enabled).
type Options struct {
	// MaxStackDepth bounds recursion (spec 4.F). Zero selects
	// eval.DefaultMaxStackDepth.
	MaxStackDepth int
	// Features lists the optional binding groups to enable (spec 6):
	// file-io, stdin, stdout, stderr, stdio, exit, gc,
	// set-max-stack-depth.
	Features []string
}

// Handle is one independent interpreter instance (spec 5: "two distinct
// handles are independent and may be driven from distinct threads
// without coordination"). The zero value is not usable; construct one
// with Init.
type Handle struct {
	ev    *eval.Evaluator
	types *value.Registry
}

// Init constructs a handle with a fresh global environment and the type
// and error-code registries seeded with the built-ins (spec 6: "init()
// -> handle").
func Init(opts Options) *Handle {
	features := make(map[string]bool, len(opts.Features))
	for _, name := range opts.Features {
		features[name] = true
	}
	types := value.NewRegistry()
	// error-code is a value-model variant in its own right (spec 3.1: "an
	// integer value whose type code is the 'error-code' alias of
	// integer"), registered once per handle so builtinErrorCode can tag
	// its result with it rather than returning a plain INT.
	if _, err := types.NewType("error-code", value.INT); err != nil {
		panic("cheax: error-code alias registration failed on a fresh registry: " + err.Error())
	}
	errCodes := runtime.NewErrorCodeRegistry()
	ev := eval.New(types, errCodes, opts.MaxStackDepth, features)
	builtins.Register(ev.Env(), features)
	return &Handle{ev: ev, types: types}
}

// Destroy releases a handle. cheax relies on the Go garbage collector
// for reclamation (spec 4.B design note), so Destroy has nothing to
// free; it exists so host code written against the conceptual
// init/destroy pairing (spec 6) has somewhere to put the call.
func (h *Handle) Destroy() {}

// Version reports the embedding surface's version (spec 6: "version()
// -> string").
func (h *Handle) Version() string { return Version }

// ReadString parses the next top-level form out of text (spec 6:
// "read_string(handle, text) -> value"). ok is false at clean
// end-of-input; a read fault throws into the handle's error state and
// returns ok == false, matching the fall-through convention the rest of
// the surface follows.
func (h *Handle) ReadString(text string) (v value.Value, ok bool) {
	r := reader.New(text)
	form, more, err := r.Read()
	if err != nil {
		h.throwReadErr(err)
		return nil, false
	}
	return form, more
}

// Read parses the next top-level form from everything remaining in r
// (spec 6: "read(handle, stream) -> value"). The reader has no
// incremental/streaming mode, so the whole stream is buffered first;
// this is adequate for the script-at-a-time embedding this library
// targets.
func (h *Handle) Read(r io.Reader) (v value.Value, ok bool) {
	data, err := io.ReadAll(r)
	if err != nil {
		h.ev.Throw(interr.EIO, err.Error())
		return nil, false
	}
	return h.ReadString(string(data))
}

// ReadAllString parses every top-level form out of text in order,
// stopping at the first read fault (which throws into the handle's
// state, same as ReadString). Unlike ReadString, which only ever looks
// at the start of text, this keeps one reader alive across the whole
// document — the shape a prelude file or a whole script buffer needs.
func (h *Handle) ReadAllString(text string) []value.Value {
	r := reader.New(text)
	var forms []value.Value
	for {
		form, more, err := r.Read()
		if err != nil {
			h.throwReadErr(err)
			return forms
		}
		if !more {
			return forms
		}
		forms = append(forms, form)
	}
}

// throwReadErr folds a Go error from the lexer/reader into the THROWN
// state at the read/eval boundary (SPEC_FULL.md's ambient-stack note:
// "the Go error return from a helper is how one component tells its
// caller to transition state").
func (h *Handle) throwReadErr(err error) {
	if ie, ok := err.(*interr.Error); ok {
		h.ev.Throw(ie.Code, ie.Error())
		return
	}
	h.ev.Throw(interr.EREAD, err.Error())
}

// Eval evaluates v in the handle's current top frame (spec 6: "eval(handle,
// value) -> value").
func (h *Handle) Eval(v value.Value) value.Value {
	return h.ev.Eval(v)
}

// Print renders v onto w using the type registry's dispatch table (spec
// 6: "print(handle, stream, value)").
func (h *Handle) Print(w io.Writer, v value.Value) {
	io.WriteString(w, h.types.Print(v))
}

// PrintString renders v the way Print would, returning the result
// instead of writing it, convenient for REPL echoing and tests.
func (h *Handle) PrintString(v value.Value) string {
	return h.types.Print(v)
}

// Def installs name in the current top frame (spec 6: "def(handle,
// name, value, flags)"; spec 4.D: define inserts into the top frame).
// Before any PushEnv/EnterEnv the top frame is the global one.
func (h *Handle) Def(name string, v value.Value, flags runtime.Flags) error {
	return h.ev.Env().Define(name, v, flags)
}

// Set assigns an existing binding (spec 6: "set(handle, name, value)").
func (h *Handle) Set(name string, v value.Value) error {
	return h.ev.Env().Assign(name, v)
}

// Get looks up name in the current environment (spec 6: "get(handle,
// name) -> value").
func (h *Handle) Get(name string) (value.Value, error) {
	return h.ev.Env().Lookup(name)
}

// PushEnv creates a fresh top frame (spec 6/4.D: push_env).
func (h *Handle) PushEnv() { h.ev.PushEnv() }

// EnterEnv creates a top frame bifurcated to env (spec 6/4.D:
// enter_env): lookups prefer env's chain but new defines land in the
// frame this call pushes. A nil env bifurcates to the handle's own
// current frame. The Evaluator only tracks one top-frame pointer, so
// EnterEnv replaces it directly rather than going through PushEnv.
func (h *Handle) EnterEnv(env *runtime.Frame) {
	if env == nil {
		env = h.ev.Env()
	}
	h.ev.SetEnv(h.ev.Env().Enter(env))
}

// PopEnv tears down the current top frame (spec 6/4.D: pop_env).
func (h *Handle) PopEnv() error { return h.ev.PopEnv() }

// Env exposes the current top frame as a first-class value (spec 3.1:
// "environment — first-class reference to an environment frame").
func (h *Handle) Env() *value.EnvValue {
	return value.NewEnvValue(h.ev.Env())
}

// DefMacro binds a host callback under name in the global frame (spec
// 6: "defmacro(handle, name, callback, user-data); callbacks receive
// the handle and the unevaluated argument list"). userData is folded
// into fn's closure by the caller, rather than threaded through
// separately, since Go closures already capture what a C-style
// void* user-data parameter exists to smuggle through.
func (h *Handle) DefMacro(name string, fn value.ExtFuncImpl) error {
	root := h.rootFrame()
	return root.Define(name, value.NewExtFunc(name, fn), 0)
}

// SyncInt binds name to host storage at addr (spec 6: "sync_int").
func (h *Handle) SyncInt(name string, addr *int32, flags runtime.Flags) error {
	return h.rootFrame().DefineSyncedInt(name, addr, flags)
}

// SyncFloat binds name to 32-bit host storage at addr (spec 6:
// "sync_float").
func (h *Handle) SyncFloat(name string, addr *float32, flags runtime.Flags) error {
	return h.rootFrame().DefineSyncedFloat32(name, addr, flags)
}

// SyncDouble binds name to 64-bit host storage at addr (spec 6:
// "sync_double").
func (h *Handle) SyncDouble(name string, addr *float64, flags runtime.Flags) error {
	return h.rootFrame().DefineSyncedFloat64(name, addr, flags)
}

// NewType registers name as a runtime alias of base (spec 6: "new_type(handle,
// name, base) -> code").
func (h *Handle) NewType(name string, base int) (int, error) {
	return h.types.NewType(name, base)
}

// FindType looks up a previously registered alias (spec 6: "find_type(handle,
// name) -> code").
func (h *Handle) FindType(name string) (int, bool) {
	return h.types.FindType(name)
}

// TypeOf returns v's attached type code (spec 6: "type_of(value) -> code").
func (h *Handle) TypeOf(v value.Value) int { return value.TypeOf(v) }

// ResolveType follows alias base pointers to a basic type code (spec 6:
// "resolve_type(handle, code) -> code").
func (h *Handle) ResolveType(code int) (int, error) {
	return h.types.Resolve(code)
}

// Throw raises an error into the handle's state (spec 6: "throw").
// EAPI and ENOMEM may not be thrown from the host side either; this
// mirrors the builtin-level restriction in internal/builtins so the
// embedding surface and the language see the same rule.
func (h *Handle) Throw(code int, msg string) {
	if code == interr.EAPI || code == interr.ENOMEM {
		h.ev.Throw(interr.EAPI, "throw: EAPI and ENOMEM are reserved for the host and allocator")
		return
	}
	h.ev.Throw(code, msg)
}

// Errno returns the current error's code, or zero if RUNNING (spec 6:
// "errno").
func (h *Handle) Errno() int { return h.ev.Errno() }

// Errmsg returns the current error's message, or "" if RUNNING (spec 6:
// "errmsg").
func (h *Handle) Errmsg() string { return h.ev.Errmsg() }

// Errstate reports RUNNING or THROWN (spec 6: "errstate").
func (h *Handle) Errstate() runtime.RunState { return h.ev.Errstate() }

// Clear resets state to RUNNING (spec 6: "clear").
func (h *Handle) Clear() { h.ev.Clear() }

// NewErrorCode allocates a user error code (spec 6: "new_error_code(name)
// -> code").
func (h *Handle) NewErrorCode(name string) int {
	return h.ev.ErrorCodes().NewErrorCode(name)
}

// Perror describes the most recently thrown error as "<prefix>: <name>
// (<code>) <msg>" (spec 6: "perror(prefix)"), reading the same
// survives-a-clear bookkeeping builtins.perror uses so a host can
// report an error from inside its own catch-equivalent logic.
func (h *Handle) Perror(prefix string) string {
	if h.ev.LastErrno() == 0 {
		return prefix + ": no error"
	}
	name := h.ev.ErrorCodes().Name(h.ev.LastErrno())
	if name == "" {
		name = "E" + strconv.Itoa(h.ev.LastErrno())
	}
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(": ")
	b.WriteString(name)
	b.WriteString(" (")
	b.WriteString(strconv.Itoa(h.ev.LastErrno()))
	b.WriteString(") ")
	b.WriteString(h.ev.LastErrmsg())
	return b.String()
}

// Features lists the optional binding groups enabled at Init (spec 6:
// "discoverable at runtime as a list via the features symbol").
func (h *Handle) Features() []string {
	v, err := h.rootFrame().Lookup("features")
	if err != nil {
		return nil
	}
	elems, _ := value.Slice(v)
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		if id, ok := e.(*value.Ident); ok {
			out = append(out, id.Name)
		}
	}
	return out
}

// rootFrame walks down to the bottom frame (spec 3.2: "global bindings
// live in the bottom frame"), since Evaluator only exposes the current
// top frame directly.
func (h *Handle) rootFrame() *runtime.Frame {
	f := h.ev.Env()
	for {
		below, err := f.Pop()
		if err != nil {
			return f
		}
		f = below
	}
}
