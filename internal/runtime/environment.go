// Package runtime implements the environment stack (spec 3.2/4.D) and the
// THROWN/RUNNING error-state machine (spec 4.G) that sit underneath the
// evaluator and the public embedding facade.
package runtime

import (
	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/pkg/value"
)

// Flags qualify a binding the way spec 3.2 describes: a set of
// independent bits rather than one of a fixed enum, so a symbol can be
// e.g. both READONLY and NODUMP.
type Flags uint8

const (
	FlagReadonly Flags = 1 << iota
	FlagSynced
	FlagNoDump
)

// Carrier identifies the host-side numeric type backing a synced symbol
// (spec 3.2: "for a synced symbol whose storage lives outside the
// interpreter (int, float, double)").
type Carrier uint8

const (
	CarrierInt Carrier = iota
	CarrierFloat32
	CarrierFloat64
)

// binding is one entry in a frame's symbol table. An ordinary binding
// carries V directly; a synced binding instead carries a pointer to
// host storage, materialised into a value.Value on every read and
// coerced back into host storage on every write (spec 3.2, 4.D assign).
type binding struct {
	v       value.Value
	flags   Flags
	carrier Carrier
	intPtr  *int32
	f32Ptr  *float32
	f64Ptr  *float64
}

// Frame is one level of the environment stack: a name table plus a link
// to the frame below it, and optionally a bifurcation pointer (spec
// 3.2/4.D). Frame is the first-class handle push_env/enter_env return.
type Frame struct {
	table map[string]*binding
	below *Frame
	// bifurcate, when non-nil, is consulted by lookup immediately after
	// this frame's own table and before below — the mechanism that lets
	// a lambda call's fresh frame see its captured lexical chain while
	// still being linked into the caller's dynamic stack for pop_env
	// bookkeeping (spec 4.D: "enter_env(main) ... lookups prefer main's
	// chain but defines land in the new top").
	bifurcate *Frame
}

// NewRoot creates the bottommost frame of a fresh interpreter's
// environment stack. pop_env on the root frame is an API error (spec
// 4.D: "error (EAPI) if stack is empty or the top is the root").
func NewRoot() *Frame {
	return newFrame(nil, nil)
}

func newFrame(below, bifurcate *Frame) *Frame {
	return &Frame{table: make(map[string]*binding), below: below, bifurcate: bifurcate}
}

// Push creates a fresh top frame linked below f (spec 4.D: push_env —
// "creates a fresh top frame; returns a first-class handle").
func (f *Frame) Push() *Frame {
	return newFrame(f, nil)
}

// Enter creates a top frame that bifurcates to main: lookups prefer
// main's chain but new defines land in the returned frame (spec 4.D:
// enter_env — "used at every lambda call site").
func (f *Frame) Enter(main *Frame) *Frame {
	return newFrame(f, main)
}

// Pop tears down the top frame, returning the frame below it. Popping
// the root frame (below == nil) is an API misuse.
func (f *Frame) Pop() (*Frame, error) {
	if f.below == nil {
		return nil, interr.APIMisuse("pop_env: stack is empty or at the root frame")
	}
	return f.below, nil
}

// Define installs name in f's own table only (spec 4.D: "new
// definitions land in the top frame only"). A duplicate name in the
// very same frame is EEXIST; shadowing a name from an outer frame is
// allowed and ordinary.
func (f *Frame) Define(name string, v value.Value, flags Flags) error {
	if _, exists := f.table[name]; exists {
		return interr.AlreadyDefined(name)
	}
	f.table[name] = &binding{v: v, flags: flags}
	return nil
}

// DefineSyncedInt installs a synced int32 binding (spec: sync_int).
func (f *Frame) DefineSyncedInt(name string, addr *int32, flags Flags) error {
	if _, exists := f.table[name]; exists {
		return interr.AlreadyDefined(name)
	}
	f.table[name] = &binding{flags: flags | FlagSynced, carrier: CarrierInt, intPtr: addr}
	return nil
}

// DefineSyncedFloat32 installs a synced float32 binding (spec: sync_float).
func (f *Frame) DefineSyncedFloat32(name string, addr *float32, flags Flags) error {
	if _, exists := f.table[name]; exists {
		return interr.AlreadyDefined(name)
	}
	f.table[name] = &binding{flags: flags | FlagSynced, carrier: CarrierFloat32, f32Ptr: addr}
	return nil
}

// DefineSyncedFloat64 installs a synced float64 binding (spec: sync_double).
func (f *Frame) DefineSyncedFloat64(name string, addr *float64, flags Flags) error {
	if _, exists := f.table[name]; exists {
		return interr.AlreadyDefined(name)
	}
	f.table[name] = &binding{flags: flags | FlagSynced, carrier: CarrierFloat64, f64Ptr: addr}
	return nil
}

// Bind installs or overwrites name in f's own table unconditionally,
// bypassing the EEXIST check Define enforces. This is what the pattern
// matcher uses (spec 4.E): a parameter pattern naming the same
// identifier twice, or a case clause re-run against a fresh subject,
// both need a plain overwrite rather than a duplicate-definition fault.
func (f *Frame) Bind(name string, v value.Value, flags Flags) {
	f.table[name] = &binding{v: v, flags: flags}
}

// BindingSnapshot captures name's prior state in some frame, so a
// failed match attempt can restore it rather than merely delete
// whatever it bound (spec 4.E: "a failed match leaves the top-frame
// binding set byte-identical to its prior state" — byte-identical
// includes a name the pattern shadowed, not just names it introduced).
type BindingSnapshot struct {
	name string
	prev *binding
	had  bool
}

// Save captures name's current binding in f's own table (or its
// absence) before the matcher overwrites it via Bind.
func (f *Frame) Save(name string) *BindingSnapshot {
	prev, had := f.table[name]
	return &BindingSnapshot{name: name, prev: prev, had: had}
}

// Restore undoes a Bind back to the state snap captured: the prior
// binding if there was one, or removal if the name was previously
// absent from f's own table.
func (f *Frame) Restore(snap *BindingSnapshot) {
	if snap.had {
		f.table[snap.name] = snap.prev
	} else {
		delete(f.table, snap.name)
	}
}

// lookupBinding implements the chain order spec 4.D mandates: top,
// then bifurcation, then below.
func (f *Frame) lookupBinding(name string) *binding {
	for frame := f; frame != nil; frame = frame.below {
		if b, ok := frame.table[name]; ok {
			return b
		}
		if frame.bifurcate != nil {
			if b := frame.bifurcate.lookupBinding(name); b != nil {
				return b
			}
		}
	}
	return nil
}

// Lookup materialises name's current value (spec 4.D: lookup — "chain
// search (top, then bifurcation, then below); ENOSYM on miss"). A
// synced binding is read fresh from host storage on every call.
func (f *Frame) Lookup(name string) (value.Value, error) {
	b := f.lookupBinding(name)
	if b == nil {
		return nil, interr.UndefinedSymbol(name)
	}
	return b.materialize(), nil
}

// Has reports whether name resolves anywhere in the chain, without
// materializing it.
func (f *Frame) Has(name string) bool {
	return f.lookupBinding(name) != nil
}

// Assign writes v into the binding name resolves to (spec 4.D: assign —
// "EREADONLY if the binding is read-only; if synced, coerces the value
// through the carrier's numeric rules (ETYPE if the value is not
// numeric) and writes back into the host variable; otherwise updates
// the stored value").
func (f *Frame) Assign(name string, v value.Value) error {
	b := f.lookupBinding(name)
	if b == nil {
		return interr.UndefinedSymbol(name)
	}
	if b.flags&FlagReadonly != 0 {
		return interr.ReadOnlyAssign(name)
	}
	if b.flags&FlagSynced != 0 {
		return b.writeSynced(v)
	}
	b.v = v
	return nil
}

func (b *binding) materialize() value.Value {
	if b.flags&FlagSynced == 0 {
		return b.v
	}
	switch b.carrier {
	case CarrierInt:
		return value.NewInt(*b.intPtr)
	case CarrierFloat32:
		return value.NewDouble(float64(*b.f32Ptr))
	default:
		return value.NewDouble(*b.f64Ptr)
	}
}

func (b *binding) writeSynced(v value.Value) error {
	f, ok := numericOf(v)
	if !ok {
		return interr.NotANumber(value.KindOf(v).String())
	}
	switch b.carrier {
	case CarrierInt:
		*b.intPtr = int32(f)
	case CarrierFloat32:
		*b.f32Ptr = float32(f)
	default:
		*b.f64Ptr = f
	}
	return nil
}

func numericOf(v value.Value) (float64, bool) {
	switch n := v.(type) {
	case *value.Int:
		return float64(n.V), true
	case *value.Double:
		return n.V, true
	default:
		return 0, false
	}
}
