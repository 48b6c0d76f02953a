package value

// Value is any runtime value cheax can hold: an identifier, a number, a
// list cell, a lambda, a host callback, one of the quote family, a
// string, a first-class environment, or a user pointer. The Go nil
// interface value represents cheax's NIL singleton (spec 3.1): list
// tails, unset results and the canonical "nothing" all use Go nil
// directly instead of a boxed sentinel, so every function that takes or
// returns a Value must treat nil as a valid, meaningful case rather than
// an error.
//
// Value is intentionally a closed interface: the unexported methods mean
// only types declared in this package can implement it, which keeps the
// Kind/type-code bookkeeping (and the dispatch tables in registry.go)
// exhaustive.
type Value interface {
	kind() Kind
	typeCode() int
	retype(t int)
	pinCount() *int32
}

// header is embedded by every concrete value type. It carries the type
// code currently attached to the value (initially its basic Kind's code)
// and the pin counter used by Ref/Unref (spec 4.B).
type header struct {
	typ  int
	pins int32
}

func (h *header) typeCode() int   { return h.typ }
func (h *header) retype(t int)    { h.typ = t }
func (h *header) pinCount() *int32 { return &h.pins }

// KindOf returns the Kind behind a Value, treating Go nil as KindNil.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNil
	}
	return v.kind()
}

// TypeOf returns a value's attached type code, NIL for the nil sentinel.
// This is spec 4.A's type_of(v).
func TypeOf(v Value) int {
	if v == nil {
		return NIL
	}
	return v.typeCode()
}

// Retype returns a shallow copy of v carrying type code t instead of its
// own. This is spec 4.A's shallow_copy combined with a retag; it is how
// the error-code alias gets attached to an otherwise ordinary integer
// (see internal/builtins.builtinErrorCode) without mutating the original.
func Retype(v Value, t int) Value {
	cp := ShallowCopy(v)
	if cp != nil {
		cp.retype(t)
	}
	return cp
}

// ShallowCopy returns a value that shares any children with v but owns
// its own outer record, so retagging the copy's type code never affects
// v. Composite values (Pair, Quote/Backquote/Comma) copy their immediate
// fields only; their children are shared by reference.
func ShallowCopy(v Value) Value {
	switch t := v.(type) {
	case nil:
		return nil
	case *Ident:
		cp := *t
		return &cp
	case *Int:
		cp := *t
		return &cp
	case *Double:
		cp := *t
		return &cp
	case *Pair:
		cp := *t
		return &cp
	case *Lambda:
		cp := *t
		return &cp
	case *ExtFunc:
		cp := *t
		return &cp
	case *Quote:
		cp := *t
		return &cp
	case *Backquote:
		cp := *t
		return &cp
	case *Comma:
		cp := *t
		return &cp
	case *String:
		cp := *t
		return &cp
	case *EnvValue:
		cp := *t
		return &cp
	case *UserPtr:
		cp := *t
		return &cp
	default:
		return v
	}
}

// Ident is an interned-or-owned character sequence naming a symbol.
type Ident struct {
	header
	Name string
}

func (*Ident) kind() Kind { return KindIdent }

// NewIdent constructs an identifier value.
func NewIdent(name string) *Ident {
	return &Ident{header: header{typ: IDENT}, Name: name}
}

// Int is a 32-bit signed integer value.
type Int struct {
	header
	V int32
}

func (*Int) kind() Kind { return KindInt }

// NewInt constructs an integer value.
func NewInt(v int32) *Int {
	return &Int{header: header{typ: INT}, V: v}
}

// Double is an IEEE-754 binary64 value.
type Double struct {
	header
	V float64
}

func (*Double) kind() Kind { return KindDouble }

// NewDouble constructs a double value.
func NewDouble(v float64) *Double {
	return &Double{header: header{typ: DOUBLE}, V: v}
}

// Pair is a list cell: a head value (possibly nil) and a tail that is
// either another Pair or nil (a proper list end).
type Pair struct {
	header
	Head Value
	Tail Value
}

func (*Pair) kind() Kind { return KindPair }

// NewPair constructs a list cell.
func NewPair(head, tail Value) *Pair {
	return &Pair{header: header{typ: PAIR}, Head: head, Tail: tail}
}

// List builds a proper list out of vs, nil-terminated.
func List(vs ...Value) Value {
	var tail Value
	for i := len(vs) - 1; i >= 0; i-- {
		tail = NewPair(vs[i], tail)
	}
	return tail
}

// Slice flattens a proper list into a Go slice. ok is false if v is not a
// proper (nil-terminated) list.
func Slice(v Value) (out []Value, ok bool) {
	for v != nil {
		p, isPair := v.(*Pair)
		if !isPair {
			return nil, false
		}
		out = append(out, p.Head)
		v = p.Tail
	}
	return out, true
}

// Lambda is {formal-parameter pattern, body list, captured environment,
// evaluate-arguments flag} (spec 3.1). EvalArgs distinguishes functions
// (true: arguments are pre-evaluated) from macros (false: arguments are
// passed unevaluated and the result is re-evaluated in the caller's
// environment).
type Lambda struct {
	header
	Params   Value
	Body     Value
	Env      any // *runtime.Frame; declared any to avoid an import cycle
	EvalArgs bool
}

func (*Lambda) kind() Kind { return KindLambda }

// NewLambda constructs a lambda (or, with evalArgs false, a macro) value.
func NewLambda(params, body Value, env any, evalArgs bool) *Lambda {
	return &Lambda{header: header{typ: LAMBDA}, Params: params, Body: body, Env: env, EvalArgs: evalArgs}
}

// ExtFuncImpl is a host callback. It receives the interpreter handle (as
// any, to avoid an import cycle back to pkg/cheax) and the *unevaluated*
// argument list; evaluating arguments, if desired, is the callback's own
// responsibility via whatever unpack helpers the host is given (spec
// 4.F: "it is the callback's responsibility to evaluate arguments").
type ExtFuncImpl func(handle any, args Value) (Value, error)

// ExtFunc is {callable pointer to a host function, display name}.
type ExtFunc struct {
	header
	Name string
	Fn   ExtFuncImpl
}

func (*ExtFunc) kind() Kind { return KindExtFunc }

// NewExtFunc constructs an external function value.
func NewExtFunc(name string, fn ExtFuncImpl) *ExtFunc {
	return &ExtFunc{header: header{typ: EXTFUNC}, Name: name, Fn: fn}
}

// Quote wraps one child value, returned verbatim by eval.
type Quote struct {
	header
	Inner Value
}

func (*Quote) kind() Kind { return KindQuote }

// NewQuote constructs a quote value.
func NewQuote(inner Value) *Quote { return &Quote{header: header{typ: QUOTE}, Inner: inner} }

// Backquote wraps one child value; commas within Inner are evaluated and
// spliced in when a Backquote is evaluated (spec 4.F).
type Backquote struct {
	header
	Inner Value
}

func (*Backquote) kind() Kind { return KindBackquote }

// NewBackquote constructs a backquote value.
func NewBackquote(inner Value) *Backquote {
	return &Backquote{header: header{typ: BACKQUOTE}, Inner: inner}
}

// Comma wraps one child value; only meaningful inside a Backquote.
type Comma struct {
	header
	Inner Value
}

func (*Comma) kind() Kind { return KindComma }

// NewComma constructs a comma value.
func NewComma(inner Value) *Comma { return &Comma{header: header{typ: COMMA}, Inner: inner} }

// String is a length-counted byte sequence; equality is bytewise.
type String struct {
	header
	B []byte
}

func (*String) kind() Kind { return KindString }

// NewString constructs a string value from s.
func NewString(s string) *String {
	return &String{header: header{typ: STRING}, B: []byte(s)}
}

func (s *String) String() string { return string(s.B) }

// NewStringBytes constructs a string value from an already-decoded byte
// slice (e.g. the reader's escape-processed literal contents), taking
// ownership of b rather than copying it.
func NewStringBytes(b []byte) *String {
	return &String{header: header{typ: STRING}, B: b}
}

// EnvValue is a first-class reference to an environment frame (spec
// 3.2). The concrete frame type is declared any here to avoid an import
// cycle with package runtime, which depends on package value for storage.
type EnvValue struct {
	header
	Env any // *runtime.Frame
}

func (*EnvValue) kind() Kind { return KindEnv }

// NewEnvValue wraps an environment frame as a first-class value.
func NewEnvValue(env any) *EnvValue { return &EnvValue{header: header{typ: ENV}, Env: env} }

// UserPtr is an opaque host pointer carrying a registered alias type
// code. A bare user pointer whose type resolves to USERPTR itself (i.e.
// was never aliased) is forbidden at the interface boundary (spec 3.1);
// NewUserPtr panics if callers try to construct one with typ == USERPTR,
// since that can only happen through programmer error in host code, not
// through any interpreter operation.
type UserPtr struct {
	header
	Ptr any
}

func (*UserPtr) kind() Kind { return KindUserPtr }

// NewUserPtr constructs a user pointer tagged with alias type code typ.
func NewUserPtr(typ int, ptr any) *UserPtr {
	if typ == USERPTR {
		panic("value: bare user pointer requires a registered alias type code")
	}
	return &UserPtr{header: header{typ: typ}, Ptr: ptr}
}
