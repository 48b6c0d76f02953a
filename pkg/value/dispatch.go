package value

import (
	"fmt"
	"strconv"
	"strings"
)

// registerBuiltinDispatch installs the default print/equals/cast
// behaviour for every basic Kind. A host embedding cheax can override
// any single slot afterwards via Registry.SetPrinter/SetCaster without
// touching the others (spec 4.A: "print... follows a type-indexed
// dispatch table so that user aliases may install their own printer").
func registerBuiltinDispatch(r *Registry) {
	r.printers[KindNil] = func(*Registry, Value) string { return "()" }
	r.printers[KindIdent] = func(_ *Registry, v Value) string { return v.(*Ident).Name }
	r.printers[KindInt] = func(_ *Registry, v Value) string { return strconv.FormatInt(int64(v.(*Int).V), 10) }
	r.printers[KindDouble] = func(_ *Registry, v Value) string { return printDouble(v.(*Double).V) }
	r.printers[KindString] = func(_ *Registry, v Value) string { return printString(v.(*String).B) }
	r.printers[KindPair] = func(r *Registry, v Value) string { return printPair(r, v.(*Pair)) }
	r.printers[KindQuote] = func(r *Registry, v Value) string { return "'" + r.Print(v.(*Quote).Inner) }
	r.printers[KindBackquote] = func(r *Registry, v Value) string { return "`" + r.Print(v.(*Backquote).Inner) }
	r.printers[KindComma] = func(r *Registry, v Value) string { return "," + r.Print(v.(*Comma).Inner) }
	r.printers[KindLambda] = func(_ *Registry, v Value) string {
		if v.(*Lambda).EvalArgs {
			return "#<lambda>"
		}
		return "#<macro>"
	}
	r.printers[KindExtFunc] = func(_ *Registry, v Value) string { return "#<extfunc:" + v.(*ExtFunc).Name + ">" }
	r.printers[KindEnv] = func(*Registry, Value) string { return "#<env>" }
	r.printers[KindUserPtr] = func(r *Registry, v Value) string {
		return fmt.Sprintf("#<%s:%p>", r.NameOf(v.typeCode()), v.(*UserPtr).Ptr)
	}

	r.equalers[KindNil] = func(*Registry, Value, Value) bool { return true }
	r.equalers[KindIdent] = func(_ *Registry, a, b Value) bool { return a.(*Ident).Name == b.(*Ident).Name }
	r.equalers[KindInt] = func(_ *Registry, a, b Value) bool { return a.(*Int).V == b.(*Int).V }
	r.equalers[KindDouble] = func(_ *Registry, a, b Value) bool { return a.(*Double).V == b.(*Double).V }
	r.equalers[KindString] = func(_ *Registry, a, b Value) bool {
		return string(a.(*String).B) == string(b.(*String).B)
	}
	r.equalers[KindPair] = func(r *Registry, a, b Value) bool {
		pa, pb := a.(*Pair), b.(*Pair)
		return r.Equals(pa.Head, pb.Head) && r.Equals(pa.Tail, pb.Tail)
	}
	r.equalers[KindQuote] = func(r *Registry, a, b Value) bool { return r.Equals(a.(*Quote).Inner, b.(*Quote).Inner) }
	r.equalers[KindBackquote] = func(r *Registry, a, b Value) bool {
		return r.Equals(a.(*Backquote).Inner, b.(*Backquote).Inner)
	}
	r.equalers[KindComma] = func(r *Registry, a, b Value) bool { return r.Equals(a.(*Comma).Inner, b.(*Comma).Inner) }
	r.equalers[KindExtFunc] = func(_ *Registry, a, b Value) bool { return a.(*ExtFunc) == b.(*ExtFunc) }
	r.equalers[KindUserPtr] = func(_ *Registry, a, b Value) bool { return a.(*UserPtr).Ptr == b.(*UserPtr).Ptr }
	r.equalers[KindLambda] = func(_ *Registry, a, b Value) bool { return a.(*Lambda) == b.(*Lambda) }
	r.equalers[KindEnv] = func(_ *Registry, a, b Value) bool { return a.(*EnvValue) == b.(*EnvValue) }

	r.casters[KindInt] = castNumeric
	r.casters[KindDouble] = castNumeric
}

// castNumeric implements the only casts spec 4.A defines: identity, and
// int<->double cross-casts. The result is tagged with t itself (which
// may be an alias of INT or DOUBLE), not with the plain basic code, so
// casting e.g. to an error-code alias produces a correctly retyped value.
func castNumeric(r *Registry, v Value, t int) (Value, bool) {
	resolved, err := r.Resolve(t)
	if err != nil {
		return nil, false
	}
	switch resolved {
	case INT:
		var iv int32
		switch n := v.(type) {
		case *Int:
			iv = n.V
		case *Double:
			iv = int32(n.V)
		default:
			return nil, false
		}
		out := NewInt(iv)
		if t != INT {
			out.retype(t)
		}
		return out, true
	case DOUBLE:
		var dv float64
		switch n := v.(type) {
		case *Int:
			dv = float64(n.V)
		case *Double:
			dv = n.V
		default:
			return nil, false
		}
		out := NewDouble(dv)
		if t != DOUBLE {
			out.retype(t)
		}
		return out, true
	default:
		return nil, false
	}
}

func printDouble(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func printString(b []byte) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, c := range b {
		switch c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&sb, `\x%02X`, c)
			} else {
				sb.WriteByte(c)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func printPair(r *Registry, p *Pair) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(r.Print(p.Head))
	tail := p.Tail
	for {
		switch t := tail.(type) {
		case nil:
			sb.WriteByte(')')
			return sb.String()
		case *Pair:
			sb.WriteByte(' ')
			sb.WriteString(r.Print(t.Head))
			tail = t.Tail
		default:
			sb.WriteString(" . ")
			sb.WriteString(r.Print(tail))
			sb.WriteByte(')')
			return sb.String()
		}
	}
}
