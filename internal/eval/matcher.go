// Package eval implements the pattern matcher (spec 4.E) and the
// evaluator (spec 4.F/4.G) that drive cheax's special forms, function
// application and throw/try/catch/finally error flow.
package eval

import (
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

// Match binds identifiers of pattern to subvalues of subject in
// frame's own table and returns true, or leaves frame untouched and
// returns false (spec 4.E). flags is applied to every identifier
// binding the match installs (e.g. a case clause's bindings are
// ordinary; a destructuring var form might mark them otherwise).
//
// Rest-list convention: a pattern list may end in an improper tail
// (spec 3.1's dotted-pair syntax, e.g. `(a b . rest)`) instead of nil;
// the trailing identifier then binds whatever of the subject remains
// after the fixed-position elements are consumed, list or atom alike.
// This reuses the value model's existing dotted-pair mechanics rather
// than introducing a separate rest-marker token (spec 9's open
// question on the rest-list marker, resolved this way — see design
// notes).
func Match(types *value.Registry, frame *runtime.Frame, pattern, subject value.Value, flags runtime.Flags) bool {
	var touched []*runtime.BindingSnapshot
	if match(types, frame, pattern, subject, flags, &touched) {
		return true
	}
	// Restore newest-snapshot-first: if the pattern names the same
	// identifier twice, the earlier snapshot holds the name's state from
	// before either Bind ran, and applying it first would just get
	// overwritten when the later snapshot is restored on top of it.
	for i := len(touched) - 1; i >= 0; i-- {
		frame.Restore(touched[i])
	}
	return false
}

func match(types *value.Registry, frame *runtime.Frame, pattern, subject value.Value, flags runtime.Flags, touched *[]*runtime.BindingSnapshot) bool {
	for {
		switch p := pattern.(type) {
		case nil:
			return subject == nil
		case *value.Ident:
			*touched = append(*touched, frame.Save(p.Name))
			frame.Bind(p.Name, subject, flags)
			return true
		case *value.Quote:
			sq, ok := subject.(*value.Quote)
			if !ok {
				return false
			}
			return match(types, frame, p.Inner, sq.Inner, flags, touched)
		case *value.Pair:
			sp, ok := subject.(*value.Pair)
			if !ok {
				return false
			}
			if !match(types, frame, p.Head, sp.Head, flags, touched) {
				return false
			}
			pattern, subject = p.Tail, sp.Tail
			continue
		default:
			return types.Equals(pattern, subject)
		}
	}
}
