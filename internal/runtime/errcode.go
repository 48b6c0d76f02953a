package runtime

import "github.com/cheaxlang/cheax/internal/interr"

// ErrorCodeRegistry is the name<->code table backing new_error_code,
// error-code and perror (spec 4.G: "new_error_code(name) allocates from
// EUSER0+ and records the name for printing"). It is seeded with every
// built-in code so Name, and through it perror, never fall back to a
// bare "E123" for names defined by the language itself.
type ErrorCodeRegistry struct {
	byName map[string]int
	byCode map[int]string
	next   int
}

// NewErrorCodeRegistry seeds a registry with the built-in codes.
func NewErrorCodeRegistry() *ErrorCodeRegistry {
	r := &ErrorCodeRegistry{
		byName: make(map[string]int),
		byCode: make(map[int]string),
		next:   interr.EUSER0,
	}
	for _, code := range []int{
		interr.EREAD, interr.EEOF,
		interr.EEVAL, interr.ENOSYM, interr.ESTACK, interr.ETYPE, interr.EMATCH,
		interr.ENIL, interr.EDIVZERO, interr.EREADONLY, interr.EEXIST, interr.EVALUE,
		interr.EOVERFLOW, interr.EINDEX, interr.EIO,
		interr.EAPI, interr.ENOMEM,
	} {
		name := interr.BuiltinName(code)
		r.byName[name] = code
		r.byCode[code] = name
	}
	return r
}

// NewErrorCode allocates the next user error code and records name for
// it, or returns the existing code if name was already registered
// (idempotent re-declaration: asking twice for the same name is not an
// error, unlike value.Registry.NewType, which rejects a duplicate name).
func (r *ErrorCodeRegistry) NewErrorCode(name string) int {
	if code, ok := r.byName[name]; ok {
		return code
	}
	code := r.next
	r.next++
	r.byName[name] = code
	r.byCode[code] = name
	return code
}

// Name returns the registered name for code, or "" if unregistered.
func (r *ErrorCodeRegistry) Name(code int) string {
	return r.byCode[code]
}

// Code returns the code registered under name, and whether it exists.
func (r *ErrorCodeRegistry) Code(name string) (int, bool) {
	code, ok := r.byName[name]
	return code, ok
}
