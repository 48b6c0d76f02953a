package builtins

import (
	"os"

	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

// Register installs every builtin named in spec 4.F/4.G/4.H into root,
// plus the optional-feature groups from spec 6 that features marks
// enabled (root is expected to be the evaluator's bottom frame, since
// spec 3.2 says "global bindings live in the bottom frame").
func Register(root *runtime.Frame, features map[string]bool) {
	def := func(name string, fn value.ExtFuncImpl) {
		_ = root.Define(name, value.NewExtFunc(name, fn), runtime.FlagReadonly)
	}

	for name, code := range interr.BuiltinCodes() {
		_ = root.Define(name, value.NewInt(int32(code)), runtime.FlagReadonly)
	}

	def("+", builtinAdd)
	def("-", builtinSub)
	def("*", builtinMul)
	def("/", builtinDiv)
	def("%", builtinMod)

	def("=", builtinEq)
	def("==", builtinNumEq)
	def("<", builtinLt)
	def(">", builtinGt)
	def("<=", builtinLe)
	def(">=", builtinGe)

	def(":", builtinPrepend)

	def("var", builtinVar)
	def("const", builtinConst)
	def("set", builtinSet)
	def("case", builtinCase)
	def("eval", builtinEvalForm)
	def("\\", makeLambdaBuiltin(true))
	def("\\\\", makeLambdaBuiltin(false))

	def("throw", builtinThrow)
	def("try", builtinTry)
	def("error-code", builtinErrorCode)
	def("error-msg", builtinErrorMsg)
	def("new_error_code", builtinNewErrorCode)
	def("perror", builtinPerror)

	registerFeatures(root, def, features)
}

func registerFeatures(root *runtime.Frame, def func(string, value.ExtFuncImpl), features map[string]bool) {
	names := make([]value.Value, 0, len(features))
	for name, enabled := range features {
		if !enabled {
			continue
		}
		names = append(names, value.NewIdent(name))
		switch name {
		case "stdout":
			def("stdout", writeStream(os.Stdout))
		case "stderr":
			def("stderr", writeStream(os.Stderr))
		case "stdio":
			def("stdout", writeStream(os.Stdout))
			def("stderr", writeStream(os.Stderr))
		case "exit":
			def("exit", builtinExit)
		case "gc":
			def("gc", builtinGC)
		case "set-max-stack-depth":
			def("set-max-stack-depth", builtinSetMaxStackDepth)
		case "stdin", "file-io":
			// Byte-level and file I/O primitives stay out of scope
			// (spec.md §1); the feature name is still listed for
			// config/host compatibility but binds no callback.
		}
	}
	_ = root.Define("features", value.List(names...), runtime.FlagReadonly)
}
