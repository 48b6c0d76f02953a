package builtins

import (
	"math"

	"github.com/cheaxlang/cheax/internal/eval"
	"github.com/cheaxlang/cheax/internal/interr"
	"github.com/cheaxlang/cheax/internal/runtime"
	"github.com/cheaxlang/cheax/pkg/value"
)

// operand is either an integer or a double, unwrapped for arithmetic
// (spec 4.F: "mixed int/double promotes to double; pure-double is IEEE
// with no overflow signalled").
type operand struct {
	i      int32
	f      float64
	isReal bool
}

func (o operand) asDouble() float64 {
	if o.isReal {
		return o.f
	}
	return float64(o.i)
}

func toOperand(v value.Value) (operand, bool) {
	switch n := v.(type) {
	case *value.Int:
		return operand{i: n.V}, true
	case *value.Double:
		return operand{f: n.V, isReal: true}, true
	default:
		return operand{}, false
	}
}

func evalNumericArgs(ctx eval.Context, args value.Value, op string) ([]operand, bool) {
	forms, ok := value.Slice(args)
	if !ok {
		ctx.Throw(interr.EMATCH, "argument list is not a proper list")
		return nil, false
	}
	ops := make([]operand, 0, len(forms))
	for _, form := range forms {
		v := ctx.Eval(form)
		if ctx.Errstate() != runtime.Running {
			return nil, false
		}
		o, ok := toOperand(v)
		if !ok {
			err := interr.NotANumber(value.KindOf(v).String())
			ctx.Throw(err.Code, err.Message)
			return nil, false
		}
		ops = append(ops, o)
	}
	return ops, true
}

func builtinAdd(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	ops, ok := evalNumericArgs(ctx, args, "+")
	if !ok {
		return nil, nil
	}
	if len(ops) == 0 {
		return value.NewInt(0), nil
	}
	acc := ops[0]
	for _, o := range ops[1:] {
		var err error
		acc, err = addOp(acc, o)
		if err != nil {
			ctx.Throw(err.(*interr.Error).Code, err.(*interr.Error).Message)
			return nil, nil
		}
	}
	return operandValue(acc), nil
}

func builtinSub(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	ops, ok := evalNumericArgs(ctx, args, "-")
	if !ok {
		return nil, nil
	}
	if len(ops) == 0 {
		err := interr.WrongArgShape("-", 0)
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	if len(ops) == 1 {
		neg, err := negate(ops[0])
		if err != nil {
			ctx.Throw(err.(*interr.Error).Code, err.(*interr.Error).Message)
			return nil, nil
		}
		return operandValue(neg), nil
	}
	acc := ops[0]
	for _, o := range ops[1:] {
		var err error
		acc, err = subOp(acc, o)
		if err != nil {
			ctx.Throw(err.(*interr.Error).Code, err.(*interr.Error).Message)
			return nil, nil
		}
	}
	return operandValue(acc), nil
}

func builtinMul(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	ops, ok := evalNumericArgs(ctx, args, "*")
	if !ok {
		return nil, nil
	}
	if len(ops) == 0 {
		return value.NewInt(1), nil
	}
	acc := ops[0]
	for _, o := range ops[1:] {
		var err error
		acc, err = mulOp(acc, o)
		if err != nil {
			ctx.Throw(err.(*interr.Error).Code, err.(*interr.Error).Message)
			return nil, nil
		}
	}
	return operandValue(acc), nil
}

func builtinDiv(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	ops, ok := evalNumericArgs(ctx, args, "/")
	if !ok {
		return nil, nil
	}
	if len(ops) < 2 {
		err := interr.WrongArgShape("/", len(ops))
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	acc := ops[0]
	for _, o := range ops[1:] {
		var err error
		acc, err = divOp(acc, o)
		if err != nil {
			ctx.Throw(err.(*interr.Error).Code, err.(*interr.Error).Message)
			return nil, nil
		}
	}
	return operandValue(acc), nil
}

func builtinMod(handle any, args value.Value) (value.Value, error) {
	ctx := handle.(eval.Context)
	ops, ok := evalNumericArgs(ctx, args, "%")
	if !ok {
		return nil, nil
	}
	if len(ops) != 2 {
		err := interr.WrongArgShape("%", len(ops))
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	if ops[0].isReal || ops[1].isReal {
		err := interr.NotANumber("double")
		ctx.Throw(err.Code, "% is defined only on integers")
		return nil, nil
	}
	if ops[1].i == 0 {
		err := interr.DivisionByZero("%")
		ctx.Throw(err.Code, err.Message)
		return nil, nil
	}
	return value.NewInt(ops[0].i % ops[1].i), nil
}

func operandValue(o operand) value.Value {
	if o.isReal {
		return value.NewDouble(o.f)
	}
	return value.NewInt(o.i)
}

// negate widens through int64 before flipping sign, the same way
// addOp/subOp/mulOp check bounds: negating math.MinInt32 as a plain
// int32 wraps back to itself in two's-complement arithmetic instead of
// overflowing visibly, which the spec's blanket 32-bit overflow
// contract (spec 4.F) doesn't carve out unary minus from.
func negate(o operand) (operand, error) {
	if o.isReal {
		return operand{f: -o.f, isReal: true}, nil
	}
	neg := -int64(o.i)
	if neg > math.MaxInt32 || neg < math.MinInt32 {
		return operand{}, interr.Overflow("-")
	}
	return operand{i: int32(neg)}, nil
}

func addOp(a, b operand) (operand, error) {
	if a.isReal || b.isReal {
		return operand{f: a.asDouble() + b.asDouble(), isReal: true}, nil
	}
	sum := int64(a.i) + int64(b.i)
	if sum > math.MaxInt32 || sum < math.MinInt32 {
		return operand{}, interr.Overflow("+")
	}
	return operand{i: int32(sum)}, nil
}

func subOp(a, b operand) (operand, error) {
	if a.isReal || b.isReal {
		return operand{f: a.asDouble() - b.asDouble(), isReal: true}, nil
	}
	diff := int64(a.i) - int64(b.i)
	if diff > math.MaxInt32 || diff < math.MinInt32 {
		return operand{}, interr.Overflow("-")
	}
	return operand{i: int32(diff)}, nil
}

func mulOp(a, b operand) (operand, error) {
	if a.isReal || b.isReal {
		return operand{f: a.asDouble() * b.asDouble(), isReal: true}, nil
	}
	prod := int64(a.i) * int64(b.i)
	if prod > math.MaxInt32 || prod < math.MinInt32 {
		return operand{}, interr.Overflow("*")
	}
	return operand{i: int32(prod)}, nil
}

func divOp(a, b operand) (operand, error) {
	if a.isReal || b.isReal {
		return operand{f: a.asDouble() / b.asDouble(), isReal: true}, nil
	}
	if b.i == 0 {
		return operand{}, interr.DivisionByZero("/")
	}
	quot := int64(a.i) / int64(b.i)
	if quot > math.MaxInt32 || quot < math.MinInt32 {
		return operand{}, interr.Overflow("/")
	}
	return operand{i: int32(quot)}, nil
}
