package brewin

import (
	"errors"
	"fmt"
)

type binaryOp func(a, b Value) (Value, error)

var errDivisionByZero = errors.New("division by zero")

var binaryOperators = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "%": {},
	"==": {}, "!=": {}, "<": {}, "<=": {}, ">": {}, ">=": {},
	"&": {}, "|": {},
}

func isBinaryOperator(op string) bool {
	_, ok := binaryOperators[op]
	return ok
}

// binaryOps lists the operators each kind supports. Both operands of a
// binary expression always share a kind.
var binaryOps = map[ValueKind]map[string]binaryOp{
	KindInt: {
		"+":  intArith(func(a, b int64) int64 { return a + b }),
		"-":  intArith(func(a, b int64) int64 { return a - b }),
		"*":  intArith(func(a, b int64) int64 { return a * b }),
		"/":  intDivide(floorDiv),
		"%":  intDivide(floorMod),
		"==": intCompare(func(a, b int64) bool { return a == b }),
		"!=": intCompare(func(a, b int64) bool { return a != b }),
		"<":  intCompare(func(a, b int64) bool { return a < b }),
		"<=": intCompare(func(a, b int64) bool { return a <= b }),
		">":  intCompare(func(a, b int64) bool { return a > b }),
		">=": intCompare(func(a, b int64) bool { return a >= b }),
	},
	KindString: {
		"+": func(a, b Value) (Value, error) {
			return NewString(a.Str() + b.Str()), nil
		},
		"==": stringCompare(func(a, b string) bool { return a == b }),
		"!=": stringCompare(func(a, b string) bool { return a != b }),
		"<":  stringCompare(func(a, b string) bool { return a < b }),
		"<=": stringCompare(func(a, b string) bool { return a <= b }),
		">":  stringCompare(func(a, b string) bool { return a > b }),
		">=": stringCompare(func(a, b string) bool { return a >= b }),
	},
	KindBool: {
		"&":  boolOp(func(a, b bool) bool { return a && b }),
		"|":  boolOp(func(a, b bool) bool { return a || b }),
		"==": boolOp(func(a, b bool) bool { return a == b }),
		"!=": boolOp(func(a, b bool) bool { return a != b }),
	},
	KindObject: {
		"==": func(a, b Value) (Value, error) { return NewBool(a.Same(b)), nil },
		"!=": func(a, b Value) (Value, error) { return NewBool(!a.Same(b)), nil },
	},
}

func applyBinary(operator string, left, right Value) (Value, error) {
	ops, ok := binaryOps[left.Kind()]
	if !ok {
		return Value{}, fmt.Errorf("operator %s applied to %s", operator, left.TypeName())
	}
	op, ok := ops[operator]
	if !ok {
		return Value{}, fmt.Errorf("invalid operator %s applied to %s", operator, left.Kind())
	}
	return op(left, right)
}

func intArith(fn func(a, b int64) int64) binaryOp {
	return func(a, b Value) (Value, error) {
		return NewInt(fn(a.Int(), b.Int())), nil
	}
}

func intDivide(fn func(a, b int64) int64) binaryOp {
	return func(a, b Value) (Value, error) {
		if b.Int() == 0 {
			return Value{}, errDivisionByZero
		}
		return NewInt(fn(a.Int(), b.Int())), nil
	}
}

func intCompare(fn func(a, b int64) bool) binaryOp {
	return func(a, b Value) (Value, error) {
		return NewBool(fn(a.Int(), b.Int())), nil
	}
}

func stringCompare(fn func(a, b string) bool) binaryOp {
	return func(a, b Value) (Value, error) {
		return NewBool(fn(a.Str(), b.Str())), nil
	}
}

func boolOp(fn func(a, b bool) bool) binaryOp {
	return func(a, b Value) (Value, error) {
		return NewBool(fn(a.Bool(), b.Bool())), nil
	}
}

// floorDiv rounds the quotient toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// floorMod returns a remainder with the divisor's sign, so that
// floorDiv(a, b)*b + floorMod(a, b) == a.
func floorMod(a, b int64) int64 {
	m := a % b
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}
