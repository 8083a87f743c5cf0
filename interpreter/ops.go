package interpreter

import (
	"cmp"
	"math"

	"github.com/pontaoski/rainyday/ast"
	"github.com/pontaoski/rainyday/errors"
)

func typeName(v Value) string {
	if v == nil {
		return "no value"
	}
	return v.TypeName()
}

func unary(op ast.UnaryOperator, v Value) (Value, error) {
	switch op {
	case ast.Negate:
		switch v := v.(type) {
		case Int32:
			return -v, nil
		case Single:
			return -v, nil
		}
	case ast.Not:
		if v, ok := v.(Boolean); ok {
			return !v, nil
		}
	}
	return nil, errors.InvalidOperand{Operator: op.String(), Type: typeName(v)}
}

// promote brings two operands to a common numeric type. Characters count as
// their code point, and an Int32 meeting a Single becomes a Single.
func promote(left, right Value) (Value, Value, bool) {
	if c, ok := left.(Character); ok {
		left = Int32(c)
	}
	if c, ok := right.(Character); ok {
		right = Int32(c)
	}

	switch l := left.(type) {
	case Int32:
		switch r := right.(type) {
		case Int32:
			return l, r, true
		case Single:
			return Single(l), r, true
		}
	case Single:
		switch r := right.(type) {
		case Int32:
			return l, Single(r), true
		case Single:
			return l, r, true
		}
	}
	return nil, nil, false
}

func binary(op ast.BinaryOperator, left, right Value) (Value, error) {
	invalid := errors.InvalidOperands{Operator: op.String(), Left: typeName(left), Right: typeName(right)}
	if left == nil || right == nil {
		return nil, invalid
	}

	if op.IsComparison() {
		if v, ok := compare(op, left, right); ok {
			return v, nil
		}
		return nil, invalid
	}

	if op == ast.Add {
		_, leftString := left.(String)
		_, rightString := right.(String)
		if leftString || rightString {
			return String(left.String() + right.String()), nil
		}
	}

	l, r, ok := promote(left, right)
	if !ok {
		return nil, invalid
	}
	if l, ok := l.(Int32); ok {
		return integer(op, l, r.(Int32))
	}
	return single(op, l.(Single), r.(Single)), nil
}

// integer arithmetic wraps on overflow, except for the one division that
// cannot be represented.
func integer(op ast.BinaryOperator, l, r Int32) (Value, error) {
	switch op {
	case ast.Add:
		return l + r, nil
	case ast.Subtract:
		return l - r, nil
	case ast.Multiply:
		return l * r, nil
	}

	if r == 0 {
		return nil, errors.DivisionByZero{}
	}
	if l == math.MinInt32 && r == -1 {
		return nil, errors.Overflow{Operator: op.String()}
	}
	return l / r, nil
}

func single(op ast.BinaryOperator, l, r Single) Value {
	switch op {
	case ast.Add:
		return l + r
	case ast.Subtract:
		return l - r
	case ast.Multiply:
		return l * r
	}
	return l / r
}

func compare(op ast.BinaryOperator, left, right Value) (Value, bool) {
	if l, r, ok := promote(left, right); ok {
		if l, ok := l.(Int32); ok {
			return ordered(op, l, r.(Int32)), true
		}
		return ordered(op, l.(Single), r.(Single)), true
	}

	switch l := left.(type) {
	case String:
		if r, ok := right.(String); ok {
			return ordered(op, l, r), true
		}
	case Boolean:
		r, ok := right.(Boolean)
		if !ok {
			return nil, false
		}
		switch op {
		case ast.Equal:
			return Boolean(l == r), true
		case ast.NotEqual:
			return Boolean(l != r), true
		}
	}
	return nil, false
}

func ordered[T cmp.Ordered](op ast.BinaryOperator, l, r T) Boolean {
	switch op {
	case ast.Greater:
		return l > r
	case ast.GreaterOrEqual:
		return l >= r
	case ast.Less:
		return l < r
	case ast.LessOrEqual:
		return l <= r
	case ast.Equal:
		return l == r
	}
	return l != r
}

// step adds delta to a numeric value.
func step(v Value, delta int32) (Value, bool) {
	switch v := v.(type) {
	case Int32:
		return v + Int32(delta), true
	case Single:
		return v + Single(delta), true
	}
	return nil, false
}
