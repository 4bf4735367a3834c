// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dynmath

import "math"

// Add returns a+b with scalar/vector broadcasting.
func Add(a, b Value) (Value, error) {
	return binary("+", a, b, func(x, y float64) float64 { return x + y })
}

// Sub returns a-b with scalar/vector broadcasting.
func Sub(a, b Value) (Value, error) {
	return binary("-", a, b, func(x, y float64) float64 { return x - y })
}

// Mul returns a*b with scalar/vector broadcasting.
func Mul(a, b Value) (Value, error) {
	return binary("*", a, b, func(x, y float64) float64 { return x * y })
}

// Div returns a/b with scalar/vector broadcasting. Division by zero follows
// IEEE 754 semantics.
func Div(a, b Value) (Value, error) {
	return binary("/", a, b, func(x, y float64) float64 { return x / y })
}

// Pow returns a**b with scalar/vector broadcasting.
func Pow(a, b Value) (Value, error) {
	return binary("**", a, b, math.Pow)
}

func binary(op string, a, b Value, f func(x, y float64) float64) (Value, error) {
	switch l := a.(type) {
	case Number:
		switch r := b.(type) {
		case Number:
			return Number(f(float64(l), float64(r))), nil
		case Vector:
			out := make(Vector, len(r))
			for i, y := range r {
				out[i] = f(float64(l), y)
			}
			return out, nil
		}
	case Vector:
		switch r := b.(type) {
		case Number:
			out := make(Vector, len(l))
			for i, x := range l {
				out[i] = f(x, float64(r))
			}
			return out, nil
		case Vector:
			if len(l) != len(r) {
				return nil, &BinaryOpError{
					Op: op, Left: a.TypeName(), Right: b.TypeName(),
					Detail: "length mismatch",
				}
			}
			out := make(Vector, len(l))
			for i, x := range l {
				out[i] = f(x, r[i])
			}
			return out, nil
		}
	}
	return nil, &BinaryOpError{Op: op, Left: a.TypeName(), Right: b.TypeName()}
}

// Apply maps f over the value elementwise.
func Apply(v Value, f func(float64) float64) Value {
	switch x := v.(type) {
	case Number:
		return Number(f(float64(x)))
	case Vector:
		out := make(Vector, len(x))
		for i, e := range x {
			out[i] = f(e)
		}
		return out
	}
	return v
}

// Negate returns -v.
func Negate(v Value) Value {
	return Apply(v, func(x float64) float64 { return -x })
}

// Index returns v[i]. Negative indices count from the end, so v[-1] is the
// last element.
func Index(v Value, i int) (Value, error) {
	vec, ok := v.(Vector)
	if !ok {
		return nil, &BinaryOpError{Op: "[]", Left: v.TypeName(), Right: "number"}
	}
	idx := i
	if idx < 0 {
		idx += len(vec)
	}
	if idx < 0 || idx >= len(vec) {
		return nil, &ArgumentError{
			Func:    "[]",
			Details: "index out of range",
		}
	}
	return Number(vec[idx]), nil
}
