// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dynmath implements dynamically typed evaluation of expression
// trees over scalars and vectors, with broadcasting between the two.
package dynmath

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a runtime value: a Number or a Vector. Operations between values
// dispatch on the concrete types and broadcast scalars over vectors.
type Value interface {
	// TypeName is the human-readable type used in error messages.
	TypeName() string

	// IsScalar reports whether the value is a single number.
	IsScalar() bool

	// Number returns the scalar value, or an error for non-scalars.
	Number() (float64, error)
}

// Number is a scalar value.
type Number float64

func (Number) TypeName() string { return "number" }
func (Number) IsScalar() bool   { return true }

func (n Number) Number() (float64, error) { return float64(n), nil }

func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'g', -1, 64)
}

// Vector is a one-dimensional value.
type Vector []float64

func (Vector) TypeName() string { return "vector" }
func (Vector) IsScalar() bool   { return false }

func (v Vector) Number() (float64, error) {
	return 0, fmt.Errorf("vector of length %d is not a scalar", len(v))
}

func (v Vector) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// BinaryOpError reports an operation applied to incompatible operands.
type BinaryOpError struct {
	Op          string
	Left, Right string
	Detail      string
}

func (e *BinaryOpError) Error() string {
	msg := fmt.Sprintf("operation %q not supported between %s and %s", e.Op, e.Left, e.Right)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// ArgumentError reports invalid arguments to a built-in function.
type ArgumentError struct {
	Func    string
	Details string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid arguments for %s: %s", e.Func, e.Details)
}
