// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dynmath

import "math"

const (
	zeroArgsDetail  = "needs at least one argument"
	multiArgsDetail = "accepts a single vector or multiple scalar values"
)

// reduce implements the variadic built-ins: applied to a single vector it
// reduces that vector; applied to multiple values it requires all of them
// to be scalars.
func reduce(name string, args []Value, vecFn func(Vector) float64) (Value, error) {
	switch {
	case len(args) == 0:
		return nil, &ArgumentError{Func: name, Details: zeroArgsDetail}
	case len(args) == 1:
		if vec, ok := args[0].(Vector); ok {
			if len(vec) == 0 {
				return nil, &ArgumentError{Func: name, Details: "empty vector"}
			}
			return Number(vecFn(vec)), nil
		}
		x, err := args[0].Number()
		if err != nil {
			return nil, &ArgumentError{Func: name, Details: multiArgsDetail}
		}
		return Number(vecFn(Vector{x})), nil
	default:
		scalars := make(Vector, len(args))
		for i, a := range args {
			x, err := a.Number()
			if err != nil {
				return nil, &ArgumentError{Func: name, Details: multiArgsDetail}
			}
			scalars[i] = x
		}
		return Number(vecFn(scalars)), nil
	}
}

// Min returns the smallest of the arguments, or the smallest element of a
// single vector argument.
func Min(args []Value) (Value, error) {
	return reduce("min", args, func(v Vector) float64 {
		out := math.Inf(1)
		for _, x := range v {
			out = math.Min(out, x)
		}
		return out
	})
}

// Max returns the largest of the arguments, or the largest element of a
// single vector argument.
func Max(args []Value) (Value, error) {
	return reduce("max", args, func(v Vector) float64 {
		out := math.Inf(-1)
		for _, x := range v {
			out = math.Max(out, x)
		}
		return out
	})
}

// Sum adds the arguments, or the elements of a single vector argument.
func Sum(args []Value) (Value, error) {
	return reduce("sum", args, vectorSum)
}

// Avg returns the arithmetic mean.
func Avg(args []Value) (Value, error) {
	return reduce("avg", args, vectorAvg)
}

// Std returns the population standard deviation.
func Std(args []Value) (Value, error) {
	return reduce("std", args, func(v Vector) float64 {
		avg := vectorAvg(v)
		var sqErr float64
		for _, x := range v {
			sqErr += (x - avg) * (x - avg)
		}
		return math.Sqrt(sqErr / float64(len(v)))
	})
}

// Range returns max - min.
func Range(args []Value) (Value, error) {
	return reduce("range", args, func(v Vector) float64 {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, x := range v {
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
		return hi - lo
	})
}

func vectorSum(v Vector) float64 {
	var sum float64
	for _, x := range v {
		sum += x
	}
	return sum
}

func vectorAvg(v Vector) float64 {
	return vectorSum(v) / float64(len(v))
}
