// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package expr implements the expression front end: a tokenizer over a fixed
// mathematical grammar and a Pratt parser producing an AST. Variables must be
// declared up front; identifiers that collide with built-in function or
// constant names are rejected.
package expr

import (
	"math"
	"strconv"
)

// Kind classifies a token.
type Kind uint8

const (
	KindNumber Kind = iota
	KindConst
	KindVar
	KindFunc
	KindOp
	KindCompare
	KindAssign
	KindLParen
	KindRParen
	KindLBracket
	KindRBracket
	KindComma
	KindDot
	KindColon
	KindEOF
)

// Op is an arithmetic operator.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "**"
	}
	return "?"
}

// Const is a built-in mathematical constant.
type Const uint8

const (
	ConstPi Const = iota
	ConstEuler
	ConstSqrt2
	ConstSqrt3
)

// Value returns the numeric value of the constant.
func (c Const) Value() float64 {
	switch c {
	case ConstPi:
		return math.Pi
	case ConstEuler:
		return math.E
	case ConstSqrt2:
		return math.Sqrt2
	case ConstSqrt3:
		return math.Sqrt(3)
	}
	return math.NaN()
}

func (c Const) String() string {
	switch c {
	case ConstPi:
		return "π"
	case ConstEuler:
		return "e"
	case ConstSqrt2:
		return "√2"
	case ConstSqrt3:
		return "√3"
	}
	return "?"
}

// Func is a built-in function. Variadic functions accept up to MaxFuncArgs
// arguments; the rest take exactly one.
type Func uint8

const (
	FuncMin Func = iota
	FuncMax
	FuncAvg
	FuncStd
	FuncSum
	FuncRange
	FuncAbs
	FuncSin
	FuncCos
	FuncTan
	FuncCot
	FuncExp
	FuncLog
	FuncLog2
	FuncLog10
	FuncSqrt
)

// MaxFuncArgs bounds the argument count of variadic functions.
const MaxFuncArgs = 64

var funcNames = [...]string{
	FuncMin: "Min", FuncMax: "Max", FuncAvg: "Avg", FuncStd: "Std",
	FuncSum: "Sum", FuncRange: "Range", FuncAbs: "Abs", FuncSin: "Sin",
	FuncCos: "Cos", FuncTan: "Tan", FuncCot: "Cot", FuncExp: "Exp",
	FuncLog: "Log", FuncLog2: "Log2", FuncLog10: "Log10", FuncSqrt: "Sqrt",
}

func (f Func) String() string {
	if int(f) < len(funcNames) {
		return funcNames[f]
	}
	return "?"
}

// Variadic reports whether f accepts more than one argument.
func (f Func) Variadic() bool {
	switch f {
	case FuncMin, FuncMax, FuncAvg, FuncStd, FuncSum, FuncRange:
		return true
	}
	return false
}

// Token is a lexical unit with its position in the source expression.
// Pos is unique per token, so it doubles as a node identity when the AST
// is turned into a diagram.
type Token struct {
	Kind  Kind
	Op    Op
	Const Const
	Func  Func
	Num   float64
	Name  string

	// Pos is the rune offset of the token in the expression; Len is the
	// number of runes it spans.
	Pos int
	Len int
}

func (t Token) String() string {
	switch t.Kind {
	case KindNumber:
		return strconv.FormatFloat(t.Num, 'g', -1, 64)
	case KindConst:
		return t.Const.String()
	case KindVar:
		return t.Name
	case KindFunc:
		return t.Func.String()
	case KindOp:
		return t.Op.String()
	case KindCompare, KindAssign:
		return t.Name
	case KindLParen:
		return "("
	case KindRParen:
		return ")"
	case KindLBracket:
		return "["
	case KindRBracket:
		return "]"
	case KindComma:
		return ","
	case KindDot:
		return "."
	case KindColon:
		return ":"
	case KindEOF:
		return "EOF"
	}
	return "?"
}

// isAtom reports whether the token can terminate an operand: a value on its
// own, or a closing delimiter.
func (t Token) isAtom() bool {
	switch t.Kind {
	case KindNumber, KindConst, KindVar, KindRParen, KindRBracket:
		return true
	}
	return false
}
