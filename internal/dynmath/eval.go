// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dynmath

import (
	"fmt"
	"math"

	"github.com/pdiddy/dymex/internal/expr"
)

// Bindings maps variable names to their values for one evaluation.
type Bindings map[string]Value

// Names returns the bound variable names in unspecified order.
func (b Bindings) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	return names
}

// Evaluator holds a parsed expression and evaluates it against variable
// bindings. The AST is parsed once; Evaluate may be called repeatedly with
// different bindings.
type Evaluator struct {
	root *expr.Node
}

// NewEvaluator tokenizes and parses expression. Every name in variables is
// usable in the expression; names colliding with built-ins are rejected.
func NewEvaluator(expression string, variables []string) (*Evaluator, error) {
	root, err := expr.ParseExpression(expression, variables)
	if err != nil {
		return nil, fmt.Errorf("parsing expression: %w", err)
	}
	return &Evaluator{root: root}, nil
}

// Evaluate computes the expression value under the given bindings.
func (e *Evaluator) Evaluate(vars Bindings) (Value, error) {
	return evalNode(e.root, vars)
}

// Eval evaluates a parsed expression tree directly.
func Eval(root *expr.Node, vars Bindings) (Value, error) {
	return evalNode(root, vars)
}

func evalNode(n *expr.Node, vars Bindings) (Value, error) {
	if n.IsAtom() {
		return evalAtom(n.Tok, vars)
	}

	switch n.Tok.Kind {
	case expr.KindOp:
		return evalOp(n, vars)
	case expr.KindFunc:
		return evalFunc(n, vars)
	case expr.KindLBracket:
		return evalIndex(n, vars)
	case expr.KindDot:
		return nil, fmt.Errorf("field access is not supported")
	case expr.KindColon:
		return nil, fmt.Errorf("slice ranges are not supported outside indexing")
	}
	return nil, fmt.Errorf("cannot evaluate token %q", n.Tok)
}

func evalAtom(t expr.Token, vars Bindings) (Value, error) {
	switch t.Kind {
	case expr.KindNumber:
		return Number(t.Num), nil
	case expr.KindConst:
		return Number(t.Const.Value()), nil
	case expr.KindVar:
		v, ok := vars[t.Name]
		if !ok {
			return nil, fmt.Errorf("variable %q has no bound value", t.Name)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unexpected atom %q", t)
}

func evalOp(n *expr.Node, vars Bindings) (Value, error) {
	if len(n.Args) == 1 {
		operand, err := evalNode(n.Args[0], vars)
		if err != nil {
			return nil, err
		}
		switch n.Tok.Op {
		case expr.OpAdd:
			return operand, nil
		case expr.OpSub:
			return Negate(operand), nil
		}
		return nil, fmt.Errorf("operator %q is not unary", n.Tok.Op)
	}

	lhs, err := evalNode(n.Args[0], vars)
	if err != nil {
		return nil, err
	}
	rhs, err := evalNode(n.Args[1], vars)
	if err != nil {
		return nil, err
	}

	switch n.Tok.Op {
	case expr.OpAdd:
		return Add(lhs, rhs)
	case expr.OpSub:
		return Sub(lhs, rhs)
	case expr.OpMul:
		return Mul(lhs, rhs)
	case expr.OpDiv:
		return Div(lhs, rhs)
	case expr.OpPow:
		return Pow(lhs, rhs)
	}
	return nil, fmt.Errorf("unknown operator %q", n.Tok.Op)
}

// elementwise maps the single-argument built-ins to float functions.
var elementwise = map[expr.Func]func(float64) float64{
	expr.FuncAbs:   math.Abs,
	expr.FuncSin:   math.Sin,
	expr.FuncCos:   math.Cos,
	expr.FuncTan:   math.Tan,
	expr.FuncCot:   func(x float64) float64 { return 1 / math.Tan(x) },
	expr.FuncExp:   math.Exp,
	expr.FuncLog:   math.Log,
	expr.FuncLog2:  math.Log2,
	expr.FuncLog10: math.Log10,
	expr.FuncSqrt:  math.Sqrt,
}

// variadic maps the reducing built-ins to their implementations.
var variadic = map[expr.Func]func([]Value) (Value, error){
	expr.FuncMin:   Min,
	expr.FuncMax:   Max,
	expr.FuncAvg:   Avg,
	expr.FuncStd:   Std,
	expr.FuncSum:   Sum,
	expr.FuncRange: Range,
}

func evalFunc(n *expr.Node, vars Bindings) (Value, error) {
	args := make([]Value, len(n.Args))
	for i, arg := range n.Args {
		v, err := evalNode(arg, vars)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if f, ok := elementwise[n.Tok.Func]; ok {
		if len(args) != 1 {
			return nil, &ArgumentError{Func: n.Tok.String(), Details: "takes exactly one argument"}
		}
		return Apply(args[0], f), nil
	}
	if f, ok := variadic[n.Tok.Func]; ok {
		return f(args)
	}
	return nil, fmt.Errorf("unknown function %q", n.Tok)
}

func evalIndex(n *expr.Node, vars Bindings) (Value, error) {
	target, err := evalNode(n.Args[0], vars)
	if err != nil {
		return nil, err
	}
	idx := n.Args[1]
	if idx.Tok.Kind == expr.KindColon {
		return nil, fmt.Errorf("slice ranges are not supported")
	}
	idxVal, err := evalNode(idx, vars)
	if err != nil {
		return nil, err
	}
	x, err := idxVal.Number()
	if err != nil {
		return nil, &ArgumentError{Func: "[]", Details: "index must be a scalar"}
	}
	if x != math.Trunc(x) {
		return nil, &ArgumentError{Func: "[]", Details: "index must be an integer"}
	}
	return Index(target, int(x))
}
