// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package expr

import (
	"fmt"
	"strings"
)

// ParseError reports a structural problem in the token stream.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	if e.Pos < 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s (at offset %d)", e.Msg, e.Pos)
}

func parseErr(pos int, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Node is one vertex of the AST. A node with no arguments is an atom
// (number, constant, or variable); otherwise Tok is the operation applied
// to Args in order.
type Node struct {
	Tok  Token
	Args []*Node
}

// IsAtom reports whether the node is a leaf value.
func (n *Node) IsAtom() bool { return len(n.Args) == 0 }

// RPN renders the tree in the prefix notation used by tests and debugging:
// an atom prints as its token, an expression as "(op: arg, arg)".
func (n *Node) RPN() string {
	var b strings.Builder
	n.writeRPN(&b)
	return b.String()
}

func (n *Node) writeRPN(b *strings.Builder) {
	if n.IsAtom() {
		b.WriteString(n.Tok.String())
		return
	}
	fmt.Fprintf(b, "(%s: ", n.Tok)
	for i, arg := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.writeRPN(b)
	}
	b.WriteString(")")
}

// Walk calls fn for n and every descendant, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, arg := range n.Args {
		arg.Walk(fn)
	}
}

// Parse builds an AST from the token stream. Relational, logical, and
// assignment tokens are rejected up front: the grammar covers pure
// expressions only.
func Parse(tokens []Token) (*Node, error) {
	if err := checkParens(tokens); err != nil {
		return nil, err
	}
	if err := checkRejected(tokens); err != nil {
		return nil, err
	}

	s := &stream{tokens: tokens}
	node, err := parseExpr(s, 0)
	if err != nil {
		return nil, err
	}
	if trailing := s.peek(); trailing.Kind != KindEOF {
		return nil, parseErr(trailing.Pos, "unexpected token %q after expression", trailing)
	}
	return node, nil
}

// ParseExpression tokenizes and parses in one step.
func ParseExpression(expression string, variables []string) (*Node, error) {
	tokens, err := Tokenize(expression, variables)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

func checkParens(tokens []Token) error {
	depth := 0
	for _, t := range tokens {
		switch t.Kind {
		case KindLParen:
			depth++
		case KindRParen:
			depth--
		}
		if depth < 0 {
			return parseErr(t.Pos, "unexpected closing parenthesis")
		}
	}
	if depth != 0 {
		return parseErr(-1, "missing %d closing parenthesis(es)", depth)
	}
	return nil
}

func checkRejected(tokens []Token) error {
	for _, t := range tokens {
		switch t.Kind {
		case KindAssign:
			return parseErr(t.Pos, "assignment %q is not allowed in expressions", t.Name)
		case KindCompare:
			return parseErr(t.Pos, "comparison %q is not allowed in expressions", t.Name)
		}
	}
	return nil
}

// stream is a cursor over the token slice that yields EOF forever once
// exhausted.
type stream struct {
	tokens []Token
	pos    int
	srcLen int
}

func (s *stream) next() Token {
	t := s.peek()
	if s.pos < len(s.tokens) {
		s.pos++
	}
	return t
}

func (s *stream) peek() Token {
	if s.pos < len(s.tokens) {
		return s.tokens[s.pos]
	}
	return Token{Kind: KindEOF, Pos: s.srcLen}
}

// parseExpr is a Pratt parser loop; see matklad's "Simple but Powerful
// Pratt Parsing" for the shape of the algorithm.
func parseExpr(s *stream, minPrec int) (*Node, error) {
	head := s.next()

	var lhs *Node
	switch head.Kind {
	case KindNumber, KindConst, KindVar:
		lhs = &Node{Tok: head}

	case KindLParen:
		inner, err := parseExpr(s, 0)
		if err != nil {
			return nil, err
		}
		if closing := s.next(); closing.Kind != KindRParen {
			return nil, parseErr(closing.Pos, "expected closing parenthesis, got %q", closing)
		}
		lhs = inner

	case KindFunc:
		args, err := parseCallArgs(s, head)
		if err != nil {
			return nil, err
		}
		lhs = &Node{Tok: head, Args: args}

	default:
		rbp, ok := prefixPrecedence(head)
		if !ok {
			return nil, parseErr(head.Pos, "unexpected token %q", head)
		}
		rhs, err := parseExpr(s, rbp)
		if err != nil {
			return nil, err
		}
		lhs = &Node{Tok: head, Args: []*Node{rhs}}
	}

	for {
		op := s.peek()
		switch op.Kind {
		case KindEOF:
			return lhs, nil
		case KindNumber, KindConst, KindVar:
			return nil, parseErr(op.Pos, "unexpected token %q: missing operator", op)
		}

		if lbp, ok := postfixPrecedence(op); ok {
			if lbp < minPrec {
				return lhs, nil
			}
			s.next()
			index, err := parseExpr(s, 0)
			if err != nil {
				return nil, err
			}
			if closing := s.next(); closing.Kind != KindRBracket {
				return nil, parseErr(closing.Pos, "expected closing bracket, got %q", closing)
			}
			lhs = &Node{Tok: op, Args: []*Node{lhs, index}}
			continue
		}

		if lbp, rbp, ok := infixPrecedence(op); ok {
			if lbp < minPrec {
				return lhs, nil
			}
			s.next()
			rhs, err := parseExpr(s, rbp)
			if err != nil {
				return nil, err
			}
			lhs = &Node{Tok: op, Args: []*Node{lhs, rhs}}
			continue
		}

		return lhs, nil
	}
}

// parseCallArgs consumes "( expr, expr, ... )" after a function token and
// enforces its arity.
func parseCallArgs(s *stream, fn Token) ([]*Node, error) {
	if open := s.next(); open.Kind != KindLParen {
		return nil, parseErr(open.Pos, "expected argument list after %s", fn)
	}
	var args []*Node
	for {
		arg, err := parseExpr(s, 0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		sep := s.next()
		switch sep.Kind {
		case KindRParen:
			maxArgs := 1
			if fn.Func.Variadic() {
				maxArgs = MaxFuncArgs
			}
			if len(args) > maxArgs {
				return nil, parseErr(fn.Pos, "%s accepts at most %d argument(s), got %d", fn, maxArgs, len(args))
			}
			return args, nil
		case KindComma:
		default:
			return nil, parseErr(sep.Pos, "unexpected token %q in argument list", sep)
		}
	}
}

// Precedence levels. Unary sign binds tighter than multiplication but looser
// than exponentiation, so -x**2 is -(x**2) while -x*y is (-x)*y.
func prefixPrecedence(t Token) (int, bool) {
	if t.Kind == KindOp && (t.Op == OpAdd || t.Op == OpSub) {
		return 13, true
	}
	return 0, false
}

func postfixPrecedence(t Token) (int, bool) {
	if t.Kind == KindLBracket {
		return 15, true
	}
	return 0, false
}

func infixPrecedence(t Token) (lbp, rbp int, ok bool) {
	switch t.Kind {
	case KindOp:
		switch t.Op {
		case OpAdd, OpSub:
			return 10, 11, true
		case OpMul, OpDiv:
			return 12, 13, true
		case OpPow:
			return 14, 15, true
		}
	case KindDot:
		return 16, 17, true
	case KindColon:
		return 6, 5, true
	}
	return 0, 0, false
}
