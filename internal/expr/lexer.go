// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// invalidChars are rejected before tokenization starts.
const invalidChars = "#?˝`'&|$@%{}"

// specialChars begin operator and delimiter tokens.
const specialChars = "()[].,:+-*/^=<>!π×⋅"

// reservedWords may not be used as variable names.
var reservedWords = []string{
	"min", "max", "avg", "mean", "std", "sum", "range",
	"abs", "sin", "cos", "tan", "cotan",
	"exp", "log", "log2", "log10", "sqrt",
	"pi", "e", "sqrt2", "sqrt3",
}

// TokenizeError reports a lexical problem, carrying the rune offset of the
// offending input so callers can render a caret under the expression.
type TokenizeError struct {
	Pos  int // rune offset, -1 when no position applies
	Msg  string
	Hint string
}

func (e *TokenizeError) Error() string {
	if e.Pos < 0 {
		return e.Msg
	}
	return fmt.Sprintf("%s (at offset %d)", e.Msg, e.Pos)
}

// UserMessage formats the error with the source expression and a caret
// pointing at the offending position.
func (e *TokenizeError) UserMessage(expression string) string {
	var b strings.Builder
	b.WriteString(e.Msg)
	b.WriteByte('\n')
	b.WriteString(expression)
	if e.Pos >= 0 {
		b.WriteByte('\n')
		b.WriteString(strings.Repeat(" ", e.Pos))
		b.WriteByte('^')
	}
	if e.Hint != "" {
		b.WriteByte('\n')
		b.WriteString(e.Hint)
	}
	return b.String()
}

func errInvalidChar(c rune, pos int) *TokenizeError {
	return &TokenizeError{Pos: pos, Msg: fmt.Sprintf("invalid character: %q", c)}
}

func errInvalidNumber(pos int) *TokenizeError {
	return &TokenizeError{Pos: pos, Msg: "invalid number format", Hint: "examples: 1, 3.14, 1e10, 1.23E-10"}
}

func errUndefinedVariable(name string, pos int) *TokenizeError {
	return &TokenizeError{Pos: pos, Msg: fmt.Sprintf("undefined variable: %s", name)}
}

func errReservedIdentifier(name string) *TokenizeError {
	return &TokenizeError{Pos: -1, Msg: fmt.Sprintf("invalid variable name: %s (reserved word)", name)}
}

func errSyntax(pos int) *TokenizeError {
	return &TokenizeError{Pos: pos, Msg: "syntax error"}
}

// Tokenize turns expression into a token slice. Identifiers that are not
// built-in functions or constants must appear in variables, except directly
// after a dot, where field names are resolved at evaluation time.
func Tokenize(expression string, variables []string) ([]Token, error) {
	if err := checkVariableNames(variables); err != nil {
		return nil, err
	}

	src := []rune(expression)
	if err := checkInvalidChars(src); err != nil {
		return nil, err
	}

	var tokens []Token
	cursor := 0
	for cursor < len(src) {
		c := src[cursor]
		next := rune(' ')
		if cursor+1 < len(src) {
			next = src[cursor+1]
		}

		switch {
		case unicode.IsSpace(c):
			cursor++

		case unicode.IsLetter(c) || c == '_':
			tok, n, err := scanIdentifier(src[cursor:], cursor, variables, lastToken(tokens))
			if err != nil {
				return nil, err
			}
			tok.Pos, tok.Len = cursor, n
			tokens = append(tokens, tok)
			cursor += n

		case isDigit(c) || (c == '-' && isDigit(next) && !prevEndsOperand(tokens)):
			tok, n, ok := scanNumber(src[cursor:])
			if !ok {
				return nil, errInvalidNumber(cursor)
			}
			tok.Pos, tok.Len = cursor, n
			tokens = append(tokens, tok)
			cursor += n

		case strings.ContainsRune(specialChars, c):
			tok, n, ok := scanSpecial(c, next)
			if !ok {
				return nil, errSyntax(cursor)
			}
			tok.Pos, tok.Len = cursor, n
			tokens = append(tokens, tok)
			cursor += n

		default:
			return nil, errInvalidChar(c, cursor)
		}
	}
	return tokens, nil
}

func checkInvalidChars(src []rune) error {
	for i, c := range src {
		if strings.ContainsRune(invalidChars, c) {
			return errInvalidChar(c, i)
		}
	}
	return nil
}

func checkVariableNames(variables []string) error {
	for _, v := range variables {
		for _, reserved := range reservedWords {
			if v == reserved {
				return errReservedIdentifier(v)
			}
		}
	}
	return nil
}

func lastToken(tokens []Token) *Token {
	if len(tokens) == 0 {
		return nil
	}
	return &tokens[len(tokens)-1]
}

// prevEndsOperand reports whether the previous token completes an operand,
// in which case a following '-' is a binary minus rather than a sign.
func prevEndsOperand(tokens []Token) bool {
	prev := lastToken(tokens)
	return prev != nil && prev.isAtom()
}

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isIdentRune(c rune) bool {
	return unicode.IsLetter(c) || isDigit(c) || c == '_'
}

// scanIdentifier resolves a word to a function, a constant, or a variable.
// Field names after a dot pass without being declared; their existence is
// checked during evaluation.
func scanIdentifier(src []rune, start int, variables []string, prev *Token) (Token, int, error) {
	end := len(src)
	for i, c := range src {
		if !isIdentRune(c) {
			end = i
			break
		}
	}
	word := string(src[:end])
	lower := strings.ToLower(word)

	if fn, ok := functionKeywords[lower]; ok {
		return Token{Kind: KindFunc, Func: fn}, end, nil
	}
	if c, ok := constantKeywords[lower]; ok {
		return Token{Kind: KindConst, Const: c}, end, nil
	}

	afterDot := prev != nil && prev.Kind == KindDot
	for _, v := range variables {
		if word == v {
			return Token{Kind: KindVar, Name: word}, end, nil
		}
	}
	if afterDot {
		return Token{Kind: KindVar, Name: word}, end, nil
	}
	return Token{}, 0, errUndefinedVariable(word, start)
}

var functionKeywords = map[string]Func{
	"min": FuncMin, "max": FuncMax,
	"avg": FuncAvg, "mean": FuncAvg,
	"std": FuncStd, "sum": FuncSum, "range": FuncRange,
	"abs": FuncAbs,
	"sin": FuncSin, "cos": FuncCos, "tan": FuncTan, "cotan": FuncCot,
	"exp": FuncExp,
	"log": FuncLog, "log2": FuncLog2, "log10": FuncLog10,
	"sqrt": FuncSqrt,
}

var constantKeywords = map[string]Const{
	"pi":    ConstPi,
	"e":     ConstEuler,
	"sqrt2": ConstSqrt2,
	"sqrt3": ConstSqrt3,
}

// scanNumber accepts forms like 2, 2.103, 0.3E6, 3.0e-5, and a leading sign.
func scanNumber(src []rune) (Token, int, bool) {
	end := len(src)
	dots, exps := 0, 0
	afterExp := false
	for i, c := range src {
		switch {
		case isDigit(c):
			afterExp = false
		case c == '.':
			if dots > 0 || exps > 0 {
				return Token{}, 0, false
			}
			dots++
		case c == 'e' || c == 'E':
			if exps > 0 {
				return Token{}, 0, false
			}
			exps++
			afterExp = true
		case c == '-' && i == 0:
		case c == '-' && afterExp:
			afterExp = false
		default:
			end = i
		}
		if end == i {
			break
		}
	}
	x, err := strconv.ParseFloat(string(src[:end]), 64)
	if err != nil {
		return Token{}, 0, false
	}
	return Token{Kind: KindNumber, Num: x}, end, true
}

// scanSpecial lexes operator and delimiter tokens, preferring two-rune forms.
func scanSpecial(c1, c2 rune) (Token, int, bool) {
	if tok, ok := twoRuneToken(c1, c2); ok {
		return tok, 2, true
	}
	if tok, ok := oneRuneToken(c1); ok {
		return tok, 1, true
	}
	return Token{}, 0, false
}

func twoRuneToken(c1, c2 rune) (Token, bool) {
	pair := string([]rune{c1, c2})
	switch pair {
	case "**":
		return Token{Kind: KindOp, Op: OpPow}, true
	case "+=", "-=", "*=", "/=":
		return Token{Kind: KindAssign, Name: pair}, true
	case "==", ">=", "<=", "!=":
		return Token{Kind: KindCompare, Name: pair}, true
	}
	return Token{}, false
}

func oneRuneToken(c rune) (Token, bool) {
	switch c {
	case '(':
		return Token{Kind: KindLParen}, true
	case ')':
		return Token{Kind: KindRParen}, true
	case '[':
		return Token{Kind: KindLBracket}, true
	case ']':
		return Token{Kind: KindRBracket}, true
	case '.':
		return Token{Kind: KindDot}, true
	case ',':
		return Token{Kind: KindComma}, true
	case ':':
		return Token{Kind: KindColon}, true
	case '+':
		return Token{Kind: KindOp, Op: OpAdd}, true
	case '-':
		return Token{Kind: KindOp, Op: OpSub}, true
	case '/':
		return Token{Kind: KindOp, Op: OpDiv}, true
	case '^':
		return Token{Kind: KindOp, Op: OpPow}, true
	case '*', '×', '⋅':
		return Token{Kind: KindOp, Op: OpMul}, true
	case '=':
		return Token{Kind: KindAssign, Name: "="}, true
	case '>':
		return Token{Kind: KindCompare, Name: ">"}, true
	case '<':
		return Token{Kind: KindCompare, Name: "<"}, true
	case 'π':
		return Token{Kind: KindConst, Const: ConstPi}, true
	}
	return Token{}, false
}
