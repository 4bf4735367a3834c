// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package expr

import (
	"errors"
	"strings"
	"testing"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, t := range tokens {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		input   string
		wantNum float64
		wantLen int
	}{
		{"0.123+pi", 0.123, 5},
		{"0.2E1 + x", 2.0, 5},
		{"20.0e-1", 2.0, 7},
		{"8 ", 8.0, 1},
		{"2.0*pi ", 2.0, 3},
		{"-1.0", -1.0, 4},
		{"-1.0e-1", -0.1, 7},
	}
	for _, tt := range tests {
		tok, n, ok := scanNumber([]rune(tt.input))
		if !ok {
			t.Errorf("scanNumber(%q) failed", tt.input)
			continue
		}
		if tok.Num != tt.wantNum || n != tt.wantLen {
			t.Errorf("scanNumber(%q) = (%v, %d), want (%v, %d)",
				tt.input, tok.Num, n, tt.wantNum, tt.wantLen)
		}
	}
}

func TestTokenizeReservedVariableName(t *testing.T) {
	_, err := Tokenize("pi * 2", []string{"pi"})
	var terr *TokenizeError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TokenizeError, got %v", err)
	}
	if !strings.Contains(terr.Msg, "reserved") {
		t.Errorf("error should mention reserved word, got %q", terr.Msg)
	}

	if _, err := Tokenize("ip * 2", []string{"ip"}); err != nil {
		t.Errorf("non-reserved variable rejected: %v", err)
	}
}

func TestTokenizeInvalidCharacter(t *testing.T) {
	_, err := Tokenize("(x{", []string{"x"})
	var terr *TokenizeError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TokenizeError, got %v", err)
	}
	if terr.Pos != 2 {
		t.Errorf("error position = %d, want 2", terr.Pos)
	}
}

func TestTokenizeExpression(t *testing.T) {
	want := []Kind{
		KindLParen, KindNumber, KindOp, KindConst, KindOp, KindFunc,
		KindLParen, KindOp, KindVar, KindOp, KindVar, KindRParen, KindRParen,
		KindOp, KindFunc, KindLParen, KindNumber, KindOp, KindFunc,
		KindLParen, KindVar, KindRParen, KindComma, KindNumber, KindRParen,
	}

	// Whitespace must not change the token stream.
	inputs := []string{
		"(2.0*pi * exp(-x*x)) / max(1.0 + sqrt(y), 0)",
		"(2.0*pi*exp(-x*x))/max(1.0+sqrt(y),0)",
		"(2.0 * pi *exp( -x * x)) / max(1.0 + sqrt(y), 0)   ",
	}
	for _, input := range inputs {
		tokens, err := Tokenize(input, []string{"x", "y"})
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", input, err)
		}
		got := kinds(tokens)
		if len(got) != len(want) {
			t.Fatalf("Tokenize(%q) yielded %d tokens, want %d", input, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Tokenize(%q) token %d kind = %d, want %d", input, i, got[i], want[i])
			}
		}
	}
}

func TestTokenizeFieldAccess(t *testing.T) {
	// For "a.b" only "a" has to be declared; "b" is resolved during
	// evaluation.
	tokens, err := Tokenize("a.b", []string{"a"})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Kind{KindVar, KindDot, KindVar}
	for i, k := range want {
		if tokens[i].Kind != k {
			t.Errorf("token %d kind = %d, want %d", i, tokens[i].Kind, k)
		}
	}

	_, err = Tokenize("b.a", []string{"a"})
	var terr *TokenizeError
	if !errors.As(err, &terr) {
		t.Fatalf("expected undefined variable error, got %v", err)
	}
	if !strings.Contains(terr.Msg, "undefined variable") {
		t.Errorf("unexpected message %q", terr.Msg)
	}
}

func TestTokenizeNegativeIndex(t *testing.T) {
	tokens, err := Tokenize("v[-1] - v[0]", []string{"v"})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Kind{
		KindVar, KindLBracket, KindNumber, KindRBracket,
		KindOp, KindVar, KindLBracket, KindNumber, KindRBracket,
	}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(got), len(want))
	}
	if tokens[2].Num != -1.0 {
		t.Errorf("index literal = %v, want -1", tokens[2].Num)
	}
	// The '-' between the two index expressions is a binary operator, not
	// the sign of a negative literal.
	if tokens[4].Kind != KindOp || tokens[4].Op != OpSub {
		t.Errorf("token 4 = %v, want binary minus", tokens[4])
	}
}

func TestTokenizeSliceRange(t *testing.T) {
	tokens, err := Tokenize("v[0:-1]", []string{"v"})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	want := []Kind{KindVar, KindLBracket, KindNumber, KindColon, KindNumber, KindRBracket}
	got := kinds(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d kind = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestUserMessageCaret(t *testing.T) {
	expression := "x + $y"
	_, err := Tokenize(expression, []string{"x", "y"})
	var terr *TokenizeError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TokenizeError, got %v", err)
	}
	msg := terr.UserMessage(expression)
	lines := strings.Split(msg, "\n")
	if len(lines) < 3 {
		t.Fatalf("user message should have at least 3 lines, got %q", msg)
	}
	if lines[1] != expression {
		t.Errorf("second line should echo the expression, got %q", lines[1])
	}
	if !strings.HasSuffix(lines[2], "^") {
		t.Errorf("third line should end with a caret, got %q", lines[2])
	}
	if caret := strings.Index(lines[2], "^"); caret != 4 {
		t.Errorf("caret at column %d, want 4", caret)
	}
}
