package token_test

import (
	"testing"

	"github.com/fern-lang/fern/internal/token"
)

func TestTokenPos(t *testing.T) {
	tok := token.Token{Kind: token.IDENT, Lexeme: "test", Line: 5, Col: 10}

	pos := tok.Pos()
	if pos.Line != 5 {
		t.Errorf("expected line 5, got %d", pos.Line)
	}
	if pos.Col != 10 {
		t.Errorf("expected col 10, got %d", pos.Col)
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok      token.Token
		expected string
	}{
		{token.Token{Kind: token.EOF}, "EOF"},
		{token.Token{Kind: token.IDENT, Lexeme: "foo"}, `IDENT("foo")`},
		{token.Token{Kind: token.KwFn, Lexeme: "fn"}, `fn("fn")`},
		{token.Token{Kind: token.INT, Lexeme: "42"}, `INT("42")`},
		{token.Token{Kind: token.FLOAT, Lexeme: "3.14"}, `FLOAT("3.14")`},
		{token.Token{Kind: token.STRING, Lexeme: "hello"}, `STRING("hello")`},
		{token.Token{Kind: token.Plus, Lexeme: "+"}, `+("+")`},
		{token.Token{Kind: token.LParen, Lexeme: "("}, `(("(")`},
		{token.Token{Kind: token.NEWLINE}, "NEWLINE"},
		{token.Token{Kind: token.INDENT}, "INDENT"},
		{token.Token{Kind: token.DEDENT}, "DEDENT"},
	}

	for i, tt := range tests {
		if got := tt.tok.String(); got != tt.expected {
			t.Errorf("case %d: expected %q, got %q", i, tt.expected, got)
		}
	}
}

func TestKeywordsTable(t *testing.T) {
	for _, kw := range []string{"fn", "let", "if", "else", "match", "Ok", "Err", "Some", "None"} {
		if _, ok := token.Keywords[kw]; !ok {
			t.Errorf("expected %q to be a keyword", kw)
		}
	}
	if _, ok := token.Keywords["not_a_keyword"]; ok {
		t.Error("did not expect not_a_keyword to be a keyword")
	}
}
