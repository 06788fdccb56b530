package lexer_test

import (
	"testing"

	"github.com/fern-lang/fern/internal/arena"
	"github.com/fern-lang/fern/internal/lexer"
	"github.com/fern-lang/fern/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func assertKinds(t *testing.T, source string, want []token.Kind) {
	t.Helper()
	a := arena.New(0)
	lx := lexer.New(a, source)
	got := kinds(lx.Tokens())
	if len(got) != len(want) {
		t.Fatalf("Lex(%q): expected %d tokens, got %d: %v", source, len(want), len(got), got)
	}
	for i, k := range want {
		if got[i] != k {
			t.Errorf("Lex(%q): token %d: expected %v, got %v", source, i, k, got[i])
		}
	}
}

func TestLexKeywords(t *testing.T) {
	assertKinds(t, "fn let if else match",
		[]token.Kind{token.KwFn, token.KwLet, token.KwIf, token.KwElse, token.KwMatch, token.NEWLINE, token.EOF})
}

func TestLexIdentifiers(t *testing.T) {
	assertKinds(t, "my_var foo123 _private",
		[]token.Kind{token.IDENT, token.IDENT, token.IDENT, token.NEWLINE, token.EOF})
}

func TestLexIntLiterals(t *testing.T) {
	a := arena.New(0)
	lx := lexer.New(a, "42 1000000")
	toks := lx.Tokens()
	if toks[0].Kind != token.INT || toks[0].Lexeme != "42" {
		t.Errorf("expected INT(42), got %v", toks[0])
	}
	if toks[1].Kind != token.INT || toks[1].Lexeme != "1000000" {
		t.Errorf("expected INT(1000000), got %v", toks[1])
	}
}

func TestLexIntOverflow(t *testing.T) {
	a := arena.New(0)
	lx := lexer.New(a, "99999999999999999999")
	if !lx.Errors.HasErrors() {
		t.Error("expected an overflow diagnostic")
	}
}

func TestLexFloatLiterals(t *testing.T) {
	tests := []string{"3.14", "2.5", "0.0"}
	for _, in := range tests {
		a := arena.New(0)
		lx := lexer.New(a, in)
		toks := lx.Tokens()
		if toks[0].Kind != token.FLOAT || toks[0].Lexeme != in {
			t.Errorf("Lex(%q): expected FLOAT(%q), got %v", in, in, toks[0])
		}
	}
}

func TestLexStringLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"hello"`, "hello"},
		{`"hello\nworld"`, "hello\nworld"},
		{`"tab\there"`, "tab\there"},
		{`"quote\"inside"`, `quote"inside`},
	}
	for _, tt := range tests {
		a := arena.New(0)
		lx := lexer.New(a, tt.input)
		toks := lx.Tokens()
		if toks[0].Kind != token.STRING {
			t.Errorf("Lex(%q): expected STRING, got %v", tt.input, toks[0].Kind)
			continue
		}
		if toks[0].Lexeme != tt.expected {
			t.Errorf("Lex(%q): expected %q, got %q", tt.input, tt.expected, toks[0].Lexeme)
		}
	}
}

func TestLexUnterminatedString(t *testing.T) {
	a := arena.New(0)
	lx := lexer.New(a, `"unterminated`)
	if !lx.Errors.HasErrors() {
		t.Error("expected an unterminated-string diagnostic")
	}
}

func TestLexInvalidEscapeReportsError(t *testing.T) {
	a := arena.New(0)
	lx := lexer.New(a, `"bad \q escape"`)
	if !lx.Errors.HasErrors() {
		t.Error("expected an invalid-escape diagnostic")
	}
}

func TestLexOperators(t *testing.T) {
	assertKinds(t, "+ - * / % ** == != < > <= >=",
		[]token.Kind{
			token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.StarStar,
			token.EqEq, token.NotEq, token.Lt, token.Gt, token.LtEq, token.GtEq,
			token.NEWLINE, token.EOF,
		})
}

func TestLexArrowsAndPunct(t *testing.T) {
	assertKinds(t, "( ) [ ] { } , : ; . -> => |",
		[]token.Kind{
			token.LParen, token.RParen, token.LBracket, token.RBracket,
			token.LBrace, token.RBrace, token.Comma, token.Colon, token.Semicolon,
			token.Dot, token.Arrow, token.FatArrow, token.Pipe,
			token.NEWLINE, token.EOF,
		})
}

func TestLexComments(t *testing.T) {
	assertKinds(t, "let x = 1 # a trailing comment",
		[]token.Kind{token.KwLet, token.IDENT, token.Assign, token.INT, token.NEWLINE, token.EOF})
}

func TestLexBlankAndCommentLinesDoNotAffectIndent(t *testing.T) {
	src := "fn f():\n    let x = 1\n\n    # a comment\n    let y = 2\n"
	a := arena.New(0)
	lx := lexer.New(a, src)
	if lx.Errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", lx.Errors)
	}
	got := kinds(lx.Tokens())
	indents, dedents := 0, 0
	for _, k := range got {
		if k == token.INDENT {
			indents++
		}
		if k == token.DEDENT {
			dedents++
		}
	}
	if indents != 1 || dedents != 1 {
		t.Errorf("expected exactly one INDENT/DEDENT pair, got %d INDENT, %d DEDENT", indents, dedents)
	}
}

func TestLexIndentDedent(t *testing.T) {
	src := "fn f():\n    let x = 1\n    x\nlet y = 2\n"
	assertKinds(t, src, []token.Kind{
		token.KwFn, token.IDENT, token.LParen, token.RParen, token.Colon, token.NEWLINE,
		token.INDENT,
		token.KwLet, token.IDENT, token.Assign, token.INT, token.NEWLINE,
		token.IDENT, token.NEWLINE,
		token.DEDENT,
		token.KwLet, token.IDENT, token.Assign, token.INT, token.NEWLINE,
		token.EOF,
	})
}

func TestLexNestedIndent(t *testing.T) {
	src := "fn f():\n    if x:\n        y\n    z\n"
	assertKinds(t, src, []token.Kind{
		token.KwFn, token.IDENT, token.LParen, token.RParen, token.Colon, token.NEWLINE,
		token.INDENT,
		token.KwIf, token.IDENT, token.Colon, token.NEWLINE,
		token.INDENT,
		token.IDENT, token.NEWLINE,
		token.DEDENT,
		token.IDENT, token.NEWLINE,
		token.DEDENT,
		token.EOF,
	})
}

func TestLexMismatchedDedent(t *testing.T) {
	src := "fn f():\n    if x:\n        y\n      z\n"
	a := arena.New(0)
	lx := lexer.New(a, src)
	if !lx.Errors.HasErrors() {
		t.Error("expected a mismatched-dedent diagnostic")
	}
}

func TestLexEOFEmitsTrailingDedents(t *testing.T) {
	src := "fn f():\n    x"
	a := arena.New(0)
	lx := lexer.New(a, src)
	toks := lx.Tokens()
	last := toks[len(toks)-1]
	if last.Kind != token.EOF {
		t.Fatalf("expected final token to be EOF, got %v", last)
	}
	if toks[len(toks)-2].Kind != token.DEDENT {
		t.Errorf("expected DEDENT before EOF when input has no trailing newline, got %v", toks[len(toks)-2])
	}
}

func TestLexPositions(t *testing.T) {
	a := arena.New(0)
	lx := lexer.New(a, "fn main")
	toks := lx.Tokens()
	if toks[0].Line != 1 || toks[0].Col != 1 {
		t.Errorf("expected first token at 1:1, got %d:%d", toks[0].Line, toks[0].Col)
	}
}

func TestLexSaveRestore(t *testing.T) {
	a := arena.New(0)
	lx := lexer.New(a, "a b c")
	first := lx.Next()
	state := lx.Save()
	second := lx.Next()
	lx.Restore(state)
	replay := lx.Next()
	if first.Lexeme != "a" || second.Lexeme != "b" || replay.Lexeme != "b" {
		t.Errorf("save/restore mismatch: first=%v second=%v replay=%v", first, second, replay)
	}
}

func TestLexBooleanLiterals(t *testing.T) {
	assertKinds(t, "true false", []token.Kind{token.BOOL, token.BOOL, token.NEWLINE, token.EOF})
}

func TestLexConstructorKeywords(t *testing.T) {
	assertKinds(t, "Ok Err Some None",
		[]token.Kind{token.KwOk, token.KwErr, token.KwSome, token.KwNone, token.NEWLINE, token.EOF})
}

func TestLexCompleteFunction(t *testing.T) {
	src := "fn add(a: Int, b: Int) -> Int:\n    a + b\n"
	a := arena.New(0)
	lx := lexer.New(a, src)
	if lx.Errors.HasErrors() {
		t.Fatalf("unexpected errors: %v", lx.Errors)
	}
	hasFn, hasArrow, hasIndent := false, false, false
	for _, tok := range lx.Tokens() {
		switch tok.Kind {
		case token.KwFn:
			hasFn = true
		case token.Arrow:
			hasArrow = true
		case token.INDENT:
			hasIndent = true
		}
	}
	if !hasFn || !hasArrow || !hasIndent {
		t.Errorf("expected fn/arrow/indent in tokenized function, got fn=%v arrow=%v indent=%v", hasFn, hasArrow, hasIndent)
	}
}
