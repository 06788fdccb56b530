// Package token defines the lexemes produced by the lexer and consumed by
// the parser, plus their source positions.
package token

import "fmt"

// Kind enumerates every token the lexer can produce, including the
// synthetic layout tokens (NEWLINE, INDENT, DEDENT) spec.md §3 calls out.
type Kind int

const (
	EOF Kind = iota
	ILLEGAL

	// Layout tokens, synthesized by the indentation pass rather than read
	// directly off the character stream.
	NEWLINE
	INDENT
	DEDENT

	IDENT
	INT
	FLOAT
	STRING
	BOOL

	// Keywords.
	KwFn
	KwLet
	KwIf
	KwElse
	KwMatch
	KwFor
	KwWhile
	KwLoop
	KwReturn
	KwBreak
	KwContinue
	KwTrue
	KwFalse
	KwAnd
	KwOr
	KwNot
	KwType
	KwTrait
	KwImpl
	KwPub
	KwImport
	KwModule
	KwDefer
	KwWith
	KwDo
	KwIn
	KwAs

	// Constructor keywords.
	KwOk
	KwErr
	KwSome
	KwNone

	// Punctuation.
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Colon
	Semicolon
	Dot
	Arrow    // ->
	FatArrow // =>
	Pipe
	Underscore

	// Operators.
	Plus
	Minus
	Star
	Slash
	Percent
	StarStar
	EqEq
	NotEq
	Lt
	LtEq
	Gt
	GtEq
	Assign // =
)

var kindNames = map[Kind]string{
	EOF: "EOF", ILLEGAL: "ILLEGAL",
	NEWLINE: "NEWLINE", INDENT: "INDENT", DEDENT: "DEDENT",
	IDENT: "IDENT", INT: "INT", FLOAT: "FLOAT", STRING: "STRING", BOOL: "BOOL",
	KwFn: "fn", KwLet: "let", KwIf: "if", KwElse: "else", KwMatch: "match",
	KwFor: "for", KwWhile: "while", KwLoop: "loop", KwReturn: "return",
	KwBreak: "break", KwContinue: "continue", KwTrue: "true", KwFalse: "false",
	KwAnd: "and", KwOr: "or", KwNot: "not", KwType: "type", KwTrait: "trait",
	KwImpl: "impl", KwPub: "pub", KwImport: "import", KwModule: "module",
	KwDefer: "defer", KwWith: "with", KwDo: "do", KwIn: "in", KwAs: "as",
	KwOk: "Ok", KwErr: "Err", KwSome: "Some", KwNone: "None",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	LBrace: "{", RBrace: "}", Comma: ",", Colon: ":", Semicolon: ";",
	Dot: ".", Arrow: "->", FatArrow: "=>", Pipe: "|", Underscore: "_",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%", StarStar: "**",
	EqEq: "==", NotEq: "!=", Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=",
	Assign: "=",
}

// Keywords maps identifier spelling to its keyword Kind, used by the lexer
// to classify identifiers after scanning them.
var Keywords = map[string]Kind{
	"fn": KwFn, "let": KwLet, "if": KwIf, "else": KwElse, "match": KwMatch,
	"for": KwFor, "while": KwWhile, "loop": KwLoop, "return": KwReturn,
	"break": KwBreak, "continue": KwContinue, "true": KwTrue, "false": KwFalse,
	"and": KwAnd, "or": KwOr, "not": KwNot, "type": KwType, "trait": KwTrait,
	"impl": KwImpl, "pub": KwPub, "import": KwImport, "module": KwModule,
	"defer": KwDefer, "with": KwWith, "do": KwDo, "in": KwIn, "as": KwAs,
	"Ok": KwOk, "Err": KwErr, "Some": KwSome, "None": KwNone,
}

// String renders a Kind for diagnostics and tests.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Position is a 1-based line/column pair.
type Position struct {
	Line int
	Col  int
}

// String renders "line:col".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is one lexeme: its kind, literal text, and source position.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Col    int
}

// Pos returns the token's position.
func (t Token) Pos() Position { return Position{Line: t.Line, Col: t.Col} }

// String renders the token for diagnostics.
func (t Token) String() string {
	if t.Lexeme != "" {
		return fmt.Sprintf("%s(%q)", t.Kind, t.Lexeme)
	}
	return t.Kind.String()
}
