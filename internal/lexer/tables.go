package lexer

import "github.com/fern-lang/fern/internal/token"

// multiRune maps multi-character operator/punctuation spellings to their
// Kind, checked longest-first by scanOpOrPunct. Single-character spellings
// are handled by singleRune below.
var multiRune = map[string]token.Kind{
	"->": token.Arrow,
	"=>": token.FatArrow,
	"==": token.EqEq,
	"!=": token.NotEq,
	"<=": token.LtEq,
	">=": token.GtEq,
	"**": token.StarStar,
}

var singleRune = map[rune]token.Kind{
	'(': token.LParen, ')': token.RParen,
	'[': token.LBracket, ']': token.RBracket,
	'{': token.LBrace, '}': token.RBrace,
	',': token.Comma, ':': token.Colon, ';': token.Semicolon,
	'.': token.Dot, '|': token.Pipe,
	'+': token.Plus, '-': token.Minus, '*': token.Star,
	'/': token.Slash, '%': token.Percent,
	'<': token.Lt, '>': token.Gt, '=': token.Assign,
}
