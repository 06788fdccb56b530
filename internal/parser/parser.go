package parser

import (
	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/diag"
	"github.com/fern-lang/fern/internal/token"
)

// Parser is a recursive-descent parser over a TokenStream, collecting
// diagnostics instead of aborting on the first syntax error.
type Parser struct {
	stream TokenStream
	Errors diag.List
}

// New builds a Parser over an already-tokenized stream.
func New(tokens []token.Token) *Parser {
	return &Parser{stream: NewTokenStream(tokens)}
}

// ParseProgram parses a whole source file and returns its Program node
// plus any diagnostics collected along the way. Parsing never aborts on
// error: it resynchronizes at item boundaries and keeps going so the
// caller sees every syntax error in one pass.
func (p *Parser) ParseProgram() (*ast.Program, diag.List) {
	pos := p.stream.Pos()
	var items []ast.Item
	p.skipNewlines()
	for !p.stream.IsEOF() {
		item := p.parseItem()
		if item != nil {
			items = append(items, item)
		} else if !p.stream.IsEOF() {
			p.recover(token.NEWLINE, token.DEDENT)
		}
		p.skipNewlines()
	}
	return ast.NewProgram(pos, items), p.Errors
}

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.Errors = append(p.Errors, diag.New(diag.Parse, pos, format, args...))
}

// skipNewlines consumes any run of blank NEWLINE tokens between items or
// statements, which the layout-aware lexer may emit around blank lines.
func (p *Parser) skipNewlines() {
	for p.stream.Peek().Kind == token.NEWLINE {
		p.stream.Next()
	}
}

// recover skips tokens until it reaches one of the given sync kinds (left
// in the stream for the caller) or consumes a NEWLINE/DEDENT that marks a
// natural resynchronization point, mirroring the teacher's
// sync-token-based recover.
func (p *Parser) recover(syncs ...token.Kind) bool {
	for !p.stream.IsEOF() {
		tok := p.stream.Peek()
		for _, s := range syncs {
			if tok.Kind == s {
				return true
			}
		}
		p.stream.Next()
		if tok.Kind == token.NEWLINE || tok.Kind == token.DEDENT {
			return true
		}
	}
	return true
}

// expect consumes the next token if it has the given kind, else records a
// diagnostic and returns the unexpected token without consuming it.
func (p *Parser) expect(k token.Kind, desc string) token.Token {
	tok := p.stream.Peek()
	if tok.Kind != k {
		p.errorf(tok.Pos(), "expected %s, got %s", desc, tok.String())
		return tok
	}
	return p.stream.Next()
}
