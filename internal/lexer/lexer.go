package lexer

import (
	"strconv"
	"strings"

	"github.com/fern-lang/fern/internal/arena"
	"github.com/fern-lang/fern/internal/diag"
	"github.com/fern-lang/fern/internal/token"
)

// Lexer produces a token stream from Fern source text. It tokenizes the
// whole input eagerly on construction, the way the teacher's Lex() feeds a
// materialized []Token into its parser's TokenStream, which makes Save and
// Restore trivial index bookkeeping rather than a scanner checkpoint.
type Lexer struct {
	arena  *arena.Arena
	tokens []token.Token
	pos    int
	Errors diag.List
}

// State is an opaque checkpoint returned by Save and consumed by Restore.
type State struct {
	pos int
}

// New tokenizes source and returns a Lexer positioned at the first token.
// The arena is stored on the Lexer but not allocated from; token text is
// kept as plain Go strings.
func New(a *arena.Arena, source string) *Lexer {
	toks, errs := tokenize(source)
	return &Lexer{arena: a, tokens: toks, Errors: errs}
}

// Next returns the current token and advances past it.
func (l *Lexer) Next() token.Token {
	t := l.Peek()
	if l.pos < len(l.tokens)-1 {
		l.pos++
	}
	return t
}

// Peek returns the current token without advancing.
func (l *Lexer) Peek() token.Token {
	if l.pos >= len(l.tokens) {
		return l.tokens[len(l.tokens)-1]
	}
	return l.tokens[l.pos]
}

// IsEOF reports whether the current token is the terminal EOF.
func (l *Lexer) IsEOF() bool { return l.Peek().Kind == token.EOF }

// Save checkpoints the current position for later Restore.
func (l *Lexer) Save() State { return State{pos: l.pos} }

// Restore rewinds the lexer to a previously saved State.
func (l *Lexer) Restore(s State) { l.pos = s.pos }

// Tokens returns the full materialized token slice, used by the parser's
// TokenStream implementation.
func (l *Lexer) Tokens() []token.Token { return l.tokens }

const tabWidth = 4

// tokenize runs the rune scanner plus the indentation-layout pass over the
// whole source and returns the synthesized token stream. Errors are
// collected rather than aborting the scan, matching the teacher's
// error-collection style throughout the pipeline.
func tokenize(source string) ([]token.Token, diag.List) {
	sc := newScanner(source)
	stack := newIndentStack()
	var toks []token.Token
	var errs diag.List

	atLineStart := true
	hadTokenOnLine := false

	emit := func(k token.Kind, lexeme string, line, col int) {
		toks = append(toks, token.Token{Kind: k, Lexeme: lexeme, Line: line, Col: col})
	}

	for {
		if atLineStart {
			line := sc.line
			width, blank := measureIndent(sc)
			if blank {
				if sc.isEOF() {
					break
				}
				skipToNextLine(sc)
				continue
			}
			if sc.isEOF() {
				break
			}
			switch {
			case width > stack.top():
				if !stack.push(width) {
					errs = append(errs, diag.New(diag.Lex, token.Position{Line: line, Col: width + 1},
						"indentation too deep (max %d levels)", maxIndentDepth))
				} else {
					emit(token.INDENT, "", line, 1)
				}
			case width < stack.top():
				for width < stack.top() {
					stack.pop()
					emit(token.DEDENT, "", line, 1)
				}
				if width != stack.top() {
					errs = append(errs, diag.New(diag.Lex, token.Position{Line: line, Col: width + 1},
						"mismatched dedent: no enclosing indentation level matches column %d", width+1))
					stack.widths[len(stack.widths)-1] = width
				}
			}
			atLineStart = false
			hadTokenOnLine = false
		}

		if sc.isEOF() {
			break
		}

		switch {
		case sc.ch == ' ' || sc.ch == '\t':
			sc.advance()
		case sc.ch == '#':
			for sc.ch != '\n' && !sc.isEOF() {
				sc.advance()
			}
		case sc.ch == '\n':
			if hadTokenOnLine {
				emit(token.NEWLINE, "", sc.line, sc.col)
			}
			sc.advance()
			atLineStart = true
			hadTokenOnLine = false
		default:
			line, col := sc.line, sc.col
			k, lexeme, err := scanToken(sc)
			if err != nil {
				errs = append(errs, diag.New(diag.Lex, token.Position{Line: line, Col: col}, "%s", err.Error()))
			}
			emit(k, lexeme, line, col)
			hadTokenOnLine = true
		}
	}

	if hadTokenOnLine {
		emit(token.NEWLINE, "", sc.line, sc.col)
	}
	for stack.len() > 1 {
		stack.pop()
		emit(token.DEDENT, "", sc.line, 1)
	}
	emit(token.EOF, "", sc.line, sc.col)

	return toks, errs
}

// measureIndent consumes leading whitespace on the current line and
// reports its column width (tabs count as tabWidth columns) plus whether
// the line is blank or comment-only, in which case it should not affect
// the indent stack per spec.md §4.1.
func measureIndent(sc *scanner) (width int, blank bool) {
	for {
		switch sc.ch {
		case ' ':
			width++
			sc.advance()
		case '\t':
			width += tabWidth
			sc.advance()
		case '\n':
			return width, true
		case '#':
			return width, true
		case 0:
			if sc.isEOF() {
				return width, true
			}
			sc.advance()
		default:
			return width, false
		}
	}
}

// skipToNextLine consumes the remainder of a blank or comment-only line,
// including its terminating newline if present.
func skipToNextLine(sc *scanner) {
	for sc.ch != '\n' && !sc.isEOF() {
		sc.advance()
	}
	if sc.ch == '\n' {
		sc.advance()
	}
}

// scanToken reads one real token starting at the scanner's current rune.
func scanToken(sc *scanner) (token.Kind, string, error) {
	switch {
	case isIdentStart(sc.ch):
		return scanIdent(sc)
	case isDigit(sc.ch):
		return scanNumber(sc)
	case sc.ch == '"':
		return scanString(sc)
	default:
		return scanOpOrPunct(sc)
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func scanIdent(sc *scanner) (token.Kind, string, error) {
	var b strings.Builder
	for isIdentCont(sc.ch) {
		b.WriteRune(sc.ch)
		sc.advance()
	}
	lexeme := b.String()
	if lexeme == "_" {
		return token.Underscore, lexeme, nil
	}
	if k, ok := token.Keywords[lexeme]; ok {
		if k == token.KwTrue || k == token.KwFalse {
			return token.BOOL, lexeme, nil
		}
		return k, lexeme, nil
	}
	return token.IDENT, lexeme, nil
}

func scanNumber(sc *scanner) (token.Kind, string, error) {
	var b strings.Builder
	for isDigit(sc.ch) {
		b.WriteRune(sc.ch)
		sc.advance()
	}
	isFloat := false
	if sc.ch == '.' && isDigit(sc.peek()) {
		isFloat = true
		b.WriteRune(sc.ch)
		sc.advance()
		for isDigit(sc.ch) {
			b.WriteRune(sc.ch)
			sc.advance()
		}
	}
	lexeme := b.String()
	if isFloat {
		return token.FLOAT, lexeme, nil
	}
	if _, err := strconv.ParseInt(lexeme, 10, 64); err != nil {
		return token.ILLEGAL, lexeme, &lexError{"integer literal " + lexeme + " overflows 64 bits"}
	}
	return token.INT, lexeme, nil
}

type lexError struct{ msg string }

func (e *lexError) Error() string { return e.msg }

func scanString(sc *scanner) (token.Kind, string, error) {
	sc.advance() // opening quote
	var b strings.Builder
	var firstErr error
	for {
		switch {
		case sc.ch == '"':
			sc.advance()
			return token.STRING, b.String(), firstErr
		case sc.isEOF():
			return token.STRING, b.String(), &lexError{"unterminated string literal"}
		case sc.ch == '\n':
			return token.STRING, b.String(), &lexError{"unterminated string literal (raw newline)"}
		case sc.ch == '\\':
			escCh := sc.peek()
			sc.advance()
			switch sc.ch {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case '0':
				b.WriteByte(0)
			default:
				if firstErr == nil {
					firstErr = &lexError{"invalid escape sequence '\\" + string(escCh) + "'"}
				}
				b.WriteRune(sc.ch)
			}
			sc.advance()
		default:
			b.WriteRune(sc.ch)
			sc.advance()
		}
	}
}

func scanOpOrPunct(sc *scanner) (token.Kind, string, error) {
	two := string(sc.ch) + string(sc.peek())
	if k, ok := multiRune[two]; ok {
		sc.advance()
		sc.advance()
		return k, two, nil
	}
	r := sc.ch
	if k, ok := singleRune[r]; ok {
		sc.advance()
		return k, string(r), nil
	}
	sc.advance()
	return token.ILLEGAL, string(r), &lexError{"unexpected character " + strconv.QuoteRune(r)}
}
