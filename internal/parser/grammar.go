package parser

import (
	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/token"
)

// parseItem parses one top-level statement. spec.md §4.2's `program` rule
// (`program = { stmt (NEWLINE | ';')+ }`) uses the same `stmt` nonterminal
// (`letStmt | fnStmt | typeStmt | importStmt | exprStmt`) at the top level
// as inside a block body, so a bare `let` or expression statement is a
// valid top-level item, not just `fn`/`type`/`import`.
func (p *Parser) parseItem() ast.Item {
	pub := false
	if p.stream.Peek().Kind == token.KwPub {
		p.stream.Next()
		pub = true
	}
	tok := p.stream.Peek()
	switch tok.Kind {
	case token.KwFn:
		return p.parseFunction(pub)
	case token.KwType:
		return p.parseTypeDecl(pub)
	case token.KwImport:
		return p.parseImport()
	case token.KwLet:
		return p.parseTopLevelLet()
	default:
		return p.parseTopLevelExprStmt()
	}
}

// parseTopLevelLet parses a top-level `let pattern [: type] = expr`,
// identical to the `let` handling inside parseStmt but returned as an
// ast.Item since Program.Items, not a Block, holds it.
func (p *Parser) parseTopLevelLet() ast.Item {
	tok := p.stream.Next() // 'let'
	pattern := p.parsePattern()
	var typ ast.TypeExpr
	if p.stream.Peek().Kind == token.Colon {
		p.stream.Next()
		typ = p.parseTypeExpr()
	}
	p.expect(token.Assign, "'='")
	init := p.parseExpr()
	if init == nil {
		return nil
	}
	p.consumeStmtEnd()
	return ast.NewLetStmt(tok.Pos(), pattern, typ, init)
}

// parseTopLevelExprStmt parses a bare top-level expression statement. A
// failed parse has already recorded its own diagnostic (parsePrimary's
// default case), so this just propagates the nil to ParseProgram's
// recovery loop instead of reporting a second, less specific error.
func (p *Parser) parseTopLevelExprStmt() ast.Item {
	expr := p.parseExpr()
	if expr == nil {
		return nil
	}
	p.consumeStmtEnd()
	return ast.NewExprStmt(expr.Pos(), expr)
}

func (p *Parser) parseFunction(pub bool) *ast.Function {
	pos := p.stream.Peek().Pos()
	p.stream.Next() // 'fn'
	nameTok := p.expect(token.IDENT, "function name")
	p.expect(token.LParen, "'('")
	var params []ast.Param
	for p.stream.Peek().Kind != token.RParen && !p.stream.IsEOF() {
		pnTok := p.expect(token.IDENT, "parameter name")
		var typ ast.TypeExpr
		if p.stream.Peek().Kind == token.Colon {
			p.stream.Next()
			typ = p.parseTypeExpr()
		}
		params = append(params, ast.NewParam(pnTok.Pos(), pnTok.Lexeme, typ))
		if p.stream.Peek().Kind == token.Comma {
			p.stream.Next()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")
	var ret ast.TypeExpr
	if p.stream.Peek().Kind == token.Arrow {
		p.stream.Next()
		ret = p.parseTypeExpr()
	}
	p.expect(token.Colon, "':'")
	body := p.parseSuite()
	return ast.NewFunction(pos, pub, nameTok.Lexeme, params, ret, body)
}

func (p *Parser) parseImport() *ast.ImportItem {
	pos := p.stream.Peek().Pos()
	p.stream.Next() // 'import'
	var path string
	for {
		tok := p.expect(token.IDENT, "import path segment")
		path += tok.Lexeme
		if p.stream.Peek().Kind == token.Dot {
			p.stream.Next()
			path += "."
			continue
		}
		break
	}
	return ast.NewImportItem(pos, path)
}

// parseTypeDecl parses `type Name[params] = <alias-type>` or a sum type:
//
//	type Name[params] =
//	    | Variant(Field, ...)
//	    | Variant
func (p *Parser) parseTypeDecl(pub bool) *ast.TypeDecl {
	pos := p.stream.Peek().Pos()
	p.stream.Next() // 'type'
	nameTok := p.expect(token.IDENT, "type name")
	var params []string
	if p.stream.Peek().Kind == token.LBracket {
		p.stream.Next()
		for p.stream.Peek().Kind != token.RBracket && !p.stream.IsEOF() {
			pt := p.expect(token.IDENT, "type parameter")
			params = append(params, pt.Lexeme)
			if p.stream.Peek().Kind == token.Comma {
				p.stream.Next()
				continue
			}
			break
		}
		p.expect(token.RBracket, "']'")
	}
	p.expect(token.Assign, "'='")

	if p.stream.Peek().Kind == token.NEWLINE {
		p.stream.Next()
		p.expect(token.INDENT, "indented variant list")
		var variants []ast.Variant
		for p.stream.Peek().Kind == token.Pipe {
			p.stream.Next()
			vTok := p.expect(token.IDENT, "variant name")
			var fields []ast.TypeExpr
			if p.stream.Peek().Kind == token.LParen {
				p.stream.Next()
				for p.stream.Peek().Kind != token.RParen && !p.stream.IsEOF() {
					fields = append(fields, p.parseTypeExpr())
					if p.stream.Peek().Kind == token.Comma {
						p.stream.Next()
						continue
					}
					break
				}
				p.expect(token.RParen, "')'")
			}
			variants = append(variants, ast.NewVariant(vTok.Pos(), vTok.Lexeme, fields))
			if p.stream.Peek().Kind == token.NEWLINE {
				p.stream.Next()
			}
		}
		p.expect(token.DEDENT, "dedent after variant list")
		return ast.NewTypeDecl(pos, pub, nameTok.Lexeme, params, variants, nil)
	}

	alias := p.parseTypeExpr()
	return ast.NewTypeDecl(pos, pub, nameTok.Lexeme, params, nil, alias)
}

// parseSuite parses a block body following a ':': either an indented
// block of statements with an optional tail expression, or (for compact
// one-line forms) a single inline expression.
func (p *Parser) parseSuite() ast.Expr {
	if p.stream.Peek().Kind != token.NEWLINE {
		return p.parseExpr()
	}
	pos := p.stream.Peek().Pos()
	p.stream.Next() // NEWLINE
	p.expect(token.INDENT, "indented block")
	block := p.parseStmtsUntilDedent(pos)
	p.expect(token.DEDENT, "dedent")
	return ast.NewBlockExpr(pos, block)
}

// parseStmtsUntilDedent parses statements up to (but not including) a
// DEDENT, treating a final bare expression statement as the block's tail.
func (p *Parser) parseStmtsUntilDedent(pos token.Position) *ast.Block {
	var stmts []ast.Stmt
	var tail ast.Expr
	for p.stream.Peek().Kind != token.DEDENT && !p.stream.IsEOF() {
		if p.stream.Peek().Kind == token.NEWLINE {
			p.stream.Next()
			continue
		}
		stmt, isTail := p.parseStmt()
		if stmt == nil {
			p.recover(token.NEWLINE, token.DEDENT)
			continue
		}
		if isTail {
			tail = stmt.(*ast.ExprStmt).Expr
			break
		}
		stmts = append(stmts, stmt)
	}
	return ast.NewBlock(pos, stmts, tail)
}

// parseStmt parses one statement. The second return value reports
// whether this expression-statement is the block's tail (i.e. followed
// by nothing but a NEWLINE before DEDENT/EOF), matching Fern's expression-
// oriented block semantics where the final bare expression is the value.
func (p *Parser) parseStmt() (ast.Stmt, bool) {
	tok := p.stream.Peek()
	if tok.Kind == token.KwLet {
		p.stream.Next()
		pattern := p.parsePattern()
		var typ ast.TypeExpr
		if p.stream.Peek().Kind == token.Colon {
			p.stream.Next()
			typ = p.parseTypeExpr()
		}
		p.expect(token.Assign, "'='")
		init := p.parseExpr()
		if init == nil {
			return nil, false
		}
		p.consumeStmtEnd()
		return ast.NewLetStmt(tok.Pos(), pattern, typ, init), false
	}

	expr := p.parseExpr()
	if expr == nil {
		return nil, false
	}
	if p.stream.Peek().Kind == token.NEWLINE {
		p.stream.Next()
		if k := p.stream.Peek().Kind; k != token.DEDENT && k != token.EOF {
			return ast.NewExprStmt(expr.Pos(), expr), false
		}
	}
	// Nothing but a NEWLINE before DEDENT/EOF: this expression is the
	// block's tail.
	return ast.NewExprStmt(expr.Pos(), expr), true
}

func (p *Parser) consumeStmtEnd() {
	if p.stream.Peek().Kind == token.NEWLINE {
		p.stream.Next()
	}
}

// Operator precedence, lowest to highest: or, and, comparison (non-assoc),
// additive, multiplicative, power (right-assoc), unary, call/postfix.

func (p *Parser) parseExpr() ast.Expr { return p.parseOr() }

func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for left != nil && p.stream.Peek().Kind == token.KwOr {
		opTok := p.stream.Next()
		right := p.parseAnd()
		if right == nil {
			p.errorf(opTok.Pos(), "expected expression after 'or'")
			return nil
		}
		left = ast.NewBinaryExpr(left.Pos(), left, "or", right)
	}
	return left
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseComparison()
	for left != nil && p.stream.Peek().Kind == token.KwAnd {
		opTok := p.stream.Next()
		right := p.parseComparison()
		if right == nil {
			p.errorf(opTok.Pos(), "expected expression after 'and'")
			return nil
		}
		left = ast.NewBinaryExpr(left.Pos(), left, "and", right)
	}
	return left
}

var comparisonOps = map[token.Kind]string{
	token.EqEq: "==", token.NotEq: "!=",
	token.Lt: "<", token.LtEq: "<=", token.Gt: ">", token.GtEq: ">=",
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	if left == nil {
		return nil
	}
	if op, ok := comparisonOps[p.stream.Peek().Kind]; ok {
		opTok := p.stream.Next()
		right := p.parseAdditive()
		if right == nil {
			p.errorf(opTok.Pos(), "expected expression after '%s'", op)
			return nil
		}
		left = ast.NewBinaryExpr(left.Pos(), left, op, right)
	}
	return left
}

var additiveOps = map[token.Kind]string{token.Plus: "+", token.Minus: "-"}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for left != nil {
		op, ok := additiveOps[p.stream.Peek().Kind]
		if !ok {
			break
		}
		opTok := p.stream.Next()
		right := p.parseMultiplicative()
		if right == nil {
			p.errorf(opTok.Pos(), "expected expression after '%s'", op)
			return nil
		}
		left = ast.NewBinaryExpr(left.Pos(), left, op, right)
	}
	return left
}

var multiplicativeOps = map[token.Kind]string{token.Star: "*", token.Slash: "/", token.Percent: "%"}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parsePower()
	for left != nil {
		op, ok := multiplicativeOps[p.stream.Peek().Kind]
		if !ok {
			break
		}
		opTok := p.stream.Next()
		right := p.parsePower()
		if right == nil {
			p.errorf(opTok.Pos(), "expected expression after '%s'", op)
			return nil
		}
		left = ast.NewBinaryExpr(left.Pos(), left, op, right)
	}
	return left
}

// parsePower is right-associative: `2 ** 3 ** 2` parses as `2 ** (3 ** 2)`.
func (p *Parser) parsePower() ast.Expr {
	left := p.parseUnary()
	if left != nil && p.stream.Peek().Kind == token.StarStar {
		opTok := p.stream.Next()
		right := p.parsePower()
		if right == nil {
			p.errorf(opTok.Pos(), "expected expression after '**'")
			return nil
		}
		return ast.NewBinaryExpr(left.Pos(), left, "**", right)
	}
	return left
}

func (p *Parser) parseUnary() ast.Expr {
	tok := p.stream.Peek()
	switch tok.Kind {
	case token.Minus:
		p.stream.Next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return ast.NewUnaryExpr(tok.Pos(), "-", operand)
	case token.KwNot:
		p.stream.Next()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		return ast.NewUnaryExpr(tok.Pos(), "not", operand)
	default:
		return p.parseCall()
	}
}

// parseCall parses a primary expression followed by zero or more call
// suffixes: `f(x)(y)`.
func (p *Parser) parseCall() ast.Expr {
	expr := p.parsePrimary()
	for expr != nil && p.stream.Peek().Kind == token.LParen {
		pos := p.stream.Next().Pos()
		args := p.parseArgList(token.RParen)
		p.expect(token.RParen, "')'")
		expr = ast.NewCallExpr(pos, expr, args)
	}
	return expr
}

func (p *Parser) parseArgList(end token.Kind) []ast.Expr {
	var args []ast.Expr
	for p.stream.Peek().Kind != end && !p.stream.IsEOF() {
		arg := p.parseExpr()
		if arg == nil {
			p.recover(token.Comma, end)
		} else {
			args = append(args, arg)
		}
		if p.stream.Peek().Kind == token.Comma {
			p.stream.Next()
			continue
		}
		break
	}
	return args
}

func (p *Parser) parsePrimary() ast.Expr {
	tok := p.stream.Peek()
	pos := tok.Pos()
	switch tok.Kind {
	case token.INT:
		p.stream.Next()
		return ast.NewLiteral(pos, ast.IntLit, tok.Lexeme)
	case token.FLOAT:
		p.stream.Next()
		return ast.NewLiteral(pos, ast.FloatLit, tok.Lexeme)
	case token.STRING:
		p.stream.Next()
		return ast.NewLiteral(pos, ast.StringLit, tok.Lexeme)
	case token.BOOL:
		p.stream.Next()
		return ast.NewLiteral(pos, ast.BoolLit, tok.Lexeme)
	case token.IDENT:
		p.stream.Next()
		return ast.NewIdent(pos, tok.Lexeme)
	case token.KwOk, token.KwErr, token.KwSome, token.KwNone:
		return p.parseConstructor()
	case token.KwIf:
		return p.parseIf()
	case token.KwMatch:
		return p.parseMatch()
	case token.KwDo:
		p.stream.Next()
		p.expect(token.Colon, "':'")
		return p.parseSuite()
	case token.LParen:
		if p.looksLikeLambdaParams() {
			return p.parseLambda()
		}
		return p.parseParenOrTuple()
	case token.LBracket:
		return p.parseListLit()
	default:
		p.errorf(pos, "expected an expression, got %s", tok.String())
		if !p.stream.IsEOF() {
			p.stream.Next()
		}
		return nil
	}
}

func (p *Parser) parseConstructor() ast.Expr {
	tok := p.stream.Next()
	var args []ast.Expr
	if p.stream.Peek().Kind == token.LParen {
		p.stream.Next()
		args = p.parseArgList(token.RParen)
		p.expect(token.RParen, "')'")
	}
	return ast.NewConstructorExpr(tok.Pos(), tok.Lexeme, args)
}

func (p *Parser) parseIf() ast.Expr {
	pos := p.stream.Next().Pos() // 'if'
	cond := p.parseExpr()
	p.expect(token.Colon, "':'")
	then := p.parseSuite()
	var els ast.Expr
	p.skipNewlines()
	if p.stream.Peek().Kind == token.KwElse {
		p.stream.Next()
		if p.stream.Peek().Kind == token.KwIf {
			els = p.parseIf()
		} else {
			p.expect(token.Colon, "':'")
			els = p.parseSuite()
		}
	}
	return ast.NewIfExpr(pos, cond, then, els)
}

// parseMatch parses either form spec.md §4.2 allows for a match body: the
// inline, comma-separated arm list its EBNF literally describes
// (`match x: 1 -> 10, 2 -> 20, _ -> 0`), or an indented block with one arm
// per line, matching every other colon-introduced body in the grammar.
func (p *Parser) parseMatch() ast.Expr {
	pos := p.stream.Next().Pos() // 'match'
	subject := p.parseExpr()
	p.expect(token.Colon, "':'")

	if p.stream.Peek().Kind != token.NEWLINE {
		arms := []ast.MatchArm{p.parseMatchArm()}
		for p.stream.Peek().Kind == token.Comma {
			p.stream.Next()
			arms = append(arms, p.parseMatchArm())
		}
		return ast.NewMatchExpr(pos, subject, arms)
	}

	p.stream.Next() // NEWLINE
	p.expect(token.INDENT, "indented match arms")
	var arms []ast.MatchArm
	for p.stream.Peek().Kind != token.DEDENT && !p.stream.IsEOF() {
		if p.stream.Peek().Kind == token.NEWLINE {
			p.stream.Next()
			continue
		}
		arms = append(arms, p.parseMatchArm())
	}
	p.expect(token.DEDENT, "dedent after match arms")
	return ast.NewMatchExpr(pos, subject, arms)
}

func (p *Parser) parseMatchArm() ast.MatchArm {
	armPos := p.stream.Peek().Pos()
	pattern := p.parsePattern()
	var guard ast.Expr
	if p.stream.Peek().Kind == token.KwIf {
		p.stream.Next()
		guard = p.parseExpr()
	}
	p.expect(token.Arrow, "'->'")
	body := p.parseSuite()
	return ast.NewMatchArm(armPos, pattern, guard, body)
}

// looksLikeLambdaParams implements spec.md §4.2's tie-break: "A parameter
// list followed by `->` is a lambda; otherwise parentheses are grouping."
// Called with the LParen still unconsumed, it scans ahead (bounded by the
// matching close paren) without mutating parser state, so a failed guess
// costs nothing — the same token-layer lookahead spec.md §4.1 describes
// for bounded backtracking.
func (p *Parser) looksLikeLambdaParams() bool {
	depth := 0
	for i := 1; ; i++ {
		tok := p.stream.PeekN(i)
		switch tok.Kind {
		case token.EOF:
			return false
		case token.LParen:
			depth++
		case token.RParen:
			if depth == 0 {
				return p.stream.PeekN(i+1).Kind == token.Arrow
			}
			depth--
		}
	}
}

// parseLambda parses `(params) -> expr`, spec.md §4.2's lambda production.
func (p *Parser) parseLambda() ast.Expr {
	pos := p.stream.Next().Pos() // '('
	var params []ast.Param
	for p.stream.Peek().Kind != token.RParen && !p.stream.IsEOF() {
		pnTok := p.expect(token.IDENT, "parameter name")
		var typ ast.TypeExpr
		if p.stream.Peek().Kind == token.Colon {
			p.stream.Next()
			typ = p.parseTypeExpr()
		}
		params = append(params, ast.NewParam(pnTok.Pos(), pnTok.Lexeme, typ))
		if p.stream.Peek().Kind == token.Comma {
			p.stream.Next()
			continue
		}
		break
	}
	p.expect(token.RParen, "')'")
	p.expect(token.Arrow, "'->'")
	body := p.parseExpr()
	return ast.NewLambdaExpr(pos, params, body)
}

func (p *Parser) parseParenOrTuple() ast.Expr {
	pos := p.stream.Next().Pos() // '('
	if p.stream.Peek().Kind == token.RParen {
		p.stream.Next()
		return ast.NewTupleExpr(pos, nil)
	}
	first := p.parseExpr()
	if p.stream.Peek().Kind != token.Comma {
		p.expect(token.RParen, "')'")
		return first
	}
	elems := []ast.Expr{first}
	for p.stream.Peek().Kind == token.Comma {
		p.stream.Next()
		if p.stream.Peek().Kind == token.RParen {
			break
		}
		elems = append(elems, p.parseExpr())
	}
	p.expect(token.RParen, "')'")
	return ast.NewTupleExpr(pos, elems)
}

func (p *Parser) parseListLit() ast.Expr {
	pos := p.stream.Next().Pos() // '['
	elems := p.parseArgList(token.RBracket)
	p.expect(token.RBracket, "']'")
	return ast.NewListExpr(pos, elems)
}

// parsePattern parses a match/let pattern.
func (p *Parser) parsePattern() ast.Pattern {
	tok := p.stream.Peek()
	pos := tok.Pos()
	switch tok.Kind {
	case token.Underscore:
		p.stream.Next()
		return ast.NewWildcardPattern(pos)
	case token.IDENT:
		// `Name(...)` is a user-declared variant; a bare name is a binder.
		if p.stream.PeekN(1).Kind != token.LParen {
			p.stream.Next()
			return ast.NewBinderPattern(pos, tok.Lexeme)
		}
		fallthrough
	case token.KwOk, token.KwErr, token.KwSome, token.KwNone:
		p.stream.Next()
		var fields []ast.Pattern
		if p.stream.Peek().Kind == token.LParen {
			p.stream.Next()
			for p.stream.Peek().Kind != token.RParen && !p.stream.IsEOF() {
				fields = append(fields, p.parsePattern())
				if p.stream.Peek().Kind == token.Comma {
					p.stream.Next()
					continue
				}
				break
			}
			p.expect(token.RParen, "')'")
		}
		return ast.NewConstructorPattern(pos, tok.Lexeme, fields)
	case token.INT, token.FLOAT, token.STRING, token.BOOL:
		lit := p.parsePrimary().(*ast.Literal)
		return ast.NewLiteralPattern(pos, lit)
	case token.LParen:
		p.stream.Next()
		var elems []ast.Pattern
		for p.stream.Peek().Kind != token.RParen && !p.stream.IsEOF() {
			elems = append(elems, p.parsePattern())
			if p.stream.Peek().Kind == token.Comma {
				p.stream.Next()
				continue
			}
			break
		}
		p.expect(token.RParen, "')'")
		return ast.NewTuplePattern(pos, elems)
	default:
		p.errorf(pos, "expected a pattern, got %s", tok.String())
		if !p.stream.IsEOF() {
			p.stream.Next()
		}
		return ast.NewWildcardPattern(pos)
	}
}

// parseTypeExpr parses a type as written in source: a named type
// (optionally applied to type arguments), a parenthesized tuple or
// function type, or a lowercase type variable.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	tok := p.stream.Peek()
	pos := tok.Pos()
	switch tok.Kind {
	case token.IDENT:
		p.stream.Next()
		if isLowerIdent(tok.Lexeme) {
			return ast.NewVarTypeExpr(pos, tok.Lexeme)
		}
		var args []ast.TypeExpr
		if p.stream.Peek().Kind == token.LBracket {
			p.stream.Next()
			for p.stream.Peek().Kind != token.RBracket && !p.stream.IsEOF() {
				args = append(args, p.parseTypeExpr())
				if p.stream.Peek().Kind == token.Comma {
					p.stream.Next()
					continue
				}
				break
			}
			p.expect(token.RBracket, "']'")
		}
		return ast.NewNamedTypeExpr(pos, tok.Lexeme, args)
	case token.LParen:
		p.stream.Next()
		var elems []ast.TypeExpr
		for p.stream.Peek().Kind != token.RParen && !p.stream.IsEOF() {
			elems = append(elems, p.parseTypeExpr())
			if p.stream.Peek().Kind == token.Comma {
				p.stream.Next()
				continue
			}
			break
		}
		p.expect(token.RParen, "')'")
		if p.stream.Peek().Kind == token.Arrow {
			p.stream.Next()
			ret := p.parseTypeExpr()
			return ast.NewFnTypeExpr(pos, elems, ret)
		}
		if len(elems) == 1 {
			return elems[0]
		}
		return ast.NewTupleTypeExpr(pos, elems)
	default:
		p.errorf(pos, "expected a type, got %s", tok.String())
		if !p.stream.IsEOF() {
			p.stream.Next()
		}
		return ast.NewNamedTypeExpr(pos, "Error", nil)
	}
}

func isLowerIdent(s string) bool {
	return len(s) > 0 && s[0] >= 'a' && s[0] <= 'z'
}
