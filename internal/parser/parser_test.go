package parser_test

import (
	"testing"

	"github.com/fern-lang/fern/internal/arena"
	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/diag"
	"github.com/fern-lang/fern/internal/lexer"
	"github.com/fern-lang/fern/internal/parser"
)

func parseSource(t *testing.T, src string) (*ast.Program, diag.List) {
	t.Helper()
	a := arena.New(0)
	lx := lexer.New(a, src)
	if lx.Errors.HasErrors() {
		t.Fatalf("unexpected lex errors for %q: %v", src, lx.Errors)
	}
	p := parser.New(lx.Tokens())
	return p.ParseProgram()
}

func TestParseSimpleFunction(t *testing.T) {
	prog, errs := parseSource(t, "fn add(a: Int, b: Int) -> Int:\n    a + b\n")
	if errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if len(prog.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(prog.Items))
	}
	fn, ok := prog.Items[0].(*ast.Function)
	if !ok {
		t.Fatalf("expected *ast.Function, got %T", prog.Items[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Errorf("unexpected function shape: %+v", fn)
	}
	block, ok := fn.Body.(*ast.BlockExpr)
	if !ok {
		t.Fatalf("expected block body, got %T", fn.Body)
	}
	if _, ok := block.Block.Tail.(*ast.BinaryExpr); !ok {
		t.Errorf("expected binary expr tail, got %T", block.Block.Tail)
	}
}

func TestParseFunctionWithBlockBody(t *testing.T) {
	src := "fn f(x: Int) -> Int:\n    let y = x + 1\n    y * 2\n"
	prog, errs := parseSource(t, src)
	if errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	fn := prog.Items[0].(*ast.Function)
	block, ok := fn.Body.(*ast.BlockExpr)
	if !ok {
		t.Fatalf("expected block body, got %T", fn.Body)
	}
	if len(block.Block.Stmts) != 1 {
		t.Errorf("expected 1 let statement, got %d", len(block.Block.Stmts))
	}
	if block.Block.Tail == nil {
		t.Error("expected a tail expression")
	}
}

func TestParseIfExpr(t *testing.T) {
	src := "fn f(x: Int) -> Int:\n    if x > 0:\n        1\n    else:\n        0\n"
	prog, errs := parseSource(t, src)
	if errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	fn := prog.Items[0].(*ast.Function)
	block := fn.Body.(*ast.BlockExpr)
	ifExpr, ok := block.Block.Tail.(*ast.IfExpr)
	if !ok {
		t.Fatalf("expected if expr tail, got %T", block.Block.Tail)
	}
	if ifExpr.Else == nil {
		t.Error("expected else branch")
	}
}

func TestParseMatchExpr(t *testing.T) {
	src := "fn f(o: Option[Int]) -> Int:\n    match o:\n        Some(v) -> v\n        None -> 0\n"
	prog, errs := parseSource(t, src)
	if errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	fn := prog.Items[0].(*ast.Function)
	block := fn.Body.(*ast.BlockExpr)
	m, ok := block.Block.Tail.(*ast.MatchExpr)
	if !ok {
		t.Fatalf("expected match expr tail, got %T", block.Block.Tail)
	}
	if len(m.Arms) != 2 {
		t.Errorf("expected 2 arms, got %d", len(m.Arms))
	}
}

func TestParseSumTypeDecl(t *testing.T) {
	src := "type Tree[a] =\n    | Leaf(a)\n    | Empty\n"
	prog, errs := parseSource(t, src)
	if errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	td, ok := prog.Items[0].(*ast.TypeDecl)
	if !ok {
		t.Fatalf("expected *ast.TypeDecl, got %T", prog.Items[0])
	}
	if td.Name != "Tree" || len(td.Variants) != 2 {
		t.Errorf("unexpected type decl shape: %+v", td)
	}
}

func TestParseLambdaAndCall(t *testing.T) {
	src := "fn f() -> Int:\n    let add = (a, b) -> a + b\n    add(1, 2)\n"
	prog, errs := parseSource(t, src)
	if errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	fn := prog.Items[0].(*ast.Function)
	block := fn.Body.(*ast.BlockExpr)
	let := block.Block.Stmts[0].(*ast.LetStmt)
	if _, ok := let.Init.(*ast.LambdaExpr); !ok {
		t.Errorf("expected lambda init, got %T", let.Init)
	}
	if _, ok := block.Block.Tail.(*ast.CallExpr); !ok {
		t.Errorf("expected call tail, got %T", block.Block.Tail)
	}
}

func TestParseOperatorPrecedence(t *testing.T) {
	src := "fn f() -> Int:\n    1 + 2 * 3\n"
	prog, errs := parseSource(t, src)
	if errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	fn := prog.Items[0].(*ast.Function)
	block := fn.Body.(*ast.BlockExpr)
	top, ok := block.Block.Tail.(*ast.BinaryExpr)
	if !ok || top.Op != "+" {
		t.Fatalf("expected top-level '+', got %#v", block.Block.Tail)
	}
	right, ok := top.Right.(*ast.BinaryExpr)
	if !ok || right.Op != "*" {
		t.Errorf("expected '*' to bind tighter than '+', got %#v", top.Right)
	}
}

func TestParsePowerIsRightAssociative(t *testing.T) {
	src := "fn f() -> Int:\n    2 ** 3 ** 2\n"
	prog, errs := parseSource(t, src)
	if errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	fn := prog.Items[0].(*ast.Function)
	block := fn.Body.(*ast.BlockExpr)
	top := block.Block.Tail.(*ast.BinaryExpr)
	if _, ok := top.Right.(*ast.BinaryExpr); !ok {
		t.Errorf("expected right-associative '**', got %#v", top)
	}
	if _, ok := top.Left.(*ast.Literal); !ok {
		t.Errorf("expected left operand to be a literal, got %#v", top.Left)
	}
}

func TestParseTupleAndList(t *testing.T) {
	src := "fn f() -> Int:\n    let t = (1, 2)\n    let l = [1, 2, 3]\n    0\n"
	prog, errs := parseSource(t, src)
	if errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	fn := prog.Items[0].(*ast.Function)
	block := fn.Body.(*ast.BlockExpr)
	tupleLet := block.Block.Stmts[0].(*ast.LetStmt)
	if _, ok := tupleLet.Init.(*ast.TupleExpr); !ok {
		t.Errorf("expected tuple literal, got %T", tupleLet.Init)
	}
	listLet := block.Block.Stmts[1].(*ast.LetStmt)
	if _, ok := listLet.Init.(*ast.ListExpr); !ok {
		t.Errorf("expected list literal, got %T", listLet.Init)
	}
}

func TestParseMissingClosingParenReportsError(t *testing.T) {
	_, errs := parseSource(t, "fn f() -> Int:\n    g(1, 2\n")
	if !errs.HasErrors() {
		t.Error("expected a parse error for the missing ')'")
	}
}

func TestParseUnexpectedTokenReportsError(t *testing.T) {
	_, errs := parseSource(t, "fn f() -> Int:\n    )\n")
	if !errs.HasErrors() {
		t.Error("expected a parse error for the stray ')'")
	}
}

// TestParseTopLevelLetAndExprStmt parses spec.md §8 Scenario 2 verbatim: a
// top-level `let` binding a lambda, followed by two more top-level `let`s
// that call it. program's `stmt` nonterminal is shared between the top
// level and block bodies, so all three lines must parse as plain items,
// not just fn/type/import.
func TestParseTopLevelLetAndExprStmt(t *testing.T) {
	src := "let id = (x) -> x\nlet a = id(1)\nlet b = id(\"x\")\n"
	prog, errs := parseSource(t, src)
	if errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if len(prog.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(prog.Items))
	}

	idLet, ok := prog.Items[0].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected *ast.LetStmt, got %T", prog.Items[0])
	}
	if binder, ok := idLet.Pattern.(*ast.BinderPattern); !ok || binder.Name != "id" {
		t.Errorf("expected binder pattern 'id', got %#v", idLet.Pattern)
	}
	if _, ok := idLet.Init.(*ast.LambdaExpr); !ok {
		t.Errorf("expected lambda initializer, got %T", idLet.Init)
	}

	aLet, ok := prog.Items[1].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected *ast.LetStmt, got %T", prog.Items[1])
	}
	if _, ok := aLet.Init.(*ast.CallExpr); !ok {
		t.Errorf("expected call initializer, got %T", aLet.Init)
	}

	bLet, ok := prog.Items[2].(*ast.LetStmt)
	if !ok {
		t.Fatalf("expected *ast.LetStmt, got %T", prog.Items[2])
	}
	if _, ok := bLet.Init.(*ast.CallExpr); !ok {
		t.Errorf("expected call initializer, got %T", bLet.Init)
	}
}

// TestParseTopLevelBareExprStmt covers the exprStmt half of the top-level
// stmt grammar: a bare expression line with no binding.
func TestParseTopLevelBareExprStmt(t *testing.T) {
	prog, errs := parseSource(t, "fn f() -> Int:\n    0\n\nf()\n")
	if errs.HasErrors() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if len(prog.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(prog.Items))
	}
	stmt, ok := prog.Items[1].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected *ast.ExprStmt, got %T", prog.Items[1])
	}
	if _, ok := stmt.Expr.(*ast.CallExpr); !ok {
		t.Errorf("expected call expr, got %T", stmt.Expr)
	}
}
