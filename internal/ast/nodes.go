// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the type checker and code generator.
package ast

import (
	"fmt"
	"strings"

	"github.com/fern-lang/fern/internal/token"
)

// Position is a source location, reused from the token package.
type Position = token.Position

// Node is the base interface implemented by every AST node.
type Node interface {
	Pos() Position
	String() string
}

// Program is the root of the tree: a module's top-level items.
type Program struct {
	pos   Position
	Items []Item
}

func (p *Program) Pos() Position { return p.pos }
func (p *Program) String() string { return fmt.Sprintf("Program{Items: %d}", len(p.Items)) }

func NewProgram(pos Position, items []Item) *Program {
	return &Program{pos: pos, Items: items}
}

// Item is anything parseItem can return at the top level: a function, a
// type definition, an import, or (since program shares its stmt
// nonterminal with block bodies) a let or expression statement.
type Item interface {
	Node
	itemString() string
}

// Function is a top-level `fn` declaration. Fern functions are
// expression-oriented: Body evaluates to the function's result, there is
// no separate return statement required for the tail position.
type Function struct {
	pos        Position
	Pub        bool
	Name       string
	Params     []Param
	ReturnType TypeExpr // nil when omitted and left to inference
	Body       Expr
}

func (f *Function) Pos() Position  { return f.pos }
func (f *Function) String() string { return fmt.Sprintf("Function{Name: %s}", f.Name) }
func (f *Function) itemString() string { return f.String() }

func NewFunction(pos Position, pub bool, name string, params []Param, ret TypeExpr, body Expr) *Function {
	return &Function{pos: pos, Pub: pub, Name: name, Params: params, ReturnType: ret, Body: body}
}

// Param is one function parameter.
type Param struct {
	pos  Position
	Name string
	Type TypeExpr // nil when omitted and left to inference
}

func (p *Param) Pos() Position  { return p.pos }
func (p *Param) String() string { return fmt.Sprintf("Param{Name: %s}", p.Name) }

func NewParam(pos Position, name string, typ TypeExpr) Param {
	return Param{pos: pos, Name: name, Type: typ}
}

// TypeDecl is a `type` declaration: either a type alias or a sum type with
// one or more variants, each carrying zero or more fields.
type TypeDecl struct {
	pos      Position
	Pub      bool
	Name     string
	Params   []string // type parameters, e.g. `type List[a]`
	Variants []Variant
	Alias    TypeExpr // non-nil for `type Name = <type>` aliases
}

func (t *TypeDecl) Pos() Position  { return t.pos }
func (t *TypeDecl) String() string { return fmt.Sprintf("TypeDecl{Name: %s}", t.Name) }
func (t *TypeDecl) itemString() string { return t.String() }

func NewTypeDecl(pos Position, pub bool, name string, params []string, variants []Variant, alias TypeExpr) *TypeDecl {
	return &TypeDecl{pos: pos, Pub: pub, Name: name, Params: params, Variants: variants, Alias: alias}
}

// Variant is one constructor of a sum type, e.g. `Some(a)` or `None`.
type Variant struct {
	pos    Position
	Name   string
	Fields []TypeExpr
}

func (v *Variant) Pos() Position  { return v.pos }
func (v *Variant) String() string { return fmt.Sprintf("Variant{Name: %s, Fields: %d}", v.Name, len(v.Fields)) }

func NewVariant(pos Position, name string, fields []TypeExpr) Variant {
	return Variant{pos: pos, Name: name, Fields: fields}
}

// ImportItem is a top-level `import` declaration.
type ImportItem struct {
	pos  Position
	Path string
}

func (i *ImportItem) Pos() Position  { return i.pos }
func (i *ImportItem) String() string { return fmt.Sprintf("Import{%s}", i.Path) }
func (i *ImportItem) itemString() string { return i.String() }

func NewImportItem(pos Position, path string) *ImportItem {
	return &ImportItem{pos: pos, Path: path}
}

// Stmt is a statement inside a block. Fern blocks are a sequence of
// statements followed by an optional tail expression; LetStmt and
// ExprStmt are the only statement kinds the grammar produces.
type Stmt interface {
	Node
	stmtString() string
}

// LetStmt binds Pattern to the value of Init for the rest of the
// enclosing block.
type LetStmt struct {
	pos     Position
	Pattern Pattern
	Type    TypeExpr // nil when omitted and left to inference
	Init    Expr
}

func (ls *LetStmt) Pos() Position  { return ls.pos }
func (ls *LetStmt) String() string { return fmt.Sprintf("LetStmt{%s}", ls.Pattern) }
func (ls *LetStmt) stmtString() string { return ls.String() }

// itemString lets a LetStmt also serve as a top-level Item: spec.md §4.2's
// `stmt` nonterminal (letStmt | fnStmt | typeStmt | importStmt | exprStmt)
// is the same production at the top of `program` and inside a block body.
func (ls *LetStmt) itemString() string { return ls.String() }

func NewLetStmt(pos Position, pattern Pattern, typ TypeExpr, init Expr) *LetStmt {
	return &LetStmt{pos: pos, Pattern: pattern, Type: typ, Init: init}
}

// ExprStmt is an expression evaluated for its side effect, discarding its
// value (it must not be the block's tail expression).
type ExprStmt struct {
	pos  Position
	Expr Expr
}

func (es *ExprStmt) Pos() Position  { return es.pos }
func (es *ExprStmt) String() string { return "ExprStmt" }
func (es *ExprStmt) stmtString() string { return es.String() }

// itemString lets an ExprStmt also serve as a top-level Item, same
// rationale as LetStmt.itemString above.
func (es *ExprStmt) itemString() string { return es.String() }

func NewExprStmt(pos Position, expr Expr) *ExprStmt {
	return &ExprStmt{pos: pos, Expr: expr}
}

// Block is a sequence of statements with an optional tail expression.
// A block with a non-nil Tail is itself usable as an Expr.
type Block struct {
	pos   Position
	Stmts []Stmt
	Tail  Expr // nil for a block used purely for side effects
}

func (b *Block) Pos() Position  { return b.pos }
func (b *Block) String() string { return fmt.Sprintf("Block{Stmts: %d}", len(b.Stmts)) }
func (b *Block) exprString() string { return b.String() }

func NewBlock(pos Position, stmts []Stmt, tail Expr) *Block {
	return &Block{pos: pos, Stmts: stmts, Tail: tail}
}

// Expr is any Fern expression. Fern has no statement-only forms besides
// `let` and bare expression statements: if, match, and blocks are all
// expressions.
type Expr interface {
	Node
	exprString() string
}

// Ident is a reference to a bound name.
type Ident struct {
	pos  Position
	Name string
}

func (id *Ident) Pos() Position  { return id.pos }
func (id *Ident) String() string { return fmt.Sprintf("Ident{%s}", id.Name) }
func (id *Ident) exprString() string { return id.String() }

func NewIdent(pos Position, name string) *Ident { return &Ident{pos: pos, Name: name} }

// LiteralKind distinguishes the primitive literal forms.
type LiteralKind int

const (
	IntLit LiteralKind = iota
	FloatLit
	StringLit
	BoolLit
)

// Literal is an int/float/string/bool literal; Val carries the raw lexeme
// (or "true"/"false"), parsed by later stages as needed.
type Literal struct {
	pos Position
	Kind LiteralKind
	Val  string
}

func (l *Literal) Pos() Position { return l.pos }
func (l *Literal) String() string { return fmt.Sprintf("Literal{%v: %s}", l.Kind, l.Val) }
func (l *Literal) exprString() string { return l.String() }

func NewLiteral(pos Position, kind LiteralKind, val string) *Literal {
	return &Literal{pos: pos, Kind: kind, Val: val}
}

// UnaryExpr is a prefix operator applied to one operand: `-x`, `not x`.
type UnaryExpr struct {
	pos  Position
	Op   string
	Expr Expr
}

func (ue *UnaryExpr) Pos() Position { return ue.pos }
func (ue *UnaryExpr) String() string { return fmt.Sprintf("UnaryExpr{%s}", ue.Op) }
func (ue *UnaryExpr) exprString() string { return ue.String() }

func NewUnaryExpr(pos Position, op string, expr Expr) *UnaryExpr {
	return &UnaryExpr{pos: pos, Op: op, Expr: expr}
}

// BinaryExpr is a binary operator application: `a + b`, `x == y`, `p and q`.
type BinaryExpr struct {
	pos   Position
	Left  Expr
	Op    string
	Right Expr
}

func (be *BinaryExpr) Pos() Position { return be.pos }
func (be *BinaryExpr) String() string { return fmt.Sprintf("BinaryExpr{%s}", be.Op) }
func (be *BinaryExpr) exprString() string { return be.String() }

func NewBinaryExpr(pos Position, left Expr, op string, right Expr) *BinaryExpr {
	return &BinaryExpr{pos: pos, Left: left, Op: op, Right: right}
}

// CallExpr applies Func to Args.
type CallExpr struct {
	pos  Position
	Func Expr
	Args []Expr
}

func (ce *CallExpr) Pos() Position { return ce.pos }
func (ce *CallExpr) String() string { return fmt.Sprintf("CallExpr{Args: %d}", len(ce.Args)) }
func (ce *CallExpr) exprString() string { return ce.String() }

func NewCallExpr(pos Position, fn Expr, args []Expr) *CallExpr {
	return &CallExpr{pos: pos, Func: fn, Args: args}
}

// LambdaExpr is an anonymous function literal: `(a, b) -> a + b`.
type LambdaExpr struct {
	pos    Position
	Params []Param
	Body   Expr
}

func (le *LambdaExpr) Pos() Position { return le.pos }
func (le *LambdaExpr) String() string { return fmt.Sprintf("LambdaExpr{Params: %d}", len(le.Params)) }
func (le *LambdaExpr) exprString() string { return le.String() }

func NewLambdaExpr(pos Position, params []Param, body Expr) *LambdaExpr {
	return &LambdaExpr{pos: pos, Params: params, Body: body}
}

// IfExpr evaluates Cond and yields Then or Else; both branches must agree
// in type since an if is itself an expression.
type IfExpr struct {
	pos  Position
	Cond Expr
	Then Expr
	Else Expr // nil only for a statement-position if with no else, still typed Unit
}

func (ie *IfExpr) Pos() Position { return ie.pos }
func (ie *IfExpr) String() string { return "IfExpr" }
func (ie *IfExpr) exprString() string { return ie.String() }

func NewIfExpr(pos Position, cond, then, els Expr) *IfExpr {
	return &IfExpr{pos: pos, Cond: cond, Then: then, Else: els}
}

// MatchArm is one `pattern -> expr` arm of a match expression.
type MatchArm struct {
	pos     Position
	Pattern Pattern
	Guard   Expr // nil when the arm has no `if` guard
	Body    Expr
}

func (a *MatchArm) Pos() Position { return a.pos }
func (a *MatchArm) String() string { return fmt.Sprintf("MatchArm{%s}", a.Pattern) }

func NewMatchArm(pos Position, pattern Pattern, guard, body Expr) MatchArm {
	return MatchArm{pos: pos, Pattern: pattern, Guard: guard, Body: body}
}

// MatchExpr scrutinizes Subject against each arm in order.
type MatchExpr struct {
	pos     Position
	Subject Expr
	Arms    []MatchArm
}

func (me *MatchExpr) Pos() Position { return me.pos }
func (me *MatchExpr) String() string { return fmt.Sprintf("MatchExpr{Arms: %d}", len(me.Arms)) }
func (me *MatchExpr) exprString() string { return me.String() }

func NewMatchExpr(pos Position, subject Expr, arms []MatchArm) *MatchExpr {
	return &MatchExpr{pos: pos, Subject: subject, Arms: arms}
}

// TupleExpr is a tuple literal `(a, b, c)`.
type TupleExpr struct {
	pos   Position
	Elems []Expr
}

func (te *TupleExpr) Pos() Position { return te.pos }
func (te *TupleExpr) String() string { return fmt.Sprintf("TupleExpr{Elems: %d}", len(te.Elems)) }
func (te *TupleExpr) exprString() string { return te.String() }

func NewTupleExpr(pos Position, elems []Expr) *TupleExpr {
	return &TupleExpr{pos: pos, Elems: elems}
}

// ListExpr is a list literal `[a, b, c]`.
type ListExpr struct {
	pos   Position
	Elems []Expr
}

func (le *ListExpr) Pos() Position { return le.pos }
func (le *ListExpr) String() string { return fmt.Sprintf("ListExpr{Elems: %d}", len(le.Elems)) }
func (le *ListExpr) exprString() string { return le.String() }

func NewListExpr(pos Position, elems []Expr) *ListExpr {
	return &ListExpr{pos: pos, Elems: elems}
}

// BlockExpr wraps a Block so it can appear anywhere an Expr is expected.
type BlockExpr struct {
	pos   Position
	Block *Block
}

func (be *BlockExpr) Pos() Position { return be.pos }
func (be *BlockExpr) String() string { return "BlockExpr" }
func (be *BlockExpr) exprString() string { return be.String() }

func NewBlockExpr(pos Position, block *Block) *BlockExpr {
	return &BlockExpr{pos: pos, Block: block}
}

// ConstructorExpr builds a value of a sum type variant, or one of the
// built-in Ok/Err/Some/None constructors.
type ConstructorExpr struct {
	pos  Position
	Name string
	Args []Expr
}

func (ce *ConstructorExpr) Pos() Position { return ce.pos }
func (ce *ConstructorExpr) String() string { return fmt.Sprintf("ConstructorExpr{%s}", ce.Name) }
func (ce *ConstructorExpr) exprString() string { return ce.String() }

func NewConstructorExpr(pos Position, name string, args []Expr) *ConstructorExpr {
	return &ConstructorExpr{pos: pos, Name: name, Args: args}
}

// Pattern is a match/let target pattern.
type Pattern interface {
	Node
	patternString() string
}

// WildcardPattern matches anything and binds nothing (`_`).
type WildcardPattern struct{ pos Position }

func (w *WildcardPattern) Pos() Position { return w.pos }
func (w *WildcardPattern) String() string { return "_" }
func (w *WildcardPattern) patternString() string { return w.String() }

func NewWildcardPattern(pos Position) *WildcardPattern { return &WildcardPattern{pos: pos} }

// BinderPattern matches anything and binds it to Name.
type BinderPattern struct {
	pos  Position
	Name string
}

func (b *BinderPattern) Pos() Position { return b.pos }
func (b *BinderPattern) String() string { return b.Name }
func (b *BinderPattern) patternString() string { return b.String() }

func NewBinderPattern(pos Position, name string) *BinderPattern {
	return &BinderPattern{pos: pos, Name: name}
}

// LiteralPattern matches a specific literal value.
type LiteralPattern struct {
	pos     Position
	Literal *Literal
}

func (lp *LiteralPattern) Pos() Position { return lp.pos }
func (lp *LiteralPattern) String() string { return lp.Literal.String() }
func (lp *LiteralPattern) patternString() string { return lp.String() }

func NewLiteralPattern(pos Position, lit *Literal) *LiteralPattern {
	return &LiteralPattern{pos: pos, Literal: lit}
}

// TuplePattern destructures a tuple.
type TuplePattern struct {
	pos   Position
	Elems []Pattern
}

func (tp *TuplePattern) Pos() Position { return tp.pos }
func (tp *TuplePattern) String() string {
	parts := make([]string, len(tp.Elems))
	for i, e := range tp.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (tp *TuplePattern) patternString() string { return tp.String() }

func NewTuplePattern(pos Position, elems []Pattern) *TuplePattern {
	return &TuplePattern{pos: pos, Elems: elems}
}

// ConstructorPattern matches a sum-type variant (or Ok/Err/Some/None) and
// destructures its fields.
type ConstructorPattern struct {
	pos    Position
	Name   string
	Fields []Pattern
}

func (cp *ConstructorPattern) Pos() Position { return cp.pos }
func (cp *ConstructorPattern) String() string { return fmt.Sprintf("%s(...)", cp.Name) }
func (cp *ConstructorPattern) patternString() string { return cp.String() }

func NewConstructorPattern(pos Position, name string, fields []Pattern) *ConstructorPattern {
	return &ConstructorPattern{pos: pos, Name: name, Fields: fields}
}

// TypeExpr is a type as written in source (annotations, return types,
// variant fields), distinct from internal/types.Type which is the
// checker's inferred representation.
type TypeExpr interface {
	Node
	typeString() string
}

// NamedTypeExpr is a type referenced by name, optionally applied to type
// arguments: `Int`, `List[a]`, `Option[Int]`.
type NamedTypeExpr struct {
	pos  Position
	Name string
	Args []TypeExpr
}

func (nt *NamedTypeExpr) Pos() Position { return nt.pos }
func (nt *NamedTypeExpr) String() string { return fmt.Sprintf("Type{%s}", nt.Name) }
func (nt *NamedTypeExpr) typeString() string { return nt.String() }

func NewNamedTypeExpr(pos Position, name string, args []TypeExpr) *NamedTypeExpr {
	return &NamedTypeExpr{pos: pos, Name: name, Args: args}
}

// FnTypeExpr is a function type `(Int, Int) -> Int`.
type FnTypeExpr struct {
	pos     Position
	Params  []TypeExpr
	Return  TypeExpr
}

func (ft *FnTypeExpr) Pos() Position { return ft.pos }
func (ft *FnTypeExpr) String() string { return fmt.Sprintf("FnType{Params: %d}", len(ft.Params)) }
func (ft *FnTypeExpr) typeString() string { return ft.String() }

func NewFnTypeExpr(pos Position, params []TypeExpr, ret TypeExpr) *FnTypeExpr {
	return &FnTypeExpr{pos: pos, Params: params, Return: ret}
}

// TupleTypeExpr is a tuple type `(Int, String)`.
type TupleTypeExpr struct {
	pos   Position
	Elems []TypeExpr
}

func (tt *TupleTypeExpr) Pos() Position { return tt.pos }
func (tt *TupleTypeExpr) String() string { return fmt.Sprintf("TupleType{Elems: %d}", len(tt.Elems)) }
func (tt *TupleTypeExpr) typeString() string { return tt.String() }

func NewTupleTypeExpr(pos Position, elems []TypeExpr) *TupleTypeExpr {
	return &TupleTypeExpr{pos: pos, Elems: elems}
}

// VarTypeExpr is a lowercase type variable in a signature, e.g. the `a` in
// `fn identity(x: a) -> a`.
type VarTypeExpr struct {
	pos  Position
	Name string
}

func (vt *VarTypeExpr) Pos() Position { return vt.pos }
func (vt *VarTypeExpr) String() string { return fmt.Sprintf("VarType{%s}", vt.Name) }
func (vt *VarTypeExpr) typeString() string { return vt.String() }

func NewVarTypeExpr(pos Position, name string) *VarTypeExpr {
	return &VarTypeExpr{pos: pos, Name: name}
}
