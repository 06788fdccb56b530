// Package sema implements Fern's Hindley-Milner type checker: two
// declaration/definition passes over a Program (mirroring the teacher's
// checkCrateDeclarations/checkCrateDefinitions split), built on
// internal/types' union-find Vars, Unify, and level-based generalization
// instead of the teacher's flat name-based TypeInfo comparisons.
package sema

import (
	"github.com/fern-lang/fern/internal/abi"
	"github.com/fern-lang/fern/internal/ast"
	"github.com/fern-lang/fern/internal/diag"
	"github.com/fern-lang/fern/internal/types"
)

// constructorInfo records a sum-type variant's shape so both
// ConstructorExpr and ConstructorPattern can instantiate it: the owning
// type's name, its type parameters, and the variant's field types as
// written (still referencing those parameters).
type constructorInfo struct {
	typeName   string
	typeParams []string
	fieldExprs []ast.TypeExpr
}

// Checker accumulates diagnostics while inferring types over a Program,
// exposing the same clear/has/first-error surface as the teacher's
// Checker so a caller (CLI or REPL) can drive it the same way.
type Checker struct {
	env          *types.Env
	gen          *types.VarGen
	Errors       diag.List
	typeDecls    map[string]*ast.TypeDecl
	constructors map[string]*constructorInfo
	exprTypes    map[ast.Expr]types.Type
	funcTypes    map[string]*types.Fn
}

// NewChecker returns a Checker with the builtin environment already
// registered.
func NewChecker() *Checker {
	env := types.NewEnv()
	gen := types.NewVarGen()
	registerBuiltins(env, gen)
	return &Checker{
		env:          env,
		gen:          gen,
		typeDecls:    map[string]*ast.TypeDecl{},
		constructors: map[string]*constructorInfo{},
		exprTypes:    map[ast.Expr]types.Type{},
	}
}

// ExprType returns the type CheckProgram inferred for expr, for the code
// generator to query after checking succeeds. It reports false for an
// expr that was never visited (e.g. checking aborted before reaching it).
func (c *Checker) ExprType(expr ast.Expr) (types.Type, bool) {
	t, ok := c.exprTypes[expr]
	return t, ok
}

// Env exposes the checker's global environment, e.g. for a REPL that
// wants to inspect what's in scope.
func (c *Checker) Env() *types.Env { return c.env }

// ClearErrors resets the diagnostic list, e.g. between REPL entries.
func (c *Checker) ClearErrors() { c.Errors = nil }

// HasErrors reports whether any error-severity diagnostic was recorded.
func (c *Checker) HasErrors() bool { return c.Errors.HasErrors() }

// FirstError returns the first error-severity diagnostic, if any.
func (c *Checker) FirstError() (diag.Diagnostic, bool) { return c.Errors.First() }

func (c *Checker) error(pos ast.Position, format string, args ...any) {
	c.Errors = append(c.Errors, diag.New(diag.Check, pos, format, args...))
}

func (c *Checker) warn(pos ast.Position, format string, args ...any) {
	c.Errors = append(c.Errors, diag.Warningf(diag.Check, pos, format, args...))
}

// CheckProgram runs the full two-pass check: register every type/function
// declaration, then check every function body in source order,
// generalizing each function's inferred type into a reusable polymorphic
// scheme as soon as its body is checked. Mutual recursion between
// top-level functions is supported by binding every function
// monomorphically before any body is checked; a call to a function whose
// body comes later in the file uses that monomorphic binding.
func (c *Checker) CheckProgram(prog *ast.Program) {
	c.registerTypeDecls(prog)

	c.funcTypes = map[string]*types.Fn{}
	// Signatures are built one level inside the top level so that their
	// still-unbound variables can be generalized at level 0.
	c.gen.EnterLevel()
	for _, item := range prog.Items {
		fn, ok := item.(*ast.Function)
		if !ok {
			continue
		}
		c.funcTypes[fn.Name] = c.declareFunction(fn)
	}
	c.gen.ExitLevel()

	// A top-level let must be checked in source order, not declare-then-
	// check like functions: `let b = id("x")` on line 3 depends on the
	// generalized scheme `let id = ...` on line 1 already extended into
	// c.env, exactly as it would between two statements in a block body.
	for _, item := range prog.Items {
		switch it := item.(type) {
		case *ast.Function:
			c.checkFunctionBody(it, c.funcTypes[it.Name])
			c.env.Extend(it.Name, types.Generalize(c.funcTypes[it.Name], 0))
		case *ast.LetStmt:
			c.checkLetStmt(it)
		case *ast.ExprStmt:
			c.InferExpr(it.Expr)
		}
	}
}

// FuncSignature returns the concrete parameter/return types CheckProgram
// inferred for a top-level function, for the code generator to lower a
// call without re-deriving the signature.
func (c *Checker) FuncSignature(name string) (*types.Fn, bool) {
	ft, ok := c.funcTypes[name]
	return ft, ok
}

// TypeDecl returns a registered sum-type declaration by name, for the
// code generator to enumerate a type's variants when lowering a match.
func (c *Checker) TypeDecl(name string) (*ast.TypeDecl, bool) {
	td, ok := c.typeDecls[name]
	return td, ok
}

// VariantTag returns the owning type's name, this variant's packed-word
// tag, and its field count, for lowering a constructor or a
// ConstructorPattern to a tag compare. Ok/Err/Some/None use the fixed
// tags spec.md §6 assigns Result/Option; a user-declared variant's tag is
// its 0-based position among its type's variants.
func (c *Checker) VariantTag(name string) (typeName string, tag int32, fieldCount int, ok bool) {
	switch name {
	case "Ok":
		return "Result", abi.ResultOkTag, 1, true
	case "Err":
		return "Result", abi.ResultErrTag, 1, true
	case "Some":
		return "Option", abi.OptionSomeTag, 1, true
	case "None":
		return "Option", abi.OptionNoneTag, 0, true
	}
	info, ok := c.constructors[name]
	if !ok {
		return "", 0, 0, false
	}
	td := c.typeDecls[info.typeName]
	for i, v := range td.Variants {
		if v.Name == name {
			return info.typeName, int32(i), len(info.fieldExprs), true
		}
	}
	return "", 0, 0, false
}

// declareFunction builds and binds a function's signature type before any
// body is checked, using a fresh Var for every omitted annotation and a
// single fresh Var per distinct lowercase type-parameter name.
func (c *Checker) declareFunction(fn *ast.Function) *types.Fn {
	tvEnv := map[string]*types.Var{}
	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		if p.Type != nil {
			params[i] = c.resolveTypeExpr(p.Type, tvEnv)
		} else {
			params[i] = c.gen.Fresh()
		}
	}
	var ret types.Type
	if fn.ReturnType != nil {
		ret = c.resolveTypeExpr(fn.ReturnType, tvEnv)
	} else {
		ret = c.gen.Fresh()
	}
	ft := &types.Fn{Params: params, Return: ret}
	c.env.Extend(fn.Name, types.Mono(ft))
	return ft
}

func (c *Checker) checkFunctionBody(fn *ast.Function, ft *types.Fn) {
	c.gen.EnterLevel()
	c.env.Push()
	for i, p := range fn.Params {
		c.env.Extend(p.Name, types.Mono(ft.Params[i]))
	}
	bodyType := c.InferExpr(fn.Body)
	if err := types.Unify(bodyType, ft.Return); err != nil {
		c.error(fn.Body.Pos(), "function %s: %v", fn.Name, err)
	}
	c.env.Pop()
	c.gen.ExitLevel()
}

func (c *Checker) registerTypeDecls(prog *ast.Program) {
	for _, item := range prog.Items {
		td, ok := item.(*ast.TypeDecl)
		if !ok {
			continue
		}
		c.typeDecls[td.Name] = td
		for i := range td.Variants {
			v := td.Variants[i]
			c.constructors[v.Name] = &constructorInfo{
				typeName:   td.Name,
				typeParams: td.Params,
				fieldExprs: v.Fields,
			}
		}
	}
}

// InferExpr infers and returns expr's type against the checker's current
// environment, recording any diagnostic and returning types.ErrorType{}
// on failure so checking can continue without cascading. The result is
// memoized against expr so a later codegen pass can recover it via
// ExprType without re-running inference.
func (c *Checker) InferExpr(expr ast.Expr) types.Type {
	t := c.inferExpr(expr)
	c.exprTypes[expr] = t
	return t
}

func (c *Checker) inferExpr(expr ast.Expr) types.Type {
	switch e := expr.(type) {
	case *ast.Literal:
		return c.inferLiteral(e)
	case *ast.Ident:
		return c.inferIdent(e)
	case *ast.UnaryExpr:
		return c.inferUnary(e)
	case *ast.BinaryExpr:
		return c.inferBinary(e)
	case *ast.CallExpr:
		return c.inferCall(e)
	case *ast.LambdaExpr:
		return c.inferLambda(e)
	case *ast.IfExpr:
		return c.inferIf(e)
	case *ast.MatchExpr:
		return c.inferMatch(e)
	case *ast.TupleExpr:
		return c.inferTuple(e)
	case *ast.ListExpr:
		return c.inferList(e)
	case *ast.BlockExpr:
		return c.inferBlock(e.Block)
	case *ast.ConstructorExpr:
		return c.inferConstructor(e)
	default:
		c.error(expr.Pos(), "internal: unhandled expression kind %T", expr)
		return types.ErrorType{}
	}
}

func (c *Checker) inferLiteral(l *ast.Literal) types.Type {
	switch l.Kind {
	case ast.IntLit:
		return types.Int{}
	case ast.FloatLit:
		return types.Float{}
	case ast.StringLit:
		return types.Str{}
	case ast.BoolLit:
		return types.Bool{}
	default:
		c.error(l.Pos(), "internal: unhandled literal kind %v", l.Kind)
		return types.ErrorType{}
	}
}

func (c *Checker) inferIdent(id *ast.Ident) types.Type {
	scheme, ok := c.env.Lookup(id.Name)
	if !ok {
		c.error(id.Pos(), "undefined name '%s'", id.Name)
		return types.ErrorType{}
	}
	return types.Instantiate(scheme, c.gen)
}

func (c *Checker) inferUnary(ue *ast.UnaryExpr) types.Type {
	operand := c.InferExpr(ue.Expr)
	switch ue.Op {
	case "not":
		if err := types.Unify(operand, types.Bool{}); err != nil {
			c.error(ue.Pos(), "'not' requires Bool, got %s", types.Prune(operand))
			return types.ErrorType{}
		}
		return types.Bool{}
	case "-":
		if _, ok := types.Prune(operand).(types.Float); ok {
			return types.Float{}
		}
		if err := types.Unify(operand, types.Int{}); err != nil {
			c.error(ue.Pos(), "unary '-' requires Int or Float, got %s", types.Prune(operand))
			return types.ErrorType{}
		}
		return types.Int{}
	default:
		c.error(ue.Pos(), "internal: unhandled unary operator %q", ue.Op)
		return types.ErrorType{}
	}
}

var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true, "**": true}
var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}
var logicalOps = map[string]bool{"and": true, "or": true}

func (c *Checker) inferBinary(be *ast.BinaryExpr) types.Type {
	lt := c.InferExpr(be.Left)
	rt := c.InferExpr(be.Right)

	switch {
	case arithmeticOps[be.Op]:
		if err := types.Unify(lt, rt); err != nil {
			c.error(be.Pos(), "operands of '%s' disagree in type: %v", be.Op, err)
			return types.ErrorType{}
		}
		pruned := types.Prune(lt)
		switch pruned.(type) {
		case types.Int, types.Float, *types.Var:
			if be.Op == "**" {
				return types.Float{}
			}
			return pruned
		default:
			c.error(be.Pos(), "'%s' requires Int or Float operands, got %s", be.Op, pruned)
			return types.ErrorType{}
		}
	case comparisonOps[be.Op]:
		if err := types.Unify(lt, rt); err != nil {
			c.error(be.Pos(), "operands of '%s' disagree in type: %v", be.Op, err)
			return types.ErrorType{}
		}
		return types.Bool{}
	case logicalOps[be.Op]:
		if err := types.Unify(lt, types.Bool{}); err != nil {
			c.error(be.Left.Pos(), "left operand of '%s' must be Bool, got %s", be.Op, types.Prune(lt))
		}
		if err := types.Unify(rt, types.Bool{}); err != nil {
			c.error(be.Right.Pos(), "right operand of '%s' must be Bool, got %s", be.Op, types.Prune(rt))
		}
		return types.Bool{}
	default:
		c.error(be.Pos(), "internal: unhandled binary operator %q", be.Op)
		return types.ErrorType{}
	}
}

func (c *Checker) inferCall(ce *ast.CallExpr) types.Type {
	fnType := c.InferExpr(ce.Func)
	argTypes := make([]types.Type, len(ce.Args))
	for i, a := range ce.Args {
		argTypes[i] = c.InferExpr(a)
	}

	pruned := types.Prune(fnType)
	if _, ok := pruned.(types.ErrorType); ok {
		return types.ErrorType{}
	}
	if v, ok := pruned.(*types.Var); ok {
		ret := c.gen.Fresh()
		if err := types.Unify(v, &types.Fn{Params: argTypes, Return: ret}); err != nil {
			c.error(ce.Pos(), "cannot call value of type %s: %v", pruned, err)
			return types.ErrorType{}
		}
		return ret
	}
	ft, ok := pruned.(*types.Fn)
	if !ok {
		c.error(ce.Func.Pos(), "cannot call a value of type %s", pruned)
		return types.ErrorType{}
	}
	if len(ft.Params) != len(argTypes) {
		c.error(ce.Pos(), "expected %d argument(s), got %d", len(ft.Params), len(argTypes))
		return types.ErrorType{}
	}
	for i, want := range ft.Params {
		if err := types.Unify(want, argTypes[i]); err != nil {
			c.error(ce.Args[i].Pos(), "argument %d: %v", i+1, err)
		}
	}
	return ft.Return
}

func (c *Checker) inferLambda(le *ast.LambdaExpr) types.Type {
	tvEnv := map[string]*types.Var{}
	params := make([]types.Type, len(le.Params))
	for i, p := range le.Params {
		if p.Type != nil {
			params[i] = c.resolveTypeExpr(p.Type, tvEnv)
		} else {
			params[i] = c.gen.Fresh()
		}
	}
	c.env.Push()
	for i, p := range le.Params {
		c.env.Extend(p.Name, types.Mono(params[i]))
	}
	bodyType := c.InferExpr(le.Body)
	c.env.Pop()
	return &types.Fn{Params: params, Return: bodyType}
}

func (c *Checker) inferIf(ie *ast.IfExpr) types.Type {
	condType := c.InferExpr(ie.Cond)
	if err := types.Unify(condType, types.Bool{}); err != nil {
		c.error(ie.Cond.Pos(), "if condition must be Bool, got %s", types.Prune(condType))
	}
	thenType := c.InferExpr(ie.Then)
	if ie.Else == nil {
		if err := types.Unify(thenType, types.Unit{}); err != nil {
			c.error(ie.Pos(), "if without else must have a Unit body, got %s", types.Prune(thenType))
		}
		return types.Unit{}
	}
	elseType := c.InferExpr(ie.Else)
	if err := types.Unify(thenType, elseType); err != nil {
		c.error(ie.Pos(), "if/else branches disagree in type: %v", err)
		return types.ErrorType{}
	}
	return types.Prune(thenType)
}

func (c *Checker) inferMatch(me *ast.MatchExpr) types.Type {
	subjectType := c.InferExpr(me.Subject)

	var result types.Type
	hasCatchAll := false
	for _, arm := range me.Arms {
		c.env.Push()
		c.checkPattern(arm.Pattern, subjectType)
		if isCatchAllPattern(arm.Pattern) {
			hasCatchAll = true
		}
		if arm.Guard != nil {
			guardType := c.InferExpr(arm.Guard)
			if err := types.Unify(guardType, types.Bool{}); err != nil {
				c.error(arm.Guard.Pos(), "match guard must be Bool, got %s", types.Prune(guardType))
			}
		}
		bodyType := c.InferExpr(arm.Body)
		c.env.Pop()

		if result == nil {
			result = bodyType
			continue
		}
		if err := types.Unify(result, bodyType); err != nil {
			c.error(arm.Pos(), "match arms disagree in type: %v", err)
		}
	}
	if !hasCatchAll {
		c.warn(me.Pos(), "match may not be exhaustive: no wildcard or binder arm")
	}
	if result == nil {
		return types.Unit{}
	}
	return types.Prune(result)
}

func isCatchAllPattern(p ast.Pattern) bool {
	switch p.(type) {
	case *ast.WildcardPattern, *ast.BinderPattern:
		return true
	default:
		return false
	}
}

func (c *Checker) inferTuple(te *ast.TupleExpr) types.Type {
	elems := make([]types.Type, len(te.Elems))
	for i, e := range te.Elems {
		elems[i] = c.InferExpr(e)
	}
	return &types.Tuple{Elems: elems}
}

func (c *Checker) inferList(le *ast.ListExpr) types.Type {
	if len(le.Elems) == 0 {
		return &types.List{Elem: c.gen.Fresh()}
	}
	elemType := c.InferExpr(le.Elems[0])
	for _, e := range le.Elems[1:] {
		t := c.InferExpr(e)
		if err := types.Unify(elemType, t); err != nil {
			c.error(e.Pos(), "list elements disagree in type: %v", err)
		}
	}
	return &types.List{Elem: elemType}
}

func (c *Checker) inferBlock(block *ast.Block) types.Type {
	c.env.Push()
	for _, stmt := range block.Stmts {
		c.checkStmt(stmt)
	}
	var result types.Type = types.Unit{}
	if block.Tail != nil {
		result = c.InferExpr(block.Tail)
	}
	c.env.Pop()
	return result
}

// CheckStmts checks a statement sequence with an optional tail expression
// directly, without requiring it be wrapped in an *ast.Block — used by a
// REPL driving the checker one top-level line at a time.
func (c *Checker) CheckStmts(stmts []ast.Stmt, tail ast.Expr) types.Type {
	for _, stmt := range stmts {
		c.checkStmt(stmt)
	}
	if tail == nil {
		return types.Unit{}
	}
	return c.InferExpr(tail)
}

func (c *Checker) checkStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.LetStmt:
		c.checkLetStmt(s)
	case *ast.ExprStmt:
		c.InferExpr(s.Expr)
	default:
		c.error(stmt.Pos(), "internal: unhandled statement kind %T", stmt)
	}
}

func (c *Checker) checkLetStmt(ls *ast.LetStmt) {
	c.gen.EnterLevel()
	initType := c.InferExpr(ls.Init)
	if ls.Type != nil {
		declType := c.resolveTypeExpr(ls.Type, nil)
		if err := types.Unify(declType, initType); err != nil {
			c.error(ls.Pos(), "let %s: declared type disagrees with initializer: %v", ls.Pattern, err)
		}
	}
	c.gen.ExitLevel()

	if binder, ok := ls.Pattern.(*ast.BinderPattern); ok {
		scheme := types.Generalize(initType, c.gen.Level())
		c.env.Extend(binder.Name, scheme)
		return
	}
	c.checkPattern(ls.Pattern, initType)
}

// checkPattern binds pattern's variables against scrutinee monomorphically
// (only a bare let-bound BinderPattern gets generalized, in checkLetStmt).
func (c *Checker) checkPattern(pattern ast.Pattern, scrutinee types.Type) {
	switch p := pattern.(type) {
	case *ast.WildcardPattern:
		// binds nothing
	case *ast.BinderPattern:
		c.env.Extend(p.Name, types.Mono(scrutinee))
	case *ast.LiteralPattern:
		lt := c.inferLiteral(p.Literal)
		if err := types.Unify(lt, scrutinee); err != nil {
			c.error(p.Pos(), "pattern type disagrees with scrutinee: %v", err)
		}
	case *ast.TuplePattern:
		elemVars := make([]types.Type, len(p.Elems))
		for i := range elemVars {
			elemVars[i] = c.gen.Fresh()
		}
		if err := types.Unify(scrutinee, &types.Tuple{Elems: elemVars}); err != nil {
			c.error(p.Pos(), "tuple pattern disagrees with scrutinee: %v", err)
			return
		}
		for i, sub := range p.Elems {
			c.checkPattern(sub, elemVars[i])
		}
	case *ast.ConstructorPattern:
		c.checkConstructorPattern(p, scrutinee)
	default:
		c.error(pattern.Pos(), "internal: unhandled pattern kind %T", pattern)
	}
}

func (c *Checker) checkConstructorPattern(p *ast.ConstructorPattern, scrutinee types.Type) {
	fieldTypes, resultType, ok := c.instantiateConstructor(p.Name)
	if !ok {
		c.error(p.Pos(), "undefined constructor '%s'", p.Name)
		return
	}
	if err := types.Unify(scrutinee, resultType); err != nil {
		c.error(p.Pos(), "constructor '%s' disagrees with scrutinee: %v", p.Name, err)
		return
	}
	if len(p.Fields) != len(fieldTypes) {
		c.error(p.Pos(), "'%s' expects %d field(s), got %d", p.Name, len(fieldTypes), len(p.Fields))
		return
	}
	for i, f := range p.Fields {
		c.checkPattern(f, fieldTypes[i])
	}
}

func (c *Checker) inferConstructor(ce *ast.ConstructorExpr) types.Type {
	fieldTypes, resultType, ok := c.instantiateConstructor(ce.Name)
	if !ok {
		c.error(ce.Pos(), "undefined constructor '%s'", ce.Name)
		return types.ErrorType{}
	}
	if len(ce.Args) != len(fieldTypes) {
		c.error(ce.Pos(), "'%s' expects %d field(s), got %d", ce.Name, len(fieldTypes), len(ce.Args))
		return types.ErrorType{}
	}
	for i, a := range ce.Args {
		argType := c.InferExpr(a)
		if err := types.Unify(argType, fieldTypes[i]); err != nil {
			c.error(a.Pos(), "'%s' argument %d: %v", ce.Name, i+1, err)
		}
	}
	return resultType
}

// instantiateConstructor returns a fresh instantiation of a variant's
// field types and its result type, for the four builtin Result/Option
// constructors as well as user-declared sum-type variants.
func (c *Checker) instantiateConstructor(name string) ([]types.Type, types.Type, bool) {
	switch name {
	case "Ok":
		a, e := c.gen.Fresh(), c.gen.Fresh()
		return []types.Type{a}, &types.Named{Name: "Result", Args: []types.Type{a, e}}, true
	case "Err":
		t, e := c.gen.Fresh(), c.gen.Fresh()
		return []types.Type{e}, &types.Named{Name: "Result", Args: []types.Type{t, e}}, true
	case "Some":
		a := c.gen.Fresh()
		return []types.Type{a}, &types.Named{Name: "Option", Args: []types.Type{a}}, true
	case "None":
		a := c.gen.Fresh()
		return nil, &types.Named{Name: "Option", Args: []types.Type{a}}, true
	}

	info, ok := c.constructors[name]
	if !ok {
		return nil, nil, false
	}
	tvEnv := map[string]*types.Var{}
	for _, tp := range info.typeParams {
		tvEnv[tp] = c.gen.Fresh()
	}
	fieldTypes := make([]types.Type, len(info.fieldExprs))
	for i, fe := range info.fieldExprs {
		fieldTypes[i] = c.resolveTypeExpr(fe, tvEnv)
	}
	args := make([]types.Type, len(info.typeParams))
	for i, tp := range info.typeParams {
		args[i] = tvEnv[tp]
	}
	return fieldTypes, &types.Named{Name: info.typeName, Args: args}, true
}

// resolveTypeExpr converts a parsed TypeExpr into a checker Type. tvEnv
// maps each lowercase type-parameter name seen so far to the Var it was
// first assigned, so `fn f(x: a) -> a` shares one variable between the
// parameter and return annotations; pass nil for a context with no shared
// parameters (e.g. a standalone let annotation).
func (c *Checker) resolveTypeExpr(te ast.TypeExpr, tvEnv map[string]*types.Var) types.Type {
	if tvEnv == nil {
		tvEnv = map[string]*types.Var{}
	}
	switch t := te.(type) {
	case *ast.NamedTypeExpr:
		switch t.Name {
		case "Int":
			return types.Int{}
		case "Float":
			return types.Float{}
		case "Bool":
			return types.Bool{}
		case "String":
			return types.Str{}
		case "Unit":
			return types.Unit{}
		case "List":
			if len(t.Args) == 1 {
				return &types.List{Elem: c.resolveTypeExpr(t.Args[0], tvEnv)}
			}
			fallthrough
		default:
			args := make([]types.Type, len(t.Args))
			for i, a := range t.Args {
				args[i] = c.resolveTypeExpr(a, tvEnv)
			}
			return &types.Named{Name: t.Name, Args: args}
		}
	case *ast.VarTypeExpr:
		if v, ok := tvEnv[t.Name]; ok {
			return v
		}
		v := c.gen.Fresh()
		tvEnv[t.Name] = v
		return v
	case *ast.FnTypeExpr:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = c.resolveTypeExpr(p, tvEnv)
		}
		return &types.Fn{Params: params, Return: c.resolveTypeExpr(t.Return, tvEnv)}
	case *ast.TupleTypeExpr:
		elems := make([]types.Type, len(t.Elems))
		for i, e := range t.Elems {
			elems[i] = c.resolveTypeExpr(e, tvEnv)
		}
		return &types.Tuple{Elems: elems}
	default:
		return types.ErrorType{}
	}
}
