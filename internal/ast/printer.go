// Package ast also provides a debug pretty-printer for the tree it defines.
package ast

import (
	"strings"
)

// PrettyPrint renders n and its children as an indented tree, one node's
// String() per line. Used for debugging and for golden-style tests.
func PrettyPrint(n Node) string {
	var sb strings.Builder
	prettyPrintNode(&sb, n, 0)
	return sb.String()
}

func prettyPrintNode(sb *strings.Builder, n Node, indent int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.String())
	sb.WriteString("\n")

	switch node := n.(type) {
	case *Program:
		for _, item := range node.Items {
			prettyPrintNode(sb, item, indent+1)
		}
	case *Function:
		for _, param := range node.Params {
			prettyPrintNode(sb, &param, indent+1)
		}
		prettyPrintNode(sb, node.Body, indent+1)
	case *TypeDecl:
		for _, v := range node.Variants {
			prettyPrintNode(sb, &v, indent+1)
		}
	case *Block:
		for _, stmt := range node.Stmts {
			prettyPrintNode(sb, stmt, indent+1)
		}
		if node.Tail != nil {
			prettyPrintNode(sb, node.Tail, indent+1)
		}
	case *LetStmt:
		prettyPrintNode(sb, node.Init, indent+1)
	case *ExprStmt:
		prettyPrintNode(sb, node.Expr, indent+1)
	case *BinaryExpr:
		prettyPrintNode(sb, node.Left, indent+1)
		prettyPrintNode(sb, node.Right, indent+1)
	case *UnaryExpr:
		prettyPrintNode(sb, node.Expr, indent+1)
	case *CallExpr:
		prettyPrintNode(sb, node.Func, indent+1)
		for _, arg := range node.Args {
			prettyPrintNode(sb, arg, indent+1)
		}
	case *LambdaExpr:
		prettyPrintNode(sb, node.Body, indent+1)
	case *IfExpr:
		prettyPrintNode(sb, node.Cond, indent+1)
		prettyPrintNode(sb, node.Then, indent+1)
		if node.Else != nil {
			prettyPrintNode(sb, node.Else, indent+1)
		}
	case *MatchExpr:
		prettyPrintNode(sb, node.Subject, indent+1)
		for _, arm := range node.Arms {
			prettyPrintNode(sb, &arm, indent+1)
			prettyPrintNode(sb, arm.Body, indent+2)
		}
	case *TupleExpr:
		for _, e := range node.Elems {
			prettyPrintNode(sb, e, indent+1)
		}
	case *ListExpr:
		for _, e := range node.Elems {
			prettyPrintNode(sb, e, indent+1)
		}
	case *BlockExpr:
		prettyPrintNode(sb, node.Block, indent+1)
	case *ConstructorExpr:
		for _, arg := range node.Args {
			prettyPrintNode(sb, arg, indent+1)
		}
		// Leaf nodes (Ident, Literal, patterns, type exprs) have no children.
	}
}
