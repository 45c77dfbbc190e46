/*
File    : yapl/parser/node.go
Project : YAPL compiler front-end
*/
package parser

import (
	"strings"

	"github.com/emilienlemaire/yapl/lexer"
	"github.com/emilienlemaire/yapl/scope"
)

// NodeVisitor implements the Visitor design pattern for traversing the
// Abstract Syntax Tree (AST). Each Visit method processes a specific node
// variant; visitors receive node pointers so analysis passes can annotate
// and rewrite nodes in place (the analyzer splices cast nodes into binary
// expressions, the transformer rewrites struct methods).
//
// This interface is the only recognized extension point for traversal: the
// printer, the semantic analyzer and the method extractor are all visitors.
type NodeVisitor interface {
	VisitProgramNode(node *ProgramNode)
	VisitEOFNode(node *EOFNode)

	// Literal value visitors
	VisitIntegerLiteralExpressionNode(node *IntegerLiteralExpressionNode)
	VisitFloatLiteralExpressionNode(node *FloatLiteralExpressionNode)
	VisitDoubleLiteralExpressionNode(node *DoubleLiteralExpressionNode)
	VisitBooleanLiteralExpressionNode(node *BooleanLiteralExpressionNode)

	// Expression visitors
	VisitIdentifierExpressionNode(node *IdentifierExpressionNode)
	VisitParenthesizedExpressionNode(node *ParenthesizedExpressionNode)
	VisitNegateExpressionNode(node *NegateExpressionNode)
	VisitNotExpressionNode(node *NotExpressionNode)
	VisitBinaryExpressionNode(node *BinaryExpressionNode)
	VisitRangeExpressionNode(node *RangeExpressionNode)
	VisitArgumentListExpressionNode(node *ArgumentListExpressionNode)
	VisitArrayLiteralExpressionNode(node *ArrayLiteralExpressionNode)
	VisitAttributeAccessExpressionNode(node *AttributeAccessExpressionNode)
	VisitArrayAccessExpressionNode(node *ArrayAccessExpressionNode)
	VisitFunctionCallExpressionNode(node *FunctionCallExpressionNode)
	VisitCastExpressionNode(node *CastExpressionNode)

	// Statement visitors
	VisitDeclarationStatementNode(node *DeclarationStatementNode)
	VisitArrayDeclarationStatementNode(node *ArrayDeclarationStatementNode)
	VisitInitializationStatementNode(node *InitializationStatementNode)
	VisitArrayInitializationStatementNode(node *ArrayInitializationStatementNode)
	VisitStructInitializationStatementNode(node *StructInitializationStatementNode)
	VisitAssignmentStatementNode(node *AssignmentStatementNode)
	VisitExpressionStatementNode(node *ExpressionStatementNode)
	VisitIfStatementNode(node *IfStatementNode)
	VisitForStatementNode(node *ForStatementNode)
	VisitReturnStatementNode(node *ReturnStatementNode)
	VisitBlockStatementNode(node *BlockStatementNode)
	VisitFunctionDefinitionNode(node *FunctionDefinitionNode)
	VisitStructDefinitionNode(node *StructDefinitionNode)
	VisitImportStatementNode(node *ImportStatementNode)
	VisitExportStatementNode(node *ExportStatementNode)
}

// Node is the base interface of every AST node.
//
// Literal returns the canonical source rendering of the node; re-parsing a
// program's Literal yields an equal AST (inserted cast nodes render as their
// operand, so the property holds up to casts). Accept dispatches to the
// visitor method matching the concrete variant. Every node remembers the
// scope it was parsed in and the position of its first token.
type Node interface {
	Literal() string
	Accept(visitor NodeVisitor)
	Scope() *scope.Scope
	Position() lexer.Position
}

// StatementNode is the base interface of all statement nodes.
type StatementNode interface {
	Node
	Statement()
}

// ExpressionNode is the base interface of all expression nodes.
type ExpressionNode interface {
	Node
	Expression()
}

// baseNode carries the fields every node shares: the scope the node was
// parsed in (a non-owning reference) and its source position.
type baseNode struct {
	NodeScope *scope.Scope
	Pos       lexer.Position
}

// Scope returns the scope the node was parsed in.
func (b *baseNode) Scope() *scope.Scope { return b.NodeScope }

// Position returns the position of the node's first token.
func (b *baseNode) Position() lexer.Position { return b.Pos }

func newBase(sc *scope.Scope, pos lexer.Position) baseNode {
	return baseNode{NodeScope: sc, Pos: pos}
}

// ProgramNode is the root of the AST: the ordered sequence of top-level
// statements, terminated by an EOFNode.
type ProgramNode struct {
	baseNode
	Statements []StatementNode
}

// NewProgramNode creates the program root.
func NewProgramNode(sc *scope.Scope, statements []StatementNode) *ProgramNode {
	return &ProgramNode{baseNode: newBase(sc, lexer.Position{Line: 1, Column: 1}), Statements: statements}
}

// AddStatement appends a top-level statement, keeping the terminal EOF node
// last; the transformer uses it to register extracted methods.
func (node *ProgramNode) AddStatement(stmt StatementNode) {
	if n := len(node.Statements); n > 0 {
		if _, ok := node.Statements[n-1].(*EOFNode); ok {
			node.Statements = append(node.Statements[:n-1], stmt, node.Statements[n-1])
			return
		}
	}
	node.Statements = append(node.Statements, stmt)
}

// Literal renders the whole program as canonical source.
func (node *ProgramNode) Literal() string {
	var sb strings.Builder
	for _, stmt := range node.Statements {
		lit := stmt.Literal()
		if lit == "" {
			continue
		}
		sb.WriteString(lit)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Accept dispatches the program node to the visitor.
func (node *ProgramNode) Accept(visitor NodeVisitor) {
	visitor.VisitProgramNode(node)
}

// EOFNode marks the end of the program. It renders as nothing and visitors
// treat it as a no-op.
type EOFNode struct {
	baseNode
}

// NewEOFNode creates the terminal marker node.
func NewEOFNode(sc *scope.Scope, pos lexer.Position) *EOFNode {
	return &EOFNode{baseNode: newBase(sc, pos)}
}

func (node *EOFNode) Literal() string            { return "" }
func (node *EOFNode) Accept(visitor NodeVisitor) { visitor.VisitEOFNode(node) }
func (node *EOFNode) Statement()                 {}
