/*
File    : yapl/parser/print_visitor.go
Project : YAPL compiler front-end
*/
package parser

import (
	"bytes"
	"fmt"
	"strings"
)

const INDENT_SIZE = 4

// PrintingVisitor dumps the AST as an indented tree. It is used by the
// driver's --print-ast mode and by the REPL, through compile.Result.DumpAST.
type PrintingVisitor struct {
	Indent int
	Buf    bytes.Buffer
}

// indent writes the current indentation.
func (p *PrintingVisitor) indent() {
	p.Buf.WriteString(strings.Repeat(" ", p.Indent))
}

// line writes one indented line.
func (p *PrintingVisitor) line(format string, args ...interface{}) {
	p.indent()
	p.Buf.WriteString(fmt.Sprintf(format, args...))
	p.Buf.WriteString("\n")
}

// nested runs fn with the indentation pushed one level.
func (p *PrintingVisitor) nested(fn func()) {
	p.Indent += INDENT_SIZE
	fn()
	p.Indent -= INDENT_SIZE
}

// String returns everything printed so far.
func (p *PrintingVisitor) String() string {
	return p.Buf.String()
}

// VisitProgramNode prints the program and all top-level statements.
func (p *PrintingVisitor) VisitProgramNode(node *ProgramNode) {
	p.line("Program")
	p.nested(func() {
		for _, stmt := range node.Statements {
			stmt.Accept(p)
		}
	})
}

// VisitEOFNode prints nothing; the marker carries no content.
func (p *PrintingVisitor) VisitEOFNode(node *EOFNode) {}

func (p *PrintingVisitor) VisitIntegerLiteralExpressionNode(node *IntegerLiteralExpressionNode) {
	p.line("IntegerLiteral(%d)", node.Value)
}

func (p *PrintingVisitor) VisitFloatLiteralExpressionNode(node *FloatLiteralExpressionNode) {
	p.line("FloatLiteral(%g)", node.Value)
}

func (p *PrintingVisitor) VisitDoubleLiteralExpressionNode(node *DoubleLiteralExpressionNode) {
	p.line("DoubleLiteral(%g)", node.Value)
}

func (p *PrintingVisitor) VisitBooleanLiteralExpressionNode(node *BooleanLiteralExpressionNode) {
	p.line("BooleanLiteral(%t)", node.Value)
}

func (p *PrintingVisitor) VisitIdentifierExpressionNode(node *IdentifierExpressionNode) {
	p.line("Identifier(%s)", node.Name)
}

func (p *PrintingVisitor) VisitParenthesizedExpressionNode(node *ParenthesizedExpressionNode) {
	p.line("Parenthesized")
	p.nested(func() { node.Expr.Accept(p) })
}

func (p *PrintingVisitor) VisitNegateExpressionNode(node *NegateExpressionNode) {
	p.line("Negate")
	p.nested(func() { node.Value.Accept(p) })
}

func (p *PrintingVisitor) VisitNotExpressionNode(node *NotExpressionNode) {
	p.line("Not")
	p.nested(func() { node.Value.Accept(p) })
}

func (p *PrintingVisitor) VisitBinaryExpressionNode(node *BinaryExpressionNode) {
	p.line("Binary(%s)", node.Operation.Lexeme)
	p.nested(func() {
		node.Left.Accept(p)
		node.Right.Accept(p)
	})
}

func (p *PrintingVisitor) VisitRangeExpressionNode(node *RangeExpressionNode) {
	p.line("Range")
	p.nested(func() {
		node.Start.Accept(p)
		if node.End != nil {
			node.End.Accept(p)
		}
	})
}

func (p *PrintingVisitor) VisitArgumentListExpressionNode(node *ArgumentListExpressionNode) {
	p.line("ArgumentList")
	p.nested(func() {
		for _, arg := range node.Arguments {
			arg.Accept(p)
		}
	})
}

func (p *PrintingVisitor) VisitArrayLiteralExpressionNode(node *ArrayLiteralExpressionNode) {
	p.line("ArrayLiteral")
	p.nested(func() {
		for _, elem := range node.Elements {
			elem.Accept(p)
		}
	})
}

func (p *PrintingVisitor) VisitAttributeAccessExpressionNode(node *AttributeAccessExpressionNode) {
	p.line("AttributeAccess(.%s)", node.Attribute)
	p.nested(func() { node.Subject.Accept(p) })
}

func (p *PrintingVisitor) VisitArrayAccessExpressionNode(node *ArrayAccessExpressionNode) {
	p.line("ArrayAccess")
	p.nested(func() {
		node.Subject.Accept(p)
		node.Index.Accept(p)
	})
}

func (p *PrintingVisitor) VisitFunctionCallExpressionNode(node *FunctionCallExpressionNode) {
	p.line("FunctionCall")
	p.nested(func() {
		node.Callee.Accept(p)
		node.Arguments.Accept(p)
	})
}

func (p *PrintingVisitor) VisitCastExpressionNode(node *CastExpressionNode) {
	p.line("Cast(to %s)", node.TargetType)
	p.nested(func() { node.Expr.Accept(p) })
}

func (p *PrintingVisitor) VisitDeclarationStatementNode(node *DeclarationStatementNode) {
	p.line("Declaration(%s %s)", node.TypeName, node.Identifier)
}

func (p *PrintingVisitor) VisitArrayDeclarationStatementNode(node *ArrayDeclarationStatementNode) {
	p.line("ArrayDeclaration(%s %s[%d])", node.TypeName, node.Identifier, node.Size)
}

func (p *PrintingVisitor) VisitInitializationStatementNode(node *InitializationStatementNode) {
	p.line("Initialization(%s %s)", node.TypeName, node.Identifier)
	p.nested(func() { node.Value.Accept(p) })
}

func (p *PrintingVisitor) VisitArrayInitializationStatementNode(node *ArrayInitializationStatementNode) {
	p.line("ArrayInitialization(%s %s[%d])", node.TypeName, node.Identifier, node.Size)
	p.nested(func() { node.Values.Accept(p) })
}

func (p *PrintingVisitor) VisitStructInitializationStatementNode(node *StructInitializationStatementNode) {
	p.line("StructInitialization(%s %s)", node.TypeName, node.Identifier)
	p.nested(func() { node.Attributes.Accept(p) })
}

func (p *PrintingVisitor) VisitAssignmentStatementNode(node *AssignmentStatementNode) {
	p.line("Assignment")
	p.nested(func() {
		node.Target.Accept(p)
		node.Value.Accept(p)
	})
}

func (p *PrintingVisitor) VisitExpressionStatementNode(node *ExpressionStatementNode) {
	p.line("ExpressionStatement")
	p.nested(func() { node.Expr.Accept(p) })
}

func (p *PrintingVisitor) VisitIfStatementNode(node *IfStatementNode) {
	p.line("If")
	p.nested(func() {
		node.Condition.Accept(p)
		node.Then.Accept(p)
		if node.Else != nil {
			node.Else.Accept(p)
		}
	})
}

func (p *PrintingVisitor) VisitForStatementNode(node *ForStatementNode) {
	p.line("For(%s)", node.Iterator)
	p.nested(func() {
		node.Range.Accept(p)
		node.Body.Accept(p)
	})
}

func (p *PrintingVisitor) VisitReturnStatementNode(node *ReturnStatementNode) {
	p.line("Return")
	p.nested(func() { node.Expr.Accept(p) })
}

func (p *PrintingVisitor) VisitBlockStatementNode(node *BlockStatementNode) {
	p.line("Block")
	p.nested(func() {
		for _, stmt := range node.Statements {
			stmt.Accept(p)
		}
	})
}

func (p *PrintingVisitor) VisitFunctionDefinitionNode(node *FunctionDefinitionNode) {
	params := make([]string, 0, len(node.Parameters))
	for _, param := range node.Parameters {
		params = append(params, param.declHeader())
	}
	p.line("FunctionDefinition(%s(%s) -> %s)", node.Name, strings.Join(params, ", "), node.ReturnType)
	p.nested(func() { node.Body.Accept(p) })
}

func (p *PrintingVisitor) VisitStructDefinitionNode(node *StructDefinitionNode) {
	p.line("StructDefinition(%s)", node.Name)
	p.nested(func() {
		for _, attr := range node.Attributes {
			attr.Accept(p)
		}
		for _, method := range node.Methods {
			method.Accept(p)
		}
	})
}

func (p *PrintingVisitor) VisitImportStatementNode(node *ImportStatementNode) {
	if len(node.Namespaces) == 0 {
		p.line("Import(%s)", node.Name)
		return
	}
	p.line("Import(%s::%s)", strings.Join(node.Namespaces, "::"), node.Name)
}

func (p *PrintingVisitor) VisitExportStatementNode(node *ExportStatementNode) {
	p.line("Export(%s)", strings.Join(node.Names, ", "))
}
