/*
File    : yapl/parser/node_statements.go
Project : YAPL compiler front-end
*/
package parser

import (
	"fmt"
	"strings"

	"github.com/emilienlemaire/yapl/lexer"
	"github.com/emilienlemaire/yapl/scope"
)

// DeclarationStatementNode represents "Type name;". It also models function
// parameters and struct attributes.
type DeclarationStatementNode struct {
	baseNode
	TypeName   string
	Identifier string
	TypeToken  lexer.Token
	IdentToken lexer.Token
}

// NewDeclarationStatementNode creates a declaration node.
func NewDeclarationStatementNode(sc *scope.Scope, typeTok, identTok lexer.Token) *DeclarationStatementNode {
	return &DeclarationStatementNode{
		baseNode:   newBase(sc, typeTok.Pos),
		TypeName:   typeTok.Lexeme,
		Identifier: identTok.Lexeme,
		TypeToken:  typeTok,
		IdentToken: identTok,
	}
}

func (node *DeclarationStatementNode) Literal() string {
	return node.TypeName + " " + node.Identifier + ";"
}
func (node *DeclarationStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitDeclarationStatementNode(node)
}
func (node *DeclarationStatementNode) Statement() {}

// declHeader renders "Type name" without the terminator, for parameter
// lists.
func (node *DeclarationStatementNode) declHeader() string {
	return node.TypeName + " " + node.Identifier
}

// ArrayDeclarationStatementNode represents "Type name[N];".
type ArrayDeclarationStatementNode struct {
	baseNode
	TypeName   string
	Identifier string
	Size       int
	TypeToken  lexer.Token
	IdentToken lexer.Token
}

// NewArrayDeclarationStatementNode creates an array declaration node.
func NewArrayDeclarationStatementNode(sc *scope.Scope, typeTok, identTok lexer.Token, size int) *ArrayDeclarationStatementNode {
	return &ArrayDeclarationStatementNode{
		baseNode:   newBase(sc, typeTok.Pos),
		TypeName:   typeTok.Lexeme,
		Identifier: identTok.Lexeme,
		Size:       size,
		TypeToken:  typeTok,
		IdentToken: identTok,
	}
}

func (node *ArrayDeclarationStatementNode) Literal() string {
	return fmt.Sprintf("%s %s[%d];", node.TypeName, node.Identifier, node.Size)
}
func (node *ArrayDeclarationStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitArrayDeclarationStatementNode(node)
}
func (node *ArrayDeclarationStatementNode) Statement() {}

// InitializationStatementNode represents "Type name = expr;".
type InitializationStatementNode struct {
	baseNode
	TypeName   string
	Identifier string
	TypeToken  lexer.Token
	IdentToken lexer.Token
	Value      ExpressionNode
}

// NewInitializationStatementNode creates an initialization node.
func NewInitializationStatementNode(sc *scope.Scope, typeTok, identTok lexer.Token, value ExpressionNode) *InitializationStatementNode {
	return &InitializationStatementNode{
		baseNode:   newBase(sc, typeTok.Pos),
		TypeName:   typeTok.Lexeme,
		Identifier: identTok.Lexeme,
		TypeToken:  typeTok,
		IdentToken: identTok,
		Value:      value,
	}
}

func (node *InitializationStatementNode) Literal() string {
	return fmt.Sprintf("%s %s = %s;", node.TypeName, node.Identifier, node.Value.Literal())
}
func (node *InitializationStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitInitializationStatementNode(node)
}
func (node *InitializationStatementNode) Statement() {}

// ArrayInitializationStatementNode represents
// "Type name[N] = (v1, v2, ...);" or "Type name[N] = {v1, v2, ...};".
// Values is either an ArgumentListExpressionNode or an
// ArrayLiteralExpressionNode.
type ArrayInitializationStatementNode struct {
	baseNode
	TypeName   string
	Identifier string
	Size       int
	TypeToken  lexer.Token
	IdentToken lexer.Token
	Values     ExpressionNode
}

// NewArrayInitializationStatementNode creates an array initialization node.
func NewArrayInitializationStatementNode(sc *scope.Scope, typeTok, identTok lexer.Token, size int, values ExpressionNode) *ArrayInitializationStatementNode {
	return &ArrayInitializationStatementNode{
		baseNode:   newBase(sc, typeTok.Pos),
		TypeName:   typeTok.Lexeme,
		Identifier: identTok.Lexeme,
		Size:       size,
		TypeToken:  typeTok,
		IdentToken: identTok,
		Values:     values,
	}
}

func (node *ArrayInitializationStatementNode) Literal() string {
	return fmt.Sprintf("%s %s[%d] = %s;", node.TypeName, node.Identifier, node.Size, node.Values.Literal())
}
func (node *ArrayInitializationStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitArrayInitializationStatementNode(node)
}
func (node *ArrayInitializationStatementNode) Statement() {}

// StructInitializationStatementNode represents "Struct name = (a1, a2);"
// where the declared type resolves to a struct.
type StructInitializationStatementNode struct {
	baseNode
	TypeName   string
	Identifier string
	TypeToken  lexer.Token
	IdentToken lexer.Token
	Attributes *ArgumentListExpressionNode
}

// NewStructInitializationStatementNode creates a struct initialization node.
func NewStructInitializationStatementNode(sc *scope.Scope, typeTok, identTok lexer.Token, attributes *ArgumentListExpressionNode) *StructInitializationStatementNode {
	return &StructInitializationStatementNode{
		baseNode:   newBase(sc, typeTok.Pos),
		TypeName:   typeTok.Lexeme,
		Identifier: identTok.Lexeme,
		TypeToken:  typeTok,
		IdentToken: identTok,
		Attributes: attributes,
	}
}

func (node *StructInitializationStatementNode) Literal() string {
	return fmt.Sprintf("%s %s = %s;", node.TypeName, node.Identifier, node.Attributes.Literal())
}
func (node *StructInitializationStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitStructInitializationStatementNode(node)
}
func (node *StructInitializationStatementNode) Statement() {}

// AssignmentStatementNode represents "target = value;". The analyzer
// validates that the target is assignable (identifier, attribute access or
// array access).
type AssignmentStatementNode struct {
	baseNode
	Target ExpressionNode
	Value  ExpressionNode
}

// NewAssignmentStatementNode creates an assignment node.
func NewAssignmentStatementNode(sc *scope.Scope, target, value ExpressionNode) *AssignmentStatementNode {
	return &AssignmentStatementNode{baseNode: newBase(sc, target.Position()), Target: target, Value: value}
}

func (node *AssignmentStatementNode) Literal() string {
	return node.Target.Literal() + " = " + node.Value.Literal() + ";"
}
func (node *AssignmentStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitAssignmentStatementNode(node)
}
func (node *AssignmentStatementNode) Statement() {}

// ExpressionStatementNode represents a bare expression used as a statement.
type ExpressionStatementNode struct {
	baseNode
	Expr ExpressionNode
}

// NewExpressionStatementNode creates an expression statement node.
func NewExpressionStatementNode(sc *scope.Scope, expr ExpressionNode) *ExpressionStatementNode {
	return &ExpressionStatementNode{baseNode: newBase(sc, expr.Position()), Expr: expr}
}

func (node *ExpressionStatementNode) Literal() string { return node.Expr.Literal() + ";" }
func (node *ExpressionStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitExpressionStatementNode(node)
}
func (node *ExpressionStatementNode) Statement() {}

// IfStatementNode represents "if cond { ... } else { ... }". Else is nil
// when absent.
type IfStatementNode struct {
	baseNode
	Condition ExpressionNode
	Then      *BlockStatementNode
	Else      *BlockStatementNode
}

// NewIfStatementNode creates a conditional node.
func NewIfStatementNode(sc *scope.Scope, pos lexer.Position, condition ExpressionNode, then, els *BlockStatementNode) *IfStatementNode {
	return &IfStatementNode{baseNode: newBase(sc, pos), Condition: condition, Then: then, Else: els}
}

func (node *IfStatementNode) Literal() string {
	out := "if " + node.Condition.Literal() + " " + node.Then.Literal()
	if node.Else != nil {
		out += " else " + node.Else.Literal()
	}
	return out
}
func (node *IfStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitIfStatementNode(node)
}
func (node *IfStatementNode) Statement() {}

// ForStatementNode represents "for iterator in range { ... }". The iterator
// variable lives in the loop's child scope.
type ForStatementNode struct {
	baseNode
	Iterator  string
	IterToken lexer.Token
	Range     *RangeExpressionNode
	Body      *BlockStatementNode
}

// NewForStatementNode creates a range-based for node.
func NewForStatementNode(sc *scope.Scope, pos lexer.Position, iter lexer.Token, rng *RangeExpressionNode, body *BlockStatementNode) *ForStatementNode {
	return &ForStatementNode{
		baseNode:  newBase(sc, pos),
		Iterator:  iter.Lexeme,
		IterToken: iter,
		Range:     rng,
		Body:      body,
	}
}

func (node *ForStatementNode) Literal() string {
	return "for " + node.Iterator + " in " + node.Range.Literal() + " " + node.Body.Literal()
}
func (node *ForStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitForStatementNode(node)
}
func (node *ForStatementNode) Statement() {}

// ReturnStatementNode represents "return expr;".
type ReturnStatementNode struct {
	baseNode
	Expr ExpressionNode
}

// NewReturnStatementNode creates a return node.
func NewReturnStatementNode(sc *scope.Scope, pos lexer.Position, expr ExpressionNode) *ReturnStatementNode {
	return &ReturnStatementNode{baseNode: newBase(sc, pos), Expr: expr}
}

func (node *ReturnStatementNode) Literal() string { return "return " + node.Expr.Literal() + ";" }
func (node *ReturnStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitReturnStatementNode(node)
}
func (node *ReturnStatementNode) Statement() {}

// BlockStatementNode represents a braced statement sequence.
type BlockStatementNode struct {
	baseNode
	Statements []StatementNode
}

// NewBlockStatementNode creates a block node.
func NewBlockStatementNode(sc *scope.Scope, pos lexer.Position, statements []StatementNode) *BlockStatementNode {
	return &BlockStatementNode{baseNode: newBase(sc, pos), Statements: statements}
}

func (node *BlockStatementNode) Literal() string {
	var sb strings.Builder
	sb.WriteString("{ ")
	for _, stmt := range node.Statements {
		sb.WriteString(stmt.Literal())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}
func (node *BlockStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitBlockStatementNode(node)
}
func (node *BlockStatementNode) Statement() {}

// FunctionDefinitionNode represents
// "func name(params) -> returnType { body }". The body's scope holds the
// parameter symbols.
type FunctionDefinitionNode struct {
	baseNode
	Name       string
	ReturnType string
	Parameters []*DeclarationStatementNode
	Body       *BlockStatementNode
	BodyScope  *scope.Scope
}

// NewFunctionDefinitionNode creates a function definition node.
func NewFunctionDefinitionNode(sc *scope.Scope, pos lexer.Position, name, returnType string, parameters []*DeclarationStatementNode, body *BlockStatementNode, bodyScope *scope.Scope) *FunctionDefinitionNode {
	return &FunctionDefinitionNode{
		baseNode:   newBase(sc, pos),
		Name:       name,
		ReturnType: returnType,
		Parameters: parameters,
		Body:       body,
		BodyScope:  bodyScope,
	}
}

func (node *FunctionDefinitionNode) Literal() string {
	params := make([]string, 0, len(node.Parameters))
	for _, p := range node.Parameters {
		params = append(params, p.declHeader())
	}
	return fmt.Sprintf("func %s(%s) -> %s %s",
		node.Name, strings.Join(params, ", "), node.ReturnType, node.Body.Literal())
}
func (node *FunctionDefinitionNode) Accept(visitor NodeVisitor) {
	visitor.VisitFunctionDefinitionNode(node)
}
func (node *FunctionDefinitionNode) Statement() {}

// StructDefinitionNode represents "struct Name { attributes methods }".
// Attributes and methods live in the struct's own scope.
type StructDefinitionNode struct {
	baseNode
	Name        string
	Attributes  []*DeclarationStatementNode
	Methods     []*FunctionDefinitionNode
	StructScope *scope.Scope
}

// NewStructDefinitionNode creates a struct definition node.
func NewStructDefinitionNode(sc *scope.Scope, pos lexer.Position, name string, attributes []*DeclarationStatementNode, methods []*FunctionDefinitionNode, structScope *scope.Scope) *StructDefinitionNode {
	return &StructDefinitionNode{
		baseNode:    newBase(sc, pos),
		Name:        name,
		Attributes:  attributes,
		Methods:     methods,
		StructScope: structScope,
	}
}

func (node *StructDefinitionNode) Literal() string {
	var sb strings.Builder
	sb.WriteString("struct " + node.Name + " { ")
	for _, attr := range node.Attributes {
		sb.WriteString(attr.Literal())
		sb.WriteString(" ")
	}
	for _, method := range node.Methods {
		sb.WriteString(method.Literal())
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}
func (node *StructDefinitionNode) Accept(visitor NodeVisitor) {
	visitor.VisitStructDefinitionNode(node)
}
func (node *StructDefinitionNode) Statement() {}

// RemoveMethod drops the named method from the struct's method list. The
// method extractor uses it after moving a method to the top level.
func (node *StructDefinitionNode) RemoveMethod(name string) {
	kept := node.Methods[:0]
	for _, m := range node.Methods {
		if m.Name != name {
			kept = append(kept, m)
		}
	}
	node.Methods = kept
}

// ImportStatementNode represents "import ns1::ns2::name;".
type ImportStatementNode struct {
	baseNode
	Namespaces []string // the path before the final identifier
	Name       string   // the imported value
}

// NewImportStatementNode creates an import node.
func NewImportStatementNode(sc *scope.Scope, pos lexer.Position, namespaces []string, name string) *ImportStatementNode {
	return &ImportStatementNode{baseNode: newBase(sc, pos), Namespaces: namespaces, Name: name}
}

func (node *ImportStatementNode) Literal() string {
	if len(node.Namespaces) == 0 {
		return "import " + node.Name + ";"
	}
	return "import " + strings.Join(node.Namespaces, "::") + "::" + node.Name + ";"
}
func (node *ImportStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitImportStatementNode(node)
}
func (node *ImportStatementNode) Statement() {}

// ExportStatementNode represents "export name;" or
// "export { name1, name2 };".
type ExportStatementNode struct {
	baseNode
	Names []string
}

// NewExportStatementNode creates an export node.
func NewExportStatementNode(sc *scope.Scope, pos lexer.Position, names []string) *ExportStatementNode {
	return &ExportStatementNode{baseNode: newBase(sc, pos), Names: names}
}

func (node *ExportStatementNode) Literal() string {
	if len(node.Names) == 1 {
		return "export " + node.Names[0] + ";"
	}
	return "export { " + strings.Join(node.Names, ", ") + " };"
}
func (node *ExportStatementNode) Accept(visitor NodeVisitor) {
	visitor.VisitExportStatementNode(node)
}
func (node *ExportStatementNode) Statement() {}
