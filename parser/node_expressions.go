/*
File    : yapl/parser/node_expressions.go
Project : YAPL compiler front-end
*/
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emilienlemaire/yapl/lexer"
	"github.com/emilienlemaire/yapl/scope"
)

// IntegerLiteralExpressionNode represents an integer literal.
// Example: 42
type IntegerLiteralExpressionNode struct {
	baseNode
	Token lexer.Token // The integer token with its source text
	Value int64       // The parsed value
}

// NewIntegerLiteralExpressionNode creates an integer literal node.
func NewIntegerLiteralExpressionNode(sc *scope.Scope, tok lexer.Token, value int64) *IntegerLiteralExpressionNode {
	return &IntegerLiteralExpressionNode{baseNode: newBase(sc, tok.Pos), Token: tok, Value: value}
}

func (node *IntegerLiteralExpressionNode) Literal() string { return node.Token.Lexeme }
func (node *IntegerLiteralExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitIntegerLiteralExpressionNode(node)
}
func (node *IntegerLiteralExpressionNode) Expression() {}

// FloatLiteralExpressionNode represents a float literal (f-suffixed).
// Example: 3.14f
type FloatLiteralExpressionNode struct {
	baseNode
	Token lexer.Token
	Value float32
}

// NewFloatLiteralExpressionNode creates a float literal node.
func NewFloatLiteralExpressionNode(sc *scope.Scope, tok lexer.Token, value float32) *FloatLiteralExpressionNode {
	return &FloatLiteralExpressionNode{baseNode: newBase(sc, tok.Pos), Token: tok, Value: value}
}

func (node *FloatLiteralExpressionNode) Literal() string { return node.Token.Lexeme + "f" }
func (node *FloatLiteralExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitFloatLiteralExpressionNode(node)
}
func (node *FloatLiteralExpressionNode) Expression() {}

// DoubleLiteralExpressionNode represents a double literal.
// Example: 3.14, 2d
type DoubleLiteralExpressionNode struct {
	baseNode
	Token lexer.Token
	Value float64
}

// NewDoubleLiteralExpressionNode creates a double literal node.
func NewDoubleLiteralExpressionNode(sc *scope.Scope, tok lexer.Token, value float64) *DoubleLiteralExpressionNode {
	return &DoubleLiteralExpressionNode{baseNode: newBase(sc, tok.Pos), Token: tok, Value: value}
}

// Literal renders with the d suffix when the source lexeme has no decimal
// point, so the rendering lexes back to a double.
func (node *DoubleLiteralExpressionNode) Literal() string {
	if strings.Contains(node.Token.Lexeme, ".") {
		return node.Token.Lexeme
	}
	return node.Token.Lexeme + "d"
}
func (node *DoubleLiteralExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitDoubleLiteralExpressionNode(node)
}
func (node *DoubleLiteralExpressionNode) Expression() {}

// BooleanLiteralExpressionNode represents true or false.
type BooleanLiteralExpressionNode struct {
	baseNode
	Token lexer.Token
	Value bool
}

// NewBooleanLiteralExpressionNode creates a boolean literal node.
func NewBooleanLiteralExpressionNode(sc *scope.Scope, tok lexer.Token, value bool) *BooleanLiteralExpressionNode {
	return &BooleanLiteralExpressionNode{baseNode: newBase(sc, tok.Pos), Token: tok, Value: value}
}

func (node *BooleanLiteralExpressionNode) Literal() string { return strconv.FormatBool(node.Value) }
func (node *BooleanLiteralExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitBooleanLiteralExpressionNode(node)
}
func (node *BooleanLiteralExpressionNode) Expression() {}

// IdentifierExpressionNode represents a reference to a named value.
type IdentifierExpressionNode struct {
	baseNode
	Token lexer.Token
	Name  string
}

// NewIdentifierExpressionNode creates an identifier reference node.
func NewIdentifierExpressionNode(sc *scope.Scope, tok lexer.Token) *IdentifierExpressionNode {
	return &IdentifierExpressionNode{baseNode: newBase(sc, tok.Pos), Token: tok, Name: tok.Lexeme}
}

func (node *IdentifierExpressionNode) Literal() string { return node.Name }
func (node *IdentifierExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitIdentifierExpressionNode(node)
}
func (node *IdentifierExpressionNode) Expression() {}

// ParenthesizedExpressionNode represents (expr).
type ParenthesizedExpressionNode struct {
	baseNode
	Expr ExpressionNode
}

// NewParenthesizedExpressionNode creates a grouping node.
func NewParenthesizedExpressionNode(sc *scope.Scope, pos lexer.Position, expr ExpressionNode) *ParenthesizedExpressionNode {
	return &ParenthesizedExpressionNode{baseNode: newBase(sc, pos), Expr: expr}
}

func (node *ParenthesizedExpressionNode) Literal() string {
	return "(" + node.Expr.Literal() + ")"
}
func (node *ParenthesizedExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitParenthesizedExpressionNode(node)
}
func (node *ParenthesizedExpressionNode) Expression() {}

// NegateExpressionNode represents unary minus.
type NegateExpressionNode struct {
	baseNode
	Operation lexer.Token
	Value     ExpressionNode
}

// NewNegateExpressionNode creates a unary negation node.
func NewNegateExpressionNode(sc *scope.Scope, op lexer.Token, value ExpressionNode) *NegateExpressionNode {
	return &NegateExpressionNode{baseNode: newBase(sc, op.Pos), Operation: op, Value: value}
}

func (node *NegateExpressionNode) Literal() string { return "-" + node.Value.Literal() }
func (node *NegateExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitNegateExpressionNode(node)
}
func (node *NegateExpressionNode) Expression() {}

// NotExpressionNode represents logical not.
type NotExpressionNode struct {
	baseNode
	Operation lexer.Token
	Value     ExpressionNode
}

// NewNotExpressionNode creates a logical-not node.
func NewNotExpressionNode(sc *scope.Scope, op lexer.Token, value ExpressionNode) *NotExpressionNode {
	return &NotExpressionNode{baseNode: newBase(sc, op.Pos), Operation: op, Value: value}
}

func (node *NotExpressionNode) Literal() string { return "!" + node.Value.Literal() }
func (node *NotExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitNotExpressionNode(node)
}
func (node *NotExpressionNode) Expression() {}

// BinaryExpressionNode represents a binary operation. The analyzer may
// replace Left with a cast node to equalize operand types.
type BinaryExpressionNode struct {
	baseNode
	Operation lexer.Token // The operator token
	Left      ExpressionNode
	Right     ExpressionNode
}

// NewBinaryExpressionNode creates a binary operation node.
func NewBinaryExpressionNode(sc *scope.Scope, op lexer.Token, left, right ExpressionNode) *BinaryExpressionNode {
	return &BinaryExpressionNode{baseNode: newBase(sc, op.Pos), Operation: op, Left: left, Right: right}
}

func (node *BinaryExpressionNode) Literal() string {
	return node.Left.Literal() + " " + node.Operation.Lexeme + " " + node.Right.Literal()
}
func (node *BinaryExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitBinaryExpressionNode(node)
}
func (node *BinaryExpressionNode) Expression() {}

// IsComparisonOperation reports whether the node's operator yields bool:
// relational, equality, and the logical operators.
func (node *BinaryExpressionNode) IsComparisonOperation() bool {
	switch node.Operation.Kind {
	case lexer.LT_OP, lexer.GT_OP, lexer.LE_OP, lexer.GE_OP,
		lexer.EQ_OP, lexer.NE_OP, lexer.AND_OP, lexer.OR_OP:
		return true
	}
	return false
}

// IsLogicalOperation reports whether the operator is logical and/or, which
// require bool operands.
func (node *BinaryExpressionNode) IsLogicalOperation() bool {
	return node.Operation.Kind == lexer.AND_OP || node.Operation.Kind == lexer.OR_OP
}

// RangeExpressionNode represents "start ... end". End is nil for the
// degenerate range over a single value (e.g. iterating an array).
type RangeExpressionNode struct {
	baseNode
	Start ExpressionNode
	End   ExpressionNode
}

// NewRangeExpressionNode creates a range node.
func NewRangeExpressionNode(sc *scope.Scope, pos lexer.Position, start, end ExpressionNode) *RangeExpressionNode {
	return &RangeExpressionNode{baseNode: newBase(sc, pos), Start: start, End: end}
}

func (node *RangeExpressionNode) Literal() string {
	if node.End == nil {
		return node.Start.Literal()
	}
	return node.Start.Literal() + " ... " + node.End.Literal()
}
func (node *RangeExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitRangeExpressionNode(node)
}
func (node *RangeExpressionNode) Expression() {}

// ArgumentListExpressionNode represents a parenthesized, comma-separated
// value group: call arguments, or the initializer of a struct or array
// before it is known which one it is.
type ArgumentListExpressionNode struct {
	baseNode
	Arguments []ExpressionNode
}

// NewArgumentListExpressionNode creates an argument-list node.
func NewArgumentListExpressionNode(sc *scope.Scope, pos lexer.Position, arguments []ExpressionNode) *ArgumentListExpressionNode {
	return &ArgumentListExpressionNode{baseNode: newBase(sc, pos), Arguments: arguments}
}

func (node *ArgumentListExpressionNode) Literal() string {
	parts := make([]string, 0, len(node.Arguments))
	for _, arg := range node.Arguments {
		parts = append(parts, arg.Literal())
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (node *ArgumentListExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitArgumentListExpressionNode(node)
}
func (node *ArgumentListExpressionNode) Expression() {}

// ArrayLiteralExpressionNode represents a braced element list: {1, 2, 3}.
type ArrayLiteralExpressionNode struct {
	baseNode
	Elements []ExpressionNode
}

// NewArrayLiteralExpressionNode creates an array literal node.
func NewArrayLiteralExpressionNode(sc *scope.Scope, pos lexer.Position, elements []ExpressionNode) *ArrayLiteralExpressionNode {
	return &ArrayLiteralExpressionNode{baseNode: newBase(sc, pos), Elements: elements}
}

func (node *ArrayLiteralExpressionNode) Literal() string {
	parts := make([]string, 0, len(node.Elements))
	for _, elem := range node.Elements {
		parts = append(parts, elem.Literal())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (node *ArrayLiteralExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitArrayLiteralExpressionNode(node)
}
func (node *ArrayLiteralExpressionNode) Expression() {}

// AttributeAccessExpressionNode represents subject.attribute.
type AttributeAccessExpressionNode struct {
	baseNode
	Subject   ExpressionNode
	Attribute string
	AttrToken lexer.Token
}

// NewAttributeAccessExpressionNode creates an attribute access node.
func NewAttributeAccessExpressionNode(sc *scope.Scope, subject ExpressionNode, attr lexer.Token) *AttributeAccessExpressionNode {
	return &AttributeAccessExpressionNode{
		baseNode:  newBase(sc, subject.Position()),
		Subject:   subject,
		Attribute: attr.Lexeme,
		AttrToken: attr,
	}
}

func (node *AttributeAccessExpressionNode) Literal() string {
	return node.Subject.Literal() + "." + node.Attribute
}
func (node *AttributeAccessExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitAttributeAccessExpressionNode(node)
}
func (node *AttributeAccessExpressionNode) Expression() {}

// ArrayAccessExpressionNode represents subject[index].
type ArrayAccessExpressionNode struct {
	baseNode
	Subject ExpressionNode
	Index   ExpressionNode
}

// NewArrayAccessExpressionNode creates an indexing node.
func NewArrayAccessExpressionNode(sc *scope.Scope, subject, index ExpressionNode) *ArrayAccessExpressionNode {
	return &ArrayAccessExpressionNode{baseNode: newBase(sc, subject.Position()), Subject: subject, Index: index}
}

func (node *ArrayAccessExpressionNode) Literal() string {
	return node.Subject.Literal() + "[" + node.Index.Literal() + "]"
}
func (node *ArrayAccessExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitArrayAccessExpressionNode(node)
}
func (node *ArrayAccessExpressionNode) Expression() {}

// FunctionCallExpressionNode represents callee(arguments).
type FunctionCallExpressionNode struct {
	baseNode
	Callee    ExpressionNode
	Arguments *ArgumentListExpressionNode
}

// NewFunctionCallExpressionNode creates a call node.
func NewFunctionCallExpressionNode(sc *scope.Scope, callee ExpressionNode, arguments *ArgumentListExpressionNode) *FunctionCallExpressionNode {
	return &FunctionCallExpressionNode{baseNode: newBase(sc, callee.Position()), Callee: callee, Arguments: arguments}
}

func (node *FunctionCallExpressionNode) Literal() string {
	return node.Callee.Literal() + node.Arguments.Literal()
}
func (node *FunctionCallExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitFunctionCallExpressionNode(node)
}
func (node *FunctionCallExpressionNode) Expression() {}

// CastExpressionNode is an explicit numeric conversion inserted by the
// analyzer. It never appears in parsed source; it renders as its operand so
// printing stays re-parseable.
type CastExpressionNode struct {
	baseNode
	TargetType string // identifier of the type converted to
	Expr       ExpressionNode
}

// NewCastExpressionNode creates a conversion node around an expression.
func NewCastExpressionNode(sc *scope.Scope, pos lexer.Position, targetType string, expr ExpressionNode) *CastExpressionNode {
	return &CastExpressionNode{baseNode: newBase(sc, pos), TargetType: targetType, Expr: expr}
}

func (node *CastExpressionNode) Literal() string { return node.Expr.Literal() }
func (node *CastExpressionNode) Accept(visitor NodeVisitor) {
	visitor.VisitCastExpressionNode(node)
}
func (node *CastExpressionNode) Expression() {}

// String renders the cast explicitly for debugging output.
func (node *CastExpressionNode) String() string {
	return fmt.Sprintf("cast<%s>(%s)", node.TargetType, node.Expr.Literal())
}
