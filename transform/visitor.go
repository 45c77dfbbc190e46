/*
File    : yapl/transform/visitor.go
Project : YAPL compiler front-end
*/
package transform

import "github.com/emilienlemaire/yapl/parser"

// The extractor only rewrites struct definitions; every other node variant
// is left untouched.

func (x *MethodExtractor) VisitEOFNode(node *parser.EOFNode) {}

func (x *MethodExtractor) VisitIntegerLiteralExpressionNode(node *parser.IntegerLiteralExpressionNode) {
}

func (x *MethodExtractor) VisitFloatLiteralExpressionNode(node *parser.FloatLiteralExpressionNode) {}

func (x *MethodExtractor) VisitDoubleLiteralExpressionNode(node *parser.DoubleLiteralExpressionNode) {}

func (x *MethodExtractor) VisitBooleanLiteralExpressionNode(node *parser.BooleanLiteralExpressionNode) {
}

func (x *MethodExtractor) VisitIdentifierExpressionNode(node *parser.IdentifierExpressionNode) {}

func (x *MethodExtractor) VisitParenthesizedExpressionNode(node *parser.ParenthesizedExpressionNode) {}

func (x *MethodExtractor) VisitNegateExpressionNode(node *parser.NegateExpressionNode) {}

func (x *MethodExtractor) VisitNotExpressionNode(node *parser.NotExpressionNode) {}

func (x *MethodExtractor) VisitBinaryExpressionNode(node *parser.BinaryExpressionNode) {}

func (x *MethodExtractor) VisitRangeExpressionNode(node *parser.RangeExpressionNode) {}

func (x *MethodExtractor) VisitArgumentListExpressionNode(node *parser.ArgumentListExpressionNode) {}

func (x *MethodExtractor) VisitArrayLiteralExpressionNode(node *parser.ArrayLiteralExpressionNode) {}

func (x *MethodExtractor) VisitAttributeAccessExpressionNode(node *parser.AttributeAccessExpressionNode) {
}

func (x *MethodExtractor) VisitArrayAccessExpressionNode(node *parser.ArrayAccessExpressionNode) {}

func (x *MethodExtractor) VisitFunctionCallExpressionNode(node *parser.FunctionCallExpressionNode) {}

func (x *MethodExtractor) VisitCastExpressionNode(node *parser.CastExpressionNode) {}

func (x *MethodExtractor) VisitDeclarationStatementNode(node *parser.DeclarationStatementNode) {}

func (x *MethodExtractor) VisitArrayDeclarationStatementNode(node *parser.ArrayDeclarationStatementNode) {
}

func (x *MethodExtractor) VisitInitializationStatementNode(node *parser.InitializationStatementNode) {}

func (x *MethodExtractor) VisitArrayInitializationStatementNode(node *parser.ArrayInitializationStatementNode) {
}

func (x *MethodExtractor) VisitStructInitializationStatementNode(node *parser.StructInitializationStatementNode) {
}

func (x *MethodExtractor) VisitAssignmentStatementNode(node *parser.AssignmentStatementNode) {}

func (x *MethodExtractor) VisitExpressionStatementNode(node *parser.ExpressionStatementNode) {}

func (x *MethodExtractor) VisitIfStatementNode(node *parser.IfStatementNode) {}

func (x *MethodExtractor) VisitForStatementNode(node *parser.ForStatementNode) {}

func (x *MethodExtractor) VisitReturnStatementNode(node *parser.ReturnStatementNode) {}

func (x *MethodExtractor) VisitBlockStatementNode(node *parser.BlockStatementNode) {}

func (x *MethodExtractor) VisitFunctionDefinitionNode(node *parser.FunctionDefinitionNode) {}

func (x *MethodExtractor) VisitImportStatementNode(node *parser.ImportStatementNode) {}

func (x *MethodExtractor) VisitExportStatementNode(node *parser.ExportStatementNode) {}
