/*
File    : yapl/sema/visitor.go
Project : YAPL compiler front-end
*/
package sema

import (
	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/lexer"
	"github.com/emilienlemaire/yapl/parser"
	"github.com/emilienlemaire/yapl/scope"
	"github.com/emilienlemaire/yapl/types"
)

// VisitProgramNode analyzes the whole program. Function and method
// signatures are resolved in a first pass so call sites can refer to
// functions defined later in the file; the statement walk follows in
// declaration order.
func (a *Analyzer) VisitProgramNode(node *parser.ProgramNode) {
	for _, stmt := range node.Statements {
		switch def := stmt.(type) {
		case *parser.FunctionDefinitionNode:
			a.resolveFunctionSignature(def)
		case *parser.StructDefinitionNode:
			a.resolveStructSignatures(def)
		}
	}

	for _, stmt := range node.Statements {
		stmt.Accept(a)
	}
}

// VisitEOFNode is a no-op; the marker carries nothing to analyze.
func (a *Analyzer) VisitEOFNode(node *parser.EOFNode) {}

// resolveFunctionSignature resolves the parameter and return types of a
// function definition, fills the parameter symbols, and sets the interned
// function type on the (mangled) function symbol.
func (a *Analyzer) resolveFunctionSignature(node *parser.FunctionDefinitionNode) {
	paramTypes := make([]*types.Type, 0, len(node.Parameters))
	for _, param := range node.Parameters {
		t := a.declaredTypeIn(node.BodyScope, param.TypeName, param.TypeToken.Pos)
		paramTypes = append(paramTypes, t)
		if sym, ok := node.BodyScope.LookupLocal(param.Identifier); ok {
			sym.Type = t
		}
	}

	returnType := a.declaredTypeIn(node.Scope(), node.ReturnType, node.Position())
	funcType := a.types.FunctionOf(returnType, paramTypes)

	mangled := scope.MangleFunction(node.Name, declaredParamNames(node.Parameters))
	if sym, ok := node.Scope().LookupLocal(mangled); ok && sym.Type == nil {
		sym.Type = funcType
	}
}

// resolveStructSignatures resolves a struct's attribute symbol types and
// its method signatures.
func (a *Analyzer) resolveStructSignatures(node *parser.StructDefinitionNode) {
	for _, attr := range node.Attributes {
		t := a.declaredTypeIn(node.Scope(), attr.TypeName, attr.TypeToken.Pos)
		if sym, ok := node.StructScope.LookupLocal(attr.Identifier); ok {
			sym.Type = t
		}
	}
	for _, method := range node.Methods {
		a.resolveFunctionSignature(method)
	}
}

// declaredParamNames extracts the parameter type names as the parser
// mangled them.
func declaredParamNames(parameters []*parser.DeclarationStatementNode) []string {
	names := make([]string, 0, len(parameters))
	for _, p := range parameters {
		names = append(names, p.TypeName)
	}
	return names
}

// fillVariableType records the resolved declared type on the variable
// symbol the parser inserted for a declaration-family statement.
func (a *Analyzer) fillVariableType(sc *scope.Scope, name string, t *types.Type) {
	if sym, ok := sc.LookupLocal(name); ok &&
		(sym.Kind == scope.VariableSymbol || sym.Kind == scope.ConstantSymbol) {
		sym.Type = t
	}
}

// VisitDeclarationStatementNode resolves the declared type and types the
// variable symbol.
func (a *Analyzer) VisitDeclarationStatementNode(node *parser.DeclarationStatementNode) {
	t := a.declaredTypeIn(node.Scope(), node.TypeName, node.TypeToken.Pos)
	a.fillVariableType(node.Scope(), node.Identifier, t)
}

// VisitArrayDeclarationStatementNode resolves the element type and types
// the variable symbol with the interned array type.
func (a *Analyzer) VisitArrayDeclarationStatementNode(node *parser.ArrayDeclarationStatementNode) {
	elem := a.declaredTypeIn(node.Scope(), node.TypeName, node.TypeToken.Pos)
	arrayType, err := a.types.ArrayOf(elem, node.Size)
	if err != nil {
		// The parser rejects non-positive sizes; reaching this is a broken
		// invariant.
		panic(diag.ErrFatal)
	}
	a.fillVariableType(node.Scope(), node.Identifier, arrayType)
}

// VisitInitializationStatementNode checks that the initializer's type
// equals or numerically converts to the declared type.
func (a *Analyzer) VisitInitializationStatementNode(node *parser.InitializationStatementNode) {
	declared := a.declaredTypeIn(node.Scope(), node.TypeName, node.TypeToken.Pos)
	a.fillVariableType(node.Scope(), node.Identifier, declared)

	valueType := a.exprType(node.Value)
	if valueType == declared {
		return
	}
	if valueType.IsNumeric() && declared.IsNumeric() {
		node.Value = a.castTo(node.Value, declared)
		return
	}
	a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
		"cannot initialize %s %q with a %s value", declared, node.Identifier, valueType)
}

// VisitArrayInitializationStatementNode checks the initializer element-wise
// against the array's element type. Both a parenthesized argument list and
// a braced array literal are accepted.
func (a *Analyzer) VisitArrayInitializationStatementNode(node *parser.ArrayInitializationStatementNode) {
	elem := a.declaredTypeIn(node.Scope(), node.TypeName, node.TypeToken.Pos)
	arrayType, err := a.types.ArrayOf(elem, node.Size)
	if err != nil {
		panic(diag.ErrFatal)
	}
	a.fillVariableType(node.Scope(), node.Identifier, arrayType)

	switch values := node.Values.(type) {
	case *parser.ArgumentListExpressionNode:
		a.checkElements(values.Arguments, elem, node.Size, node.Position())
		a.exprTypes[values] = arrayType
	case *parser.ArrayLiteralExpressionNode:
		a.checkElements(values.Elements, elem, node.Size, node.Position())
		a.exprTypes[values] = arrayType
	default:
		a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
			"array %q must be initialized from a value group or an array literal",
			node.Identifier)
	}
}

// checkElements validates an initializer element list against the expected
// element type and count, casting numeric mismatches in place.
func (a *Analyzer) checkElements(elements []parser.ExpressionNode, elem *types.Type, size int, pos lexer.Position) {
	if len(elements) != size {
		a.diags.Errorf(diag.ErrIncompatibleTypes, pos,
			"array of %d elements initialized with %d values", size, len(elements))
		return
	}
	for i, e := range elements {
		t := a.exprType(e)
		if t == elem {
			continue
		}
		if t.IsNumeric() && elem.IsNumeric() {
			elements[i] = a.castTo(e, elem)
			continue
		}
		a.diags.Errorf(diag.ErrIncompatibleTypes, e.Position(),
			"array element %d must be %s, got %s", i+1, elem, t)
	}
}

// VisitStructInitializationStatementNode checks the attribute value group
// against the struct's field types pairwise.
func (a *Analyzer) VisitStructInitializationStatementNode(node *parser.StructInitializationStatementNode) {
	declared := a.declaredTypeIn(node.Scope(), node.TypeName, node.TypeToken.Pos)
	a.fillVariableType(node.Scope(), node.Identifier, declared)

	if !declared.IsStruct() {
		a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
			"%q is not a struct type", node.TypeName)
		return
	}

	fields := declared.Fields()
	args := node.Attributes.Arguments
	if len(args) != len(fields) {
		a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
			"struct %s has %d attributes, initializer provides %d",
			declared.Identifier(), len(fields), len(args))
		return
	}

	for i, arg := range args {
		t := a.exprType(arg)
		want := fields[i].Type
		if t == want {
			continue
		}
		if t.IsNumeric() && want.IsNumeric() {
			args[i] = a.castTo(arg, want)
			continue
		}
		a.diags.Errorf(diag.ErrIncompatibleTypes, arg.Position(),
			"attribute %q must be %s, got %s", fields[i].Name, want, t)
	}
	a.exprTypes[node.Attributes] = declared
}

// VisitAssignmentStatementNode validates the target is assignable and the
// value's type equals or numerically converts to the target's type.
func (a *Analyzer) VisitAssignmentStatementNode(node *parser.AssignmentStatementNode) {
	switch node.Target.(type) {
	case *parser.IdentifierExpressionNode,
		*parser.AttributeAccessExpressionNode,
		*parser.ArrayAccessExpressionNode:
		// assignable
	default:
		a.diags.Errorf(diag.ErrInvalidAssignment, node.Position(),
			"left-hand side of assignment is not assignable")
		return
	}

	targetType := a.exprType(node.Target)
	valueType := a.exprType(node.Value)
	if valueType == targetType {
		return
	}
	if valueType.IsNumeric() && targetType.IsNumeric() {
		node.Value = a.castTo(node.Value, targetType)
		return
	}
	a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
		"cannot assign a %s value to a %s target", valueType, targetType)
}

// VisitExpressionStatementNode types the bare expression.
func (a *Analyzer) VisitExpressionStatementNode(node *parser.ExpressionStatementNode) {
	a.exprType(node.Expr)
}

// VisitIfStatementNode requires a bool condition and analyzes each branch
// in its own scope (established by the parser).
func (a *Analyzer) VisitIfStatementNode(node *parser.IfStatementNode) {
	if t := a.exprType(node.Condition); t != a.boolT() {
		a.diags.Errorf(diag.ErrIncompatibleTypes, node.Condition.Position(),
			"if condition must be bool, got %s", t)
	}
	node.Then.Accept(a)
	if node.Else != nil {
		node.Else.Accept(a)
	}
}

// VisitForStatementNode types the range, gives the iterator variable the
// range's element type and analyzes the body.
func (a *Analyzer) VisitForStatementNode(node *parser.ForStatementNode) {
	rangeType := a.exprType(node.Range)
	a.fillVariableType(node.Scope(), node.Iterator, rangeType)
	node.Body.Accept(a)
}

// VisitReturnStatementNode checks the returned type against the enclosing
// function's return type, converting numerically when needed.
func (a *Analyzer) VisitReturnStatementNode(node *parser.ReturnStatementNode) {
	t := a.exprType(node.Expr)
	if a.currentReturn == nil {
		a.diags.Errorf(diag.ErrUnexpectedToken, node.Position(),
			"return outside of a function body")
		return
	}
	if t == a.currentReturn {
		return
	}
	if t.IsNumeric() && a.currentReturn.IsNumeric() {
		node.Expr = a.castTo(node.Expr, a.currentReturn)
		return
	}
	a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
		"cannot return a %s value from a function returning %s", t, a.currentReturn)
}

// VisitBlockStatementNode analyzes each statement in order.
func (a *Analyzer) VisitBlockStatementNode(node *parser.BlockStatementNode) {
	for _, stmt := range node.Statements {
		stmt.Accept(a)
	}
}

// VisitFunctionDefinitionNode analyzes a function body with the return type
// in effect for return statements.
func (a *Analyzer) VisitFunctionDefinitionNode(node *parser.FunctionDefinitionNode) {
	// Signatures of top-level functions and methods are resolved before the
	// statement walk; resolve here again only if this definition was never
	// seen (defensive for nested constructs).
	mangled := scope.MangleFunction(node.Name, declaredParamNames(node.Parameters))
	sym, ok := node.Scope().LookupLocal(mangled)
	if !ok || sym.Type == nil || !sym.Type.IsFunction() {
		a.resolveFunctionSignature(node)
		sym, ok = node.Scope().LookupLocal(mangled)
	}

	saved := a.currentReturn
	if ok && sym.Type != nil && sym.Type.IsFunction() {
		a.currentReturn = sym.Type.ReturnType()
	} else {
		a.currentReturn = a.void()
	}
	node.Body.Accept(a)
	a.currentReturn = saved
}

// VisitStructDefinitionNode analyzes the method bodies with the struct as
// the implicit receiver type. Attribute types are resolved earlier, by
// resolveStructSignatures in the signature pass.
func (a *Analyzer) VisitStructDefinitionNode(node *parser.StructDefinitionNode) {
	structType := a.declaredTypeIn(node.Scope(), node.Name, node.Position())

	saved := a.currentStruct
	a.currentStruct = structType
	for _, method := range node.Methods {
		method.Accept(a)
	}
	a.currentStruct = saved
}

// VisitImportStatementNode is a no-op: module resolution is a concern of
// the driver, not of single-file analysis.
func (a *Analyzer) VisitImportStatementNode(node *parser.ImportStatementNode) {}

// VisitExportStatementNode is a no-op. Exported names cannot be checked by
// their base name alone — functions live in the table under mangled names —
// so resolution is left to the consumer of the export list.
func (a *Analyzer) VisitExportStatementNode(node *parser.ExportStatementNode) {}

// Expression visitor methods delegate to the typing engine so a bare Accept
// on any expression annotates it.

func (a *Analyzer) VisitIntegerLiteralExpressionNode(node *parser.IntegerLiteralExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitFloatLiteralExpressionNode(node *parser.FloatLiteralExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitDoubleLiteralExpressionNode(node *parser.DoubleLiteralExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitBooleanLiteralExpressionNode(node *parser.BooleanLiteralExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitIdentifierExpressionNode(node *parser.IdentifierExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitParenthesizedExpressionNode(node *parser.ParenthesizedExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitNegateExpressionNode(node *parser.NegateExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitNotExpressionNode(node *parser.NotExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitBinaryExpressionNode(node *parser.BinaryExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitRangeExpressionNode(node *parser.RangeExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitArgumentListExpressionNode(node *parser.ArgumentListExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitArrayLiteralExpressionNode(node *parser.ArrayLiteralExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitAttributeAccessExpressionNode(node *parser.AttributeAccessExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitArrayAccessExpressionNode(node *parser.ArrayAccessExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitFunctionCallExpressionNode(node *parser.FunctionCallExpressionNode) {
	a.exprType(node)
}

func (a *Analyzer) VisitCastExpressionNode(node *parser.CastExpressionNode) {
	a.exprType(node)
}
