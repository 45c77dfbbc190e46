/*
File    : yapl/sema/analyzer.go
Project : YAPL compiler front-end
*/

// Package sema implements the semantic analyzer of the YAPL front-end.
//
// The analyzer is an AST visitor. It walks the program top-down, resolves
// names through the scope tree the parser built, infers a type for every
// expression node into an expression-to-type map, and makes implicit
// numeric conversions explicit by splicing cast nodes into the tree. After
// analysis no binary expression has operands of different inferred types.
//
// Recoverable findings are reported into the diagnostics bag and analysis
// continues — offending expressions are annotated as void so one run
// surfaces as many findings as possible.
package sema

import (
	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/lexer"
	"github.com/emilienlemaire/yapl/parser"
	"github.com/emilienlemaire/yapl/scope"
	"github.com/emilienlemaire/yapl/types"
)

// Analyzer validates a parsed program and annotates it with types.
type Analyzer struct {
	program *parser.ProgramNode
	types   *types.Store
	diags   *diag.Bag

	exprTypes map[parser.ExpressionNode]*types.Type

	currentStruct *types.Type // enclosing struct while analyzing methods
	currentReturn *types.Type // enclosing function return type
}

// NewAnalyzer creates an analyzer over a parsed program. The type store and
// diagnostics bag must be the ones the parser used.
func NewAnalyzer(program *parser.ProgramNode, store *types.Store, diags *diag.Bag) *Analyzer {
	return &Analyzer{
		program:   program,
		types:     store,
		diags:     diags,
		exprTypes: make(map[parser.ExpressionNode]*types.Type),
	}
}

// Analyze runs the full semantic pass over the program.
func (a *Analyzer) Analyze() {
	a.program.Accept(a)
}

// ExprType returns the inferred type of an expression node after analysis,
// or nil for nodes the analyzer never reached.
func (a *Analyzer) ExprType(expr parser.ExpressionNode) *types.Type {
	return a.exprTypes[expr]
}

// ExprTypeMap exposes the full expression-to-type annotation map to the
// lowering consumer.
func (a *Analyzer) ExprTypeMap() map[parser.ExpressionNode]*types.Type {
	return a.exprTypes
}

// primitive fetches a primitive type from the store. The six primitives are
// interned at store construction; failing to find one is a broken internal
// invariant and aborts the pipeline.
func (a *Analyzer) primitive(name string) *types.Type {
	t, err := a.types.Primitive(name)
	if err != nil {
		panic(err)
	}
	return t
}

func (a *Analyzer) void() *types.Type   { return a.primitive(types.Void) }
func (a *Analyzer) boolT() *types.Type  { return a.primitive(types.Bool) }
func (a *Analyzer) intT() *types.Type   { return a.primitive(types.Int) }
func (a *Analyzer) floatT() *types.Type { return a.primitive(types.Float) }
func (a *Analyzer) dblT() *types.Type   { return a.primitive(types.Double) }

// declaredTypeIn resolves a type name through the given scope, reporting
// Undefined and returning void when the name is not a type.
func (a *Analyzer) declaredTypeIn(sc *scope.Scope, name string, pos lexer.Position) *types.Type {
	if sym, ok := sc.Lookup(name); ok && sym.Kind == scope.TypeSymbol && sym.Type != nil {
		return sym.Type
	}
	a.diags.Errorf(diag.ErrUndefined, pos, "unknown type %q", name)
	return a.void()
}

// castTo wraps an expression in an explicit conversion node to the target
// type and annotates the new node.
func (a *Analyzer) castTo(expr parser.ExpressionNode, target *types.Type) parser.ExpressionNode {
	cast := parser.NewCastExpressionNode(expr.Scope(), expr.Position(), target.Identifier(), expr)
	a.exprTypes[cast] = target
	return cast
}

// exprType returns the memoized inferred type of an expression, computing
// it on first use. Unresolvable expressions infer to void.
func (a *Analyzer) exprType(expr parser.ExpressionNode) *types.Type {
	if t, ok := a.exprTypes[expr]; ok {
		return t
	}
	t := a.computeExprType(expr)
	if t == nil {
		t = a.void()
	}
	a.exprTypes[expr] = t
	return t
}

// computeExprType implements the inference rules per expression variant.
// Cast insertion happens here: binary expressions coerce their left operand
// to the right operand's type, ranges coerce the end to the start.
func (a *Analyzer) computeExprType(expr parser.ExpressionNode) *types.Type {
	switch node := expr.(type) {
	case *parser.IntegerLiteralExpressionNode:
		return a.intT()

	case *parser.FloatLiteralExpressionNode:
		return a.floatT()

	case *parser.DoubleLiteralExpressionNode:
		return a.dblT()

	case *parser.BooleanLiteralExpressionNode:
		return a.boolT()

	case *parser.IdentifierExpressionNode:
		return a.identifierType(node)

	case *parser.ParenthesizedExpressionNode:
		return a.exprType(node.Expr)

	case *parser.NegateExpressionNode:
		t := a.exprType(node.Value)
		if !t.IsNumeric() {
			a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
				"unary '-' requires a numeric operand, got %s", t)
			return a.void()
		}
		return t

	case *parser.NotExpressionNode:
		t := a.exprType(node.Value)
		if t != a.boolT() {
			a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
				"unary '!' requires a bool operand, got %s", t)
			return a.void()
		}
		return t

	case *parser.BinaryExpressionNode:
		return a.binaryType(node)

	case *parser.RangeExpressionNode:
		return a.rangeType(node)

	case *parser.ArgumentListExpressionNode:
		argTypes := make([]*types.Type, 0, len(node.Arguments))
		for _, arg := range node.Arguments {
			argTypes = append(argTypes, a.exprType(arg))
		}
		return a.types.ArgumentListOf(argTypes)

	case *parser.ArrayLiteralExpressionNode:
		return a.arrayLiteralType(node)

	case *parser.AttributeAccessExpressionNode:
		return a.attributeType(node)

	case *parser.ArrayAccessExpressionNode:
		return a.arrayAccessType(node)

	case *parser.FunctionCallExpressionNode:
		return a.callType(node)

	case *parser.CastExpressionNode:
		return a.declaredTypeIn(node.Scope(), node.TargetType, node.Position())
	}

	return a.void()
}

// identifierType resolves an identifier reference. The implicit receiver
// "this" has the type of the enclosing struct while a method body is being
// analyzed.
func (a *Analyzer) identifierType(node *parser.IdentifierExpressionNode) *types.Type {
	if node.Name == "this" && a.currentStruct != nil {
		return a.currentStruct
	}

	sym, ok := node.Scope().Lookup(node.Name)
	if !ok {
		a.diags.Errorf(diag.ErrUndefined, node.Position(), "undefined name %q", node.Name)
		return a.void()
	}
	if sym.Type != nil {
		return sym.Type
	}
	if sym.TypeSym != nil && sym.TypeSym.Type != nil {
		return sym.TypeSym.Type
	}
	// The declaring statement already reported why the type is unknown.
	return a.void()
}

// binaryType types a binary operation. Operands of different numeric types
// are equalized by casting the left operand to the right operand's type;
// anything else that differs is incompatible.
func (a *Analyzer) binaryType(node *parser.BinaryExpressionNode) *types.Type {
	lhs := a.exprType(node.Left)
	rhs := a.exprType(node.Right)

	if lhs != rhs {
		if lhs.IsNumeric() && rhs.IsNumeric() {
			node.Left = a.castTo(node.Left, rhs)
			lhs = rhs
		} else {
			a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
				"binary %q between incompatible types %s and %s",
				node.Operation.Lexeme, lhs, rhs)
			return a.void()
		}
	}

	if node.IsLogicalOperation() && lhs != a.boolT() {
		a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
			"logical %q requires bool operands, got %s", node.Operation.Lexeme, lhs)
		return a.void()
	}

	if node.IsComparisonOperation() {
		return a.boolT()
	}
	return rhs
}

// rangeType types "start ... end". Both endpoints must be the same numeric
// type; a differing numeric end is cast to the start's type. The degenerate
// range over an array yields the array's element type.
func (a *Analyzer) rangeType(node *parser.RangeExpressionNode) *types.Type {
	start := a.exprType(node.Start)

	if start.IsArray() {
		return start.ElementsType()
	}

	if node.End != nil {
		end := a.exprType(node.End)
		if start != end {
			if start.IsNumeric() && end.IsNumeric() {
				node.End = a.castTo(node.End, start)
				return start
			}
			a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
				"incompatible types %s and %s in range expression", start, end)
			return a.void()
		}
		if start.IsNumeric() {
			return start
		}
	} else if start.IsNumeric() {
		return start
	}

	a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
		"invalid type %s in range expression", start)
	return a.void()
}

// arrayLiteralType types a braced element list. All elements must share one
// type; the literal then has the matching array type.
func (a *Analyzer) arrayLiteralType(node *parser.ArrayLiteralExpressionNode) *types.Type {
	if len(node.Elements) == 0 {
		a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(), "empty array literal")
		return a.void()
	}

	elemType := a.exprType(node.Elements[0])
	for _, elem := range node.Elements[1:] {
		if t := a.exprType(elem); t != elemType {
			a.diags.Errorf(diag.ErrIncompatibleTypes, elem.Position(),
				"array literal elements must share one type, got %s and %s", elemType, t)
			return a.void()
		}
	}

	arrayType, err := a.types.ArrayOf(elemType, len(node.Elements))
	if err != nil {
		return a.void()
	}
	return arrayType
}

// attributeType types subject.attribute for a struct-typed subject.
func (a *Analyzer) attributeType(node *parser.AttributeAccessExpressionNode) *types.Type {
	subject := a.exprType(node.Subject)

	if !subject.IsStruct() {
		a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
			"attribute access on non-struct type %s", subject)
		return a.void()
	}

	fieldType := subject.FieldType(node.Attribute)
	if fieldType == nil {
		a.diags.Errorf(diag.ErrUndefined, node.AttrToken.Pos,
			"struct %s has no attribute %q", subject.Identifier(), node.Attribute)
		return a.void()
	}
	return fieldType
}

// arrayAccessType types subject[index]: the subject must be an array and
// the index an int.
func (a *Analyzer) arrayAccessType(node *parser.ArrayAccessExpressionNode) *types.Type {
	subject := a.exprType(node.Subject)
	index := a.exprType(node.Index)

	if !subject.IsArray() {
		a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
			"indexing a non-array type %s", subject)
		return a.void()
	}
	if index != a.intT() {
		a.diags.Errorf(diag.ErrIncompatibleTypes, node.Index.Position(),
			"array index must be int, got %s", index)
	}
	return subject.ElementsType()
}

// callType types a function call. Calls through a plain identifier resolve
// overloads by mangling the base name with the argument types; calls
// through attribute access resolve methods in the struct's scope. Argument
// count and positional types must match the callee exactly.
func (a *Analyzer) callType(node *parser.FunctionCallExpressionNode) *types.Type {
	argTypes := make([]*types.Type, 0, len(node.Arguments.Arguments))
	for _, arg := range node.Arguments.Arguments {
		argTypes = append(argTypes, a.exprType(arg))
	}
	a.exprTypes[node.Arguments] = a.types.ArgumentListOf(argTypes)

	switch callee := node.Callee.(type) {
	case *parser.IdentifierExpressionNode:
		// Overloads live under mangled names: construct the argument-list
		// mangling and look that up first.
		mangled := scope.MangleFunctionTypes(callee.Name, argTypes)
		if sym, ok := node.Scope().Lookup(mangled); ok && sym.Type != nil && sym.Type.IsFunction() {
			a.exprTypes[callee] = sym.Type
			return sym.Type.ReturnType()
		}

		// Fall back to the unmangled name for zero-parameter functions and
		// for reporting the precise mismatch.
		if sym, ok := node.Scope().Lookup(callee.Name); ok && sym.Type != nil && sym.Type.IsFunction() {
			a.exprTypes[callee] = sym.Type
			return a.checkCall(sym.Type, argTypes, node.Position())
		}

		a.diags.Errorf(diag.ErrUndefined, node.Position(),
			"undefined function %q for arguments %s", callee.Name,
			types.MangleArgumentListType(argTypes))
		return a.void()

	case *parser.AttributeAccessExpressionNode:
		return a.methodCallType(node, callee, argTypes)
	}

	calleeType := a.exprType(node.Callee)
	if !calleeType.IsFunction() {
		a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
			"calling a non-function type %s", calleeType)
		return a.void()
	}
	return a.checkCall(calleeType, argTypes, node.Position())
}

// methodCallType resolves subject.method(args) through the struct's scope.
func (a *Analyzer) methodCallType(node *parser.FunctionCallExpressionNode, callee *parser.AttributeAccessExpressionNode, argTypes []*types.Type) *types.Type {
	subject := a.exprType(callee.Subject)
	if !subject.IsStruct() {
		a.diags.Errorf(diag.ErrIncompatibleTypes, node.Position(),
			"method call on non-struct type %s", subject)
		return a.void()
	}

	typeSym, ok := node.Scope().Lookup(subject.Identifier())
	if !ok || typeSym.Scope == nil {
		a.diags.Errorf(diag.ErrUndefined, node.Position(),
			"unknown struct %q", subject.Identifier())
		return a.void()
	}

	mangled := scope.MangleFunctionTypes(callee.Attribute, argTypes)
	method, found := typeSym.Scope.LookupLocal(mangled)
	if !found {
		method, found = typeSym.Scope.LookupLocal(callee.Attribute)
	}
	if !found || method.Type == nil || !method.Type.IsFunction() {
		a.diags.Errorf(diag.ErrUndefined, callee.AttrToken.Pos,
			"struct %s has no method %q for arguments %s",
			subject.Identifier(), callee.Attribute, types.MangleArgumentListType(argTypes))
		return a.void()
	}

	a.exprTypes[callee] = method.Type
	return a.checkCall(method.Type, argTypes, node.Position())
}

// checkCall validates argument count and positional types against a
// function type and returns its return type.
func (a *Analyzer) checkCall(funcType *types.Type, argTypes []*types.Type, pos lexer.Position) *types.Type {
	params := funcType.ParamTypes()
	if len(params) != len(argTypes) {
		a.diags.Errorf(diag.ErrArityMismatch, pos,
			"call expects %d arguments, got %d", len(params), len(argTypes))
		return a.void()
	}
	for i, param := range params {
		if argTypes[i] != param {
			a.diags.Errorf(diag.ErrIncompatibleTypes, pos,
				"argument %d must be %s, got %s", i+1, param, argTypes[i])
			return a.void()
		}
	}
	return funcType.ReturnType()
}
