/*
File    : yapl/sema/analyzer_test.go
Project : YAPL compiler front-end
*/
package sema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/parser"
	"github.com/emilienlemaire/yapl/types"
)

// analyzeSrc parses and analyzes one snippet, returning the program, the
// analyzer and the diagnostics bag.
func analyzeSrc(src string) (*parser.ProgramNode, *Analyzer, *diag.Bag) {
	store := types.NewStore()
	diags := diag.NewBag()
	par := parser.NewParser(src, "test.yapl", store, diags)
	program := par.Parse()
	analyzer := NewAnalyzer(program, store, diags)
	analyzer.Analyze()
	return program, analyzer, diags
}

// topLevel strips the terminal EOF node.
func topLevel(root *parser.ProgramNode) []parser.StatementNode {
	stmts := root.Statements
	if len(stmts) > 0 {
		if _, ok := stmts[len(stmts)-1].(*parser.EOFNode); ok {
			return stmts[:len(stmts)-1]
		}
	}
	return stmts
}

func TestAnalyzer_IntegerInitialization(t *testing.T) {

	root, analyzer, diags := analyzeSrc(`int x = 3;`)
	assert.False(t, diags.HasErrors())

	init := topLevel(root)[0].(*parser.InitializationStatementNode)
	assert.Equal(t, "int", analyzer.ExprType(init.Value).Identifier())

	sym, ok := root.Scope().Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "int", sym.Type.Identifier())
}

func TestAnalyzer_ImplicitWideningInsertsCast(t *testing.T) {

	root, analyzer, diags := analyzeSrc(`double d = 1 + 2.0d;`)
	assert.False(t, diags.HasErrors())

	init := topLevel(root)[0].(*parser.InitializationStatementNode)
	bin, can := init.Value.(*parser.BinaryExpressionNode)
	assert.True(t, can)

	// The int operand is wrapped in a cast to double.
	cast, can := bin.Left.(*parser.CastExpressionNode)
	assert.True(t, can)
	assert.Equal(t, "double", cast.TargetType)
	_, can = cast.Expr.(*parser.IntegerLiteralExpressionNode)
	assert.True(t, can)

	// The whole initializer is double.
	assert.Equal(t, "double", analyzer.ExprType(bin).Identifier())
}

func TestAnalyzer_NoBinaryWithMixedOperandTypes(t *testing.T) {

	// After analysis every binary node has equally-typed operands.
	root, analyzer, diags := analyzeSrc(`
double a = 1 + 2.5;
double b = 1.5f + 2.5d;
int c = 1 + 2;
`)
	assert.False(t, diags.HasErrors())

	for _, stmt := range topLevel(root) {
		init, ok := stmt.(*parser.InitializationStatementNode)
		if !ok {
			continue
		}
		value := init.Value
		if cast, ok := value.(*parser.CastExpressionNode); ok {
			value = cast.Expr
		}
		bin, ok := value.(*parser.BinaryExpressionNode)
		if !ok {
			continue
		}
		assert.Same(t, analyzer.ExprType(bin.Left), analyzer.ExprType(bin.Right),
			"mixed operand types in %q", init.Literal())
	}
}

func TestAnalyzer_ComparisonYieldsBool(t *testing.T) {

	root, analyzer, diags := analyzeSrc(`bool b = 1 < 2;`)
	assert.False(t, diags.HasErrors())

	init := topLevel(root)[0].(*parser.InitializationStatementNode)
	assert.Equal(t, "bool", analyzer.ExprType(init.Value).Identifier())
}

func TestAnalyzer_LogicalOperatorsRequireBool(t *testing.T) {

	_, _, diags := analyzeSrc(`bool b = 1 & 2;`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))

	_, _, ok := analyzeSrc(`bool b = true & false;`)
	assert.False(t, ok.HasErrors())
}

func TestAnalyzer_IncompatibleTypesReportedAndAnnotatedVoid(t *testing.T) {

	root, analyzer, diags := analyzeSrc(`int x = 1 + true;`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))

	init := topLevel(root)[0].(*parser.InitializationStatementNode)
	assert.Equal(t, "void", analyzer.ExprType(init.Value).Identifier())
}

func TestAnalyzer_UndefinedIdentifier(t *testing.T) {

	root, analyzer, diags := analyzeSrc(`int x = missing;`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrUndefined))

	init := topLevel(root)[0].(*parser.InitializationStatementNode)
	assert.Equal(t, "void", analyzer.ExprType(init.Value).Identifier())
}

func TestAnalyzer_UnaryOperators(t *testing.T) {

	_, _, diags := analyzeSrc(`int x = -3; bool b = !true;`)
	assert.False(t, diags.HasErrors())

	_, _, diags = analyzeSrc(`bool b = !3;`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))

	_, _, diags = analyzeSrc(`bool b = -true;`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))
}

func TestAnalyzer_ForRangeTypesIterator(t *testing.T) {

	root, _, diags := analyzeSrc(`func main() -> void { for i in 0 ... 10 { } }`)
	assert.False(t, diags.HasErrors())

	fn := topLevel(root)[0].(*parser.FunctionDefinitionNode)
	loop := fn.Body.Statements[0].(*parser.ForStatementNode)

	sym, ok := loop.Scope().LookupLocal("i")
	assert.True(t, ok)
	assert.Equal(t, "int", sym.Type.Identifier())
}

func TestAnalyzer_RangeEndpointsCoerced(t *testing.T) {

	root, analyzer, diags := analyzeSrc(`func main() -> void { for i in 0.5 ... 10 { } }`)
	assert.False(t, diags.HasErrors())

	fn := topLevel(root)[0].(*parser.FunctionDefinitionNode)
	loop := fn.Body.Statements[0].(*parser.ForStatementNode)

	// The end is cast to the start's type (double).
	cast, can := loop.Range.End.(*parser.CastExpressionNode)
	assert.True(t, can)
	assert.Equal(t, "double", cast.TargetType)
	assert.Equal(t, "double", analyzer.ExprType(loop.Range).Identifier())
}

func TestAnalyzer_DegenerateRangeOverArray(t *testing.T) {

	root, _, diags := analyzeSrc(`
int values[3] = (1, 2, 3);
func main() -> void { for v in values { } }
`)
	assert.False(t, diags.HasErrors())

	fn := topLevel(root)[1].(*parser.FunctionDefinitionNode)
	loop := fn.Body.Statements[0].(*parser.ForStatementNode)

	sym, ok := loop.Scope().LookupLocal("v")
	assert.True(t, ok)
	assert.Equal(t, "int", sym.Type.Identifier())
}

func TestAnalyzer_ArrayAccess(t *testing.T) {

	root, analyzer, diags := analyzeSrc(`
int values[2] = (1, 2);
int x = values[0];
`)
	assert.False(t, diags.HasErrors())

	init := topLevel(root)[1].(*parser.InitializationStatementNode)
	assert.Equal(t, "int", analyzer.ExprType(init.Value).Identifier())

	_, _, diags = analyzeSrc(`
int values[2] = (1, 2);
int x = values[true];
`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))

	_, _, diags = analyzeSrc(`
int y = 1;
int x = y[0];
`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))
}

func TestAnalyzer_ArrayInitializationElementwise(t *testing.T) {

	// A numeric mismatch in an element is made explicit with a cast.
	root, _, diags := analyzeSrc(`double d[2] = (1, 2.0);`)
	assert.False(t, diags.HasErrors())

	init := topLevel(root)[0].(*parser.ArrayInitializationStatementNode)
	values := init.Values.(*parser.ArgumentListExpressionNode)
	_, can := values.Arguments[0].(*parser.CastExpressionNode)
	assert.True(t, can)

	// Wrong element count is incompatible.
	_, _, diags = analyzeSrc(`int a[3] = (1, 2);`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))

	// Non-numeric mismatch is incompatible.
	_, _, diags = analyzeSrc(`int a[2] = (1, true);`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))
}

func TestAnalyzer_StructInitialization(t *testing.T) {

	root, _, diags := analyzeSrc(`
struct P { int x; double y; }
P p = (1, 2);
`)
	assert.False(t, diags.HasErrors())

	init := topLevel(root)[1].(*parser.StructInitializationStatementNode)
	// The int literal for the double field is cast.
	_, can := init.Attributes.Arguments[1].(*parser.CastExpressionNode)
	assert.True(t, can)

	sym, ok := root.Scope().Lookup("p")
	assert.True(t, ok)
	assert.True(t, sym.Type.IsStruct())

	_, _, diags = analyzeSrc(`
struct P { int x; double y; }
P p = (1);
`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))
}

func TestAnalyzer_AttributeAccess(t *testing.T) {

	root, analyzer, diags := analyzeSrc(`
struct P { int x; }
P p = (1);
int v = p.x;
`)
	assert.False(t, diags.HasErrors())

	init := topLevel(root)[2].(*parser.InitializationStatementNode)
	assert.Equal(t, "int", analyzer.ExprType(init.Value).Identifier())

	_, _, diags = analyzeSrc(`
struct P { int x; }
P p = (1);
int v = p.missing;
`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrUndefined))

	_, _, diags = analyzeSrc(`
int y = 1;
int v = y.x;
`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))
}

func TestAnalyzer_FunctionCallResolution(t *testing.T) {

	root, analyzer, diags := analyzeSrc(`
func f(int a) -> int { return a; }
func f(double a) -> double { return a; }
int x = f(1);
double y = f(1.5);
`)
	assert.False(t, diags.HasErrors())

	stmts := topLevel(root)
	intCall := stmts[2].(*parser.InitializationStatementNode)
	dblCall := stmts[3].(*parser.InitializationStatementNode)

	assert.Equal(t, "int", analyzer.ExprType(intCall.Value).Identifier())
	assert.Equal(t, "double", analyzer.ExprType(dblCall.Value).Identifier())
}

func TestAnalyzer_CallArityMismatch(t *testing.T) {

	_, _, diags := analyzeSrc(`
func f() -> int { return 1; }
int x = f(1, 2);
`)
	// The zero-parameter overload exists under the plain name; the call
	// with two arguments must be an arity mismatch.
	assert.NotEmpty(t, diags.ByKind(diag.ErrArityMismatch))
}

func TestAnalyzer_CallOfUndefinedFunction(t *testing.T) {

	_, _, diags := analyzeSrc(`int x = g(1);`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrUndefined))
}

func TestAnalyzer_ReturnTypeChecked(t *testing.T) {

	root, _, diags := analyzeSrc(`func f(int a) -> double { return a; }`)
	assert.False(t, diags.HasErrors())

	fn := topLevel(root)[0].(*parser.FunctionDefinitionNode)
	ret := fn.Body.Statements[0].(*parser.ReturnStatementNode)
	cast, can := ret.Expr.(*parser.CastExpressionNode)
	assert.True(t, can)
	assert.Equal(t, "double", cast.TargetType)

	_, _, diags = analyzeSrc(`func f() -> int { return true; }`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))
}

func TestAnalyzer_AssignmentRules(t *testing.T) {

	root, _, diags := analyzeSrc(`
func main() -> void {
	int x;
	x = 1;
	double d;
	d = x;
}
`)
	assert.False(t, diags.HasErrors())

	fn := topLevel(root)[0].(*parser.FunctionDefinitionNode)
	assign := fn.Body.Statements[3].(*parser.AssignmentStatementNode)
	_, can := assign.Value.(*parser.CastExpressionNode)
	assert.True(t, can)

	_, _, diags = analyzeSrc(`
func main() -> void {
	1 + 2 = 3;
}
`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrInvalidAssignment))

	_, _, diags = analyzeSrc(`
func main() -> void {
	bool b;
	b = 1;
}
`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))
}

func TestAnalyzer_IfConditionMustBeBool(t *testing.T) {

	_, _, diags := analyzeSrc(`func main() -> void { if 1 { } }`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrIncompatibleTypes))

	_, _, diags = analyzeSrc(`func main() -> void { if 1 < 2 { } }`)
	assert.False(t, diags.HasErrors())
}

func TestAnalyzer_MethodBodyResolvesAttributesAndThis(t *testing.T) {

	_, _, diags := analyzeSrc(`
struct P {
	int x;
	func get() -> int { return x; }
	func self() -> int { return this.x; }
}
`)
	assert.False(t, diags.HasErrors())
}

func TestAnalyzer_MethodCall(t *testing.T) {

	root, analyzer, diags := analyzeSrc(`
struct P {
	int x;
	func get() -> int { return x; }
}
P p = (1);
int v = p.get();
`)
	assert.False(t, diags.HasErrors())

	init := topLevel(root)[2].(*parser.InitializationStatementNode)
	assert.Equal(t, "int", analyzer.ExprType(init.Value).Identifier())
}

func TestAnalyzer_UnknownTypeAnnotatesVoid(t *testing.T) {

	root, _, diags := analyzeSrc(`Unknown u;`)
	assert.NotEmpty(t, diags.ByKind(diag.ErrUndefined))

	sym, ok := root.Scope().Lookup("u")
	assert.True(t, ok)
	assert.Equal(t, "void", sym.Type.Identifier())
}

func TestAnalyzer_StructInitializerAnnotatedWithStructType(t *testing.T) {

	root, analyzer, diags := analyzeSrc(`
struct P { int x; int y; }
P p = (1, 2);
`)
	assert.False(t, diags.HasErrors())

	// The attribute group of a struct initialization is annotated with the
	// struct type it builds.
	init := topLevel(root)[1].(*parser.StructInitializationStatementNode)
	assert.True(t, analyzer.ExprType(init.Attributes).IsStruct())
}
