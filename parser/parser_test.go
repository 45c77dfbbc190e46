/*
File    : yapl/parser/parser_test.go
Project : YAPL compiler front-end
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/scope"
	"github.com/emilienlemaire/yapl/types"
)

// parseSrc runs the parser over one source snippet and returns the program
// together with the diagnostics bag.
func parseSrc(src string) (*ProgramNode, *diag.Bag) {
	store := types.NewStore()
	diags := diag.NewBag()
	par := NewParser(src, "test.yapl", store, diags)
	return par.Parse(), diags
}

// topLevel strips the terminal EOF node from the program statements.
func topLevel(root *ProgramNode) []StatementNode {
	stmts := root.Statements
	if len(stmts) > 0 {
		if _, ok := stmts[len(stmts)-1].(*EOFNode); ok {
			return stmts[:len(stmts)-1]
		}
	}
	return stmts
}

func TestParser_Parse_IntegerDeclarationWithInitializer(t *testing.T) {

	root, diags := parseSrc(`int x = 3;`)
	assert.NotNil(t, root)
	assert.False(t, diags.HasErrors())

	stmts := topLevel(root)
	assert.Equal(t, 1, len(stmts))

	init, can := stmts[0].(*InitializationStatementNode)
	assert.True(t, can)
	assert.Equal(t, "int", init.TypeName)
	assert.Equal(t, "x", init.Identifier)

	lit, can := init.Value.(*IntegerLiteralExpressionNode)
	assert.True(t, can)
	assert.Equal(t, int64(3), lit.Value)

	// The parser populates the top-level scope as it goes.
	sym, ok := root.Scope().Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, scope.VariableSymbol, sym.Kind)
	assert.Equal(t, "int", sym.TypeSym.Name)
}

func TestParser_Parse_TerminalEOFNode(t *testing.T) {

	root, _ := parseSrc(`int x;`)
	last := root.Statements[len(root.Statements)-1]
	_, can := last.(*EOFNode)
	assert.True(t, can)
}

func TestParser_Parse_Precedence(t *testing.T) {

	// 1 + 2 * 3 must parse as 1 + (2 * 3).
	root, diags := parseSrc(`int x = 1 + 2 * 3;`)
	assert.False(t, diags.HasErrors())

	init := topLevel(root)[0].(*InitializationStatementNode)
	add, can := init.Value.(*BinaryExpressionNode)
	assert.True(t, can)
	assert.Equal(t, "+", add.Operation.Lexeme)

	_, can = add.Left.(*IntegerLiteralExpressionNode)
	assert.True(t, can)

	mul, can := add.Right.(*BinaryExpressionNode)
	assert.True(t, can)
	assert.Equal(t, "*", mul.Operation.Lexeme)
}

func TestParser_Parse_LeftAssociativity(t *testing.T) {

	// 10 - 4 - 3 must parse as (10 - 4) - 3.
	root, diags := parseSrc(`int x = 10 - 4 - 3;`)
	assert.False(t, diags.HasErrors())

	init := topLevel(root)[0].(*InitializationStatementNode)
	outer, can := init.Value.(*BinaryExpressionNode)
	assert.True(t, can)
	assert.Equal(t, "-", outer.Operation.Lexeme)

	inner, can := outer.Left.(*BinaryExpressionNode)
	assert.True(t, can)
	assert.Equal(t, "-", inner.Operation.Lexeme)

	_, can = outer.Right.(*IntegerLiteralExpressionNode)
	assert.True(t, can)
}

func TestParser_Parse_ComparisonBindsLooserThanArithmetic(t *testing.T) {

	// a + 1 < b * 2 must parse as (a + 1) < (b * 2).
	root, diags := parseSrc(`int a; int b; bool c = a + 1 < b * 2;`)
	assert.False(t, diags.HasErrors())

	stmts := topLevel(root)
	init := stmts[2].(*InitializationStatementNode)

	cmp, can := init.Value.(*BinaryExpressionNode)
	assert.True(t, can)
	assert.Equal(t, "<", cmp.Operation.Lexeme)

	_, can = cmp.Left.(*BinaryExpressionNode)
	assert.True(t, can)
	_, can = cmp.Right.(*BinaryExpressionNode)
	assert.True(t, can)
}

func TestParser_Parse_UnaryBindsTightest(t *testing.T) {

	// -a * b must parse as (-a) * b.
	root, diags := parseSrc(`int a; int b; int c = -a * b;`)
	assert.False(t, diags.HasErrors())

	init := topLevel(root)[2].(*InitializationStatementNode)
	mul, can := init.Value.(*BinaryExpressionNode)
	assert.True(t, can)
	assert.Equal(t, "*", mul.Operation.Lexeme)

	_, can = mul.Left.(*NegateExpressionNode)
	assert.True(t, can)
}

func TestParser_Parse_FunctionDefinition(t *testing.T) {

	root, diags := parseSrc(`func add(int a, int b) -> int { return a + b; }`)
	assert.False(t, diags.HasErrors())

	fn, can := topLevel(root)[0].(*FunctionDefinitionNode)
	assert.True(t, can)
	assert.Equal(t, "add", fn.Name)
	assert.Equal(t, "int", fn.ReturnType)
	assert.Equal(t, 2, len(fn.Parameters))
	assert.Equal(t, "a", fn.Parameters[0].Identifier)
	assert.Equal(t, "b", fn.Parameters[1].Identifier)

	// Parameters are variable symbols in the body scope.
	aSym, ok := fn.BodyScope.LookupLocal("a")
	assert.True(t, ok)
	assert.Equal(t, scope.VariableSymbol, aSym.Kind)

	// The function symbol is mangled into the enclosing scope.
	fnSym, ok := root.Scope().Lookup("add_int_int")
	assert.True(t, ok)
	assert.Equal(t, scope.FunctionSymbol, fnSym.Kind)

	ret, can := fn.Body.Statements[0].(*ReturnStatementNode)
	assert.True(t, can)
	_, can = ret.Expr.(*BinaryExpressionNode)
	assert.True(t, can)
}

func TestParser_Parse_FunctionOverloading(t *testing.T) {

	root, diags := parseSrc(`
func f(int a) -> int { return a; }
func f(double a) -> double { return a; }
`)
	assert.False(t, diags.HasErrors())

	first, ok1 := root.Scope().Lookup("f_int")
	second, ok2 := root.Scope().Lookup("f_double")
	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, scope.FunctionSymbol, first.Kind)
	assert.Equal(t, scope.FunctionSymbol, second.Kind)
	assert.NotSame(t, first, second)
}

func TestParser_Parse_StructDefinition(t *testing.T) {

	root, diags := parseSrc(`struct P { int x; func get() -> int { return x; } }`)
	assert.False(t, diags.HasErrors())

	structDef, can := topLevel(root)[0].(*StructDefinitionNode)
	assert.True(t, can)
	assert.Equal(t, "P", structDef.Name)
	assert.Equal(t, 1, len(structDef.Attributes))
	assert.Equal(t, "x", structDef.Attributes[0].Identifier)
	assert.Equal(t, 1, len(structDef.Methods))
	assert.Equal(t, "get", structDef.Methods[0].Name)

	// The struct registers a type symbol with an interned struct type.
	sym, ok := root.Scope().Lookup("P")
	assert.True(t, ok)
	assert.Equal(t, scope.TypeSymbol, sym.Kind)
	assert.True(t, sym.Type.IsStruct())
	assert.Equal(t, 1, len(sym.Type.Fields()))

	// Attribute and method symbols live in the struct scope.
	_, ok = structDef.StructScope.LookupLocal("x")
	assert.True(t, ok)
	method, ok := structDef.StructScope.LookupLocal("get")
	assert.True(t, ok)
	assert.Equal(t, scope.MethodSymbol, method.Kind)
}

func TestParser_Parse_StructInitialization(t *testing.T) {

	root, diags := parseSrc(`
struct P { int x; int y; }
P p = (1, 2);
`)
	assert.False(t, diags.HasErrors())

	stmts := topLevel(root)
	init, can := stmts[1].(*StructInitializationStatementNode)
	assert.True(t, can)
	assert.Equal(t, "P", init.TypeName)
	assert.Equal(t, "p", init.Identifier)
	assert.Equal(t, 2, len(init.Attributes.Arguments))
}

func TestParser_Parse_ArrayDeclarationAndInitialization(t *testing.T) {

	root, diags := parseSrc(`
int a[4];
int b[2] = (1, 2);
int c[2] = {3, 4};
`)
	assert.False(t, diags.HasErrors())

	stmts := topLevel(root)

	decl, can := stmts[0].(*ArrayDeclarationStatementNode)
	assert.True(t, can)
	assert.Equal(t, 4, decl.Size)

	initParen, can := stmts[1].(*ArrayInitializationStatementNode)
	assert.True(t, can)
	_, can = initParen.Values.(*ArgumentListExpressionNode)
	assert.True(t, can)

	initBrace, can := stmts[2].(*ArrayInitializationStatementNode)
	assert.True(t, can)
	_, can = initBrace.Values.(*ArrayLiteralExpressionNode)
	assert.True(t, can)
}

func TestParser_Parse_ArraySizeMustBePositive(t *testing.T) {

	_, diags := parseSrc(`int a[0];`)
	assert.True(t, diags.HasErrors())
}

func TestParser_Parse_ForLoop(t *testing.T) {

	root, diags := parseSrc(`func main() -> void { for i in 0 ... 10 { } }`)
	assert.False(t, diags.HasErrors())

	fn := topLevel(root)[0].(*FunctionDefinitionNode)
	loop, can := fn.Body.Statements[0].(*ForStatementNode)
	assert.True(t, can)
	assert.Equal(t, "i", loop.Iterator)

	// The iterator lives in the loop's child scope.
	_, ok := loop.Scope().LookupLocal("i")
	assert.True(t, ok)

	_, can = loop.Range.Start.(*IntegerLiteralExpressionNode)
	assert.True(t, can)
	_, can = loop.Range.End.(*IntegerLiteralExpressionNode)
	assert.True(t, can)
}

func TestParser_Parse_IfElse(t *testing.T) {

	root, diags := parseSrc(`func main() -> void { if true { } else { } }`)
	assert.False(t, diags.HasErrors())

	fn := topLevel(root)[0].(*FunctionDefinitionNode)
	cond, can := fn.Body.Statements[0].(*IfStatementNode)
	assert.True(t, can)
	assert.NotNil(t, cond.Then)
	assert.NotNil(t, cond.Else)

	_, can = cond.Condition.(*BooleanLiteralExpressionNode)
	assert.True(t, can)
}

func TestParser_Parse_PostfixChain(t *testing.T) {

	// p.rows[0] composes attribute access then indexing, left to right.
	root, diags := parseSrc(`
struct M { int rows; }
func main() -> void { x = p.rows[0]; }
`)
	_ = diags // names are unresolved here; only the shape matters

	fn := topLevel(root)[1].(*FunctionDefinitionNode)
	assign, can := fn.Body.Statements[0].(*AssignmentStatementNode)
	assert.True(t, can)

	access, can := assign.Value.(*ArrayAccessExpressionNode)
	assert.True(t, can)

	attr, can := access.Subject.(*AttributeAccessExpressionNode)
	assert.True(t, can)
	assert.Equal(t, "rows", attr.Attribute)

	_, can = attr.Subject.(*IdentifierExpressionNode)
	assert.True(t, can)
}

func TestParser_Parse_CallWithArguments(t *testing.T) {

	root, diags := parseSrc(`
func add(int a, int b) -> int { return a + b; }
int x = add(1, 2);
`)
	assert.False(t, diags.HasErrors())

	init := topLevel(root)[1].(*InitializationStatementNode)
	call, can := init.Value.(*FunctionCallExpressionNode)
	assert.True(t, can)
	assert.Equal(t, 2, len(call.Arguments.Arguments))

	callee, can := call.Callee.(*IdentifierExpressionNode)
	assert.True(t, can)
	assert.Equal(t, "add", callee.Name)
}

func TestParser_Parse_Import(t *testing.T) {

	root, diags := parseSrc(`import std::io::println;`)
	assert.False(t, diags.HasErrors())

	imp, can := topLevel(root)[0].(*ImportStatementNode)
	assert.True(t, can)
	assert.Equal(t, []string{"std", "io"}, imp.Namespaces)
	assert.Equal(t, "println", imp.Name)
}

func TestParser_Parse_ImportSingle(t *testing.T) {

	root, diags := parseSrc(`import math;`)
	assert.False(t, diags.HasErrors())

	imp := topLevel(root)[0].(*ImportStatementNode)
	assert.Empty(t, imp.Namespaces)
	assert.Equal(t, "math", imp.Name)
}

func TestParser_Parse_Export(t *testing.T) {

	root, diags := parseSrc(`
int x;
int y;
export x;
export { x, y };
`)
	assert.False(t, diags.HasErrors())

	stmts := topLevel(root)
	single := stmts[2].(*ExportStatementNode)
	assert.Equal(t, []string{"x"}, single.Names)

	list := stmts[3].(*ExportStatementNode)
	assert.Equal(t, []string{"x", "y"}, list.Names)
}

func TestParser_Parse_RedefinitionKeepsFirstSymbol(t *testing.T) {

	root, diags := parseSrc(`int x; int x;`)

	redefs := diags.ByKind(diag.ErrRedefinition)
	assert.Equal(t, 1, len(redefs))
	// The diagnostic points at the second declaration.
	assert.Equal(t, 1, redefs[0].Pos.Line)
	assert.Equal(t, 12, redefs[0].Pos.Column)

	sym, ok := root.Scope().Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, "int", sym.TypeSym.Name)
}

func TestParser_Parse_UnexpectedTopLevelToken(t *testing.T) {

	_, diags := parseSrc(`return 3;`)
	assert.True(t, diags.HasErrors())
	assert.NotEmpty(t, diags.ByKind(diag.ErrUnexpectedToken))
}

func TestParser_Parse_NoneTokenIsHardError(t *testing.T) {

	_, diags := parseSrc(`int x = @;`)
	assert.True(t, diags.HasErrors())
	assert.NotEmpty(t, diags.ByKind(diag.ErrLexical))
}

func TestParser_Parse_RecoversAfterError(t *testing.T) {

	// The bad statement is reported and the next one still parses.
	root, diags := parseSrc(`
int = 3;
int y = 4;
`)
	assert.True(t, diags.HasErrors())

	_, ok := root.Scope().Lookup("y")
	assert.True(t, ok)
}

func TestParser_Literal_RoundTripsThroughSource(t *testing.T) {

	src := `int x = 1 + 2 * 3;`
	root, diags := parseSrc(src)
	assert.False(t, diags.HasErrors())

	rendered := root.Literal()
	again, diags2 := parseSrc(rendered)
	assert.False(t, diags2.HasErrors())
	assert.Equal(t, rendered, again.Literal())
}
