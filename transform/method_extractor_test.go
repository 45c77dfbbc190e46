/*
File    : yapl/transform/method_extractor_test.go
Project : YAPL compiler front-end
*/
package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/parser"
	"github.com/emilienlemaire/yapl/scope"
	"github.com/emilienlemaire/yapl/sema"
	"github.com/emilienlemaire/yapl/types"
)

// runPipeline parses, analyzes and extracts methods from one snippet.
func runPipeline(src string) (*parser.ProgramNode, *diag.Bag) {
	store := types.NewStore()
	diags := diag.NewBag()
	par := parser.NewParser(src, "test.yapl", store, diags)
	program := par.Parse()
	sema.NewAnalyzer(program, store, diags).Analyze()
	NewMethodExtractor(program, store, diags).Extract()
	return program, diags
}

func TestMethodExtractor_HoistsMethodToFreeFunction(t *testing.T) {

	root, diags := runPipeline(`struct P { int x; func get() -> int { return x; } }`)
	assert.False(t, diags.HasErrors())

	var structDef *parser.StructDefinitionNode
	var free *parser.FunctionDefinitionNode
	for _, stmt := range root.Statements {
		switch node := stmt.(type) {
		case *parser.StructDefinitionNode:
			structDef = node
		case *parser.FunctionDefinitionNode:
			free = node
		}
	}

	// The struct keeps its attributes but loses its methods.
	assert.NotNil(t, structDef)
	assert.Empty(t, structDef.Methods)
	assert.Equal(t, 1, len(structDef.Attributes))

	// A free function P_get now exists with the synthetic receiver first.
	assert.NotNil(t, free)
	assert.Equal(t, "P_get", free.Name)
	assert.Equal(t, "int", free.ReturnType)
	assert.Equal(t, 1, len(free.Parameters))
	assert.Equal(t, "this", free.Parameters[0].Identifier)
	assert.Equal(t, "P", free.Parameters[0].TypeName)

	// The mangled function symbol is registered in the enclosing scope.
	sym, ok := root.Scope().Lookup("P_get_P")
	assert.True(t, ok)
	assert.Equal(t, scope.FunctionSymbol, sym.Kind)
	assert.True(t, sym.Type.IsFunction())
	assert.Equal(t, "int", sym.Type.ReturnType().Identifier())
	assert.Equal(t, 1, len(sym.Type.ParamTypes()))
	assert.Equal(t, "P", sym.Type.ParamTypes()[0].Identifier())

	// "this" is bound in the hoisted body's scope.
	thisSym, ok := free.BodyScope.LookupLocal("this")
	assert.True(t, ok)
	assert.Equal(t, "P", thisSym.Type.Identifier())
}

func TestMethodExtractor_KeepsOriginalParameters(t *testing.T) {

	root, diags := runPipeline(`
struct Counter {
	int value;
	func add(int amount) -> int { return value + amount; }
}
`)
	assert.False(t, diags.HasErrors())

	var free *parser.FunctionDefinitionNode
	for _, stmt := range root.Statements {
		if fn, ok := stmt.(*parser.FunctionDefinitionNode); ok {
			free = fn
		}
	}

	assert.NotNil(t, free)
	assert.Equal(t, "Counter_add", free.Name)
	assert.Equal(t, 2, len(free.Parameters))
	assert.Equal(t, "this", free.Parameters[0].Identifier)
	assert.Equal(t, "Counter", free.Parameters[0].TypeName)
	assert.Equal(t, "amount", free.Parameters[1].Identifier)
	assert.Equal(t, "int", free.Parameters[1].TypeName)

	sym, ok := root.Scope().Lookup("Counter_add_Counter_int")
	assert.True(t, ok)
	assert.Equal(t, 2, len(sym.Type.ParamTypes()))
}

func TestMethodExtractor_BodyMovesUnchanged(t *testing.T) {

	root, diags := runPipeline(`struct P { int x; func get() -> int { return x; } }`)
	assert.False(t, diags.HasErrors())

	var free *parser.FunctionDefinitionNode
	for _, stmt := range root.Statements {
		if fn, ok := stmt.(*parser.FunctionDefinitionNode); ok {
			free = fn
		}
	}

	assert.NotNil(t, free)
	assert.Equal(t, 1, len(free.Body.Statements))
	ret, can := free.Body.Statements[0].(*parser.ReturnStatementNode)
	assert.True(t, can)
	assert.Equal(t, "x", ret.Expr.Literal())
}

func TestMethodExtractor_MultipleStructs(t *testing.T) {

	root, diags := runPipeline(`
struct A { int x; func f() -> int { return x; } }
struct B { int y; func f() -> int { return y; } }
`)
	assert.False(t, diags.HasErrors())

	_, okA := root.Scope().Lookup("A_f_A")
	_, okB := root.Scope().Lookup("B_f_B")
	assert.True(t, okA)
	assert.True(t, okB)
}

func TestMethodExtractor_NoMethodsIsANoOp(t *testing.T) {

	root, diags := runPipeline(`struct P { int x; }`)
	assert.False(t, diags.HasErrors())

	count := 0
	for _, stmt := range root.Statements {
		if _, ok := stmt.(*parser.FunctionDefinitionNode); ok {
			count++
		}
	}
	assert.Equal(t, 0, count)
}
