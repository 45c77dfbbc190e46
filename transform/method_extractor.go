/*
File    : yapl/transform/method_extractor.go
Project : YAPL compiler front-end
*/

// Package transform implements post-parse structural rewrites of the AST.
//
// The only transformer today is the method extractor: it rewrites struct
// methods into free functions so the lowering stage never has to deal with
// receivers. For each method M of a struct S it creates a top-level
// function S_M whose parameter list is the original one preceded by a
// synthetic "this S" parameter, moves the body over unchanged, registers
// the new (mangled) function symbol in the struct's enclosing scope, and
// removes the method from the struct. References to "this" inside the body
// now bind to the synthetic parameter.
package transform

import (
	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/lexer"
	"github.com/emilienlemaire/yapl/parser"
	"github.com/emilienlemaire/yapl/scope"
	"github.com/emilienlemaire/yapl/types"
)

// MethodExtractor hoists struct methods to free functions.
type MethodExtractor struct {
	program *parser.ProgramNode
	types   *types.Store
	diags   *diag.Bag

	extracted []*parser.FunctionDefinitionNode
}

// NewMethodExtractor creates an extractor over an analyzed program.
func NewMethodExtractor(program *parser.ProgramNode, store *types.Store, diags *diag.Bag) *MethodExtractor {
	return &MethodExtractor{program: program, types: store, diags: diags}
}

// Extract rewrites every struct in the program and appends the extracted
// functions to the top level.
func (x *MethodExtractor) Extract() {
	x.program.Accept(x)
}

// VisitProgramNode walks the top-level statements, then registers the
// functions the struct visits collected.
func (x *MethodExtractor) VisitProgramNode(node *parser.ProgramNode) {
	for _, stmt := range node.Statements {
		stmt.Accept(x)
	}
	for _, fn := range x.extracted {
		x.program.AddStatement(fn)
	}
	x.extracted = nil
}

// VisitStructDefinitionNode hoists every method of one struct definition.
func (x *MethodExtractor) VisitStructDefinitionNode(structDef *parser.StructDefinitionNode) {
	enclosing := structDef.Scope()

	structSym, ok := enclosing.Lookup(structDef.Name)
	if !ok || structSym.Type == nil || !structSym.Type.IsStruct() {
		// Analysis already reported why the struct did not resolve; there
		// is nothing to hoist against.
		return
	}
	structType := structSym.Type

	methods := make([]*parser.FunctionDefinitionNode, len(structDef.Methods))
	copy(methods, structDef.Methods)

	for _, method := range methods {
		freeName := structDef.Name + "_" + method.Name

		// The synthetic receiver leads the parameter list.
		thisParam := parser.NewDeclarationStatementNode(method.BodyScope,
			syntheticToken(structDef.Name, method.Position()),
			syntheticToken("this", method.Position()))
		parameters := append([]*parser.DeclarationStatementNode{thisParam}, method.Parameters...)

		// Bind "this" in the body scope so identifier references resolve to
		// the synthetic parameter from now on.
		thisSym := scope.NewVariableSymbol("this", structSym)
		thisSym.Type = structType
		if err := method.BodyScope.Insert(thisSym); err != nil {
			x.diags.Errorf(diag.ErrRedefinition, method.Position(),
				"method %q already binds %q", method.Name, "this")
		}

		free := parser.NewFunctionDefinitionNode(enclosing, method.Position(),
			freeName, method.ReturnType, parameters, method.Body, method.BodyScope)

		x.registerFunctionSymbol(enclosing, structSym, structType, method, free)

		structDef.RemoveMethod(method.Name)
		x.extracted = append(x.extracted, free)
	}
}

// registerFunctionSymbol interns the free function's type and inserts its
// mangled symbol into the struct's enclosing scope.
func (x *MethodExtractor) registerFunctionSymbol(enclosing *scope.Scope, structSym *scope.Symbol, structType *types.Type, method, free *parser.FunctionDefinitionNode) {
	paramTypes := []*types.Type{structType}
	paramSyms := []*scope.Symbol{scope.NewVariableSymbol("this", structSym)}
	paramSyms[0].Type = structType

	for _, param := range method.Parameters {
		t := x.resolveTypeIn(method.BodyScope, param.TypeName)
		paramTypes = append(paramTypes, t)
		sym := scope.NewVariableSymbol(param.Identifier, nil)
		sym.Type = t
		paramSyms = append(paramSyms, sym)
	}

	returnType := x.resolveTypeIn(enclosing, free.ReturnType)
	funcType := x.types.FunctionOf(returnType, paramTypes)

	returnSym, _ := enclosing.Lookup(free.ReturnType)
	function := scope.NewFunctionSymbol(free.Name, returnSym, paramSyms)
	function.Type = funcType
	function.Scope = free.BodyScope

	if err := enclosing.Insert(function); err != nil {
		x.diags.Errorf(diag.ErrRedefinition, free.Position(),
			"redefinition of %q", function.Name)
	}
}

// resolveTypeIn resolves a type name through a scope, defaulting to void;
// unresolved names were already reported during analysis.
func (x *MethodExtractor) resolveTypeIn(sc *scope.Scope, name string) *types.Type {
	if sym, ok := sc.Lookup(name); ok && sym.Kind == scope.TypeSymbol && sym.Type != nil {
		return sym.Type
	}
	void, err := x.types.Primitive(types.Void)
	if err != nil {
		panic(err)
	}
	return void
}

// syntheticToken fabricates an identifier token for nodes the transformer
// creates; it reuses the rewritten method's position.
func syntheticToken(lexeme string, pos lexer.Position) lexer.Token {
	return lexer.NewTokenWithMetadata(lexer.IDENTIFIER_ID, lexeme, pos)
}
