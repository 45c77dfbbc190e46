/*
File    : yapl/parser/parser_structs.go
Project : YAPL compiler front-end
*/
package parser

import (
	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/lexer"
	"github.com/emilienlemaire/yapl/scope"
	"github.com/emilienlemaire/yapl/types"
)

// parseStructDefinition parses
//
//	struct Name { attributes... methods... }
//
// Attributes are plain declarations, methods are function definitions. The
// struct gets its own scope holding attribute and method symbols, its
// struct type is interned in the type store, and a type symbol is inserted
// into the enclosing scope — which enforces that a struct identifier is
// unique in the scope defining it.
func (par *Parser) parseStructDefinition() StatementNode {
	pos := par.CurrToken.Pos
	par.nextToken() // eat 'struct'

	if !par.CurrToken.Is(lexer.IDENTIFIER_ID) {
		par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
			"expecting a struct name after 'struct' instead of %s", par.CurrToken)
		return nil
	}
	nameTok := par.CurrToken
	par.nextToken() // eat name

	if !par.expect(lexer.LEFT_BRACE, "to open the struct body") {
		return nil
	}

	enclosing := par.Scope
	structScope := enclosing.PushChild()
	par.Scope = structScope
	defer func() { par.Scope = enclosing }()

	var attributes []*DeclarationStatementNode
	var methods []*FunctionDefinitionNode

	for !par.CurrToken.Is(lexer.RIGHT_BRACE) && !par.CurrToken.Is(lexer.EOF_TYPE) {
		switch par.CurrToken.Kind {
		case lexer.SEMICOLON:
			par.nextToken()

		case lexer.FUNC_KEY:
			method := par.parseFunctionDefinition()
			if method == nil {
				par.synchronize()
				continue
			}
			fn, ok := method.(*FunctionDefinitionNode)
			if !ok {
				continue
			}
			// Re-tag the symbol the function parser inserted: inside a
			// struct body a func is a method.
			mangled := scope.MangleFunction(fn.Name, paramNames(fn.Parameters))
			if sym, found := structScope.LookupLocal(mangled); found {
				sym.Kind = scope.MethodSymbol
			}
			methods = append(methods, fn)

		case lexer.IDENTIFIER_ID:
			attr := par.parseAttribute()
			if attr == nil {
				par.synchronize()
				continue
			}
			attributes = append(attributes, attr)

		case lexer.NONE_TYPE:
			par.reportLexical()
			par.synchronize()

		default:
			par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
				"expecting an attribute or a method in struct %q instead of %s",
				nameTok.Lexeme, par.CurrToken)
			par.synchronize()
		}
	}

	if !par.expect(lexer.RIGHT_BRACE, "to close the struct body") {
		return nil
	}

	structType := par.internStructType(nameTok.Lexeme, attributes)
	typeSym := scope.NewTypeSymbol(nameTok.Lexeme, structType)
	typeSym.Scope = structScope
	if err := enclosing.Insert(typeSym); err != nil {
		par.Diags.Errorf(diag.ErrRedefinition, nameTok.Pos,
			"redefinition of struct %q", nameTok.Lexeme)
	}

	return NewStructDefinitionNode(enclosing, pos, nameTok.Lexeme, attributes, methods, structScope)
}

// parseAttribute parses one struct attribute: "Type name;". The attribute is
// inserted into the struct scope as a variable symbol.
func (par *Parser) parseAttribute() *DeclarationStatementNode {
	typeTok := par.CurrToken
	par.nextToken() // eat type

	if !par.CurrToken.Is(lexer.IDENTIFIER_ID) {
		par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
			"expecting an attribute name after type %q instead of %s",
			typeTok.Lexeme, par.CurrToken)
		return nil
	}
	identTok := par.CurrToken
	par.nextToken() // eat name

	if !par.expect(lexer.SEMICOLON, "after struct attribute") {
		return nil
	}

	par.insertVariable(identTok, typeTok.Lexeme)
	return NewDeclarationStatementNode(par.Scope, typeTok, identTok)
}

// internStructType builds and interns the struct type from the parsed
// attributes. Attribute types that do not resolve yet contribute void; the
// analyzer reports them when it visits the definition.
func (par *Parser) internStructType(name string, attributes []*DeclarationStatementNode) *types.Type {
	fields := make([]types.Field, 0, len(attributes))
	for _, attr := range attributes {
		fieldType := par.resolveTypeName(attr.TypeName)
		fields = append(fields, types.Field{Name: attr.Identifier, Type: fieldType})
	}
	return par.Types.StructOf(name, fields)
}

// resolveTypeName resolves a type name through the current scope, falling
// back to void when the name is unknown.
func (par *Parser) resolveTypeName(name string) *types.Type {
	if sym, ok := par.Scope.Lookup(name); ok && sym.Kind == scope.TypeSymbol && sym.Type != nil {
		return sym.Type
	}
	void, err := par.Types.Primitive(types.Void)
	if err != nil {
		// The primitives are interned at store creation; this cannot fail
		// on a well-formed compilation context.
		panic(err)
	}
	return void
}

// paramNames extracts the declared parameter type names of a function
// definition, for mangling.
func paramNames(parameters []*DeclarationStatementNode) []string {
	names := make([]string, 0, len(parameters))
	for _, p := range parameters {
		names = append(names, p.TypeName)
	}
	return names
}
