/*
File    : yapl/parser/parser_functions.go
Project : YAPL compiler front-end
*/
package parser

import (
	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/lexer"
	"github.com/emilienlemaire/yapl/scope"
)

// parseFunctionDefinition parses
//
//	func name ( param-list ) -> return-type { body }
//
// A child scope is opened for the body and each parameter is inserted into
// it as a variable symbol. The function symbol itself is inserted, mangled,
// into the enclosing scope before the body parses, so the body can refer to
// the function recursively.
func (par *Parser) parseFunctionDefinition() StatementNode {
	pos := par.CurrToken.Pos
	par.nextToken() // eat 'func'

	if !par.CurrToken.Is(lexer.IDENTIFIER_ID) {
		par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
			"expecting a function name after 'func' instead of %s", par.CurrToken)
		return nil
	}
	nameTok := par.CurrToken
	par.nextToken() // eat name

	if !par.expect(lexer.LEFT_PAREN, "to open the parameter list") {
		return nil
	}

	enclosing := par.Scope
	bodyScope := enclosing.PushChild()
	par.Scope = bodyScope
	defer func() { par.Scope = enclosing }()

	parameters, paramSyms := par.parseParameterList()
	if parameters == nil && paramSyms == nil {
		return nil
	}

	if !par.expect(lexer.ARROW_OP, "before the return type") {
		return nil
	}
	if !par.CurrToken.Is(lexer.IDENTIFIER_ID) {
		par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
			"expecting a return type after '->' instead of %s", par.CurrToken)
		return nil
	}
	returnTok := par.CurrToken
	par.nextToken() // eat return type

	returnSym, _ := enclosing.Lookup(returnTok.Lexeme)
	function := scope.NewFunctionSymbol(nameTok.Lexeme, returnSym, paramSyms)
	function.Name = scope.MangleFunction(nameTok.Lexeme, paramNames(parameters))
	function.Scope = bodyScope
	if err := enclosing.Insert(function); err != nil {
		par.Diags.Errorf(diag.ErrRedefinition, nameTok.Pos,
			"redefinition of function %q", function.Name)
	}

	body := par.parseBlock()
	if body == nil {
		return nil
	}

	return NewFunctionDefinitionNode(enclosing, pos, nameTok.Lexeme, returnTok.Lexeme,
		parameters, body, bodyScope)
}

// parseParameterList parses "Type name {, Type name}" up to the closing
// parenthesis. Parameters are declared in the current (body) scope. Both
// return values are nil on error; an empty parameter list yields empty
// non-nil slices.
func (par *Parser) parseParameterList() ([]*DeclarationStatementNode, []*scope.Symbol) {
	parameters := make([]*DeclarationStatementNode, 0, 4)
	paramSyms := make([]*scope.Symbol, 0, 4)

	if par.CurrToken.Is(lexer.RIGHT_PAREN) {
		par.nextToken() // eat ')'
		return parameters, paramSyms
	}

	for {
		if !par.CurrToken.Is(lexer.IDENTIFIER_ID) {
			par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
				"expecting a parameter type instead of %s", par.CurrToken)
			return nil, nil
		}
		typeTok := par.CurrToken
		par.nextToken() // eat type

		if !par.CurrToken.Is(lexer.IDENTIFIER_ID) {
			par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
				"expecting a parameter name instead of %s", par.CurrToken)
			return nil, nil
		}
		identTok := par.CurrToken
		par.nextToken() // eat name

		typeSym, _ := par.Scope.Lookup(typeTok.Lexeme)
		param := scope.NewVariableSymbol(identTok.Lexeme, typeSym)
		if err := par.Scope.Insert(param); err != nil {
			par.Diags.Errorf(diag.ErrRedefinition, identTok.Pos,
				"redefinition of parameter %q", identTok.Lexeme)
		}
		paramSyms = append(paramSyms, param)
		parameters = append(parameters, NewDeclarationStatementNode(par.Scope, typeTok, identTok))

		if par.CurrToken.Is(lexer.COMMA) {
			par.nextToken() // eat ','
			continue
		}
		break
	}

	if !par.expect(lexer.RIGHT_PAREN, "to close the parameter list") {
		return nil, nil
	}
	return parameters, paramSyms
}
