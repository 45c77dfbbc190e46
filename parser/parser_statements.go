/*
File    : yapl/parser/parser_statements.go
Project : YAPL compiler front-end
*/
package parser

import (
	"strconv"

	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/lexer"
	"github.com/emilienlemaire/yapl/scope"
)

// parseDeclarationFamily parses the statements that start with a type name:
//
//	Type name ;                    declaration
//	Type name = expr ;             initialization
//	Type name = ( ... ) ;          struct initialization (Type is a struct)
//	Type name [ N ] ;              array declaration
//	Type name [ N ] = (...)|{...}; array initialization
//
// The branch between plain and struct initialization consults the current
// scope for the kind of Type, which makes this parse context-sensitive.
func (par *Parser) parseDeclarationFamily() StatementNode {
	typeTok := par.CurrToken
	par.nextToken() // eat type name

	if !par.CurrToken.Is(lexer.IDENTIFIER_ID) {
		par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
			"expecting an identifier after type %q instead of %s", typeTok.Lexeme, par.CurrToken)
		return nil
	}
	identTok := par.CurrToken
	par.nextToken() // eat identifier

	switch par.CurrToken.Kind {
	case lexer.SEMICOLON:
		par.nextToken() // eat ';'
		par.insertVariable(identTok, typeTok.Lexeme)
		return NewDeclarationStatementNode(par.Scope, typeTok, identTok)

	case lexer.LEFT_BRACKET:
		return par.parseArrayDeclaration(typeTok, identTok)

	case lexer.ASSIGN_OP:
		par.nextToken() // eat '='
		return par.parseInitialization(typeTok, identTok)
	}

	par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
		"expecting ';', '[' or '=' in declaration of %q instead of %s",
		identTok.Lexeme, par.CurrToken)
	return nil
}

// parseInitialization parses the value side of "Type name = ...;". When the
// declared type resolves to a struct symbol and the value is parenthesized,
// the statement is a struct initialization.
func (par *Parser) parseInitialization(typeTok, identTok lexer.Token) StatementNode {
	typeSym, found := par.Scope.Lookup(typeTok.Lexeme)
	isStruct := found && typeSym.Kind == scope.TypeSymbol &&
		typeSym.Type != nil && typeSym.Type.IsStruct()

	if isStruct && par.CurrToken.Is(lexer.LEFT_PAREN) {
		args := par.parseArgumentList()
		if args == nil {
			return nil
		}
		if !par.expect(lexer.SEMICOLON, "after struct initialization") {
			return nil
		}
		par.insertVariable(identTok, typeTok.Lexeme)
		return NewStructInitializationStatementNode(par.Scope, typeTok, identTok, args)
	}

	value := par.parseExpr()
	if value == nil {
		return nil
	}
	if !par.expect(lexer.SEMICOLON, "after initialization") {
		return nil
	}
	par.insertVariable(identTok, typeTok.Lexeme)
	return NewInitializationStatementNode(par.Scope, typeTok, identTok, value)
}

// parseArrayDeclaration parses "[ N ]" and the optional "= values" part of
// an array declaration. The element count must be an integer literal.
func (par *Parser) parseArrayDeclaration(typeTok, identTok lexer.Token) StatementNode {
	par.nextToken() // eat '['

	if !par.CurrToken.Is(lexer.INT_LIT) {
		par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
			"expecting an integer array size instead of %s", par.CurrToken)
		return nil
	}
	size, err := strconv.Atoi(par.CurrToken.Lexeme)
	if err != nil || size <= 0 {
		par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
			"array size must be a strictly positive integer, got %q", par.CurrToken.Lexeme)
		return nil
	}
	par.nextToken() // eat size

	if !par.expect(lexer.RIGHT_BRACKET, "after array size") {
		return nil
	}

	if par.CurrToken.Is(lexer.SEMICOLON) {
		par.nextToken() // eat ';'
		par.insertVariable(identTok, typeTok.Lexeme)
		return NewArrayDeclarationStatementNode(par.Scope, typeTok, identTok, size)
	}

	if !par.expect(lexer.ASSIGN_OP, "in array initialization") {
		return nil
	}

	var values ExpressionNode
	switch par.CurrToken.Kind {
	case lexer.LEFT_PAREN:
		values = par.parseArgumentList()
	case lexer.LEFT_BRACE:
		values = par.parseArrayLiteral()
	default:
		par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
			"expecting '(' or '{' to initialize array %q instead of %s",
			identTok.Lexeme, par.CurrToken)
		return nil
	}
	if values == nil {
		return nil
	}
	if !par.expect(lexer.SEMICOLON, "after array initialization") {
		return nil
	}
	par.insertVariable(identTok, typeTok.Lexeme)
	return NewArrayInitializationStatementNode(par.Scope, typeTok, identTok, size, values)
}

// parseBlock parses "{ statement* }" in the current scope. Callers that need
// a fresh scope push one before calling and pop it after.
func (par *Parser) parseBlock() *BlockStatementNode {
	pos := par.CurrToken.Pos
	if !par.expect(lexer.LEFT_BRACE, "to open a block") {
		return nil
	}

	var statements []StatementNode
	for !par.CurrToken.Is(lexer.RIGHT_BRACE) && !par.CurrToken.Is(lexer.EOF_TYPE) {
		if par.CurrToken.Is(lexer.SEMICOLON) {
			par.nextToken()
			continue
		}
		stmt := par.parseStatement()
		if stmt == nil {
			par.synchronize()
			continue
		}
		statements = append(statements, stmt)
	}

	if !par.expect(lexer.RIGHT_BRACE, "to close a block") {
		return nil
	}
	return NewBlockStatementNode(par.Scope, pos, statements)
}

// parseStatement parses one statement inside a function body: the
// declaration family, assignments, expression statements, if, for, return
// and nested blocks.
func (par *Parser) parseStatement() StatementNode {
	switch par.CurrToken.Kind {
	case lexer.RETURN_KEY:
		return par.parseReturn()
	case lexer.IF_KEY:
		return par.parseIf()
	case lexer.FOR_KEY:
		return par.parseFor()
	case lexer.LEFT_BRACE:
		par.Scope = par.Scope.PushChild()
		block := par.parseBlock()
		par.Scope = par.Scope.Pop()
		return block
	case lexer.NONE_TYPE:
		par.reportLexical()
		return nil
	case lexer.IDENTIFIER_ID:
		// "Type name" opens the declaration family when the leading
		// identifier resolves to a type symbol; anything else is an
		// expression or an assignment.
		if sym, ok := par.Scope.Lookup(par.CurrToken.Lexeme); ok && sym.Kind == scope.TypeSymbol {
			return par.parseDeclarationFamily()
		}
		return par.parseExpressionOrAssignment()
	}

	// Expressions can also start with literals, '(' , '-' or '!'.
	return par.parseExpressionOrAssignment()
}

// parseExpressionOrAssignment parses an expression statement, continuing as
// an assignment when the expression is followed by '='.
func (par *Parser) parseExpressionOrAssignment() StatementNode {
	expr := par.parseExpr()
	if expr == nil {
		return nil
	}

	if par.CurrToken.Is(lexer.ASSIGN_OP) {
		par.nextToken() // eat '='
		value := par.parseExpr()
		if value == nil {
			return nil
		}
		if !par.expect(lexer.SEMICOLON, "after assignment") {
			return nil
		}
		return NewAssignmentStatementNode(par.Scope, expr, value)
	}

	if !par.expect(lexer.SEMICOLON, "after expression") {
		return nil
	}
	return NewExpressionStatementNode(par.Scope, expr)
}

// parseReturn parses "return expr;".
func (par *Parser) parseReturn() StatementNode {
	pos := par.CurrToken.Pos
	par.nextToken() // eat 'return'

	expr := par.parseExpr()
	if expr == nil {
		return nil
	}
	if !par.expect(lexer.SEMICOLON, "after return statement") {
		return nil
	}
	return NewReturnStatementNode(par.Scope, pos, expr)
}

// parseIf parses "if cond { ... }" with an optional "else { ... }" or
// "else if ...". Each branch body gets its own child scope.
func (par *Parser) parseIf() StatementNode {
	pos := par.CurrToken.Pos
	par.nextToken() // eat 'if'

	condition := par.parseExpr()
	if condition == nil {
		return nil
	}

	par.Scope = par.Scope.PushChild()
	then := par.parseBlock()
	par.Scope = par.Scope.Pop()
	if then == nil {
		return nil
	}

	var els *BlockStatementNode
	if par.CurrToken.Is(lexer.ELSE_KEY) {
		par.nextToken() // eat 'else'

		par.Scope = par.Scope.PushChild()
		if par.CurrToken.Is(lexer.IF_KEY) {
			// "else if" desugars to an else block holding the nested if.
			elsePos := par.CurrToken.Pos
			nested := par.parseIf()
			if nested == nil {
				par.Scope = par.Scope.Pop()
				return nil
			}
			els = NewBlockStatementNode(par.Scope, elsePos, []StatementNode{nested})
		} else {
			els = par.parseBlock()
		}
		par.Scope = par.Scope.Pop()
		if els == nil {
			return nil
		}
	}

	return NewIfStatementNode(par.Scope, pos, condition, then, els)
}

// parseFor parses "for iterator in range { ... }". The iterator variable is
// inserted into a child scope covering the range check and the body; the
// analyzer types it from the range's element type.
func (par *Parser) parseFor() StatementNode {
	pos := par.CurrToken.Pos
	par.nextToken() // eat 'for'

	if !par.CurrToken.Is(lexer.IDENTIFIER_ID) {
		par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
			"expecting an iterator name after 'for' instead of %s", par.CurrToken)
		return nil
	}
	iterTok := par.CurrToken
	par.nextToken() // eat iterator

	if !par.expect(lexer.IN_KEY, "after the for iterator") {
		return nil
	}

	par.Scope = par.Scope.PushChild()
	defer func() { par.Scope = par.Scope.Pop() }()

	iterator := scope.NewVariableSymbol(iterTok.Lexeme, nil)
	if err := par.Scope.Insert(iterator); err != nil {
		par.Diags.Errorf(diag.ErrRedefinition, iterTok.Pos,
			"redefinition of %q", iterTok.Lexeme)
	}

	rng := par.parseRangeExpr()
	if rng == nil {
		return nil
	}

	body := par.parseBlock()
	if body == nil {
		return nil
	}
	return NewForStatementNode(par.Scope, pos, iterTok, rng, body)
}

// parseImport parses "import ns1::ns2::...::name;". The final identifier is
// the imported value, the rest its namespace path.
func (par *Parser) parseImport() StatementNode {
	pos := par.CurrToken.Pos
	par.nextToken() // eat 'import'

	if !par.CurrToken.Is(lexer.IDENTIFIER_ID) {
		par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
			"expecting an identifier after 'import' instead of %s", par.CurrToken)
		return nil
	}
	current := par.CurrToken.Lexeme
	par.nextToken() // eat identifier

	var namespaces []string
	for par.CurrToken.Is(lexer.DOUBLE_COLON) {
		namespaces = append(namespaces, current)
		par.nextToken() // eat '::'

		if !par.CurrToken.Is(lexer.IDENTIFIER_ID) {
			par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
				"expecting an identifier after '::' instead of %s", par.CurrToken)
			return nil
		}
		current = par.CurrToken.Lexeme
		par.nextToken() // eat identifier
	}

	if !par.expect(lexer.SEMICOLON, "after import statement") {
		return nil
	}
	return NewImportStatementNode(par.Scope, pos, namespaces, current)
}

// parseExport parses "export name;" or "export { name1, name2, ... };".
func (par *Parser) parseExport() StatementNode {
	pos := par.CurrToken.Pos
	par.nextToken() // eat 'export'

	if par.CurrToken.Is(lexer.IDENTIFIER_ID) {
		name := par.CurrToken.Lexeme
		par.nextToken() // eat identifier
		if !par.expect(lexer.SEMICOLON, "after export statement") {
			return nil
		}
		return NewExportStatementNode(par.Scope, pos, []string{name})
	}

	if !par.CurrToken.Is(lexer.LEFT_BRACE) {
		par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
			"expecting an identifier or '{' after 'export' instead of %s", par.CurrToken)
		return nil
	}
	par.nextToken() // eat '{'

	var names []string
	for {
		if !par.CurrToken.Is(lexer.IDENTIFIER_ID) {
			par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
				"expecting an identifier in export list instead of %s", par.CurrToken)
			return nil
		}
		names = append(names, par.CurrToken.Lexeme)
		par.nextToken() // eat identifier

		if par.CurrToken.Is(lexer.COMMA) {
			par.nextToken() // eat ','
			continue
		}
		break
	}

	if !par.expect(lexer.RIGHT_BRACE, "to close the export list") {
		return nil
	}
	if !par.expect(lexer.SEMICOLON, "after export statement") {
		return nil
	}
	return NewExportStatementNode(par.Scope, pos, names)
}
