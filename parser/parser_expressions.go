/*
File    : yapl/parser/parser_expressions.go
Project : YAPL compiler front-end
*/
package parser

import (
	"strconv"

	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/lexer"
)

// Operator precedence values, resolved by precedence climbing. A LOWER
// value binds TIGHTER; all binary operators are left-associative.
const (
	MUL_PRIORITY  = 5  // * / %
	ADD_PRIORITY  = 6  // + -
	COMP_PRIORITY = 9  // < > <= >=
	EQ_PRIORITY   = 10 // == !=
	AND_PRIORITY  = 14 // &
	OR_PRIORITY   = 15 // |

	// LOOSEST_PRIORITY admits every binary operator; parseExpr starts here.
	LOOSEST_PRIORITY = OR_PRIORITY
)

// binaryPrecedence returns the precedence of a binary operator token, and
// whether the token is a binary operator at all.
func binaryPrecedence(kind lexer.TokenKind) (int, bool) {
	switch kind {
	case lexer.MUL_OP, lexer.DIV_OP, lexer.MOD_OP:
		return MUL_PRIORITY, true
	case lexer.PLUS_OP, lexer.MINUS_OP:
		return ADD_PRIORITY, true
	case lexer.LT_OP, lexer.GT_OP, lexer.LE_OP, lexer.GE_OP:
		return COMP_PRIORITY, true
	case lexer.EQ_OP, lexer.NE_OP:
		return EQ_PRIORITY, true
	case lexer.AND_OP:
		return AND_PRIORITY, true
	case lexer.OR_OP:
		return OR_PRIORITY, true
	}
	return 0, false
}

// parseExpr parses a full expression.
func (par *Parser) parseExpr() ExpressionNode {
	lhs := par.parseUnaryExpr()
	if lhs == nil {
		return nil
	}
	return par.parseBinaryExpr(lhs, LOOSEST_PRIORITY)
}

// parseBinaryExpr climbs the precedence table. It keeps folding operators
// whose precedence is at most limit into the left-hand side; the recursive
// call with limit prec-1 collects the operators that bind tighter, which
// makes every level left-associative.
func (par *Parser) parseBinaryExpr(lhs ExpressionNode, limit int) ExpressionNode {
	for {
		prec, isBinary := binaryPrecedence(par.CurrToken.Kind)
		if !isBinary || prec > limit {
			return lhs
		}

		opTok := par.CurrToken
		par.nextToken() // eat operator

		rhs := par.parseUnaryExpr()
		if rhs == nil {
			return nil
		}
		rhs = par.parseBinaryExpr(rhs, prec-1)
		if rhs == nil {
			return nil
		}

		lhs = NewBinaryExpressionNode(par.Scope, opTok, lhs, rhs)
	}
}

// parseUnaryExpr parses the prefix operators, which bind tighter than any
// binary operator, then falls through to the postfix chain.
func (par *Parser) parseUnaryExpr() ExpressionNode {
	switch par.CurrToken.Kind {
	case lexer.MINUS_OP:
		opTok := par.CurrToken
		par.nextToken() // eat '-'
		value := par.parseUnaryExpr()
		if value == nil {
			return nil
		}
		return NewNegateExpressionNode(par.Scope, opTok, value)
	case lexer.NOT_OP:
		opTok := par.CurrToken
		par.nextToken() // eat '!'
		value := par.parseUnaryExpr()
		if value == nil {
			return nil
		}
		return NewNotExpressionNode(par.Scope, opTok, value)
	}
	return par.parsePostfixExpr()
}

// parsePostfixExpr parses a primary expression followed by zero or more
// postfix operations: attribute access, indexing and calls, composing
// left-to-right.
func (par *Parser) parsePostfixExpr() ExpressionNode {
	expr := par.parsePrimaryExpr()
	if expr == nil {
		return nil
	}

	for {
		switch par.CurrToken.Kind {
		case lexer.DOT_OP:
			par.nextToken() // eat '.'
			if !par.CurrToken.Is(lexer.IDENTIFIER_ID) {
				par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
					"expecting an attribute name after '.' instead of %s", par.CurrToken)
				return nil
			}
			attrTok := par.CurrToken
			par.nextToken() // eat attribute
			expr = NewAttributeAccessExpressionNode(par.Scope, expr, attrTok)

		case lexer.LEFT_BRACKET:
			par.nextToken() // eat '['
			index := par.parseExpr()
			if index == nil {
				return nil
			}
			if !par.expect(lexer.RIGHT_BRACKET, "to close the index") {
				return nil
			}
			expr = NewArrayAccessExpressionNode(par.Scope, expr, index)

		case lexer.LEFT_PAREN:
			args := par.parseArgumentList()
			if args == nil {
				return nil
			}
			expr = NewFunctionCallExpressionNode(par.Scope, expr, args)

		default:
			return expr
		}
	}
}

// parsePrimaryExpr parses literals, identifiers, parenthesized expressions
// and braced array literals.
func (par *Parser) parsePrimaryExpr() ExpressionNode {
	tok := par.CurrToken

	switch tok.Kind {
	case lexer.INT_LIT:
		par.nextToken()
		value, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			par.Diags.Errorf(diag.ErrLexical, tok.Pos, "invalid integer literal %q", tok.Lexeme)
			return nil
		}
		return NewIntegerLiteralExpressionNode(par.Scope, tok, value)

	case lexer.FLOAT_LIT:
		par.nextToken()
		value, err := strconv.ParseFloat(tok.Lexeme, 32)
		if err != nil {
			par.Diags.Errorf(diag.ErrLexical, tok.Pos, "invalid float literal %q", tok.Lexeme)
			return nil
		}
		return NewFloatLiteralExpressionNode(par.Scope, tok, float32(value))

	case lexer.DOUBLE_LIT:
		par.nextToken()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			par.Diags.Errorf(diag.ErrLexical, tok.Pos, "invalid double literal %q", tok.Lexeme)
			return nil
		}
		return NewDoubleLiteralExpressionNode(par.Scope, tok, value)

	case lexer.TRUE_KEY:
		par.nextToken()
		return NewBooleanLiteralExpressionNode(par.Scope, tok, true)

	case lexer.FALSE_KEY:
		par.nextToken()
		return NewBooleanLiteralExpressionNode(par.Scope, tok, false)

	case lexer.IDENTIFIER_ID:
		par.nextToken()
		return NewIdentifierExpressionNode(par.Scope, tok)

	case lexer.LEFT_PAREN:
		return par.parseParenOrArgumentList()

	case lexer.LEFT_BRACE:
		return par.parseArrayLiteral()

	case lexer.NONE_TYPE:
		par.reportLexical()
		return nil
	}

	par.Diags.Errorf(diag.ErrUnexpectedToken, tok.Pos,
		"expecting an expression instead of %s", tok)
	return nil
}

// parseParenOrArgumentList disambiguates "(expr)" from "(e1, e2, ...)". A
// single parenthesized expression is grouping; a comma promotes the group
// to an argument list, whose role (struct or array initializer) the
// analyzer decides later.
func (par *Parser) parseParenOrArgumentList() ExpressionNode {
	pos := par.CurrToken.Pos
	par.nextToken() // eat '('

	if par.CurrToken.Is(lexer.RIGHT_PAREN) {
		par.nextToken() // eat ')'
		return NewArgumentListExpressionNode(par.Scope, pos, nil)
	}

	first := par.parseExpr()
	if first == nil {
		return nil
	}

	if par.CurrToken.Is(lexer.RIGHT_PAREN) {
		par.nextToken() // eat ')'
		return NewParenthesizedExpressionNode(par.Scope, pos, first)
	}

	arguments := []ExpressionNode{first}
	for par.CurrToken.Is(lexer.COMMA) {
		par.nextToken() // eat ','
		arg := par.parseExpr()
		if arg == nil {
			return nil
		}
		arguments = append(arguments, arg)
	}

	if !par.expect(lexer.RIGHT_PAREN, "to close the value group") {
		return nil
	}
	return NewArgumentListExpressionNode(par.Scope, pos, arguments)
}

// parseArgumentList parses "( [expr {, expr}] )" as an argument list,
// regardless of element count. Used for calls and initializers.
func (par *Parser) parseArgumentList() *ArgumentListExpressionNode {
	pos := par.CurrToken.Pos
	if !par.expect(lexer.LEFT_PAREN, "to open the argument list") {
		return nil
	}

	var arguments []ExpressionNode
	if !par.CurrToken.Is(lexer.RIGHT_PAREN) {
		for {
			arg := par.parseExpr()
			if arg == nil {
				return nil
			}
			arguments = append(arguments, arg)

			if par.CurrToken.Is(lexer.COMMA) {
				par.nextToken() // eat ','
				continue
			}
			break
		}
	}

	if !par.expect(lexer.RIGHT_PAREN, "to close the argument list") {
		return nil
	}
	return NewArgumentListExpressionNode(par.Scope, pos, arguments)
}

// parseArrayLiteral parses "{ expr {, expr} }".
func (par *Parser) parseArrayLiteral() ExpressionNode {
	pos := par.CurrToken.Pos
	par.nextToken() // eat '{'

	var elements []ExpressionNode
	if !par.CurrToken.Is(lexer.RIGHT_BRACE) {
		for {
			elem := par.parseExpr()
			if elem == nil {
				return nil
			}
			elements = append(elements, elem)

			if par.CurrToken.Is(lexer.COMMA) {
				par.nextToken() // eat ','
				continue
			}
			break
		}
	}

	if !par.expect(lexer.RIGHT_BRACE, "to close the array literal") {
		return nil
	}
	return NewArrayLiteralExpressionNode(par.Scope, pos, elements)
}

// parseRangeExpr parses "start [... end]". The for statement iterates a
// range; a start without '...' is the degenerate range over a single value
// (typically an array).
func (par *Parser) parseRangeExpr() *RangeExpressionNode {
	pos := par.CurrToken.Pos

	start := par.parseExpr()
	if start == nil {
		return nil
	}

	var end ExpressionNode
	if par.CurrToken.Is(lexer.RANGE_OP) {
		par.nextToken() // eat '...'
		end = par.parseExpr()
		if end == nil {
			return nil
		}
	}
	return NewRangeExpressionNode(par.Scope, pos, start, end)
}
