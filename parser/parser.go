/*
File    : yapl/parser/parser.go
Project : YAPL compiler front-end
*/

/*
Package parser implements the recursive-descent parser of the YAPL
front-end, together with the AST node hierarchy and its visitors.

The parser converts the lexer's token stream into an abstract syntax tree
while populating the scope tree as it goes: declarations insert variable
symbols, function definitions open body scopes and insert parameter symbols,
struct definitions intern their struct type and register a type symbol.
The parse is context-sensitive — "Type name" statements branch on whether
"Type" resolves to a type symbol in the current scope, so scoping cannot be
split into a separate pass.

Expressions are parsed by precedence climbing over the operator table in
parser_expressions.go; binary operators are left-associative and a lower
precedence value binds tighter.

Errors are reported once per finding into the diagnostics bag and the parser
advances past the next ';' or closing brace before trying again, so one run
surfaces as many findings as possible.
*/
package parser

import (
	"github.com/emilienlemaire/yapl/diag"
	"github.com/emilienlemaire/yapl/lexer"
	"github.com/emilienlemaire/yapl/scope"
	"github.com/emilienlemaire/yapl/types"
)

// Parser holds the state of one parse: the token stream, the current token,
// the scope being populated and the compilation context (type store and
// diagnostics bag).
type Parser struct {
	Lex       *lexer.Lexer
	File      string      // source name used in diagnostics
	CurrToken lexer.Token // current token being processed

	Scope *scope.Scope // scope the parser currently inserts into
	Types *types.Store // per-compilation type intern store
	Diags *diag.Bag    // collected diagnostics

	program *ProgramNode
}

// NewParser creates a parser over the given source text. The type store and
// diagnostics bag form the compilation context and are shared with the
// semantic analyzer. The top-level scope is created here, bootstrapped with
// the primitive type symbols.
func NewParser(src, file string, store *types.Store, diags *diag.Bag) *Parser {
	lex := lexer.NewLexer(src)
	par := &Parser{
		Lex:   lex,
		File:  file,
		Types: store,
		Diags: diags,
		Scope: scope.NewTopScope(store),
	}
	par.CurrToken = lex.Next()
	return par
}

// nextToken advances the current token.
func (par *Parser) nextToken() {
	par.CurrToken = par.Lex.Next()
}

// Parse consumes the whole token stream and returns the program node. The
// returned AST is untyped; run the semantic analyzer over it to annotate
// expression types and insert implicit casts.
func (par *Parser) Parse() *ProgramNode {
	var nodes []StatementNode

	for !par.CurrToken.Is(lexer.EOF_TYPE) {
		node := par.parseNext()
		if node == nil {
			par.synchronize()
			continue
		}
		nodes = append(nodes, node)
	}

	nodes = append(nodes, NewEOFNode(par.Scope, par.CurrToken.Pos))
	par.program = NewProgramNode(par.Scope, nodes)
	return par.program
}

// Program returns the parsed program node.
func (par *Parser) Program() *ProgramNode {
	return par.program
}

// parseNext parses one top-level construct. Only imports, exports, function
// definitions, struct definitions and declarations are accepted at program
// scope. It returns nil after reporting an error; the caller resynchronizes.
func (par *Parser) parseNext() StatementNode {
	// Stray semicolons between top-level constructs are skipped.
	for par.CurrToken.Is(lexer.SEMICOLON) {
		par.nextToken()
	}

	switch par.CurrToken.Kind {
	case lexer.EOF_TYPE:
		// The Parse loop appends the terminal EOF node itself.
		return nil
	case lexer.IMPORT_KEY:
		return par.parseImport()
	case lexer.EXPORT_KEY:
		return par.parseExport()
	case lexer.FUNC_KEY:
		return par.parseFunctionDefinition()
	case lexer.STRUCT_KEY:
		return par.parseStructDefinition()
	case lexer.IDENTIFIER_ID:
		return par.parseDeclarationFamily()
	case lexer.NONE_TYPE:
		par.reportLexical()
		return nil
	}

	par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
		"unexpected token at top level scope: %s", par.CurrToken)
	return nil
}

// expect consumes the current token when it has the wanted kind. Otherwise
// it reports an UnexpectedToken diagnostic and returns false, leaving the
// token in place for resynchronization.
func (par *Parser) expect(kind lexer.TokenKind, context string) bool {
	if par.CurrToken.Is(lexer.NONE_TYPE) {
		par.reportLexical()
		return false
	}
	if !par.CurrToken.Is(kind) {
		par.Diags.Errorf(diag.ErrUnexpectedToken, par.CurrToken.Pos,
			"expecting %q %s instead of %s", string(kind), context, par.CurrToken)
		return false
	}
	par.nextToken()
	return true
}

// reportLexical diagnoses a NONE token handed over by the lexer and aborts
// the current production.
func (par *Parser) reportLexical() {
	par.Diags.Errorf(diag.ErrLexical, par.CurrToken.Pos,
		"malformed input %q", par.CurrToken.Lexeme)
	par.nextToken()
}

// synchronize advances past the next ';' or closing brace so parsing can
// resume at a statement boundary after an error.
func (par *Parser) synchronize() {
	for {
		switch par.CurrToken.Kind {
		case lexer.SEMICOLON, lexer.RIGHT_BRACE:
			par.nextToken()
			return
		case lexer.EOF_TYPE:
			return
		}
		par.nextToken()
	}
}

// insertVariable creates a variable symbol for a declaration and inserts it
// into the current scope, reporting a Redefinition diagnostic when the name
// is already bound here. The first symbol is kept on conflict.
func (par *Parser) insertVariable(identTok lexer.Token, typeName string) {
	typeSym, _ := par.Scope.Lookup(typeName)
	variable := scope.NewVariableSymbol(identTok.Lexeme, typeSym)
	if err := par.Scope.Insert(variable); err != nil {
		par.Diags.Errorf(diag.ErrRedefinition, identTok.Pos,
			"redefinition of %q", identTok.Lexeme)
	}
}
