/*
File    : yapl/scope/symbol.go
Project : YAPL compiler front-end
*/
package scope

import (
	"strings"

	"github.com/emilienlemaire/yapl/types"
)

// SymbolKind discriminates what a name is bound to.
type SymbolKind int

const (
	TypeSymbol     SymbolKind = iota // a type name (primitive or struct)
	VariableSymbol                   // a variable
	ConstantSymbol                   // a constant
	FunctionSymbol                   // a free function (name mangled)
	MethodSymbol                     // a struct method (name mangled)
)

// String returns a readable name for the symbol kind.
func (k SymbolKind) String() string {
	switch k {
	case TypeSymbol:
		return "type"
	case VariableSymbol:
		return "variable"
	case ConstantSymbol:
		return "constant"
	case FunctionSymbol:
		return "function"
	case MethodSymbol:
		return "method"
	}
	return "unknown"
}

// Symbol binds a name to what the source declared it as.
//
// The parser fills Name, Kind and TypeSym (the symbol of the declared type,
// which may be nil when the type name did not resolve during parsing). The
// constructors set Type when it is already known at parse time; the semantic
// analyzer fills or overwrites it for functions, methods and declared
// variables. Function and method symbols
// additionally carry their parameter symbols and, like struct type symbols,
// a reference to their body scope.
type Symbol struct {
	Kind    SymbolKind
	Name    string       // mangled for functions and methods
	Type    *types.Type  // resolved type (set at parse time when known, else by the analyzer)
	TypeSym *Symbol      // declared-type symbol (filled by the parser)
	Params  []*Symbol    // parameter symbols of a function or method
	Scope   *Scope       // body scope of a function, method or struct
}

// NewTypeSymbol creates the symbol binding a type name to its type.
func NewTypeSymbol(name string, t *types.Type) *Symbol {
	return &Symbol{Kind: TypeSymbol, Name: name, Type: t}
}

// NewVariableSymbol creates a variable symbol. The declared type symbol may
// be nil; the analyzer diagnoses unresolved types later.
func NewVariableSymbol(name string, typeSym *Symbol) *Symbol {
	s := &Symbol{Kind: VariableSymbol, Name: name, TypeSym: typeSym}
	if typeSym != nil {
		s.Type = typeSym.Type
	}
	return s
}

// NewConstantSymbol creates a constant symbol.
func NewConstantSymbol(name string, typeSym *Symbol) *Symbol {
	s := NewVariableSymbol(name, typeSym)
	s.Kind = ConstantSymbol
	return s
}

// NewFunctionSymbol creates a function symbol. The symbol's name is replaced
// by its mangled form so overloads occupy distinct slots in the table.
func NewFunctionSymbol(name string, returnSym *Symbol, params []*Symbol) *Symbol {
	s := &Symbol{
		Kind:    FunctionSymbol,
		Name:    MangleFunction(name, paramTypeNames(params)),
		TypeSym: returnSym,
		Params:  params,
	}
	return s
}

// NewMethodSymbol creates a method symbol, mangled like a function.
func NewMethodSymbol(name string, returnSym *Symbol, params []*Symbol) *Symbol {
	s := NewFunctionSymbol(name, returnSym, params)
	s.Kind = MethodSymbol
	return s
}

// MangleFunction builds the table name of a function from its base name and
// the identifiers of its parameter types. The full type identifier is
// appended per parameter ("f" + [int, double] -> "f_int_double"), so
// overloads with distinct parameter-type sequences never collide.
func MangleFunction(base string, paramTypes []string) string {
	if len(paramTypes) == 0 {
		return base
	}
	return base + "_" + strings.Join(paramTypes, "_")
}

// MangleFunctionTypes is MangleFunction over resolved types, used by the
// analyzer to resolve call sites through argument-list types.
func MangleFunctionTypes(base string, paramTypes []*types.Type) string {
	names := make([]string, 0, len(paramTypes))
	for _, t := range paramTypes {
		names = append(names, t.Identifier())
	}
	return MangleFunction(base, names)
}

// paramTypeNames extracts the declared-type identifiers of parameter
// symbols. A parameter with an unresolved type contributes a placeholder so
// mangling stays deterministic.
func paramTypeNames(params []*Symbol) []string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		switch {
		case p.Type != nil:
			names = append(names, p.Type.Identifier())
		case p.TypeSym != nil:
			names = append(names, p.TypeSym.Name)
		default:
			names = append(names, "?")
		}
	}
	return names
}
