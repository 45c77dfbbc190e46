/*
File    : yapl/types/store.go
Project : YAPL compiler front-end
*/
package types

import "github.com/emilienlemaire/yapl/diag"

// Primitive type names. The six primitives are created when a Store is
// built and live for the whole compilation.
const (
	Int    = "int"
	Float  = "float"
	Double = "double"
	Bool   = "bool"
	Char   = "char"
	Void   = "void"
)

// primitiveSpec fixes the bootstrap order, the stable numeric identifier and
// the numeric flag of each primitive.
var primitiveSpec = []struct {
	name    string
	numeric bool
}{
	{Int, true},
	{Float, true},
	{Double, true},
	{Bool, false},
	{Char, false},
	{Void, false},
}

// Store is the interning registry for all structural types of one
// compilation. It maintains at most one instance per structural equivalence
// class, keyed by mangled name, so interned types compare by pointer.
//
// A Store is not safe for concurrent use; concurrent compilations must each
// build their own.
type Store struct {
	byName map[string]*Type
}

// NewStore creates a type store pre-populated with the six primitive types.
func NewStore() *Store {
	s := &Store{byName: make(map[string]*Type)}
	for id, spec := range primitiveSpec {
		s.byName[spec.name] = &Type{
			kind:    PrimitiveKind,
			ident:   spec.name,
			numeric: spec.numeric,
			id:      uint64(id),
		}
	}
	return s
}

// Primitive returns the canonical instance of a primitive type by name.
// Asking for a name that is not a primitive is a broken internal invariant
// and returns ErrFatal.
func (s *Store) Primitive(name string) (*Type, error) {
	t, ok := s.byName[name]
	if !ok || t.kind != PrimitiveKind {
		return nil, diag.ErrFatal
	}
	return t, nil
}

// Lookup returns the interned type registered under the given mangled name.
func (s *Store) Lookup(mangled string) (*Type, bool) {
	t, ok := s.byName[mangled]
	return t, ok
}

// GetOrIntern returns the canonical instance of the candidate type,
// registering the candidate if its equivalence class is new.
func (s *Store) GetOrIntern(candidate *Type) *Type {
	name := MangleTypeName(candidate)
	if t, ok := s.byName[name]; ok {
		return t
	}
	s.byName[name] = candidate
	return candidate
}

// ArrayOf interns the array type with the given element type and count.
// The count must be strictly positive.
func (s *Store) ArrayOf(elem *Type, count int) (*Type, error) {
	if count <= 0 {
		return nil, diag.ErrIncompatibleTypes
	}
	return s.GetOrIntern(&Type{kind: ArrayKind, elem: elem, count: count}), nil
}

// StructOf interns a struct type with the given identifier and fields.
func (s *Store) StructOf(ident string, fields []Field) *Type {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	return s.GetOrIntern(&Type{
		kind:       StructKind,
		ident:      ident,
		fields:     fields,
		fieldIndex: index,
	})
}

// FunctionOf interns the function type with the given return and parameter
// types.
func (s *Store) FunctionOf(ret *Type, params []*Type) *Type {
	return s.GetOrIntern(&Type{kind: FunctionKind, ret: ret, params: params})
}

// ArgumentListOf interns the argument-list type with the given element
// types.
func (s *Store) ArgumentListOf(args []*Type) *Type {
	return s.GetOrIntern(&Type{kind: ArgumentListKind, args: args})
}
