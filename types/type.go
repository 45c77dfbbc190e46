/*
File    : yapl/types/type.go
Project : YAPL compiler front-end
*/

// Package types implements the structural type system of the YAPL front-end.
//
// Every type is a value of the single Type struct, discriminated by Kind:
// primitive, array, struct, function, or argument list. Types are interned in
// a per-compilation Store keyed by their mangled name, so two structurally
// equal types are always the same pointer and pointer equality implies type
// equality.
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the variants of a Type.
type Kind int

const (
	PrimitiveKind Kind = iota // int, float, double, bool, char, void
	ArrayKind                 // fixed-size array of an element type
	StructKind                // named struct with ordered fields
	FunctionKind              // return type plus ordered parameter types
	ArgumentListKind          // ordered types of a parenthesized value group
)

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case PrimitiveKind:
		return "primitive"
	case ArrayKind:
		return "array"
	case StructKind:
		return "struct"
	case FunctionKind:
		return "function"
	case ArgumentListKind:
		return "argument-list"
	}
	return "unknown"
}

// Field is a single struct field: its name and its type.
type Field struct {
	Name string
	Type *Type
}

// Type is a structural, interned type value. Only the fields relevant to the
// variant named by kind are populated. Instances are created through a Store
// and must not be mutated afterwards; all access goes through the read-only
// accessors below.
type Type struct {
	kind    Kind
	ident   string // primitive and struct identifier
	numeric bool   // int, float and double are numeric
	id      uint64 // stable identifier of a primitive

	elem  *Type // array element type
	count int   // array element count (strictly positive)

	fields     []Field        // struct fields in declaration order
	fieldIndex map[string]int // struct field name -> index

	ret    *Type   // function return type
	params []*Type // function parameter types

	args []*Type // argument-list element types
}

// Kind returns the variant of the type.
func (t *Type) Kind() Kind { return t.kind }

// Identifier returns the name a type is looked up by: the primitive or
// struct identifier for named types, the mangled name otherwise.
func (t *Type) Identifier() string {
	if t.ident != "" {
		return t.ident
	}
	return MangleTypeName(t)
}

// IsNumeric reports whether the type takes part in implicit numeric
// conversions (int, float and double do).
func (t *Type) IsNumeric() bool { return t.numeric }

// IsArray reports whether the type is an array type.
func (t *Type) IsArray() bool { return t.kind == ArrayKind }

// IsStruct reports whether the type is a struct type.
func (t *Type) IsStruct() bool { return t.kind == StructKind }

// IsFunction reports whether the type is a function type.
func (t *Type) IsFunction() bool { return t.kind == FunctionKind }

// ID returns the stable numeric identifier of a primitive type.
func (t *Type) ID() uint64 { return t.id }

// ElementsType returns the element type of an array, or nil.
func (t *Type) ElementsType() *Type { return t.elem }

// NumElements returns the element count of an array.
func (t *Type) NumElements() int { return t.count }

// Fields returns the ordered fields of a struct type.
func (t *Type) Fields() []Field { return t.fields }

// FieldType returns the type of the named struct field, or nil when the
// field does not exist.
func (t *Type) FieldType(name string) *Type {
	if idx, ok := t.fieldIndex[name]; ok {
		return t.fields[idx].Type
	}
	return nil
}

// FieldIndex returns the position of the named struct field and whether it
// exists.
func (t *Type) FieldIndex(name string) (int, bool) {
	idx, ok := t.fieldIndex[name]
	return idx, ok
}

// ReturnType returns the return type of a function type, or nil.
func (t *Type) ReturnType() *Type { return t.ret }

// ParamTypes returns the ordered parameter types of a function type.
func (t *Type) ParamTypes() []*Type { return t.params }

// Arguments returns the element types of an argument-list type.
func (t *Type) Arguments() []*Type { return t.args }

// String renders the type by its mangled name.
func (t *Type) String() string { return MangleTypeName(t) }

// Equal reports structural equality. Interned types can be compared by
// pointer instead; this is the underlying structural check.
func (t *Type) Equal(other *Type) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || t.kind != other.kind {
		return false
	}
	switch t.kind {
	case PrimitiveKind:
		return t.id == other.id && t.ident == other.ident
	case ArrayKind:
		return t.count == other.count && t.elem.Equal(other.elem)
	case StructKind:
		if t.ident != other.ident || len(t.fields) != len(other.fields) {
			return false
		}
		for i := range t.fields {
			if t.fields[i].Name != other.fields[i].Name ||
				!t.fields[i].Type.Equal(other.fields[i].Type) {
				return false
			}
		}
		return true
	case FunctionKind:
		if len(t.params) != len(other.params) || !t.ret.Equal(other.ret) {
			return false
		}
		for i := range t.params {
			if !t.params[i].Equal(other.params[i]) {
				return false
			}
		}
		return true
	case ArgumentListKind:
		if len(t.args) != len(other.args) {
			return false
		}
		for i := range t.args {
			if !t.args[i].Equal(other.args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// MangleTypeName returns the stable string a type is interned under.
//
//   - primitives and structs: their own identifier
//   - arrays:   "<elem>[N]"
//   - functions: "fn(<p1>,<p2>,...)-><ret>"
//   - argument lists: "args(<t1>,<t2>,...)"
func MangleTypeName(t *Type) string {
	if t == nil {
		return "<nil>"
	}
	switch t.kind {
	case PrimitiveKind, StructKind:
		return t.ident
	case ArrayKind:
		return MangleArrayType(t.elem, t.count)
	case FunctionKind:
		return MangleFunctionType(t.ret, t.params)
	case ArgumentListKind:
		return MangleArgumentListType(t.args)
	}
	return "<unknown>"
}

// MangleArrayType builds the mangled name of an array type.
func MangleArrayType(elem *Type, count int) string {
	return fmt.Sprintf("%s[%d]", MangleTypeName(elem), count)
}

// MangleFunctionType builds the mangled name of a function type.
func MangleFunctionType(ret *Type, params []*Type) string {
	names := make([]string, 0, len(params))
	for _, p := range params {
		names = append(names, MangleTypeName(p))
	}
	return fmt.Sprintf("fn(%s)->%s", strings.Join(names, ","), MangleTypeName(ret))
}

// MangleArgumentListType builds the mangled name of an argument-list type.
func MangleArgumentListType(args []*Type) string {
	names := make([]string, 0, len(args))
	for _, a := range args {
		names = append(names, MangleTypeName(a))
	}
	return fmt.Sprintf("args(%s)", strings.Join(names, ","))
}
