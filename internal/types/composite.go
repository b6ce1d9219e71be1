package types

import (
	"strings"

	"github.com/you-not-fish/minic/internal/syntax"
)

// Pointer represents a pointer type T*.
type Pointer struct {
	typ
	elem Type
}

// NewPointer creates a new pointer type.
func NewPointer(elem Type) *Pointer {
	return &Pointer{elem: elem}
}

// Elem returns the type the pointer points to.
func (p *Pointer) Elem() Type {
	return p.elem
}

// Underlying implements Type.
func (p *Pointer) Underlying() Type {
	return p
}

// String implements Type.
func (p *Pointer) String() string {
	return p.elem.String() + "*"
}

// Array represents an array type T[N].
// The length stays an expression; it takes no part in type identity.
type Array struct {
	typ
	elem Type
	len  syntax.ExprID
}

// NewArray creates a new array type with the given element type and
// length expression.
func NewArray(elem Type, len syntax.ExprID) *Array {
	return &Array{elem: elem, len: len}
}

// Elem returns the array element type.
func (a *Array) Elem() Type {
	return a.elem
}

// Len returns the length expression, or syntax.NoExpr.
func (a *Array) Len() syntax.ExprID {
	return a.len
}

// Underlying implements Type.
func (a *Array) Underlying() Type {
	return a
}

// String implements Type.
func (a *Array) String() string {
	return a.elem.String() + "[]"
}

// Field is a struct member.
type Field struct {
	name string
	typ  Type
	decl syntax.DeclID
}

// NewField creates a field declared by decl.
func NewField(name string, typ Type, decl syntax.DeclID) *Field {
	return &Field{name: name, typ: typ, decl: decl}
}

func (f *Field) Name() string        { return f.name }
func (f *Field) Type() Type          { return f.typ }
func (f *Field) Decl() syntax.DeclID { return f.decl }

// Struct represents the field list of a struct declaration.
type Struct struct {
	typ
	fields []*Field
}

// NewStruct creates a new struct type with the given fields.
func NewStruct(fields []*Field) *Struct {
	return &Struct{fields: fields}
}

// NumFields returns the number of fields.
func (s *Struct) NumFields() int {
	return len(s.fields)
}

// Field returns the field at the given index.
func (s *Struct) Field(i int) *Field {
	return s.fields[i]
}

// Lookup returns the index and field with the given name, searching the
// fields in declaration order. It returns -1, nil if there is none.
func (s *Struct) Lookup(name string) (int, *Field) {
	for i, f := range s.fields {
		if f.name == name {
			return i, f
		}
	}
	return -1, nil
}

// Underlying implements Type.
func (s *Struct) Underlying() Type {
	return s
}

// String implements Type.
func (s *Struct) String() string {
	var buf strings.Builder
	buf.WriteString("struct{")
	for i, f := range s.fields {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(f.typ.String())
		buf.WriteString(" ")
		buf.WriteString(f.name)
	}
	buf.WriteString("}")
	return buf.String()
}

// Func represents the signature of a function declaration.
type Func struct {
	typ
	params []Type
	result Type
}

// NewFunc creates a new function type. A void function has result
// Typ[Void].
func NewFunc(params []Type, result Type) *Func {
	return &Func{params: params, result: result}
}

// Params returns the parameter types.
func (f *Func) Params() []Type {
	return f.params
}

// NumParams returns the number of parameters.
func (f *Func) NumParams() int {
	return len(f.params)
}

// Param returns the parameter type at index i.
func (f *Func) Param(i int) Type {
	return f.params[i]
}

// Result returns the declared result type.
func (f *Func) Result() Type {
	return f.result
}

// Underlying implements Type.
func (f *Func) Underlying() Type {
	return f
}

// String implements Type.
func (f *Func) String() string {
	var buf strings.Builder
	buf.WriteString(f.result.String())
	buf.WriteString("(")
	for i, p := range f.params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.String())
	}
	buf.WriteString(")")
	return buf.String()
}
