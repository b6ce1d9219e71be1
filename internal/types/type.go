// Package types implements the semantic type model of MiniC: the atom
// types, pointers, arrays, struct-backed named types and function
// signatures, together with the structural equivalence predicates the
// type checker is built on.
//
// Types carry no AST nodes; a named type refers to its struct
// declaration only through a syntax.DeclID.
package types

// Type is the interface implemented by all types.
type Type interface {
	// Underlying returns the underlying type.
	// For Named types, returns the struct it names.
	// For all other types, returns the receiver.
	Underlying() Type

	// String returns a human-readable representation of the type.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}
