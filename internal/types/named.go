package types

import "github.com/you-not-fish/minic/internal/syntax"

// Named represents a struct type introduced by a struct declaration.
// Two named types are the same type exactly when they come from the same
// declaration.
type Named struct {
	typ
	name       string
	decl       syntax.DeclID // *syntax.StructDecl
	underlying *Struct
}

// NewNamed creates a new named type for the struct declared by decl.
// The fields are filled in later using SetUnderlying, so that a struct can
// refer to pointers to itself.
func NewNamed(name string, decl syntax.DeclID) *Named {
	return &Named{name: name, decl: decl}
}

// Name returns the struct name.
func (n *Named) Name() string {
	return n.name
}

// Decl returns the declaring struct.
func (n *Named) Decl() syntax.DeclID {
	return n.decl
}

// SetUnderlying sets the field list.
func (n *Named) SetUnderlying(s *Struct) {
	n.underlying = s
}

// Struct returns the field list, or nil before SetUnderlying.
func (n *Named) Struct() *Struct {
	return n.underlying
}

// Underlying implements Type.
func (n *Named) Underlying() Type {
	if n.underlying == nil {
		return Typ[Invalid]
	}
	return n.underlying
}

// String implements Type.
func (n *Named) String() string {
	return n.name
}
