package types

import "github.com/you-not-fish/minic/internal/syntax"

// Atom returns the basic type spelled by the keyword k, or nil if k is not
// one of int, char, bool, void and float.
func Atom(k syntax.Kind) *Basic {
	switch k {
	case syntax.Int:
		return Typ[Int]
	case syntax.Char:
		return Typ[Char]
	case syntax.Bool:
		return Typ[Bool]
	case syntax.Void:
		return Typ[Void]
	case syntax.Float:
		return Typ[Float]
	}
	return nil
}

// Literal returns the type of a literal of kind k. String literals are
// char pointers.
func Literal(k syntax.LitKind) Type {
	switch k {
	case syntax.IntLit:
		return Typ[Int]
	case syntax.FloatLit:
		return Typ[Float]
	case syntax.CharLit:
		return Typ[Char]
	case syntax.BoolLit:
		return Typ[Bool]
	case syntax.StringLit:
		return NewPointer(Typ[Char])
	}
	return Typ[Invalid]
}
