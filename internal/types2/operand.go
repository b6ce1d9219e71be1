package types2

import (
	"github.com/you-not-fish/minic/internal/syntax"
	"github.com/you-not-fish/minic/internal/types"
)

// operandMode describes the mode of an operand.
type operandMode int

const (
	invalid  operandMode = iota // operand is invalid
	novalue                     // operand has no value (void function call)
	variable                    // operand is addressable
	value                       // operand is a computed value (not addressable)
)

// operand represents the result of evaluating an expression.
type operand struct {
	mode operandMode
	pos  syntax.Pos
	typ  types.Type
	id   syntax.ExprID // source expression (for error reporting)
}

// String returns a string representation of the operand for debugging.
func (x *operand) String() string {
	if x.mode == invalid {
		return "invalid operand"
	}
	if x.typ == nil {
		return "operand without type"
	}
	return x.typ.String()
}

// setVar sets the operand to an addressable value.
func (x *operand) setVar(typ types.Type) {
	x.mode = variable
	x.typ = typ
}

// setValue sets the operand to a computed value.
func (x *operand) setValue(typ types.Type) {
	x.mode = value
	x.typ = typ
}

// setInvalid sets the operand to invalid.
func (x *operand) setInvalid() {
	x.mode = invalid
	x.typ = nil
}
