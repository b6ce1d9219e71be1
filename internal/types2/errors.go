// Package types2 implements type checking for MiniC.
//
// The checker walks a name-resolved syntax tree bottom-up, assigns a type
// to every expression and declaration, and stops at the first error.
package types2

import (
	"github.com/you-not-fish/minic/internal/diag"
	"github.com/you-not-fish/minic/internal/syntax"
)

// errorf reports a type checking error of the given kind.
// Only the first error is kept as the result of Check.
func (c *Checker) errorf(kind diag.Kind, pos syntax.Pos, format string, args ...interface{}) {
	d := diag.Errorf(kind, pos, format, args...)
	if c.first == nil {
		c.first = d
	}
	if c.conf.Sink != nil {
		c.conf.Sink.Report(d)
	}
}

// invalidAST reports a tree the checker cannot handle, such as a name
// that was never resolved.
func (c *Checker) invalidAST(pos syntax.Pos, format string, args ...interface{}) {
	c.errorf(diag.TypeMismatch, pos, "invalid AST: "+format, args...)
}

// invalidOp reports an operator applied to operands of the wrong type.
func (c *Checker) invalidOp(x *operand, format string, args ...interface{}) {
	c.errorf(diag.TypeMismatch, x.pos, "invalid operation: "+format, args...)
}
