package types2

import (
	"github.com/you-not-fish/minic/internal/diag"
	"github.com/you-not-fish/minic/internal/syntax"
	"github.com/you-not-fish/minic/internal/types"
)

// Checker is the type checker.
//
// Every check method returns false on the first error; callers return
// immediately, so at most one error diagnostic is produced per run.
type Checker struct {
	conf *Config
	info *Info
	file *syntax.File

	// Declarations whose type is being computed, for cycle detection.
	resolving map[syntax.DeclID]bool

	first *diag.Diagnostic
}

// checkFile checks the top-level declarations in source order. Types of
// declarations that are used before they are reached are computed on
// demand.
func (c *Checker) checkFile() bool {
	for _, d := range c.file.Decls {
		if !c.decl(d) {
			return false
		}
	}
	return true
}

// record stores the type of an expression.
func (c *Checker) record(id syntax.ExprID, x *operand) {
	c.info.Types[id] = x.typ
	c.info.Addressable[id] = x.mode == variable
}

// def returns the cached type of a declaration.
func (c *Checker) def(id syntax.DeclID) (types.Type, bool) {
	t, ok := c.info.Defs[id]
	return t, ok
}

// enter marks id as being resolved. It reports an error and returns false
// if id is already in progress, meaning its type refers to itself.
func (c *Checker) enter(id syntax.DeclID) bool {
	if c.resolving[id] {
		d := c.file.Decl(id)
		c.errorf(diag.StructuralType, d.Pos(), "invalid recursive type %s", syntax.DeclName(d))
		return false
	}
	c.resolving[id] = true
	return true
}

func (c *Checker) leave(id syntax.DeclID) {
	delete(c.resolving, id)
}

// exprString returns the source form of an expression for messages.
func (c *Checker) exprString(id syntax.ExprID) string {
	return syntax.ExprString(c.file, id)
}
