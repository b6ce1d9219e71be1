package types2

import (
	"github.com/you-not-fish/minic/internal/diag"
	"github.com/you-not-fish/minic/internal/syntax"
	"github.com/you-not-fish/minic/internal/types"
)

// decl checks a declaration.
func (c *Checker) decl(id syntax.DeclID) bool {
	switch d := c.file.Decl(id).(type) {
	case *syntax.VarDecl:
		return c.varDecl(id)

	case *syntax.FuncDecl:
		return c.funcDecl(id, d)

	case *syntax.TypeDecl:
		_, ok := c.aliasType(id)
		return ok

	case *syntax.StructDecl:
		if _, ok := c.structType(id); !ok {
			return false
		}
		for _, f := range d.Fields {
			if !c.varDecl(f) {
				return false
			}
		}
		return true
	}

	d := c.file.Decl(id)
	c.invalidAST(d.Pos(), "unexpected declaration %T", d)
	return false
}

// varDecl checks a variable declaration and its initializer.
func (c *Checker) varDecl(id syntax.DeclID) bool {
	t, ok := c.varType(id)
	if !ok {
		return false
	}
	d := c.file.Decl(id).(*syntax.VarDecl)
	if d.Init == syntax.NoExpr {
		return true
	}
	var x operand
	if !c.expr(&x, d.Init) {
		return false
	}
	return c.assignment(&x, t, "variable declaration")
}

// funcDecl checks a function signature and body. HasReturn is recomputed
// from the return statements found in the body.
func (c *Checker) funcDecl(id syntax.DeclID, d *syntax.FuncDecl) bool {
	sig, ok := c.funcType(id)
	if !ok {
		return false
	}
	if d.Body == syntax.NoStmt {
		return true
	}

	d.HasReturn = false
	body := c.file.Stmt(d.Body).(*syntax.BlockStmt)
	if !c.stmts(body.Stmts) {
		return false
	}

	if !d.HasReturn && !types.IsVoid(sig.Result()) {
		end := body.End()
		rbrace := syntax.NewPos(end.Filename(), end.Line(), end.Col()-1)
		c.errorf(diag.MissingReturn, rbrace, "function %s returns %s but has no return statement", d.Name, sig.Result())
		return false
	}
	return true
}

// assignment checks that x can be stored in a location of type T.
// The outermost kinds must agree; pointers and arrays must in addition be
// structurally identical.
func (c *Checker) assignment(x *operand, T types.Type, context string) bool {
	if !types.SameKind(x.typ, T) {
		c.errorf(diag.TypeMismatch, x.pos, "cannot use %s (type %s) as type %s in %s",
			c.exprString(x.id), x.typ, T, context)
		return false
	}
	if types.IsComposite(T) && !types.Identical(x.typ, T) {
		c.errorf(diag.StructuralType, x.pos, "cannot use %s (type %s) as type %s in %s",
			c.exprString(x.id), x.typ, T, context)
		return false
	}
	return true
}
