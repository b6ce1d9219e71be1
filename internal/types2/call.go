package types2

import (
	"github.com/you-not-fish/minic/internal/diag"
	"github.com/you-not-fish/minic/internal/syntax"
	"github.com/you-not-fish/minic/internal/types"
)

// call evaluates a function call. The number of arguments must match
// exactly, and each argument must agree with its parameter at the
// outermost level.
func (c *Checker) call(x *operand, e *syntax.CallExpr) bool {
	if e.Decl == syntax.NoDecl {
		c.errorf(diag.UnresolvedName, e.Pos(), "undefined: %s", e.Fun)
		return false
	}
	if _, ok := c.file.Decl(e.Decl).(*syntax.FuncDecl); !ok {
		c.invalidOp(x, "cannot call non-function %s", e.Fun)
		return false
	}
	sig, ok := c.funcType(e.Decl)
	if !ok {
		return false
	}

	if got, want := len(e.Args), sig.NumParams(); got != want {
		what := "not enough"
		if got > want {
			what = "too many"
		}
		c.errorf(diag.TypeMismatch, e.Pos(), "%s arguments in call to %s (have %d, want %d)", what, e.Fun, got, want)
		return false
	}

	for i, a := range e.Args {
		var y operand
		if !c.expr(&y, a) {
			return false
		}
		if P := sig.Param(i); !types.SameKind(y.typ, P) {
			c.errorf(diag.TypeMismatch, y.pos, "cannot use %s (type %s) as type %s in argument to %s",
				c.exprString(a), y.typ, P, e.Fun)
			return false
		}
	}

	if types.IsVoid(sig.Result()) {
		x.mode = novalue
		x.typ = sig.Result()
		return true
	}
	x.setValue(sig.Result())
	return true
}

// selector evaluates s.f and p->f. The field is found by a linear search
// of the struct's fields.
func (c *Checker) selector(x, y *operand, e *syntax.PostfixExpr) bool {
	base := y.typ
	addressable := y.mode == variable
	if e.Op == syntax.Arrow {
		p, ok := base.(*types.Pointer)
		if !ok || !types.IsStruct(p.Elem()) {
			c.invalidOp(x, "%s->%s (type %s is not a pointer to struct)", c.exprString(e.X), e.Sel, base)
			return false
		}
		base = p.Elem()
		addressable = true
	}

	n, ok := base.(*types.Named)
	if !ok {
		c.invalidOp(x, "%s.%s (type %s is not a struct)", c.exprString(e.X), e.Sel, base)
		return false
	}

	var f *types.Field
	if s := n.Struct(); s != nil {
		_, f = s.Lookup(e.Sel)
	}
	if f == nil {
		c.errorf(diag.TypeMismatch, x.pos, "struct %s has no field %s", n, e.Sel)
		return false
	}

	if addressable {
		x.setVar(f.Type())
	} else {
		x.setValue(f.Type())
	}
	return true
}
