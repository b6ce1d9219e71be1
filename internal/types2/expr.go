package types2

import (
	"github.com/you-not-fish/minic/internal/diag"
	"github.com/you-not-fish/minic/internal/syntax"
	"github.com/you-not-fish/minic/internal/types"
)

// expr evaluates an expression, sets x to the result and records its type.
func (c *Checker) expr(x *operand, id syntax.ExprID) bool {
	e := c.file.Expr(id)
	x.setInvalid()
	x.pos = e.Pos()
	x.id = id

	if !c.exprInternal(x, e) {
		x.setInvalid()
		return false
	}
	c.record(id, x)
	return true
}

// exprInternal dispatches on the expression kind.
func (c *Checker) exprInternal(x *operand, e syntax.Expr) bool {
	switch e := e.(type) {
	case *syntax.BasicLit:
		x.setValue(types.Literal(e.Kind))
		return true
	case *syntax.NameExpr:
		return c.ident(x, e)
	case *syntax.CallExpr:
		return c.call(x, e)
	case *syntax.CastExpr:
		return c.cast(x, e)
	case *syntax.PrefixExpr:
		return c.unary(x, e)
	case *syntax.PostfixExpr:
		return c.postfix(x, e)
	case *syntax.BinaryExpr:
		return c.binary(x, e)
	}
	c.invalidAST(e.Pos(), "unexpected expression %T", e)
	return false
}

// ident evaluates a variable reference.
func (c *Checker) ident(x *operand, e *syntax.NameExpr) bool {
	if e.Decl == syntax.NoDecl {
		c.errorf(diag.UnresolvedName, e.Pos(), "undefined: %s", e.Value)
		return false
	}
	switch c.file.Decl(e.Decl).(type) {
	case *syntax.VarDecl:
		t, ok := c.varType(e.Decl)
		if !ok {
			return false
		}
		x.setVar(t)
		return true
	case *syntax.FuncDecl:
		c.errorf(diag.TypeMismatch, e.Pos(), "cannot use function %s as a value", e.Value)
		return false
	}
	c.invalidAST(e.Pos(), "%s is not a variable", e.Value)
	return false
}

// cast evaluates (T) x. Any conversion not involving void is accepted.
func (c *Checker) cast(x *operand, e *syntax.CastExpr) bool {
	T, ok := c.typExpr(e.Type)
	if !ok {
		return false
	}
	var y operand
	if !c.expr(&y, e.X) {
		return false
	}
	if types.IsVoid(T) {
		c.errorf(diag.TypeMismatch, x.pos, "cannot convert %s (type %s) to void", c.exprString(e.X), y.typ)
		return false
	}
	if types.IsVoid(y.typ) {
		c.errorf(diag.TypeMismatch, x.pos, "cannot convert void value %s to %s", c.exprString(e.X), T)
		return false
	}
	x.setValue(T)
	return true
}

// unary evaluates a prefix operation.
func (c *Checker) unary(x *operand, e *syntax.PrefixExpr) bool {
	var y operand
	if !c.expr(&y, e.X) {
		return false
	}
	t := y.typ

	switch e.Op {
	case syntax.Inc, syntax.Dec:
		if !incrementable(t) {
			c.invalidOp(x, "%s%s (non-numeric type %s)", e.Op, c.exprString(e.X), t)
			return false
		}
		x.setValue(t)

	case syntax.Add, syntax.Sub:
		if !types.IsNumeric(t) {
			c.invalidOp(x, "operator %s not defined on %s (type %s)", e.Op, c.exprString(e.X), t)
			return false
		}
		x.setValue(t)

	case syntax.Not:
		if !types.IsBoolean(t) {
			c.invalidOp(x, "operator ! not defined on %s (type %s)", c.exprString(e.X), t)
			return false
		}
		x.setValue(t)

	case syntax.Tilde:
		if !types.IsInteger(t) {
			c.invalidOp(x, "operator ~ not defined on %s (type %s)", c.exprString(e.X), t)
			return false
		}
		x.setValue(t)

	case syntax.Mul:
		p, ok := t.(*types.Pointer)
		if !ok {
			c.invalidOp(x, "cannot indirect %s (type %s)", c.exprString(e.X), t)
			return false
		}
		x.setVar(p.Elem())

	case syntax.And:
		x.setValue(types.NewPointer(t))

	default:
		c.invalidAST(x.pos, "unknown unary operator %s", e.Op)
		return false
	}
	return true
}

// incrementable reports whether ++ and -- apply to values of type t.
func incrementable(t types.Type) bool {
	return types.IsPointer(t) || types.IsChar(t) || types.IsNumeric(t)
}

// postfix evaluates x++, x--, x.f, x->f and x[i].
func (c *Checker) postfix(x *operand, e *syntax.PostfixExpr) bool {
	var y operand
	if !c.expr(&y, e.X) {
		return false
	}

	switch e.Op {
	case syntax.Inc, syntax.Dec:
		if !incrementable(y.typ) {
			c.invalidOp(x, "%s%s (non-numeric type %s)", c.exprString(e.X), e.Op, y.typ)
			return false
		}
		x.setValue(y.typ)
		return true

	case syntax.Dot, syntax.Arrow:
		return c.selector(x, &y, e)

	case syntax.Lbrack:
		return c.index(x, &y, e)
	}
	c.invalidAST(x.pos, "unknown postfix operator %s", e.Op)
	return false
}

// index evaluates a[i] on an array or pointer.
func (c *Checker) index(x, y *operand, e *syntax.PostfixExpr) bool {
	elem := types.Elem(y.typ)
	if elem == nil {
		c.invalidOp(x, "cannot index %s (type %s)", c.exprString(e.X), y.typ)
		return false
	}
	var i operand
	if !c.expr(&i, e.Index) {
		return false
	}
	if !types.IsInteger(i.typ) {
		c.errorf(diag.TypeMismatch, i.pos, "array index %s must be int, found %s", c.exprString(e.Index), i.typ)
		return false
	}
	x.setVar(elem)
	return true
}

// binary evaluates x op y.
func (c *Checker) binary(x *operand, e *syntax.BinaryExpr) bool {
	var l, r operand
	if !c.expr(&l, e.X) || !c.expr(&r, e.Y) {
		return false
	}

	switch e.Op {
	case syntax.Add, syntax.Sub, syntax.Mul, syntax.Quo, syntax.Rem:
		t := arithmetic(l.typ, r.typ)
		if t == nil {
			return c.mismatch(x, e, &l, &r)
		}
		x.setValue(t)

	case syntax.Eql, syntax.Neq, syntax.Lss, syntax.Leq, syntax.Gtr, syntax.Geq:
		if !c.comparison(x, e, &l, &r) {
			return false
		}
		x.setValue(types.Typ[types.Bool])

	case syntax.And, syntax.Or, syntax.Xor:
		if !types.IsInteger(l.typ) || !types.IsInteger(r.typ) {
			return c.mismatch(x, e, &l, &r)
		}
		x.setValue(l.typ)

	case syntax.AndAnd, syntax.OrOr:
		if !types.IsBoolean(l.typ) || !types.IsBoolean(r.typ) {
			return c.mismatch(x, e, &l, &r)
		}
		x.setValue(l.typ)

	default:
		c.invalidAST(x.pos, "unknown binary operator %s", e.Op)
		return false
	}
	return true
}

// arithmetic returns the result type of an arithmetic operator, or nil if
// the operand pair is not allowed. Mixed pairs yield the type of the
// operand that is not int.
func arithmetic(l, r types.Type) types.Type {
	switch {
	case types.IsInteger(l) && types.IsInteger(r),
		types.IsFloat(l) && types.IsFloat(r):
		return l
	case types.IsInteger(r) && (types.IsChar(l) || types.IsPointer(l)):
		return l
	case types.IsInteger(l) && (types.IsChar(r) || types.IsPointer(r)):
		return r
	}
	return nil
}

// comparison checks the operands of an equality or relational operator.
func (c *Checker) comparison(x *operand, e *syntax.BinaryExpr, l, r *operand) bool {
	switch {
	case types.IsInteger(l.typ) && types.IsInteger(r.typ),
		types.IsFloat(l.typ) && types.IsFloat(r.typ),
		types.IsChar(l.typ) && types.IsChar(r.typ):
		return true
	case types.IsPointer(l.typ) && types.IsPointer(r.typ):
		if types.Identical(l.typ, r.typ) {
			return true
		}
		c.errorf(diag.StructuralType, x.pos, "invalid operation: %s (mismatched types %s and %s)",
			c.exprString(x.id), l.typ, r.typ)
		return false
	}
	return c.mismatch(x, e, l, r)
}

func (c *Checker) mismatch(x *operand, e *syntax.BinaryExpr, l, r *operand) bool {
	if types.Identical(l.typ, r.typ) {
		c.invalidOp(x, "operator %s not defined on %s (type %s)", e.Op, c.exprString(x.id), l.typ)
	} else {
		c.invalidOp(x, "%s (mismatched types %s and %s)", c.exprString(x.id), l.typ, r.typ)
	}
	return false
}
