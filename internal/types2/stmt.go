package types2

import (
	"github.com/you-not-fish/minic/internal/diag"
	"github.com/you-not-fish/minic/internal/syntax"
	"github.com/you-not-fish/minic/internal/types"
)

// stmts checks a list of statements.
func (c *Checker) stmts(list []syntax.StmtID) bool {
	for _, s := range list {
		if !c.stmt(s) {
			return false
		}
	}
	return true
}

// stmt checks a single statement.
func (c *Checker) stmt(id syntax.StmtID) bool {
	switch s := c.file.Stmt(id).(type) {
	case *syntax.ExprStmt:
		var x operand
		return c.expr(&x, s.X)

	case *syntax.AssignStmt:
		return c.assignStmt(s)

	case *syntax.BlockStmt:
		return c.stmts(s.Stmts)

	case *syntax.IfStmt:
		if !c.condition(s.Cond, "if") || !c.stmt(s.Then) {
			return false
		}
		return s.Else == syntax.NoStmt || c.stmt(s.Else)

	case *syntax.WhileStmt:
		return c.condition(s.Cond, "while") && c.stmt(s.Body)

	case *syntax.ReturnStmt:
		return c.returnStmt(s)

	case *syntax.DeclStmt:
		return c.varDecl(s.Decl)
	}

	s := c.file.Stmt(id)
	c.invalidAST(s.Pos(), "unexpected statement %T", s)
	return false
}

// condition checks the condition of an if or while statement.
func (c *Checker) condition(id syntax.ExprID, what string) bool {
	var x operand
	if !c.expr(&x, id) {
		return false
	}
	if !types.IsBoolean(x.typ) {
		c.errorf(diag.TypeMismatch, x.pos, "non-boolean condition in %s statement (type %s)", what, x.typ)
		return false
	}
	return true
}

// assignStmt checks lhs op rhs. Compound operators need an int or float
// left operand.
func (c *Checker) assignStmt(s *syntax.AssignStmt) bool {
	var lhs, rhs operand
	if !c.expr(&lhs, s.LHS) || !c.expr(&rhs, s.RHS) {
		return false
	}
	if lhs.mode != variable {
		c.errorf(diag.TypeMismatch, lhs.pos, "cannot assign to %s (not addressable)", c.exprString(s.LHS))
		return false
	}
	if s.Op != syntax.Assign && !types.IsNumeric(lhs.typ) {
		c.invalidOp(&lhs, "operator %s not defined on %s (type %s)", s.Op, c.exprString(s.LHS), lhs.typ)
		return false
	}
	return c.assignment(&rhs, lhs.typ, "assignment")
}

// returnStmt checks a return statement against the function it was parsed
// in and marks that function as returning.
func (c *Checker) returnStmt(s *syntax.ReturnStmt) bool {
	if s.Func == syntax.NoDecl {
		c.errorf(diag.TypeMismatch, s.Pos(), "return statement outside function")
		return false
	}
	fn := c.file.Decl(s.Func).(*syntax.FuncDecl)
	sig, ok := c.funcType(s.Func)
	if !ok {
		return false
	}
	fn.HasReturn = true
	res := sig.Result()

	if s.Result == syntax.NoExpr {
		if !types.IsVoid(res) {
			c.errorf(diag.TypeMismatch, s.Pos(), "missing return value in function %s returning %s", fn.Name, res)
			return false
		}
		return true
	}

	var x operand
	if !c.expr(&x, s.Result) {
		return false
	}
	if types.IsVoid(res) {
		c.errorf(diag.TypeMismatch, x.pos, "unexpected return value in void function %s", fn.Name)
		return false
	}
	if !types.Identical(x.typ, res) {
		kind := diag.TypeMismatch
		if types.SameKind(x.typ, res) {
			kind = diag.StructuralType
		}
		c.errorf(kind, x.pos, "cannot use %s (type %s) as type %s in return statement",
			c.exprString(s.Result), x.typ, res)
		return false
	}
	return true
}
