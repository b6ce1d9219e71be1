package types2

import (
	"github.com/you-not-fish/minic/internal/diag"
	"github.com/you-not-fish/minic/internal/syntax"
	"github.com/you-not-fish/minic/internal/types"
)

// typExpr evaluates a type expression.
func (c *Checker) typExpr(id syntax.TypeID) (types.Type, bool) {
	switch e := c.file.Type(id).(type) {
	case *syntax.AtomType:
		return types.Atom(e.Kind), true

	case *syntax.NamedType:
		return c.typeName(e)

	case *syntax.PointerType:
		elem, ok := c.typExpr(e.Elem)
		if !ok {
			return nil, false
		}
		return types.NewPointer(elem), true

	case *syntax.ArrayType:
		return c.arrayType(e)
	}

	n := c.file.Type(id)
	c.invalidAST(n.Pos(), "%T is not a type", n)
	return nil, false
}

// typeName resolves a named type. Typedefs are transparent; structs yield
// their named type.
func (c *Checker) typeName(e *syntax.NamedType) (types.Type, bool) {
	if e.Decl == syntax.NoDecl {
		c.errorf(diag.UnresolvedType, e.Pos(), "undefined type: %s", e.Name)
		return nil, false
	}
	switch c.file.Decl(e.Decl).(type) {
	case *syntax.TypeDecl:
		return c.aliasType(e.Decl)
	case *syntax.StructDecl:
		n, ok := c.structType(e.Decl)
		return n, ok
	}
	c.errorf(diag.TypeMismatch, e.Pos(), "%s is not a type", e.Name)
	return nil, false
}

func (c *Checker) arrayType(e *syntax.ArrayType) (types.Type, bool) {
	elem, ok := c.typExpr(e.Elem)
	if !ok {
		return nil, false
	}
	var x operand
	if !c.expr(&x, e.Len) {
		return nil, false
	}
	if !types.IsInteger(x.typ) {
		c.errorf(diag.TypeMismatch, x.pos, "array length %s must be int, found %s", c.exprString(e.Len), x.typ)
		return nil, false
	}
	return types.NewArray(elem, e.Len), true
}

// aliasType returns the type a typedef stands for.
func (c *Checker) aliasType(id syntax.DeclID) (types.Type, bool) {
	if t, ok := c.def(id); ok {
		return t, true
	}
	if !c.enter(id) {
		return nil, false
	}
	defer c.leave(id)

	t, ok := c.typExpr(c.file.Decl(id).(*syntax.TypeDecl).Type)
	if !ok {
		return nil, false
	}
	c.info.Defs[id] = t
	return t, true
}

// structType returns the named type of a struct declaration. The named
// type is recorded before the fields are resolved, so fields may point to
// the struct itself.
func (c *Checker) structType(id syntax.DeclID) (*types.Named, bool) {
	if t, ok := c.def(id); ok {
		return t.(*types.Named), true
	}
	d := c.file.Decl(id).(*syntax.StructDecl)
	n := types.NewNamed(d.Name, id)
	c.info.Defs[id] = n

	fields := make([]*types.Field, 0, len(d.Fields))
	for _, f := range d.Fields {
		ft, ok := c.varType(f)
		if !ok {
			return nil, false
		}
		if contains(ft, id, make(map[*types.Named]bool)) {
			c.errorf(diag.StructuralType, c.file.Decl(f).Pos(), "invalid recursive type %s: field %s contains itself",
				d.Name, syntax.DeclName(c.file.Decl(f)))
			return nil, false
		}
		fields = append(fields, types.NewField(syntax.DeclName(c.file.Decl(f)), ft, f))
	}
	n.SetUnderlying(types.NewStruct(fields))
	return n, true
}

// contains reports whether a value of type t holds a value of the struct
// declared by id, either directly, in an array or in the fields of another
// struct. Structs whose fields are still being resolved are skipped; they
// are checked when they complete.
func contains(t types.Type, id syntax.DeclID, seen map[*types.Named]bool) bool {
	for types.IsArray(t) {
		t = types.Elem(t)
	}
	n, ok := t.(*types.Named)
	if !ok {
		return false
	}
	if n.Decl() == id {
		return true
	}
	if seen[n] {
		return false
	}
	seen[n] = true
	s := n.Struct()
	if s == nil {
		return false
	}
	for i := 0; i < s.NumFields(); i++ {
		if contains(s.Field(i).Type(), id, seen) {
			return true
		}
	}
	return false
}

// varType returns the declared type of a variable, parameter or field.
func (c *Checker) varType(id syntax.DeclID) (types.Type, bool) {
	if t, ok := c.def(id); ok {
		return t, true
	}
	if !c.enter(id) {
		return nil, false
	}
	defer c.leave(id)

	d := c.file.Decl(id).(*syntax.VarDecl)
	t, ok := c.typExpr(d.Type)
	if !ok {
		return nil, false
	}
	if types.IsVoid(t) {
		c.errorf(diag.TypeMismatch, d.Pos(), "variable %s declared void", d.Name)
		return nil, false
	}
	c.info.Defs[id] = t
	return t, true
}

// funcType returns the signature of a function declaration.
func (c *Checker) funcType(id syntax.DeclID) (*types.Func, bool) {
	if t, ok := c.def(id); ok {
		return t.(*types.Func), true
	}
	if !c.enter(id) {
		return nil, false
	}
	defer c.leave(id)

	d := c.file.Decl(id).(*syntax.FuncDecl)
	result, ok := c.typExpr(d.Result)
	if !ok {
		return nil, false
	}
	var params []types.Type
	if d.Params != syntax.NoDecl {
		for _, p := range c.file.Decl(d.Params).(*syntax.ParDecl).Params {
			t, ok := c.varType(p)
			if !ok {
				return nil, false
			}
			params = append(params, t)
		}
	}
	sig := types.NewFunc(params, result)
	c.info.Defs[id] = sig
	return sig, true
}
