package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST of f to w. Arena
// indices are included so resolved back-references ("decl") can be
// followed. typeOf, if non-nil, adds a "typ" member to expressions.
func FprintJSON(w io.Writer, f *File, typeOf func(ExprID) string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	j := &jsonWriter{f: f, typeOf: typeOf}
	return enc.Encode(map[string]interface{}{
		"node":  "File",
		"file":  f.Filename,
		"decls": mapSlice(f.Decls, j.decl),
	})
}

type jsonWriter struct {
	f      *File
	typeOf func(ExprID) string
}

type object = map[string]interface{}

func base(kind string, n Node, id int32) object {
	return object{
		"node": kind,
		"id":   id,
		"pos":  n.Pos().String(),
		"end":  n.End().String(),
	}
}

func (j *jsonWriter) decl(id DeclID) interface{} {
	if id == NoDecl {
		return nil
	}
	switch n := j.f.Decl(id).(type) {
	case *VarDecl:
		m := base("VarDecl", n, int32(id))
		m["name"] = n.Name
		m["vartype"] = j.typ(n.Type)
		if n.Init != NoExpr {
			m["init"] = j.expr(n.Init)
		}
		return m

	case *ParDecl:
		m := base("ParDecl", n, int32(id))
		m["params"] = mapSlice(n.Params, j.decl)
		return m

	case *FuncDecl:
		m := base("FuncDecl", n, int32(id))
		m["name"] = n.Name
		m["result"] = j.typ(n.Result)
		m["params"] = j.decl(n.Params)
		if n.Body != NoStmt {
			m["body"] = j.stmt(n.Body)
		}
		m["hasReturn"] = n.HasReturn
		return m

	case *TypeDecl:
		m := base("TypeDecl", n, int32(id))
		m["name"] = n.Name
		m["typedef"] = j.typ(n.Type)
		return m

	case *StructDecl:
		m := base("StructDecl", n, int32(id))
		m["name"] = n.Name
		m["fields"] = mapSlice(n.Fields, j.decl)
		return m
	}
	return object{"node": "Unknown"}
}

func (j *jsonWriter) typ(id TypeID) interface{} {
	if id == NoType {
		return nil
	}
	switch n := j.f.Type(id).(type) {
	case *AtomType:
		m := base("AtomType", n, int32(id))
		m["kind"] = n.Kind.String()
		return m

	case *NamedType:
		m := base("NamedType", n, int32(id))
		m["name"] = n.Name
		m["decl"] = n.Decl
		return m

	case *PointerType:
		m := base("PointerType", n, int32(id))
		m["elem"] = j.typ(n.Elem)
		return m

	case *ArrayType:
		m := base("ArrayType", n, int32(id))
		m["elem"] = j.typ(n.Elem)
		m["len"] = j.expr(n.Len)
		return m
	}
	return object{"node": "Unknown"}
}

func (j *jsonWriter) expr(id ExprID) interface{} {
	if id == NoExpr {
		return nil
	}
	var m object
	switch n := j.f.Expr(id).(type) {
	case *NameExpr:
		m = base("Name", n, int32(id))
		m["value"] = n.Value
		m["decl"] = n.Decl

	case *BasicLit:
		m = base("BasicLit", n, int32(id))
		m["kind"] = n.Kind.String()
		m["value"] = n.Value

	case *CallExpr:
		m = base("CallExpr", n, int32(id))
		m["fun"] = n.Fun
		m["args"] = mapSlice(n.Args, j.expr)
		m["decl"] = n.Decl

	case *CastExpr:
		m = base("CastExpr", n, int32(id))
		m["casttype"] = j.typ(n.Type)
		m["x"] = j.expr(n.X)

	case *PrefixExpr:
		m = base("PrefixExpr", n, int32(id))
		m["op"] = n.Op.String()
		m["x"] = j.expr(n.X)

	case *PostfixExpr:
		m = base("PostfixExpr", n, int32(id))
		m["op"] = n.Op.String()
		m["x"] = j.expr(n.X)
		if n.Sel != "" {
			m["sel"] = n.Sel
		}
		if n.Index != NoExpr {
			m["index"] = j.expr(n.Index)
		}

	case *BinaryExpr:
		m = base("BinaryExpr", n, int32(id))
		m["op"] = n.Op.String()
		m["x"] = j.expr(n.X)
		m["y"] = j.expr(n.Y)

	default:
		return object{"node": "Unknown"}
	}
	if j.typeOf != nil {
		if s := j.typeOf(id); s != "" {
			m["typ"] = s
		}
	}
	return m
}

func (j *jsonWriter) stmt(id StmtID) interface{} {
	if id == NoStmt {
		return nil
	}
	switch n := j.f.Stmt(id).(type) {
	case *ExprStmt:
		m := base("ExprStmt", n, int32(id))
		m["x"] = j.expr(n.X)
		return m

	case *AssignStmt:
		m := base("AssignStmt", n, int32(id))
		m["op"] = n.Op.String()
		m["lhs"] = j.expr(n.LHS)
		m["rhs"] = j.expr(n.RHS)
		return m

	case *BlockStmt:
		m := base("BlockStmt", n, int32(id))
		m["stmts"] = mapSlice(n.Stmts, j.stmt)
		return m

	case *IfStmt:
		m := base("IfStmt", n, int32(id))
		m["cond"] = j.expr(n.Cond)
		m["then"] = j.stmt(n.Then)
		if n.Else != NoStmt {
			m["else"] = j.stmt(n.Else)
		}
		return m

	case *WhileStmt:
		m := base("WhileStmt", n, int32(id))
		m["cond"] = j.expr(n.Cond)
		m["body"] = j.stmt(n.Body)
		return m

	case *ReturnStmt:
		m := base("ReturnStmt", n, int32(id))
		if n.Result != NoExpr {
			m["result"] = j.expr(n.Result)
		}
		m["func"] = n.Func
		return m

	case *DeclStmt:
		m := base("DeclStmt", n, int32(id))
		m["decl"] = j.decl(n.Decl)
		return m
	}
	return object{"node": "Unknown"}
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
