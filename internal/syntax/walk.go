package syntax

// Visitor is called for each node during Walk.
// If it returns false, the children of the node are not visited.
type Visitor func(node Node) bool

// Walk traverses the declarations of f in depth-first order, following the
// owning child indices. Resolved back-references are not followed.
func Walk(f *File, v Visitor) {
	w := walker{f: f, v: v}
	for _, d := range f.Decls {
		w.decl(d)
	}
}

// Inspect traverses the subtree rooted at the declaration d.
func Inspect(f *File, d DeclID, fn func(Node) bool) {
	w := walker{f: f, v: Visitor(fn)}
	w.decl(d)
}

type walker struct {
	f *File
	v Visitor
}

func (w *walker) decl(id DeclID) {
	if id == NoDecl {
		return
	}
	n := w.f.Decl(id)
	if !w.v(n) {
		return
	}

	switch n := n.(type) {
	case *VarDecl:
		w.typ(n.Type)
		w.expr(n.Init)

	case *ParDecl:
		for _, p := range n.Params {
			w.decl(p)
		}

	case *FuncDecl:
		w.typ(n.Result)
		w.decl(n.Params)
		w.stmt(n.Body)

	case *TypeDecl:
		w.typ(n.Type)

	case *StructDecl:
		for _, f := range n.Fields {
			w.decl(f)
		}
	}
}

func (w *walker) typ(id TypeID) {
	if id == NoType {
		return
	}
	n := w.f.Type(id)
	if !w.v(n) {
		return
	}

	switch n := n.(type) {
	case *PointerType:
		w.typ(n.Elem)

	case *ArrayType:
		w.typ(n.Elem)
		w.expr(n.Len)

	// Leaf nodes: AtomType, NamedType
	}
}

func (w *walker) expr(id ExprID) {
	if id == NoExpr {
		return
	}
	n := w.f.Expr(id)
	if !w.v(n) {
		return
	}

	switch n := n.(type) {
	case *CallExpr:
		for _, a := range n.Args {
			w.expr(a)
		}

	case *CastExpr:
		w.typ(n.Type)
		w.expr(n.X)

	case *PrefixExpr:
		w.expr(n.X)

	case *PostfixExpr:
		w.expr(n.X)
		w.expr(n.Index)

	case *BinaryExpr:
		w.expr(n.X)
		w.expr(n.Y)

	// Leaf nodes: BasicLit, NameExpr
	}
}

func (w *walker) stmt(id StmtID) {
	if id == NoStmt {
		return
	}
	n := w.f.Stmt(id)
	if !w.v(n) {
		return
	}

	switch n := n.(type) {
	case *ExprStmt:
		w.expr(n.X)

	case *AssignStmt:
		w.expr(n.LHS)
		w.expr(n.RHS)

	case *BlockStmt:
		for _, s := range n.Stmts {
			w.stmt(s)
		}

	case *IfStmt:
		w.expr(n.Cond)
		w.stmt(n.Then)
		w.stmt(n.Else)

	case *WhileStmt:
		w.expr(n.Cond)
		w.stmt(n.Body)

	case *ReturnStmt:
		w.expr(n.Result)

	case *DeclStmt:
		w.decl(n.Decl)
	}
}
