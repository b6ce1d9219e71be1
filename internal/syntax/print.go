package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST of f to w.
func Fprint(w io.Writer, f *File) {
	FprintTyped(w, f, nil)
}

// FprintTyped is like Fprint but annotates every expression with the
// string returned by typeOf, when typeOf is non-nil and returns non-empty.
func FprintTyped(w io.Writer, f *File, typeOf func(ExprID) string) {
	p := &printer{w: w, f: f, typeOf: typeOf}
	p.printf("File %s\n", f.Filename)
	p.indent++
	for _, d := range f.Decls {
		p.decl(d)
	}
	p.indent--
}

type printer struct {
	w      io.Writer
	f      *File
	typeOf func(ExprID) string
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// nested prints a labelled child one level deeper.
func (p *printer) nested(label string, print func()) {
	p.printf("%s:\n", label)
	p.indent++
	print()
	p.indent--
}

func (p *printer) decl(id DeclID) {
	switch n := p.f.Decl(id).(type) {
	case *VarDecl:
		p.printf("VarDecl %s %s %s\n", n.pos, n.Name, TypeString(p.f, n.Type))
		if n.Init != NoExpr {
			p.indent++
			p.nested("Init", func() { p.expr(n.Init) })
			p.indent--
		}

	case *ParDecl:
		for _, par := range n.Params {
			p.decl(par)
		}

	case *FuncDecl:
		p.printf("FuncDecl %s %s\n", n.pos, n.Name)
		p.indent++
		p.printf("Result: %s\n", TypeString(p.f, n.Result))
		if n.Params != NoDecl {
			p.nested("Params", func() { p.decl(n.Params) })
		}
		if n.Body != NoStmt {
			p.nested("Body", func() { p.stmt(n.Body) })
		} else {
			p.printf("Prototype\n")
		}
		p.indent--

	case *TypeDecl:
		p.printf("TypeDecl %s %s = %s\n", n.pos, n.Name, TypeString(p.f, n.Type))

	case *StructDecl:
		p.printf("StructDecl %s %s\n", n.pos, n.Name)
		p.indent++
		for _, fld := range n.Fields {
			p.decl(fld)
		}
		p.indent--

	default:
		p.printf("<%T>\n", n)
	}
}

func (p *printer) stmt(id StmtID) {
	switch n := p.f.Stmt(id).(type) {
	case *BlockStmt:
		p.printf("BlockStmt %s\n", n.pos)
		p.indent++
		for _, s := range n.Stmts {
			p.stmt(s)
		}
		p.indent--

	case *IfStmt:
		p.printf("IfStmt %s\n", n.pos)
		p.indent++
		p.nested("Cond", func() { p.expr(n.Cond) })
		p.nested("Then", func() { p.stmt(n.Then) })
		if n.Else != NoStmt {
			p.nested("Else", func() { p.stmt(n.Else) })
		}
		p.indent--

	case *WhileStmt:
		p.printf("WhileStmt %s\n", n.pos)
		p.indent++
		p.nested("Cond", func() { p.expr(n.Cond) })
		p.nested("Body", func() { p.stmt(n.Body) })
		p.indent--

	case *ReturnStmt:
		p.printf("ReturnStmt %s\n", n.pos)
		if n.Result != NoExpr {
			p.indent++
			p.expr(n.Result)
			p.indent--
		}

	case *AssignStmt:
		p.printf("AssignStmt %s %s\n", n.pos, n.Op)
		p.indent++
		p.nested("LHS", func() { p.expr(n.LHS) })
		p.nested("RHS", func() { p.expr(n.RHS) })
		p.indent--

	case *ExprStmt:
		p.printf("ExprStmt %s\n", n.pos)
		p.indent++
		p.expr(n.X)
		p.indent--

	case *DeclStmt:
		p.printf("DeclStmt %s\n", n.pos)
		p.indent++
		p.decl(n.Decl)
		p.indent--

	default:
		p.printf("<%T>\n", n)
	}
}

// typ returns the " : T" annotation for id, if any.
func (p *printer) typ(id ExprID) string {
	if p.typeOf == nil {
		return ""
	}
	if s := p.typeOf(id); s != "" {
		return " : " + s
	}
	return ""
}

func (p *printer) expr(id ExprID) {
	switch n := p.f.Expr(id).(type) {
	case *NameExpr:
		p.printf("Name %s %q%s\n", n.pos, n.Value, p.typ(id))

	case *BasicLit:
		p.printf("BasicLit %s %s %q%s\n", n.pos, n.Kind, n.Value, p.typ(id))

	case *CallExpr:
		p.printf("CallExpr %s %s%s\n", n.pos, n.Fun, p.typ(id))
		p.indent++
		for _, a := range n.Args {
			p.expr(a)
		}
		p.indent--

	case *CastExpr:
		p.printf("CastExpr %s %s%s\n", n.pos, TypeString(p.f, n.Type), p.typ(id))
		p.indent++
		p.expr(n.X)
		p.indent--

	case *PrefixExpr:
		p.printf("PrefixExpr %s %s%s\n", n.pos, n.Op, p.typ(id))
		p.indent++
		p.expr(n.X)
		p.indent--

	case *PostfixExpr:
		switch n.Op {
		case Dot, Arrow:
			p.printf("PostfixExpr %s %s%s%s\n", n.pos, n.Op, n.Sel, p.typ(id))
		case Lbrack:
			p.printf("PostfixExpr %s []%s\n", n.pos, p.typ(id))
		default:
			p.printf("PostfixExpr %s %s%s\n", n.pos, n.Op, p.typ(id))
		}
		p.indent++
		p.expr(n.X)
		if n.Index != NoExpr {
			p.nested("Index", func() { p.expr(n.Index) })
		}
		p.indent--

	case *BinaryExpr:
		p.printf("BinaryExpr %s %s%s\n", n.pos, n.Op, p.typ(id))
		p.indent++
		p.nested("X", func() { p.expr(n.X) })
		p.nested("Y", func() { p.expr(n.Y) })
		p.indent--

	default:
		p.printf("<%T>\n", n)
	}
}

// TypeString returns the source form of a type expression, e.g. int*[3].
func TypeString(f *File, id TypeID) string {
	if id == NoType {
		return "<nil>"
	}
	switch t := f.Type(id).(type) {
	case *AtomType:
		return t.Kind.String()
	case *NamedType:
		return t.Name
	case *PointerType:
		return TypeString(f, t.Elem) + "*"
	case *ArrayType:
		return TypeString(f, t.Elem) + "[" + ExprString(f, t.Len) + "]"
	default:
		return fmt.Sprintf("<%T>", t)
	}
}

// ExprString returns a compact form of an expression with every binary
// operation parenthesised, e.g. (a - (b - c)).
func ExprString(f *File, id ExprID) string {
	if id == NoExpr {
		return "<nil>"
	}
	switch x := f.Expr(id).(type) {
	case *NameExpr:
		return x.Value
	case *BasicLit:
		switch x.Kind {
		case StringLit:
			return fmt.Sprintf("%q", x.Value)
		case CharLit:
			if r := []rune(x.Value); len(r) == 1 {
				return fmt.Sprintf("%q", r[0])
			}
		}
		return x.Value
	case *CallExpr:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = ExprString(f, a)
		}
		return x.Fun + "(" + strings.Join(args, ", ") + ")"
	case *CastExpr:
		return "(" + TypeString(f, x.Type) + ")" + ExprString(f, x.X)
	case *PrefixExpr:
		return x.Op.String() + ExprString(f, x.X)
	case *PostfixExpr:
		switch x.Op {
		case Dot, Arrow:
			return ExprString(f, x.X) + x.Op.String() + x.Sel
		case Lbrack:
			return ExprString(f, x.X) + "[" + ExprString(f, x.Index) + "]"
		}
		return ExprString(f, x.X) + x.Op.String()
	case *BinaryExpr:
		return "(" + ExprString(f, x.X) + " " + x.Op.String() + " " + ExprString(f, x.Y) + ")"
	default:
		return fmt.Sprintf("<%T>", x)
	}
}
