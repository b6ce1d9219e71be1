// Package resolve binds every name occurrence in a MiniC syntax tree to its
// declaration.
//
// Each scope is visited twice. The Head phase registers the names a
// declaration introduces; the Body phase resolves the names it refers to.
// At file scope and in struct bodies all heads run before all bodies, so
// globals may be used before they are declared. Inside a block each
// statement runs Body then Head: a local is visible to the statements after
// it but not to its own initializer.
package resolve

import (
	"github.com/you-not-fish/minic/internal/diag"
	"github.com/you-not-fish/minic/internal/syntax"
)

// Phase selects what a visit does.
type Phase uint8

const (
	Head Phase = iota // declare
	Body              // resolve references
)

func (p Phase) String() string {
	if p == Head {
		return "head"
	}
	return "body"
}

// Config configures name resolution.
type Config struct {
	// Sink receives the diagnostic of the first failure.
	// If nil, diagnostics are dropped.
	Sink diag.Sink
}

// Resolve fills in the Decl fields of every Name, CallExpr and NamedType in
// file. It stops at the first error, reports it to conf.Sink and returns
// it as a *diag.Diagnostic.
func Resolve(file *syntax.File, conf *Config) error {
	if conf == nil {
		conf = &Config{}
	}
	r := &resolver{file: file, conf: conf}
	r.resolveFile()
	if r.first != nil {
		return r.first
	}
	return nil
}

type resolver struct {
	file  *syntax.File
	conf  *Config
	syms  SymbolTable
	depth int
	first *diag.Diagnostic
}

func (r *resolver) report(d *diag.Diagnostic) {
	if r.first == nil && d.Severity == diag.Error {
		r.first = d
	}
	if r.conf.Sink != nil {
		r.conf.Sink.Report(d)
	}
}

func (r *resolver) resolveFile() bool {
	for _, d := range r.file.Decls {
		if !r.decl(d, Head) {
			return false
		}
	}
	for _, d := range r.file.Decls {
		if !r.decl(d, Body) {
			return false
		}
	}
	return true
}

func (r *resolver) openScope() {
	r.depth++
}

func (r *resolver) closeScope() {
	r.depth--
	r.syms.Evict(r.depth)
}

// declare registers decl under name in the current scope.
func (r *resolver) declare(name string, kind SymbolKind, id syntax.DeclID) bool {
	prev, ok := r.syms.Insert(Symbol{Name: name, Kind: kind, Depth: r.depth, Decl: id})
	if ok {
		return true
	}
	d := r.file.Decl(id)
	r.report(diag.Errorf(diag.Redeclaration, d.Pos(), "%s redeclared in this scope", name))
	r.report(diag.Notef(r.file.Decl(prev.Decl).Pos(), "previous declaration of %s", name))
	return false
}

// ----------------------------------------------------------------------------
// Declarations

func (r *resolver) decl(id syntax.DeclID, phase Phase) bool {
	switch d := r.file.Decl(id).(type) {
	case *syntax.VarDecl:
		if phase == Head {
			return r.declare(d.Name, ValueSymbol, id)
		}
		if !r.typ(d.Type) {
			return false
		}
		return d.Init == syntax.NoExpr || r.expr(d.Init)

	case *syntax.FuncDecl:
		if phase == Head {
			return r.declare(d.Name, ValueSymbol, id)
		}
		return r.funcBody(d)

	case *syntax.TypeDecl:
		if phase == Head {
			return r.declare(d.Name, TypeSymbol, id)
		}
		return r.typ(d.Type)

	case *syntax.StructDecl:
		if phase == Head {
			return r.declare(d.Name, TypeSymbol, id)
		}
		r.openScope()
		defer r.closeScope()
		for _, f := range d.Fields {
			if !r.decl(f, Head) {
				return false
			}
		}
		for _, f := range d.Fields {
			if !r.decl(f, Body) {
				return false
			}
		}
		return true

	case *syntax.ParDecl:
		for _, p := range d.Params {
			if !r.decl(p, phase) {
				return false
			}
		}
		return true
	}
	return true
}

// funcBody resolves a function signature and body. Parameters and the
// top-level statements of the body share one scope.
func (r *resolver) funcBody(d *syntax.FuncDecl) bool {
	if !r.typ(d.Result) {
		return false
	}
	r.openScope()
	defer r.closeScope()
	if d.Params != syntax.NoDecl {
		if !r.decl(d.Params, Head) || !r.decl(d.Params, Body) {
			return false
		}
	}
	if d.Body == syntax.NoStmt {
		return true
	}
	return r.stmtList(r.file.Stmt(d.Body).(*syntax.BlockStmt).Stmts)
}

// ----------------------------------------------------------------------------
// Statements

// stmtList processes the statements of one block in order, each Body
// before Head.
func (r *resolver) stmtList(list []syntax.StmtID) bool {
	for _, s := range list {
		if !r.stmt(s, Body) || !r.stmt(s, Head) {
			return false
		}
	}
	return true
}

func (r *resolver) stmt(id syntax.StmtID, phase Phase) bool {
	s := r.file.Stmt(id)
	if phase == Head {
		if s, ok := s.(*syntax.DeclStmt); ok {
			return r.decl(s.Decl, Head)
		}
		return true
	}

	switch s := s.(type) {
	case *syntax.ExprStmt:
		return r.expr(s.X)

	case *syntax.AssignStmt:
		return r.expr(s.LHS) && r.expr(s.RHS)

	case *syntax.BlockStmt:
		r.openScope()
		defer r.closeScope()
		return r.stmtList(s.Stmts)

	case *syntax.IfStmt:
		if !r.expr(s.Cond) || !r.stmt(s.Then, Body) {
			return false
		}
		return s.Else == syntax.NoStmt || r.stmt(s.Else, Body)

	case *syntax.WhileStmt:
		return r.expr(s.Cond) && r.stmt(s.Body, Body)

	case *syntax.ReturnStmt:
		return s.Result == syntax.NoExpr || r.expr(s.Result)

	case *syntax.DeclStmt:
		return r.decl(s.Decl, Body)
	}
	return true
}

// ----------------------------------------------------------------------------
// Types and expressions

func (r *resolver) typ(id syntax.TypeID) bool {
	switch t := r.file.Type(id).(type) {
	case *syntax.NamedType:
		sym, ok := r.syms.Lookup(t.Name, TypeSymbol)
		if !ok {
			r.report(diag.Errorf(diag.UnresolvedType, t.Pos(), "undefined type: %s", t.Name))
			return false
		}
		t.Decl = sym.Decl
		return true

	case *syntax.PointerType:
		return r.typ(t.Elem)

	case *syntax.ArrayType:
		return r.typ(t.Elem) && (t.Len == syntax.NoExpr || r.expr(t.Len))
	}
	return true
}

func (r *resolver) expr(id syntax.ExprID) bool {
	switch e := r.file.Expr(id).(type) {
	case *syntax.NameExpr:
		sym, ok := r.syms.Lookup(e.Value, ValueSymbol)
		if !ok {
			r.report(diag.Errorf(diag.UnresolvedName, e.Pos(), "undefined: %s", e.Value))
			return false
		}
		e.Decl = sym.Decl
		return true

	case *syntax.CallExpr:
		sym, ok := r.syms.Lookup(e.Fun, ValueSymbol)
		if !ok {
			r.report(diag.Errorf(diag.UnresolvedName, e.Pos(), "undefined: %s", e.Fun))
			return false
		}
		e.Decl = sym.Decl
		for _, a := range e.Args {
			if !r.expr(a) {
				return false
			}
		}
		return true

	case *syntax.CastExpr:
		return r.typ(e.Type) && r.expr(e.X)

	case *syntax.PrefixExpr:
		return r.expr(e.X)

	case *syntax.PostfixExpr:
		if !r.expr(e.X) {
			return false
		}
		return e.Index == syntax.NoExpr || r.expr(e.Index)

	case *syntax.BinaryExpr:
		return r.expr(e.X) && r.expr(e.Y)
	}
	return true
}
