package syntax

// ----------------------------------------------------------------------------
// Handles
//
// Nodes live in the per-category slices of an Arena and refer to each other
// by index. Parent to child edges are owning indices; the Decl fields that
// name and type resolution fill in are non-owning back-references.

// DeclID indexes the declaration arena.
type DeclID int32

// TypeID indexes the type-expression arena.
type TypeID int32

// ExprID indexes the expression arena.
type ExprID int32

// StmtID indexes the statement arena.
type StmtID int32

// Absent children.
const (
	NoDecl DeclID = -1
	NoType TypeID = -1
	NoExpr ExprID = -1
	NoStmt StmtID = -1
)

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 4 classes of nodes: declarations, type expressions, expressions
// and statements. Each class is a closed set; traversals switch on the
// concrete type.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	End() Pos // position of first character immediately after the node
	aNode()   // marker method to restrict implementations to this package
}

// Decl is the interface for all declaration nodes.
type Decl interface {
	Node
	aDecl()
}

// TypeExpr is the interface for all type expression nodes.
type TypeExpr interface {
	Node
	aType()
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node
	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

type node struct {
	pos, end Pos
}

func (n *node) Pos() Pos { return n.pos }
func (n *node) End() Pos { return n.end }
func (n *node) aNode()   {}

func (n *node) span(pos, end Pos) {
	n.pos, n.end = pos, end
}

type decl struct{ node }

func (*decl) aDecl() {}

type typeExpr struct{ node }

func (*typeExpr) aType() {}

type expr struct{ node }

func (*expr) aExpr() {}

type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Declarations

// VarDecl represents a variable, parameter or struct field: Type Name [= Init]
type VarDecl struct {
	decl
	Name string
	Type TypeID
	Init ExprID // NoExpr if absent
}

// ParDecl is a parameter list; each element is a *VarDecl.
type ParDecl struct {
	decl
	Params []DeclID
}

// FuncDecl represents a function definition or prototype.
type FuncDecl struct {
	decl
	Name      string
	Result    TypeID
	Params    DeclID // *ParDecl, or NoDecl for ()
	Body      StmtID // *BlockStmt, or NoStmt for a prototype
	HasReturn bool   // set by the type checker when a return is observed
}

// TypeDecl represents a type alias: typedef Type Name;
type TypeDecl struct {
	decl
	Name string
	Type TypeID
}

// StructDecl represents struct Name { Fields }.
type StructDecl struct {
	decl
	Name   string
	Fields []DeclID // *VarDecl
}

// ----------------------------------------------------------------------------
// Type expressions

// AtomType is one of the built-in types int, char, bool, void, float.
type AtomType struct {
	typeExpr
	Kind Kind // Int, Char, Bool, Void or Float
}

// NamedType refers to a typedef or struct by name.
type NamedType struct {
	typeExpr
	Name string
	Decl DeclID // resolved *TypeDecl or *StructDecl
}

// PointerType represents Elem*.
type PointerType struct {
	typeExpr
	Elem TypeID
}

// ArrayType represents Elem[Len].
type ArrayType struct {
	typeExpr
	Elem TypeID
	Len  ExprID
}

// ----------------------------------------------------------------------------
// Expressions

// BasicLit represents a literal value.
type BasicLit struct {
	expr
	Kind  LitKind
	Value string // literal text (decoded for strings and chars)
}

// NameExpr represents a reference to a variable.
type NameExpr struct {
	expr
	Value string
	Decl  DeclID // resolved declaration
}

// CallExpr represents Fun(Args...).
type CallExpr struct {
	expr
	Fun  string
	Args []ExprID
	Decl DeclID // resolved *FuncDecl
}

// CastExpr represents (Type) X.
type CastExpr struct {
	expr
	Type TypeID
	X    ExprID
}

// PrefixExpr represents Op X for Op in + - ++ -- ! ~ * &.
type PrefixExpr struct {
	expr
	Op Kind
	X  ExprID
}

// PostfixExpr represents a postfix suffix applied to X.
//
//	X++ X--    Op == Inc, Dec
//	X.Sel      Op == Dot
//	X->Sel     Op == Arrow
//	X[Index]   Op == Lbrack
type PostfixExpr struct {
	expr
	Op    Kind
	X     ExprID
	Sel   string
	Index ExprID
}

// BinaryExpr represents X Op Y.
type BinaryExpr struct {
	expr
	Op   Kind
	X, Y ExprID
}

// ----------------------------------------------------------------------------
// Statements

// ExprStmt represents an expression used as a statement.
type ExprStmt struct {
	stmt
	X ExprID
}

// AssignStmt represents LHS Op RHS; for Op in = += -= *= /= %=.
type AssignStmt struct {
	stmt
	Op       Kind
	LHS, RHS ExprID
}

// BlockStmt represents { Stmts }.
type BlockStmt struct {
	stmt
	Stmts []StmtID
}

// IfStmt represents if (Cond) Then [else Else].
type IfStmt struct {
	stmt
	Cond ExprID
	Then StmtID
	Else StmtID // NoStmt if absent
}

// WhileStmt represents while (Cond) Body.
type WhileStmt struct {
	stmt
	Cond ExprID
	Body StmtID
}

// ReturnStmt represents return [Result];
type ReturnStmt struct {
	stmt
	Result ExprID // NoExpr for a bare return
	Func   DeclID // enclosing *FuncDecl
}

// DeclStmt wraps a local variable declaration.
type DeclStmt struct {
	stmt
	Decl DeclID // *VarDecl
}

// ----------------------------------------------------------------------------
// Arena and File

// Arena owns every node of one compilation unit.
type Arena struct {
	decls []Decl
	types []TypeExpr
	exprs []Expr
	stmts []Stmt
}

// Decl returns the declaration with the given id.
func (a *Arena) Decl(id DeclID) Decl { return a.decls[id] }

// Type returns the type expression with the given id.
func (a *Arena) Type(id TypeID) TypeExpr { return a.types[id] }

// Expr returns the expression with the given id.
func (a *Arena) Expr(id ExprID) Expr { return a.exprs[id] }

// Stmt returns the statement with the given id.
func (a *Arena) Stmt(id StmtID) Stmt { return a.stmts[id] }

// NumDecls returns the number of declarations in the arena.
func (a *Arena) NumDecls() int { return len(a.decls) }

// NumTypes returns the number of type expressions in the arena.
func (a *Arena) NumTypes() int { return len(a.types) }

// NumExprs returns the number of expressions in the arena.
func (a *Arena) NumExprs() int { return len(a.exprs) }

// NumStmts returns the number of statements in the arena.
func (a *Arena) NumStmts() int { return len(a.stmts) }

func (a *Arena) newDecl(d Decl) DeclID {
	a.decls = append(a.decls, d)
	return DeclID(len(a.decls) - 1)
}

func (a *Arena) newType(t TypeExpr) TypeID {
	a.types = append(a.types, t)
	return TypeID(len(a.types) - 1)
}

func (a *Arena) newExpr(e Expr) ExprID {
	a.exprs = append(a.exprs, e)
	return ExprID(len(a.exprs) - 1)
}

func (a *Arena) newStmt(s Stmt) StmtID {
	a.stmts = append(a.stmts, s)
	return StmtID(len(a.stmts) - 1)
}

// arenaMark records the arena lengths at a backtracking point.
type arenaMark struct {
	decls, types, exprs, stmts int
}

func (a *Arena) mark() arenaMark {
	return arenaMark{len(a.decls), len(a.types), len(a.exprs), len(a.stmts)}
}

// truncate discards every node allocated after m.
func (a *Arena) truncate(m arenaMark) {
	clear(a.decls[m.decls:])
	clear(a.types[m.types:])
	clear(a.exprs[m.exprs:])
	clear(a.stmts[m.stmts:])
	a.decls = a.decls[:m.decls]
	a.types = a.types[:m.types]
	a.exprs = a.exprs[:m.exprs]
	a.stmts = a.stmts[:m.stmts]
}

// File is the AST of one source file.
type File struct {
	Filename string
	Decls    []DeclID // top-level declarations in source order
	Arena
}

// DeclName returns the declared name of d, or "" for a ParDecl.
func DeclName(d Decl) string {
	switch d := d.(type) {
	case *VarDecl:
		return d.Name
	case *FuncDecl:
		return d.Name
	case *TypeDecl:
		return d.Name
	case *StructDecl:
		return d.Name
	}
	return ""
}
