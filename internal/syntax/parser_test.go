package syntax

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// Test helpers

func parseFile(t *testing.T, src string) *File {
	t.Helper()
	f, err := Parse("test.mc", strings.NewReader(src), nil)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return f
}

func parseError(t *testing.T, src string) *SyntaxError {
	t.Helper()
	var reported int
	_, err := Parse("test.mc", strings.NewReader(src), func(Pos, string) { reported++ })
	if err == nil {
		t.Fatalf("Parse(%q): expected error", src)
	}
	if reported != 1 {
		t.Errorf("Parse(%q): error handler called %d times, want 1", src, reported)
	}
	serr, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("Parse(%q): error %T is not *SyntaxError", src, err)
	}
	return serr
}

// funcBody parses src as a single function and returns its body statements.
func funcBody(t *testing.T, src string) (*File, []StmtID) {
	t.Helper()
	f := parseFile(t, src)
	if len(f.Decls) != 1 {
		t.Fatalf("got %d decls, want 1", len(f.Decls))
	}
	fn, ok := f.Decl(f.Decls[0]).(*FuncDecl)
	if !ok {
		t.Fatalf("decl is %T, want *FuncDecl", f.Decl(f.Decls[0]))
	}
	return f, f.Stmt(fn.Body).(*BlockStmt).Stmts
}

// rhs parses "x = src;" inside a function and returns the right-hand side.
func rhs(t *testing.T, src string) (*File, ExprID) {
	t.Helper()
	f, stmts := funcBody(t, "void f() { x = "+src+"; }")
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	a, ok := f.Stmt(stmts[0]).(*AssignStmt)
	if !ok {
		t.Fatalf("statement is %T, want *AssignStmt", f.Stmt(stmts[0]))
	}
	return f, a.RHS
}

func nodeName(n Node) string {
	switch n.(type) {
	case *VarDecl:
		return "VarDecl"
	case *ParDecl:
		return "ParDecl"
	case *FuncDecl:
		return "FuncDecl"
	case *TypeDecl:
		return "TypeDecl"
	case *StructDecl:
		return "StructDecl"
	case *ExprStmt:
		return "ExprStmt"
	case *AssignStmt:
		return "AssignStmt"
	case *BlockStmt:
		return "BlockStmt"
	case *IfStmt:
		return "IfStmt"
	case *WhileStmt:
		return "WhileStmt"
	case *ReturnStmt:
		return "ReturnStmt"
	case *DeclStmt:
		return "DeclStmt"
	}
	return "?"
}

// ----------------------------------------------------------------------------
// Declarations

func TestParseDecls(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"var", "int x;", []string{"VarDecl"}},
		{"var_init", "int x = 5;", []string{"VarDecl"}},
		{"func", "int f() { return 1; }", []string{"FuncDecl"}},
		{"prototype", "int f(int a);", []string{"FuncDecl"}},
		{"typedef", "typedef int myint;", []string{"TypeDecl"}},
		{"struct", "struct S { int x; }", []string{"StructDecl"}},
		{"struct_semi", "struct S { int x; };", []string{"StructDecl"}},
		{"struct_empty", "struct S { }", []string{"StructDecl"}},
		{"mixed", "struct P { int x; }; typedef P* PP; PP g; void f(PP p) { }",
			[]string{"StructDecl", "TypeDecl", "VarDecl", "FuncDecl"}},
		{"empty", "", nil},
		{"comments_only", "// nothing\n/* here */", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseFile(t, tt.src)
			if len(f.Decls) != len(tt.want) {
				t.Fatalf("got %d decls, want %d", len(f.Decls), len(tt.want))
			}
			for i, d := range f.Decls {
				if got := nodeName(f.Decl(d)); got != tt.want[i] {
					t.Errorf("decl %d: got %s, want %s", i, got, tt.want[i])
				}
			}
		})
	}
}

func TestParseVarDecl(t *testing.T) {
	f := parseFile(t, "int x = 5;")
	v, ok := f.Decl(f.Decls[0]).(*VarDecl)
	if !ok {
		t.Fatalf("got %T, want *VarDecl", f.Decl(f.Decls[0]))
	}
	if v.Name != "x" {
		t.Errorf("Name = %q, want x", v.Name)
	}
	if at, ok := f.Type(v.Type).(*AtomType); !ok || at.Kind != Int {
		t.Errorf("Type = %s, want int", TypeString(f, v.Type))
	}
	lit, ok := f.Expr(v.Init).(*BasicLit)
	if !ok {
		t.Fatalf("Init is %T, want *BasicLit", f.Expr(v.Init))
	}
	if lit.Kind != IntLit || lit.Value != "5" {
		t.Errorf("Init = %s %q, want int 5", lit.Kind, lit.Value)
	}
}

func TestParseFuncDecl(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		result    string
		params    []string
		prototype bool
	}{
		{"no_params", "int f() { return 1; }", "int", nil, false},
		{"one_param", "int f(int a) { return a; }", "int", []string{"a int"}, false},
		{"two_params", "void g(char* s, float[4] v) { }", "void", []string{"s char*", "v float[4]"}, false},
		{"named_result", "Pt* h(Pt p) { return &p; }", "Pt*", []string{"p Pt"}, false},
		{"prototype", "int k(int a, int b);", "int", []string{"a int", "b int"}, true},
		{"prototype_no_params", "void z();", "void", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parseFile(t, tt.src)
			fn, ok := f.Decl(f.Decls[0]).(*FuncDecl)
			if !ok {
				t.Fatalf("got %T, want *FuncDecl", f.Decl(f.Decls[0]))
			}
			if got := TypeString(f, fn.Result); got != tt.result {
				t.Errorf("Result = %s, want %s", got, tt.result)
			}
			if (fn.Body == NoStmt) != tt.prototype {
				t.Errorf("prototype = %v, want %v", fn.Body == NoStmt, tt.prototype)
			}

			var params []string
			if fn.Params != NoDecl {
				for _, p := range f.Decl(fn.Params).(*ParDecl).Params {
					v := f.Decl(p).(*VarDecl)
					params = append(params, v.Name+" "+TypeString(f, v.Type))
				}
			}
			if strings.Join(params, ",") != strings.Join(tt.params, ",") {
				t.Errorf("params = %v, want %v", params, tt.params)
			}
		})
	}
}

func TestParseStruct(t *testing.T) {
	f := parseFile(t, "struct Point { int x; float y = 1.5; Point* next; };")
	s, ok := f.Decl(f.Decls[0]).(*StructDecl)
	if !ok {
		t.Fatalf("got %T, want *StructDecl", f.Decl(f.Decls[0]))
	}
	if s.Name != "Point" {
		t.Errorf("Name = %q, want Point", s.Name)
	}
	want := []string{"x int", "y float", "next Point*"}
	if len(s.Fields) != len(want) {
		t.Fatalf("got %d fields, want %d", len(s.Fields), len(want))
	}
	for i, fid := range s.Fields {
		v := f.Decl(fid).(*VarDecl)
		if got := v.Name + " " + TypeString(f, v.Type); got != want[i] {
			t.Errorf("field %d = %s, want %s", i, got, want[i])
		}
	}
	if f.Decl(s.Fields[1]).(*VarDecl).Init == NoExpr {
		t.Errorf("field initializer was dropped")
	}
}

func TestParseTypes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"int x;", "int"},
		{"char c;", "char"},
		{"bool b;", "bool"},
		{"float f;", "float"},
		{"int* p;", "int*"},
		{"int** pp;", "int**"},
		{"int[3] a;", "int[3]"},
		{"int[3][4] m;", "int[3][4]"},
		{"char*[2]* q;", "char*[2]*"},
		{"S s;", "S"},
		{"S* sp;", "S*"},
		{"int[n + 1] v;", "int[(n + 1)]"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f := parseFile(t, tt.src)
			v := f.Decl(f.Decls[0]).(*VarDecl)
			if got := TypeString(f, v.Type); got != tt.want {
				t.Errorf("type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseTypedef(t *testing.T) {
	f := parseFile(t, "typedef int* IntPtr;")
	d, ok := f.Decl(f.Decls[0]).(*TypeDecl)
	if !ok {
		t.Fatalf("got %T, want *TypeDecl", f.Decl(f.Decls[0]))
	}
	if d.Name != "IntPtr" || TypeString(f, d.Type) != "int*" {
		t.Errorf("got typedef %s %s, want typedef int* IntPtr", TypeString(f, d.Type), d.Name)
	}
}

// ----------------------------------------------------------------------------
// Statements

func TestParseStatements(t *testing.T) {
	src := `int f() {
	int y = 1;
	y = 2;
	y += 3;
	if (y) y = 1; else { }
	while (y) y--;
	return y;
	f();
	{ }
}`
	f, stmts := funcBody(t, src)
	want := []string{
		"DeclStmt", "AssignStmt", "AssignStmt", "IfStmt",
		"WhileStmt", "ReturnStmt", "ExprStmt", "BlockStmt",
	}
	if len(stmts) != len(want) {
		t.Fatalf("got %d statements, want %d", len(stmts), len(want))
	}
	for i, s := range stmts {
		if got := nodeName(f.Stmt(s)); got != want[i] {
			t.Errorf("statement %d: got %s, want %s", i, got, want[i])
		}
	}

	if op := f.Stmt(stmts[2]).(*AssignStmt).Op; op != AddAssign {
		t.Errorf("compound assignment op = %v, want +=", op)
	}
	ifs := f.Stmt(stmts[3]).(*IfStmt)
	if ifs.Else == NoStmt {
		t.Errorf("else branch missing")
	}
}

func TestParseAssignOps(t *testing.T) {
	for _, op := range []Kind{Assign, AddAssign, SubAssign, MulAssign, QuoAssign, RemAssign} {
		t.Run(op.String(), func(t *testing.T) {
			f, stmts := funcBody(t, "void f() { a[i] "+op.String()+" 2; }")
			a, ok := f.Stmt(stmts[0]).(*AssignStmt)
			if !ok {
				t.Fatalf("got %T, want *AssignStmt", f.Stmt(stmts[0]))
			}
			if a.Op != op {
				t.Errorf("Op = %v, want %v", a.Op, op)
			}
			if got := ExprString(f, a.LHS); got != "a[i]" {
				t.Errorf("LHS = %s, want a[i]", got)
			}
		})
	}
}

func TestParseDanglingElse(t *testing.T) {
	f, stmts := funcBody(t, "void f() { if (a) if (b) x = 1; else x = 2; }")
	outer := f.Stmt(stmts[0]).(*IfStmt)
	if outer.Else != NoStmt {
		t.Errorf("else bound to outer if")
	}
	inner := f.Stmt(outer.Then).(*IfStmt)
	if inner.Else == NoStmt {
		t.Errorf("else not bound to inner if")
	}
}

func TestReturnBindsEnclosingFunction(t *testing.T) {
	src := `int f() { return 1; }
int g(int a) { if (a) { return 2; } return 3; }`
	f := parseFile(t, src)

	var returns []*ReturnStmt
	Walk(f, func(n Node) bool {
		if r, ok := n.(*ReturnStmt); ok {
			returns = append(returns, r)
		}
		return true
	})
	if len(returns) != 3 {
		t.Fatalf("got %d returns, want 3", len(returns))
	}
	want := []DeclID{f.Decls[0], f.Decls[1], f.Decls[1]}
	for i, r := range returns {
		if r.Func != want[i] {
			t.Errorf("return %d bound to decl %d, want %d", i, r.Func, want[i])
		}
		if _, ok := f.Decl(r.Func).(*FuncDecl); !ok {
			t.Errorf("return %d bound to %T", i, f.Decl(r.Func))
		}
	}
}

// ----------------------------------------------------------------------------
// Expressions

// A name token becomes a *NameExpr, unresolved until name resolution.
func TestParseNameExpr(t *testing.T) {
	toks := Tokenize("test.mc", strings.NewReader("count"), nil)
	if toks[0].Kind != Name || toks[0].Text != "count" {
		t.Fatalf("token = %v %q, want name count", toks[0].Kind, toks[0].Text)
	}
	f, x := rhs(t, "count")
	n, ok := f.Expr(x).(*NameExpr)
	if !ok {
		t.Fatalf("got %T, want *NameExpr", f.Expr(x))
	}
	if n.Value != "count" || n.Decl != NoDecl {
		t.Errorf("NameExpr = {%q %d}, want {count %d}", n.Value, n.Decl, NoDecl)
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		// Right-associative at every level.
		{"a - b - c", "(a - (b - c))"},
		{"a / b / c", "(a / (b / c))"},
		{"a && b || c", "(a && (b || c))"},

		// Level ordering.
		{"a + b * c", "(a + (b * c))"},
		{"a * b + c", "((a * b) + c)"},
		{"a == b && c", "((a == b) && c)"},
		{"a | b == c", "(a | (b == c))"},
		{"a < b + 1", "(a < (b + 1))"},
		{"(a + b) * c", "((a + b) * c)"},

		// Prefix binds tighter than binary, looser than postfix.
		{"-a * b", "(-a * b)"},
		{"!a == b", "(!a == b)"},
		{"~a & b", "(~a & b)"},
		{"*p + 1", "(*p + 1)"},

		// Casts.
		{"(int) x + 1", "((int)x + 1)"},
		{"(int*) p", "(int*)p"},
		{"(T) x", "(T)x"},
		{"(T) (x)", "(T)x"},
		{"(a) - b", "(a - b)"},
		{"(a[0]) - 1", "(a[0] - 1)"},
		{"(a[0]) + 1", "(a[0] + 1)"},
		{"(p[1]) * 2", "(p[1] * 2)"},
		{"(a[i][j]) - b", "(a[i][j] - b)"},
		{"(T[2]) x", "(T[2])x"},
		{"(T*) &x", "(T*)&x"},
		{"(T*[2]) -x", "(T*[2])-x"},
		{"(float) -x", "(float)-x"},

		// Primaries and postfix.
		{"f(a, b + 1)", "f(a, (b + 1))"},
		{"g()", "g()"},
		{"p->x.y[i]", "p->x.y[i]"},
		{"a[i][j]", "a[i][j]"},
		{"'c'", "'c'"},
		{`"hi"`, `"hi"`},
		{"true", "true"},
		{"1.5", "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, x := rhs(t, tt.src)
			if got := ExprString(f, x); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParsePrefixOverPostfix(t *testing.T) {
	tests := []struct {
		src    string
		prefix Kind
		post   Kind
	}{
		{"*p++", Mul, Inc},
		{"&a[0]", And, Lbrack},
		{"-s.x", Sub, Dot},
		{"++p->n", Inc, Arrow},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f, x := rhs(t, tt.src)
			pre, ok := f.Expr(x).(*PrefixExpr)
			if !ok {
				t.Fatalf("got %T, want *PrefixExpr", f.Expr(x))
			}
			if pre.Op != tt.prefix {
				t.Errorf("prefix op = %v, want %v", pre.Op, tt.prefix)
			}
			post, ok := f.Expr(pre.X).(*PostfixExpr)
			if !ok {
				t.Fatalf("operand is %T, want *PostfixExpr", f.Expr(pre.X))
			}
			if post.Op != tt.post {
				t.Errorf("postfix op = %v, want %v", post.Op, tt.post)
			}
		})
	}
}

func TestParseNodePositions(t *testing.T) {
	src := "int f(int a) {\n\treturn a + 1;\n}"
	f, stmts := funcBody(t, src)

	fn := f.Decl(f.Decls[0])
	if got := fn.Pos().String(); got != "test.mc:1:1" {
		t.Errorf("FuncDecl pos = %s", got)
	}
	if got := fn.End().String(); got != "test.mc:3:2" {
		t.Errorf("FuncDecl end = %s", got)
	}

	ret := f.Stmt(stmts[0]).(*ReturnStmt)
	if got := ret.Pos().String(); got != "test.mc:2:2" {
		t.Errorf("ReturnStmt pos = %s", got)
	}
	if got := ret.End().String(); got != "test.mc:2:15" {
		t.Errorf("ReturnStmt end = %s", got)
	}

	bin := f.Expr(ret.Result)
	if got := bin.Pos().String(); got != "test.mc:2:9" {
		t.Errorf("BinaryExpr pos = %s", got)
	}
	if got := bin.End().String(); got != "test.mc:2:14" {
		t.Errorf("BinaryExpr end = %s", got)
	}
}

// Abandoned alternatives must not leave nodes behind in the arena.
func TestBacktrackingTruncatesArena(t *testing.T) {
	tests := []struct {
		src                          string
		decls, types, exprs, stmts int
	}{
		{"int x = 1;", 1, 1, 1, 0},
		{"int f() { y--; }", 1, 1, 2, 2},
		{"struct S { int x; }", 2, 1, 0, 0},
		{"void f() { x = (a) - b; }", 1, 1, 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			f := parseFile(t, tt.src)
			if f.NumDecls() != tt.decls || f.NumTypes() != tt.types ||
				f.NumExprs() != tt.exprs || f.NumStmts() != tt.stmts {
				t.Errorf("arena = %d/%d/%d/%d, want %d/%d/%d/%d",
					f.NumDecls(), f.NumTypes(), f.NumExprs(), f.NumStmts(),
					tt.decls, tt.types, tt.exprs, tt.stmts)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Errors

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantPos string
		wantMsg string
	}{
		{"missing_semi_eof", "int x = 5", "test.mc:1:10", "expected ';', found end of file"},
		{"missing_semi_return", "int f() { return 1 }", "test.mc:1:20", "expected ';', found '}'"},
		{"missing_name", "int 5;", "test.mc:1:5", "expected name, found int literal"},
		{"typedef_no_name", "typedef int;", "test.mc:1:12", "expected name, found ';'"},
		{"missing_rhs", "int f() { x = ; }", "test.mc:1:15", "expected name, literal or '(', found ';'"},
		{"if_no_paren", "int f() { if x { } }", "test.mc:1:14", "expected '(', found name x"},
		{"bad_params", "int f( { }", "test.mc:1:8", "unexpected '{'"},
		{"unclosed_struct", "struct S { int x; ", "test.mc:1:19", "unexpected end of file"},
		{"stray_token", "int x; }", "test.mc:1:8", "unexpected '}'"},
		{"lexical", "int x = @;", "test.mc:1:9", "unexpected character '@'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseError(t, tt.src)
			if got := err.Pos.String(); got != tt.wantPos {
				t.Errorf("pos = %s, want %s", got, tt.wantPos)
			}
			if err.Msg != tt.wantMsg {
				t.Errorf("msg = %q, want %q", err.Msg, tt.wantMsg)
			}
		})
	}
}

func TestParseStopsAtFirstError(t *testing.T) {
	var msgs []string
	_, err := Parse("test.mc", strings.NewReader("int x = ;\nint y = ;\n"), func(_ Pos, msg string) {
		msgs = append(msgs, msg)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(msgs) != 1 {
		t.Errorf("got %d errors, want 1: %v", len(msgs), msgs)
	}
	if !strings.Contains(err.Error(), "test.mc:1:") {
		t.Errorf("error %q not on line 1", err)
	}
}

func TestNewParserAppendsEOF(t *testing.T) {
	pos := func(col uint32) Pos { return NewPos("t.mc", 1, col) }
	toks := []Token{
		{Kind: Int, Text: "int", Pos: pos(1), End: pos(4)},
		{Kind: Name, Text: "x", Pos: pos(5), End: pos(6)},
		{Kind: Semi, Text: ";", Pos: pos(6), End: pos(7)},
	}
	f, err := NewParser("t.mc", toks, nil).Parse()
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Decls) != 1 {
		t.Errorf("got %d decls, want 1", len(f.Decls))
	}
	if len(toks) != 3 {
		t.Errorf("caller's token slice was modified")
	}
}

// ----------------------------------------------------------------------------
// Walk and printing

func TestWalk(t *testing.T) {
	src := `struct S { int x; }
int f(S* p, int n) {
	int s = 0;
	while (n > 0) { s += p->x; n--; }
	return s;
}`
	f := parseFile(t, src)

	counts := make(map[string]int)
	Walk(f, func(n Node) bool {
		switch n.(type) {
		case Decl:
			counts["decl"]++
		case Stmt:
			counts["stmt"]++
		case Expr:
			counts["expr"]++
		case TypeExpr:
			counts["type"]++
		}
		return true
	})

	// S, x, f, params, p, n, s
	if counts["decl"] != 7 {
		t.Errorf("decls = %d, want 7", counts["decl"])
	}
	// body, decl, while, block, +=, n--, return
	if counts["stmt"] != 7 {
		t.Errorf("stmts = %d, want 7", counts["stmt"])
	}
}

func TestInspectSkipsChildren(t *testing.T) {
	f := parseFile(t, "int f() { return 1 + 2; }")
	var n int
	Inspect(f, f.Decls[0], func(node Node) bool {
		n++
		_, isStmt := node.(*ReturnStmt)
		return !isStmt
	})
	// FuncDecl, result type, body, return
	if n != 4 {
		t.Errorf("visited %d nodes, want 4", n)
	}
}

func TestFprint(t *testing.T) {
	f := parseFile(t, "int f(int a) { return a + 1; }")
	var buf bytes.Buffer
	Fprint(&buf, f)
	out := buf.String()
	for _, want := range []string{"FuncDecl test.mc:1:1 f", "Result: int", "VarDecl", "ReturnStmt", "BinaryExpr", `Name test.mc:1:23 "a"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	FprintTyped(&buf, f, func(ExprID) string { return "int" })
	if !strings.Contains(buf.String(), "BinaryExpr test.mc:1:23 + : int") {
		t.Errorf("typed output missing annotation:\n%s", buf.String())
	}
}

func TestFprintJSON(t *testing.T) {
	f := parseFile(t, "int x = 5; void g() { }")
	var buf bytes.Buffer
	if err := FprintJSON(&buf, f, nil); err != nil {
		t.Fatal(err)
	}

	var out struct {
		Node  string `json:"node"`
		Decls []struct {
			Node string `json:"node"`
			Name string `json:"name"`
		} `json:"decls"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Node != "File" || len(out.Decls) != 2 {
		t.Fatalf("got %+v", out)
	}
	if out.Decls[0].Node != "VarDecl" || out.Decls[0].Name != "x" {
		t.Errorf("decl 0 = %+v", out.Decls[0])
	}
	if out.Decls[1].Node != "FuncDecl" || out.Decls[1].Name != "g" {
		t.Errorf("decl 1 = %+v", out.Decls[1])
	}
}

func TestParseGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/parse_*.mc")
	if err != nil {
		t.Fatal(err)
	}

	for _, name := range files {
		t.Run(filepath.Base(name), func(t *testing.T) {
			src, err := os.ReadFile(name)
			if err != nil {
				t.Fatal(err)
			}
			f, err := Parse(name, bytes.NewReader(src), nil)
			if err != nil {
				t.Fatal(err)
			}

			var buf bytes.Buffer
			Fprint(&buf, f)
			got := buf.String()

			golden := strings.TrimSuffix(name, ".mc") + ".ast.golden"
			if os.Getenv("UPDATE_GOLDEN") != "" {
				if err := os.WriteFile(golden, []byte(got), 0644); err != nil {
					t.Fatal(err)
				}
				return
			}

			want, err := os.ReadFile(golden)
			if err != nil {
				if os.IsNotExist(err) {
					if err := os.WriteFile(golden, []byte(got), 0644); err != nil {
						t.Fatal(err)
					}
					t.Logf("created golden file: %s", golden)
					return
				}
				t.Fatal(err)
			}
			if got != string(want) {
				t.Errorf("AST mismatch for %s\nRun with UPDATE_GOLDEN=1 to update", name)
			}
		})
	}
}

func FuzzParse(f *testing.F) {
	seeds := []string{
		"int x = 5;",
		"int f(int a) { return a + 1; }",
		"struct S { int x; }; S* p;",
		"void f() { if (a) { b = (int) c; } else while (d) e--; }",
		"int f( {",
		"typedef",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, src string) {
		file, err := Parse("fuzz.mc", strings.NewReader(src), nil)
		if err == nil && file == nil {
			t.Fatal("nil file without error")
		}
		if err != nil && file != nil {
			t.Fatal("file returned with error")
		}
	})
}
