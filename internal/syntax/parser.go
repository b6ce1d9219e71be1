package syntax

import (
	"io"
	"strings"
)

// SyntaxError represents a syntax error.
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// Parser is a backtracking recursive-descent parser over a token slice.
//
// Every rule is a probe: it records a mark, tries to match, and on failure
// resets to the mark and reports false. Resetting also truncates the arena,
// so nodes of an abandoned alternative never survive. The parser is not
// memoized; deeply nested ambiguous input can take exponential time.
type Parser struct {
	toks []Token
	cur  int
	file *File
	errh ErrorHandler

	fn DeclID // innermost enclosing function

	// Farthest position at which a mandatory token was missing, and
	// the kinds that would have been accepted there.
	failAt   int
	expected []Kind
}

// NewParser creates a Parser for toks. If toks does not end with an EOF
// token one is appended.
func NewParser(filename string, toks []Token, errh ErrorHandler) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Kind != EOF {
		var pos Pos
		if n > 0 {
			pos = toks[n-1].End
		} else {
			pos = NewPos(filename, 1, 1)
		}
		toks = append(toks[:n:n], Token{Kind: EOF, Pos: pos, End: pos})
	}
	return &Parser{
		toks:   toks,
		file:   &File{Filename: filename},
		errh:   errh,
		fn:     NoDecl,
		failAt: -1,
	}
}

// Parse scans and parses src. The first lexical or syntax error aborts.
func Parse(filename string, src io.Reader, errh ErrorHandler) (*File, error) {
	var first *SyntaxError
	toks := Tokenize(filename, src, func(pos Pos, msg string) {
		if first == nil {
			first = &SyntaxError{Pos: pos, Msg: msg}
			if errh != nil {
				errh(pos, msg)
			}
		}
	})
	if first != nil {
		return nil, first
	}
	return NewParser(filename, toks, errh).Parse()
}

// Parse consumes the whole token stream as a sequence of top-level
// declarations. It stops at the first declaration that does not parse.
func (p *Parser) Parse() (*File, error) {
	for !p.at(EOF) {
		p.failAt, p.expected = -1, p.expected[:0]
		d, ok := p.decl()
		if !ok {
			return nil, p.fail()
		}
		p.file.Decls = append(p.file.Decls, d)
	}
	return p.file, nil
}

// ----------------------------------------------------------------------------
// Token navigation

func (p *Parser) tok() Token { return p.toks[p.cur] }

func (p *Parser) peek(n int) Token {
	if i := p.cur + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

// next advances the cursor. It never moves past EOF.
func (p *Parser) next() {
	if p.cur < len(p.toks)-1 {
		p.cur++
	}
}

// at reports whether the current token has kind k.
func (p *Parser) at(k Kind) bool { return p.toks[p.cur].Kind == k }

// accept consumes an optional token.
func (p *Parser) accept(k Kind) bool {
	if p.at(k) {
		p.next()
		return true
	}
	return false
}

// want consumes a mandatory token, recording it as expected on failure.
func (p *Parser) want(k Kind) bool {
	if p.accept(k) {
		return true
	}
	p.miss(k)
	return false
}

// name consumes a mandatory identifier.
func (p *Parser) name() (string, bool) {
	text := p.tok().Text
	if !p.want(Name) {
		return "", false
	}
	return text, true
}

// prevEnd is the end of the last consumed token.
func (p *Parser) prevEnd() Pos {
	if p.cur == 0 {
		return p.toks[0].Pos
	}
	return p.toks[p.cur-1].End
}

// ----------------------------------------------------------------------------
// Backtracking

type mark struct {
	cur   int
	arena arenaMark
}

func (p *Parser) mark() mark {
	return mark{p.cur, p.file.mark()}
}

func (p *Parser) reset(m mark) {
	p.cur = m.cur
	p.file.truncate(m.arena)
}

// ----------------------------------------------------------------------------
// Error handling

// miss records that one of kinds was required at the current position.
func (p *Parser) miss(kinds ...Kind) {
	switch {
	case p.cur > p.failAt:
		p.failAt = p.cur
		p.expected = append(p.expected[:0], kinds...)
	case p.cur == p.failAt:
	next:
		for _, k := range kinds {
			for _, e := range p.expected {
				if e == k {
					continue next
				}
			}
			p.expected = append(p.expected, k)
		}
	}
}

// fail builds the error for the farthest recorded failure.
func (p *Parser) fail() error {
	at := p.failAt
	if at < 0 {
		at = p.cur
	}
	found := p.toks[at]

	var msg string
	if n := len(p.expected); n == 0 || n > 3 {
		msg = "unexpected " + found.describe()
	} else {
		names := make([]string, n)
		for i, k := range p.expected {
			names[i] = describeKind(k)
		}
		msg = "expected " + joinOr(names) + ", found " + found.describe()
	}

	if p.errh != nil {
		p.errh(found.Pos, msg)
	}
	return &SyntaxError{Pos: found.Pos, Msg: msg}
}

func describeKind(k Kind) string {
	switch k {
	case Name:
		return "name"
	case Literal:
		return "literal"
	case EOF:
		return "end of file"
	}
	return "'" + k.String() + "'"
}

func joinOr(s []string) string {
	if len(s) <= 2 {
		return strings.Join(s, " or ")
	}
	return strings.Join(s[:len(s)-1], ", ") + " or " + s[len(s)-1]
}

// ----------------------------------------------------------------------------
// Declarations

// decl tries, in order, a function, a variable, a typedef and a struct.
func (p *Parser) decl() (DeclID, bool) {
	if d, ok := p.funcDecl(); ok {
		return d, true
	}
	if d, ok := p.varDecl(); ok {
		return d, true
	}
	if d, ok := p.typeDecl(); ok {
		return d, true
	}
	return p.structDecl()
}

// funcDecl parses Type Name ( [Params] ) ( ; | Block ).
func (p *Parser) funcDecl() (DeclID, bool) {
	m := p.mark()
	pos := p.tok().Pos

	// Reserve the slot first so return statements in the body can
	// refer to it.
	fn := &FuncDecl{Params: NoDecl, Body: NoStmt}
	id := p.file.newDecl(fn)

	var ok bool
	if fn.Result, ok = p.typ(); !ok {
		p.reset(m)
		return NoDecl, false
	}
	if fn.Name, ok = p.name(); !ok || !p.want(Lparen) {
		p.reset(m)
		return NoDecl, false
	}
	if !p.accept(Rparen) {
		if fn.Params, ok = p.parDecl(); !ok {
			p.miss(Rparen)
			p.reset(m)
			return NoDecl, false
		}
		if !p.want(Rparen) {
			p.reset(m)
			return NoDecl, false
		}
	}

	if !p.accept(Semi) {
		p.miss(Semi)
		outer := p.fn
		p.fn = id
		fn.Body, ok = p.blockStmt()
		p.fn = outer
		if !ok {
			p.reset(m)
			return NoDecl, false
		}
	}

	fn.span(pos, p.prevEnd())
	return id, true
}

// parDecl parses Type Name {, Type Name}.
func (p *Parser) parDecl() (DeclID, bool) {
	m := p.mark()
	pos := p.tok().Pos
	par := &ParDecl{}
	for {
		d, ok := p.param()
		if !ok {
			p.reset(m)
			return NoDecl, false
		}
		par.Params = append(par.Params, d)
		if !p.accept(Comma) {
			break
		}
	}
	par.span(pos, p.prevEnd())
	return p.file.newDecl(par), true
}

func (p *Parser) param() (DeclID, bool) {
	pos := p.tok().Pos
	t, ok := p.typ()
	if !ok {
		return NoDecl, false
	}
	name, ok := p.name()
	if !ok {
		return NoDecl, false
	}
	v := &VarDecl{Name: name, Type: t, Init: NoExpr}
	v.span(pos, p.prevEnd())
	return p.file.newDecl(v), true
}

// varDecl parses Type Name [= Expr] ;.
func (p *Parser) varDecl() (DeclID, bool) {
	m := p.mark()
	pos := p.tok().Pos

	t, ok := p.typ()
	if !ok {
		p.reset(m)
		return NoDecl, false
	}
	name, ok := p.name()
	if !ok {
		p.reset(m)
		return NoDecl, false
	}
	init := NoExpr
	if p.accept(Assign) {
		if init, ok = p.expr(); !ok {
			p.reset(m)
			return NoDecl, false
		}
	}
	if !p.want(Semi) {
		p.reset(m)
		return NoDecl, false
	}

	v := &VarDecl{Name: name, Type: t, Init: init}
	v.span(pos, p.prevEnd())
	return p.file.newDecl(v), true
}

// typeDecl parses typedef Type Name ;.
func (p *Parser) typeDecl() (DeclID, bool) {
	if !p.at(Typedef) {
		return NoDecl, false
	}
	m := p.mark()
	pos := p.tok().Pos
	p.next()

	t, ok := p.typ()
	if !ok {
		p.reset(m)
		return NoDecl, false
	}
	name, ok := p.name()
	if !ok || !p.want(Semi) {
		p.reset(m)
		return NoDecl, false
	}

	d := &TypeDecl{Name: name, Type: t}
	d.span(pos, p.prevEnd())
	return p.file.newDecl(d), true
}

// structDecl parses struct Name { {VarDecl} } [;].
func (p *Parser) structDecl() (DeclID, bool) {
	m := p.mark()
	pos := p.tok().Pos
	if !p.want(Struct) {
		return NoDecl, false
	}

	name, ok := p.name()
	if !ok || !p.want(Lbrace) {
		p.reset(m)
		return NoDecl, false
	}

	s := &StructDecl{Name: name}
	for !p.accept(Rbrace) {
		f, ok := p.varDecl()
		if !ok {
			p.miss(Rbrace)
			p.reset(m)
			return NoDecl, false
		}
		s.Fields = append(s.Fields, f)
	}
	p.accept(Semi)

	s.span(pos, p.prevEnd())
	return p.file.newDecl(s), true
}

// ----------------------------------------------------------------------------
// Types

// typ parses a base type followed by any number of * and [Expr] suffixes.
func (p *Parser) typ() (TypeID, bool) {
	m := p.mark()
	pos := p.tok().Pos

	var t TypeID
	switch tok := p.tok(); tok.Kind {
	case Int, Char, Bool, Void, Float:
		p.next()
		a := &AtomType{Kind: tok.Kind}
		a.span(pos, p.prevEnd())
		t = p.file.newType(a)
	case Name:
		p.next()
		n := &NamedType{Name: tok.Text, Decl: NoDecl}
		n.span(pos, p.prevEnd())
		t = p.file.newType(n)
	default:
		p.miss(Int, Char, Bool, Void, Float, Name)
		return NoType, false
	}

	for {
		switch {
		case p.accept(Mul):
			ptr := &PointerType{Elem: t}
			ptr.span(pos, p.prevEnd())
			t = p.file.newType(ptr)

		case p.accept(Lbrack):
			n, ok := p.expr()
			if !ok || !p.want(Rbrack) {
				p.reset(m)
				return NoType, false
			}
			arr := &ArrayType{Elem: t, Len: n}
			arr.span(pos, p.prevEnd())
			t = p.file.newType(arr)

		default:
			return t, true
		}
	}
}

// ----------------------------------------------------------------------------
// Statements

// stmt tries assignment, if, while, return, local variable, expression
// statement and block, in that order.
func (p *Parser) stmt() (StmtID, bool) {
	if s, ok := p.assignStmt(); ok {
		return s, true
	}
	if s, ok := p.ifStmt(); ok {
		return s, true
	}
	if s, ok := p.whileStmt(); ok {
		return s, true
	}
	if s, ok := p.returnStmt(); ok {
		return s, true
	}
	if s, ok := p.declStmt(); ok {
		return s, true
	}
	if s, ok := p.exprStmt(); ok {
		return s, true
	}
	return p.blockStmt()
}

func (p *Parser) assignStmt() (StmtID, bool) {
	m := p.mark()
	pos := p.tok().Pos

	lhs, ok := p.expr()
	if !ok {
		p.reset(m)
		return NoStmt, false
	}
	op := p.tok().Kind
	if !op.IsAssignOp() {
		p.reset(m)
		return NoStmt, false
	}
	p.next()
	rhs, ok := p.expr()
	if !ok || !p.want(Semi) {
		p.reset(m)
		return NoStmt, false
	}

	s := &AssignStmt{Op: op, LHS: lhs, RHS: rhs}
	s.span(pos, p.prevEnd())
	return p.file.newStmt(s), true
}

// cond parses ( Expr ).
func (p *Parser) cond() (ExprID, bool) {
	if !p.want(Lparen) {
		return NoExpr, false
	}
	x, ok := p.expr()
	if !ok || !p.want(Rparen) {
		return NoExpr, false
	}
	return x, true
}

func (p *Parser) ifStmt() (StmtID, bool) {
	if !p.at(If) {
		return NoStmt, false
	}
	m := p.mark()
	pos := p.tok().Pos
	p.next()

	s := &IfStmt{Else: NoStmt}
	var ok bool
	if s.Cond, ok = p.cond(); !ok {
		p.reset(m)
		return NoStmt, false
	}
	if s.Then, ok = p.stmt(); !ok {
		p.reset(m)
		return NoStmt, false
	}
	if p.accept(Else) {
		if s.Else, ok = p.stmt(); !ok {
			p.reset(m)
			return NoStmt, false
		}
	}

	s.span(pos, p.prevEnd())
	return p.file.newStmt(s), true
}

func (p *Parser) whileStmt() (StmtID, bool) {
	if !p.at(While) {
		return NoStmt, false
	}
	m := p.mark()
	pos := p.tok().Pos
	p.next()

	s := &WhileStmt{}
	var ok bool
	if s.Cond, ok = p.cond(); !ok {
		p.reset(m)
		return NoStmt, false
	}
	if s.Body, ok = p.stmt(); !ok {
		p.reset(m)
		return NoStmt, false
	}

	s.span(pos, p.prevEnd())
	return p.file.newStmt(s), true
}

func (p *Parser) returnStmt() (StmtID, bool) {
	if !p.at(Return) {
		return NoStmt, false
	}
	m := p.mark()
	pos := p.tok().Pos
	p.next()

	s := &ReturnStmt{Result: NoExpr, Func: p.fn}
	if !p.accept(Semi) {
		p.miss(Semi)
		var ok bool
		if s.Result, ok = p.expr(); !ok || !p.want(Semi) {
			p.reset(m)
			return NoStmt, false
		}
	}

	s.span(pos, p.prevEnd())
	return p.file.newStmt(s), true
}

func (p *Parser) declStmt() (StmtID, bool) {
	d, ok := p.varDecl()
	if !ok {
		return NoStmt, false
	}
	v := p.file.Decl(d)
	s := &DeclStmt{Decl: d}
	s.span(v.Pos(), v.End())
	return p.file.newStmt(s), true
}

func (p *Parser) exprStmt() (StmtID, bool) {
	m := p.mark()
	pos := p.tok().Pos

	x, ok := p.expr()
	if !ok || !p.want(Semi) {
		p.reset(m)
		return NoStmt, false
	}

	s := &ExprStmt{X: x}
	s.span(pos, p.prevEnd())
	return p.file.newStmt(s), true
}

// blockStmt parses { {Stmt} }.
func (p *Parser) blockStmt() (StmtID, bool) {
	m := p.mark()
	pos := p.tok().Pos
	if !p.want(Lbrace) {
		return NoStmt, false
	}

	b := &BlockStmt{}
	for !p.accept(Rbrace) {
		s, ok := p.stmt()
		if !ok {
			p.miss(Rbrace)
			p.reset(m)
			return NoStmt, false
		}
		b.Stmts = append(b.Stmts, s)
	}

	b.span(pos, p.prevEnd())
	return p.file.newStmt(b), true
}

// ----------------------------------------------------------------------------
// Expressions
//
// Binary levels, loosest first. Each level is right-recursive:
//
//	level := next [op level]
//
// so a - b - c groups as a - (b - c).

var binaryLevels = [...][]Kind{
	{AndAnd, OrOr},
	{Or, And, Xor},
	{Eql, Neq, Lss, Leq, Gtr, Geq},
	{Add, Sub},
	{Mul, Quo, Rem},
}

func (p *Parser) expr() (ExprID, bool) {
	return p.binary(0)
}

func (p *Parser) binary(level int) (ExprID, bool) {
	if level == len(binaryLevels) {
		return p.prefix()
	}

	m := p.mark()
	x, ok := p.binary(level + 1)
	if !ok {
		return NoExpr, false
	}

	op := p.tok().Kind
	if !isOneOf(op, binaryLevels[level]) {
		return x, true
	}
	p.next()

	y, ok := p.binary(level)
	if !ok {
		p.reset(m)
		return NoExpr, false
	}

	b := &BinaryExpr{Op: op, X: x, Y: y}
	b.span(p.file.Expr(x).Pos(), p.file.Expr(y).End())
	return p.file.newExpr(b), true
}

func isOneOf(k Kind, set []Kind) bool {
	for _, s := range set {
		if k == s {
			return true
		}
	}
	return false
}

// prefix parses a unary operator applied to a prefix expression, a cast,
// or a postfix expression.
func (p *Parser) prefix() (ExprID, bool) {
	pos := p.tok().Pos

	switch op := p.tok().Kind; op {
	case Add, Sub, Inc, Dec, Not, Tilde, Mul, And:
		m := p.mark()
		p.next()
		x, ok := p.prefix()
		if !ok {
			p.reset(m)
			return NoExpr, false
		}
		e := &PrefixExpr{Op: op, X: x}
		e.span(pos, p.file.Expr(x).End())
		return p.file.newExpr(e), true

	case Lparen:
		if x, ok := p.cast(); ok {
			return x, true
		}
	}

	return p.postfix()
}

// cast parses ( Type ) Prefix. When the target also reads as an
// expression (a name, possibly indexed) the operand must start with a token
// that cannot continue a binary expression, so that (a) - b and (a[0]) - b
// stay subtractions.
func (p *Parser) cast() (ExprID, bool) {
	m := p.mark()
	pos := p.tok().Pos
	p.next()

	t, ok := p.typ()
	if !ok || !p.want(Rparen) {
		p.reset(m)
		return NoExpr, false
	}
	if p.exprLike(t) {
		switch p.tok().Kind {
		case Name, Literal, Lparen, Not, Tilde:
		default:
			p.reset(m)
			return NoExpr, false
		}
	}

	x, ok := p.prefix()
	if !ok {
		p.reset(m)
		return NoExpr, false
	}

	c := &CastExpr{Type: t, X: x}
	c.span(pos, p.file.Expr(x).End())
	return p.file.newExpr(c), true
}

// exprLike reports whether type t is a name followed only by [Expr]
// suffixes. A pointer suffix cannot appear in an expression.
func (p *Parser) exprLike(t TypeID) bool {
	for {
		switch x := p.file.Type(t).(type) {
		case *ArrayType:
			t = x.Elem
		case *NamedType:
			return true
		default:
			return false
		}
	}
}

// postfix parses a primary expression followed by ++, --, .Name, ->Name
// and [Expr] suffixes, applied left to right.
func (p *Parser) postfix() (ExprID, bool) {
	x, ok := p.primary()
	if !ok {
		return NoExpr, false
	}
	pos := p.file.Expr(x).Pos()

	for {
		e := &PostfixExpr{Op: p.tok().Kind, X: x, Index: NoExpr}
		m := p.mark()

		switch e.Op {
		case Inc, Dec:
			p.next()

		case Dot, Arrow:
			p.next()
			if e.Sel, ok = p.name(); !ok {
				p.reset(m)
				return x, true
			}

		case Lbrack:
			p.next()
			if e.Index, ok = p.expr(); !ok || !p.want(Rbrack) {
				p.reset(m)
				return x, true
			}

		default:
			return x, true
		}

		e.span(pos, p.prevEnd())
		x = p.file.newExpr(e)
	}
}

// primary parses a call, a literal, a name or a parenthesised expression.
func (p *Parser) primary() (ExprID, bool) {
	tok := p.tok()

	switch tok.Kind {
	case Name:
		if p.peek(1).Kind == Lparen {
			return p.call()
		}
		p.next()
		n := &NameExpr{Value: tok.Text, Decl: NoDecl}
		n.span(tok.Pos, tok.End)
		return p.file.newExpr(n), true

	case Literal:
		p.next()
		lit := &BasicLit{Kind: tok.Lit, Value: tok.Text}
		lit.span(tok.Pos, tok.End)
		return p.file.newExpr(lit), true

	case Lparen:
		m := p.mark()
		p.next()
		x, ok := p.expr()
		if !ok || !p.want(Rparen) {
			p.reset(m)
			return NoExpr, false
		}
		return x, true
	}

	p.miss(Name, Literal, Lparen)
	return NoExpr, false
}

// call parses Name ( [Expr {, Expr}] ).
func (p *Parser) call() (ExprID, bool) {
	m := p.mark()
	tok := p.tok()
	p.next() // name
	p.next() // (

	c := &CallExpr{Fun: tok.Text, Decl: NoDecl}
	if !p.accept(Rparen) {
		for {
			a, ok := p.expr()
			if !ok {
				if len(c.Args) == 0 {
					p.miss(Rparen)
				}
				p.reset(m)
				return NoExpr, false
			}
			c.Args = append(c.Args, a)
			if p.accept(Comma) {
				continue
			}
			if !p.want(Rparen) {
				p.miss(Comma)
				p.reset(m)
				return NoExpr, false
			}
			break
		}
	}

	c.span(tok.Pos, p.prevEnd())
	return p.file.newExpr(c), true
}
