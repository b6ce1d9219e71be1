// Package syntax implements the MiniC token model, a reference scanner and the
// backtracking parser that builds the arena-allocated AST.
package syntax

import "fmt"

// Kind is the kind of a lexical token.
type Kind uint

const (
	// Special tokens
	EOF   Kind = iota // end of stream
	Error             // lexical error

	// Literals
	Name    // identifier: foo, Point
	Literal // literal value (see LitKind)

	// Arithmetic operators
	Add // +
	Inc // ++
	Sub // -
	Dec // --
	Mul // *
	Quo // /
	Rem // %

	// Assignment operators
	Assign    // =
	AddAssign // +=
	SubAssign // -=
	MulAssign // *=
	QuoAssign // /=
	RemAssign // %=

	// Comparison operators
	Eql // ==
	Neq // !=
	Lss // <
	Leq // <=
	Gtr // >
	Geq // >=

	// Bitwise and logical operators
	And    // &
	Or     // |
	Xor    // ^
	Tilde  // ~
	Not    // !
	AndAnd // &&
	OrOr   // ||

	// Delimiters
	Lparen   // (
	Rparen   // )
	Lbrace   // {
	Rbrace   // }
	Lbrack   // [
	Rbrack   // ]
	Dot      // .
	Arrow    // ->
	Comma    // ,
	Semi     // ;
	Colon    // :
	Question // ?

	// Keywords
	Int
	Char
	Bool
	Void
	Float
	Struct
	Typedef
	Return
	If
	Else
	While
	For
	Break

	kindCount
)

var kindNames = [...]string{
	EOF:   "EOF",
	Error: "ERROR",

	Name:    "NAME",
	Literal: "LITERAL",

	Add: "+",
	Inc: "++",
	Sub: "-",
	Dec: "--",
	Mul: "*",
	Quo: "/",
	Rem: "%",

	Assign:    "=",
	AddAssign: "+=",
	SubAssign: "-=",
	MulAssign: "*=",
	QuoAssign: "/=",
	RemAssign: "%=",

	Eql: "==",
	Neq: "!=",
	Lss: "<",
	Leq: "<=",
	Gtr: ">",
	Geq: ">=",

	And:    "&",
	Or:     "|",
	Xor:    "^",
	Tilde:  "~",
	Not:    "!",
	AndAnd: "&&",
	OrOr:   "||",

	Lparen:   "(",
	Rparen:   ")",
	Lbrace:   "{",
	Rbrace:   "}",
	Lbrack:   "[",
	Rbrack:   "]",
	Dot:      ".",
	Arrow:    "->",
	Comma:    ",",
	Semi:     ";",
	Colon:    ":",
	Question: "?",

	Int:     "int",
	Char:    "char",
	Bool:    "bool",
	Void:    "void",
	Float:   "float",
	Struct:  "struct",
	Typedef: "typedef",
	Return:  "return",
	If:      "if",
	Else:    "else",
	While:   "while",
	For:     "for",
	Break:   "break",
}

// String returns the source spelling of an operator or keyword, or the
// upper-case class name for the other kinds.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("token(%d)", k)
}

// IsKeyword reports whether k is a keyword.
func (k Kind) IsKeyword() bool {
	return k >= Int && k <= Break
}

// IsOperator reports whether k is an operator or delimiter.
func (k Kind) IsOperator() bool {
	return k >= Add && k <= Question
}

// IsAssignOp reports whether k is one of the six assignment operators.
func (k Kind) IsAssignOp() bool {
	return k >= Assign && k <= RemAssign
}

// LitKind is the kind of a literal token.
type LitKind uint8

const (
	IntLit    LitKind = iota // 123, 0x1F, 017
	FloatLit                 // 3.14, 1e10
	CharLit                  // 'a', '\n'
	StringLit                // "hello"
	BoolLit                  // true, false
)

var litKindNames = [...]string{
	IntLit:    "int",
	FloatLit:  "float",
	CharLit:   "char",
	StringLit: "string",
	BoolLit:   "bool",
}

func (k LitKind) String() string {
	if k <= BoolLit {
		return litKindNames[k]
	}
	return fmt.Sprintf("LitKind(%d)", k)
}

var keywords = map[string]Kind{
	"int":     Int,
	"char":    Char,
	"bool":    Bool,
	"void":    Void,
	"float":   Float,
	"struct":  Struct,
	"typedef": Typedef,
	"return":  Return,
	"if":      If,
	"else":    Else,
	"while":   While,
	"for":     For,
	"break":   Break,
}

// LookupKeyword returns the keyword kind for ident, or Name.
// true and false are literals, not keywords; the scanner handles them.
func LookupKeyword(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Name
}

// Token is one element of the token stream consumed by the parser.
// Tokens are produced by a scanner and never modified afterwards.
type Token struct {
	Kind Kind
	Lit  LitKind // only meaningful when Kind == Literal
	Text string  // identifier name, literal text (strings and chars decoded)
	Pos  Pos     // position of the first character
	End  Pos     // position immediately after the last character
}

// String renders the token for debugging, e.g. NAME(x)@1:5.
func (t Token) String() string {
	switch t.Kind {
	case Name, Error:
		return fmt.Sprintf("%s(%s)@%d:%d", t.Kind, t.Text, t.Pos.line, t.Pos.col)
	case Literal:
		return fmt.Sprintf("%s(%q)@%d:%d", t.Lit, t.Text, t.Pos.line, t.Pos.col)
	}
	return fmt.Sprintf("%s@%d:%d", t.Kind, t.Pos.line, t.Pos.col)
}

// describe returns the token as it should appear in a diagnostic.
func (t Token) describe() string {
	switch t.Kind {
	case EOF:
		return "end of file"
	case Name:
		return "name " + t.Text
	case Literal:
		return t.Lit.String() + " literal"
	case Error:
		return "invalid token"
	}
	return "'" + t.Kind.String() + "'"
}
