package syntax

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrorHandler is called for every lexical or syntax error.
type ErrorHandler func(pos Pos, msg string)

// source is a character reader with position tracking.
type source struct {
	buf      []byte
	filename string
	line     uint32 // line of ch (1-based)
	col      uint32 // column of ch (1-based, byte offset)
	ch       rune   // current character, -1 at EOF
	offs     int    // byte offset of the character after ch
	errh     ErrorHandler
}

func (s *source) init(filename string, src io.Reader, errh ErrorHandler) {
	s.filename = filename
	s.line, s.col = 1, 0
	s.ch = -1
	s.errh = errh

	buf, err := io.ReadAll(src)
	if err != nil {
		s.errorAt(s.pos(), "error reading source: "+err.Error())
		return
	}
	s.buf = buf
	s.nextch()
}

// nextch advances to the next character. Line and column always describe
// the position of s.ch after the call.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	if s.offs >= len(s.buf) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRune(s.buf[s.offs:])
	if r == utf8.RuneError && width == 1 {
		s.errorAt(s.pos(), "invalid UTF-8 encoding")
	}
	s.ch = r
	s.offs += width
}

// peek returns the character after s.ch without consuming anything.
func (s *source) peek() rune {
	if s.offs >= len(s.buf) {
		return -1
	}
	r, _ := utf8.DecodeRune(s.buf[s.offs:])
	return r
}

func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

func (s *source) errorAt(pos Pos, msg string) {
	if s.errh != nil {
		s.errh(pos, msg)
	}
}

// Scanner turns MiniC source text into tokens. It is the reference
// implementation of the token stream; the parser only needs []Token.
type Scanner struct {
	source

	tok    Kind
	lit    string
	kind   LitKind
	tokPos Pos

	litBuf strings.Builder
}

// NewScanner creates a Scanner for src. errh may be nil.
func NewScanner(filename string, src io.Reader, errh ErrorHandler) *Scanner {
	s := &Scanner{}
	s.source.init(filename, src, errh)
	return s
}

// Tokenize scans the whole of src and returns the token stream,
// terminated by exactly one EOF token.
func Tokenize(filename string, src io.Reader, errh ErrorHandler) []Token {
	s := NewScanner(filename, src, errh)
	var toks []Token
	for {
		s.Next()
		toks = append(toks, s.Token())
		if s.tok == EOF {
			return toks
		}
	}
}

// Token returns the current token.
func (s *Scanner) Token() Token {
	t := Token{Kind: s.tok, Text: s.lit, Pos: s.tokPos, End: s.pos()}
	if s.tok == Literal {
		t.Lit = s.kind
	}
	return t
}

// Next advances to the next token.
func (s *Scanner) Next() {
redo:
	for isWhitespace(s.ch) {
		s.nextch()
	}

	s.tokPos = s.pos()
	s.lit = ""

	switch {
	case s.ch < 0:
		s.tok = EOF

	case isLetter(s.ch):
		s.scanIdent()

	case isDigit(s.ch), s.ch == '.' && isDigit(s.peek()):
		s.scanNumber()

	case s.ch == '"':
		s.scanString()

	case s.ch == '\'':
		s.scanChar()

	case s.ch == '/' && (s.peek() == '/' || s.peek() == '*'):
		s.skipComment()
		goto redo

	case isOperatorStart(s.ch):
		s.scanOperator()

	default:
		s.lit = string(s.ch)
		s.errorAt(s.tokPos, fmt.Sprintf("unexpected character %q", s.ch))
		s.tok = Error
		s.nextch()
	}
}

func (s *Scanner) scanIdent() {
	s.litBuf.Reset()
	for isLetter(s.ch) || isDigit(s.ch) {
		s.litBuf.WriteRune(s.ch)
		s.nextch()
	}
	s.lit = s.litBuf.String()

	switch s.lit {
	case "true", "false":
		s.tok = Literal
		s.kind = BoolLit
	default:
		s.tok = LookupKeyword(s.lit)
	}
}

func (s *Scanner) scanNumber() {
	s.litBuf.Reset()
	s.tok = Literal
	s.kind = IntLit

	if s.ch == '0' && lower(s.peek()) == 'x' {
		s.takeLit()
		s.takeLit()
		if !isHexDigit(s.ch) {
			s.errorAt(s.pos(), "invalid hex digit")
			s.tok = Error
		}
		for isHexDigit(s.ch) {
			s.takeLit()
		}
		s.lit = s.litBuf.String()
		return
	}

	for isDigit(s.ch) {
		s.takeLit()
	}
	if s.ch == '.' {
		s.kind = FloatLit
		s.takeLit()
		for isDigit(s.ch) {
			s.takeLit()
		}
	}
	if lower(s.ch) == 'e' {
		s.kind = FloatLit
		s.takeLit()
		if s.ch == '+' || s.ch == '-' {
			s.takeLit()
		}
		if !isDigit(s.ch) {
			s.errorAt(s.pos(), "exponent has no digits")
			s.tok = Error
		}
		for isDigit(s.ch) {
			s.takeLit()
		}
	}
	s.lit = s.litBuf.String()

	if s.kind == IntLit && len(s.lit) > 1 && s.lit[0] == '0' {
		for _, r := range s.lit[1:] {
			if !isOctalDigit(r) {
				s.errorAt(s.tokPos, "invalid digit in octal literal "+s.lit)
				s.tok = Error
				return
			}
		}
	}
}

func (s *Scanner) takeLit() {
	s.litBuf.WriteRune(s.ch)
	s.nextch()
}

// scanString scans a string literal; the token text is the decoded content.
func (s *Scanner) scanString() {
	s.nextch() // opening "
	s.litBuf.Reset()
	s.tok = Literal
	s.kind = StringLit

	for {
		switch {
		case s.ch == '"':
			s.nextch()
			s.lit = s.litBuf.String()
			return
		case s.ch == '\\':
			if r, ok := s.scanEscape('"'); ok {
				s.litBuf.WriteRune(r)
			}
		case s.ch == '\n' || s.ch < 0:
			s.errorAt(s.tokPos, "string literal not terminated")
			s.lit = s.litBuf.String()
			s.tok = Error
			return
		default:
			s.takeLit()
		}
	}
}

// scanChar scans a character literal holding exactly one character.
func (s *Scanner) scanChar() {
	s.nextch() // opening '
	s.tok = Literal
	s.kind = CharLit

	var r rune
	switch s.ch {
	case '\'', '\n', -1:
		s.errorAt(s.tokPos, "empty character literal")
		s.tok = Error
		if s.ch == '\'' {
			s.nextch()
		}
		return
	case '\\':
		var ok bool
		if r, ok = s.scanEscape('\''); !ok {
			s.tok = Error
		}
	default:
		r = s.ch
		s.nextch()
	}

	if s.ch != '\'' {
		s.errorAt(s.tokPos, "character literal not terminated")
		s.tok = Error
		return
	}
	s.nextch()
	s.lit = string(r)
}

func (s *Scanner) scanEscape(quote rune) (rune, bool) {
	s.nextch() // backslash

	var r rune
	switch s.ch {
	case 'n':
		r = '\n'
	case 't':
		r = '\t'
	case 'r':
		r = '\r'
	case '0':
		r = 0
	case '\\':
		r = '\\'
	case quote:
		r = quote
	case 'x':
		s.nextch()
		var val rune
		for i := 0; i < 2; i++ {
			if !isHexDigit(s.ch) {
				s.errorAt(s.pos(), "invalid hex escape")
				return 0, false
			}
			val = val*16 + hexValue(s.ch)
			s.nextch()
		}
		return val, true
	default:
		s.errorAt(s.pos(), fmt.Sprintf("unknown escape sequence \\%c", s.ch))
		s.nextch()
		return 0, false
	}
	s.nextch()
	return r, true
}

func (s *Scanner) skipComment() {
	s.nextch() // first /
	if s.ch == '/' {
		for s.ch != '\n' && s.ch >= 0 {
			s.nextch()
		}
		return
	}

	start := s.tokPos
	s.nextch() // *
	for s.ch >= 0 {
		if s.ch == '*' && s.peek() == '/' {
			s.nextch()
			s.nextch()
			return
		}
		s.nextch()
	}
	s.errorAt(start, "comment not terminated")
}

// scanOperator scans an operator or delimiter, preferring the longest match.
func (s *Scanner) scanOperator() {
	ch := s.ch
	s.nextch()

	// two selects the two-character form when the next character is next.
	two := func(next rune, long, short Kind) Kind {
		if s.ch == next {
			s.nextch()
			return long
		}
		return short
	}

	switch ch {
	case '+':
		switch s.ch {
		case '+':
			s.nextch()
			s.tok = Inc
		case '=':
			s.nextch()
			s.tok = AddAssign
		default:
			s.tok = Add
		}
	case '-':
		switch s.ch {
		case '-':
			s.nextch()
			s.tok = Dec
		case '=':
			s.nextch()
			s.tok = SubAssign
		case '>':
			s.nextch()
			s.tok = Arrow
		default:
			s.tok = Sub
		}
	case '*':
		s.tok = two('=', MulAssign, Mul)
	case '/':
		s.tok = two('=', QuoAssign, Quo)
	case '%':
		s.tok = two('=', RemAssign, Rem)
	case '=':
		s.tok = two('=', Eql, Assign)
	case '!':
		s.tok = two('=', Neq, Not)
	case '<':
		s.tok = two('=', Leq, Lss)
	case '>':
		s.tok = two('=', Geq, Gtr)
	case '&':
		s.tok = two('&', AndAnd, And)
	case '|':
		s.tok = two('|', OrOr, Or)
	case '^':
		s.tok = Xor
	case '~':
		s.tok = Tilde
	case '(':
		s.tok = Lparen
	case ')':
		s.tok = Rparen
	case '{':
		s.tok = Lbrace
	case '}':
		s.tok = Rbrace
	case '[':
		s.tok = Lbrack
	case ']':
		s.tok = Rbrack
	case '.':
		s.tok = Dot
	case ',':
		s.tok = Comma
	case ';':
		s.tok = Semi
	case ':':
		s.tok = Colon
	case '?':
		s.tok = Question
	}
	s.lit = s.tok.String()
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_'
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || 'a' <= lower(r) && lower(r) <= 'f'
}

func isOctalDigit(r rune) bool {
	return '0' <= r && r <= '7'
}

func hexValue(r rune) rune {
	if isDigit(r) {
		return r - '0'
	}
	return lower(r) - 'a' + 10
}

// lower maps ASCII upper-case letters to lower case and leaves '0'-'9'
// and the other characters we compare against unchanged.
func lower(r rune) rune {
	return ('a' - 'A') | r
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isOperatorStart(r rune) bool {
	switch r {
	case '+', '-', '*', '/', '%', '=', '!', '<', '>', '&', '|', '^', '~',
		'(', ')', '{', '}', '[', ']', '.', ',', ';', ':', '?':
		return true
	}
	return false
}
