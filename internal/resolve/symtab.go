package resolve

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/minic/internal/syntax"
)

// SymbolKind separates the value and type namespaces.
type SymbolKind uint8

const (
	ValueSymbol SymbolKind = iota // variables, parameters, fields, functions
	TypeSymbol                    // typedefs and structs
)

func (k SymbolKind) String() string {
	if k == TypeSymbol {
		return "type"
	}
	return "value"
}

// Symbol is one entry of the symbol table.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Depth int
	Decl  syntax.DeclID
}

// SymbolTable is a flat stack of symbols tagged with the scope depth they
// were declared at. Scopes are not separate tables: leaving a scope evicts
// every entry deeper than the enclosing depth.
//
// At most one entry exists per (name, kind, depth).
type SymbolTable struct {
	syms []Symbol
}

// Insert adds s unless an entry with the same name and kind already exists
// at s.Depth. In that case it returns the existing entry and false.
func (t *SymbolTable) Insert(s Symbol) (Symbol, bool) {
	for i := len(t.syms) - 1; i >= 0; i-- {
		e := t.syms[i]
		if e.Depth < s.Depth {
			break
		}
		if e.Depth == s.Depth && e.Kind == s.Kind && e.Name == s.Name {
			return e, false
		}
	}
	t.syms = append(t.syms, s)
	return s, true
}

// Lookup returns the innermost entry with the given name and kind,
// searching from the most recently inserted entry backward.
func (t *SymbolTable) Lookup(name string, kind SymbolKind) (Symbol, bool) {
	for i := len(t.syms) - 1; i >= 0; i-- {
		if e := t.syms[i]; e.Kind == kind && e.Name == name {
			return e, true
		}
	}
	return Symbol{}, false
}

// Evict removes every entry declared deeper than depth.
func (t *SymbolTable) Evict(depth int) {
	i := len(t.syms)
	for i > 0 && t.syms[i-1].Depth > depth {
		i--
	}
	t.syms = t.syms[:i]
}

// Len returns the number of live entries.
func (t *SymbolTable) Len() int {
	return len(t.syms)
}

// String returns a string representation of the table for debugging,
// innermost entries last.
func (t *SymbolTable) String() string {
	var buf strings.Builder
	for _, s := range t.syms {
		fmt.Fprintf(&buf, "%s%s %s\n", strings.Repeat("  ", s.Depth), s.Kind, s.Name)
	}
	return buf.String()
}
