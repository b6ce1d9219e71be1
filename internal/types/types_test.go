package types

import (
	"testing"

	"github.com/you-not-fish/minic/internal/syntax"
)

func TestBasicTypes(t *testing.T) {
	tests := []struct {
		kind BasicKind
		name string
		info BasicInfo
	}{
		{Int, "int", InfoInteger},
		{Char, "char", InfoChar},
		{Bool, "bool", InfoBoolean},
		{Void, "void", InfoVoid},
		{Float, "float", InfoFloat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := Typ[tt.kind]
			if typ.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", typ.Kind(), tt.kind)
			}
			if typ.Info() != tt.info {
				t.Errorf("Info() = %v, want %v", typ.Info(), tt.info)
			}
			if typ.Name() != tt.name || typ.String() != tt.name {
				t.Errorf("Name() = %q, String() = %q, want %q", typ.Name(), typ.String(), tt.name)
			}
			if typ.Underlying() != typ {
				t.Errorf("Underlying() != self")
			}
		})
	}
}

func TestBasicPredicates(t *testing.T) {
	preds := []struct {
		name string
		fn   func(Type) bool
		info BasicInfo
	}{
		{"IsInteger", IsInteger, InfoInteger},
		{"IsFloat", IsFloat, InfoFloat},
		{"IsNumeric", IsNumeric, InfoNumeric},
		{"IsChar", IsChar, InfoChar},
		{"IsBoolean", IsBoolean, InfoBoolean},
		{"IsVoid", IsVoid, InfoVoid},
	}
	for _, typ := range Typ {
		for _, p := range preds {
			want := typ.Info()&p.info != 0
			if got := p.fn(typ); got != want {
				t.Errorf("%s(%s) = %v, want %v", p.name, typ, got, want)
			}
		}
	}
	if IsNumeric(Typ[Char]) || IsNumeric(Typ[Bool]) {
		t.Errorf("char and bool must not be numeric")
	}
	if !IsNumeric(Typ[Int]) || !IsNumeric(Typ[Float]) {
		t.Errorf("int and float must be numeric")
	}
}

func TestAtom(t *testing.T) {
	tests := []struct {
		kind syntax.Kind
		want *Basic
	}{
		{syntax.Int, Typ[Int]},
		{syntax.Char, Typ[Char]},
		{syntax.Bool, Typ[Bool]},
		{syntax.Void, Typ[Void]},
		{syntax.Float, Typ[Float]},
		{syntax.Struct, nil},
		{syntax.Name, nil},
	}

	for _, tt := range tests {
		if got := Atom(tt.kind); got != tt.want {
			t.Errorf("Atom(%v) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		kind syntax.LitKind
		want string
	}{
		{syntax.IntLit, "int"},
		{syntax.FloatLit, "float"},
		{syntax.CharLit, "char"},
		{syntax.BoolLit, "bool"},
		{syntax.StringLit, "char*"},
	}

	for _, tt := range tests {
		if got := Literal(tt.kind).String(); got != tt.want {
			t.Errorf("Literal(%v) = %s, want %s", tt.kind, got, tt.want)
		}
	}
}

func TestPointerType(t *testing.T) {
	ptr := NewPointer(NewPointer(Typ[Char]))

	if _, ok := ptr.Elem().(*Pointer); !ok {
		t.Errorf("Elem() = %T, want *Pointer", ptr.Elem())
	}
	if ptr.String() != "char**" {
		t.Errorf("String() = %q, want %q", ptr.String(), "char**")
	}
	if ptr.Underlying() != ptr {
		t.Errorf("Underlying() != self")
	}
}

func TestArrayType(t *testing.T) {
	arr := NewArray(Typ[Int], 3)

	if arr.Len() != 3 {
		t.Errorf("Len() = %d, want 3", arr.Len())
	}
	if arr.Elem() != Typ[Int] {
		t.Errorf("Elem() = %s, want int", arr.Elem())
	}
	if got := NewPointer(arr).String(); got != "int[]*" {
		t.Errorf("String() = %q, want %q", got, "int[]*")
	}
}

func TestNamedType(t *testing.T) {
	n := NewNamed("Node", 4)
	if n.Struct() != nil {
		t.Fatalf("Struct() set before SetUnderlying")
	}
	if n.Underlying() != Typ[Invalid] {
		t.Errorf("incomplete Underlying() = %s, want invalid type", n.Underlying())
	}

	// struct Node { int val; Node* next; }
	n.SetUnderlying(NewStruct([]*Field{
		NewField("val", Typ[Int], 5),
		NewField("next", NewPointer(n), 6),
	}))

	if n.String() != "Node" || n.Decl() != 4 {
		t.Errorf("got %s decl %d, want Node decl 4", n, n.Decl())
	}
	s := n.Struct()
	if s.NumFields() != 2 {
		t.Fatalf("NumFields() = %d, want 2", s.NumFields())
	}
	if got := s.String(); got != "struct{int val; Node* next}" {
		t.Errorf("String() = %q", got)
	}

	i, f := s.Lookup("next")
	if i != 1 || f.Decl() != 6 || !Identical(f.Type(), NewPointer(n)) {
		t.Errorf("Lookup(next) = %d, %v", i, f)
	}
	if i, f := s.Lookup("prev"); i != -1 || f != nil {
		t.Errorf("Lookup(prev) = %d, %v, want -1, nil", i, f)
	}
}

func TestFuncType(t *testing.T) {
	f := NewFunc([]Type{Typ[Int], NewPointer(Typ[Char])}, Typ[Void])

	if f.NumParams() != 2 || f.Param(1).String() != "char*" {
		t.Errorf("params = %v", f.Params())
	}
	if f.Result() != Typ[Void] {
		t.Errorf("Result() = %s, want void", f.Result())
	}
	if f.String() != "void(int, char*)" {
		t.Errorf("String() = %q", f.String())
	}
}
