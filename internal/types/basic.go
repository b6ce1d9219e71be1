package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // type of an expression that failed to check

	Int
	Char
	Bool
	Void
	Float
)

// BasicInfo describes properties of a basic type.
type BasicInfo int

const (
	InfoInteger BasicInfo = 1 << iota
	InfoFloat
	InfoChar
	InfoBoolean
	InfoVoid
	InfoNumeric = InfoInteger | InfoFloat
)

// Basic represents one of the atom types int, char, bool, void and float.
type Basic struct {
	typ
	kind BasicKind
	info BasicInfo
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Info returns information about the basic type.
func (b *Basic) Info() BasicInfo {
	return b.info
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// Underlying implements Type.
func (b *Basic) Underlying() Type {
	return b
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the atom types, indexed by BasicKind.
var Typ = []*Basic{
	Invalid: {kind: Invalid, name: "invalid type"},
	Int:     {kind: Int, info: InfoInteger, name: "int"},
	Char:    {kind: Char, info: InfoChar, name: "char"},
	Bool:    {kind: Bool, info: InfoBoolean, name: "bool"},
	Void:    {kind: Void, info: InfoVoid, name: "void"},
	Float:   {kind: Float, info: InfoFloat, name: "float"},
}
