package types

// Identical reports whether x and y are structurally equivalent.
//
// Pointer and array levels are stripped from both sides together; at each
// level both sides must use the same constructor, so int* and int[] are
// different types. Array lengths are not compared. What remains must be the
// same atom type or the same struct declaration.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	return identical(x, y)
}

func identical(x, y Type) bool {
	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *Pointer:
		if y, ok := y.(*Pointer); ok {
			return Identical(x.elem, y.elem)
		}
	case *Array:
		if y, ok := y.(*Array); ok {
			return Identical(x.elem, y.elem)
		}
	case *Named:
		if y, ok := y.(*Named); ok {
			return x.decl == y.decl
		}
	case *Struct:
		if y, ok := y.(*Struct); ok {
			return identicalStructs(x, y)
		}
	case *Func:
		if y, ok := y.(*Func); ok {
			return identicalFuncs(x, y)
		}
	}
	return false
}

func identicalStructs(x, y *Struct) bool {
	if len(x.fields) != len(y.fields) {
		return false
	}
	for i := range x.fields {
		if x.fields[i].name != y.fields[i].name {
			return false
		}
		if !Identical(x.fields[i].typ, y.fields[i].typ) {
			return false
		}
	}
	return true
}

func identicalFuncs(x, y *Func) bool {
	if len(x.params) != len(y.params) {
		return false
	}
	for i := range x.params {
		if !Identical(x.params[i], y.params[i]) {
			return false
		}
	}
	return Identical(x.result, y.result)
}

// SameKind reports whether x and y agree at the outermost level only: the
// same atom, both pointers, both arrays, the same struct, or both
// functions. Element types are not inspected.
func SameKind(x, y Type) bool {
	if x == nil || y == nil {
		return false
	}
	switch x := x.(type) {
	case *Basic:
		y, ok := y.(*Basic)
		return ok && x.kind == y.kind
	case *Pointer:
		_, ok := y.(*Pointer)
		return ok
	case *Array:
		_, ok := y.(*Array)
		return ok
	case *Named:
		y, ok := y.(*Named)
		return ok && x.decl == y.decl
	case *Struct:
		_, ok := y.(*Struct)
		return ok
	case *Func:
		_, ok := y.(*Func)
		return ok
	}
	return false
}

func basicInfo(t Type) BasicInfo {
	if b, ok := t.(*Basic); ok {
		return b.info
	}
	return 0
}

// IsInteger reports whether t is int.
func IsInteger(t Type) bool { return basicInfo(t)&InfoInteger != 0 }

// IsFloat reports whether t is float.
func IsFloat(t Type) bool { return basicInfo(t)&InfoFloat != 0 }

// IsNumeric reports whether t is int or float.
func IsNumeric(t Type) bool { return basicInfo(t)&InfoNumeric != 0 }

// IsChar reports whether t is char.
func IsChar(t Type) bool { return basicInfo(t)&InfoChar != 0 }

// IsBoolean reports whether t is bool.
func IsBoolean(t Type) bool { return basicInfo(t)&InfoBoolean != 0 }

// IsVoid reports whether t is void.
func IsVoid(t Type) bool { return basicInfo(t)&InfoVoid != 0 }

// IsInvalid reports whether t is missing or the invalid type.
func IsInvalid(t Type) bool {
	b, ok := t.(*Basic)
	return t == nil || ok && b.kind == Invalid
}

// IsPointer reports whether t is a pointer type.
func IsPointer(t Type) bool {
	_, ok := t.(*Pointer)
	return ok
}

// IsArray reports whether t is an array type.
func IsArray(t Type) bool {
	_, ok := t.(*Array)
	return ok
}

// IsComposite reports whether t is a pointer or an array.
func IsComposite(t Type) bool {
	return IsPointer(t) || IsArray(t)
}

// IsStruct reports whether t is a named struct type.
func IsStruct(t Type) bool {
	_, ok := t.(*Named)
	return ok
}

// Elem returns the element type of a pointer or array, or nil.
func Elem(t Type) Type {
	switch t := t.(type) {
	case *Pointer:
		return t.elem
	case *Array:
		return t.elem
	}
	return nil
}
