package brewin

import "strconv"

// primitiveKind maps a primitive type name to the value kind it admits.
func primitiveKind(typeName string) (ValueKind, bool) {
	switch typeName {
	case typeInt:
		return KindInt, true
	case typeBool:
		return KindBool, true
	case typeString:
		return KindString, true
	default:
		return KindNothing, false
	}
}

func isPrimitiveType(typeName string) bool {
	_, ok := primitiveKind(typeName)
	return ok
}

// parseLiteral converts a literal atom into a value. Object literals are
// limited to the untyped null.
func parseLiteral(atom string) (Value, bool) {
	switch atom {
	case literalTrue:
		return NewBool(true), true
	case literalFalse:
		return NewBool(false), true
	case literalNull:
		return NewNull(""), true
	case literalNothing:
		return NewNothing(), true
	}
	if len(atom) >= 2 && atom[0] == '"' && atom[len(atom)-1] == '"' {
		return NewString(atom[1 : len(atom)-1]), true
	}
	if isIntegerLiteral(atom) {
		n, err := strconv.ParseInt(atom, 10, 64)
		if err != nil {
			return Value{}, false
		}
		return NewInt(n), true
	}
	return Value{}, false
}

func isIntegerLiteral(atom string) bool {
	digits := atom
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// zeroValue is the value a non-void method yields when it returns without
// an expression, and the initial value of an uninitialized local.
func zeroValue(typeName string) Value {
	switch typeName {
	case typeInt:
		return NewInt(0)
	case typeString:
		return NewString("")
	case typeBool:
		return NewBool(false)
	case typeVoid:
		return NewNothing()
	default:
		return NewNull(typeName)
	}
}

// knownType reports whether typeName names a primitive or a defined class.
// void is only accepted where allowVoid is set (method return types).
func (t *classTable) knownType(typeName string, allowVoid bool) bool {
	if isPrimitiveType(typeName) {
		return true
	}
	if typeName == typeVoid {
		return allowVoid
	}
	_, ok := t.classes[typeName]
	return ok
}

// isAncestor reports whether base is derived itself or one of its ancestors.
func (t *classTable) isAncestor(base, derived string) bool {
	cd, ok := t.classes[derived]
	for ok && cd != nil {
		if cd.Name == base {
			return true
		}
		cd = cd.Parent
	}
	return false
}

// assign checks v against a slot declared as declared and returns the value
// to store. It is the single compatibility rule used by let, set, argument
// binding and return. A bare null literal is re-tagged with the slot's type.
func (t *classTable) assign(declared string, v Value) (Value, bool) {
	if kind, ok := primitiveKind(declared); ok {
		return v, v.kind == kind
	}
	if _, ok := t.classes[declared]; !ok || v.kind != KindObject {
		return v, false
	}
	if v.class == "" {
		return v.withClass(declared), true
	}
	if t.isAncestor(declared, v.class) {
		return v, true
	}
	return v, false
}

// comparable reports whether two object values may be compared with == or
// !=: either side is an untyped null, or one class is an ancestor of the
// other.
func (t *classTable) comparable(a, b Value) bool {
	if a.class == "" || b.class == "" {
		return true
	}
	return t.isAncestor(a.class, b.class) || t.isAncestor(b.class, a.class)
}
