package brewin

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNothing() bool { return v.kind == KindNothing }

// IsNull reports whether v is an object reference with no object behind it.
func (v Value) IsNull() bool { return v.kind == KindObject && v.data == nil }

func (v Value) Int() int64 {
	if v.kind == KindInt {
		return v.data.(int64)
	}
	return 0
}

func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.data.(bool)
	}
	return false
}

// Str returns the payload of a string value.
func (v Value) Str() string {
	if v.kind == KindString {
		return v.data.(string)
	}
	return ""
}

// Object returns the referenced object, or nil for null and non-object values.
func (v Value) Object() *Object {
	if v.kind != KindObject || v.data == nil {
		return nil
	}
	return v.data.(*Object)
}

// ClassName returns the class tag of an object value.
func (v Value) ClassName() string { return v.class }

// withClass returns a copy of v re-tagged with class. Only nulls are
// re-tagged; live references keep their dynamic class.
func (v Value) withClass(class string) Value {
	if v.kind == KindObject && v.data == nil {
		v.class = class
	}
	return v
}
