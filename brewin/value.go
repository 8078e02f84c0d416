package brewin

type ValueKind int

const (
	KindNothing ValueKind = iota
	KindInt
	KindBool
	KindString
	KindObject
)

// Value is the closed set of run-time values. Object values carry both a
// handle (nil for null) and a class name: the dynamic class for live
// objects, the declared slot type for a null that has been stored, or ""
// for the bare null literal.
type Value struct {
	kind  ValueKind
	data  any
	class string
}

func NewInt(n int64) Value { return Value{kind: KindInt, data: n} }

func NewBool(b bool) Value { return Value{kind: KindBool, data: b} }

func NewString(s string) Value { return Value{kind: KindString, data: s} }

// NewNothing returns the sentinel produced by a bare return in a void method.
func NewNothing() Value { return Value{kind: KindNothing} }

// NewNull returns a null reference. An empty class marks the untyped null
// literal.
func NewNull(class string) Value {
	return Value{kind: KindObject, class: class}
}

// NewObjectRef returns a reference to obj tagged with obj's own class.
func NewObjectRef(obj *Object) Value {
	if obj == nil {
		return NewNull("")
	}
	return Value{kind: KindObject, data: obj, class: obj.class.Name}
}
