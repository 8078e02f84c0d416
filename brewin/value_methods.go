package brewin

import (
	"fmt"
	"strconv"
)

func (k ValueKind) String() string {
	switch k {
	case KindNothing:
		return "nothing"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders v the way print does.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindBool:
		if v.Bool() {
			return literalTrue
		}
		return literalFalse
	case KindString:
		return v.data.(string)
	case KindObject:
		if v.data == nil {
			return literalNull
		}
		return "<" + v.class + ">"
	default:
		return literalNothing
	}
}

// TypeName describes v for error messages: the primitive name, the class
// name, or "null".
func (v Value) TypeName() string {
	switch v.kind {
	case KindObject:
		if v.class == "" {
			return literalNull
		}
		return v.class
	default:
		return v.kind.String()
	}
}

// Same reports whether two values are the same. Objects compare by
// identity, everything else by payload.
func (v Value) Same(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindObject:
		return v.Object() == other.Object()
	case KindNothing:
		return true
	default:
		return v.data == other.data
	}
}
