package brewin

import "github.com/google/uuid"

// (call RECEIVER METHOD ARG...) where RECEIVER is me, super, or any
// expression yielding an object.
func (exec *Execution) evalCall(act *activation, expr *Node) (Value, error) {
	pos := expr.Pos()
	if expr.Len() < 3 || expr.Item(2).IsList() {
		return Value{}, exec.errorAt(SyntaxError, pos, "malformed call %s", expr)
	}
	receiver, method := expr.Item(1), expr.Item(2).Atom

	var target, original *Object
	switch {
	case !receiver.IsList() && receiver.Atom == keywordMe:
		target, original = act.me, act.me
	case !receiver.IsList() && receiver.Atom == keywordSuper:
		if act.self.parent == nil {
			return Value{}, exec.errorAt(NameError, pos, "super called in class %s, which has no base class", act.self.class.Name)
		}
		target, original = act.self.parent, act.me
	default:
		recv, err := exec.evalExpr(act, receiver, pos)
		if err != nil {
			return Value{}, err
		}
		if recv.Kind() != KindObject {
			return Value{}, exec.errorAt(TypeError, pos, "cannot call %s on a %s value", method, recv.TypeName())
		}
		if recv.IsNull() {
			return Value{}, exec.errorAt(FaultError, pos, "null dereference calling %s", method)
		}
		target = recv.Object()
	}

	args := make([]Value, 0, expr.Len()-3)
	for _, argExpr := range expr.List[3:] {
		arg, err := exec.evalExpr(act, argExpr, pos)
		if err != nil {
			return Value{}, err
		}
		args = append(args, arg)
	}
	return exec.callMethod(target, method, args, pos, original)
}

// (new CLASS)
func (exec *Execution) evalNew(expr *Node) (Value, error) {
	if expr.Len() != 2 || expr.Item(1).IsList() {
		return Value{}, exec.errorAt(SyntaxError, expr.Pos(), "malformed new expression %s", expr)
	}
	obj, err := exec.instantiate(expr.Item(1).Atom, expr.Pos())
	if err != nil {
		return Value{}, err
	}
	return NewObjectRef(obj), nil
}

// instantiate builds a fresh instance of className.
func (exec *Execution) instantiate(className string, pos Position) (*Object, error) {
	cd, ok := exec.program.classes.lookup(className)
	if !ok {
		return nil, exec.errorAt(TypeError, pos, "no class named %s found", className)
	}
	obj, err := newObject(exec.program.classes, cd, uuid.New())
	if err != nil {
		return nil, exec.wrapError(err, pos)
	}
	if exec.trace {
		exec.logger.Debug("instantiate", "class", className, "object", obj.ID.String(), "line", pos.Line)
	}
	return obj, nil
}
