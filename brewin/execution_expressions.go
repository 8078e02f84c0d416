package brewin

// evalExpr evaluates an expression. pos is the line of the enclosing
// statement, which is where errors are reported.
func (exec *Execution) evalExpr(act *activation, expr *Node, pos Position) (Value, error) {
	if !expr.IsList() {
		return exec.evalAtom(act, expr.Atom, pos)
	}
	if err := exec.step(); err != nil {
		return Value{}, exec.wrapError(err, pos)
	}

	operator := expr.Head()
	switch {
	case operator == keywordCall:
		return exec.evalCall(act, expr)
	case operator == keywordNew:
		return exec.evalNew(expr)
	case operator == "!":
		return exec.evalUnary(act, expr, pos)
	case isBinaryOperator(operator):
		return exec.evalBinary(act, expr, pos)
	default:
		return Value{}, exec.errorAt(SyntaxError, pos, "unknown operator in %s", expr)
	}
}

// evalAtom resolves a bare name: locals innermost first, then the executing
// slice's fields, then me, then literals.
func (exec *Execution) evalAtom(act *activation, atom string, pos Position) (Value, error) {
	if val, ok := act.env.Get(atom); ok {
		return val, nil
	}
	if slot, ok := act.self.fields[atom]; ok {
		return slot.value, nil
	}
	if atom == keywordMe {
		return NewObjectRef(act.me), nil
	}
	if val, ok := parseLiteral(atom); ok {
		return val, nil
	}
	return Value{}, exec.errorAt(NameError, pos, "invalid field or parameter %s", atom)
}

func (exec *Execution) evalUnary(act *activation, expr *Node, pos Position) (Value, error) {
	if expr.Len() != 2 {
		return Value{}, exec.errorAt(SyntaxError, pos, "operator ! expects one operand")
	}
	operand, err := exec.evalExpr(act, expr.Item(1), pos)
	if err != nil {
		return Value{}, err
	}
	if operand.Kind() != KindBool {
		return Value{}, exec.errorAt(TypeError, pos, "invalid unary operator ! applied to %s", operand.TypeName())
	}
	return NewBool(!operand.Bool()), nil
}

func (exec *Execution) evalBinary(act *activation, expr *Node, pos Position) (Value, error) {
	operator := expr.Head()
	if expr.Len() != 3 {
		return Value{}, exec.errorAt(SyntaxError, pos, "operator %s expects two operands", operator)
	}
	left, err := exec.evalExpr(act, expr.Item(1), pos)
	if err != nil {
		return Value{}, err
	}
	right, err := exec.evalExpr(act, expr.Item(2), pos)
	if err != nil {
		return Value{}, err
	}
	if left.Kind() != right.Kind() {
		return Value{}, exec.errorAt(TypeError, pos, "operator %s applied to incompatible types %s and %s", operator, left.TypeName(), right.TypeName())
	}
	if left.Kind() == KindObject && !exec.program.classes.comparable(left, right) {
		return Value{}, exec.errorAt(TypeError, pos, "cannot compare %s with %s", left.TypeName(), right.TypeName())
	}
	result, err := applyBinary(operator, left, right)
	if err != nil {
		kind := TypeError
		if err == errDivisionByZero {
			kind = FaultError
		}
		return Value{}, exec.errorAt(kind, pos, "%s", err.Error())
	}
	return result, nil
}
