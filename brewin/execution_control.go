package brewin

import "strings"

// (if COND THEN [ELSE])
func (exec *Execution) execIf(act *activation, stmt *Node) (execStatus, Value, error) {
	if stmt.Len() != 3 && stmt.Len() != 4 {
		return statusProceed, Value{}, exec.errorAt(SyntaxError, stmt.Pos(), "malformed if statement")
	}
	cond, err := exec.evalCondition(act, stmt.Item(1), stmt.Pos(), keywordIf)
	if err != nil {
		return statusProceed, Value{}, err
	}
	if cond {
		return exec.execStatement(act, stmt.Item(2))
	}
	if stmt.Len() == 4 {
		return exec.execStatement(act, stmt.Item(3))
	}
	return statusProceed, Value{}, nil
}

// (while COND BODY)
func (exec *Execution) execWhile(act *activation, stmt *Node) (execStatus, Value, error) {
	if stmt.Len() != 3 {
		return statusProceed, Value{}, exec.errorAt(SyntaxError, stmt.Pos(), "malformed while statement")
	}
	for {
		cond, err := exec.evalCondition(act, stmt.Item(1), stmt.Pos(), keywordWhile)
		if err != nil {
			return statusProceed, Value{}, err
		}
		if !cond {
			return statusProceed, Value{}, nil
		}
		status, val, err := exec.execStatement(act, stmt.Item(2))
		if err != nil || status == statusReturn {
			return status, val, err
		}
	}
}

func (exec *Execution) evalCondition(act *activation, expr *Node, pos Position, construct string) (bool, error) {
	val, err := exec.evalExpr(act, expr, pos)
	if err != nil {
		return false, err
	}
	if val.Kind() != KindBool {
		return false, exec.errorAt(TypeError, pos, "non-boolean %s condition %s", construct, expr)
	}
	return val.Bool(), nil
}

// (return [EXPR]) checks the value against the method's declared return
// type. Without an expression a void method yields nothing and any other
// method yields its type's zero value.
func (exec *Execution) execReturn(act *activation, stmt *Node) (execStatus, Value, error) {
	returnType := act.method.ReturnType
	switch stmt.Len() {
	case 1:
		return statusReturn, zeroValue(returnType), nil
	case 2:
	default:
		return statusProceed, Value{}, exec.errorAt(SyntaxError, stmt.Pos(), "malformed return statement")
	}

	val, err := exec.evalExpr(act, stmt.Item(1), stmt.Pos())
	if err != nil {
		return statusProceed, Value{}, err
	}
	if returnType == typeVoid {
		if val.IsNothing() {
			return statusReturn, val, nil
		}
		return statusProceed, Value{}, exec.errorAt(TypeError, stmt.Pos(), "void method %s returns a value", act.method.Name)
	}
	ret, ok := exec.program.classes.assign(returnType, val)
	if !ok {
		return statusProceed, Value{}, exec.errorAt(TypeError, stmt.Pos(), "method %s returns %s, declared %s", act.method.Name, val.TypeName(), returnType)
	}
	return statusReturn, ret, nil
}

// (print EXPR...) writes the concatenation of its arguments as one line.
func (exec *Execution) execPrint(act *activation, stmt *Node) error {
	var b strings.Builder
	for _, expr := range stmt.List[1:] {
		val, err := exec.evalExpr(act, expr, stmt.Pos())
		if err != nil {
			return err
		}
		if val.IsNothing() {
			return exec.errorAt(TypeError, stmt.Pos(), "cannot print nothing")
		}
		b.WriteString(val.String())
	}
	if err := exec.output.writeLine(b.String()); err != nil {
		return exec.wrapError(err, stmt.Pos())
	}
	return nil
}
