package brewin

import (
	"strconv"
	"strings"
)

// (let ((TYPE NAME [INIT])...) STMT...) declares locals in a fresh frame
// that is dropped on every exit path. Initializers see the locals declared
// before them in the same block.
func (exec *Execution) execLet(act *activation, stmt *Node) (execStatus, Value, error) {
	decls := stmt.Item(1)
	if decls == nil || !decls.IsList() {
		return statusProceed, Value{}, exec.errorAt(SyntaxError, stmt.Pos(), "malformed let statement")
	}
	pop := act.pushEnv()
	defer pop()

	for _, decl := range decls.List {
		if err := exec.declareLocal(act, decl, stmt.Pos()); err != nil {
			return statusProceed, Value{}, err
		}
	}
	return exec.execBlock(act, stmt.List[2:])
}

func (exec *Execution) declareLocal(act *activation, decl *Node, pos Position) error {
	if !decl.IsList() || decl.Len() < 2 || decl.Len() > 3 || decl.Item(0).IsList() || decl.Item(1).IsList() {
		return exec.errorAt(SyntaxError, pos, "malformed local declaration %s", decl)
	}
	declared, name := decl.Item(0).Atom, decl.Item(1).Atom
	if IsReserved(name) {
		return exec.errorAt(SyntaxError, pos, "reserved word %s cannot name a local", name)
	}
	if !exec.program.classes.knownType(declared, false) {
		return exec.errorAt(TypeError, pos, "invalid type %s for local %s", declared, name)
	}
	val := zeroValue(declared)
	if init := decl.Item(2); init != nil {
		var err error
		val, err = exec.evalExpr(act, init, pos)
		if err != nil {
			return err
		}
	}
	stored, ok := exec.program.classes.assign(declared, val)
	if !ok {
		return exec.errorAt(TypeError, pos, "cannot initialize %s %s with %s", declared, name, val.TypeName())
	}
	if !act.env.Define(name, declared, stored) {
		return exec.errorAt(NameError, pos, "duplicate local %s", name)
	}
	return nil
}

// (set NAME EXPR)
func (exec *Execution) execSet(act *activation, stmt *Node) error {
	if stmt.Len() != 3 || stmt.Item(1).IsList() {
		return exec.errorAt(SyntaxError, stmt.Pos(), "malformed set statement")
	}
	val, err := exec.evalExpr(act, stmt.Item(2), stmt.Pos())
	if err != nil {
		return err
	}
	return exec.assignVariable(act, stmt.Item(1).Atom, val, stmt.Pos())
}

// assignVariable stores val into the innermost local named name, or into
// the executing slice's field of that name when no local exists.
func (exec *Execution) assignVariable(act *activation, name string, val Value, pos Position) error {
	if val.IsNothing() {
		return exec.errorAt(TypeError, pos, "cannot assign nothing to %s", name)
	}
	slot, ok := act.env.lookup(name)
	if !ok {
		slot, ok = act.self.fields[name]
	}
	if !ok {
		return exec.errorAt(NameError, pos, "unknown variable %s", name)
	}
	stored, ok := exec.program.classes.assign(slot.declared, val)
	if !ok {
		return exec.errorAt(TypeError, pos, "cannot assign %s to %s of type %s", val.TypeName(), name, slot.declared)
	}
	slot.value = stored
	return nil
}

// (inputs NAME) / (inputi NAME)
func (exec *Execution) execInput(act *activation, stmt *Node, integer bool) error {
	if stmt.Len() != 2 || stmt.Item(1).IsList() {
		return exec.errorAt(SyntaxError, stmt.Pos(), "malformed %s statement", stmt.Head())
	}
	line, err := exec.input.readLine()
	if err != nil {
		return exec.wrapError(err, stmt.Pos())
	}
	val := NewString(line)
	if integer {
		n, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			return exec.errorAt(TypeError, stmt.Pos(), "input %q is not an integer", line)
		}
		val = NewInt(n)
	}
	return exec.assignVariable(act, stmt.Item(1).Atom, val, stmt.Pos())
}
