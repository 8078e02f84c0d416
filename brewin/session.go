package brewin

import (
	"context"

	"github.com/google/uuid"
)

const sessionClassName = "<session>"

var statementKeywords = map[string]struct{}{
	keywordBegin: {}, keywordLet: {}, keywordSet: {}, keywordIf: {},
	keywordWhile: {}, keywordReturn: {}, keywordPrint: {},
	keywordInputS: {}, keywordInputI: {},
}

// Session evaluates program fragments one at a time. Class definitions
// accumulate in the session's class table; statements and expressions run
// against a scratch object that has no fields.
type Session struct {
	engine  *Engine
	program *Program
	scratch *Object
	method  *MethodDef
}

// SessionResult reports what one Eval produced.
type SessionResult struct {
	Output   []string
	Defined  []string
	Value    Value
	HasValue bool
}

// NewSession starts an empty session.
func (e *Engine) NewSession() *Session {
	s := &Session{engine: e}
	s.Reset()
	return s
}

// Reset forgets every class defined in the session.
func (s *Session) Reset() {
	classes := newClassTable("")
	s.program = &Program{engine: s.engine, classes: classes}
	cd := newClassDef(sessionClassName, nil, Position{})
	// Registered for lookups only; it stays out of order and Classes().
	classes.classes[sessionClassName] = cd
	s.scratch = &Object{ID: uuid.New(), class: cd, fields: make(map[string]*binding)}
	s.method = &MethodDef{Name: sessionClassName, ReturnType: typeVoid, Class: cd}
}

// Classes describes the session's classes in definition order.
func (s *Session) Classes() []string {
	out := make([]string, 0, len(s.program.classes.order))
	for _, name := range s.program.classes.order {
		out = append(out, s.program.classes.describe(name))
	}
	return out
}

// Eval runs every form in input. A class form extends the class table, a
// statement runs for effect, and any other form, calls included, is
// evaluated as an expression whose value is returned.
func (s *Session) Eval(ctx context.Context, input string, opts RunOptions) (res SessionResult, err error) {
	forms, err := parseProgram(input)
	if err != nil {
		return res, err
	}
	s.program.source = input
	s.program.classes.source = input

	exec := s.program.newExecution(ctx, opts)
	act := &activation{self: s.scratch, me: s.scratch, method: s.method, env: newEnv(nil)}
	defer func() { res.Output = exec.output.lines }()

	for _, form := range forms {
		head := form.Head()
		if head == keywordClass {
			cd, err := s.program.classes.define(form)
			if err != nil {
				return res, err
			}
			if err := s.program.classes.validate(); err != nil {
				s.program.classes.undefine(cd.Name)
				return res, err
			}
			res.Defined = append(res.Defined, cd.Name)
			continue
		}
		if _, ok := statementKeywords[head]; ok {
			status, val, err := exec.execStatement(act, form)
			if err != nil {
				return res, err
			}
			if status == statusReturn {
				res.Value, res.HasValue = val, true
			}
			continue
		}
		val, err := exec.evalExpr(act, form, form.Pos())
		if err != nil {
			return res, err
		}
		if !val.IsNothing() {
			res.Value, res.HasValue = val, true
		}
	}
	return res, nil
}
