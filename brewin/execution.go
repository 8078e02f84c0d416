package brewin

import (
	"context"
	"log/slog"
)

// Execution carries the state of one program run: the loaded classes, the
// I/O collaborators, resource limits and the method call stack.
type Execution struct {
	program      *Program
	ctx          context.Context
	quota        int
	recursionCap int
	steps        int
	callStack    []callFrame
	input        *lineInput
	output       *lineOutput
	logger       *slog.Logger
	trace        bool
}

// activation is one executing method body. self is the slice whose class
// declared the method and whose field store the body sees; me is the
// original receiver.
type activation struct {
	self   *Object
	me     *Object
	method *MethodDef
	env    *Env
}

type execStatus int

const (
	statusProceed execStatus = iota
	statusReturn
)

func (exec *Execution) execStatement(act *activation, stmt *Node) (execStatus, Value, error) {
	if err := exec.step(); err != nil {
		return statusProceed, Value{}, exec.wrapError(err, stmt.Pos())
	}
	if exec.trace {
		exec.logger.Debug("statement", "line", stmt.Pos().Line, "form", stmt.String())
	}

	switch stmt.Head() {
	case keywordBegin:
		return exec.execBlock(act, stmt.List[1:])
	case keywordLet:
		return exec.execLet(act, stmt)
	case keywordSet:
		return statusProceed, Value{}, exec.execSet(act, stmt)
	case keywordIf:
		return exec.execIf(act, stmt)
	case keywordWhile:
		return exec.execWhile(act, stmt)
	case keywordCall:
		_, err := exec.evalCall(act, stmt)
		return statusProceed, Value{}, err
	case keywordReturn:
		return exec.execReturn(act, stmt)
	case keywordPrint:
		return statusProceed, Value{}, exec.execPrint(act, stmt)
	case keywordInputS:
		return statusProceed, Value{}, exec.execInput(act, stmt, false)
	case keywordInputI:
		return statusProceed, Value{}, exec.execInput(act, stmt, true)
	default:
		return statusProceed, Value{}, exec.errorAt(SyntaxError, stmt.Pos(), "unknown statement %s", stmt)
	}
}

// execBlock runs statements in order and stops at the first return.
func (exec *Execution) execBlock(act *activation, stmts []*Node) (execStatus, Value, error) {
	for _, stmt := range stmts {
		status, val, err := exec.execStatement(act, stmt)
		if err != nil || status == statusReturn {
			return status, val, err
		}
	}
	return statusProceed, Value{}, nil
}
