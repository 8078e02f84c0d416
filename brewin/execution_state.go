package brewin

import "fmt"

// callFrame records a method activation. source is the text the method was
// loaded from, which differs between classes defined in a session.
type callFrame struct {
	Function string
	Pos      Position
	source   string
}

func (exec *Execution) pushFrame(function string, pos Position, source string) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.errorAt(FaultError, pos, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, callFrame{Function: function, Pos: pos, source: source})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}

// pushEnv opens a let frame on act and returns the function that closes it.
func (act *activation) pushEnv() func() {
	saved := act.env
	act.env = newEnv(saved)
	return func() { act.env = saved }
}

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", errStepQuotaExceeded, exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}
