package brewin

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a runtime or load-time failure. Every kind is terminal:
// the running program stops at the first error.
type ErrorKind string

const (
	NameError   ErrorKind = "NameError"
	TypeError   ErrorKind = "TypeError"
	SyntaxError ErrorKind = "SyntaxError"
	FaultError  ErrorKind = "FaultError"
)

type StackFrame struct {
	Function string
	Pos      Position
}

type RuntimeError struct {
	Kind      ErrorKind
	Message   string
	Line      int
	CodeFrame string
	Frames    []StackFrame
}

const (
	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

var (
	errStepQuotaExceeded = errors.New("step quota exceeded")
	errInputExhausted    = errors.New("no more input")
)

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(string(re.Kind))
	if re.Line > 0 {
		fmt.Fprintf(&b, " on line %d", re.Line)
	}
	b.WriteString(": ")
	b.WriteString(re.Message)
	if re.CodeFrame != "" {
		b.WriteString("\n")
		b.WriteString(re.CodeFrame)
	}
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (line %d)", frame.Function, frame.Pos.Line)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}

	return b.String()
}

// Unwrap returns nil; a RuntimeError is terminal and carries only the
// message of whatever caused it.
func (re *RuntimeError) Unwrap() error {
	return nil
}

// ErrorKindOf reports the kind of a RuntimeError anywhere in err's chain.
func ErrorKindOf(err error) (ErrorKind, bool) {
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return runtimeErr.Kind, true
	}
	return "", false
}

// ErrorLine reports the source line of a RuntimeError, or 0 when unknown.
func ErrorLine(err error) int {
	var runtimeErr *RuntimeError
	if errors.As(err, &runtimeErr) {
		return runtimeErr.Line
	}
	return 0
}

func newSourceError(kind ErrorKind, source string, pos Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{
		Kind:      kind,
		Message:   fmt.Sprintf(format, args...),
		Line:      pos.Line,
		CodeFrame: formatCodeFrame(source, pos),
	}
}

func (exec *Execution) errorAt(kind ErrorKind, pos Position, format string, args ...any) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	if len(exec.callStack) > 0 {
		// First frame: where the error occurred (within the current method)
		current := exec.callStack[len(exec.callStack)-1]
		frames = append(frames, StackFrame{Function: current.Function, Pos: pos})

		// Remaining frames: where each method was called from
		for i := len(exec.callStack) - 1; i >= 0; i-- {
			frames = append(frames, StackFrame{Function: exec.callStack[i].Function, Pos: exec.callStack[i].Pos})
		}
	} else {
		frames = append(frames, StackFrame{Function: "<program>", Pos: pos})
	}
	source := ""
	if len(exec.callStack) > 0 {
		source = exec.callStack[len(exec.callStack)-1].source
	} else if exec.program != nil {
		source = exec.program.source
	}
	re := newSourceError(kind, source, pos, format, args...)
	re.Frames = frames
	return re
}

// wrapError turns host failures (cancellation, quotas, I/O) into a
// FaultError positioned at pos. RuntimeErrors pass through unchanged.
func (exec *Execution) wrapError(err error, pos Position) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*RuntimeError); ok {
		return err
	}
	return exec.errorAt(FaultError, pos, "%s", err.Error())
}
