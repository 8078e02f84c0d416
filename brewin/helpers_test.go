package brewin

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func compileSource(t *testing.T, source string) *Program {
	t.Helper()
	program, err := MustNewEngine(Config{}).Compile(source)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return program
}

func compileTestProgram(t *testing.T, name string) *Program {
	t.Helper()
	source, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return compileSource(t, string(source))
}

// runSource compiles and runs source, feeding input lines, and returns the
// printed lines.
func runSource(t *testing.T, source string, input ...string) []string {
	t.Helper()
	program := compileSource(t, source)
	result, err := program.Run(context.Background(), RunOptions{Input: input})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return result.Output
}

// requireErrorKind asserts err is a RuntimeError of the given kind.
func requireErrorKind(t *testing.T, err error, want ErrorKind) *RuntimeError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", want)
	}
	var runtimeErr *RuntimeError
	if !errors.As(err, &runtimeErr) {
		t.Fatalf("expected RuntimeError, got %T: %v", err, err)
	}
	if runtimeErr.Kind != want {
		t.Fatalf("expected %s, got %s: %v", want, runtimeErr.Kind, err)
	}
	return runtimeErr
}

// requireCompileError compiles source and asserts it fails with kind.
func requireCompileError(t *testing.T, source string, want ErrorKind) *RuntimeError {
	t.Helper()
	_, err := MustNewEngine(Config{}).Compile(source)
	return requireErrorKind(t, err, want)
}

// requireRunError runs source and asserts it fails with kind. Output
// printed before the failure is returned.
func requireRunError(t *testing.T, source string, want ErrorKind) (*RuntimeError, []string) {
	t.Helper()
	program := compileSource(t, source)
	result, err := program.Run(context.Background(), RunOptions{})
	return requireErrorKind(t, err, want), result.Output
}

func requireOutput(t *testing.T, got []string, want ...string) {
	t.Helper()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("output mismatch\n got: %q\nwant: %q", got, want)
	}
}

// mainClass wraps a method body into a runnable main class.
func mainClass(body string) string {
	return "(class main\n  (method void main ()\n" + body + "\n  )\n)\n"
}
