package brewin

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

const infiniteLoop = `
(class main
  (method void main ()
    (while true (print "x"))))
`

func TestNewEngineRejectsNegativeLimits(t *testing.T) {
	if _, err := NewEngine(Config{StepQuota: -1}); err == nil {
		t.Fatalf("expected error for negative step quota")
	}
	if _, err := NewEngine(Config{RecursionLimit: -1}); err == nil {
		t.Fatalf("expected error for negative recursion limit")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustNewEngine to panic")
		}
	}()
	MustNewEngine(Config{StepQuota: -5})
}

func TestConfigSummaryDefaults(t *testing.T) {
	summary := MustNewEngine(Config{}).ConfigSummary()
	if summary != "entry=main.main steps=unlimited recursion=1000 trace=false" {
		t.Fatalf("unexpected summary %q", summary)
	}
	summary = MustNewEngine(Config{StepQuota: 250}).ConfigSummary()
	if summary != "entry=main.main steps=250 recursion=1000 trace=false" {
		t.Fatalf("unexpected summary %q", summary)
	}
}

func TestDefaultConfigLeavesStepsUnbounded(t *testing.T) {
	program, err := MustNewEngine(Config{}).Compile(`(class main (method void main () (print 1)))`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if exec := program.newExecution(context.Background(), RunOptions{}); exec.quota != 0 {
		t.Fatalf("expected no step quota by default, got %d", exec.quota)
	}
}

func TestStepQuotaStopsRunawayProgram(t *testing.T) {
	program, err := MustNewEngine(Config{StepQuota: 500}).Compile(infiniteLoop)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	result, err := program.Run(context.Background(), RunOptions{})
	re := requireErrorKind(t, err, FaultError)
	if !strings.Contains(re.Message, "step quota exceeded") {
		t.Fatalf("unexpected message %q", re.Message)
	}
	if len(result.Output) == 0 {
		t.Fatalf("expected partial output before the quota hit")
	}
}

func TestRecursionLimit(t *testing.T) {
	program, err := MustNewEngine(Config{RecursionLimit: 50}).Compile(`
(class main
  (method void down ((int n)) (call me down (+ n 1)))
  (method void main () (call me down 0)))
`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	_, err = program.Run(context.Background(), RunOptions{})
	re := requireErrorKind(t, err, FaultError)
	if !strings.Contains(re.Message, "recursion depth exceeded") {
		t.Fatalf("unexpected message %q", re.Message)
	}
	if !strings.Contains(re.Error(), "frames omitted") {
		t.Fatalf("expected elided stack frames in %q", re.Error())
	}
}

func TestContextCancellation(t *testing.T) {
	program := compileSource(t, infiniteLoop)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := program.Run(ctx, RunOptions{})
	re := requireErrorKind(t, err, FaultError)
	if !strings.Contains(re.Message, context.Canceled.Error()) {
		t.Fatalf("unexpected message %q", re.Message)
	}
}

func TestCustomEntryPoint(t *testing.T) {
	source := `
(class app
  (method void start () (print "started")))
`
	program, err := MustNewEngine(Config{EntryClass: "app", EntryMethod: "start"}).Compile(source)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	result, err := program.Run(context.Background(), RunOptions{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireOutput(t, result.Output, "started")

	_, err = compileSource(t, source).Run(context.Background(), RunOptions{})
	requireErrorKind(t, err, TypeError)
}

func TestMissingEntryMethod(t *testing.T) {
	requireRunError(t, `(class main (method void other () (print 1)))`, NameError)
}

func TestOutputWriter(t *testing.T) {
	var buf bytes.Buffer
	program := compileSource(t, mainClass(`(begin (print "a") (print 1 2))`))
	if _, err := program.Run(context.Background(), RunOptions{Stdout: &buf}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if buf.String() != "a\n12\n" {
		t.Fatalf("unexpected stdout %q", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestOutputWriteFailureIsFault(t *testing.T) {
	program := compileSource(t, mainClass(`(print "a")`))
	_, err := program.Run(context.Background(), RunOptions{Stdout: failingWriter{}})
	re := requireErrorKind(t, err, FaultError)
	if !strings.Contains(re.Message, "disk full") {
		t.Fatalf("unexpected message %q", re.Message)
	}
}

func TestTraceLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	engine := MustNewEngine(Config{Trace: true, Logger: logger})
	program, err := engine.Compile(`
(class helper (method void help () (print "h")))
(class main
  (method void main () (call (new helper) help)))
`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := program.Run(context.Background(), RunOptions{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	got := logs.String()
	for _, want := range []string{"msg=\"program loaded\"", "msg=instantiate", "class=helper", "msg=dispatch", "method=help", "msg=statement"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in trace output:\n%s", want, got)
		}
	}
}

func TestNoTraceWithoutFlag(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	program, err := MustNewEngine(Config{Logger: logger}).Compile(mainClass(`(print 1)`))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, err := program.Run(context.Background(), RunOptions{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.Contains(logs.String(), "dispatch") {
		t.Fatalf("unexpected dispatch trace without Trace:\n%s", logs.String())
	}
}

func TestObjectsShareIDAcrossSlices(t *testing.T) {
	program := compileSource(t, `
(class a)
(class b inherits a)
(class c inherits b)
(class main (method void main () (print 1)))
`)
	obj, err := program.Instantiate("c")
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	depth := 0
	for slice := obj; slice != nil; slice = slice.Parent() {
		if slice.ID != obj.ID {
			t.Fatalf("slice %s has a different ID", slice.Class().Name)
		}
		depth++
	}
	if depth != 3 {
		t.Fatalf("expected 3 slices, got %d", depth)
	}
	other, _ := program.Instantiate("c")
	if other.ID == obj.ID {
		t.Fatalf("distinct instances must have distinct IDs")
	}
	if _, err := program.Instantiate("ghost"); err == nil {
		t.Fatalf("expected error for unknown class")
	}
}
