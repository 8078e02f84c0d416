package brewin

import (
	"context"
	"strings"
	"testing"
)

const dispatchClasses = `
(class person
  (field string name "anon")
  (method void set_name ((string n)) (set name n))
  (method string describe () (return (+ "person " (call me label))))
  (method string label () (return name))
  (method void greet () (print "hello " (call me describe))))
(class student inherits person
  (field int id 7)
  (method string label () (return (+ "student " (call super label))))
  (method void greet ((string who)) (print "hi " who)))
`

func TestDispatchRebindsMeToDerivedObject(t *testing.T) {
	out := runSource(t, dispatchClasses+mainClass(`
    (let ((student s (new student)))
      (call s set_name "ada")
      (call s greet)
      (call s greet "bob"))`))
	requireOutput(t, out, "hello person student ada", "hi bob")
}

func TestSuperKeepsOriginalCaller(t *testing.T) {
	out := runSource(t, `
(class a
  (method string who () (return "a"))
  (method string ask () (return (call me who))))
(class b inherits a
  (method string who () (return "b"))
  (method string ask () (return (+ "b>" (call super ask)))))
(class c inherits b
  (method string who () (return "c")))
`+mainClass(`
    (let ((a obj (new c)))
      (print (call obj ask)))`))
	requireOutput(t, out, "b>c")
}

func TestMeIdentityAcrossSlices(t *testing.T) {
	out := runSource(t, `
(class base
  (method base self () (return me)))
(class derived inherits base
  (method bool same ((base other)) (return (== other me))))
`+mainClass(`
    (let ((derived d (new derived)))
      (print (call d same (call d self))))`))
	requireOutput(t, out, "true")
}

func TestArgumentMismatchFailsBeforeBodyRuns(t *testing.T) {
	err, out := requireRunError(t, `
(class target
  (method void take ((int n)) (print "ran " n)))
`+mainClass(`
    (begin
      (print "before")
      (call (new target) take "five"))`), TypeError)
	requireOutput(t, out, "before")
	if !strings.Contains(err.Message, "no matching signature") {
		t.Fatalf("unexpected message %q", err.Message)
	}
}

func TestArityMismatchIsTypeError(t *testing.T) {
	requireRunError(t, `
(class target
  (method void take ((int n)) (print n)))
`+mainClass(`(call (new target) take 1 2)`), TypeError)
}

func TestUnknownMethodIsNameError(t *testing.T) {
	err, _ := requireRunError(t, mainClass(`(call me missing)`), NameError)
	if err.Line != 3 {
		t.Fatalf("expected line 3, got %d", err.Line)
	}
}

func TestDispatchContinuesUpChainOnMismatch(t *testing.T) {
	out := runSource(t, `
(class base
  (method void show ((int n)) (print "base " n)))
(class derived inherits base
  (method void show ((string s)) (print "derived " s)))
`+mainClass(`
    (let ((derived d (new derived)))
      (call d show "x")
      (call d show 3))`))
	requireOutput(t, out, "derived x", "base 3")
}

func TestSuperWithoutParent(t *testing.T) {
	requireRunError(t, `
(class lonely
  (method void f () (call super f)))
`+mainClass(`(call (new lonely) f)`), NameError)
}

func TestCallOnNullIsFault(t *testing.T) {
	requireRunError(t, `
(class thing (method void f () (print 1)))
(class main
  (field thing t null)
  (method void main () (call t f)))
`, FaultError)
}

func TestCallOnPrimitiveIsTypeError(t *testing.T) {
	requireRunError(t, mainClass(`(call 5 f)`), TypeError)
}

func TestNewUnknownClassIsTypeError(t *testing.T) {
	requireRunError(t, mainClass(`(print (new ghost))`), TypeError)
}

func TestSubtypedArgumentsAndReturns(t *testing.T) {
	out := runSource(t, `
(class animal (method string noise () (return "...")))
(class dog inherits animal (method string noise () (return "woof")))
(class keeper
  (method animal adopt () (return (new dog)))
  (method string listen ((animal a)) (return (call a noise))))
`+mainClass(`
    (let ((keeper k (new keeper)))
      (print (call k listen (call k adopt))))`))
	requireOutput(t, out, "woof")
}

func TestReturnOfWrongClassIsTypeError(t *testing.T) {
	requireRunError(t, `
(class animal)
(class rock)
(class maker (method animal make () (return (new rock))))
`+mainClass(`(call (new maker) make)`), TypeError)
}

func TestCallMethodFromHost(t *testing.T) {
	program := compileSource(t, `
(class counter
  (field int n 0)
  (method int add ((int k)) (begin (set n (+ n k)) (return n))))
(class main (method void main () (print 1)))
`)
	obj, err := program.Instantiate("counter")
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	for i, want := range []int64{2, 5} {
		val, _, err := program.CallMethod(context.Background(), obj, "add", []Value{NewInt(int64(i + 2))}, RunOptions{})
		if err != nil {
			t.Fatalf("call: %v", err)
		}
		if val.Int() != want {
			t.Fatalf("expected %d, got %s", want, val)
		}
	}
	if _, _, err := program.CallMethod(context.Background(), nil, "add", nil, RunOptions{}); err == nil {
		t.Fatalf("expected error calling on nil object")
	}
	if !strings.HasPrefix(obj.String(), "<counter ") {
		t.Fatalf("unexpected object rendering %s", obj)
	}
}
