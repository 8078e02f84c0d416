package brewin

import (
	"strings"
	"testing"
)

func TestWhileCountdown(t *testing.T) {
	out := runSource(t, `
(class main
  (field int x 0)
  (method void main ()
    (begin
      (set x 3)
      (while (> x 0)
        (begin
          (print x)
          (set x (- x 1)))))))
`)
	requireOutput(t, out, "3", "2", "1")
}

func TestIfElse(t *testing.T) {
	out := runSource(t, mainClass(`
    (begin
      (if (< 1 2) (print "yes") (print "no"))
      (if (> 1 2) (print "yes") (print "no"))
      (if false (print "skipped")))`))
	requireOutput(t, out, "yes", "no")
}

func TestNonBooleanConditions(t *testing.T) {
	requireRunError(t, mainClass(`(if 1 (print "x"))`), TypeError)
	requireRunError(t, mainClass(`(while "s" (print "x"))`), TypeError)
}

func TestLetScoping(t *testing.T) {
	out := runSource(t, `
(class main
  (field int x 100)
  (method void main ()
    (begin
      (let ((int x 1) (int y (+ x 1)))
        (print x " " y)
        (let ((int x 5))
          (print x)
          (set x 6)
          (print x))
        (print x))
      (print x))))
`)
	requireOutput(t, out, "1 2", "5", "6", "1", "100")
}

func TestLetDefaultsAndDuplicates(t *testing.T) {
	out := runSource(t, mainClass(`
    (let ((int n) (string s) (bool b) (main m))
      (print n "|" s "|" b "|" m))`))
	requireOutput(t, out, "0||false|null")

	requireRunError(t, mainClass(`(let ((int a 1) (int a 2)) (print a))`), NameError)
	requireRunError(t, mainClass(`(let ((int a "one")) (print a))`), TypeError)
	requireRunError(t, mainClass(`(let ((widget w)) (print 1))`), TypeError)

	for _, name := range []string{"true", "null", "me", "nothing", "int", "print"} {
		requireRunError(t, mainClass(`(let ((int `+name+` 5)) (print 1))`), SyntaxError)
	}
}

func TestLetFrameDroppedOnReturn(t *testing.T) {
	out := runSource(t, `
(class main
  (field int v 9)
  (method int pick ()
    (let ((int v 1))
      (return v)))
  (method void main ()
    (begin
      (print (call me pick))
      (print v))))
`)
	requireOutput(t, out, "1", "9")
}

func TestSetPrecedence(t *testing.T) {
	out := runSource(t, `
(class main
  (field int a 1)
  (method void bump ((int a)) (begin (set a (+ a 100)) (print a)))
  (method void main ()
    (begin
      (call me bump 5)
      (print a)
      (set a 2)
      (print a))))
`)
	requireOutput(t, out, "105", "1", "2")
}

func TestSetErrors(t *testing.T) {
	requireRunError(t, mainClass(`(set nope 1)`), NameError)
	requireRunError(t, `
(class main
  (field int a 1)
  (method void main () (set a "x")))
`, TypeError)
	requireRunError(t, `
(class main
  (field int a 1)
  (method void nop () (return))
  (method void main () (set a (call me nop))))
`, TypeError)
}

func TestReturnDefaults(t *testing.T) {
	out := runSource(t, `
(class main
  (method int zero () (return))
  (method int fall () (print "in fall"))
  (method string empty () (return))
  (method bool no () (return))
  (method main nobody () (return))
  (method void main ()
    (begin
      (print (call me zero))
      (print (call me fall))
      (print "[" (call me empty) "]")
      (print (call me no))
      (print (call me nobody)))))
`)
	requireOutput(t, out, "0", "in fall", "0", "[]", "false", "null")
}

func TestVoidResultCannotBeUsed(t *testing.T) {
	requireRunError(t, `
(class main
  (method void nop () (return))
  (method void main () (print (call me nop))))
`, TypeError)
	requireRunError(t, `
(class main
  (method void nop () (return))
  (method void main () (let ((int n (call me nop))) (print n))))
`, TypeError)
	requireRunError(t, `
(class main
  (method void bad () (return 5))
  (method void main () (call me bad)))
`, TypeError)
}

func TestReturnTypeMismatch(t *testing.T) {
	requireRunError(t, `
(class main
  (method int f () (return "s"))
  (method void main () (print (call me f))))
`, TypeError)
}

func TestPrintRendering(t *testing.T) {
	out := runSource(t, `
(class main
  (field main self null)
  (method void main ()
    (begin
      (print true " " false)
      (print "a" 1 "b")
      (print)
      (print self)
      (set self me)
      (print self))))
`)
	requireOutput(t, out, "true false", "a1b", "", "null", "<main>")
}

func TestInput(t *testing.T) {
	out := runSource(t, mainClass(`
    (let ((string name) (int n))
      (inputs name)
      (inputi n)
      (print name " " (+ n 1)))`), "ada", " 41 ")
	requireOutput(t, out, "ada 42")

	program := compileSource(t, mainClass(`(let ((int n)) (inputi n))`))
	_, err := program.Run(t.Context(), RunOptions{Input: []string{"abc"}})
	requireErrorKind(t, err, TypeError)

	_, err = program.Run(t.Context(), RunOptions{Stdin: strings.NewReader("")})
	requireErrorKind(t, err, FaultError)

	_, err = program.Run(t.Context(), RunOptions{Stdin: strings.NewReader("12\n")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	requireRunError(t, mainClass(`(let ((bool b)) (inputs b))`), FaultError)
}

func TestInputIntoWrongType(t *testing.T) {
	program := compileSource(t, mainClass(`(let ((bool b)) (inputs b))`))
	_, err := program.Run(t.Context(), RunOptions{Input: []string{"x"}})
	requireErrorKind(t, err, TypeError)
}

func TestArithmeticAndComparison(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"(+ 1 2)", "3"},
		{"(- 1 5)", "-4"},
		{"(* 6 7)", "42"},
		{"(/ 7 2)", "3"},
		{"(/ -6 2)", "-3"},
		{"(/ -7 2)", "-4"},
		{"(% 7 3)", "1"},
		{"(% -7 3)", "2"},
		{"(< 1 2)", "true"},
		{"(>= 2 2)", "true"},
		{"(!= 1 1)", "false"},
		{`(+ "ab" "cd")`, "abcd"},
		{`(== "a" "a")`, "true"},
		{`(< "a" "b")`, "true"},
		{"(& true false)", "false"},
		{"(| true false)", "true"},
		{"(! true)", "false"},
		{"(== true true)", "true"},
		{"(== null null)", "true"},
		{"(+ (* 2 3) (- 10 (/ 9 3)))", "13"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			out := runSource(t, mainClass("(print "+tt.expr+")"))
			requireOutput(t, out, tt.want)
		})
	}
}

func TestOperatorErrors(t *testing.T) {
	tests := []struct {
		expr string
		kind ErrorKind
	}{
		{`(+ 1 "a")`, TypeError},
		{"(+ true false)", TypeError},
		{`(- "a" "b")`, TypeError},
		{"(< true false)", TypeError},
		{"(& 1 0)", TypeError},
		{"(! 1)", TypeError},
		{"(== 1 true)", TypeError},
		{"(== 1 null)", TypeError},
		{"(/ 1 0)", FaultError},
		{"(% 1 0)", FaultError},
		{"(^ 1 2)", SyntaxError},
		{"(+ 1)", SyntaxError},
		{"undefined_name", NameError},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			requireRunError(t, mainClass("(print "+tt.expr+")"), tt.kind)
		})
	}
}

func TestObjectComparison(t *testing.T) {
	out := runSource(t, `
(class animal)
(class dog inherits animal)
(class main
  (field animal a null)
  (field dog d null)
  (method void main ()
    (begin
      (print (== a null) " " (== a d))
      (set d (new dog))
      (set a d)
      (print (== a d) " " (!= a null))
      (set a (new dog))
      (print (== a d)))))
`)
	requireOutput(t, out, "true true", "true true", "false")
}

func TestUnrelatedObjectComparisonIsTypeError(t *testing.T) {
	requireRunError(t, `
(class cat)
(class dog)
(class main
  (field cat c null)
  (field dog d null)
  (method void main () (print (== c d))))
`, TypeError)
}

func TestNullFieldDereference(t *testing.T) {
	err, out := requireRunError(t, `
(class node
  (method int value () (return 1)))
(class main
  (field node next null)
  (method void main ()
    (begin
      (print "start")
      (print (call next value)))))
`, FaultError)
	requireOutput(t, out, "start")
	if err.Line != 9 {
		t.Fatalf("expected line 9, got %d", err.Line)
	}
}

func TestRecursion(t *testing.T) {
	out := runSource(t, `
(class main
  (method int fact ((int n))
    (if (<= n 1)
      (return 1)
      (return (* n (call me fact (- n 1))))))
  (method void main () (print (call me fact 10))))
`)
	requireOutput(t, out, "3628800")
}

func TestUnknownStatement(t *testing.T) {
	requireRunError(t, mainClass(`(loop forever)`), SyntaxError)
}

func TestRuntimeErrorRendering(t *testing.T) {
	err, _ := requireRunError(t, `
(class main
  (method void boom () (print (/ 1 0)))
  (method void main () (call me boom)))
`, FaultError)
	msg := err.Error()
	for _, want := range []string{"FaultError on line 3", "division by zero", "at main.boom"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
	if kind, ok := ErrorKindOf(err); !ok || kind != FaultError {
		t.Fatalf("ErrorKindOf returned %s %t", kind, ok)
	}
	if ErrorLine(err) != 3 {
		t.Fatalf("expected line 3, got %d", ErrorLine(err))
	}
}
