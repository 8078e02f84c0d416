package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/mgomes/brewin/brewin"
)

type lintWarning struct {
	Method  string
	Pos     brewin.Position
	Message string
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("brewin analyze: program path required")
	}

	programPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve program path: %w", err)
	}
	input, err := os.ReadFile(programPath)
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}

	engine := brewin.MustNewEngine(brewin.Config{})
	program, err := engine.Compile(string(input))
	if err != nil {
		return fmt.Errorf("analysis load failed: %w", err)
	}

	warnings := analyzeProgramWarnings(program)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := warning.Pos.Line
		column := warning.Pos.Column
		if line <= 0 {
			line = 1
		}
		if column <= 0 {
			column = 1
		}
		fmt.Printf("%s:%d:%d: %s (%s)\n", programPath, line, column, warning.Message, warning.Method)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

func analyzeProgramWarnings(program *brewin.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	for _, cd := range program.Classes() {
		for _, method := range cd.MethodList() {
			name := cd.Name + "." + method.Name
			lintStatement(name, method.Body, &warnings)
			lintExpressions(program, cd, name, method.Body, &warnings)
		}
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		if warnings[i].Pos.Column != warnings[j].Pos.Column {
			return warnings[i].Pos.Column < warnings[j].Pos.Column
		}
		return warnings[i].Method < warnings[j].Method
	})

	return warnings
}

func lintStatements(method string, statements []*brewin.Node, warnings *[]lintWarning) bool {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			*warnings = append(*warnings, lintWarning{
				Method:  method,
				Pos:     stmt.Pos(),
				Message: "unreachable statement",
			})
			continue
		}
		if lintStatement(method, stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

// lintStatement reports whether stmt always returns.
func lintStatement(method string, stmt *brewin.Node, warnings *[]lintWarning) bool {
	if stmt == nil || !stmt.IsList() {
		return false
	}
	switch stmt.Head() {
	case "return":
		return true
	case "begin":
		return lintStatements(method, stmt.List[1:], warnings)
	case "let":
		if stmt.Len() < 2 {
			return false
		}
		return lintStatements(method, stmt.List[2:], warnings)
	case "if":
		consequent := lintStatement(method, stmt.Item(2), warnings)
		if stmt.Len() < 4 {
			return false
		}
		alternate := lintStatement(method, stmt.Item(3), warnings)
		return consequent && alternate
	case "while":
		lintStatement(method, stmt.Item(2), warnings)
		return false
	default:
		return false
	}
}

// lintExpressions walks every form under node looking for instantiations
// of unknown classes and super calls in classes without a base.
func lintExpressions(program *brewin.Program, cd *brewin.ClassDef, method string, node *brewin.Node, warnings *[]lintWarning) {
	if node == nil || !node.IsList() {
		return
	}
	switch node.Head() {
	case "new":
		if target := node.Item(1); target != nil && !target.IsList() {
			if _, ok := program.Class(target.Atom); !ok {
				*warnings = append(*warnings, lintWarning{
					Method:  method,
					Pos:     node.Pos(),
					Message: fmt.Sprintf("new of undefined class %s", target.Atom),
				})
			}
		}
	case "call":
		if recv := node.Item(1); recv != nil && !recv.IsList() && recv.Atom == "super" && cd.Parent == nil {
			*warnings = append(*warnings, lintWarning{
				Method:  method,
				Pos:     node.Pos(),
				Message: fmt.Sprintf("super used in class %s, which has no base class", cd.Name),
			})
		}
	}
	for _, child := range node.List {
		lintExpressions(program, cd, method, child, warnings)
	}
}
