package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mgomes/brewin/brewin"
)

const sourceExt = ".brewin"

func fmtCommand(args []string) error {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	write := fs.Bool("w", false, "write result to source files instead of stdout")
	check := fs.Bool("check", false, "fail if any source file needs formatting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("brewin fmt: path required")
	}

	files, err := collectSourceFiles(fs.Args())
	if err != nil {
		return err
	}

	var stale []string
	for _, path := range files {
		raw, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		formatted, err := formatSource(string(raw))
		if err != nil {
			return fmt.Errorf("brewin fmt: %s: %w", path, err)
		}
		if formatted == string(raw) {
			if !*write && !*check {
				fmt.Print(formatted)
			}
			continue
		}
		stale = append(stale, path)

		switch {
		case *write:
			info, err := os.Stat(path)
			if err != nil {
				return fmt.Errorf("stat %s: %w", path, err)
			}
			if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
		case !*check:
			fmt.Print(formatted)
		}
	}

	if *check && len(stale) > 0 {
		return fmt.Errorf("brewin fmt: %d file(s) need formatting: %s", len(stale), strings.Join(stale, ", "))
	}
	return nil
}

// collectSourceFiles expands targets into a sorted, de-duplicated list of
// .brewin files. Directories are walked recursively, skipping hidden ones.
func collectSourceFiles(targets []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(path string) error {
		if filepath.Ext(path) != sourceExt {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", path, err)
		}
		if _, dup := seen[abs]; !dup {
			seen[abs] = struct{}{}
			files = append(files, abs)
		}
		return nil
	}

	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", target, err)
		}
		if !info.IsDir() {
			if err := add(target); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(target, func(path string, entry fs.DirEntry, walkErr error) error {
			switch {
			case walkErr != nil:
				return walkErr
			case entry.IsDir() && path != target && strings.HasPrefix(entry.Name(), "."):
				return filepath.SkipDir
			case entry.IsDir():
				return nil
			}
			return add(path)
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// formatSource re-indents source two spaces per level of list nesting. Each
// line's depth comes from the first node or closing parenthesis on it; a
// comment-only line takes the depth of the code that follows. Sources that
// do not parse are refused.
func formatSource(source string) (string, error) {
	normalized := strings.ReplaceAll(source, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")

	forms, err := brewin.Parse(normalized)
	if err != nil {
		return "", err
	}
	lines := strings.Split(strings.TrimRight(normalized, "\n"), "\n")
	depths := lineDepths(forms, len(lines))

	next := 0
	for i := len(lines) - 1; i >= 0; i-- {
		body := strings.TrimSpace(lines[i])
		switch {
		case body == "":
			lines[i] = ""
			continue
		case depths[i] < 0:
			depths[i] = next
		}
		next = depths[i]
		lines[i] = strings.Repeat(indentUnit, depths[i]) + body
	}
	return strings.Join(lines, "\n") + "\n", nil
}

const indentUnit = "  "

// lineDepths maps each zero-based line to the nesting depth of its leftmost
// token, or -1 when no token starts there.
func lineDepths(forms []*brewin.Node, lineCount int) []int {
	depths := make([]int, lineCount)
	columns := make([]int, lineCount)
	for i := range depths {
		depths[i] = -1
	}
	mark := func(pos brewin.Position, depth int) {
		i := pos.Line - 1
		if i < 0 || i >= lineCount {
			return
		}
		if depths[i] < 0 || pos.Column < columns[i] {
			depths[i], columns[i] = depth, pos.Column
		}
	}
	var walk func(n *brewin.Node, depth int)
	walk = func(n *brewin.Node, depth int) {
		mark(n.Pos(), depth)
		if !n.IsList() {
			return
		}
		for _, item := range n.List {
			walk(item, depth+1)
		}
		mark(n.End(), depth)
	}
	for _, form := range forms {
		walk(form, 0)
	}
	return depths
}
