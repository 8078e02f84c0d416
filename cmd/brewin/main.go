package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mgomes/brewin/brewin"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "fmt":
		return fmtCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "repl":
		return runREPL()
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "read engine settings from a YAML file")
	checkOnly := fs.Bool("check", false, "only load the program without executing")
	trace := fs.Bool("trace", false, "log statements and method dispatch to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("brewin run: program path required")
	}
	programPath, err := filepath.Abs(remaining[0])
	if err != nil {
		return fmt.Errorf("resolve program path: %w", err)
	}
	input, err := os.ReadFile(programPath)
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}

	cfg, err := loadRunConfig(*configPath, programPath)
	if err != nil {
		return err
	}
	if *trace {
		cfg.Trace = true
	}
	engine, err := brewin.NewEngine(cfg)
	if err != nil {
		return err
	}
	program, err := engine.Compile(string(input))
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	if *checkOnly {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if _, err := program.Run(ctx, brewin.RunOptions{Stdin: os.Stdin, Stdout: os.Stdout}); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	return nil
}

// loadRunConfig reads an explicit -config file, or a brewin.yaml sitting
// next to the program when no flag is given.
func loadRunConfig(explicit, programPath string) (brewin.Config, error) {
	if explicit != "" {
		return brewin.LoadConfig(explicit)
	}
	candidate := filepath.Join(filepath.Dir(programPath), brewin.DefaultConfigFile)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return brewin.Config{}, nil
		}
		return brewin.Config{}, fmt.Errorf("access %s: %w", candidate, err)
	}
	return brewin.LoadConfig(candidate)
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] <args>\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-config file] [-check] [-trace] <program>")
	fmt.Fprintln(os.Stderr, "    load and run a program's main.main; steps are unbounded unless step_quota is set")
	fmt.Fprintln(os.Stderr, "  fmt [-w] [-check] <paths...>")
	fmt.Fprintln(os.Stderr, "    re-indent .brewin files by nesting depth")
	fmt.Fprintln(os.Stderr, "  analyze <program>")
	fmt.Fprintln(os.Stderr, "    report likely mistakes without running")
	fmt.Fprintln(os.Stderr, "  repl")
	fmt.Fprintln(os.Stderr, "    start an interactive session (one million steps per input)")
}

// printError writes err to w. On a terminal the headline is colored and
// the code frame and stack are dimmed.
func printError(w io.Writer, err error) {
	text := err.Error()
	if !isTerminal(w) {
		fmt.Fprintln(w, text)
		return
	}
	headline, rest, found := strings.Cut(text, "\n")
	fmt.Fprintln(w, errorStyle.Render(headline))
	if found {
		fmt.Fprintln(w, mutedStyle.Render(rest))
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
