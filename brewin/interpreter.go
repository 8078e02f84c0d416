package brewin

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

const (
	defaultEntryClass     = "main"
	defaultEntryMethod    = "main"
	defaultRecursionLimit = 1000
)

// Config controls program entry and execution bounds. A zero StepQuota
// leaves the number of evaluation steps unbounded.
type Config struct {
	EntryClass     string
	EntryMethod    string
	StepQuota      int
	RecursionLimit int
	Trace          bool
	Logger         *slog.Logger
}

// Engine loads programs under a fixed configuration.
type Engine struct {
	config Config
	logger *slog.Logger
}

// NewEngine constructs an Engine, filling unset entry points and the
// recursion limit with defaults.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("brewin: step quota must not be negative (got %d)", cfg.StepQuota)
	}
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("brewin: recursion limit must not be negative (got %d)", cfg.RecursionLimit)
	}
	if cfg.EntryClass == "" {
		cfg.EntryClass = defaultEntryClass
	}
	if cfg.EntryMethod == "" {
		cfg.EntryMethod = defaultEntryMethod
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}

	logger := cfg.Logger
	switch {
	case logger != nil:
	case cfg.Trace:
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	default:
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{config: cfg, logger: logger}, nil
}

// MustNewEngine constructs an Engine or panics if the config is invalid.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// ConfigSummary provides a human-readable description of the engine limits.
func (e *Engine) ConfigSummary() string {
	steps := "unlimited"
	if e.config.StepQuota > 0 {
		steps = fmt.Sprint(e.config.StepQuota)
	}
	return fmt.Sprintf("entry=%s.%s steps=%s recursion=%d trace=%t",
		e.config.EntryClass, e.config.EntryMethod, steps, e.config.RecursionLimit, e.config.Trace)
}

// Program is a loaded, validated class table ready to run.
type Program struct {
	engine  *Engine
	classes *classTable
	source  string
}

// Compile parses source and builds its class table. Classes are defined in
// source order; a base class must appear before its subclasses.
func (e *Engine) Compile(source string) (*Program, error) {
	forms, err := parseProgram(source)
	if err != nil {
		return nil, err
	}
	classes := newClassTable(source)
	for _, form := range forms {
		if _, err := classes.define(form); err != nil {
			return nil, err
		}
	}
	if err := classes.validate(); err != nil {
		return nil, err
	}
	e.logger.Debug("program loaded", "classes", len(classes.order))
	return &Program{engine: e, classes: classes, source: source}, nil
}

// Classes returns the program's class definitions in source order.
func (p *Program) Classes() []*ClassDef {
	out := make([]*ClassDef, 0, len(p.classes.order))
	for _, name := range p.classes.order {
		out = append(out, p.classes.classes[name])
	}
	return out
}

// Class looks up a class definition by name.
func (p *Program) Class(name string) (*ClassDef, bool) {
	return p.classes.lookup(name)
}

// RunOptions supplies the program's I/O collaborators. Input lines are
// consumed before Stdin is read.
type RunOptions struct {
	Stdin  io.Reader
	Stdout io.Writer
	Input  []string
}

// Result holds every line the program printed.
type Result struct {
	Output []string
}

// Run instantiates the entry class and invokes its entry method.
func (p *Program) Run(ctx context.Context, opts RunOptions) (Result, error) {
	exec := p.newExecution(ctx, opts)
	obj, err := exec.instantiate(p.engine.config.EntryClass, Position{})
	if err != nil {
		return Result{Output: exec.output.lines}, err
	}
	_, err = exec.callMethod(obj, p.engine.config.EntryMethod, nil, Position{}, nil)
	return Result{Output: exec.output.lines}, err
}

// Instantiate builds a new instance of className outside of any run.
func (p *Program) Instantiate(className string) (*Object, error) {
	cd, ok := p.classes.lookup(className)
	if !ok {
		return nil, &RuntimeError{Kind: TypeError, Message: fmt.Sprintf("no class named %s found", className)}
	}
	return newObject(p.classes, cd, uuid.New())
}

// CallMethod invokes method on obj with args, as the program's own entry
// call does.
func (p *Program) CallMethod(ctx context.Context, obj *Object, method string, args []Value, opts RunOptions) (Value, Result, error) {
	if obj == nil {
		return Value{}, Result{}, &RuntimeError{Kind: FaultError, Message: "null dereference calling " + method}
	}
	exec := p.newExecution(ctx, opts)
	val, err := exec.callMethod(obj, method, args, Position{}, nil)
	return val, Result{Output: exec.output.lines}, err
}

func (p *Program) newExecution(ctx context.Context, opts RunOptions) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Execution{
		program:      p,
		ctx:          ctx,
		quota:        p.engine.config.StepQuota,
		recursionCap: p.engine.config.RecursionLimit,
		input:        newLineInput(opts.Input, opts.Stdin),
		output:       newLineOutput(opts.Stdout),
		logger:       p.engine.logger,
		trace:        p.engine.config.Trace,
	}
}
