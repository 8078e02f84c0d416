package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/brewin/brewin"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)
)

const (
	replPrompt         = "brewin> "
	continuationPrompt = "   ...> "
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

// replModel keeps the transcript and any lines of an entry whose
// parentheses are still open.
type replModel struct {
	textInput   textinput.Model
	session     *brewin.Session
	history     []historyEntry
	pending     []string
	width       int
	height      int
	quitting    bool
	initialized bool
}

type keyMap struct {
	Enter    key.Binding
	Quit     key.Binding
	Clear    key.Binding
	Complete key.Binding
	Cancel   key.Binding
}

var keys = keyMap{
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+c", "quit")),
	Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "drop entry")),
}

var replCommands = []struct{ name, desc string }{
	{":help", "list commands"},
	{":classes", "list defined classes"},
	{":clear", "clear the transcript"},
	{":reset", "forget all classes"},
	{":quit", "exit"},
}

// replStepQuota stops a runaway input line so the prompt comes back.
const replStepQuota = 1_000_000

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "(class ...) or a statement"
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = replPrompt

	engine := brewin.MustNewEngine(brewin.Config{StepQuota: replStepQuota})
	return replModel{textInput: ti, session: engine.NewSession()}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Clear):
			m.history = nil
			return m, nil

		case key.Matches(msg, keys.Cancel):
			m = m.dropPending()
			m.textInput.SetValue("")
			return m, nil

		case key.Matches(msg, keys.Complete):
			return m.handleAutocomplete(), nil

		case key.Matches(msg, keys.Enter):
			return m.submit(m.textInput.Value())
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// submit handles one entered line. Lines accumulate until every opened
// parenthesis is closed, so a class can be typed across several lines.
func (m replModel) submit(line string) (replModel, tea.Cmd) {
	m.textInput.SetValue("")
	if len(m.pending) == 0 {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			return m, nil
		}
		if strings.HasPrefix(trimmed, ":") {
			return m.handleCommand(trimmed)
		}
	}

	m.pending = append(m.pending, line)
	entry := strings.Join(m.pending, "\n")
	if openParens(entry) > 0 {
		m.textInput.Prompt = continuationPrompt
		return m, nil
	}
	m = m.dropPending()

	output, isErr := m.evaluate(entry)
	m.history = append(m.history, historyEntry{input: strings.TrimSpace(entry), output: output, isErr: isErr})
	return m, nil
}

func (m replModel) dropPending() replModel {
	m.pending = nil
	m.textInput.Prompt = replPrompt
	return m
}

// openParens counts the parentheses left open in text, ignoring those in
// string literals and comments.
func openParens(text string) int {
	depth := 0
	inString, inComment := false, false
	for _, r := range text {
		switch {
		case r == '\n':
			inString, inComment = false, false
		case inComment:
		case inString:
			inString = r != '"'
		case r == '"':
			inString = true
		case r == '#':
			inComment = true
		case r == '(':
			depth++
		case r == ')':
			depth--
		}
	}
	return depth
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		names := make([]string, 0, len(replCommands))
		for _, c := range replCommands {
			names = append(names, c.name+" "+c.desc)
		}
		m.history = append(m.history, historyEntry{input: input, output: strings.Join(names, "; ")})
	case ":clear", ":c":
		m.history = nil
	case ":classes", ":cl":
		classes := m.session.Classes()
		output := "No classes defined"
		if len(classes) > 0 {
			output = strings.Join(classes, ", ")
		}
		m.history = append(m.history, historyEntry{input: input, output: output})
	case ":reset", ":r":
		m.session.Reset()
		m.history = append(m.history, historyEntry{input: input, output: "Session reset"})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	// Complete the atom under the cursor, stripping any open parens.
	start := strings.LastIndexAny(input, " ([") + 1
	lastWord := input[start:]
	if lastWord == "" {
		return m
	}

	var completions []string
	for _, word := range brewin.ReservedWords() {
		if strings.HasPrefix(word, lastWord) {
			completions = append(completions, word)
		}
	}
	for _, class := range m.session.Classes() {
		name, _, _ := strings.Cut(class, " <")
		if strings.HasPrefix(name, lastWord) {
			completions = append(completions, name)
		}
	}

	if len(completions) == 1 {
		m.textInput.SetValue(input[:start] + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}

	return m
}

// evaluate runs one entry against the session. Printed lines come first,
// followed by the value of a trailing expression.
func (m replModel) evaluate(input string) (string, bool) {
	res, err := m.session.Eval(context.Background(), input, brewin.RunOptions{})
	lines := append([]string(nil), res.Output...)
	if err != nil {
		lines = append(lines, err.Error())
		return strings.Join(lines, "\n"), true
	}
	for _, name := range res.Defined {
		lines = append(lines, "defined class "+name)
	}
	if res.HasValue {
		lines = append(lines, formatValue(res.Value))
	}
	if len(lines) == 0 {
		return "ok", false
	}
	return strings.Join(lines, "\n"), false
}

// formatValue shows live objects with their identity so two references can
// be told apart.
func formatValue(v brewin.Value) string {
	switch v.Kind() {
	case brewin.KindObject:
		if obj := v.Object(); obj != nil {
			return obj.String()
		}
		return v.String()
	case brewin.KindString:
		return fmt.Sprintf("%q", v.Str())
	default:
		return v.String()
	}
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}
	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Brewin REPL") + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(m.width-2, 60))) + "\n\n")

	// Each entry takes at least three rows.
	visible := max((m.height-8-len(m.pending))/3, 1)
	start := max(len(m.history)-visible, 0)
	for _, entry := range m.history[start:] {
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + strings.ReplaceAll(entry.input, "\n", "\n    ") + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n\n")
		}
	}

	for i, line := range m.pending {
		prompt := continuationPrompt
		if i == 0 {
			prompt = replPrompt
		}
		b.WriteString(promptStyle.Render(prompt) + line + "\n")
	}
	b.WriteString(m.textInput.View() + "\n\n")

	var footer []string
	for _, binding := range []key.Binding{keys.Enter, keys.Complete, keys.Cancel, keys.Clear, keys.Quit} {
		help := binding.Help()
		footer = append(footer, helpKeyStyle.Render(help.Key)+mutedStyle.Render(" "+help.Desc))
	}
	b.WriteString(strings.Join(footer, "  ") + mutedStyle.Render("  :help commands"))
	return b.String()
}

func runREPL() error {
	p := tea.NewProgram(newREPLModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
