package brewin

import (
	"fmt"
	"strconv"
	"strings"
)

// formatCodeFrame renders the offending source line, preceded by the line
// before it when there is one, with a caret under pos. Tabs are expanded to
// two spaces so the caret lines up.
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	expandTabs := func(text string) string { return strings.ReplaceAll(text, "\t", "  ") }
	render := func(n int) string { return expandTabs(strings.TrimRight(lines[n-1], "\r")) }
	raw := []rune(strings.TrimRight(lines[pos.Line-1], "\r"))
	column := min(max(pos.Column, 1), len(raw)+1)
	caret := len([]rune(expandTabs(string(raw[:column-1]))))

	width := len(strconv.Itoa(pos.Line))
	var b strings.Builder
	fmt.Fprintf(&b, "  --> line %d, column %d", pos.Line, column)
	if pos.Line > 1 {
		if prev := render(pos.Line - 1); strings.TrimSpace(prev) != "" {
			fmt.Fprintf(&b, "\n %*d | %s", width, pos.Line-1, prev)
		}
	}
	fmt.Fprintf(&b, "\n %*d | %s", width, pos.Line, render(pos.Line))
	fmt.Fprintf(&b, "\n %s | %s^", strings.Repeat(" ", width), strings.Repeat(" ", caret))
	return b.String()
}
