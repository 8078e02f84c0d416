package brewin

import (
	"bufio"
	"io"
	"strings"
)

// lineInput is the program's stdin collaborator: queued lines first, then
// lines scanned from the reader.
type lineInput struct {
	queued  []string
	scanner *bufio.Scanner
}

func newLineInput(lines []string, r io.Reader) *lineInput {
	in := &lineInput{queued: append([]string(nil), lines...)}
	if r != nil {
		in.scanner = bufio.NewScanner(r)
	}
	return in
}

func (in *lineInput) readLine() (string, error) {
	if len(in.queued) > 0 {
		line := in.queued[0]
		in.queued = in.queued[1:]
		return line, nil
	}
	if in.scanner == nil {
		return "", errInputExhausted
	}
	if !in.scanner.Scan() {
		if err := in.scanner.Err(); err != nil {
			return "", err
		}
		return "", errInputExhausted
	}
	return strings.TrimRight(in.scanner.Text(), "\r"), nil
}

// lineOutput records every printed line and forwards it to the writer.
type lineOutput struct {
	lines []string
	w     io.Writer
}

func newLineOutput(w io.Writer) *lineOutput {
	return &lineOutput{w: w}
}

func (out *lineOutput) writeLine(line string) error {
	out.lines = append(out.lines, line)
	if out.w == nil {
		return nil
	}
	_, err := io.WriteString(out.w, line+"\n")
	return err
}
