package brewin

import (
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch  rune
	eof bool
}

func newLexer(input string) *lexer {
	l := &lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

func (l *lexer) readRune() {
	if l.offset >= len(l.input) {
		l.width = 0
		l.ch = 0
		l.eof = true
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.offset:])
	l.width = w
	l.offset += w

	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}

	l.ch = r
}

// NextToken returns the next token. String tokens keep their surrounding
// quotes so literal parsing can tell "null" from null.
func (l *lexer) NextToken() Token {
	l.skipWhitespaceAndComments()

	tok := Token{Pos: Position{Line: l.line, Column: l.column}}

	if l.eof {
		tok.Type = tokenEOF
		return tok
	}

	switch l.ch {
	case 0:
		tok.Type = tokenIllegal
		tok.Literal = "NUL byte in source"
		return tok
	case '(', '[':
		tok.Type = tokenLParen
		tok.Literal = "("
		l.readRune()
	case ')', ']':
		tok.Type = tokenRParen
		tok.Literal = ")"
		l.readRune()
	case '"':
		literal, problem := l.readString()
		if problem != "" {
			tok.Type = tokenIllegal
			tok.Literal = problem
			return tok
		}
		tok.Type = tokenString
		tok.Literal = literal
	default:
		tok.Type = tokenAtom
		tok.Literal = l.readAtom()
	}
	return tok
}

func (l *lexer) currentOffset() int {
	return l.offset - l.width
}

func (l *lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.eof:
			return
		case l.ch == '#':
			l.skipComment()
		case l.ch != 0 && unicode.IsSpace(l.ch):
			l.readRune()
		default:
			return
		}
	}
}

func (l *lexer) skipComment() {
	for !l.eof && l.ch != '\n' {
		l.readRune()
	}
}

func (l *lexer) readAtom() string {
	start := l.currentOffset()
	for isAtomRune(l.ch) {
		l.readRune()
	}
	return l.input[start:l.currentOffset()]
}

// readString consumes a double-quoted string. There are no escapes; a string
// may not span lines. A non-empty problem describes a malformed string.
func (l *lexer) readString() (literal, problem string) {
	start := l.currentOffset()
	for {
		l.readRune()
		switch {
		case l.eof, l.ch == '\n':
			return "", "unterminated string"
		case l.ch == 0:
			return "", "NUL byte in string"
		case l.ch == '"':
			l.readRune()
			return l.input[start:l.currentOffset()], ""
		}
	}
}

func isAtomRune(r rune) bool {
	if r == 0 || unicode.IsSpace(r) {
		return false
	}
	switch r {
	case '(', ')', '[', ']', '"', '#':
		return false
	}
	return true
}
