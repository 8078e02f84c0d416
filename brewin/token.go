package brewin

import "sort"

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenLParen TokenType = "("
	tokenRParen TokenType = ")"
	tokenAtom   TokenType = "ATOM"
	tokenString TokenType = "STRING"
)

// Reserved words of the language. The reader passes them through as plain
// atoms; the loader and evaluator recognize them by spelling.
const (
	keywordClass    = "class"
	keywordInherits = "inherits"
	keywordField    = "field"
	keywordMethod   = "method"

	keywordBegin  = "begin"
	keywordSet    = "set"
	keywordIf     = "if"
	keywordCall   = "call"
	keywordWhile  = "while"
	keywordReturn = "return"
	keywordInputS = "inputs"
	keywordInputI = "inputi"
	keywordPrint  = "print"
	keywordLet    = "let"
	keywordNew    = "new"

	keywordMe    = "me"
	keywordSuper = "super"

	literalTrue    = "true"
	literalFalse   = "false"
	literalNull    = "null"
	literalNothing = "nothing"

	typeInt    = "int"
	typeBool   = "bool"
	typeString = "string"
	typeVoid   = "void"
)

var reservedWords = map[string]struct{}{
	keywordClass: {}, keywordInherits: {}, keywordField: {}, keywordMethod: {},
	keywordBegin: {}, keywordSet: {}, keywordIf: {}, keywordCall: {},
	keywordWhile: {}, keywordReturn: {}, keywordInputS: {}, keywordInputI: {},
	keywordPrint: {}, keywordLet: {}, keywordNew: {}, keywordMe: {}, keywordSuper: {},
	literalTrue: {}, literalFalse: {}, literalNull: {}, literalNothing: {},
	typeInt: {}, typeBool: {}, typeString: {}, typeVoid: {},
}

// IsReserved reports whether word is one of the language's reserved words.
func IsReserved(word string) bool {
	_, ok := reservedWords[word]
	return ok
}

// ReservedWords lists the reserved words in sorted order.
func ReservedWords() []string {
	words := make([]string, 0, len(reservedWords))
	for word := range reservedWords {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position identifies a line and column in the source file.
type Position struct {
	Line   int
	Column int
}
