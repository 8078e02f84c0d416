package brewin

// parser turns program text into a forest of nested lists. It knows nothing
// about the language's forms; the loader and evaluator interpret them.
type parser struct {
	l      *lexer
	source string

	curToken  Token
	peekToken Token
}

func newParser(source string) *parser {
	p := &parser{l: newLexer(source), source: source}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

// Parse reads the top-level forms of source without loading them.
func Parse(source string) ([]*Node, error) {
	return parseProgram(source)
}

// parseProgram reads every top-level form in source.
func parseProgram(source string) ([]*Node, error) {
	p := newParser(source)
	var forms []*Node
	for p.curToken.Type != tokenEOF {
		node, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		forms = append(forms, node)
		p.nextToken()
	}
	return forms, nil
}

// parseNode parses the node starting at curToken and leaves curToken on its
// last token.
func (p *parser) parseNode() (*Node, error) {
	switch p.curToken.Type {
	case tokenAtom, tokenString:
		return newAtom(p.curToken.Literal, p.curToken.Pos), nil
	case tokenLParen:
		return p.parseList()
	case tokenRParen:
		return nil, p.errorf(p.curToken.Pos, "unexpected )")
	case tokenIllegal:
		return nil, p.errorf(p.curToken.Pos, "%s", p.curToken.Literal)
	default:
		return nil, p.errorf(p.curToken.Pos, "unexpected end of input")
	}
}

func (p *parser) parseList() (*Node, error) {
	open := p.curToken.Pos
	var items []*Node
	for {
		p.nextToken()
		switch p.curToken.Type {
		case tokenRParen:
			return newList(items, open, p.curToken.Pos), nil
		case tokenEOF:
			return nil, p.errorf(open, "unbalanced parentheses")
		}
		item, err := p.parseNode()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
}

func (p *parser) errorf(pos Position, format string, args ...any) error {
	return newSourceError(SyntaxError, p.source, pos, format, args...)
}
