package brewin

import "strings"

// Node is one element of a parsed program: either an atom or a
// parenthesized list. A list is positioned at its opening parenthesis,
// which shares a line with its head element.
type Node struct {
	Atom     string
	List     []*Node
	isList   bool
	position Position
	end      Position
}

func newAtom(literal string, pos Position) *Node {
	return &Node{Atom: literal, position: pos, end: pos}
}

func newList(items []*Node, open, close Position) *Node {
	return &Node{List: items, isList: true, position: open, end: close}
}

func (n *Node) Pos() Position { return n.position }

// End locates a list's closing parenthesis. For an atom it equals Pos.
func (n *Node) End() Position { return n.end }

func (n *Node) IsList() bool { return n.isList }

// Len returns the number of elements of a list node, or zero for an atom.
func (n *Node) Len() int { return len(n.List) }

// Head returns the leading atom of a list, or "" when the node is an atom,
// an empty list, or a list headed by another list.
func (n *Node) Head() string {
	if !n.isList || len(n.List) == 0 || n.List[0].isList {
		return ""
	}
	return n.List[0].Atom
}

// Item returns the i-th element of a list node or nil when out of range.
func (n *Node) Item(i int) *Node {
	if !n.isList || i < 0 || i >= len(n.List) {
		return nil
	}
	return n.List[i]
}

func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if !n.isList {
		b.WriteString(n.Atom)
		return
	}
	b.WriteByte('(')
	for i, item := range n.List {
		if i > 0 {
			b.WriteByte(' ')
		}
		item.write(b)
	}
	b.WriteByte(')')
}
