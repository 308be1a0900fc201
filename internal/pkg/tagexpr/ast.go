package tagexpr

import "fmt"

// Node is the interface implemented by all AST nodes. A tree is built
// once by Parse and never mutated afterwards.
type Node interface {
	fmt.Stringer
	node() // marker method
}

// Binary operators. ',' in the input is normalized to OpOr.
const (
	OpAnd = "&"
	OpOr  = "|"
)

// BinaryNode represents a binary logical expression (and, or).
type BinaryNode struct {
	Op    string // OpAnd or OpOr
	Left  Node
	Right Node
}

func (BinaryNode) node() {}

func (n BinaryNode) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}

// NotNode negates its inner expression.
type NotNode struct {
	Expr Node
}

func (NotNode) node() {}

func (n NotNode) String() string {
	return "!(" + n.Expr.String() + ")"
}

// NameNode is a leaf tag. Plain text matches membership in the tag set;
// the form "text$N" matches exactly N occurrences of text.
type NameNode struct {
	Text string
}

func (NameNode) node() {}

func (n NameNode) String() string {
	return n.Text
}
