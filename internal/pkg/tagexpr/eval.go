package tagexpr

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Matches evaluates the expression against a tag set. Order of tags is
// irrelevant; duplicates matter only for "text$N" count leaves. A nil
// or empty expression matches everything.
func (e *Expr) Matches(tags []string) (bool, error) {
	if e == nil || e.root == nil {
		return true, nil
	}
	return match(e.root, tags)
}

func match(node Node, tags []string) (bool, error) {
	switch n := node.(type) {
	case NotNode:
		ok, err := match(n.Expr, tags)
		if err != nil {
			return false, err
		}
		return !ok, nil

	case BinaryNode:
		left, err := match(n.Left, tags)
		if err != nil {
			return false, err
		}
		if n.Op == OpAnd {
			if !left {
				return false, nil
			}
			return match(n.Right, tags)
		}
		if left {
			return true, nil
		}
		return match(n.Right, tags)

	case NameNode:
		return matchName(n.Text, tags)

	default:
		return false, &EvalError{Msg: fmt.Sprintf("unknown node type %T", node)}
	}
}

// matchName evaluates a leaf. "text" is plain membership; "text$N"
// requires exactly N occurrences of text in the tag set.
func matchName(text string, tags []string) (bool, error) {
	parts := strings.Split(text, "$")
	switch len(parts) {
	case 1:
		return slices.Contains(tags, text), nil

	case 2:
		want, err := strconv.ParseUint(parts[1], 10, 64)
		if err != nil {
			return false, &EvalError{Msg: fmt.Sprintf("invalid count in %q: %v", text, err)}
		}
		var count uint64
		for _, tag := range tags {
			if tag == parts[0] {
				count++
			}
		}
		return count == want, nil

	default:
		return false, &EvalError{Msg: fmt.Sprintf("unexpected text format: %q", text)}
	}
}
