package tagexpr

// ParseError reports a malformed expression. It is terminal for the
// whole expression: no partially built tree is returned alongside it.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Msg
}

// EvalError reports a leaf that cannot be evaluated, such as a
// malformed "text$N" count. Evaluation stops at the first error.
type EvalError struct {
	Msg string
}

func (e *EvalError) Error() string {
	return "eval error: " + e.Msg
}
