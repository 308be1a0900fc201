package tagexpr

// MaxDepth bounds parser recursion against pathological input.
const MaxDepth = 20

// Expr is a compiled boolean tag expression. An expression parsed from
// empty input has a nil root and matches every tag set, so both a nil
// *Expr and an empty one act as the identity filter.
type Expr struct {
	root Node
}

// Parse compiles the input into an Expr. Whitespace-only input yields
// the empty expression.
func Parse(input string) (*Expr, error) {
	tokens, err := Lex(input)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return &Expr{}, nil
	}

	p := &parser{tokens: tokens}
	root, err := p.parseExpr(MaxDepth)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, &ParseError{Msg: "expected end of expression, found extra tokens"}
	}

	return &Expr{root: root}, nil
}

// Root returns the root node, nil for the empty expression.
func (e *Expr) Root() Node {
	if e == nil {
		return nil
	}
	return e.root
}

// String renders the canonical, fully bracketed text form. Re-parsing
// it yields an equivalent tree.
func (e *Expr) String() string {
	if e == nil || e.root == nil {
		return ""
	}
	return e.root.String()
}

// parser is a recursive-descent parser over a fixed token slice with
// two tokens of lookahead. The operators have no precedence: a binary
// operator always binds a single fully resolved unit on the left and
// the rest of the expression on the right, so "a & b & c" nests as
// (a & (b & c)) and grouping is needed to control anything else.
type parser struct {
	tokens []Token
	pos    int
}

func (p *parser) peek(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *parser) next() Token {
	tok := p.peek(0)
	if tok.Type != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpr(depth int) (Node, error) {
	if depth == 0 {
		return nil, &ParseError{Msg: "expression too deep"}
	}

	switch tok := p.peek(0); tok.Type {
	case TokenEOF:
		return nil, &ParseError{Msg: "unexpected end of expression"}

	case TokenRParen:
		return nil, &ParseError{Msg: "unexpected closing bracket"}

	case TokenLParen:
		return p.parseGroup(depth)

	case TokenNot:
		return p.parseNot(depth)

	case TokenName:
		return p.parseName(depth)

	default: // TokenAnd, TokenOr
		return nil, &ParseError{Msg: "unexpected binary operator"}
	}
}

// parseGroup parses "( E )" and, if a binary operator follows, binds
// the bracketed group as its left operand.
func (p *parser) parseGroup(depth int) (Node, error) {
	p.next() // consume '('

	inner, err := p.parseExpr(depth - 1)
	if err != nil {
		return nil, err
	}
	if p.peek(0).Type != TokenRParen {
		return nil, &ParseError{Msg: "expected closing bracket"}
	}
	p.next() // consume ')'

	switch p.peek(0).Type {
	case TokenAnd, TokenOr:
		op := binaryOp(p.next().Type)
		right, err := p.parseExpr(depth - 1)
		if err != nil {
			return nil, err
		}
		return BinaryNode{Op: op, Left: inner, Right: right}, nil
	case TokenEOF, TokenRParen:
		return inner, nil
	default:
		return nil, &ParseError{Msg: "invalid token after closing bracket"}
	}
}

// parseNot parses a negation. "!(...)" negates the whole group
// expression, trailing binary continuation included. An unbracketed
// "!name & rest" is ambiguous; it resolves so that the negation binds
// only the adjacent name: (!(name) & rest).
func (p *parser) parseNot(depth int) (Node, error) {
	p.next() // consume '!'

	switch p.peek(0).Type {
	case TokenLParen:
		inner, err := p.parseExpr(depth - 1)
		if err != nil {
			return nil, err
		}
		return NotNode{Expr: inner}, nil

	case TokenName:
		switch p.peek(1).Type {
		case TokenAnd, TokenOr:
			left := NotNode{Expr: NameNode{Text: p.next().Value}}
			op := binaryOp(p.next().Type)
			right, err := p.parseExpr(depth - 1)
			if err != nil {
				return nil, err
			}
			return BinaryNode{Op: op, Left: left, Right: right}, nil
		case TokenEOF, TokenRParen:
			return NotNode{Expr: NameNode{Text: p.next().Value}}, nil
		default:
			return nil, &ParseError{Msg: "invalid token after negated name"}
		}

	case TokenNot:
		return nil, &ParseError{Msg: "double negation is not supported"}

	case TokenEOF:
		return nil, &ParseError{Msg: "expected expression after '!', got end of expression"}

	default:
		return nil, &ParseError{Msg: "expected expression after '!'"}
	}
}

func (p *parser) parseName(depth int) (Node, error) {
	switch p.peek(1).Type {
	case TokenAnd, TokenOr:
		left := NameNode{Text: p.next().Value}
		op := binaryOp(p.next().Type)
		right, err := p.parseExpr(depth - 1)
		if err != nil {
			return nil, err
		}
		return BinaryNode{Op: op, Left: left, Right: right}, nil
	case TokenEOF, TokenRParen:
		return NameNode{Text: p.next().Value}, nil
	default:
		return nil, &ParseError{Msg: "name followed by invalid token"}
	}
}

func binaryOp(t TokenType) string {
	if t == TokenAnd {
		return OpAnd
	}
	return OpOr
}
