package tagexpr

import (
	"unicode"
)

// TokenType represents the type of a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenLParen
	TokenRParen
	TokenAnd
	TokenOr
	TokenNot
	TokenName
)

// Token represents a lexical token.
type Token struct {
	Type  TokenType
	Value string
}

// Lexer tokenizes boolean tag expressions.
type Lexer struct {
	input string
	pos   int
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, pos: 0}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF}
	}

	ch := l.input[l.pos]
	if tok, ok := opToken(ch); ok {
		l.pos++
		return tok
	}

	return l.readName()
}

// Lex drains the input into a token sequence. It cannot fail with the
// current character classes; the error return is kept so the signature
// does not change if the grammar ever grows token-level validation.
func Lex(input string) ([]Token, error) {
	l := NewLexer(input)

	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Type == TokenEOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

func opToken(ch byte) (Token, bool) {
	switch ch {
	case '(':
		return Token{Type: TokenLParen, Value: "("}, true
	case ')':
		return Token{Type: TokenRParen, Value: ")"}, true
	case '&':
		return Token{Type: TokenAnd, Value: "&"}, true
	case '|', ',':
		// ',' is an alias for '|'
		return Token{Type: TokenOr, Value: string(ch)}, true
	case '!':
		return Token{Type: TokenNot, Value: "!"}, true
	}
	return Token{}, false
}

func isOperator(ch byte) bool {
	_, ok := opToken(ch)
	return ok
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

// readName accumulates characters until whitespace or an operator.
// Names carry no reserved characters beyond the operators, so anything
// else (digits, '$', unicode) is part of the name.
func (l *Lexer) readName() Token {
	start := l.pos
	for l.pos < len(l.input) && !isOperator(l.input[l.pos]) && !unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
	return Token{Type: TokenName, Value: l.input[start:l.pos]}
}
