package edn

import "fmt"

// TokenType classifies a lexical token in a value literal.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenString
	TokenAtom
	TokenLeftBracket
	TokenRightBracket
	TokenLeftBrace
	TokenRightBrace
	TokenLeftParen
	TokenRightParen
)

// Token is one lexical token with its source position.
type Token struct {
	Type  TokenType
	Value string
	Line  int
	Col   int
}

var tokenTypeNames = map[TokenType]string{
	TokenEOF:          "EOF",
	TokenString:       "String",
	TokenAtom:         "Atom",
	TokenLeftBracket:  "LeftBracket",
	TokenRightBracket: "RightBracket",
	TokenLeftBrace:    "LeftBrace",
	TokenRightBrace:   "RightBrace",
	TokenLeftParen:    "LeftParen",
	TokenRightParen:   "RightParen",
}

func (tt TokenType) String() string {
	if name, ok := tokenTypeNames[tt]; ok {
		return name
	}
	return "Unknown"
}

// String renders the token with its source position, for error messages and
// test failures.
func (t Token) String() string {
	name, ok := tokenTypeNames[t.Type]
	if !ok {
		name = "Unknown"
	}
	switch t.Type {
	case TokenString:
		return fmt.Sprintf("%s[%d:%d]:%q", name, t.Line, t.Col, t.Value)
	case TokenAtom:
		return fmt.Sprintf("%s[%d:%d]:%s", name, t.Line, t.Col, t.Value)
	default:
		return fmt.Sprintf("%s[%d:%d]", name, t.Line, t.Col)
	}
}
