package edn

import (
	"fmt"
	"strings"
	"unicode"
)

// Lexer tokenizes value-literal input.
type Lexer struct {
	input   string
	pos     int
	line    int
	col     int
	tokens  []Token
	current int
}

// NewLexer creates a lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Lex tokenizes the entire input.
func (l *Lexer) Lex() error {
	for l.pos < len(l.input) {
		l.skipWhitespaceAndComments()
		if l.pos >= len(l.input) {
			break
		}

		startLine := l.line
		startCol := l.col

		ch := l.peek()
		switch ch {
		case '"':
			str, err := l.readString()
			if err != nil {
				return err
			}
			l.emit(Token{Type: TokenString, Value: str, Line: startLine, Col: startCol})
		case '[':
			l.advance()
			l.emit(Token{Type: TokenLeftBracket, Line: startLine, Col: startCol})
		case ']':
			l.advance()
			l.emit(Token{Type: TokenRightBracket, Line: startLine, Col: startCol})
		case '{':
			l.advance()
			l.emit(Token{Type: TokenLeftBrace, Line: startLine, Col: startCol})
		case '}':
			l.advance()
			l.emit(Token{Type: TokenRightBrace, Line: startLine, Col: startCol})
		case '(':
			l.advance()
			l.emit(Token{Type: TokenLeftParen, Line: startLine, Col: startCol})
		case ')':
			l.advance()
			l.emit(Token{Type: TokenRightParen, Line: startLine, Col: startCol})
		default:
			atom := l.readAtom()
			if atom == "" {
				return fmt.Errorf("unexpected character '%c' at %d:%d", ch, l.line, l.col)
			}
			l.emit(Token{Type: TokenAtom, Value: atom, Line: startLine, Col: startCol})
		}
	}

	l.emit(Token{Type: TokenEOF, Line: l.line, Col: l.col})
	return nil
}

// NextToken returns the next token and advances.
func (l *Lexer) NextToken() Token {
	if l.current >= len(l.tokens) {
		return Token{Type: TokenEOF, Line: l.line, Col: l.col}
	}
	token := l.tokens[l.current]
	l.current++
	return token
}

// PeekToken returns the next token without advancing.
func (l *Lexer) PeekToken() Token {
	if l.current >= len(l.tokens) {
		return Token{Type: TokenEOF, Line: l.line, Col: l.col}
	}
	return l.tokens[l.current]
}

func (l *Lexer) emit(t Token) {
	l.tokens = append(l.tokens, t)
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

// skipWhitespaceAndComments skips whitespace, commas and ; comments.
func (l *Lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		ch := l.peek()
		if unicode.IsSpace(rune(ch)) || ch == ',' {
			l.advance()
		} else if ch == ';' {
			for l.pos < len(l.input) && l.peek() != '\n' {
				l.advance()
			}
		} else {
			break
		}
	}
}

// readString reads a double-quoted string literal.
func (l *Lexer) readString() (string, error) {
	var result strings.Builder
	l.advance() // opening quote

	for l.pos < len(l.input) {
		ch := l.peek()
		switch ch {
		case '"':
			l.advance()
			return result.String(), nil
		case '\\':
			l.advance()
			if l.pos >= len(l.input) {
				return "", fmt.Errorf("unexpected end of input in string at %d:%d", l.line, l.col)
			}
			switch escaped := l.peek(); escaped {
			case 't':
				result.WriteByte('\t')
			case 'r':
				result.WriteByte('\r')
			case 'n':
				result.WriteByte('\n')
			case '\\':
				result.WriteByte('\\')
			case '"':
				result.WriteByte('"')
			default:
				return "", fmt.Errorf("invalid escape sequence '\\%c' at %d:%d", escaped, l.line, l.col)
			}
			l.advance()
		default:
			result.WriteByte(ch)
			l.advance()
		}
	}

	return "", fmt.Errorf("unterminated string at %d:%d", l.line, l.col)
}

// readAtom reads a run of non-delimiter characters. "#{" is returned as its
// own atom so the parser can open a set.
func (l *Lexer) readAtom() string {
	if l.pos+1 < len(l.input) && l.input[l.pos] == '#' && l.input[l.pos+1] == '{' {
		l.advance()
		l.advance()
		return "#{"
	}

	var result strings.Builder
	for l.pos < len(l.input) {
		ch := l.peek()
		if isDelimiter(ch) || unicode.IsSpace(rune(ch)) || ch == ',' {
			break
		}
		result.WriteByte(ch)
		l.advance()
	}
	return result.String()
}

func isDelimiter(ch byte) bool {
	return ch == '[' || ch == ']' || ch == '{' || ch == '}' ||
		ch == '(' || ch == ')' || ch == '"' || ch == ';'
}
