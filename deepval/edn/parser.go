// Package edn reads value literals in an EDN-flavored syntax: nil, booleans,
// numbers (including ##NaN, ##Inf, ##-Inf), strings, [sequences],
// {"string-keyed" mappings}, #{sets}, and the tagged forms #inst "...",
// #re ["src" "flags"] and #assoc [[k v] ...]. Lists (...) read as sequences.
// deepval.Format prints the same syntax back.
package edn

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ravenfield/argus-deepval/deepval"
)

// Parser turns tokens into values.
type Parser struct {
	lexer *Lexer
}

// NewParser creates a parser over an already-lexed input.
func NewParser(lexer *Lexer) *Parser {
	return &Parser{lexer: lexer}
}

// Parse reads a single value from input. Trailing input after the first
// value is an error.
func Parse(input string) (deepval.Value, error) {
	lexer := NewLexer(input)
	if err := lexer.Lex(); err != nil {
		return nil, err
	}
	p := NewParser(lexer)
	v, err := p.readValue()
	if err != nil {
		return nil, err
	}
	if tok := p.lexer.PeekToken(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected trailing input at %d:%d", tok.Line, tok.Col)
	}
	return v, nil
}

// ParseAll reads every value until EOF.
func ParseAll(input string) ([]deepval.Value, error) {
	lexer := NewLexer(input)
	if err := lexer.Lex(); err != nil {
		return nil, err
	}
	p := NewParser(lexer)

	var values []deepval.Value
	for {
		if p.lexer.PeekToken().Type == TokenEOF {
			return values, nil
		}
		v, err := p.readValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
}

// readValue reads one value, transparently skipping #_ discards.
func (p *Parser) readValue() (deepval.Value, error) {
	for {
		v, discarded, err := p.readForm()
		if err != nil {
			return nil, err
		}
		if discarded {
			continue
		}
		return v, nil
	}
}

// readForm reads one form; discarded reports a #_ form that produced no
// value.
func (p *Parser) readForm() (v deepval.Value, discarded bool, err error) {
	token := p.lexer.PeekToken()

	switch token.Type {
	case TokenEOF:
		return nil, false, fmt.Errorf("unexpected EOF at %d:%d", token.Line, token.Col)

	case TokenString:
		p.lexer.NextToken()
		return deepval.String(token.Value), false, nil

	case TokenAtom:
		return p.readAtom()

	case TokenLeftBracket:
		v, err := p.readSequence(TokenRightBracket)
		return v, false, err

	case TokenLeftParen:
		v, err := p.readSequence(TokenRightParen)
		return v, false, err

	case TokenLeftBrace:
		v, err := p.readMapping()
		return v, false, err

	default:
		return nil, false, fmt.Errorf("unexpected token %v at %d:%d", token.Type, token.Line, token.Col)
	}
}

// readAtom classifies a bare atom.
func (p *Parser) readAtom() (deepval.Value, bool, error) {
	token := p.lexer.NextToken()
	value := token.Value

	switch value {
	case "nil":
		return deepval.Null(), false, nil
	case "true":
		return deepval.Bool(true), false, nil
	case "false":
		return deepval.Bool(false), false, nil
	case "##NaN":
		return deepval.Number(math.NaN()), false, nil
	case "##Inf":
		return deepval.Number(math.Inf(1)), false, nil
	case "##-Inf":
		return deepval.Number(math.Inf(-1)), false, nil
	case "#{":
		v, err := p.readSet(token)
		return v, false, err
	case "#_":
		// Discard: consume and drop the next form.
		if _, err := p.readValue(); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	if len(value) > 1 && value[0] == '#' {
		v, err := p.readTagged(token, value[1:])
		return v, false, err
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return deepval.Number(f), false, nil
	}

	return nil, false, fmt.Errorf("unrecognized atom %q at %d:%d", value, token.Line, token.Col)
}

// readSequence reads forms until the closing token.
func (p *Parser) readSequence(closing TokenType) (*deepval.Sequence, error) {
	start := p.lexer.NextToken() // consume opener

	out := deepval.NewSequence()
	for {
		token := p.lexer.PeekToken()
		if token.Type == closing {
			p.lexer.NextToken()
			return out, nil
		}
		if token.Type == TokenEOF {
			return nil, fmt.Errorf("unterminated sequence starting at %d:%d", start.Line, start.Col)
		}
		v, err := p.readValue()
		if err != nil {
			return nil, err
		}
		out.Append(v)
	}
}

// readMapping reads {"key" value ...}. Keys must be string literals.
func (p *Parser) readMapping() (*deepval.Mapping, error) {
	start := p.lexer.NextToken() // consume {

	out := deepval.NewMapping()
	for {
		token := p.lexer.PeekToken()
		if token.Type == TokenRightBrace {
			p.lexer.NextToken()
			return out, nil
		}
		if token.Type == TokenEOF {
			return nil, fmt.Errorf("unterminated mapping starting at %d:%d", start.Line, start.Col)
		}

		key, err := p.readValue()
		if err != nil {
			return nil, err
		}
		ks, ok := key.(deepval.String)
		if !ok {
			return nil, fmt.Errorf("mapping key must be a string, got %s at %d:%d", key.Kind(), token.Line, token.Col)
		}

		token = p.lexer.PeekToken()
		if token.Type == TokenRightBrace || token.Type == TokenEOF {
			return nil, fmt.Errorf("mapping missing value for key %q at %d:%d", string(ks), token.Line, token.Col)
		}
		val, err := p.readValue()
		if err != nil {
			return nil, err
		}
		out.Set(string(ks), val)
	}
}

// readSet reads elements until }. Duplicates collapse under deep equality.
func (p *Parser) readSet(start Token) (*deepval.Set, error) {
	out := deepval.NewSet()
	for {
		token := p.lexer.PeekToken()
		if token.Type == TokenRightBrace {
			p.lexer.NextToken()
			return out, nil
		}
		if token.Type == TokenEOF {
			return nil, fmt.Errorf("unterminated set starting at %d:%d", start.Line, start.Col)
		}
		v, err := p.readValue()
		if err != nil {
			return nil, err
		}
		out.Add(v)
	}
}

// readTagged handles #inst, #re and #assoc.
func (p *Parser) readTagged(start Token, tag string) (deepval.Value, error) {
	form, err := p.readValue()
	if err != nil {
		return nil, err
	}

	switch tag {
	case "inst":
		s, ok := form.(deepval.String)
		if !ok {
			return nil, fmt.Errorf("#inst expects a string at %d:%d", start.Line, start.Col)
		}
		t, err := time.Parse(time.RFC3339Nano, string(s))
		if err != nil {
			return nil, fmt.Errorf("#inst %q at %d:%d: %w", string(s), start.Line, start.Col, err)
		}
		return deepval.NewInstant(t), nil

	case "re":
		// Either #re "src" or #re ["src" "flags"].
		switch f := form.(type) {
		case deepval.String:
			return deepval.NewPattern(string(f), "")
		case *deepval.Sequence:
			if f.Len() < 1 || f.Len() > 2 {
				return nil, fmt.Errorf("#re expects [source flags?] at %d:%d", start.Line, start.Col)
			}
			src, ok := f.At(0).(deepval.String)
			if !ok {
				return nil, fmt.Errorf("#re source must be a string at %d:%d", start.Line, start.Col)
			}
			flags := ""
			if f.Len() == 2 {
				fl, ok := f.At(1).(deepval.String)
				if !ok {
					return nil, fmt.Errorf("#re flags must be a string at %d:%d", start.Line, start.Col)
				}
				flags = string(fl)
			}
			return deepval.NewPattern(string(src), flags)
		default:
			return nil, fmt.Errorf("#re expects a string or [source flags] at %d:%d", start.Line, start.Col)
		}

	case "assoc":
		seq, ok := form.(*deepval.Sequence)
		if !ok {
			return nil, fmt.Errorf("#assoc expects [[key value] ...] at %d:%d", start.Line, start.Col)
		}
		out := deepval.NewAssoc()
		for _, item := range seq.Items() {
			pair, ok := item.(*deepval.Sequence)
			if !ok || pair.Len() != 2 {
				return nil, fmt.Errorf("#assoc entries must be [key value] pairs at %d:%d", start.Line, start.Col)
			}
			out.Put(pair.At(0), pair.At(1))
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unknown tag #%s at %d:%d", tag, start.Line, start.Col)
	}
}
