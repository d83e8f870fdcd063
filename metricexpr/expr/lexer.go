package expr

import (
	"fmt"
	"strconv"
	"unicode"
)

// Token is a lexical token of an aggregate expression.
type Token struct {
	Kind  TokenKind
	Value string
	Num   float64
	Pos   int
}

func (t Token) String() string {
	switch t.Kind {
	case TokIdent, TokNumber:
		return fmt.Sprintf("%s(%s)@%d", t.Kind, t.Value, t.Pos)
	default:
		return fmt.Sprintf("%s@%d", t.Kind, t.Pos)
	}
}

type TokenKind int

const (
	TokIdent TokenKind = iota
	TokNumber
	TokColon
	TokComma
	TokLParen
	TokRParen
	TokEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokIdent:
		return "Ident"
	case TokNumber:
		return "Number"
	case TokColon:
		return "Colon"
	case TokComma:
		return "Comma"
	case TokLParen:
		return "LParen"
	case TokRParen:
		return "RParen"
	case TokEOF:
		return "EOF"
	default:
		return "Unknown"
	}
}

// Lexer tokenizes an aggregate expression. Whitespace separates tokens and
// is otherwise ignored.
type Lexer struct {
	input []rune
	pos   int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: []rune(input)}
}

// Lex tokenizes the entire input. The last token is always TokEOF.
func Lex(input string) ([]Token, error) {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok, err := lexer.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokEOF {
			break
		}
	}

	return tokens, nil
}

// Next returns the next token.
func (l *Lexer) Next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Kind: TokEOF, Pos: l.pos}, nil
	}

	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case ':':
		l.pos++
		return Token{Kind: TokColon, Pos: start}, nil
	case ',':
		l.pos++
		return Token{Kind: TokComma, Pos: start}, nil
	case '(':
		l.pos++
		return Token{Kind: TokLParen, Pos: start}, nil
	case ')':
		l.pos++
		return Token{Kind: TokRParen, Pos: start}, nil
	}

	if isWordChar(ch) {
		return l.scanWord(), nil
	}

	return Token{}, fmt.Errorf("unexpected character %q at %d", ch, start)
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(l.input[l.pos]) {
		l.pos++
	}
}

// scanWord reads a run of word characters. Words that start like a number
// and parse as one become TokNumber; everything else is an identifier, so
// field names such as "cost2" or "q1.total" stay intact.
func (l *Lexer) scanWord() Token {
	start := l.pos
	for l.pos < len(l.input) && isWordChar(l.input[l.pos]) {
		l.pos++
	}
	value := string(l.input[start:l.pos])

	if looksNumeric(l.input[start:l.pos]) {
		if num, err := strconv.ParseFloat(value, 64); err == nil {
			return Token{Kind: TokNumber, Value: value, Num: num, Pos: start}
		}
	}
	return Token{Kind: TokIdent, Value: value, Pos: start}
}

func isWordChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '.' || ch == '-' || ch == '+'
}

// looksNumeric rejects words like "Inf" or "NaN" that strconv would accept.
func looksNumeric(word []rune) bool {
	if len(word) == 0 {
		return false
	}
	i := 0
	if word[0] == '-' || word[0] == '+' {
		i++
	}
	if i < len(word) && word[i] == '.' {
		i++
	}
	return i < len(word) && unicode.IsDigit(word[i])
}
