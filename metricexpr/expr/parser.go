package expr

import (
	"fmt"

	"github.com/cockroachdb/errors"

	mxerrors "github.com/nonibytes/metricexpr/metricexpr/errors"
	"github.com/nonibytes/metricexpr/metricexpr/field"
)

// Option configures Parse.
type Option func(*options)

type options struct {
	requireNumeric bool
}

// RequireNumeric rejects sum, avg, max and min over fields that are not
// numeric. Without it the parser accepts any field for any aggregate.
func RequireNumeric() Option {
	return func(o *options) { o.requireNumeric = true }
}

// Parse turns an aggregate expression into an AST, resolving field names
// against catalog. It returns either a complete tree or an *errors.Error
// whose Input is the whole of input.
func Parse(catalog field.Catalog, input string, opts ...Option) (Node, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tokens, err := Lex(input)
	if err != nil {
		return nil, mxerrors.Syntax(input, err)
	}

	p := &parser{tokens: tokens, catalog: catalog, opts: o}
	node, err := p.parseExpression()
	if err != nil {
		return nil, toParseError(input, err)
	}
	if !p.match(TokEOF) {
		return nil, mxerrors.Syntax(input, fmt.Errorf("unexpected %v after expression", p.current()))
	}
	return node, nil
}

// MustParse is Parse for expressions known to be valid, such as fixtures.
func MustParse(catalog field.Catalog, input string, opts ...Option) Node {
	node, err := Parse(catalog, input, opts...)
	if err != nil {
		panic(err)
	}
	return node
}

type unknownFieldError struct {
	name string
}

func (e *unknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.name)
}

type notNumericError struct {
	name string
}

func (e *notNumericError) Error() string {
	return fmt.Sprintf("field %q is not numeric", e.name)
}

func toParseError(input string, err error) error {
	var unknown *unknownFieldError
	if errors.As(err, &unknown) {
		return mxerrors.UnknownField(input, unknown.name)
	}
	var notNumeric *notNumericError
	if errors.As(err, &notNumeric) {
		return mxerrors.TypeMismatch(input, notNumeric.name)
	}
	return mxerrors.Syntax(input, err)
}

type parser struct {
	tokens  []Token
	pos     int
	catalog field.Catalog
	opts    options
}

// parseExpression tries, in order, a calculation, an aggregate and a number.
func (p *parser) parseExpression() (Node, error) {
	tok := p.current()
	switch tok.Kind {
	case TokNumber:
		p.advance()
		return Constant{Value: tok.Num}, nil

	case TokIdent:
		if fn, ok := ParseCalculationFn(tok.Value); ok && p.peek(1).Kind == TokLParen {
			return p.parseCalculation(fn)
		}
		if fn, ok := ParseAggregateFn(tok.Value); ok {
			return p.parseAggregate(fn)
		}
		return nil, fmt.Errorf("unknown function %q at %d", tok.Value, tok.Pos)

	case TokEOF:
		return nil, fmt.Errorf("unexpected end of expression")

	default:
		return nil, fmt.Errorf("expected expression, got %v", tok)
	}
}

func (p *parser) parseCalculation(fn CalculationFn) (Node, error) {
	p.advance() // function name
	if err := p.expect(TokLParen); err != nil {
		return nil, err
	}

	lhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokComma); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokRParen); err != nil {
		return nil, err
	}

	return Calculation{Fn: fn, LHS: lhs, RHS: rhs}, nil
}

func (p *parser) parseAggregate(fn AggregateFn) (Node, error) {
	p.advance() // function name

	if !fn.RequiresField() {
		if p.match(TokColon) {
			return nil, fmt.Errorf("%s does not take a field", fn)
		}
		return FieldAggregate{Fn: fn}, nil
	}

	if err := p.expect(TokColon); err != nil {
		return nil, err
	}

	// Field names may look like numbers to the lexer; the raw text is what counts.
	tok := p.current()
	if tok.Kind != TokIdent && tok.Kind != TokNumber {
		return nil, fmt.Errorf("expected field name after '%s:', got %v", fn, tok)
	}
	p.advance()

	f, err := p.resolve(fn, tok.Value)
	if err != nil {
		return nil, err
	}
	return FieldAggregate{Fn: fn, Field: f}, nil
}

func (p *parser) resolve(fn AggregateFn, name string) (field.Field, error) {
	f, ok := p.catalog.Lookup(name)
	if !ok {
		return field.Field{}, &unknownFieldError{name: name}
	}
	if p.opts.requireNumeric && fn.numericOnly() && !f.IsNumeric() {
		return field.Field{}, &notNumericError{name: name}
	}
	return f, nil
}

func (p *parser) current() Token {
	return p.peek(0)
}

func (p *parser) peek(offset int) Token {
	pos := p.pos + offset
	if pos < len(p.tokens) {
		return p.tokens[pos]
	}
	return Token{Kind: TokEOF}
}

func (p *parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

func (p *parser) match(kind TokenKind) bool {
	return p.current().Kind == kind
}

func (p *parser) expect(kind TokenKind) error {
	if !p.match(kind) {
		return fmt.Errorf("expected %s, got %v", kind, p.current())
	}
	p.advance()
	return nil
}
