package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"

	"github.com/ardnew/kaleidoscope/log"
)

// Parse parses a complete program. It is shorthand for [ParseString] with
// a background context and no options.
func Parse(src string) (*Program, error) {
	return ParseString(context.Background(), src)
}

// ParseReader reads all of r and parses it as a complete program.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (*Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses a complete program from a string.
//
// The whole input must be consumed. On failure the returned error is a
// [*ParseError] and no partial program is returned.
func ParseString(ctx context.Context, s string, opts ...Option) (*Program, error) {
	p := newParser(s, makeConfig(opts...))

	prog, f := p.program()
	if f != nil {
		p.locate(f)
		p.logger.DebugContext(ctx, "parse failed",
			slog.Any("failure", f),
			slog.Int("rule_calls", p.calls))

		return nil, &ParseError{Failure: f, Source: s}
	}

	p.logger.TraceContext(ctx, "parse complete",
		slog.Int("statement_count", prog.Len()),
		slog.Int("source_bytes", len(s)),
		slog.Int("rule_calls", p.calls))

	return prog, nil
}

// ParseStatement parses a single statement from the start of src and
// returns it with the unconsumed remainder.
// The error, if any, is a [*Failure].
func ParseStatement(src string) (Statement, string, error) {
	return parsePrefix(src, (*parser).statement)
}

// ParseExpr parses a single expression from the start of src and returns
// it with the unconsumed remainder.
// The error, if any, is a [*Failure].
func ParseExpr(src string) (Expr, string, error) {
	return parsePrefix(src, (*parser).expression)
}

// ParsePrototype parses a prototype from the start of src and returns it
// with the unconsumed remainder.
// The error, if any, is a [*Failure].
func ParsePrototype(src string) (Prototype, string, error) {
	return parsePrefix(src, (*parser).prototype)
}

// ParseIdentifier matches an identifier at the start of src and returns it
// with the unconsumed remainder.
// The error, if any, is a [*Failure].
func ParseIdentifier(src string) (string, string, error) {
	return parsePrefix(src, (*parser).identifier)
}

// ParseNumber matches a numeric literal at the start of src and returns its
// value with the unconsumed remainder.
// The error, if any, is a [*Failure].
func ParseNumber(src string) (float64, string, error) {
	return parsePrefix(src, (*parser).number)
}

func parsePrefix[T any](
	src string,
	rule func(*parser) (T, *Failure),
) (T, string, error) {
	p := newParser(src, makeConfig())

	v, f := rule(p)
	if f != nil {
		var zero T

		return zero, src, p.locate(f)
	}

	return v, src[p.pos:], nil
}

// parser holds the state of one parse. Every rule method either advances
// pos and returns a nil *Failure, or returns a *Failure; a rule that fails
// without cutting may leave pos anywhere, and the alternation that called
// it restores pos before trying the next branch.
type parser struct {
	logger   log.Logger
	input    string
	pos      int
	rules    []Rule
	depth    int
	maxDepth int
	calls    int
}

func newParser(input string, cfg config) *parser {
	return &parser{
		logger:   cfg.logger,
		input:    input,
		rules:    make([]Rule, 0, 16),
		maxDepth: cfg.maxDepth,
	}
}

// enter pushes r onto the rule stack and returns the function that pops
// it. Use as: defer p.enter(r)().
func (p *parser) enter(r Rule) func() {
	p.rules = append(p.rules, r)
	p.calls++

	return func() { p.rules = p.rules[:len(p.rules)-1] }
}

// fail returns a recoverable failure at offset with a snapshot of the live
// rule stack. Line, Column, and Found are left unset until [parser.locate],
// since most failures are discarded by an alternation.
func (p *parser) fail(offset int, reason Reason, expected string) *Failure {
	f := &Failure{
		Reason:   reason,
		Offset:   offset,
		Rules:    make([]Rule, len(p.rules)),
		Expected: expected,
	}

	for i, r := range p.rules {
		f.Rules[len(p.rules)-1-i] = r
	}

	return f
}

// locate fills in the position and found input of a failure leaving the
// parser.
func (p *parser) locate(f *Failure) *Failure {
	f.Line, f.Column = position(p.input, f.Offset)
	f.Found = describeInput(p.input, f.Offset)

	return f
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}

	return p.input[p.pos]
}

func (p *parser) eat(c byte) bool {
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++

		return true
	}

	return false
}

// alt tries each branch in order from the same position and returns the
// first success. A cut failure stops the alternation immediately.
func alt[T any](
	p *parser,
	expected string,
	branches ...func() (T, *Failure),
) (T, *Failure) {
	var zero T

	start := p.pos

	for _, branch := range branches {
		v, f := branch()
		if f == nil {
			return v, nil
		}

		if f.Cut {
			return zero, f
		}

		p.pos = start
	}

	return zero, p.fail(start, StructuralMismatch, expected)
}

// list matches '(' (item (',' item)*)? ')' with optional whitespace before
// every item, comma, and the closing parenthesis. what names the item in
// diagnostics.
func list[T any](
	p *parser,
	what string,
	item func() (T, *Failure),
) ([]T, *Failure) {
	if !p.eat('(') {
		return nil, p.fail(p.pos, StructuralMismatch, `"("`)
	}

	items := make([]T, 0)
	save := p.pos

	p.ws()

	v, f := item()
	if f != nil {
		if f.Cut {
			return nil, f
		}

		p.pos = save
		p.ws()

		if !p.eat(')') {
			return nil, p.fail(p.pos, StructuralMismatch, what+` or ")"`)
		}

		return items, nil
	}

	items = append(items, v)

	for {
		p.ws()

		if p.eat(')') {
			return items, nil
		}

		if !p.eat(',') {
			return nil, p.fail(p.pos, StructuralMismatch, `"," or ")"`)
		}

		p.ws()

		v, f := item()
		if f != nil {
			return nil, f
		}

		items = append(items, v)
	}
}

// expression: call | number | variable.
func (p *parser) expression() (Expr, *Failure) {
	defer p.enter(RuleExpression)()

	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		f := p.fail(p.pos, DepthExceeded,
			"at most "+strconv.Itoa(p.maxDepth)+" nested expressions")

		return nil, commit(f, RuleExpression)
	}

	p.depth++
	defer func() { p.depth-- }()

	return alt(p, "expression: a call, number, or variable",
		p.call, p.literal, p.variable)
}

// call: identifier arguments. The '(' directly after the identifier
// commits to a call.
func (p *parser) call() (Expr, *Failure) {
	defer p.enter(RuleCall)()

	name, f := p.identifier()
	if f != nil {
		return nil, f
	}

	args, f := p.arguments()
	if f != nil {
		return nil, f
	}

	return &Call{Callee: name, Args: args}, nil
}

func (p *parser) arguments() ([]Expr, *Failure) {
	defer p.enter(RuleArguments)()

	if p.peek() != '(' {
		return nil, p.fail(p.pos, StructuralMismatch, `"("`)
	}

	args, f := list(p, "expression", p.expression)
	if f != nil {
		return nil, commit(f, RuleArguments)
	}

	return args, nil
}

func (p *parser) literal() (Expr, *Failure) {
	v, f := p.number()
	if f != nil {
		return nil, f
	}

	return &Number{Value: v}, nil
}

func (p *parser) variable() (Expr, *Failure) {
	defer p.enter(RuleVariable)()

	name, f := p.identifier()
	if f != nil {
		return nil, f
	}

	return &Variable{Name: name}, nil
}

// prototype: identifier parameters.
func (p *parser) prototype() (Prototype, *Failure) {
	defer p.enter(RulePrototype)()

	name, f := p.identifier()
	if f != nil {
		return Prototype{}, f
	}

	params, f := p.parameters()
	if f != nil {
		return Prototype{}, f
	}

	return Prototype{Name: name, Params: params}, nil
}

func (p *parser) parameters() ([]string, *Failure) {
	defer p.enter(RuleParameters)()

	return list(p, "identifier", p.identifier)
}

// statement: extern | function | expression.
func (p *parser) statement() (Statement, *Failure) {
	defer p.enter(RuleStatement)()

	return alt(p, `statement: "extern", "def", or an expression`,
		p.extern, p.function, p.expressionStatement)
}

// extern: "extern" ws1 prototype. The keyword commits.
func (p *parser) extern() (Statement, *Failure) {
	defer p.enter(RuleExtern)()

	if !p.keyword(keywordExtern) {
		return nil, p.fail(p.pos, StructuralMismatch, strconv.Quote(keywordExtern))
	}

	if f := p.ws1(); f != nil {
		return nil, commit(f, RuleExtern)
	}

	proto, f := p.prototype()
	if f != nil {
		return nil, commit(f, RuleExtern)
	}

	return &Extern{Proto: proto}, nil
}

// function: "def" ws1 prototype ws1 expression. The keyword commits.
func (p *parser) function() (Statement, *Failure) {
	defer p.enter(RuleFunction)()

	if !p.keyword(keywordDef) {
		return nil, p.fail(p.pos, StructuralMismatch, strconv.Quote(keywordDef))
	}

	if f := p.ws1(); f != nil {
		return nil, commit(f, RuleFunction)
	}

	proto, f := p.prototype()
	if f != nil {
		return nil, commit(f, RuleFunction)
	}

	if f := p.ws1(); f != nil {
		return nil, commit(f, RuleFunction)
	}

	body, f := p.expression()
	if f != nil {
		return nil, commit(f, RuleFunction)
	}

	return &Function{Proto: proto, Body: body}, nil
}

func (p *parser) expressionStatement() (Statement, *Failure) {
	e, f := p.expression()
	if f != nil {
		return nil, f
	}

	return &Expression{Expr: e}, nil
}

// program: ws statement (separator statement)* trailing EOF. Input with no
// statements yields an empty program.
//
// trailing is one optional run that may mix whitespace and separators, so
// "x; " and "x\n ;" are complete programs. This is looser than a choice
// between a whitespace run and a separator run.
func (p *parser) program() (*Program, *Failure) {
	defer p.enter(RuleProgram)()

	p.ws()

	stmts := make([]Statement, 0)

	s, f := p.statement()

	switch {
	case f == nil:
		stmts = append(stmts, s)

		for {
			save := p.pos

			if !p.separator() {
				break
			}

			s, f := p.statement()
			if f != nil {
				if f.Cut {
					return nil, f
				}

				p.pos = save

				break
			}

			stmts = append(stmts, s)
		}

	case f.Cut:
		return nil, f
	}

	p.skip(isTrailing)

	if p.pos < len(p.input) {
		expected := "statement separator or end of input"
		if len(stmts) == 0 || isSeparator(p.input[p.pos-1]) {
			expected = "statement"
		}

		return nil, commit(p.fail(p.pos, IncompleteConsumption, expected), RuleProgram)
	}

	return &Program{Statements: stmts}, nil
}
