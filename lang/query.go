package lang

import (
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Record is the environment a statement predicate is evaluated against.
// Field names in predicates are the expr tags, e.g.
//
//	kind == "function" && arity > 1
//	"sin" in calls
//	name startsWith "test_"
type Record struct {
	Index  int      `expr:"index"`  // position in the program
	Kind   string   `expr:"kind"`   // "function", "extern", or "expression"
	Name   string   `expr:"name"`   // declared name, or callee of a bare call
	Params []string `expr:"params"` // declared parameters
	Arity  int      `expr:"arity"`  // len(params), or argument count of a bare call
	Calls  []string `expr:"calls"`  // callees referenced, in first-use order
	Vars   []string `expr:"vars"`   // variables referenced, in first-use order
	Source string   `expr:"source"` // native rendering of the statement
}

// NewRecord returns the predicate environment of statement s at index i.
func NewRecord(i int, s Statement) Record {
	r := Record{
		Index:  i,
		Params: []string{},
		Source: formatStatement(s),
	}

	if s != nil {
		r.Kind = s.Kind().String()
	}

	var body Expr

	switch s := s.(type) {
	case *Function:
		r.Name, r.Params, body = s.Proto.Name, s.Proto.Params, s.Body

	case *Extern:
		r.Name, r.Params = s.Proto.Name, s.Proto.Params

	case *Expression:
		body = s.Expr
		if c, ok := s.Expr.(*Call); ok {
			r.Name = c.Callee
			r.Arity = len(c.Args)
		}
	}

	if r.Kind != KindExpression.String() {
		r.Arity = len(r.Params)
	}

	r.Calls, r.Vars = references(body)

	return r
}

// references returns the distinct callees and variables in e.
func references(e Expr) (calls, vars []string) {
	calls, vars = []string{}, []string{}

	for n := range Walk(e) {
		switch n := n.(type) {
		case *Call:
			if !slices.Contains(calls, n.Callee) {
				calls = append(calls, n.Callee)
			}

		case *Variable:
			if !slices.Contains(vars, n.Name) {
				vars = append(vars, n.Name)
			}
		}
	}

	return calls, vars
}

// Walk returns an iterator over e and its descendants in depth-first,
// left-to-right order.
func Walk(e Expr) iter.Seq[Expr] {
	return func(yield func(Expr) bool) {
		walk(e, yield)
	}
}

func walk(e Expr, yield func(Expr) bool) bool {
	if e == nil {
		return true
	}

	if !yield(e) {
		return false
	}

	switch e := e.(type) {
	case *Call:
		for _, arg := range e.Args {
			if !walk(arg, yield) {
				return false
			}
		}

	case *Infix:
		return walk(e.Left, yield) && walk(e.Right, yield)
	}

	return true
}

// Predicate is a compiled statement filter.
type Predicate struct {
	source  string
	program *vm.Program
}

// CompilePredicate compiles an expr-lang boolean expression over [Record].
// An empty or blank expression matches every statement.
func CompilePredicate(where string) (*Predicate, error) {
	where = strings.TrimSpace(where)
	if where == "" {
		return &Predicate{}, nil
	}

	program, err := expr.Compile(where, expr.Env(Record{}), expr.AsBool())
	if err != nil {
		return nil, ErrInvalidPredicate.Wrap(err).
			With(slog.String("where", where))
	}

	return &Predicate{source: where, program: program}, nil
}

// Match reports whether statement s at index i satisfies the predicate.
func (p *Predicate) Match(i int, s Statement) (bool, error) {
	if p.program == nil {
		return true, nil
	}

	out, err := expr.Run(p.program, NewRecord(i, s))
	if err != nil {
		return false, ErrInvalidPredicate.Wrap(err).
			With(slog.String("where", p.source), slog.Int("index", i))
	}

	ok, _ := out.(bool)

	return ok, nil
}

// String returns the predicate source.
func (p *Predicate) String() string { return p.source }

// Filter returns the statements of the program matching the expr-lang
// predicate where, with their indices. See [Record] for the fields
// available to the predicate.
//
// The predicate is evaluated against every statement before Filter
// returns, so a runtime error in any evaluation is reported here.
func (p *Program) Filter(where string) (iter.Seq2[int, Statement], error) {
	pred, err := CompilePredicate(where)
	if err != nil {
		return nil, err
	}

	var matched []int

	for i, s := range p.All() {
		ok, err := pred.Match(i, s)
		if err != nil {
			return nil, err
		}

		if ok {
			matched = append(matched, i)
		}
	}

	return func(yield func(int, Statement) bool) {
		for _, i := range matched {
			if !yield(i, p.Statements[i]) {
				return
			}
		}
	}, nil
}
