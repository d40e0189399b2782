package lang

import (
	"iter"
	"strings"
)

// Kind identifies the variant of an AST node.
type Kind int

const (
	// KindNumber is a numeric literal expression.
	KindNumber Kind = iota

	// KindVariable is a reference to an identifier.
	KindVariable

	// KindInfix is a binary operation expression.
	KindInfix

	// KindCall is a function application expression.
	KindCall

	// KindFunction is a function definition statement.
	KindFunction

	// KindExtern is an external declaration statement.
	KindExtern

	// KindExpression is a top-level expression statement.
	KindExpression
)

// String returns the lowercase name of the node kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"

	case KindVariable:
		return "variable"

	case KindInfix:
		return "infix"

	case KindCall:
		return "call"

	case KindFunction:
		return "function"

	case KindExtern:
		return "extern"

	case KindExpression:
		return "expression"

	default:
		return "unknown"
	}
}

// Expr is an expression node. The set of implementations is closed:
// [Number], [Variable], [Infix], and [Call].
type Expr interface {
	Kind() Kind
	expr()
}

// Number is a floating-point literal.
type Number struct {
	Value float64
}

// Variable is a reference to an identifier.
type Variable struct {
	Name string
}

// Infix is a binary operation.
//
// The grammar has no production for operators, so the parser never builds
// an Infix. The node exists so that encoders and the printer already cover
// it once operator precedence is added.
type Infix struct {
	Left  Expr
	Op    rune
	Right Expr
}

// Call is a function application. Args is empty, never nil, for a call
// without arguments.
type Call struct {
	Callee string
	Args   []Expr
}

func (*Number) Kind() Kind   { return KindNumber }
func (*Variable) Kind() Kind { return KindVariable }
func (*Infix) Kind() Kind    { return KindInfix }
func (*Call) Kind() Kind     { return KindCall }

func (*Number) expr()   {}
func (*Variable) expr() {}
func (*Infix) expr()    {}
func (*Call) expr()     {}

// Prototype is the name and parameter list shared by function definitions
// and external declarations. Parameter names are not checked for
// uniqueness.
type Prototype struct {
	Name   string
	Params []string
}

// Signature returns the prototype in source form, e.g. "mul(a, b)".
func (p Prototype) Signature() string {
	return p.Name + "(" + strings.Join(p.Params, ", ") + ")"
}

// Statement is a top-level statement. The set of implementations is closed:
// [Function], [Extern], and [Expression].
type Statement interface {
	Kind() Kind
	stmt()
}

// Function is a function definition with a single-expression body.
type Function struct {
	Proto Prototype
	Body  Expr
}

// Extern is an external function declaration.
type Extern struct {
	Proto Prototype
}

// Expression is a bare expression standing as a statement.
type Expression struct {
	Expr Expr
}

func (*Function) Kind() Kind   { return KindFunction }
func (*Extern) Kind() Kind     { return KindExtern }
func (*Expression) Kind() Kind { return KindExpression }

func (*Function) stmt()   {}
func (*Extern) stmt()     {}
func (*Expression) stmt() {}

// Program is the ordered sequence of statements of a source text, in source
// order.
type Program struct {
	Statements []Statement
}

// All returns an iterator over the statements of the program and their
// indices.
func (p *Program) All() iter.Seq2[int, Statement] {
	return func(yield func(int, Statement) bool) {
		for i, s := range p.Statements {
			if !yield(i, s) {
				return
			}
		}
	}
}

// Len returns the number of statements.
func (p *Program) Len() int { return len(p.Statements) }

// Names returns the names declared by extern and def statements, in source
// order. A name declared more than once is reported once.
func (p *Program) Names() []string {
	seen := make(map[string]struct{})
	names := make([]string, 0, len(p.Statements))

	for _, s := range p.Statements {
		var name string

		switch s := s.(type) {
		case *Function:
			name = s.Proto.Name
		case *Extern:
			name = s.Proto.Name
		default:
			continue
		}

		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}

// Lookup returns the prototype declared under name by the last extern or def
// statement that declares it.
func (p *Program) Lookup(name string) (Prototype, bool) {
	for i := len(p.Statements) - 1; i >= 0; i-- {
		switch s := p.Statements[i].(type) {
		case *Function:
			if s.Proto.Name == name {
				return s.Proto, true
			}
		case *Extern:
			if s.Proto.Name == name {
				return s.Proto, true
			}
		}
	}

	return Prototype{}, false
}

// Summary returns a one-line description of a statement: its kind followed
// by the prototype signature or the expression source.
func Summary(s Statement) string {
	switch s := s.(type) {
	case *Function:
		return "def " + s.Proto.Signature()
	case *Extern:
		return "extern " + s.Proto.Signature()
	case *Expression:
		return formatExpr(s.Expr)
	default:
		return ""
	}
}
