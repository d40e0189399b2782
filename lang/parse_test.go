package lang

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kr/pretty"
)

const fixture = `extern mul(a, b)
extern print(x)
def double(x) mul(x, 2)
print(double(32))
`

func fixtureProgram() *Program {
	return &Program{Statements: []Statement{
		&Extern{Proto: Prototype{Name: "mul", Params: []string{"a", "b"}}},
		&Extern{Proto: Prototype{Name: "print", Params: []string{"x"}}},
		&Function{
			Proto: Prototype{Name: "double", Params: []string{"x"}},
			Body: &Call{Callee: "mul", Args: []Expr{
				&Variable{Name: "x"},
				&Number{Value: 2},
			}},
		},
		&Expression{Expr: &Call{Callee: "print", Args: []Expr{
			&Call{Callee: "double", Args: []Expr{&Number{Value: 32}}},
		}}},
	}}
}

func TestParseString_Fixture(t *testing.T) {
	got, err := ParseString(context.Background(), fixture)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if diff := pretty.Diff(fixtureProgram(), got); len(diff) > 0 {
		t.Errorf("AST mismatch:\n%s", strings.Join(diff, "\n"))
	}
}

func TestParseString_Deterministic(t *testing.T) {
	first, err := Parse(fixture)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var wg sync.WaitGroup

	results := make([]*Program, 8)

	for i := range results {
		wg.Add(1)

		go func() {
			defer wg.Done()

			results[i], _ = Parse(fixture)
		}()
	}

	wg.Wait()

	for i, got := range results {
		if diff := pretty.Diff(first, got); len(diff) > 0 {
			t.Errorf("parse %d differs:\n%s", i, strings.Join(diff, "\n"))
		}
	}
}

func TestParseString_Statements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Statement
	}{
		{
			name:  "extern without params",
			input: "extern foo()",
			want:  []Statement{&Extern{Proto: Prototype{Name: "foo", Params: []string{}}}},
		},
		{
			name:  "extern with params",
			input: "extern foo(bar, baz)",
			want: []Statement{&Extern{
				Proto: Prototype{Name: "foo", Params: []string{"bar", "baz"}},
			}},
		},
		{
			name:  "def",
			input: "def foo(bar, baz) bar",
			want: []Statement{&Function{
				Proto: Prototype{Name: "foo", Params: []string{"bar", "baz"}},
				Body:  &Variable{Name: "bar"},
			}},
		},
		{
			name:  "def with newline before body",
			input: "def one()\n  1",
			want: []Statement{&Function{
				Proto: Prototype{Name: "one", Params: []string{}},
				Body:  &Number{Value: 1},
			}},
		},
		{
			name:  "call without args",
			input: "foo()",
			want:  []Statement{&Expression{Expr: &Call{Callee: "foo", Args: []Expr{}}}},
		},
		{
			name:  "call with args",
			input: "foo(0.5, bar)",
			want: []Statement{&Expression{Expr: &Call{Callee: "foo", Args: []Expr{
				&Number{Value: 0.5},
				&Variable{Name: "bar"},
			}}}},
		},
		{
			name:  "whitespace inside lists",
			input: "f( 1 ,\n x )",
			want: []Statement{&Expression{Expr: &Call{Callee: "f", Args: []Expr{
				&Number{Value: 1},
				&Variable{Name: "x"},
			}}}},
		},
		{
			name:  "separator run",
			input: "a;;\n;b",
			want: []Statement{
				&Expression{Expr: &Variable{Name: "a"}},
				&Expression{Expr: &Variable{Name: "b"}},
			},
		},
		{
			name:  "leading whitespace and trailing separators",
			input: "\n  x;\n; ",
			want:  []Statement{&Expression{Expr: &Variable{Name: "x"}}},
		},
		{
			name:  "trailing separator then space",
			input: "x; ",
			want:  []Statement{&Expression{Expr: &Variable{Name: "x"}}},
		},
		{
			name:  "trailing newline space separator",
			input: "x\n ;",
			want:  []Statement{&Expression{Expr: &Variable{Name: "x"}}},
		},
		{
			name:  "keyword-free identifier containing keyword",
			input: "undef",
			want:  []Statement{&Expression{Expr: &Variable{Name: "undef"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if diff := pretty.Diff(&Program{Statements: tt.want}, got); len(diff) > 0 {
				t.Errorf("AST mismatch:\n%s", strings.Join(diff, "\n"))
			}
		})
	}
}

func TestParseString_EmptyInput(t *testing.T) {
	for _, input := range []string{"", " ", "\n\n", ";", " ;\n; "} {
		got, err := Parse(input)
		if err != nil {
			t.Errorf("Parse(%q): %v", input, err)

			continue
		}

		if got.Statements == nil || got.Len() != 0 {
			t.Errorf("Parse(%q) = %# v, want empty program", input, pretty.Formatter(got))
		}
	}
}

func TestParseString_Failures(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
		offset   int
		commit   Rule
		rules    []Rule
		expected string
	}{
		{
			name:     "extern without closing paren",
			input:    "extern foo(",
			sentinel: ErrStructuralMismatch,
			offset:   11,
			commit:   RuleExtern,
			rules: []Rule{
				RuleParameters, RulePrototype, RuleExtern, RuleStatement, RuleProgram,
			},
			expected: `identifier or ")"`,
		},
		{
			name:     "extern without whitespace",
			input:    "extern(foo)",
			sentinel: ErrStructuralMismatch,
			offset:   6,
			commit:   RuleExtern,
			rules:    []Rule{RuleExtern, RuleStatement, RuleProgram},
			expected: "whitespace",
		},
		{
			name:     "def without body",
			input:    "def f(x)",
			sentinel: ErrStructuralMismatch,
			offset:   8,
			commit:   RuleFunction,
			rules:    []Rule{RuleFunction, RuleStatement, RuleProgram},
			expected: "whitespace",
		},
		{
			name:     "def with bad parameter",
			input:    "def f(1) x",
			sentinel: ErrStructuralMismatch,
			offset:   6,
			commit:   RuleFunction,
			rules: []Rule{
				RuleParameters, RulePrototype, RuleFunction, RuleStatement, RuleProgram,
			},
			expected: `identifier or ")"`,
		},
		{
			name:     "trailing comma in call",
			input:    "f(1,)",
			sentinel: ErrStructuralMismatch,
			offset:   4,
			commit:   RuleArguments,
			rules: []Rule{
				RuleExpression, RuleArguments, RuleCall, RuleExpression,
				RuleStatement, RuleProgram,
			},
			expected: "expression: a call, number, or variable",
		},
		{
			name:     "missing comma in call",
			input:    "f(1 2)",
			sentinel: ErrStructuralMismatch,
			offset:   4,
			commit:   RuleArguments,
			rules: []Rule{
				RuleArguments, RuleCall, RuleExpression, RuleStatement, RuleProgram,
			},
			expected: `"," or ")"`,
		},
		{
			name:     "two expressions without separator",
			input:    "foo bar",
			sentinel: ErrIncompleteConsumption,
			offset:   4,
			commit:   RuleProgram,
			rules:    []Rule{RuleProgram},
			expected: "statement separator or end of input",
		},
		{
			name:     "unparseable statement",
			input:    ")",
			sentinel: ErrIncompleteConsumption,
			offset:   0,
			commit:   RuleProgram,
			rules:    []Rule{RuleProgram},
			expected: "statement",
		},
		{
			name:     "number out of range",
			input:    "f(1e400)",
			sentinel: ErrLexicalMismatch,
			offset:   2,
			commit:   RuleNumber,
			rules: []Rule{
				RuleNumber, RuleExpression, RuleArguments, RuleCall,
				RuleExpression, RuleStatement, RuleProgram,
			},
			expected: "finite number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("expected failure, got %# v", pretty.Formatter(prog))
			}

			if prog != nil {
				t.Error("partial program returned with error")
			}

			if !errors.Is(err, ErrParse) || !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v does not match ErrParse and %v", err, tt.sentinel)
			}

			var f *Failure
			if !errors.As(err, &f) {
				t.Fatalf("error %T carries no *Failure", err)
			}

			if !f.Cut {
				t.Error("top-level failure is not cut")
			}

			if f.Offset != tt.offset || f.Commit != tt.commit || f.Expected != tt.expected {
				t.Errorf("got offset=%d commit=%q expected=%q, want %d %q %q",
					f.Offset, f.Commit, f.Expected, tt.offset, tt.commit, tt.expected)
			}

			if diff := pretty.Diff(tt.rules, f.Rules); len(diff) > 0 {
				t.Errorf("rule stack %s:\n%s", f.Stack(), strings.Join(diff, "\n"))
			}
		})
	}
}

func TestParseString_MalformedExternIsNotAnExpression(t *testing.T) {
	_, err := Parse("extern foo(")

	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("error %v carries no *Failure", err)
	}

	if !f.InContext(RulePrototype) || !f.InContext(RuleExtern) {
		t.Errorf("rule stack %q lacks prototype and extern", f.Stack())
	}

	if f.InContext(RuleVariable) || f.InContext(RuleCall) {
		t.Errorf("rule stack %q fell through to an expression", f.Stack())
	}

	want := `malformed extern declaration at offset 11 (line 1, column 12): ` +
		`expected identifier or ")" in parameter list, found end of input`
	if f.Error() != want {
		t.Errorf("message:\n got %q\nwant %q", f.Error(), want)
	}
}

func TestParseString_MaxDepth(t *testing.T) {
	ctx := context.Background()

	if _, err := ParseString(ctx, "f(g(1))", WithMaxDepth(3)); err != nil {
		t.Errorf("depth 3: %v", err)
	}

	_, err := ParseString(ctx, "f(g(1))", WithMaxDepth(2))
	if !errors.Is(err, ErrDepthExceeded) {
		t.Fatalf("depth 2: got %v, want ErrDepthExceeded", err)
	}

	var f *Failure
	if errors.As(err, &f) && f.Offset != 4 {
		t.Errorf("offset = %d, want 4", f.Offset)
	}

	deep := strings.Repeat("f(", 500) + "1" + strings.Repeat(")", 500)
	if _, err := ParseString(ctx, deep, WithMaxDepth(0)); err != nil {
		t.Errorf("unlimited depth: %v", err)
	}
}

func TestParseReader(t *testing.T) {
	got, err := ParseReader(context.Background(), strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got.Len() != 4 {
		t.Errorf("Len() = %d, want 4", got.Len())
	}

	_, err = ParseReader(context.Background(), failingReader{})
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("got %v, want ErrReadInput", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("disk on fire") }

func TestParseError_Snippet(t *testing.T) {
	_, err := Parse("x\nextern foo(")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %T is not a *ParseError", err)
	}

	want := "  2 | extern foo(\n" + strings.Repeat(" ", 6+11) + "^\n"
	if got := pe.Snippet(); got != want {
		t.Errorf("Snippet():\n%s\nwant:\n%s", got, want)
	}

	if !strings.HasPrefix(pe.Error(), "parse error: malformed extern declaration") {
		t.Errorf("Error() = %q", pe.Error())
	}
}

func TestPrefixParsers(t *testing.T) {
	stmt, rest, err := ParseStatement("extern f(a)\nnext")
	if err != nil || rest != "\nnext" || Summary(stmt) != "extern f(a)" {
		t.Errorf("ParseStatement = %v, %q, %v", Summary(stmt), rest, err)
	}

	expr, rest, err := ParseExpr("foo ()")
	if diff := pretty.Diff(&Variable{Name: "foo"}, expr); len(diff) > 0 || rest != " ()" || err != nil {
		t.Errorf("ParseExpr(\"foo ()\") = %v, %q, %v", expr, rest, err)
	}

	proto, rest, err := ParsePrototype("g(x, y) body")
	if proto.Signature() != "g(x, y)" || rest != " body" || err != nil {
		t.Errorf("ParsePrototype = %v, %q, %v", proto, rest, err)
	}

	_, rest, err = ParseExpr("f(,)")

	var f *Failure
	if !errors.As(err, &f) || !f.Cut || rest != "f(,)" {
		t.Errorf("ParseExpr(\"f(,)\") = %q, %v; want hard failure", rest, err)
	}
}

func TestPrefixParsers_FailureLocated(t *testing.T) {
	_, _, err := ParseExpr("f(1\n 2)")

	var f *Failure
	if !errors.As(err, &f) {
		t.Fatalf("ParseExpr error = %v, want *Failure", err)
	}

	if f.Offset != 5 || f.Line != 2 || f.Column != 2 || f.Found != "'2'" {
		t.Errorf("failure at offset=%d %d:%d found %s, want offset=5 2:2 found '2'",
			f.Offset, f.Line, f.Column, f.Found)
	}
}

func TestParser_FailLeavesPositionUnresolved(t *testing.T) {
	p := newParser("extern f(a)\nx", makeConfig())
	p.pos = 12

	f := p.fail(p.pos, StructuralMismatch, `"("`)
	if f.Line != 0 || f.Column != 0 || f.Found != "" {
		t.Fatalf("fail() resolved position %d:%d found %q", f.Line, f.Column, f.Found)
	}

	p.locate(f)

	if f.Line != 2 || f.Column != 1 || f.Found != "'x'" {
		t.Errorf("locate() = %d:%d found %q, want 2:1 found 'x'", f.Line, f.Column, f.Found)
	}
}

func TestParseString_TimeLinearInStatements(t *testing.T) {
	if testing.Short() {
		t.Skip("timing test")
	}

	elapsed := func(n int) time.Duration {
		src := strings.Repeat("f(1)\n", n)
		best := time.Duration(math.MaxInt64)

		for range 3 {
			start := time.Now()

			if _, err := Parse(src); err != nil {
				t.Fatal(err)
			}

			best = min(best, time.Since(start))
		}

		return best
	}

	small, large := elapsed(20000), elapsed(80000)

	// 4x the input; a quadratic parser takes about 16x as long.
	if large > 10*small {
		t.Errorf("parse of 80000 statements took %v, 20000 took %v", large, small)
	}
}
