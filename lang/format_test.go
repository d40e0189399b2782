package lang

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/kr/pretty"
)

func TestProgram_Format_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		compact bool
		want    string
	}{
		{
			name:  "fixture",
			input: fixture,
			want:  fixture,
		},
		{
			name:    "fixture compact",
			input:   fixture,
			compact: true,
			want: "extern mul(a, b);extern print(x);" +
				"def double(x) mul(x, 2);print(double(32))\n",
		},
		{
			name:  "normalizes spacing and numbers",
			input: "def  f( a ,b )\n  g(1.50, -0.0, 1e3, 0.1e13);;\nf( 1 )\n",
			want:  "def f(a, b) g(1.5, -0, 1000, 1e+12)\nf(1)\n",
		},
		{
			name:  "empty",
			input: " ;\n",
			want:  "\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			var buf bytes.Buffer
			if err := prog.Format(context.Background(), &buf, tt.compact); err != nil {
				t.Fatalf("format error: %v", err)
			}

			if buf.String() != tt.want {
				t.Errorf("Format:\n got %q\nwant %q", buf.String(), tt.want)
			}

			again, err := Parse(buf.String())
			if err != nil {
				t.Fatalf("reparse error: %v", err)
			}

			if diff := pretty.Diff(prog, again); len(diff) > 0 {
				t.Errorf("round trip changed the AST:\n%s", strings.Join(diff, "\n"))
			}
		})
	}
}

func TestFormatExpr_Infix(t *testing.T) {
	e := &Infix{
		Left:  &Variable{Name: "x"},
		Op:    '+',
		Right: &Call{Callee: "f", Args: []Expr{&Number{Value: 2}}},
	}

	if got := formatExpr(e); got != "(x + f(2))" {
		t.Errorf("formatExpr = %q", got)
	}
}

func TestSummary(t *testing.T) {
	prog := fixtureProgram()

	want := []string{
		"extern mul(a, b)",
		"extern print(x)",
		"def double(x)",
		"print(double(32))",
	}

	for i, s := range prog.All() {
		if got := Summary(s); got != want[i] {
			t.Errorf("Summary(%d) = %q, want %q", i, got, want[i])
		}
	}

	if prog.String() != "extern mul(a, b);extern print(x);def double(x) mul(x, 2);print(double(32))" {
		t.Errorf("String() = %q", prog.String())
	}
}

func TestProgram_FormatJSON(t *testing.T) {
	prog, err := Parse("extern f(a)\nf(1)")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	var buf bytes.Buffer
	if err := prog.FormatJSON(context.Background(), &buf, 0); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	want := `{"statements":[` +
		`{"kind":"extern","name":"f","params":["a"]},` +
		`{"expr":{"args":[{"kind":"number","value":1}],"callee":"f","kind":"call"},` +
		`"kind":"expression"}]}` + "\n"

	if buf.String() != want {
		t.Errorf("FormatJSON:\n got %s\nwant %s", buf.String(), want)
	}

	buf.Reset()

	if err := prog.FormatJSON(context.Background(), &buf, 2); err != nil {
		t.Fatalf("FormatJSON indented: %v", err)
	}

	if !strings.Contains(buf.String(), "\n  \"statements\": [\n") {
		t.Errorf("not indented:\n%s", buf.String())
	}
}

func TestProgram_FormatYAML(t *testing.T) {
	prog, err := Parse("extern f(a)\ndef g(x) f(x)")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := map[string]any{
		"statements": []any{
			map[string]any{"kind": "extern", "name": "f", "params": []any{"a"}},
			map[string]any{
				"kind":   "function",
				"name":   "g",
				"params": []any{"x"},
				"body": map[string]any{
					"kind":   "call",
					"callee": "f",
					"args": []any{
						map[string]any{"kind": "variable", "name": "x"},
					},
				},
			},
		},
	}

	for _, indent := range []int{0, 2} {
		var buf bytes.Buffer
		if err := prog.FormatYAML(context.Background(), &buf, indent); err != nil {
			t.Fatalf("FormatYAML(%d): %v", indent, err)
		}

		var got map[string]any
		if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("output is not YAML: %v\n%s", err, buf.String())
		}

		if diff := pretty.Diff(want, got); len(diff) > 0 {
			t.Errorf("FormatYAML(%d) mismatch:\n%s", indent, strings.Join(diff, "\n"))
		}
	}
}

func TestDebug(t *testing.T) {
	var buf bytes.Buffer
	if err := Debug(&buf, &Variable{Name: "x"}); err != nil {
		t.Fatalf("Debug: %v", err)
	}

	if out := buf.String(); !strings.Contains(out, "lang.Variable") ||
		!strings.Contains(out, `"x"`) {
		t.Errorf("Debug output %q", buf.String())
	}
}
