package lang

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kr/pretty"
)

func TestExprToMap(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want map[string]any
	}{
		{
			name: "number",
			expr: &Number{Value: -1.5},
			want: map[string]any{"kind": "number", "value": -1.5},
		},
		{
			name: "variable",
			expr: &Variable{Name: "x"},
			want: map[string]any{"kind": "variable", "name": "x"},
		},
		{
			name: "call",
			expr: &Call{Callee: "f", Args: []Expr{}},
			want: map[string]any{"kind": "call", "callee": "f", "args": []any{}},
		},
		{
			name: "infix",
			expr: &Infix{Left: &Number{Value: 1}, Op: '<', Right: &Variable{Name: "y"}},
			want: map[string]any{
				"kind":  "infix",
				"op":    "<",
				"left":  map[string]any{"kind": "number", "value": 1.0},
				"right": map[string]any{"kind": "variable", "name": "y"},
			},
		},
		{
			name: "nil",
			expr: nil,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := pretty.Diff(tt.want, ExprToMap(tt.expr)); len(diff) > 0 {
				t.Errorf("ExprToMap mismatch:\n%s", strings.Join(diff, "\n"))
			}
		})
	}
}

func TestProgram_MarshalJSON_Decodes(t *testing.T) {
	data, err := json.Marshal(fixtureProgram())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded struct {
		Statements []struct {
			Kind   string   `json:"kind"`
			Name   string   `json:"name"`
			Params []string `json:"params"`
		} `json:"statements"`
	}

	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	kinds := make([]string, len(decoded.Statements))
	for i, s := range decoded.Statements {
		kinds[i] = s.Kind
	}

	if got := strings.Join(kinds, ","); got != "extern,extern,function,expression" {
		t.Errorf("kinds = %s", got)
	}

	if decoded.Statements[2].Name != "double" || len(decoded.Statements[0].Params) != 2 {
		t.Errorf("decoded = %+v", decoded.Statements)
	}
}
