package lang

import (
	"encoding/json"
)

// MarshalJSON implements json.Marshaler for Program.
func (p *Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMap())
}

// ToMap converts the program to a native Go map structure:
//
//	{"statements": [{"kind": "extern", "name": "f", "params": [...]}, ...]}
func (p *Program) ToMap() map[string]any {
	stmts := make([]any, len(p.Statements))
	for i, s := range p.Statements {
		stmts[i] = StatementToMap(s)
	}

	return map[string]any{"statements": stmts}
}

// StatementToMap converts a statement to a native Go map keyed by field
// name, with a "kind" entry naming the variant.
func StatementToMap(s Statement) map[string]any {
	switch s := s.(type) {
	case *Function:
		return map[string]any{
			"kind":   s.Kind().String(),
			"name":   s.Proto.Name,
			"params": paramsToNative(s.Proto.Params),
			"body":   ExprToMap(s.Body),
		}

	case *Extern:
		return map[string]any{
			"kind":   s.Kind().String(),
			"name":   s.Proto.Name,
			"params": paramsToNative(s.Proto.Params),
		}

	case *Expression:
		return map[string]any{
			"kind": s.Kind().String(),
			"expr": ExprToMap(s.Expr),
		}

	default:
		return nil
	}
}

// ExprToMap converts an expression to a native Go map keyed by field name,
// with a "kind" entry naming the variant.
func ExprToMap(e Expr) map[string]any {
	switch e := e.(type) {
	case *Number:
		return map[string]any{
			"kind":  e.Kind().String(),
			"value": e.Value,
		}

	case *Variable:
		return map[string]any{
			"kind": e.Kind().String(),
			"name": e.Name,
		}

	case *Call:
		args := make([]any, len(e.Args))
		for i, arg := range e.Args {
			args[i] = ExprToMap(arg)
		}

		return map[string]any{
			"kind":   e.Kind().String(),
			"callee": e.Callee,
			"args":   args,
		}

	case *Infix:
		return map[string]any{
			"kind":  e.Kind().String(),
			"op":    string(e.Op),
			"left":  ExprToMap(e.Left),
			"right": ExprToMap(e.Right),
		}

	default:
		return nil
	}
}

func paramsToNative(params []string) []any {
	result := make([]any, len(params))
	for i, param := range params {
		result[i] = param
	}

	return result
}
