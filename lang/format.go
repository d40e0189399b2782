package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kr/pretty"
)

// Format writes the program in native Kaleidoscope syntax, one statement per
// line, or separated by ";" on a single line if compact is set.
//
// Parsing the output yields a program equal to p, provided p contains no
// [Infix] nodes.
func (p *Program) Format(_ context.Context, w io.Writer, compact bool) error {
	sep := "\n"
	if compact {
		sep = ";"
	}

	for i, s := range p.Statements {
		if i > 0 {
			if _, err := io.WriteString(w, sep); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, formatStatement(s)); err != nil {
			return err
		}
	}

	// Final newline
	_, err := fmt.Fprintln(w)

	return err
}

// FormatJSON writes the program as JSON to the writer.
func (p *Program) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(p, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(p)
	}

	if err != nil {
		return ErrEncode.Wrap(err)
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program as YAML to the writer.
func (p *Program) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, p.ToMap(), opts...)
	if err != nil {
		return ErrEncode.Wrap(err)
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// Debug writes a Go-syntax dump of v, such as a [*Program] or a [*Failure].
func Debug(w io.Writer, v any) error {
	_, err := pretty.Fprintf(w, "%# v\n", v)

	return err
}

// String returns the program in compact native syntax.
func (p *Program) String() string {
	parts := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		parts[i] = formatStatement(s)
	}

	return strings.Join(parts, ";")
}

func formatStatement(s Statement) string {
	switch s := s.(type) {
	case *Function:
		return keywordDef + " " + s.Proto.Signature() + " " + formatExpr(s.Body)

	case *Extern:
		return keywordExtern + " " + s.Proto.Signature()

	case *Expression:
		return formatExpr(s.Expr)

	default:
		return ""
	}
}

func formatExpr(e Expr) string {
	switch e := e.(type) {
	case *Number:
		return formatNumber(e.Value)

	case *Variable:
		return e.Name

	case *Call:
		args := make([]string, len(e.Args))
		for i, arg := range e.Args {
			args[i] = formatExpr(arg)
		}

		return e.Callee + "(" + strings.Join(args, ", ") + ")"

	case *Infix:
		return "(" + formatExpr(e.Left) + " " + string(e.Op) + " " +
			formatExpr(e.Right) + ")"

	default:
		return ""
	}
}

// formatNumber returns the shortest representation that parses back to v.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
