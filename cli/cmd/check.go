package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/kaleidoscope/lang"
)

// Check parses each source and reports whether it is well-formed.
type Check struct {
	Quiet bool `help:"Report only sources that fail to parse." short:"q"`

	Sources []string `arg:"" help:"Source input files or '-' for stdin." name:"source"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	w := stdout(ctx)
	st := newDiagnosticStyle(w)
	logger := loggerFrom(ctx)

	sources := uniqueSources(c.Sources)
	failed := 0

	for _, path := range sources {
		prog, _, err := parseSource(ctx, path)

		var perr *lang.ParseError

		switch {
		case err == nil:
			logger.DebugContext(ctx, "check ok",
				slog.String("file", path),
				slog.Int("statements", prog.Len()),
			)

			if !c.Quiet {
				fmt.Fprintf(w, "%s: %s (%d statements)\n",
					st.path.Render(displayName(path)), st.ok.Render("ok"), prog.Len())
			}

		case errors.As(err, &perr):
			failed++

			logger.DebugContext(ctx, "check failed",
				slog.String("file", path),
				slog.Any("failure", perr.Failure),
			)

			st.render(w, displayName(path), perr)

		default:
			failed++

			fmt.Fprintf(w, "%s: %s %s\n",
				st.path.Render(displayName(path)), st.err.Render("error:"), err)
		}
	}

	if failed > 0 {
		return ErrCheckFailed.With(
			slog.Int("failed", failed),
			slog.Int("sources", len(sources)),
		)
	}

	return nil
}

func displayName(path string) string {
	if path == stdinSource {
		return "<stdin>"
	}

	return path
}

// diagnosticStyle renders parse failures bound to the renderer of the output,
// so styling is dropped when it is not a terminal.
type diagnosticStyle struct {
	path, ok, err, caret, gutter lipgloss.Style
}

func newDiagnosticStyle(w io.Writer) diagnosticStyle {
	r := lipgloss.NewRenderer(w)

	return diagnosticStyle{
		path:   r.NewStyle().Bold(true),
		ok:     r.NewStyle().Foreground(lipgloss.Color("2")),
		err:    r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		caret:  r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		gutter: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// render writes
//
//	path:line:column: error: <failure>
//	  N | <source line>
//	      ^
//	  in <rule stack>
func (st diagnosticStyle) render(w io.Writer, path string, perr *lang.ParseError) {
	f := perr.Failure

	fmt.Fprintf(w, "%s: %s %s\n",
		st.path.Render(fmt.Sprintf("%s:%d:%d", path, f.Line, f.Column)),
		st.err.Render("error:"),
		f.Error(),
	)

	snippet := strings.TrimSuffix(perr.Snippet(), "\n")
	if snippet != "" {
		line, caret, _ := strings.Cut(snippet, "\n")
		fmt.Fprintln(w, st.gutter.Render(line))
		fmt.Fprintln(w, strings.Replace(caret, "^", st.caret.Render("^"), 1))
	}

	if stack := f.Stack(); stack != "" {
		fmt.Fprintln(w, st.gutter.Render("  in "+stack))
	}
}
