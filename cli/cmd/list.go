package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ardnew/kaleidoscope/lang"
)

// List prints one row per statement: its index, kind, and signature.
type List struct {
	Where string `help:"Select statements matching an expr-lang predicate, e.g. 'kind == \"extern\" && arity > 1'." short:"w"`
	Plain bool   `help:"Print tab-separated rows without a table."`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source" optional:""`
}

// Run executes the list command.
func (l *List) Run(ctx context.Context) error {
	prog, _, err := parseSource(ctx, l.Source)
	if err != nil {
		return err
	}

	selected, err := prog.Filter(l.Where)
	if err != nil {
		return ErrInvalidWhere.Wrap(err).With(slog.String("where", l.Where))
	}

	var rows [][]string

	for i, s := range selected {
		rows = append(rows, []string{strconv.Itoa(i), s.Kind().String(), lang.Summary(s)})
	}

	loggerFrom(ctx).DebugContext(ctx, "listing statements",
		slog.String("where", l.Where),
		slog.Int("selected", len(rows)),
		slog.Int("statements", prog.Len()),
	)

	w := stdout(ctx)

	if l.Plain {
		for _, row := range rows {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", row[0], row[1], row[2]); err != nil {
				return ErrWriteOutput.Wrap(err)
			}
		}

		return nil
	}

	r := lipgloss.NewRenderer(w)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("8"))).
		Headers("#", "KIND", "STATEMENT").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}

			return cell
		})

	if _, err := fmt.Fprintln(w, t.String()); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
