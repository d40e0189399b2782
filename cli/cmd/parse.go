package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ardnew/kaleidoscope/lang"
)

// Parse parses a program and prints its debug representation: the syntax
// tree on success, or the failure.
type Parse struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source" optional:""`
}

// Run executes the parse command.
func (p *Parse) Run(ctx context.Context) error {
	w := stdout(ctx)

	prog, _, err := parseSource(ctx, p.Source)
	if err != nil {
		var perr *lang.ParseError
		if errors.As(err, &perr) {
			if derr := lang.Debug(w, perr.Failure); derr != nil {
				return ErrWriteOutput.Wrap(derr)
			}
		}

		return err
	}

	loggerFrom(ctx).DebugContext(ctx, "parsed source",
		slog.String("file", p.Source),
		slog.Int("statements", prog.Len()),
	)

	if err := lang.Debug(w, prog); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
