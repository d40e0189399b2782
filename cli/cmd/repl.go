package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/kaleidoscope/cli/cmd/repl"
	"github.com/ardnew/kaleidoscope/lang"
)

// Repl starts an interactive session that parses each submitted line.
type Repl struct {
	NoHistory bool `help:"Do not read or write the history file."`

	Source string `arg:"" help:"Source file to seed the session, or '-' for stdin." name:"source" optional:""`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	var reader io.Reader

	switch r.Source {
	case "":
	case stdinSource:
		reader = stdin
	default:
		file, err := os.Open(r.Source)
		if err != nil {
			return ErrReadSource.Wrap(err).With(slog.String("file", r.Source))
		}
		defer file.Close()

		reader = file
	}

	cacheDir := ""

	if !r.NoHistory {
		if ktx := kongContextFrom(ctx); ktx != nil {
			cacheDir = ktx.Model.Vars()[CacheIdentifier]
		}
	}

	opts, _ := ctx.Value(parseOptionsKey{}).([]lang.Option)

	return repl.Run(ctx, reader, cacheDir, loggerFrom(ctx), opts...)
}
