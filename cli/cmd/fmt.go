package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/kaleidoscope/lang"
)

// Fmt parses a program and re-emits it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native Kaleidoscope syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	Debug  Debug  `cmd:""                    help:"Format as Go-syntax debug representation."`
}

// Native formats input as canonical native syntax.
type Native struct {
	Compact bool `help:"Separate statements with ';' on a single line." short:"c"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source" optional:""`
}

// Run executes the native command.
func (f *Native) Run(ctx context.Context) (err error) {
	prog, err := parseFormat(ctx, f.Source, "native")
	if err != nil {
		return err
	}

	return wrapWrite(prog.Format(ctx, stdout(ctx), f.Compact))
}

// JSON formats input as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output (0 for compact)." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source" optional:""`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	prog, err := parseFormat(ctx, j.Source, "json")
	if err != nil {
		return err
	}

	return wrapWrite(prog.FormatJSON(ctx, stdout(ctx), j.Indent))
}

// YAML formats input as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source" optional:""`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	prog, err := parseFormat(ctx, y.Source, "yaml")
	if err != nil {
		return err
	}

	return wrapWrite(prog.FormatYAML(ctx, stdout(ctx), y.Indent))
}

// Debug formats input as the Go-syntax representation of the syntax tree.
type Debug struct {
	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source" optional:""`
}

// Run executes the debug command.
func (d *Debug) Run(ctx context.Context) error {
	prog, err := parseFormat(ctx, d.Source, "debug")
	if err != nil {
		return err
	}

	return wrapWrite(lang.Debug(stdout(ctx), prog))
}

func parseFormat(
	ctx context.Context,
	path, format string,
) (*lang.Program, error) {
	prog, _, err := parseSource(ctx, path)
	if err != nil {
		return nil, err
	}

	loggerFrom(ctx).DebugContext(ctx, "formatting program",
		slog.String("file", path),
		slog.String("format", format),
		slog.Int("statements", prog.Len()),
	)

	return prog, nil
}

func wrapWrite(err error) error {
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
