package cli

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/ardnew/kaleidoscope/cli/cmd"
	"github.com/ardnew/kaleidoscope/lang"
	"github.com/ardnew/kaleidoscope/log"
	"github.com/ardnew/kaleidoscope/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// ErrConfigSyntax is returned when a configuration file cannot be decoded.
var ErrConfigSyntax = cmd.NewError("invalid configuration file")

// CLI is the top-level command-line interface for kl.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	MaxDepth int `default:"0" help:"Maximum expression nesting depth (0 for unlimited)." placeholder:"N"`

	Version kong.VersionFlag `help:"Print version and exit." short:"V"`

	Parse cmd.Parse `cmd:"" default:"withargs" help:"Parse a program and print its syntax tree (default)."`
	Check cmd.Check `cmd:""                    help:"Check that programs are well-formed."`
	Fmt   cmd.Fmt   `cmd:""                    help:"Format a program."`
	List  cmd.List  `cmd:""                    help:"List the statements of a program."`
	Repl  cmd.Repl  `cmd:""                    help:"Enter statements interactively."`
	Init  cmd.Init  `cmd:""                    help:"Write the current flags to the configuration file."`
}

// configPath returns the path of the configuration file with extension ext.
func configPath(ext string) string {
	return filepath.Join(pkg.ConfigDir(), baseConfig+ext)
}

// Run executes the kl CLI with the given context and arguments.
// The exit function is called with the appropriate exit code when kong
// terminates early, e.g. after printing help or version.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Configure logging from the command line before kong reports anything.
	cli.Log.scan(args)

	parser, err := kong.New(&cli, options(exit, &cli)...)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	defer cli.Log.start(ctx)()

	// No-op unless built with tag pprof and a mode is selected.
	defer cli.Pprof.start(ctx)()

	logger := log.Default().With(slog.String("run", uuid.NewString()))

	ctx = cmd.WithLogger(ctx, logger)
	ctx = cmd.WithParseOptions(ctx, lang.WithMaxDepth(cli.MaxDepth))
	ctx = cmd.WithContext(ctx, ktx)

	ktx.BindTo(ctx, (*context.Context)(nil))

	logger.TraceContext(ctx, "run command", slog.String("command", ktx.Command()))

	return ktx.Run()
}

func options(exit func(int), cli *CLI) []kong.Option {
	vars := kong.Vars{
		"version":            pkg.Version,
		cmd.ConfigIdentifier: configPath(".toml"),
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	return []kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.DefaultEnvars(pkg.EnvPrefix()),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(".json")),
		kong.Configuration(resolveTOML, configPath(".toml")),
		vars,
	}
}
