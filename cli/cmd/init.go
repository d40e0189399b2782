package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"
)

// Init generates a default configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file" short:"f"`
}

// ignoreFlags names flags and flag groups left out of the configuration.
var ignoreFlags = []string{"help", "version", "pprof"}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.Wrap(ErrNoContext)
	}

	confPath, ok := ktx.Model.Vars()[ConfigIdentifier]
	if !ok {
		panic("internal error: configuration path undefined")
	}

	// Check if file exists and force not set
	_, err = os.Stat(confPath)
	if err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	if err := os.MkdirAll(filepath.Dir(confPath), 0o750); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	file, err := os.Create(confPath)
	if err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}
	defer file.Close()

	conf := configTable(ktx)

	if err := toml.NewEncoder(file).Encode(conf); err != nil {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			Wrap(err)
	}

	loggerFrom(ctx).DebugContext(
		ctx,
		"initialized configuration file",
		slog.String("path", confPath),
		slog.Int("keys", len(conf)),
	)

	fmt.Fprintln(stdout(ctx), confPath)

	return nil
}

// configTable returns the current values of the application flags. Flags in
// a group are nested in a table named by the group key with the key prefix
// removed, so "log-level" is written as
//
//	[log]
//	level = "warn"
func configTable(ktx *kong.Context) map[string]any {
	conf := make(map[string]any)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignoreFlags, func(s string) bool {
			return flag.Name == s || strings.HasPrefix(flag.Name, s+"-")
		}) {
			continue
		}

		val := configValue(ktx.FlagValue(flag))
		if val == nil {
			continue
		}

		if flag.Group != nil && flag.Group.Key != "" {
			key, ok := strings.CutPrefix(flag.Name, flag.Group.Key+"-")
			if ok {
				table, _ := conf[flag.Group.Key].(map[string]any)
				if table == nil {
					table = make(map[string]any)
					conf[flag.Group.Key] = table
				}

				table[key] = val

				continue
			}
		}

		conf[flag.Name] = val
	}

	return conf
}

// configValue converts a flag value to a TOML value, or nil if it is unset.
func configValue(val any) any {
	switch v := val.(type) {
	case nil:
		return nil

	case bool, int, int64, float64:
		return v

	case string:
		if v == "" {
			return nil
		}

		return v

	case []string:
		if len(v) == 0 {
			return nil
		}

		return v

	case fmt.Stringer:
		return v.String()

	default:
		s := fmt.Sprint(v)
		if s == "" {
			return nil
		}

		return s
	}
}
