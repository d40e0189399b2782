package cli

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"

	"github.com/ardnew/kaleidoscope/log"
)

// resolveTOML is a [kong.ConfigurationLoader] for TOML configuration files,
// the format written by the init command.
//
// Top-level keys name flags directly. A table names a flag group, and its
// keys name the flags of the group without the group prefix, so these are
// equivalent:
//
//	log-level = "debug"
//
//	[log]
//	level = "debug"
//
// Keys may use underscores in place of hyphens. Command-line flags and
// environment variables override config file values.
func resolveTOML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, ErrConfigSyntax.Wrap(err)
	}

	conf := make(config)
	conf.flatten("", doc)

	return conf, nil
}

// config implements [kong.Resolver] over flattened configuration keys.
type config map[string]any

func (c config) flatten(prefix string, table map[string]any) {
	for key, val := range table {
		key = normalizeKey(key)
		if prefix != "" {
			key = prefix + "-" + key
		}

		switch v := val.(type) {
		case map[string]any:
			c.flatten(key, v)

		case int64:
			// kong decodes numbers from their text form.
			c[key] = strconv.FormatInt(v, 10)

		case float64:
			c[key] = strconv.FormatFloat(v, 'f', -1, 64)

		default:
			c[key] = v
		}
	}
}

func normalizeKey(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// Validate implements [kong.Resolver]. Unknown keys are logged and ignored,
// so a configuration file written by a newer version remains usable.
func (c config) Validate(app *kong.Application) error {
	known := make(map[string]struct{})

	var visit func(*kong.Node)

	visit = func(node *kong.Node) {
		for _, flag := range node.Flags {
			known[flag.Name] = struct{}{}
		}

		for _, child := range node.Children {
			visit(child)
		}
	}

	visit(app.Node)

	for key := range c {
		if _, ok := known[key]; !ok {
			log.Debug("ignoring unknown configuration key", slog.String("key", key))
		}
	}

	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	return nil, nil //nolint:nilnil
}
