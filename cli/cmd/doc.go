// Package cmd implements the kl subcommands: parse, check, fmt, list, init,
// and repl.
//
// Commands read a source file, or stdin when the source is "-", and parse it
// with the options stored in the context by [WithParseOptions]. Output goes
// to the kong context's standard output.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the TOML configuration file.
	ConfigIdentifier = "config"
)
