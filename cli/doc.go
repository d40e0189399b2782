// Package cli contains the command line interface for kl.
//
// # Usage
//
//	kl [flags] <command> [args]
//
// With no command, kl parses the named source (or stdin) and prints its
// syntax tree. The commands are:
//
//   - parse: print the syntax tree of a program
//   - check: report whether each source is well-formed, with diagnostics
//   - fmt: re-emit a program as native syntax, JSON, YAML, or a Go-syntax dump
//   - list: tabulate the statements of a program, optionally filtered with
//     an expr-lang predicate
//   - repl: enter statements interactively
//   - init: write the current flags to the configuration file
//
// # Configuration
//
// Flags are resolved, in order of precedence, from the command line, from
// environment variables named KL_<FLAG> (e.g. KL_LOG_LEVEL), and from
// config.toml or config.json in the user configuration directory. The TOML
// file groups flags into tables:
//
//	max-depth = 256
//
//	[log]
//	level = "debug"
//	format = "json"
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time: Set timestamp layout (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output on a terminal
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o kl ./cmd/kl
//
// Then --pprof-mode selects a profile (allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, trace) and --pprof-dir its output
// directory, by default the pprof subdirectory of the user cache directory.
package cli
