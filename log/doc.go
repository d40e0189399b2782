// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("parse complete", slog.Int("statements", 3))
//
// The zero [Logger] discards everything, so it can be embedded in option
// structs without initialization.
//
// # Configuration
//
// Configure the logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithTimeLayout("Kitchen"),
//		log.WithCaller(true))
//
// [Logger.Wrap] derives a new logger from an existing configuration.
//
// # Levels
//
// In addition to the four [log/slog] levels, [LevelTrace] sits below
// [LevelDebug] for high-volume diagnostics and is rendered as "TRACE".
//
// # Output Formats
//
// [FormatText] (default) and [FormatJSON] are supported. With
// [WithPretty] enabled, both are styled for a terminal with lipgloss;
// styling is dropped automatically when the output is not a terminal.
//
// # Package-Level Logger
//
// The functions [Trace], [Debug], [Info], [Warn], and [Error] and their
// Context variants write to a package-level logger on standard error,
// which [Config] reconfigures. Functions without a context argument use
// [DefaultContextProvider].
package log
