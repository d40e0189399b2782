package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/ardnew/kaleidoscope/lang"
	"github.com/ardnew/kaleidoscope/log"
)

// ContextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

type (
	loggerKey       struct{}
	parseOptionsKey struct{}
)

// WithLogger returns a new context.Context carrying the logger used by
// commands and passed to the parser.
func WithLogger(ctx context.Context, logger log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// loggerFrom returns the logger stored by WithLogger, or the package-level
// logger.
func loggerFrom(ctx context.Context) log.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(log.Logger); ok {
		return logger
	}

	return log.Default()
}

// WithParseOptions returns a new context.Context carrying options applied to
// every parse a command performs.
func WithParseOptions(ctx context.Context, opts ...lang.Option) context.Context {
	return context.WithValue(ctx, parseOptionsKey{}, opts)
}

func parseOptionsFrom(ctx context.Context) []lang.Option {
	opts, _ := ctx.Value(parseOptionsKey{}).([]lang.Option)

	return append([]lang.Option{lang.WithLogger(loggerFrom(ctx))}, opts...)
}

// stdout returns the writer command output goes to.
func stdout(ctx context.Context) io.Writer {
	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// stdin is read when a source is [stdinSource].
var stdin io.Reader = os.Stdin

// readSource returns the content of the file at path, or of stdin.
func readSource(path string) (string, error) {
	var r io.Reader = stdin

	if path != stdinSource {
		file, err := os.Open(path)
		if err != nil {
			return "", ErrReadSource.Wrap(err).With(slog.String("file", path))
		}
		defer file.Close()

		r = file
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", ErrReadSource.Wrap(err).With(slog.String("file", path))
	}

	return string(data), nil
}

// parseSource reads and parses the program at path with the options in ctx.
// The source text is returned even when parsing fails.
func parseSource(
	ctx context.Context,
	path string,
) (*lang.Program, string, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, "", err
	}

	prog, err := lang.ParseString(ctx, src, parseOptionsFrom(ctx)...)

	return prog, src, err
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniqueSources returns paths in order with duplicates removed. Two paths are
// duplicates when they name the same file after resolving symlinks, or are
// both [stdinSource]. Paths that cannot be resolved are kept, so that reading
// them reports the error.
func uniqueSources(paths []string) []string {
	out := make([]string, 0, len(paths))
	seen := make(map[fileKey]struct{})
	seenStdin := false

	for _, path := range paths {
		if path == stdinSource {
			if !seenStdin {
				out = append(out, path)
			}

			seenStdin = true

			continue
		}

		key, ok := sourceKey(path)
		if ok {
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}
		}

		out = append(out, path)
	}

	return out
}

// sourceKey resolves path and returns the identity of the file it names.
func sourceKey(path string) (fileKey, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fileKey{}, false
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return fileKey{}, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return fileKey{}, false
	}

	return makeFileKey(info)
}

// makeFileKey creates a fileKey from os.FileInfo.
// Returns false if the underlying Sys() data is not of type *syscall.Stat_t.
func makeFileKey(info os.FileInfo) (key fileKey, ok bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return key, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true //nolint:unconvert
}
