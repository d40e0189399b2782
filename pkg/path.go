package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base name used for the configuration and cache
// directories and, upper-cased, for environment variable identifiers.
//
// It is the base name of the executable without extension, except:
//   - "__debug_bin<N>" (output of the dlv debugger) becomes [Name]
//   - leading dots are removed
//   - an empty result becomes [Name]
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(func() string { return prefixOf(executable()) })

func executable() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}

	return os.Args[0]
}

var prefixRules = []struct {
	rex *regexp.Regexp
	rep string
}{
	{regexp.MustCompile(`^__debug_bin\d*$`), Name},
	{regexp.MustCompile(`^\.+`), ""},
}

func prefixOf(path string) string {
	base := filepath.Base(path)
	id := strings.TrimSuffix(base, filepath.Ext(base))

	for _, rule := range prefixRules {
		id = rule.rex.ReplaceAllString(id, rule.rep)
	}

	if id == "" || id == "." || id == string(filepath.Separator) {
		return Name
	}

	return id
}

// userDir returns dir joined with [Prefix], falling back to fallback under
// the home directory, and finally the working directory.
func userDir(dir func() (string, error), fallback string) string {
	root, err := dir()
	if err != nil {
		if home, herr := os.UserHomeDir(); herr == nil {
			root = filepath.Join(home, fallback)
		} else if wd, werr := os.Getwd(); werr == nil {
			root = wd
		} else {
			root = "."
		}
	}

	return filepath.Join(root, Prefix())
}

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(func() string {
	return userDir(os.UserConfigDir, ".config")
})

// CacheDir returns the cache directory path used for history and profiles.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(func() string {
	return userDir(os.UserCacheDir, ".cache")
})

// EnvPrefix returns the prefix of environment variables that override
// command-line flags, e.g. "KL" for KL_LOG_LEVEL.
func EnvPrefix() string {
	return strings.ToUpper(strings.NewReplacer("-", "_", ".", "_").Replace(Prefix()))
}
