//go:build pprof

package profile

import "github.com/pkg/profile"

// profileOptions translates a session into pkg/profile options, or nil if
// mode is not one of [Modes].
func profileOptions(mode, path string, quiet bool) []func(*profile.Profile) {
	selected, ok := modes[mode]
	if !ok {
		return nil
	}

	opts := []func(*profile.Profile){selected}

	if path != "" {
		opts = append(opts, profile.ProfilePath(path))
	}

	if quiet {
		opts = append(opts, profile.Quiet)
	}

	return opts
}
