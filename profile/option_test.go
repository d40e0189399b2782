//go:build pprof

package profile

import "testing"

func TestProfileOptions(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		path  string
		quiet bool
		want  int
	}{
		{"unknown mode", "bogus", "/tmp", true, 0},
		{"quiet is not a mode", "quiet", "", false, 0},
		{"mode only", "cpu", "", false, 1},
		{"mode and path", "heap", "/tmp", false, 2},
		{"all", "mutex", "/tmp", true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := profileOptions(tt.mode, tt.path, tt.quiet); len(got) != tt.want {
				t.Errorf("profileOptions(%q, %q, %v) has %d options, want %d",
					tt.mode, tt.path, tt.quiet, len(got), tt.want)
			}
		})
	}
}
