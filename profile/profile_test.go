package profile

import (
	"slices"
	"testing"
)

func TestProfiler_EmptyMode_IsNoop(t *testing.T) {
	s := Profiler{Path: t.TempDir()}.Start()

	if _, ok := s.(ignore); !ok {
		t.Errorf("Start() = %T, want no-op", s)
	}

	s.Stop()
}

func TestModes_MatchesBuild(t *testing.T) {
	modes := Modes()

	if !Enabled() {
		if len(modes) != 0 {
			t.Errorf("Modes() = %v without profiling support", modes)
		}

		return
	}

	if !slices.IsSorted(modes) || !slices.Contains(modes, "cpu") {
		t.Errorf("Modes() = %v", modes)
	}

	if slices.Contains(modes, "quiet") {
		t.Error("Modes() lists quiet")
	}
}
