// Package profile provides optional runtime profiling.
//
// Profiling is compiled in only with the "pprof" build tag, using
// [github.com/pkg/profile]. Without the tag, [Profiler.Start] is a no-op and
// [Modes] is empty.
//
//	p := profile.Profiler{Mode: "cpu", Path: dir}
//	defer p.Start().Stop()
//
// Profiles are written to Path with names matching the mode (cpu.pprof,
// mem.pprof, ...) and analyzed with "go tool pprof". The kl command exposes
// this through its --pprof-mode and --pprof-dir flags; the default directory
// is the pprof subdirectory of the user cache directory.
package profile
