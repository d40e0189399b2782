package pkg

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVersion_MatchesFile(t *testing.T) {
	buf, err := os.ReadFile("VERSION")
	if err != nil {
		t.Fatalf("read VERSION: %v", err)
	}

	if want := strings.TrimSpace(string(buf)); Version != want {
		t.Errorf("Version = %q, want %q", Version, want)
	}

	if Version == "" {
		t.Error("Version is empty")
	}
}

func TestAuthor_Populated(t *testing.T) {
	if len(Author) == 0 {
		t.Fatal("no authors")
	}

	for i, a := range Author {
		if a.Name == "" && a.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestPrefixOf(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/local/bin/kl", "kl"},
		{"/tmp/kl.exe", "kl"},
		{"/tmp/__debug_bin3812", Name},
		{"/home/u/.kl", "kl"},
		{"/home/u/...", Name},
		{"/", Name},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := prefixOf(tt.path); got != tt.want {
				t.Errorf("prefixOf(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestDirs_EndWithPrefix(t *testing.T) {
	for name, dir := range map[string]string{
		"ConfigDir": ConfigDir(),
		"CacheDir":  CacheDir(),
	} {
		if filepath.Base(dir) != Prefix() {
			t.Errorf("%s() = %q does not end with %q", name, dir, Prefix())
		}
	}
}

func TestEnvPrefix(t *testing.T) {
	got := EnvPrefix()

	if got == "" || got != strings.ToUpper(got) || strings.ContainsAny(got, "-.") {
		t.Errorf("EnvPrefix() = %q", got)
	}
}
