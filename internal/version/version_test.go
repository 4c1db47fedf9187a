package version

import (
	"strings"
	"testing"
)

func TestCurrentDefaults(t *testing.T) {
	info := Current()
	if info.Version == "" {
		t.Error("Version should have a default value")
	}
	if info.Version != strings.TrimSpace(Version) {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
}

func TestCurrentOverride(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})

	Version = " 1.2.3 "
	GitCommit = "abc123def456\n"
	BuildDate = "2024-01-15T10:30:00Z"

	got := Current()
	want := Info{Version: "1.2.3", GitCommit: "abc123def456", BuildDate: "2024-01-15T10:30:00Z"}
	if got != want {
		t.Errorf("Current() = %+v, want %+v", got, want)
	}

	Version = ""
	if got := Current().Version; got != "dev" {
		t.Errorf("empty Version = %q, want dev", got)
	}
}

func TestColored(t *testing.T) {
	if got := Colored("0.1.0-dev", false); got != "0.1.0-dev" {
		t.Errorf("Colored(disabled) = %q", got)
	}
	if got := Colored("nightly", true); got != "nightly" {
		t.Errorf("Colored(non-semver) = %q", got)
	}

	got := Colored("0.1.0-dev", true)
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("Colored(enabled) has no ANSI codes: %q", got)
	}
	if !strings.HasSuffix(got, "-dev") {
		t.Errorf("Colored(enabled) lost suffix: %q", got)
	}
}
