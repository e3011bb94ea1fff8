package buildinfo

import (
	"runtime/debug"
	"testing"
)

func setBuild(t *testing.T, version, commit string, settings ...debug.BuildSetting) {
	t.Helper()
	oldV, oldC, oldR := Version, Commit, readBuildInfo
	t.Cleanup(func() { Version, Commit, readBuildInfo = oldV, oldC, oldR })
	Version, Commit = version, commit
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: settings}, true
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		commit   string
		settings []debug.BuildSetting
		want     string
	}{
		{"release", "v1.2.0", "abc", nil, "v1.2.0"},
		{"linker commit", "dev", "0123456789abcdef", nil, "0123456789ab"},
		{"vcs stamp", "dev", "unknown", []debug.BuildSetting{{Key: "vcs.revision", Value: "feedbeef"}}, "feedbeef"},
		{"nothing", "dev", "unknown", nil, "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBuild(t, tt.version, tt.commit, tt.settings...)
			if got := Short(); got != tt.want {
				t.Fatalf("Short() = %q, want %q", got, tt.want)
			}
		})
	}
}
