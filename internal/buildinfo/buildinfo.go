// Package buildinfo identifies the running build in logs and the window
// title.
package buildinfo

import "runtime/debug"

// Version, Commit and Date are set with -ldflags "-X".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

// Short returns the release version, else a commit, else "dev". Without a
// linker-set commit it uses the VCS revision the go tool stamped.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return abbrev(Commit)
	}
	if bi, ok := readBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return abbrev(s.Value)
			}
		}
	}
	return "dev"
}

func abbrev(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
