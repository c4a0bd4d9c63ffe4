// Package version reports the build version
package version

import "runtime/debug"

// Version can be set at build time:
// go build -ldflags "-X github.com/oisee/relaymusic/pkg/version.Version=v1.0.0"
var Version string

// String returns Version, or the VCS revision recorded by the Go toolchain
func String() string {
	if Version != "" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	rev, dirty := "", false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return info.Main.Version
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if dirty {
		rev += "-dirty"
	}
	return rev
}
