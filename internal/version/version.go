package version

import "runtime/debug"

// Build information. BuildDate and GitCommit are set with -ldflags -X.
var (
	Version   = "0.3.0"
	BuildDate = "development"
	GitCommit = "unknown"
)

// Info returns the semantic version.
func Info() string {
	return Version
}

// FullInfo returns the version with its commit and build date. A binary
// built without ldflags falls back to the VCS revision recorded by the Go
// toolchain.
func FullInfo() string {
	commit := GitCommit
	if commit == "unknown" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && len(s.Value) >= 12 {
					commit = s.Value[:12]
				}
			}
		}
	}
	return "lingo " + Version + " (commit: " + commit + ", built: " + BuildDate + ")"
}
