// Package version reports what build of the service is running
package version

import "runtime"

// Overridden at build time, e.g.
// -ldflags "-X 'adrata/internal/core/version.version=v0.1.0'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is the payload of the version endpoint
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
}

// Info returns the build information stamped into this binary
func Info() BuildInfo {
	return BuildInfo{
		Service: "adrata-oasis",
		Version: version,
		Commit:  commit,
		Date:    date,
		Go:      runtime.Version(),
	}
}
