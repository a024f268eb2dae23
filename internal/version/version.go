// Package version exposes the build identity stamped in by the release
// pipeline via -ldflags "-X ...".
package version

// Defaults apply to plain `go build` binaries.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
