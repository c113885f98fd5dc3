// Package version carries build metadata stamped in at link time.
package version

import "fmt"

// Set via -ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a single-line description of the running build.
func Info() string {
	return fmt.Sprintf("plume %s (commit %s, built %s)", Version, Commit, Date)
}
