// Package version holds build metadata injected via ldflags.
package version

import "fmt"

// Set via -ldflags "-X github.com/boardka/boardka/internal/version.Version=..." at build time.
//
//nolint:revive // ldflags targets
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for --version output.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
