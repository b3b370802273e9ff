// Package version holds build metadata injected with -ldflags.
package version

import "fmt"

// Set at build time, e.g.
// -ldflags "-X github.com/itsmostafa/catpage/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// String formats the full version line.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
