// Package version records build metadata stamped at link time via
// -ldflags "-X github.com/sumidera/panostat/pkg/version.Version=...".
package version

var (
	// Version is the semantic version of the panostat binary.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)
