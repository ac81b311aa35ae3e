// Package version exposes build-time version information.
// Values are injected at build time via -ldflags:
//
//	go build -ldflags "-X github.com/leasetrace/leasetrace/internal/version.Version=0.2.0 ..."
package version

import "fmt"

var (
	// Version is the semantic version of the binary.
	Version = "dev"
	// Commit is the git commit hash the binary was built from.
	Commit = "unknown"
	// Date is the build timestamp.
	Date = "unknown"
)

// Short returns just the version string.
func Short() string {
	return Version
}

// Info returns a human-readable version line.
func Info() string {
	return fmt.Sprintf("leasetrace %s (commit %s, built %s)", Version, Commit, Date)
}

// Map returns version fields for JSON health responses.
func Map() map[string]string {
	return map[string]string{
		"version": Version,
		"commit":  Commit,
		"date":    Date,
	}
}
