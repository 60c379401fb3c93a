// Package version holds build metadata injected via -ldflags.
package version

var (
	// Version is the semantic version or branch name of the build.
	Version = "dev"
	// Commit is the short git commit hash of the build.
	Commit = "none"
)
