// Package version exposes build metadata injected at link time.
package version

//nolint:gochecknoglobals // Overridden via -ldflags at build time.
var (
	version   = "dev"
	gitCommit = "none"
	buildDate = "unknown"
)

// GetVersion returns the semantic version of the binary.
func GetVersion() string {
	return version
}

// GetGitCommit returns the git commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}
