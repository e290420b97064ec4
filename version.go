package manychat

import "fmt"

var (
	// Version is the library semantic version (injected at build time optionally).
	Version = "v0.3.0"
	// GitCommit is the git SHA (inject via -ldflags at build time).
	GitCommit = "unknown"
)

// userAgent identifies the SDK on every outbound request.
func userAgent() string {
	return fmt.Sprintf("manychat-go/%s", Version)
}

// GetVersion returns a human-readable version string.
func GetVersion() string {
	return fmt.Sprintf("manychat-go %s (commit: %s)", Version, GitCommit)
}
