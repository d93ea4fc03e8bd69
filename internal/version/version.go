// Package version carries build metadata stamped at link time.
package version

// ServiceName is the canonical service identifier
const ServiceName = "spamshield"

// Overridden via -ldflags "-X github.com/codezworl/spamshield/internal/version.Version=..."
var (
	Version = "1.0.0"
	Commit  = "unknown"
	Date    = "unknown"
)
