package storefront

// Version information for the storefront module
const (
	// Version is the current module version
	Version = "development"

	// BuildDate is set during build time
	BuildDate = "development"

	// GitCommit is set during build time
	GitCommit = "unknown"
)
