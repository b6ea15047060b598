package common

var (
	// PackageName is used as the metrics namespace and default log service.
	PackageName = "halow"

	// Version is overridden at build time via -ldflags.
	Version = "dev"
)
