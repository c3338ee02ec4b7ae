// Package regiodb holds application-wide metadata shared by the CLI.
package regiodb

var (
	// Version is set by build flags.
	Version = "dev"
	// Build is set by build flags to the build timestamp.
	Build = "n/a"
)
