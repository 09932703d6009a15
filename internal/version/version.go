// Package version carries the build version, overridden at link time with
// -ldflags "-X timeclock/internal/version.Version=...".
package version

var Version = "dev"
