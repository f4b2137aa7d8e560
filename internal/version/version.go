// Package version carries the build-stamped release string.
package version

// AppVersion is overridden at release time via -ldflags.
var AppVersion = "dev"
