// Package version provides information about the build version of the service.
package version

import "beaconpair/internal/core/beacon"

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	// Protocol is the pairing link type this build understands
	Protocol string `json:"protocol"`
}

// ServiceName is the name the API reports about itself
const ServiceName = "beaconpair-api"

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'beaconpair/internal/core/version.version=v0.0.1'
	// -X 'beaconpair/internal/core/version.commit=abcd' -X 'beaconpair/internal/core/version.date=2025-09-02'"
	return BuildInfo{
		Service:  ServiceName,
		Version:  version,
		Commit:   commit,
		Date:     date,
		Protocol: beacon.LinkType,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
