// Package module is the contract API modules satisfy and the lookup of the
// ports they expose to each other
package module

import phttp "beaconpair/internal/platform/net/http"

// Module mounts its routes and exposes a port bundle for other modules
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
