// Package modkit assembles API modules: shared deps, build options and a Base
// that owns a module's name, prefix and routes
package modkit

import (
	"beaconpair/internal/modkit/module"
	"beaconpair/internal/platform/config"
	"beaconpair/internal/platform/logger"
)

// Module is the surface the API composes
type Module = module.Module

// Deps holds what every module may read at build time
type Deps struct {
	Log *logger.Logger // root logger, logger.Get() when nil
	Cfg config.Conf
}

// Logger returns a child of Deps.Log tagged with component
func (d Deps) Logger(component string) *logger.Logger {
	if d.Log == nil {
		return logger.Named(component)
	}
	l := d.Log.With().Str("component", component).Logger()
	return &l
}
