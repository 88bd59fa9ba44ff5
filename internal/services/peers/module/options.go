package module

import "beaconpair/internal/platform/config"

// Options controls the peer registry
type Options struct {
	AutoConnect bool // mark the peer client connected as soon as the module is built
	MaxPeers    int  // 0 means unbounded
}

// FromConfig reads PEERS_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	pc := cfg.Prefix("PEERS_")
	return Options{
		AutoConnect: pc.MayBool("AUTOCONNECT", true),
		MaxPeers:    pc.MayInt("MAX", 0),
	}
}
