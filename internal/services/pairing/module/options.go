package module

import (
	"time"

	"beaconpair/internal/platform/config"
	psvc "beaconpair/internal/services/pairing/service"
)

// Options controls the pairing handler
type Options struct {
	HandlerName  string        // name reported to the IAC host
	ReadyTimeout time.Duration // 0 waits for the peer client as long as the request lives
}

// FromConfig reads PAIRING_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	pc := cfg.Prefix("PAIRING_")
	return Options{
		HandlerName:  pc.MayString("HANDLER_NAME", psvc.HandlerName),
		ReadyTimeout: pc.MayDuration("READY_TIMEOUT", 0),
	}
}
