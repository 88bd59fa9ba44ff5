// Package config reads typed settings from prefixed keys.
// Keys come from the environment, optionally layered over a TOML file (see LoadFile)
package config

import (
	"strconv"
	"strings"
	"time"

	"beaconpair/internal/platform/config/raw"
	"beaconpair/internal/platform/logger"
)

// Conf is a namespaced view, e.g. New().Prefix("PAIRING_")
type Conf struct{ r raw.Conf }

// New returns a root view over the environment
func New() Conf { return Conf{r: raw.New()} }

// From returns a root view over src
func From(src raw.Source) Conf { return Conf{r: raw.From(src)} }

// Prefix returns a child view with an extra prefix
func (c Conf) Prefix(p string) Conf { return Conf{r: c.r.Prefix(p)} }

// Raw exposes the underlying reader, for bootstrap code like the logger
func (c Conf) Raw() raw.Conf { return c.r }

func (c Conf) key(k string) string { return c.r.Key(k) }

// MustString panics through the logger when key is unset
func (c Conf) MustString(key string) string {
	v, ok := c.r.Lookup(key)
	if !ok {
		logger.Get().Panic().Str("key", c.key(key)).Msg("missing required setting")
	}
	return v
}

// MustPort returns a listen address like ":4000"; the value must be a port in 1..65535
func (c Conf) MustPort(key string) string {
	s := c.MustString(key)
	if p, err := strconv.Atoi(s); err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid TCP port; expected 1..65535")
	}
	return ":" + s
}

// MayString returns the value or def
func (c Conf) MayString(key, def string) string { return c.r.Get(key, def) }

// MayInt returns the value or def; an unparsable value logs a warning and yields def
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayBool returns the value or def, parsed with strconv.ParseBool
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration returns the value or def, e.g. "250ms" or "5s"
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blanks; def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	v, ok := c.r.Lookup(key)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	s, ok := c.r.Lookup(key)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).Msg("invalid setting; using default")
		return def
	}
	return v
}
