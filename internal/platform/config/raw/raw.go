// Package raw is the bootstrap key reader. It must not import the logger,
// which reads its own settings through it
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Source resolves a fully qualified key
type Source func(key string) (string, bool)

// Env reads the process environment
func Env(key string) (string, bool) { return os.LookupEnv(key) }

// Layered asks each source in turn and returns the first non blank value
func Layered(srcs ...Source) Source {
	return func(key string) (string, bool) {
		for _, s := range srcs {
			if s == nil {
				continue
			}
			if v, ok := s(key); ok && strings.TrimSpace(v) != "" {
				return v, true
			}
		}
		return "", false
	}
}

// Map serves keys from m
func Map(m map[string]string) Source {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// Conf is a prefixed view over a Source
type Conf struct {
	prefix string
	src    Source
}

// New returns a root view over the environment
func New() Conf { return Conf{src: Env} }

// From returns a root view over src
func From(src Source) Conf {
	if src == nil {
		src = Env
	}
	return Conf{src: src}
}

// Prefix returns a child view, e.g. Prefix("LOG_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, src: c.src} }

// Key is the fully qualified name for k
func (c Conf) Key(k string) string { return c.prefix + k }

// Lookup returns the trimmed value of k; blank counts as unset
func (c Conf) Lookup(k string) (string, bool) {
	src := c.src
	if src == nil {
		src = Env
	}
	v, ok := src(c.Key(k))
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// Get returns the value of key or def
func (c Conf) Get(key, def string) string {
	if v, ok := c.Lookup(key); ok {
		return v
	}
	return def
}

// GetBool accepts 1, true and yes (any case) as true; any other set value is false
func (c Conf) GetBool(key string, def bool) bool {
	v, ok := c.Lookup(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// GetInt returns a non negative decimal value or def
func (c Conf) GetInt(key string, def int) int {
	v, ok := c.Lookup(key)
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(v, 10, 31)
	if err != nil {
		return def
	}
	return int(n)
}
