// Package strings holds the few string helpers module wiring needs
package strings

import (
	"fmt"
	std "strings"
)

// IfEmpty is in unless it has no elements, then def
func IfEmpty[T any](in, def []T) []T {
	if len(in) > 0 {
		return in
	}
	return def
}

// MustString panics with what's name unless s has visible content
func MustString(s, what string) string {
	if std.TrimSpace(s) == "" {
		panic(fmt.Sprintf("%s is required", what))
	}
	return s
}

// MustPrefix cleans a route prefix to "/name" form: one leading slash, no trailing one.
// The root itself is refused since modules never mount there
func MustPrefix(s string) string {
	segs := std.FieldsFunc(s, func(r rune) bool { return r == '/' || r == ' ' })
	if len(segs) == 0 {
		panic(fmt.Sprintf("route prefix %q resolves to root", s))
	}
	return "/" + std.Join(segs, "/")
}
