// Package middleware is the request middleware the API mounts: chi's stock pieces,
// CORS for browser wallets, JSON panic recovery and a zerolog access log
package middleware

import (
	"net/http"
	"time"

	pstrings "beaconpair/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Middleware is the shape every constructor here returns
type Middleware = func(http.Handler) http.Handler

// RequestID reuses an inbound X-Request-Id or mints one
func RequestID() Middleware { return chimw.RequestID }

// RealIP rewrites RemoteAddr from X-Real-IP or X-Forwarded-For
func RealIP() Middleware { return chimw.RealIP }

// Timeout cancels the request context after d and answers 504 if the handler gave up
func Timeout(d time.Duration) Middleware { return chimw.Timeout(d) }

// NoCache marks responses uncacheable
func NoCache() Middleware { return chimw.NoCache }

// Compress negotiates gzip or deflate at level
func Compress(level int) Middleware { return chimw.Compress(level) }

// StripSlashes routes /peers/ as /peers
func StripSlashes() Middleware { return chimw.StripSlashes }

// RequestSize fails body reads past n bytes
func RequestSize(n int64) Middleware { return chimw.RequestSize(n) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) Middleware { return chimw.Heartbeat(path) }

// CORSOptions narrows go-chi/cors to what the API configures
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	corsHeaders = []string{"Accept", "Content-Type", "X-Request-Id"}
)

// CORS lets browser dapps and wallets call the API. No origins means cross origin calls are refused
func CORS(o CORSOptions) Middleware {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, corsMethods),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, corsHeaders),
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         o.MaxAge,
	})
}
