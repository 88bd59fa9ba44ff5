package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"beaconpair/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	// CORSOrigins lists origins allowed to call the API, empty allows none
	CORSOrigins []string

	// MaxBodyBytes caps request bodies, 0 uses 1MB
	MaxBodyBytes int64

	// SlowRequest marks requests at or above this duration as warn in the access log, 0 uses 500ms
	SlowRequest time.Duration

	// Timeout cancels the request context, 0 uses 30s.
	// Pairing requests wait on the peer client inside this window
	Timeout time.Duration
}

func (o StackOptions) withDefaults() StackOptions {
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 1 << 20
	}
	if o.SlowRequest <= 0 {
		o.SlowRequest = 500 * time.Millisecond
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return o
}

// CommonStack returns the baseline middleware slice for /api scopes
func CommonStack(opts ...StackOptions) []func(http.Handler) http.Handler {
	var o StackOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	o = o.withDefaults()

	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.LogContext,

		// outside RecoverJSON so recovered panics are logged as 500s
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: o.SlowRequest}),
		middleware.RecoverJSON,

		middleware.RequestSize(o.MaxBodyBytes),
		middleware.NoCache(),
		// wallets and dapps call in from the browser
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(o.Timeout),
	}
}
