package middleware

import (
	"net"
	"net/http"
	"time"

	"beaconpair/internal/platform/logger"
	pnet "beaconpair/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions tunes AccessLogZerolog
type AccessLogOptions struct {
	// Slow logs requests at or above this duration at warn, 0 never does
	Slow time.Duration
	// Log overrides the request scoped logger
	Log *logger.Logger
}

// AccessLogZerolog writes one line per request once the handler returns
func AccessLogZerolog(opt AccessLogOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			took := time.Since(start)

			log := opt.Log
			if log == nil {
				log = logger.C(r.Context())
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			evt := log.Info()
			switch {
			case status >= http.StatusInternalServerError:
				evt = log.Error()
			case opt.Slow > 0 && took >= opt.Slow:
				evt = log.Warn()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("took", took).
				Msg("request")
		})
	}
}

// LogContext hands the request id and client ip to logger.C.
// Mount after RequestID and RealIP
func LogContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		ctx := logger.WithRequest(r.Context(), pnet.RequestID(r.Context()), ip)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
