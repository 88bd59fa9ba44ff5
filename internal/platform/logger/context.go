package logger

import "context"

type ctxKey uint8

const (
	keyRequestID ctxKey = iota
	keyRemoteIP
)

// WithRequest stores the request id and remote ip for C; blanks are skipped
func WithRequest(ctx context.Context, reqID, remoteIP string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, keyRequestID, reqID)
	}
	if remoteIP != "" {
		ctx = context.WithValue(ctx, keyRemoteIP, remoteIP)
	}
	return ctx
}

// C returns a child of the root logger carrying the request fields found in ctx
func C(ctx context.Context) *Logger {
	zc := Get().With()
	if s, _ := ctx.Value(keyRequestID).(string); s != "" {
		zc = zc.Str("request_id", s)
	}
	if s, _ := ctx.Value(keyRemoteIP).(string); s != "" {
		zc = zc.Str("remote_ip", s)
	}
	l := zc.Logger()
	return &l
}
