// Package iac defines the contract between the inter-application communication (IAC)
// channel and the handlers that try to make sense of its payloads
//
// The channel does not tag its payloads. Every handler receives the same input and
// either claims it (StatusSuccess) or passes (StatusUnsupported); the Dispatcher walks
// registered handlers in order until one claims the input
package iac

import (
	"context"
	"fmt"
)

// Status is the outcome a handler reports for one input
type Status uint8

const (
	// StatusUnsupported means the handler did not recognise the input
	StatusUnsupported Status = iota

	// StatusSuccess means the handler recognised and handled the input
	StatusSuccess
)

// String implements fmt.Stringer
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// MarshalText renders the status as its lowercase name for JSON transports
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Input is a raw IAC payload: one text value or an ordered sequence of chunks
type Input struct {
	chunks []string
}

// Text wraps a single payload
func Text(s string) Input { return Input{chunks: []string{s}} }

// Chunks wraps an ordered chunk sequence. The slice is copied
func Chunks(parts ...string) Input {
	return Input{chunks: append([]string(nil), parts...)}
}

// First returns the payload handlers consult
// Only the first chunk is used; trailing chunks are ignored and callers may rely on that.
// ok is false when the input holds no chunk at all
func (in Input) First() (s string, ok bool) {
	if len(in.chunks) == 0 {
		return "", false
	}
	return in.chunks[0], true
}

// Len reports how many chunks the input carries
func (in Input) Len() int { return len(in.chunks) }

// Handler is the capability set the IAC host requires from a message handler
type Handler interface {
	// Name identifies the handler in logs and dispatch results
	Name() string

	// Receive inspects the input and handles it when recognised. It never fails outward
	Receive(ctx context.Context, in Input) Status

	// Progress reports completion in percent
	Progress(ctx context.Context) int

	// Result returns whatever the handler produced, if anything
	Result(ctx context.Context) any

	// Reset clears handler state between inputs
	Reset(ctx context.Context)

	// HandleComplete reports whether the handler finished its work
	HandleComplete(ctx context.Context) bool
}
