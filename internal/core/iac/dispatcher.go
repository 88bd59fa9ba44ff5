package iac

import (
	"context"
	"sync"
)

// Outcome is what the dispatcher reports for one input
type Outcome struct {
	Status  Status `json:"status"`
	Handler string `json:"handler,omitempty"`
}

// Dispatcher offers an input to its handlers in registration order and stops at the first success
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []Handler
}

// NewDispatcher builds a dispatcher over hs; nil handlers are skipped
func NewDispatcher(hs ...Handler) *Dispatcher {
	d := &Dispatcher{}
	for _, h := range hs {
		d.Register(h)
	}
	return d
}

// Register appends h to the dispatch order
func (d *Dispatcher) Register(h Handler) {
	if h == nil {
		return
	}
	d.mu.Lock()
	d.handlers = append(d.handlers, h)
	d.mu.Unlock()
}

// Handlers returns a snapshot of the registered handlers in dispatch order
func (d *Dispatcher) Handlers() []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]Handler(nil), d.handlers...)
}

// Dispatch offers in to each handler until one reports StatusSuccess
// Handlers that pass are reset so they are ready for the next input
func (d *Dispatcher) Dispatch(ctx context.Context, in Input) Outcome {
	for _, h := range d.Handlers() {
		if err := ctx.Err(); err != nil {
			break
		}
		if h.Receive(ctx, in) == StatusSuccess {
			return Outcome{Status: StatusSuccess, Handler: h.Name()}
		}
		h.Reset(ctx)
	}
	return Outcome{Status: StatusUnsupported}
}
