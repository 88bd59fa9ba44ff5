// Package http serves liveness, readiness and build info under /meta
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"beaconpair/internal/core/version"
	"beaconpair/internal/modkit/httpkit"
)

// readyTimeout bounds one readiness probe across all checks
const readyTimeout = 2 * time.Second

// Pinger reports whether a dependency can serve traffic
type Pinger interface {
	Ping(context.Context) error
}

// PingFunc is a Pinger from a plain function
type PingFunc func(context.Context) error

// Ping calls f
func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// Check is one named readiness dependency. A nil Pinger reports skipped
type Check struct {
	Name   string
	Pinger Pinger
}

// Deps feed the meta handlers
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Checks      []Check
}

var now = time.Now

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// Register mounts health, ready, version and service
func Register(r httpkit.Router, d Deps) {
	h := &handlers{d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

type handlers struct{ d Deps }

// HealthResponse says the process is up
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok" example:"true"`
	Service string `json:"service" example:"beaconpair-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now" example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck is the result of one Check: ok, fail or skipped
type ReadyCheck struct {
	Name   string `json:"name" example:"peers"`
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"peer client not connected"`
}

// ReadyResponse is ok only when no check failed
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now" example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse reports uptime in whole seconds
type ServiceResponse struct {
	Name    string `json:"name" example:"beaconpair-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime" example:"300"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.d.ServiceName, Started: stamp(h.d.StartedAt), Now: stamp(now())}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe; fails until the peer client is connected
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	out := ReadyResponse{Status: "ok", Checks: make([]ReadyCheck, len(h.d.Checks))}
	var wg sync.WaitGroup
	for i, c := range h.d.Checks {
		out.Checks[i] = ReadyCheck{Name: c.Name, Status: "skipped"}
		if c.Pinger == nil {
			continue
		}
		wg.Add(1)
		go func(rc *ReadyCheck, p Pinger) {
			defer wg.Done()
			rc.Status = "ok"
			if err := p.Ping(ctx); err != nil {
				rc.Status, rc.Error = "fail", err.Error()
			}
		}(&out.Checks[i], c.Pinger)
	}
	wg.Wait()

	for _, rc := range out.Checks {
		if rc.Status == "fail" {
			out.Status = "fail"
		}
	}
	out.Now = stamp(now())
	return out, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.d.ServiceName,
		Started: stamp(h.d.StartedAt),
		Uptime:  int64(now().Sub(h.d.StartedAt) / time.Second),
	}, nil
}
