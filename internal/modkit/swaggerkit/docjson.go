// Package swaggerkit serves the API reference: an OpenAPI document built from the
// route table below and the Swagger UI pointed at it
package swaggerkit

import (
	"encoding/json"
	"net/http"

	"beaconpair/internal/core/version"
)

type route struct{ method, path, summary string }

var routes = []route{
	{"post", "/api/v1/iac/receive", "Offer an IAC payload to the registered handlers"},
	{"get", "/api/v1/iac/handlers", "Registered IAC handlers in dispatch order"},
	{"get", "/api/v1/peers", "Registered peers, oldest first"},
	{"get", "/api/v1/peers/status", "Peer client connection state and registry size"},
	{"post", "/api/v1/peers/connect", "Mark the peer client connected"},
	{"get", "/api/v1/peers/{id}", "Single peer by id"},
	{"delete", "/api/v1/peers/{id}", "Remove a peer"},
	{"get", "/api/v1/meta/health", "Health check"},
	{"get", "/api/v1/meta/ready", "Readiness probe"},
	{"get", "/api/v1/meta/version", "Build and version info"},
	{"get", "/api/v1/meta/service", "Service info and uptime"},
}

var docReader = func() string {
	paths := map[string]map[string]any{}
	for _, rt := range routes {
		if paths[rt.path] == nil {
			paths[rt.path] = map[string]any{}
		}
		paths[rt.path][rt.method] = map[string]any{
			"summary":   rt.summary,
			"responses": map[string]any{"200": map[string]any{"description": "ok"}},
		}
	}
	bi := version.Info()
	b, _ := json.Marshal(map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": bi.Service, "version": bi.Version},
		"paths":   paths,
	})
	return string(b)
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write([]byte(docReader()))
	}
}
