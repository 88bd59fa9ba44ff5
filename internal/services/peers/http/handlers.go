// Package http provides http transport for the peer registry
package http

import (
	stdhttp "net/http"

	"beaconpair/internal/modkit/httpkit"
	"beaconpair/internal/platform/net/http/bind"
	"beaconpair/internal/services/peers/domain"
)

// Register mounts peer endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/status", h.status)
	httpkit.Post(r, "/connect", h.connect)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Delete(r, "/{id}", h.remove)
}

type handlers struct{ svc domain.ServicePort }

func peerID(r *stdhttp.Request) (string, error) {
	id := httpkit.Param(r, "id")
	if err := bind.Var("id", id, "required,uuid"); err != nil {
		return "", err
	}
	return id, nil
}

// swagger:route GET /peers Peers peersList
// @Summary Registered peers, oldest first
// @Tags Peers
// @Produce json
// @Success 200 {array} domain.Peer "ok"
// @Router /peers [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// swagger:route GET /peers/status Peers peersStatus
// @Summary Peer client connection state and registry size
// @Tags Peers
// @Produce json
// @Success 200 {object} domain.Status "ok"
// @Router /peers/status [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.svc.Status(r.Context())
}

// swagger:route POST /peers/connect Peers peersConnect
// @Summary Mark the peer client connected, releasing pending pairings
// @Tags Peers
// @Produce json
// @Success 200 {object} domain.Status "ok"
// @Router /peers/connect [post]
func (h *handlers) connect(r *stdhttp.Request) (any, error) {
	if err := h.svc.Connect(r.Context()); err != nil {
		return nil, err
	}
	return h.svc.Status(r.Context())
}

// swagger:route GET /peers/{id} Peers peersGet
// @Summary Single peer by id
// @Tags Peers
// @Produce json
// @Param id path string true "Peer id"
// @Success 200 {object} domain.Peer "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /peers/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id, err := peerID(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id)
}

// swagger:route DELETE /peers/{id} Peers peersRemove
// @Summary Remove a peer
// @Tags Peers
// @Param id path string true "Peer id"
// @Success 204 "removed"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /peers/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := peerID(r)
	if err != nil {
		return nil, err
	}
	if err := h.svc.Remove(r.Context(), id); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
